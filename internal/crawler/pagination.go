package crawler

import (
	"net/url"
	"regexp"
	"strconv"
	"time"
)

var (
	pageSegmentPattern = regexp.MustCompile(`(^|/)page/(\d+)(/|$)`)
	stubDatePattern    = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
)

// NextPageURL increments the last page/<n> segment of the URL path. It
// reports false when the path carries no page number.
func NextPageURL(current string) (string, bool) {
	u, err := url.Parse(current)
	if err != nil {
		return "", false
	}

	locs := pageSegmentPattern.FindAllStringSubmatchIndex(u.Path, -1)
	if len(locs) == 0 {
		return "", false
	}
	last := locs[len(locs)-1]
	start, end := last[4], last[5]

	n, err := strconv.Atoi(u.Path[start:end])
	if err != nil {
		return "", false
	}

	u.Path = u.Path[:start] + strconv.Itoa(n+1) + u.Path[end:]
	u.RawPath = ""
	return u.String(), true
}

// ParsePublicationDate reads a day/month/year date from listing text
func ParsePublicationDate(text string, loc *time.Location) (time.Time, bool) {
	m := stubDatePattern.FindString(text)
	if m == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2/1/2006", m, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MinPublicationDate returns the earliest parseable publication date among
// the stubs. Stubs without a readable date are ignored.
func MinPublicationDate(stubs []ListingStub, loc *time.Location) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, stub := range stubs {
		if !stub.PublishedAt.Found {
			continue
		}
		t, ok := ParsePublicationDate(stub.PublishedAt.Value, loc)
		if !ok {
			continue
		}
		if !found || t.Before(earliest) {
			earliest, found = t, true
		}
	}
	return earliest, found
}

// startOfDay truncates t to midnight in loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
