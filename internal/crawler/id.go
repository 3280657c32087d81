package crawler

import "regexp"

var (
	trailingDigitsPattern = regexp.MustCompile(`/(\d+)/?$`)
	postParamPattern      = regexp.MustCompile(`p=(\d+)$`)
)

// ResolveID derives a record identifier from a detail page URL: the digits
// ending its path, else a trailing p=<digits> query parameter. Identifiers
// are not guaranteed unique.
func ResolveID(rawURL string) Field {
	if m := trailingDigitsPattern.FindStringSubmatch(rawURL); m != nil {
		return Found(m[1])
	}
	if m := postParamPattern.FindStringSubmatch(rawURL); m != nil {
		return Found(m[1])
	}
	return Field{}
}
