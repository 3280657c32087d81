package crawler

import (
	"net/url"
	"strings"
)

// ParseListing reads the listing stubs of one listing page in document
// order. It reports false when the listing container is missing, which the
// controller treats as the end of the crawl rather than an error.
func ParseListing(doc Node, pageURL string, sel Selectors) ([]ListingStub, bool) {
	container := doc.Find(sel.ListingContainer)
	if !container.Exists() {
		return nil, false
	}

	var stubs []ListingStub
	for _, block := range container.FindAll(sel.ListingBlock) {
		stubs = append(stubs, parseStub(block, pageURL, sel))
	}
	return stubs, true
}

// parseStub extracts each field on its own; a missing title does not
// prevent reading the date or the link.
func parseStub(block Node, pageURL string, sel Selectors) ListingStub {
	var stub ListingStub

	if date := block.Find(sel.PublishedAt); date.Exists() {
		stub.PublishedAt = Found(date.Text())
	}

	if title := block.Find(sel.Title); title.Exists() {
		stub.Title = Found(title.Text())
	}

	if href, ok := block.Find(sel.Link).Attr("href"); ok {
		stub.Link = Found(resolveURL(pageURL, strings.TrimSpace(href)))
	}

	return stub
}

// resolveURL resolves href against the page it was found on
func resolveURL(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
