package crawler

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node is a queryable element of a parsed document. A missing element is a
// Node whose Exists reports false; every query on it yields another missing
// Node, so lookups can be chained without nil checks.
type Node interface {
	Exists() bool
	// Find returns the first descendant matching selector
	Find(selector string) Node
	// FindAll returns every descendant matching selector, in document order
	FindAll(selector string) []Node
	// FindNext returns the first element after this one in document order
	// that matches selector, skipping this element's own descendants
	FindNext(selector string) Node
	// Closest returns this element or its nearest ancestor matching selector
	Closest(selector string) Node
	Attr(name string) (string, bool)
	// Text returns the trimmed text content
	Text() string
}

type selectionNode struct {
	sel *goquery.Selection
}

var missing = selectionNode{}

// NewDocument parses HTML from r
func NewDocument(r io.Reader) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("HTML parsing error: %w", err)
	}
	return selectionNode{sel: doc.Selection}, nil
}

// FromSelection wraps a goquery selection, using its first element
func FromSelection(sel *goquery.Selection) Node {
	return wrap(sel)
}

func wrap(sel *goquery.Selection) Node {
	if sel == nil || sel.Length() == 0 {
		return missing
	}
	return selectionNode{sel: sel.First()}
}

func (n selectionNode) Exists() bool {
	return n.sel != nil && n.sel.Length() > 0
}

func (n selectionNode) Find(selector string) Node {
	if !n.Exists() {
		return missing
	}
	return wrap(n.sel.Find(selector))
}

func (n selectionNode) FindAll(selector string) []Node {
	if !n.Exists() {
		return nil
	}
	var nodes []Node
	n.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, selectionNode{sel: s})
	})
	return nodes
}

func (n selectionNode) FindNext(selector string) Node {
	if !n.Exists() {
		return missing
	}
	for cur := n.sel; cur.Length() > 0; cur = cur.Parent() {
		for sib := cur.Next(); sib.Length() > 0; sib = sib.Next() {
			if sib.Is(selector) {
				return selectionNode{sel: sib}
			}
			if inner := sib.Find(selector); inner.Length() > 0 {
				return wrap(inner)
			}
		}
	}
	return missing
}

func (n selectionNode) Closest(selector string) Node {
	if !n.Exists() {
		return missing
	}
	return wrap(n.sel.Closest(selector))
}

func (n selectionNode) Attr(name string) (string, bool) {
	if !n.Exists() {
		return "", false
	}
	return n.sel.Attr(name)
}

func (n selectionNode) Text() string {
	if !n.Exists() {
		return ""
	}
	return strings.TrimSpace(n.sel.Text())
}
