package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const domHTML = `<html><body>
<section>
	<h4 class="bolder">Objeto<div class="inner">not following</div></h4>
	<span>between</span>
</section>
<div class="after">first following div</div>
<div class="later">second</div>
<a href="/edital.pdf" class="download"><span><i class="icon-download"></i></span></a>
</body></html>`

func TestNodeFindNext(t *testing.T) {
	doc, err := NewDocument(strings.NewReader(domHTML))
	require.NoError(t, err)

	heading := doc.Find("h4.bolder")
	require.True(t, heading.Exists())

	// Descendants of the heading are not "after" it; the search climbs out
	// of <section> to reach the next div.
	next := heading.FindNext("div")
	assert.Equal(t, "first following div", next.Text())

	assert.Equal(t, "between", heading.FindNext("span").Text())
	assert.False(t, doc.Find("div.later").FindNext("div").Exists())
}

func TestNodeClosestAndAttr(t *testing.T) {
	doc, err := NewDocument(strings.NewReader(domHTML))
	require.NoError(t, err)

	link := doc.Find("i.icon-download").Closest("a")
	href, ok := link.Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "/edital.pdf", href)

	_, ok = doc.Find("div.after").Attr("href")
	assert.False(t, ok)
}

func TestMissingNodeChains(t *testing.T) {
	doc, err := NewDocument(strings.NewReader(domHTML))
	require.NoError(t, err)

	gone := doc.Find("table.nope")
	assert.False(t, gone.Exists())
	assert.False(t, gone.Find("tr").Exists())
	assert.False(t, gone.FindNext("td").Exists())
	assert.False(t, gone.Closest("a").Exists())
	assert.Empty(t, gone.FindAll("td"))
	assert.Equal(t, "", gone.Text())

	_, ok := gone.Attr("href")
	assert.False(t, ok)
}

func TestFromSelection(t *testing.T) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(domHTML))
	require.NoError(t, err)

	node := FromSelection(gq.Find("div"))
	assert.Equal(t, "not following", node.Text())
	assert.False(t, FromSelection(gq.Find("table")).Exists())
}
