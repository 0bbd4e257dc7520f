package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CowsayNews/internal/domain"
)

func sampleGroup(t *testing.T) *domain.Grouped {
	t.Helper()
	g := domain.NewGrouped(8, 8)
	require.True(t, g.Assign(domain.Candidate{Headline: "Senate passes budget", Source: "Bugle", URL: "https://bugle.test/1"}, domain.CategoryPolitics))
	require.True(t, g.Assign(domain.Candidate{Headline: "Chip prices fall", Source: "Wire", URL: "https://wire.test/2"}, domain.CategoryTechnology))
	require.True(t, g.Assign(domain.Candidate{Headline: "Second tech story", Source: "Wire", URL: "https://wire.test/3"}, domain.CategoryTechnology))
	return g
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDocumentIsDeterministic(t *testing.T) {
	t.Parallel()

	g := sampleGroup(t)
	first := Document(g, "a narrative")
	second := Document(g, "a narrative")

	assert.Equal(t, first, second)
}

func TestDocumentOmitsEmptyCategoriesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	doc := parse(t, Document(sampleGroup(t), ""))

	headings := doc.Find(".speech-bubble h3")
	require.Equal(t, 2, headings.Length(), "only non-empty categories get a section")
	assert.Equal(t, "POLITICS", headings.Eq(0).Text())
	assert.Equal(t, "TECHNOLOGY", headings.Eq(1).Text())
}

func TestDocumentListsItemsInInsertionOrder(t *testing.T) {
	t.Parallel()

	doc := parse(t, Document(sampleGroup(t), ""))

	links := doc.Find("ul").Eq(1).Find("a")
	require.Equal(t, 2, links.Length())
	assert.Equal(t, "Chip prices fall", links.Eq(0).Text())
	assert.Equal(t, "Second tech story", links.Eq(1).Text())

	href, ok := links.Eq(0).Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://wire.test/2", href)
}

func TestDocumentEscapesUntrustedStrings(t *testing.T) {
	t.Parallel()

	g := domain.NewGrouped(8, 8)
	require.True(t, g.Assign(domain.Candidate{
		Headline: `<script>alert("pwn")</script>`,
		Source:   `<b>sneaky</b>`,
		URL:      `https://evil.test/"><script>`,
	}, domain.CategoryOther))

	out := Document(g, `<script>narrative</script>`)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestDocumentIncludesNarrativeWhenPresent(t *testing.T) {
	t.Parallel()

	withNarrative := parse(t, Document(sampleGroup(t), "Quiet day in the markets."))
	assert.Equal(t, "Quiet day in the markets.", withNarrative.Find("p.narrative").Text())

	without := parse(t, Document(sampleGroup(t), ""))
	assert.Zero(t, without.Find("p.narrative").Length())
}

func TestDocumentIsSelfContained(t *testing.T) {
	t.Parallel()

	out := Document(sampleGroup(t), "")

	assert.Contains(t, out, "<style>")
	assert.Contains(t, out, `class="cow-post"`)
	assert.Contains(t, out, `class="cow-art"`)
	assert.Contains(t, out, "(oo)")
	assert.NotContains(t, out, "<link", "no external stylesheet dependency")
}
