package parser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"itproger-bot/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<header><div class="main-menu"><a href="/">Home</a></div></header>
<div class="allArticles">
  <div class="article">
    <a href="/news/go-1-25"><span>Go 1.25 released</span></a>
    <img src="/img/news/go.png" alt="">
    <span>Description   one
      with   spaces</span>
    <div>1234 просмотров 12 марта 2025 в 14:30</div>
  </div>
  <div class="article">
    <a href="https://itproger.com/news/plain">Plain anchor title</a>
  </div>
  <div class="article">
    <a href="news/relative"><span>Short date card</span></a>
    <span>Second description</span>
    <div>77 &lt; 05.03.2025</div>
  </div>
  <div class="article">
    <span>Orphan card</span><span>No anchor here</span>
  </div>
  <div class="article">
    <a href="/news/empty"><span>   </span></a>
  </div>
</div>
</body></html>`

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(DefaultRules().MustCompile(), "https://itproger.com", DefaultDescriptionLimit, zerolog.Nop())
	require.NoError(t, err)
	return p
}

func TestParseArticles(t *testing.T) {
	p := newTestParser(t)

	articles, err := p.ParseArticles([]byte(listingHTML), 1)
	require.NoError(t, err)
	require.Len(t, articles, 3)

	assert.Equal(t, models.Article{
		Title:       "Go 1.25 released",
		Link:        "https://itproger.com/news/go-1-25",
		Image:       "https://itproger.com/img/news/go.png",
		Description: "Description one with spaces",
		Meta:        "1234 views • 12 марта 2025 в 14:30",
		Views:       "1234",
	}, articles[0])

	assert.Equal(t, models.Article{
		Title: "Plain anchor title",
		Link:  "https://itproger.com/news/plain",
		Views: "0",
	}, articles[1])

	assert.Equal(t, "Short date card", articles[2].Title)
	assert.Equal(t, "https://itproger.com/news/relative", articles[2].Link)
	assert.Equal(t, "Second description", articles[2].Description)
	assert.Equal(t, "77 views • 05.03.2025", articles[2].Meta)
	assert.Equal(t, "77", articles[2].Views)
}

func TestParseArticles_NeverReturnsPlaceholderTitles(t *testing.T) {
	p := newTestParser(t)

	for _, markup := range []string{listingHTML, "", "<div class=\"allArticles\"><div class=\"article\"></div></div>", "<<<>>>"} {
		articles, err := p.ParseArticles([]byte(markup), 1)
		require.NoError(t, err)
		for _, a := range articles {
			assert.NotEmpty(t, a.Title)
			assert.NotEqual(t, PlaceholderTitle, a.Title)
		}
	}
}

func TestParseArticles_ContainerFallbacks(t *testing.T) {
	card := `<div class="article"><a href="/news/a"><span>Found it</span></a></div>`

	tests := []struct {
		name  string
		html  string
		count int
	}{
		{"dedicated container", `<div class="allArticles">` + card + `</div>`, 1},
		{"semantic main", `<main>` + card + `</main>`, 1},
		{"content-like class", `<div class="page-content wide">` + card + `</div>`, 1},
		{"main-like class", `<div class="mainColumn">` + card + `</div>`, 1},
		{"no container", `<section>` + card + `</section>`, 0},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles, err := p.ParseArticles([]byte(tt.html), 2)
			require.NoError(t, err)
			assert.Len(t, articles, tt.count)
		})
	}
}

func TestParseArticles_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("я", 250)
	html := `<div class="allArticles"><div class="article">
		<a href="/n"><span>Title</span></a><span>` + long + `</span>
	</div></div>`

	articles, err := newTestParser(t).ParseArticles([]byte(html), 1)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	desc := articles[0].Description
	assert.Equal(t, DefaultDescriptionLimit+len(EllipsisMarker), utf8.RuneCountInString(desc))
	assert.True(t, strings.HasSuffix(desc, EllipsisMarker))
	assert.Equal(t, strings.Repeat("я", 200), strings.TrimSuffix(desc, EllipsisMarker))
}

func TestParseArticles_MetaWithoutViews(t *testing.T) {
	html := `<main><div class="article"><a href="/n">Title here</a><div>no numbers</div></div></main>`

	articles, err := newTestParser(t).ParseArticles([]byte(html), 1)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "0 views", articles[0].Meta)
	assert.Equal(t, "0", articles[0].Views)
}

func TestParseArticles_Idempotent(t *testing.T) {
	p := newTestParser(t)

	first, err := p.ParseArticles([]byte(listingHTML), 3)
	require.NoError(t, err)
	second, err := p.ParseArticles([]byte(listingHTML), 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNewParser_InvalidBaseURL(t *testing.T) {
	_, err := NewParser(DefaultRules().MustCompile(), "http://[::1", 0, zerolog.Nop())
	assert.Error(t, err)
}
