package bot

import (
	"testing"

	"itproger-bot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticlesKeyboardNavigation(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		total int
		want  []string
	}{
		{"first page", 1, 3, []string{dataRefresh, dataNextPage}},
		{"middle page", 2, 3, []string{dataPrevPage, dataRefresh, dataNextPage}},
		{"last page", 3, 3, []string{dataPrevPage, dataRefresh}},
		{"single page", 1, 1, []string{dataRefresh}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markup := articlesKeyboard(4, tt.page, tt.total)
			require.Len(t, markup.InlineKeyboard, 3)

			nav := markup.InlineKeyboard[2]
			var got []string
			for _, button := range nav {
				got = append(got, *button.CallbackData)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFullTextKeyboard(t *testing.T) {
	_, ok := fullTextKeyboard("", true)
	assert.False(t, ok)

	markup, ok := fullTextKeyboard("https://itproger.com/news/a", false)
	require.True(t, ok)
	assert.Equal(t, "🔗 Open on site", markup.InlineKeyboard[0][0].Text)

	markup, ok = fullTextKeyboard("https://itproger.com/news/a", true)
	require.True(t, ok)
	assert.Equal(t, continueReading, markup.InlineKeyboard[0][0].Text)
}

func TestRenderEscapesScrapedText(t *testing.T) {
	article := models.Article{Title: "a < b & c", Description: "x > y", Views: "0"}

	assert.Equal(t, "<b>a &lt; b &amp; c</b>\n\nx &gt; y\n\n", renderDetail(article))
	assert.Equal(t, "📄 Page 1 of 1\n\n1. a &lt; b &amp; c\n   x &gt; y\n\n", renderListing(1, 1, []models.Article{article}))
}

func TestRenderKeepsTagLikeText(t *testing.T) {
	article := models.Article{
		Title:       "Тег <canvas> в HTML5",
		Description: "Use <div> and <script>alert(1)</script> tags",
		Views:       "0",
	}

	want := "<b>Тег &lt;canvas&gt; в HTML5</b>\n\n" +
		"Use &lt;div&gt; and &lt;script&gt;alert(1)&lt;/script&gt; tags\n\n"
	assert.Equal(t, want, renderDetail(article))
	assert.Contains(t, renderListing(1, 1, []models.Article{article}), "1. Тег &lt;canvas&gt; в HTML5\n")
}

func TestRenderFullText(t *testing.T) {
	assert.Equal(t, "body", renderFullText(models.FullText{Text: "body"}))
	assert.Equal(t, "body...\n\n"+continueReading, renderFullText(models.FullText{Text: "body...", Truncated: true}))
}
