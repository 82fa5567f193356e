package parser

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCountPages(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		fallback int
		expected int
	}{
		{
			name:     "no pagination region",
			html:     `<div class="allArticles"></div>`,
			fallback: 84,
			expected: 84,
		},
		{
			name:     "numeric links take the maximum",
			html:     `<div class="pagination"><a href="/news">1</a><a href="/news/page-2">2</a><a href="/news/page-12"> 12 </a><a href="/news/page-2">Next</a></div>`,
			fallback: 84,
			expected: 12,
		},
		{
			name:     "ellipsis without numbers",
			html:     `<div class="pagination"><a href="/news/page-2">Next</a><span>...</span></div>`,
			fallback: 84,
			expected: 84,
		},
		{
			name:     "direct link to the last known page",
			html:     `<div class="pagination"><a href="/news/page-50">Last</a></div>`,
			fallback: 50,
			expected: 50,
		},
		{
			name:     "nothing usable in pager",
			html:     `<div class="pagination"><a href="/news/page-2">Next</a></div>`,
			fallback: 30,
			expected: 30,
		},
		{
			name:     "zero link is not a page count",
			html:     `<div class="pagination"><a>0</a></div>`,
			fallback: 84,
			expected: 84,
		},
		{
			name:     "invalid fallback uses default",
			html:     ``,
			fallback: 0,
			expected: DefaultFallbackPages,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := NewPageCounter(DefaultRules().MustCompile(), tt.fallback, zerolog.Nop())
			got := pc.CountPages([]byte(tt.html))
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 1)
		})
	}
}

func TestCountPages_LastPageLinkBoundary(t *testing.T) {
	pc := NewPageCounter(DefaultRules().MustCompile(), 84, zerolog.Nop())
	assert.True(t, pc.hasLastPageLink(mustSelect(t, `<div><a href="/news/page-84">x</a></div>`)))
	assert.False(t, pc.hasLastPageLink(mustSelect(t, `<div><a href="/news/page-840">x</a></div>`)))
}
