package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesCompile(t *testing.T) {
	cr, err := DefaultRules().Compile()
	require.NoError(t, err)
	assert.Equal(t, CurrentRulesVersion, cr.Version)
	assert.Len(t, cr.views, 2)
	assert.Len(t, cr.dates, 2)
}

func TestRulesCompile_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"empty card selector", func(r *Rules) { r.Listing.Card = " " }},
		{"empty pagination region", func(r *Rules) { r.Pagination.Region = "" }},
		{"negative description index", func(r *Rules) { r.Listing.DescriptionIndex = -1 }},
		{"bad views pattern", func(r *Rules) { r.Listing.ViewsPatterns = []string{"("} }},
		{"bad date pattern", func(r *Rules) { r.Listing.DatePatterns = []string{"[a-"} }},
		{"bad container class pattern", func(r *Rules) { r.Listing.ContainerClassPattern = "(?P<" }},
		{"bad region class pattern", func(r *Rules) { r.Content.RegionClassPattern = "*" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.mutate(&r)
			_, err := r.Compile()
			assert.Error(t, err)
		})
	}
}

func TestFirstSubmatch(t *testing.T) {
	cr := DefaultRules().MustCompile()

	views, ok := firstSubmatch(cr.views, "15 просмотров")
	assert.True(t, ok)
	assert.Equal(t, "15", views)

	date, ok := firstSubmatch(cr.dates, "3 января 2024 в 9:05, 100 просмотров")
	assert.True(t, ok)
	assert.Equal(t, "3 января 2024 в 9:05", date)

	_, ok = firstSubmatch(cr.dates, "yesterday")
	assert.False(t, ok)
}
