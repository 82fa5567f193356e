package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CurrentRulesVersion is the version of the built-in itproger.com rule set
const CurrentRulesVersion = 1

// Rules holds every selector and pattern the extractors depend on.
// When the site changes its markup, a new version of the rule set is
// shipped (or overridden from config) instead of touching the parsers.
type Rules struct {
	Version    int             `yaml:"version"`
	Listing    ListingRules    `yaml:"listing"`
	Pagination PaginationRules `yaml:"pagination"`
	Content    ContentRules    `yaml:"content"`
}

// ListingRules describe a listing page and its article cards
type ListingRules struct {
	Container             string   `yaml:"container"`
	ContainerFallbacks    []string `yaml:"container_fallbacks"`
	ContainerClassPattern string   `yaml:"container_class_pattern"`
	Card                  string   `yaml:"card"`
	Anchor                string   `yaml:"anchor"`
	Label                 string   `yaml:"label"`
	Image                 string   `yaml:"image"`
	DescriptionIndex      int      `yaml:"description_index"`
	Meta                  string   `yaml:"meta"`
	ViewsPatterns         []string `yaml:"views_patterns"`
	DatePatterns          []string `yaml:"date_patterns"`
}

// PaginationRules describe the pager block of the listing root page
type PaginationRules struct {
	Region         string `yaml:"region"`
	Links          string `yaml:"links"`
	Ellipsis       string `yaml:"ellipsis"`
	EllipsisText   string `yaml:"ellipsis_text"`
	PageHrefFormat string `yaml:"page_href_format"`
}

// ContentRules describe an article page
type ContentRules struct {
	Regions            []string `yaml:"regions"`
	RegionClassPattern string   `yaml:"region_class_pattern"`
	Strip              string   `yaml:"strip"`
}

// DefaultRules returns the rule set matching the current itproger.com markup
func DefaultRules() Rules {
	return Rules{
		Version: CurrentRulesVersion,
		Listing: ListingRules{
			Container:             "div.allArticles",
			ContainerFallbacks:    []string{"main"},
			ContainerClassPattern: `content|main`,
			Card:                  "div.article",
			Anchor:                "a",
			Label:                 "span",
			Image:                 "img",
			DescriptionIndex:      1,
			Meta:                  "div",
			ViewsPatterns: []string{
				`(\d+)\s*<`,
				`(\d+)\s*просмотр`,
			},
			DatePatterns: []string{
				`(\d{1,2}\s+\p{L}+\s+\d{4}\s+в\s+\d{1,2}:\d{2})`,
				`(\d{2}\.\d{2}\.\d{4})`,
			},
		},
		Pagination: PaginationRules{
			Region:         "div.pagination",
			Links:          "a",
			Ellipsis:       "span",
			EllipsisText:   "...",
			PageHrefFormat: "page-%d",
		},
		Content: ContentRules{
			Regions:            []string{"article", "div.content"},
			RegionClassPattern: `post-content|article-content`,
			Strip:              "script, style, nav, header, footer, aside, form",
		},
	}
}

// CompiledRules is a validated Rules value with its patterns compiled
type CompiledRules struct {
	Rules

	containerClass *regexp.Regexp
	regionClass    *regexp.Regexp
	views          []*regexp.Regexp
	dates          []*regexp.Regexp
}

// Compile validates the rule set and compiles its regular expressions
func (r Rules) Compile() (*CompiledRules, error) {
	if strings.TrimSpace(r.Listing.Card) == "" {
		return nil, fmt.Errorf("rules v%d: listing card selector is empty", r.Version)
	}
	if strings.TrimSpace(r.Pagination.Region) == "" {
		return nil, fmt.Errorf("rules v%d: pagination region selector is empty", r.Version)
	}
	if r.Listing.DescriptionIndex < 0 {
		return nil, fmt.Errorf("rules v%d: description index must not be negative", r.Version)
	}

	cr := &CompiledRules{Rules: r}
	var err error

	if cr.containerClass, err = compileOptional(r.Listing.ContainerClassPattern); err != nil {
		return nil, fmt.Errorf("rules v%d: container class pattern: %w", r.Version, err)
	}
	if cr.regionClass, err = compileOptional(r.Content.RegionClassPattern); err != nil {
		return nil, fmt.Errorf("rules v%d: region class pattern: %w", r.Version, err)
	}
	if cr.views, err = compileAll(r.Listing.ViewsPatterns); err != nil {
		return nil, fmt.Errorf("rules v%d: views pattern: %w", r.Version, err)
	}
	if cr.dates, err = compileAll(r.Listing.DatePatterns); err != nil {
		return nil, fmt.Errorf("rules v%d: date pattern: %w", r.Version, err)
	}

	return cr, nil
}

// MustCompile is like Compile but panics on an invalid rule set.
// Intended for the built-in rules and tests.
func (r Rules) MustCompile() *CompiledRules {
	cr, err := r.Compile()
	if err != nil {
		panic(err)
	}
	return cr
}

func compileOptional(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// firstBySelectors returns the first element matched by the first selector
// in the chain that matches anything
func firstBySelectors(root *goquery.Selection, selectors ...string) (*goquery.Selection, bool) {
	for _, sel := range selectors {
		if strings.TrimSpace(sel) == "" {
			continue
		}
		if found := root.Find(sel).First(); found.Length() > 0 {
			return found, true
		}
	}
	return nil, false
}

// firstDivByClassPattern returns the first div having a class token matching re
func firstDivByClassPattern(root *goquery.Selection, re *regexp.Regexp) (*goquery.Selection, bool) {
	if re == nil {
		return nil, false
	}
	found := root.Find("div[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, token := range strings.Fields(s.AttrOr("class", "")) {
			if re.MatchString(token) {
				return true
			}
		}
		return false
	}).First()
	if found.Length() == 0 {
		return nil, false
	}
	return found, true
}

// firstSubmatch returns the first capture group of the first pattern that matches text
func firstSubmatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}
