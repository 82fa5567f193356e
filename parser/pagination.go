package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// DefaultFallbackPages is the page count assumed when the pager cannot tell.
// It is an estimate of the site's size, not a guarantee.
const DefaultFallbackPages = 84

// PageCounter determines the number of listing pages from the pager block
type PageCounter struct {
	rules    *CompiledRules
	fallback int
	lastHref *regexp.Regexp
	logger   zerolog.Logger
}

// NewPageCounter creates a PageCounter that answers fallback whenever the
// exact count cannot be determined
func NewPageCounter(rules *CompiledRules, fallback int, logger zerolog.Logger) *PageCounter {
	if fallback < 1 {
		fallback = DefaultFallbackPages
	}
	pc := &PageCounter{rules: rules, fallback: fallback, logger: logger}
	if format := rules.Pagination.PageHrefFormat; format != "" {
		href := regexp.QuoteMeta(fmt.Sprintf(format, fallback))
		pc.lastHref = regexp.MustCompile(href + `(\D|$)`)
	}
	return pc
}

// Fallback returns the configured fallback page count
func (pc *PageCounter) Fallback() int {
	return pc.fallback
}

// CountPages returns the total page count, always at least 1
func (pc *PageCounter) CountPages(markup []byte) int {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		pc.logger.Error().Err(err).Msg("failed to parse listing root page")
		return pc.fallback
	}

	region, ok := firstBySelectors(doc.Selection, pc.rules.Pagination.Region)
	if !ok {
		pc.logger.Info().Int("pages", pc.fallback).Msg("no pagination found, using default page count")
		return pc.fallback
	}

	if max, ok := pc.maxPageNumber(region); ok {
		pc.logger.Info().Int("pages", max).Msg("found total pages from pagination")
		return max
	}

	if pc.hasEllipsis(region) {
		pc.logger.Info().Int("pages", pc.fallback).Msg("found ellipsis in pagination, using default page count")
		return pc.fallback
	}

	if pc.hasLastPageLink(region) {
		pc.logger.Info().Int("pages", pc.fallback).Msg("found direct link to last known page")
		return pc.fallback
	}

	pc.logger.Info().Int("pages", pc.fallback).Msg("using default page count")
	return pc.fallback
}

// maxPageNumber returns the largest numeric page link inside the pager
func (pc *PageCounter) maxPageNumber(region *goquery.Selection) (int, bool) {
	max := 0
	region.Find(pc.rules.Pagination.Links).Each(func(_ int, link *goquery.Selection) {
		text := strings.TrimSpace(link.Text())
		if !isDigits(text) {
			return
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return
		}
		if n > max {
			max = n
		}
	})
	return max, max >= 1
}

func (pc *PageCounter) hasEllipsis(region *goquery.Selection) bool {
	if pc.rules.Pagination.Ellipsis == "" {
		return false
	}
	return region.Find(pc.rules.Pagination.Ellipsis).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Text() == pc.rules.Pagination.EllipsisText
	}).Length() > 0
}

func (pc *PageCounter) hasLastPageLink(region *goquery.Selection) bool {
	if pc.lastHref == nil {
		return false
	}
	return region.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return pc.lastHref.MatchString(s.AttrOr("href", ""))
	}).Length() > 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
