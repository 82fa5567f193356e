package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"itproger-bot/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// ComingSoonText is returned whenever no article body can be extracted
const ComingSoonText = "📝 Full article content will be available soon!"

// DefaultFullTextLimit caps the formatted article length in characters
const DefaultFullTextLimit = 4000

// minParagraphChars filters out short layout fragments
const minParagraphChars = 10

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// DetailParser turns an article page into lightly formatted text
type DetailParser struct {
	rules  *CompiledRules
	limit  int
	logger zerolog.Logger
}

// NewDetailParser creates a new DetailParser instance
func NewDetailParser(rules *CompiledRules, limit int, logger zerolog.Logger) *DetailParser {
	if limit <= 0 {
		limit = DefaultFullTextLimit
	}
	return &DetailParser{rules: rules, limit: limit, logger: logger}
}

// ComingSoon is the result used when nothing could be extracted
func ComingSoon() models.FullText {
	return models.FullText{Text: ComingSoonText}
}

// ParseDetailPage extracts the formatted body of an article page.
// The returned text is never empty.
func (dp *DetailParser) ParseDetailPage(markup []byte) models.FullText {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		dp.logger.Error().Err(err).Msg("failed to parse article page")
		return ComingSoon()
	}

	region, ok := dp.findContentRegion(doc)
	if !ok {
		dp.logger.Warn().Msg("no content region found")
		return ComingSoon()
	}

	if strip := dp.rules.Content.Strip; strip != "" {
		region.Find(strip).Remove()
	}

	text := dp.formatRegion(region)
	if text == "" {
		text = joinParagraphs(region)
	}
	if text == "" {
		return ComingSoon()
	}

	text, truncated := truncateChars(text, dp.limit)
	return models.FullText{Text: text, Truncated: truncated}
}

// findContentRegion tries the semantic article element, then content
// containers, then a post/article content class pattern
func (dp *DetailParser) findContentRegion(doc *goquery.Document) (*goquery.Selection, bool) {
	if sel, ok := firstBySelectors(doc.Selection, dp.rules.Content.Regions...); ok {
		return sel, true
	}
	return firstDivByClassPattern(doc.Selection, dp.rules.regionClass)
}

// formatRegion walks the structural elements of the region in document order.
// Nested elements are visited on their own too, so a paragraph inside a
// blockquote appears in both.
func (dp *DetailParser) formatRegion(region *goquery.Selection) string {
	var parts []string

	region.Find("h1, h2, h3, h4, p, pre, code, ul, ol, blockquote").Each(func(_ int, s *goquery.Selection) {
		if part, ok := formatElement(s); ok {
			parts = append(parts, part)
		}
	})

	result := excessNewlines.ReplaceAllString(strings.Join(parts, ""), "\n\n")
	return strings.TrimSpace(result)
}

// formatElement renders one element, ok is false when it yields nothing
func formatElement(s *goquery.Selection) (string, bool) {
	name := goquery.NodeName(s)
	text := strings.TrimSpace(s.Text())

	switch name {
	case "h1", "h2", "h3", "h4":
		if text == "" {
			return "", false
		}
		level := int(name[1] - '0')
		return fmt.Sprintf("%s %s\n\n", strings.Repeat("#", level), text), true

	case "p":
		if utf8.RuneCountInString(text) <= minParagraphChars {
			return "", false
		}
		return text + "\n\n", true

	case "pre":
		if text == "" {
			return "", false
		}
		return fmt.Sprintf("```\n%s\n```\n\n", text), true

	case "code":
		// code blocks are rendered by their pre
		if goquery.NodeName(s.Parent()) == "pre" || text == "" {
			return "", false
		}
		return fmt.Sprintf("`%s` ", text), true

	case "ul":
		return formatList(s, func(_ int) string { return "• " })

	case "ol":
		return formatList(s, func(i int) string { return fmt.Sprintf("%d. ", i+1) })

	case "blockquote":
		if text == "" {
			return "", false
		}
		return fmt.Sprintf("> %s\n\n", text), true
	}

	return "", false
}

// formatList renders list items one per line. Numbering follows item
// position, empty items are skipped.
func formatList(list *goquery.Selection, prefix func(i int) string) (string, bool) {
	var items []string
	list.Find("li").Each(func(i int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			items = append(items, prefix(i)+text)
		}
	})
	if len(items) == 0 {
		return "", false
	}
	return strings.Join(items, "\n") + "\n\n", true
}

// joinParagraphs is the plain fallback: every non-empty paragraph
func joinParagraphs(region *goquery.Selection) string {
	var paragraphs []string
	region.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}
