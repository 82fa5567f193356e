package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EllipsisMarker is appended to any text cut at a character limit
const EllipsisMarker = "..."

// normalizeWhitespace replaces various unicode whitespace characters with regular spaces
// and collapses runs of them into one
func normalizeWhitespace(text string) string {
	normalized := strings.Builder{}
	for _, r := range text {
		if unicode.IsSpace(r) {
			normalized.WriteRune(' ')
		} else {
			normalized.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(normalized.String()), " ")
}

// truncateChars cuts text to at most limit characters (runes) and appends
// EllipsisMarker when anything was cut
func truncateChars(text string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:limit]) + EllipsisMarker, true
}
