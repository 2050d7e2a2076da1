// Package text holds the small string helpers shared by the renderers.
package text

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// Ellipsis marks truncated text.
	Ellipsis = "..."

	// RawBodyPreviewLimit bounds the raw body shown for a malformed response.
	RawBodyPreviewLimit = 500

	// SourcePreviewLimit bounds the content shown for one source.
	SourcePreviewLimit = 300
)

// Truncate keeps the first limit characters of s and appends Ellipsis when
// anything was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit]) + Ellipsis
}

// SplitParagraphs splits s on blank-line boundaries and drops paragraphs that
// contain only whitespace. Kept paragraphs are returned unmodified.
func SplitParagraphs(s string) []string {
	parts := strings.Split(s, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}

// SplitLines splits a paragraph on single newlines.
func SplitLines(paragraph string) []string {
	return strings.Split(paragraph, "\n")
}

// Percent converts a 0..1 score into a rounded percentage.
func Percent(score float64) int {
	return int(math.Round(score * 100))
}
