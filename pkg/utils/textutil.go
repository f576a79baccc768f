// Package utils provides small text, time, and symbol helpers shared by the
// StockPulse pipeline.
package utils

import (
	"html"
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanTitle normalizes an extracted headline: decodes HTML entities,
// strips control characters and collapses runs of whitespace.
// Idempotent: CleanTitle(CleanTitle(s)) == CleanTitle(s).
func CleanTitle(title string) string {
	s := html.UnescapeString(title)
	s = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ", " ", " ").Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// NormalizeForDedup lowers a title and strips non-word characters so that
// trivially re-punctuated duplicates compare equal.
func NormalizeForDedup(title string) string {
	s := strings.ToLower(title)
	s = nonWordRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// adKeywords mark titles that are navigation or promotional fragments, not
// news.
var adKeywords = []string{"advertisement", "sponsored"}

// LooksLikeAd reports whether a title contains a known ad/promo marker.
func LooksLikeAd(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range adKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
