package utils

import "strings"

// NormalizeSymbol uppercases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// corpSuffixes are legal-form suffixes that headlines routinely omit
// ("Infosys Ltd" appears as "Infosys").
var corpSuffixes = []string{"limited", "ltd"}

// StripCorpSuffix removes a trailing Ltd/Limited (any case) from a symbol
// or company name, for fuzzy headline matching.
func StripCorpSuffix(s string) string {
	out := strings.TrimSpace(s)
	lower := strings.ToLower(out)
	for _, suffix := range corpSuffixes {
		if strings.HasSuffix(lower, suffix) {
			out = strings.TrimSpace(out[:len(out)-len(suffix)])
			lower = strings.ToLower(out)
		}
	}
	return out
}

// NameTokens splits a lowercased company name into matchable tokens,
// keeping only tokens longer than minLen (short tokens like "of" or "and"
// match everything).
func NameTokens(name string, minLen int) []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(name)) {
		if len(tok) > minLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
