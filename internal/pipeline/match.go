// Package pipeline implements the news aggregation pipelines: tiered
// degradation control, portfolio relevance matching, deduplication and
// ranking. All state is request-scoped; nothing here is stored.
package pipeline

import (
	"strings"

	"github.com/sharadvm/stockpulse/pkg/models"
	"github.com/sharadvm/stockpulse/pkg/utils"
)

// minNameTokenLen excludes short company-name tokens ("of", "and", "the")
// from fuzzy matching.
const minNameTokenLen = 3

// MatchHoldings returns the portfolio symbols a headline references, in
// portfolio order, each at most once. A holding matches when the title
// contains its symbol (with or without a Ltd/Limited suffix) or any long
// token of its company name. Deliberately permissive: missed portfolio news
// is worse than the occasional false positive.
func MatchHoldings(title string, portfolio models.Portfolio) []string {
	titleLower := strings.ToLower(title)

	var matched []string
	for _, h := range portfolio {
		if matchesHolding(titleLower, h) {
			matched = append(matched, h.Symbol)
		}
	}
	return matched
}

func matchesHolding(titleLower string, h models.Holding) bool {
	symbol := strings.ToLower(h.Symbol)
	if symbol != "" && strings.Contains(titleLower, symbol) {
		return true
	}

	stripped := strings.ToLower(utils.StripCorpSuffix(h.Symbol))
	if stripped != "" && strings.Contains(titleLower, stripped) {
		return true
	}

	for _, token := range utils.NameTokens(h.Name, minNameTokenLen) {
		if strings.Contains(titleLower, token) {
			return true
		}
	}
	return false
}

// TagRelevant applies the matcher to a batch of candidates, keeping only
// those that reference at least one holding and tagging them with the
// matched symbols.
func TagRelevant(candidates []models.Article, portfolio models.Portfolio) []models.Article {
	var relevant []models.Article
	for _, a := range candidates {
		if len(a.RelevantStocks) > 0 {
			// Pre-tagged (targeted per-holding search results).
			relevant = append(relevant, a)
			continue
		}
		if symbols := MatchHoldings(a.Title, portfolio); len(symbols) > 0 {
			a.RelevantStocks = symbols
			relevant = append(relevant, a)
		}
	}
	return relevant
}
