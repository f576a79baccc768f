package pipeline

import (
	"sort"
	"strings"

	"github.com/sharadvm/stockpulse/pkg/models"
	"github.com/sharadvm/stockpulse/pkg/utils"
)

// Title length bounds for the general feed. Shorter strings are navigation
// fragments, longer ones are article lead paragraphs scraped by mistake.
const (
	generalTitleMin = 20
	generalTitleMax = 150

	portfolioTitleMin = 15
)

// FilterGeneral drops articles that fail the general-feed validity rules:
// title length within bounds, a link present, and no ad markers.
func FilterGeneral(articles []models.Article) []models.Article {
	var kept []models.Article
	for _, a := range articles {
		title := strings.TrimSpace(a.Title)
		if len(title) <= generalTitleMin || len(title) >= generalTitleMax {
			continue
		}
		if a.URL == "" {
			continue
		}
		if utils.LooksLikeAd(title) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// FilterPortfolio applies the looser portfolio validity rule. Placeholder
// articles carry no external link, so only the title is checked.
func FilterPortfolio(articles []models.Article) []models.Article {
	var kept []models.Article
	for _, a := range articles {
		if len(strings.TrimSpace(a.Title)) > portfolioTitleMin {
			kept = append(kept, a)
		}
	}
	return kept
}

// Dedupe removes articles whose normalized titles collide, keeping the
// first occurrence. Earlier tiers rank higher, so first-wins preserves the
// better copy. Idempotent.
func Dedupe(articles []models.Article) []models.Article {
	seen := make(map[string]bool, len(articles))
	var unique []models.Article
	for _, a := range articles {
		key := utils.NormalizeForDedup(a.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}
	return unique
}

// Rank orders articles by source tier (scraped, then feeds, then fallback,
// then emergency). The sort is stable so within-tier order from the source
// rosters is preserved.
func Rank(articles []models.Article) []models.Article {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Category.RankPriority() < articles[j].Category.RankPriority()
	})
	return articles
}

// Cap truncates to at most n articles.
func Cap(articles []models.Article, n int) []models.Article {
	if n >= 0 && len(articles) > n {
		return articles[:n]
	}
	return articles
}
