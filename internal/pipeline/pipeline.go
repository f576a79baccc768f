package pipeline

import (
	"context"
	"log"

	"github.com/sharadvm/stockpulse/internal/config"
	"github.com/sharadvm/stockpulse/internal/sources"
	"github.com/sharadvm/stockpulse/pkg/models"
)

// Source-quality label cutoffs, applied to the final merged set.
const (
	qualityScrapedMin = 15 // more than this many scraped items: "scraped"
	qualityMixedMin   = 10 // more than this many scraped+rss items: "mixed"
)

// SourceFetcher is the slice of the fetcher the pipelines use. Kept as an
// interface so pipeline tests can inject canned tier results.
type SourceFetcher interface {
	ScrapeSites(ctx context.Context, profiles []sources.Profile, opts sources.ExtractOptions) []models.Article
	FetchFeeds(ctx context.Context, targets []sources.FeedTarget) []models.Article
	SearchHoldingNews(ctx context.Context, holding models.Holding) []models.Article
}

// General runs the market-wide news pipeline: scrape the site roster, pull
// RSS feeds if scraping came up short, and pad with curated fallback
// headlines if both did. Always produces a usable result.
type General struct {
	fetcher SourceFetcher
	cfg     config.PipelineConfig
}

// NewGeneral builds the general pipeline around a fetcher.
func NewGeneral(fetcher SourceFetcher, cfg config.PipelineConfig) *General {
	return &General{fetcher: fetcher, cfg: cfg}
}

// Run executes the tier cascade and returns the merged, deduplicated,
// ranked result. A panic anywhere in the cascade degrades to the emergency
// set rather than surfacing an error.
func (p *General) Run(ctx context.Context) (result models.NewsResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("general pipeline panicked: %v", r)
			result = EmergencyResult()
		}
	}()

	news := p.fetcher.ScrapeSites(ctx, sources.ScrapeTargets, sources.DefaultExtractOptions())

	if len(news) < p.cfg.FeedThreshold {
		log.Printf("scraping found %d items, escalating to feeds", len(news))
		news = append(news, p.fetcher.FetchFeeds(ctx, sources.FeedTargets)...)
	}

	if len(news) < p.cfg.FallbackThreshold {
		log.Printf("live sources found %d items, padding with fallback set", len(news))
		news = append(news, FallbackArticles()...)
	}

	unique := Cap(Rank(Dedupe(FilterGeneral(news))), p.cfg.ResultCap)

	breakdown := countCategories(unique)
	return models.NewsResult{
		News:       unique,
		Source:     qualityLabel(breakdown),
		TotalFound: len(unique),
		Breakdown:  breakdown,
	}
}

// EmergencyResult is the canned response the general pipeline serves when
// everything else has failed.
func EmergencyResult() models.NewsResult {
	news := EmergencyArticles()
	return models.NewsResult{
		News:       news,
		Source:     models.QualityEmergency,
		TotalFound: len(news),
		Error:      "News service temporarily limited",
	}
}

func countCategories(articles []models.Article) models.NewsBreakdown {
	var b models.NewsBreakdown
	for _, a := range articles {
		switch a.Category {
		case models.CategoryMarket:
			b.Scraped++
		case models.CategoryRSS:
			b.RSS++
		case models.CategoryFallback:
			b.Fallback++
		}
	}
	return b
}

// qualityLabel derives the source-quality label from the final merged
// counts, not from which tiers ran. A tier that ran but contributed only
// duplicates should not claim credit.
func qualityLabel(b models.NewsBreakdown) models.SourceQuality {
	live := b.Scraped + b.RSS
	switch {
	case b.Scraped > qualityScrapedMin:
		return models.QualityScraped
	case live > qualityMixedMin:
		return models.QualityMixed
	case b.Fallback > live:
		return models.QualityFallback
	default:
		return models.QualityLimited
	}
}
