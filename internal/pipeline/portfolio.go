package pipeline

import (
	"context"
	"log"

	"github.com/sharadvm/stockpulse/internal/config"
	"github.com/sharadvm/stockpulse/internal/sources"
	"github.com/sharadvm/stockpulse/pkg/models"
)

// searchHoldingLimit caps the per-holding search tier: targeted queries are
// slow (four feed fetches per holding), so only the top holdings get them.
const searchHoldingLimit = 3

// Portfolio runs the holding-specific cascade: scrape general market pages
// and keep only headlines that mention a holding, escalate to targeted
// per-holding searches and the portfolio feed roster when coverage is thin,
// and synthesize monitoring placeholders when it is nearly empty.
type Portfolio struct {
	fetcher SourceFetcher
	cfg     config.PipelineConfig
}

// NewPortfolio builds the portfolio pipeline around a fetcher.
func NewPortfolio(fetcher SourceFetcher, cfg config.PipelineConfig) *Portfolio {
	return &Portfolio{fetcher: fetcher, cfg: cfg}
}

// Run executes the cascade for one portfolio. A panic degrades to one
// generated notice per holding rather than surfacing an error.
func (p *Portfolio) Run(ctx context.Context, portfolio models.Portfolio) (result models.PortfolioNewsResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("portfolio pipeline panicked: %v", r)
			result = PortfolioEmergencyResult(portfolio)
		}
	}()

	scraped := p.fetcher.ScrapeSites(ctx, sources.PortfolioScrapeTargets, sources.PortfolioExtractOptions())
	news := TagRelevant(scraped, portfolio)

	if len(news) < p.cfg.FeedThreshold {
		log.Printf("scraping matched %d portfolio items, escalating to targeted search", len(news))
		for i, h := range portfolio {
			if i >= searchHoldingLimit {
				break
			}
			news = append(news, p.fetcher.SearchHoldingNews(ctx, h)...)
		}
	}

	// The portfolio feed roster always runs: it is cheap and broadcast
	// feeds regularly carry holding mentions the section pages miss.
	feedItems := p.fetcher.FetchFeeds(ctx, sources.PortfolioFeedTargets)
	news = append(news, TagRelevant(feedItems, portfolio)...)

	if len(news) < p.cfg.FallbackThreshold {
		log.Printf("live sources matched %d portfolio items, generating placeholders", len(news))
		news = append(news, PlaceholderArticles(portfolio)...)
	}

	unique := Cap(Dedupe(FilterPortfolio(news)), p.cfg.ResultCap)

	return models.PortfolioNewsResult{
		PortfolioNews:   unique,
		TotalFound:      len(unique),
		PortfolioStocks: portfolio.Symbols(),
	}
}

// PortfolioEmergencyResult is the canned response the portfolio pipeline
// serves when everything else has failed.
func PortfolioEmergencyResult(portfolio models.Portfolio) models.PortfolioNewsResult {
	news := PortfolioEmergencyArticles(portfolio)
	return models.PortfolioNewsResult{
		PortfolioNews:   news,
		TotalFound:      len(news),
		PortfolioStocks: portfolio.Symbols(),
		Source:          models.QualityFallback,
		Error:           "Portfolio news temporarily unavailable",
	}
}
