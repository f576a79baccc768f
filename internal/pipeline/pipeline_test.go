package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sharadvm/stockpulse/internal/config"
	"github.com/sharadvm/stockpulse/internal/sources"
	"github.com/sharadvm/stockpulse/pkg/models"
)

// fakeFetcher returns canned articles per tier and records which tiers ran.
type fakeFetcher struct {
	scraped []models.Article
	feeds   []models.Article
	search  []models.Article

	scrapeCalled bool
	feedsCalled  bool
	searchCalls  int
	panicOnFetch bool
}

func (f *fakeFetcher) ScrapeSites(ctx context.Context, profiles []sources.Profile, opts sources.ExtractOptions) []models.Article {
	if f.panicOnFetch {
		panic("connection pool exhausted")
	}
	f.scrapeCalled = true
	return f.scraped
}

func (f *fakeFetcher) FetchFeeds(ctx context.Context, targets []sources.FeedTarget) []models.Article {
	f.feedsCalled = true
	return f.feeds
}

func (f *fakeFetcher) SearchHoldingNews(ctx context.Context, holding models.Holding) []models.Article {
	f.searchCalls++
	return f.search
}

func generalConfig() config.PipelineConfig {
	return config.PipelineConfig{FeedThreshold: 15, FallbackThreshold: 8, ResultCap: 30}
}

func portfolioConfig() config.PipelineConfig {
	return config.PipelineConfig{FeedThreshold: 5, FallbackThreshold: 3, ResultCap: 20}
}

func scrapedArticles(n int) []models.Article {
	articles := make([]models.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, models.Article{
			Title:     fmt.Sprintf("Sensex climbs as index heavyweights advance in session %02d", i),
			URL:       fmt.Sprintf("https://example.com/story/%d", i),
			Source:    "Moneycontrol",
			Timestamp: "1 hour ago",
			Category:  models.CategoryMarket,
		})
	}
	return articles
}

func TestGeneralTierEscalation(t *testing.T) {
	tests := []struct {
		name         string
		scraped      int
		wantFeeds    bool
		wantFallback bool
	}{
		{"scraping plentiful", 16, false, false},
		{"below feed threshold", 14, true, false},
		{"below fallback threshold", 7, true, true},
		{"nothing scraped", 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{scraped: scrapedArticles(tt.scraped)}
			result := NewGeneral(fetcher, generalConfig()).Run(context.Background())

			if !fetcher.scrapeCalled {
				t.Fatal("scrape tier never ran")
			}
			if fetcher.feedsCalled != tt.wantFeeds {
				t.Errorf("feeds tier ran = %v, want %v", fetcher.feedsCalled, tt.wantFeeds)
			}
			hasFallback := result.Breakdown.Fallback > 0
			if hasFallback != tt.wantFallback {
				t.Errorf("fallback items present = %v, want %v", hasFallback, tt.wantFallback)
			}
			if result.TotalFound != len(result.News) {
				t.Errorf("totalFound = %d, want %d", result.TotalFound, len(result.News))
			}
			if result.TotalFound == 0 {
				t.Error("pipeline returned an empty result")
			}
		})
	}
}

func TestGeneralRanksScrapedAboveFallback(t *testing.T) {
	fetcher := &fakeFetcher{scraped: scrapedArticles(5)}
	result := NewGeneral(fetcher, generalConfig()).Run(context.Background())

	seenFallback := false
	for _, a := range result.News {
		if a.Category == models.CategoryFallback {
			seenFallback = true
		}
		if seenFallback && a.Category == models.CategoryMarket {
			t.Fatalf("scraped article %q ranked below a fallback article", a.Title)
		}
	}
	if !seenFallback {
		t.Fatal("expected fallback articles in a thin result")
	}
}

func TestGeneralCapsResults(t *testing.T) {
	fetcher := &fakeFetcher{scraped: scrapedArticles(45)}
	result := NewGeneral(fetcher, generalConfig()).Run(context.Background())

	if len(result.News) != 30 {
		t.Errorf("result size = %d, want 30", len(result.News))
	}
	if result.Source != models.QualityScraped {
		t.Errorf("source = %q, want %q", result.Source, models.QualityScraped)
	}
}

func TestGeneralRecoversToEmergency(t *testing.T) {
	fetcher := &fakeFetcher{panicOnFetch: true}
	result := NewGeneral(fetcher, generalConfig()).Run(context.Background())

	if result.Source != models.QualityEmergency {
		t.Fatalf("source = %q, want %q", result.Source, models.QualityEmergency)
	}
	if result.Error == "" {
		t.Error("emergency result should carry an error message")
	}
	if len(result.News) != 3 {
		t.Errorf("emergency set size = %d, want 3", len(result.News))
	}
	for _, a := range result.News {
		if a.Source != "Market Monitor" {
			t.Errorf("emergency source = %q, want Market Monitor", a.Source)
		}
	}
}

func TestQualityLabel(t *testing.T) {
	tests := []struct {
		name      string
		breakdown models.NewsBreakdown
		want      models.SourceQuality
	}{
		{"scraping dominant", models.NewsBreakdown{Scraped: 16}, models.QualityScraped},
		{"scraped at cutoff is not dominant", models.NewsBreakdown{Scraped: 15}, models.QualityMixed},
		{"mixed live sources", models.NewsBreakdown{Scraped: 6, RSS: 6}, models.QualityMixed},
		{"fallback dominant", models.NewsBreakdown{Scraped: 1, RSS: 1, Fallback: 8}, models.QualityFallback},
		{"thin but live", models.NewsBreakdown{Scraped: 3, RSS: 2, Fallback: 4}, models.QualityLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := qualityLabel(tt.breakdown); got != tt.want {
				t.Errorf("qualityLabel(%+v) = %q, want %q", tt.breakdown, got, tt.want)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	articles := []models.Article{
		{Title: "Sensex surges 450 points!", Category: models.CategoryMarket},
		{Title: "sensex surges 450 points", Category: models.CategoryRSS},
		{Title: "Nifty holds above 24,000", Category: models.CategoryRSS},
	}

	unique := Dedupe(articles)
	if len(unique) != 2 {
		t.Fatalf("got %d articles, want 2", len(unique))
	}
	if unique[0].Category != models.CategoryMarket {
		t.Errorf("dedupe kept %q copy, want the first (market) occurrence", unique[0].Category)
	}

	again := Dedupe(unique)
	if len(again) != len(unique) {
		t.Errorf("second dedupe changed size from %d to %d", len(unique), len(again))
	}
}

func TestFilterGeneral(t *testing.T) {
	long := strings.Repeat("x", 160)
	articles := []models.Article{
		{Title: "Sensex surges 450 points to hit fresh record high", URL: "https://x.test/1"},
		{Title: "Markets today", URL: "https://x.test/2"},                       // too short
		{Title: long, URL: "https://x.test/3"},                                  // too long
		{Title: "Banking stocks rally on strong quarterly results"},             // no URL
		{Title: "Sponsored: the best trading platform of 2026 revealed", URL: "https://x.test/4"},
	}

	kept := FilterGeneral(articles)
	if len(kept) != 1 {
		t.Fatalf("got %d articles, want 1: %+v", len(kept), kept)
	}
}

func TestMatchHoldings(t *testing.T) {
	portfolio := models.Portfolio{
		{Symbol: "TCS", Name: "Tata Consultancy Services"},
		{Symbol: "HDFCBANK", Name: "HDFC Bank Ltd"},
		{Symbol: "RELIANCE", Name: "Reliance Industries Ltd"},
	}

	tests := []struct {
		title string
		want  []string
	}{
		{"TCS wins $2 billion multi-year deal from US bank", []string{"TCS"}},
		{"tcs shares hit 52-week high after earnings", []string{"TCS"}},
		{"Reliance Industries Q3 profit jumps 18%", []string{"RELIANCE"}},
		{"Consultancy majors see hiring rebound", []string{"TCS"}},
		{"Hdfcbank announces large QIP issue", []string{"HDFCBANK"}},
		{"Gold prices steady ahead of Fed decision", nil},
	}

	for _, tt := range tests {
		got := MatchHoldings(tt.title, portfolio)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("MatchHoldings(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestMatchHoldingsNoDuplicateSymbols(t *testing.T) {
	portfolio := models.Portfolio{{Symbol: "INFY", Name: "Infosys Ltd"}}
	got := MatchHoldings("Infosys beats estimates; INFY stock surges as Infosys raises guidance", portfolio)
	if len(got) != 1 || got[0] != "INFY" {
		t.Errorf("got %v, want [INFY]", got)
	}
}

func TestPortfolioEscalation(t *testing.T) {
	portfolio := models.Portfolio{
		{Symbol: "TCS", Name: "Tata Consultancy Services"},
		{Symbol: "INFY", Name: "Infosys Ltd"},
		{Symbol: "WIPRO", Name: "Wipro Ltd"},
		{Symbol: "HCLTECH", Name: "HCL Technologies"},
	}

	t.Run("thin coverage triggers limited search", func(t *testing.T) {
		fetcher := &fakeFetcher{
			scraped: []models.Article{{
				Title:    "TCS wins $2 billion multi-year deal from US bank",
				URL:      "https://x.test/tcs",
				Category: models.CategoryMarket,
			}},
		}
		NewPortfolio(fetcher, portfolioConfig()).Run(context.Background(), portfolio)

		if fetcher.searchCalls != 3 {
			t.Errorf("search ran for %d holdings, want 3 (top holdings only)", fetcher.searchCalls)
		}
		if !fetcher.feedsCalled {
			t.Error("portfolio feed roster should always run")
		}
	})

	t.Run("empty coverage generates placeholders", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		result := NewPortfolio(fetcher, portfolioConfig()).Run(context.Background(), portfolio)

		if len(result.PortfolioNews) != len(portfolio) {
			t.Fatalf("got %d placeholders, want %d", len(result.PortfolioNews), len(portfolio))
		}
		for i, a := range result.PortfolioNews {
			if !a.IsGenerated {
				t.Errorf("article %d not marked generated", i)
			}
			if len(a.RelevantStocks) != 1 || a.RelevantStocks[0] != portfolio[i].Symbol {
				t.Errorf("article %d relevantStocks = %v, want [%s]", i, a.RelevantStocks, portfolio[i].Symbol)
			}
		}
	})

	t.Run("irrelevant headlines are dropped", func(t *testing.T) {
		fetcher := &fakeFetcher{scraped: scrapedArticles(10)}
		result := NewPortfolio(fetcher, portfolioConfig()).Run(context.Background(), portfolio)

		for _, a := range result.PortfolioNews {
			if !a.IsGenerated {
				t.Errorf("headline %q kept without a holding match", a.Title)
			}
		}
	})
}

func TestPortfolioRecoversToFallback(t *testing.T) {
	portfolio := models.Portfolio{{Symbol: "TCS", Name: "Tata Consultancy Services"}}
	fetcher := &fakeFetcher{panicOnFetch: true}
	result := NewPortfolio(fetcher, portfolioConfig()).Run(context.Background(), portfolio)

	if result.Source != models.QualityFallback {
		t.Errorf("source = %q, want %q", result.Source, models.QualityFallback)
	}
	if result.Error == "" {
		t.Error("fallback result should carry an error message")
	}
	if len(result.PortfolioNews) != 1 || !result.PortfolioNews[0].IsGenerated {
		t.Errorf("fallback news = %+v, want one generated notice", result.PortfolioNews)
	}
}
