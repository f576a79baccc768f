package sources

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sharadvm/stockpulse/internal/config"
	"github.com/sharadvm/stockpulse/pkg/models"
)

// Fetcher issues concurrent fetches against the site and feed rosters.
// Every per-source failure is isolated: it is logged, the source
// contributes nothing, and the siblings keep running.
type Fetcher struct {
	client  *http.Client
	cfg     config.FetchConfig
	limiter *RateLimiter
}

// FetcherOption configures the fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (used by tests to point at mock
// servers).
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = client }
}

// NewFetcher creates a fetcher with the given fetch configuration.
func NewFetcher(cfg config.FetchConfig, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		cfg:     cfg,
		limiter: NewRateLimiter(4, time.Second),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ScrapeSites fetches and extracts all scrape targets concurrently,
// returning the merged candidates in roster order. Goroutine starts are
// staggered by the politeness delay so same-tier requests do not land on
// the sites in one burst.
func (f *Fetcher) ScrapeSites(ctx context.Context, profiles []Profile, opts ExtractOptions) []models.Article {
	results := make([][]models.Article, len(profiles))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		delay := time.Duration(i) * f.cfg.Politeness()
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			case <-time.After(delay):
			}

			articles, err := f.scrapeOne(gctx, profile, opts)
			if err != nil {
				log.Printf("sources: scrape %s: %v", profile.Source, err)
				return nil // isolate: a dead site never fails the tier
			}

			mu.Lock()
			results[i] = articles
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	return flatten(results)
}

func (f *Fetcher) scrapeOne(ctx context.Context, profile Profile, opts ExtractOptions) ([]models.Article, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	markup, err := fetchBody(ctx, f.client, profile.URL, f.cfg.ScrapeTimeout(), map[string]string{
		"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	})
	if err != nil {
		return nil, err
	}

	articles := ExtractArticles(markup, profile, opts)
	log.Printf("sources: %s: %d candidates", profile.Source, len(articles))
	return articles, nil
}

// FetchFeeds fetches and parses all feed targets concurrently, returning
// the merged items in roster order.
func (f *Fetcher) FetchFeeds(ctx context.Context, targets []FeedTarget) []models.Article {
	results := make([][]models.Article, len(targets))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		delay := time.Duration(i) * f.cfg.Politeness()
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			case <-time.After(delay):
			}

			items, err := f.fetchOneFeed(gctx, target)
			if err != nil {
				log.Printf("sources: feed %s: %v", target.Source, err)
				return nil
			}

			mu.Lock()
			results[i] = items
			mu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	return flatten(results)
}

func (f *Fetcher) fetchOneFeed(ctx context.Context, target FeedTarget) ([]models.Article, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	xml, err := fetchBody(ctx, f.client, target.URL, f.cfg.FeedTimeout(), map[string]string{
		"User-Agent": feedUserAgent,
		"Accept":     "application/rss+xml, application/xml, text/xml, application/atom+xml",
	})
	if err != nil {
		return nil, err
	}

	items := ParseFeed(xml, target)
	log.Printf("sources: %s: %d items", target.Source, len(items))
	return items, nil
}

// SearchHoldingNews runs the Google News search queries for one holding,
// sequentially with politeness delays, merging the results. Individual
// query failures are skipped.
func (f *Fetcher) SearchHoldingNews(ctx context.Context, holding models.Holding) []models.Article {
	var articles []models.Article
	for _, query := range HoldingSearchQueries(holding) {
		xml, err := fetchBody(ctx, f.client, GoogleNewsSearchURL(query), f.cfg.FeedTimeout(), map[string]string{
			"User-Agent": feedUserAgent,
			"Accept":     "application/rss+xml, application/xml, text/xml",
		})
		if err != nil {
			log.Printf("sources: search %q: %v", query, err)
		} else {
			articles = append(articles, ParseSearchFeed(xml, holding.Symbol)...)
		}

		select {
		case <-ctx.Done():
			return articles
		case <-time.After(f.cfg.Politeness()):
		}
	}
	return articles
}

func flatten(results [][]models.Article) []models.Article {
	var merged []models.Article
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}
