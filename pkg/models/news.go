// Package models defines the core data structures used throughout StockPulse.
package models

// Category classifies where an article came from. It drives ranking and
// display only; it carries no behavior.
type Category string

const (
	CategoryMarket    Category = "market"    // scraped from a news site
	CategoryRSS       Category = "rss"       // parsed from an RSS/Atom feed
	CategoryFallback  Category = "fallback"  // hand-authored static headline
	CategoryEmergency Category = "emergency" // minimal set, pipeline crashed
	CategoryError     Category = "error"
)

// RankPriority returns the sort priority for a category. Lower sorts first.
func (c Category) RankPriority() int {
	switch c {
	case CategoryMarket:
		return 0
	case CategoryRSS:
		return 1
	case CategoryFallback:
		return 2
	default:
		return 3
	}
}

// SourceQuality labels the overall quality of an aggregation response.
// It is derived from the final merged category counts, not from which
// tiers executed.
type SourceQuality string

const (
	QualityScraped   SourceQuality = "scraped"
	QualityMixed     SourceQuality = "mixed"
	QualityLimited   SourceQuality = "limited"
	QualityFallback  SourceQuality = "fallback"
	QualityEmergency SourceQuality = "emergency"
	QualityError     SourceQuality = "error"
)

// Article is a single news item, either a freshly extracted candidate or a
// final deduplicated result. Articles live for one aggregation call and are
// never stored.
type Article struct {
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Source         string   `json:"source"`
	Timestamp      string   `json:"timestamp"` // human-relative, e.g. "3 hours ago"
	Category       Category `json:"category,omitempty"`
	RelevantStocks []string `json:"relevantStocks,omitempty"`
	IsGenerated    bool     `json:"isGenerated,omitempty"` // synthesized placeholder
}

// NewsBreakdown reports per-category counts in a final response.
type NewsBreakdown struct {
	Scraped  int `json:"scraped"`
	RSS      int `json:"rss"`
	Fallback int `json:"fallback"`
}

// NewsResult is the outcome of the general news pipeline.
type NewsResult struct {
	News       []Article     `json:"news"`
	Source     SourceQuality `json:"source"`
	TotalFound int           `json:"totalFound"`
	Breakdown  NewsBreakdown `json:"breakdown"`
	Error      string        `json:"error,omitempty"`
}

// PortfolioNewsResult is the outcome of the portfolio news pipeline.
type PortfolioNewsResult struct {
	PortfolioNews   []Article     `json:"portfolioNews"`
	TotalFound      int           `json:"totalFound"`
	PortfolioStocks []string      `json:"portfolioStocks"`
	Source          SourceQuality `json:"source,omitempty"`
	Error           string        `json:"error,omitempty"`
}
