// Package sources fetches and extracts candidate news articles from Indian
// financial news sites and feeds. Every target is treated as unreliable and
// unversioned: extraction works through prioritized selector cascades, and a
// failing source always degrades to an empty result instead of an error.
package sources

// Selectors is a per-site extraction profile. Each field is the site's own
// best-known selector; the extractor falls back to generic cascades when a
// site redesign breaks it.
type Selectors struct {
	Container string
	Title     string
	Link      string
	Time      string
}

// Profile describes one scrape target.
type Profile struct {
	URL       string
	Source    string
	Selectors Selectors
	// Trusted skips the market-keyword relevance filter: everything on the
	// page is already market news.
	Trusted bool
}

// FeedTarget describes one RSS/Atom target.
type FeedTarget struct {
	URL    string
	Source string
}

// ScrapeTargets is the compiled-in roster for the general news pipeline.
var ScrapeTargets = []Profile{
	{
		URL:    "https://www.moneycontrol.com/news/business/markets/",
		Source: "Moneycontrol",
		Selectors: Selectors{
			Container: ".clearfix, .news_common_box, .listview",
			Title:     "h2 a, h3 a, .news_title a, .headline a",
			Link:      "h2 a, h3 a, .news_title a, .headline a",
			Time:      ".ago, .time, .news_date, .timestamp",
		},
		Trusted: true, // markets section, always relevant
	},
	{
		URL:    "https://economictimes.indiatimes.com/markets",
		Source: "Economic Times",
		Selectors: Selectors{
			Container: ".eachStory, .story-box, .news-item, .content",
			Title:     "h3 a, h4 a, .story-title a, .headline a, h2 a",
			Link:      "h3 a, h4 a, .story-title a, .headline a, h2 a",
			Time:      ".time, .publish-date, .story-date, .timestamp, .date",
		},
	},
	{
		URL:    "https://www.business-standard.com/markets",
		Source: "Business Standard",
		Selectors: Selectors{
			Container: ".listingstyle, .news-card, .story-card, .article",
			Title:     "h2 a, h3 a, .headline a, .title a",
			Link:      "h2 a, h3 a, .headline a, .title a",
			Time:      ".date, .time, .timestamp, .publish-date",
		},
	},
	{
		URL:    "https://www.livemint.com/market",
		Source: "Mint",
		Selectors: Selectors{
			Container: ".listView, .story, .article-item",
			Title:     "h2 a, h3 a, .headline a",
			Link:      "h2 a, h3 a, .headline a",
			Time:      ".date, .time, .timestamp",
		},
	},
}

// FeedTargets is the compiled-in RSS roster for the general pipeline's feed
// tier.
var FeedTargets = []FeedTarget{
	{URL: "https://feeds.feedburner.com/NDTVPROFIT-Latest", Source: "NDTV Profit"},
	{URL: "https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms", Source: "ET Markets RSS"},
	{URL: "https://www.business-standard.com/rss/markets-106.rss", Source: "BS Markets RSS"},
	{URL: "https://www.moneycontrol.com/rss/results.xml", Source: "Moneycontrol RSS"},
	{URL: "https://www.livemint.com/rss/markets", Source: "Mint Markets RSS"},
}

// PortfolioScrapeTargets is the roster for the portfolio pipeline. The
// selector profiles skew toward stock-specific sections.
var PortfolioScrapeTargets = []Profile{
	{
		URL:    "https://www.moneycontrol.com/news/business/markets/",
		Source: "Moneycontrol",
		Selectors: Selectors{
			Container: ".clearfix, .news_common_box, .news-item",
			Title:     "h2 a, h3 a, .news_title a, .news-title a",
			Link:      "h2 a, h3 a, .news_title a, .news-title a",
			Time:      ".ago, .time, .news_date, .news-time",
		},
		Trusted: true,
	},
	{
		URL:    "https://economictimes.indiatimes.com/markets",
		Source: "Economic Times",
		Selectors: Selectors{
			Container: ".eachStory, .story-box, .news-item",
			Title:     "h3 a, h4 a, .story-title a, .headline a",
			Link:      "h3 a, h4 a, .story-title a, .headline a",
			Time:      ".time, .publish-date, .story-date, .timestamp",
		},
	},
	{
		URL:    "https://www.business-standard.com/markets",
		Source: "Business Standard",
		Selectors: Selectors{
			Container: ".listingstyle, .news-card, .story-card",
			Title:     "h2 a, h3 a, .headline a",
			Link:      "h2 a, h3 a, .headline a",
			Time:      ".date, .time, .timestamp",
		},
	},
}

// PortfolioFeedTargets is the RSS roster for the portfolio pipeline's feed
// tier.
var PortfolioFeedTargets = []FeedTarget{
	{URL: "https://feeds.feedburner.com/NDTVPROFIT-Latest", Source: "NDTV Profit"},
	{URL: "https://economictimes.indiatimes.com/markets/stocks/rssfeeds/2146842.cms", Source: "ET Stocks RSS"},
	{URL: "https://www.business-standard.com/rss/markets-106.rss", Source: "BS Markets RSS"},
}

// marketKeywords gate scraped headlines to market-relevant news. A title
// from an untrusted profile must contain at least one.
var marketKeywords = []string{
	"stock", "share", "market", "nifty", "sensex", "bse", "nse",
	"trading", "investor", "equity", "mutual fund", "ipo", "fii",
	"earnings", "profit", "revenue", "quarterly", "results",
	"rupee", "dollar", "commodity", "gold", "crude", "banking",
}
