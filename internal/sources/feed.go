package sources

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/sharadvm/stockpulse/pkg/models"
	"github.com/sharadvm/stockpulse/pkg/utils"
)

// feedItemCap bounds how many items one feed contributes.
const feedItemCap = 15

// searchItemCap bounds how many items one Google News search contributes.
const searchItemCap = 5

// ParseFeed converts raw RSS/Atom XML into candidate articles. gofeed
// detects RSS `item` vs Atom `entry` containers and pulls Atom links from
// the href attribute when the element text is empty, which covers the whole
// roster. Malformed XML yields an empty slice.
func ParseFeed(xml string, target FeedTarget) []models.Article {
	feed, err := gofeed.NewParser().ParseString(xml)
	if err != nil {
		return nil
	}

	var articles []models.Article
	for _, item := range feed.Items {
		if len(articles) >= feedItemCap {
			break
		}

		title := utils.CleanTitle(item.Title)
		if len(title) <= 15 || utils.LooksLikeAd(title) {
			continue
		}

		link := strings.TrimSpace(item.Link)
		if link == "" {
			link = target.URL
		}

		timestamp := "Recent"
		if item.PublishedParsed != nil {
			timestamp = utils.RelativeTime(*item.PublishedParsed)
		} else if ts := utils.FormatTimestamp(item.Published); ts != "" {
			timestamp = ts
		}

		articles = append(articles, models.Article{
			Title:     title,
			URL:       link,
			Source:    target.Source,
			Timestamp: timestamp,
			Category:  models.CategoryRSS,
		})
	}

	return articles
}

// HoldingSearchQueries returns the Google News search queries issued for
// one portfolio holding.
func HoldingSearchQueries(h models.Holding) []string {
	return []string{
		fmt.Sprintf("%s stock news", h.Symbol),
		fmt.Sprintf("%s share price", h.Name),
		fmt.Sprintf("%s earnings", h.Symbol),
		fmt.Sprintf("%s quarterly results", h.Name),
	}
}

// GoogleNewsSearchURL builds the Google News India RSS search URL for a
// query.
func GoogleNewsSearchURL(query string) string {
	q := url.QueryEscape(query + " India stock market")
	return fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en", q)
}

// ParseSearchFeed converts a Google News search result feed into candidate
// articles pre-tagged with the holding's symbol.
func ParseSearchFeed(xml string, symbol string) []models.Article {
	feed, err := gofeed.NewParser().ParseString(xml)
	if err != nil {
		return nil
	}

	var articles []models.Article
	for _, item := range feed.Items {
		if len(articles) >= searchItemCap {
			break
		}

		title := utils.CleanTitle(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		timestamp := "Recent"
		if item.PublishedParsed != nil {
			timestamp = utils.RelativeTime(*item.PublishedParsed)
		}

		articles = append(articles, models.Article{
			Title:          title,
			URL:            link,
			Source:         "Google News",
			Timestamp:      timestamp,
			Category:       models.CategoryRSS,
			RelevantStocks: []string{symbol},
		})
	}

	return articles
}
