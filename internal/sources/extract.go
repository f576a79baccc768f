package sources

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sharadvm/stockpulse/pkg/models"
	"github.com/sharadvm/stockpulse/pkg/utils"
)

// ExtractOptions bound one extraction pass.
type ExtractOptions struct {
	MaxItems     int  // per-source candidate cap
	MinTitleLen  int  // accept a title selector hit only above this length
	MarketFilter bool // require a market keyword (unless profile is Trusted)
}

// DefaultExtractOptions matches the general news pipeline: up to 20
// candidates per site, titles above 15 chars, market-keyword gated.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{MaxItems: 20, MinTitleLen: 15, MarketFilter: true}
}

// PortfolioExtractOptions is looser: the relevance matcher downstream is the
// real filter, so take more and shorter candidates.
func PortfolioExtractOptions() ExtractOptions {
	return ExtractOptions{MaxItems: 30, MinTitleLen: 10, MarketFilter: false}
}

// containerCascade lists generic container patterns tried after the
// profile's own selector. Target markup drifts; the first pattern yielding
// at least one match wins.
var containerCascade = []string{
	"article, .article",
	".story, .news-story",
	".news-item, .news-card",
	".content-item, .post",
	`[class*="story"], [class*="news"], [class*="article"]`,
}

// titleCascade lists generic title/link patterns tried after the profile's
// own selector, inside one matched container.
var titleCascade = []string{
	"h1 a, h2 a, h3 a, h4 a, h5 a",
	".title a, .headline a, .story-title a",
	`a[href*="/news/"], a[href*="/story/"], a[href*="/article/"]`,
	".link a, .news-link a",
}

// timeCascade lists generic timestamp patterns tried after the profile's
// own selector.
var timeCascade = []string{
	".time, .date, .timestamp, .ago",
	"[data-time], [data-date]",
	".publish-date, .story-date, .news-time",
	".meta-time, .article-time, .post-time",
}

// ExtractArticles pulls candidate articles out of raw page markup using the
// profile's selector cascade. Output preserves document order and is capped
// by opts.MaxItems. A page that matches nothing yields an empty slice, never
// an error: parse trouble on one source must not fail the pipeline.
func ExtractArticles(markup string, profile Profile, opts ExtractOptions) []models.Article {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	containers := selectContainers(doc, profile)
	if containers == nil {
		return nil
	}

	var articles []models.Article
	containers.EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(articles) >= opts.MaxItems {
			return false
		}

		title, link := extractTitle(sel, profile, opts.MinTitleLen)
		if title == "" {
			return true
		}

		title = utils.CleanTitle(title)
		if !validTitle(title) {
			return true
		}
		if opts.MarketFilter && !profile.Trusted && !isMarketRelated(title) {
			return true
		}

		timestamp := utils.FormatTimestamp(extractTime(sel, profile))
		if timestamp == "" {
			timestamp = "Just now"
		}

		articles = append(articles, models.Article{
			Title:     title,
			URL:       resolveLink(link, profile.URL),
			Source:    profile.Source,
			Timestamp: timestamp,
			Category:  models.CategoryMarket,
		})
		return true
	})

	return articles
}

// selectContainers tries the profile's container selector first, then the
// generic cascade, returning the first selection with at least one match.
func selectContainers(doc *goquery.Document, profile Profile) *goquery.Selection {
	cascade := append([]string{profile.Selectors.Container}, containerCascade...)
	for _, selector := range cascade {
		if selector == "" {
			continue
		}
		sel := doc.Find(selector)
		if sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// extractTitle tries the title cascade inside one container, returning the
// first hit whose text exceeds minLen, along with its link href.
func extractTitle(container *goquery.Selection, profile Profile, minLen int) (string, string) {
	cascade := append([]string{profile.Selectors.Title}, titleCascade...)
	for _, selector := range cascade {
		if selector == "" {
			continue
		}
		hit := container.Find(selector).First()
		if hit.Length() == 0 {
			continue
		}
		title := strings.TrimSpace(hit.Text())
		if len(title) > minLen {
			link, _ := hit.Attr("href")
			return title, link
		}
	}
	return "", ""
}

// extractTime tries the timestamp cascade, returning the first non-empty
// text.
func extractTime(container *goquery.Selection, profile Profile) string {
	cascade := append([]string{profile.Selectors.Time}, timeCascade...)
	for _, selector := range cascade {
		if selector == "" {
			continue
		}
		text := strings.TrimSpace(container.Find(selector).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// validTitle enforces the candidate-title invariant: bounded length and no
// ad/promo markers. Near-empty strings are navigation fragments; very long
// ones are concatenated page noise.
func validTitle(title string) bool {
	if len(title) <= 15 || len(title) >= 200 {
		return false
	}
	return !utils.LooksLikeAd(title)
}

// isMarketRelated reports whether a headline mentions any market keyword.
func isMarketRelated(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range marketKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// resolveLink makes a scraped href absolute against the source page URL.
// Unparseable links degrade to the source page itself.
func resolveLink(link, pageURL string) string {
	if link == "" {
		return pageURL
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return pageURL
	}
	return base.ResolveReference(ref).String()
}
