package analyst

import (
	"strings"

	"github.com/sharadvm/stockpulse/pkg/models"
)

// Keyword lists for the local scorer. Positive wins ties: both lists are
// checked in order and the first hit decides.
var (
	positiveWords = []string{
		"surge", "rally", "gain", "profit", "beats", "strong",
		"growth", "record", "high",
	}
	negativeWords = []string{
		"fall", "drop", "decline", "loss", "weak", "concern",
		"risk", "low",
	}
)

// heuristicRecord scores a headline by keyword matching. Used when the
// oracle replied but the reply could not be parsed into a record.
func heuristicRecord(item models.Article) models.SentimentRecord {
	title := strings.ToLower(item.Title)

	record := models.SentimentRecord{
		Sentiment:  models.SentimentNeutral,
		Confidence: 60,
		Reasoning:  "Market impact analysis based on news content.",
		Impact:     "Monitor for potential portfolio effects.",
		Timeframe:  models.TimeframeShort,
		RiskLevel:  models.RiskLow,
	}

	switch {
	case containsAny(title, positiveWords):
		record.Sentiment = models.SentimentPositive
		record.Confidence = 75
		record.Reasoning = "News contains positive market indicators suggesting potential upward movement."
		record.Impact = "Consider this positive development for related portfolio holdings."
	case containsAny(title, negativeWords):
		record.Sentiment = models.SentimentNegative
		record.Confidence = 75
		record.Reasoning = "News indicates potential market headwinds that could affect stock performance."
		record.Impact = "Exercise caution and monitor portfolio positions closely."
		record.RiskLevel = models.RiskMedium
	}

	if len(item.RelevantStocks) > 0 {
		record.SectorsAffected = item.RelevantStocks
	} else {
		record.SectorsAffected = []string{"general"}
	}

	return record
}

// placeholderRecord is the record of last resort, used when the oracle call
// itself failed. Flags the item for manual review rather than guessing.
func placeholderRecord() models.SentimentRecord {
	return models.SentimentRecord{
		Sentiment:       models.SentimentNeutral,
		Confidence:      50,
		Reasoning:       "Unable to perform detailed analysis due to technical limitations. Please review manually.",
		Impact:          "Manual review recommended to assess potential portfolio impact.",
		Timeframe:       models.TimeframeUnknown,
		SectorsAffected: []string{"general"},
		RiskLevel:       models.RiskMedium,
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
