package analyst

import (
	"fmt"
	"math"

	"github.com/sharadvm/stockpulse/pkg/models"
)

// Aggregate reduces a batch of records to an overall reading: dominant
// sentiment class, mean confidence, and a one-line summary. Returns nil for
// an empty batch. Ties resolve positive over negative over neutral.
func Aggregate(analyses []models.SentimentRecord) *models.AggregateSentiment {
	if len(analyses) == 0 {
		return nil
	}

	var breakdown models.SentimentBreakdown
	var totalConfidence float64

	for _, a := range analyses {
		switch a.Sentiment {
		case models.SentimentPositive:
			breakdown.Positive++
		case models.SentimentNegative:
			breakdown.Negative++
		default:
			breakdown.Neutral++
		}
		totalConfidence += a.Confidence
	}

	avgConfidence := int(math.Round(totalConfidence / float64(len(analyses))))

	dominant := models.SentimentPositive
	best := breakdown.Positive
	if breakdown.Negative > best {
		dominant, best = models.SentimentNegative, breakdown.Negative
	}
	if breakdown.Neutral > best {
		dominant = models.SentimentNeutral
	}

	return &models.AggregateSentiment{
		Overall:    dominant,
		Confidence: avgConfidence,
		Breakdown:  breakdown,
		Summary: fmt.Sprintf("Based on %d news items analyzed, the overall sentiment is %s with %d%% confidence.",
			len(analyses), dominant, avgConfidence),
	}
}
