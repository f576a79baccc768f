package analyst

import (
	"encoding/json"
	"strings"

	"github.com/sharadvm/stockpulse/pkg/models"
)

// parseRecord extracts a sentiment record from a raw oracle reply. Models
// wrap JSON in prose or code fences, so the parse is lenient: take the
// outermost brace-delimited block and unmarshal that. Returns false when no
// usable record can be recovered, in which case the caller falls back to
// the heuristic.
func parseRecord(content string) (models.SentimentRecord, bool) {
	var record models.SentimentRecord

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return record, false
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), &record); err != nil {
		return record, false
	}

	// Required fields. A zero confidence is treated as missing: the oracle
	// is instructed to report 0-100 and a genuinely zero-confidence answer
	// carries no information anyway.
	if !record.Sentiment.Valid() || record.Confidence == 0 ||
		record.Reasoning == "" || record.Impact == "" {
		return models.SentimentRecord{}, false
	}

	record.Confidence = clampConfidence(record.Confidence)

	if record.Timeframe == "" {
		record.Timeframe = models.TimeframeShort
	}
	if len(record.SectorsAffected) == 0 {
		record.SectorsAffected = []string{"general"}
	}
	if record.RiskLevel == "" {
		record.RiskLevel = models.RiskMedium
	}

	return record, true
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
