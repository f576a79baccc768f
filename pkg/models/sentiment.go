package models

// Sentiment classifies the expected price impact of a headline.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether s is one of the three known classes.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Timeframe is the expected duration of a news item's impact.
type Timeframe string

const (
	TimeframeShort   Timeframe = "short-term"
	TimeframeMedium  Timeframe = "medium-term"
	TimeframeLong    Timeframe = "long-term"
	TimeframeUnknown Timeframe = "unknown"
)

// RiskLevel is the overall risk assessment for portfolio holders.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// SentimentRecord is the per-article analysis produced by the oracle (or
// the local heuristic standing in for it). Derived, recomputed per request,
// never persisted.
type SentimentRecord struct {
	Sentiment       Sentiment `json:"sentiment"`
	Confidence      float64   `json:"confidence"` // 0–100
	Reasoning       string    `json:"reasoning"`
	Impact          string    `json:"impact"`
	Timeframe       Timeframe `json:"timeframe"`
	SectorsAffected []string  `json:"sectors_affected"`
	RiskLevel       RiskLevel `json:"risk_level"`
}

// SentimentBreakdown counts records per sentiment class.
type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// AnalysisResult is the full response of a batch analysis: one record per
// headline plus the aggregate, stamped with the analysis time.
type AnalysisResult struct {
	Analyses          []SentimentRecord   `json:"analyses"`
	OverallSentiment  *AggregateSentiment `json:"overallSentiment"`
	AnalysisTimestamp string              `json:"analysisTimestamp"`
}

// AggregateSentiment summarizes a batch of sentiment records.
type AggregateSentiment struct {
	Overall    Sentiment          `json:"overall"`
	Confidence int                `json:"confidence"` // rounded mean
	Breakdown  SentimentBreakdown `json:"breakdown"`
	Summary    string             `json:"summary"`
}
