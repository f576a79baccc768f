package analyst

import (
	"fmt"
	"strings"

	"github.com/sharadvm/stockpulse/pkg/models"
)

const promptTemplate = `You are a professional stock market analyst. Analyze this Indian stock market news headline and determine its potential impact on the specified portfolio stocks.

News Headline: %q
Relevant Portfolio Stocks: %s

Provide a comprehensive analysis in the following JSON format:
{
  "sentiment": "positive" | "negative" | "neutral",
  "confidence": number (0-100),
  "reasoning": "Detailed explanation of why this news impacts the stocks (2-3 sentences)",
  "impact": "Specific actionable impact description for portfolio holders",
  "timeframe": "short-term" | "medium-term" | "long-term",
  "sectors_affected": ["sector1", "sector2"],
  "risk_level": "low" | "medium" | "high"
}

Analysis Guidelines:
- sentiment: "positive" if likely to increase stock prices, "negative" if likely to decrease, "neutral" if mixed/minimal impact
- confidence: Your confidence level in this assessment (0-100)
- reasoning: Professional analysis explaining the connection between news and stock impact
- impact: Specific, actionable insights for portfolio holders
- timeframe: Expected duration of impact
- sectors_affected: Which sectors this news primarily affects
- risk_level: Overall risk assessment for portfolio holders

Consider:
- Indian market dynamics and regulations
- Sector-specific implications
- Broader economic context
- Historical market reactions to similar news

Return only the JSON object, no additional text.`

func buildPrompt(item models.Article) string {
	stocks := "General Market"
	if len(item.RelevantStocks) > 0 {
		stocks = strings.ToUpper(strings.Join(item.RelevantStocks, ", "))
	}
	return fmt.Sprintf(promptTemplate, item.Title, stocks)
}
