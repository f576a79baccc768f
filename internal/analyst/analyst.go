// Package analyst turns headlines into per-article sentiment records using
// an LLM oracle, with two local fallbacks: a keyword heuristic when the
// oracle replies with something unparseable, and a neutral placeholder when
// the call itself fails. The endpoint never fails because one headline did.
package analyst

import (
	"context"
	"time"

	"github.com/sharadvm/stockpulse/internal/config"
	"github.com/sharadvm/stockpulse/internal/llm"
	"github.com/sharadvm/stockpulse/pkg/models"
)

// Oracle is the slice of the LLM router the analyst uses.
type Oracle interface {
	Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error)
}

// Analyzer scores headlines against a portfolio.
type Analyzer struct {
	oracle    Oracle
	chatOpts  llm.ChatOptions
	callDelay time.Duration
}

// New creates an Analyzer. callDelay paces consecutive oracle calls to stay
// inside free-tier rate limits.
func New(oracle Oracle, llmCfg config.LLMConfig, analystCfg config.AnalystConfig) *Analyzer {
	return &Analyzer{
		oracle: oracle,
		chatOpts: llm.ChatOptions{
			Temperature: llmCfg.Temperature,
			MaxTokens:   llmCfg.MaxTokens,
		},
		callDelay: analystCfg.CallDelay(),
	}
}

// Run analyzes each headline in order and returns the batch result. Errors
// on individual items degrade to heuristic or placeholder records; the only
// hard failure is context cancellation.
func (a *Analyzer) Run(ctx context.Context, news []models.Article) (*models.AnalysisResult, error) {
	analyses := make([]models.SentimentRecord, 0, len(news))

	for i, item := range news {
		if i > 0 && a.callDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(a.callDelay):
			}
		}
		analyses = append(analyses, a.analyzeOne(ctx, item))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return &models.AnalysisResult{
		Analyses:          analyses,
		OverallSentiment:  Aggregate(analyses),
		AnalysisTimestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (a *Analyzer) analyzeOne(ctx context.Context, item models.Article) models.SentimentRecord {
	prompt := buildPrompt(item)

	resp, err := a.oracle.Chat(ctx, []llm.Message{llm.UserMessage(prompt)}, &a.chatOpts)
	if err != nil {
		return placeholderRecord()
	}

	record, ok := parseRecord(resp.Content)
	if !ok {
		return heuristicRecord(item)
	}
	return record
}
