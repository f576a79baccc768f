// StockPulse — Indian stock market news aggregation and sentiment analysis.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sharadvm/stockpulse/api"
	"github.com/sharadvm/stockpulse/internal/analyst"
	"github.com/sharadvm/stockpulse/internal/config"
	"github.com/sharadvm/stockpulse/internal/llm"
	"github.com/sharadvm/stockpulse/internal/pipeline"
	"github.com/sharadvm/stockpulse/internal/sources"
	"github.com/sharadvm/stockpulse/pkg/models"
	"github.com/sharadvm/stockpulse/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "StockPulse — Indian stock market news and sentiment",
	Long: `StockPulse aggregates Indian stock market news from financial news
sites and RSS feeds, matches headlines against your portfolio, and runs
AI sentiment analysis over them. Sources degrade gracefully: scraping,
feeds, then curated fallbacks, so there is always something to read.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real env vars win either way.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(portfolioCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("StockPulse %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		api.Version = version
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("🌐 Starting StockPulse API server on %s\n", cfg.API.Addr())
		return srv.ListenAndServe(cfg.API.Addr())
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Fetch and print the latest market news",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 90*time.Second)
		defer cancel()

		fetcher := sources.NewFetcher(cfg.Fetch)
		result := pipeline.NewGeneral(fetcher, cfg.General).Run(ctx)

		fmt.Printf("📰 Market news — %d items (source: %s, scraped %d / rss %d / fallback %d)\n\n",
			result.TotalFound, result.Source,
			result.Breakdown.Scraped, result.Breakdown.RSS, result.Breakdown.Fallback)
		printArticles(result.News)
		return nil
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze sentiment of news for the saved portfolio",
	Long: `Fetch portfolio-relevant news and run sentiment analysis over each
headline. Uses the configured LLM oracle, falling back to a local keyword
heuristic when the oracle is unavailable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		portfolio, err := loadPortfolio()
		if err != nil {
			return err
		}
		if len(portfolio) == 0 {
			return fmt.Errorf("no holdings saved; add some with 'stockpulse portfolio add'")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		fetcher := sources.NewFetcher(cfg.Fetch)
		newsResult := pipeline.NewPortfolio(fetcher, cfg.Portfolio).Run(ctx, portfolio)
		if len(newsResult.PortfolioNews) == 0 {
			fmt.Println("No portfolio news found to analyze.")
			return nil
		}

		analyzer := analyst.New(mustOracle(), cfg.LLM, cfg.Analyst)
		result, err := analyzer.Run(ctx, newsResult.PortfolioNews)
		if err != nil {
			return err
		}

		for i, a := range result.Analyses {
			item := newsResult.PortfolioNews[i]
			fmt.Printf("%s  [%s %0.f%%]\n", item.Title, a.Sentiment, a.Confidence)
			fmt.Printf("    %s\n\n", a.Reasoning)
		}

		if agg := result.OverallSentiment; agg != nil {
			fmt.Println("───────────────────────────────────────")
			fmt.Println(agg.Summary)
		}
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  StockPulse — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Printf("  Time (IST):  %s\n", utils.NowIST().Format("02/01/2006 15:04:05"))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    LLM Provider:  %s (model: %s)\n", cfg.LLM.Primary, cfg.LLM.Model)
		fmt.Printf("    API Server:    %s\n", cfg.API.Addr())
		fmt.Printf("    Thresholds:    general %d/%d, portfolio %d/%d\n",
			cfg.General.FeedThreshold, cfg.General.FallbackThreshold,
			cfg.Portfolio.FeedThreshold, cfg.Portfolio.FallbackThreshold)
		fmt.Println()

		fmt.Println("  Oracle providers:")
		router, err := llm.NewRouterFromConfig(cfg)
		if err != nil {
			fmt.Println("    ❌ none configured (analysis will use local fallbacks)")
		} else {
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			for name, pingErr := range router.HealthCheck(ctx) {
				if pingErr != nil {
					fmt.Printf("    %-8s ❌ %v\n", name+":", pingErr)
				} else {
					fmt.Printf("    %-8s ✅ reachable\n", name+":")
				}
			}
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Helpers ---

func printArticles(articles []models.Article) {
	for _, a := range articles {
		marker := "•"
		if a.IsGenerated {
			marker = "◦"
		}
		fmt.Printf("%s %s\n", marker, a.Title)
		meta := fmt.Sprintf("  %s — %s", a.Source, a.Timestamp)
		if len(a.RelevantStocks) > 0 {
			meta += fmt.Sprintf(" [%v]", a.RelevantStocks)
		}
		fmt.Println(meta)
	}
}

// mustOracle returns the configured LLM router, or a stub that fails every
// call so the analyst degrades to its local fallbacks.
func mustOracle() analyst.Oracle {
	router, err := llm.NewRouterFromConfig(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: no LLM providers configured, using local heuristics")
		return oracleUnavailable{}
	}
	return router
}

type oracleUnavailable struct{}

func (oracleUnavailable) Chat(ctx context.Context, messages []llm.Message, opts *llm.ChatOptions) (*llm.Response, error) {
	return nil, llm.ErrNoProviders
}
