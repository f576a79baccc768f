package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sharadvm/stockpulse/internal/pipeline"
	"github.com/sharadvm/stockpulse/internal/sources"
	"github.com/sharadvm/stockpulse/pkg/models"
	"github.com/sharadvm/stockpulse/pkg/utils"
)

// The portfolio lives client-side in ~/.stockpulse/portfolio.json. The
// server never stores holdings; the CLI sends them with each request just
// like the dashboard does.

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Manage the local portfolio and fetch holding-specific news",
}

func init() {
	portfolioCmd.AddCommand(portfolioAddCmd)
	portfolioCmd.AddCommand(portfolioRemoveCmd)
	portfolioCmd.AddCommand(portfolioListCmd)
	portfolioCmd.AddCommand(portfolioNewsCmd)

	portfolioAddCmd.Flags().Int("qty", 0, "number of shares held")
}

var portfolioAddCmd = &cobra.Command{
	Use:   "add [symbol] [company name]",
	Short: "Add a holding to the local portfolio",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		holding := models.Holding{
			Symbol: utils.NormalizeSymbol(args[0]),
			Name:   strings.Join(args[1:], " "),
		}
		holding.Quantity, _ = cmd.Flags().GetInt("qty")
		if err := holding.Validate(); err != nil {
			return err
		}

		portfolio, err := loadPortfolio()
		if err != nil {
			return err
		}
		for _, h := range portfolio {
			if h.Symbol == holding.Symbol {
				return fmt.Errorf("%s is already in the portfolio", holding.Symbol)
			}
		}

		portfolio = append(portfolio, holding)
		if err := savePortfolio(portfolio); err != nil {
			return err
		}
		fmt.Printf("Added %s (%s), %d holdings total\n", holding.Symbol, holding.Name, len(portfolio))
		return nil
	},
}

var portfolioRemoveCmd = &cobra.Command{
	Use:   "remove [symbol]",
	Short: "Remove a holding from the local portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := utils.NormalizeSymbol(args[0])

		portfolio, err := loadPortfolio()
		if err != nil {
			return err
		}

		kept := portfolio[:0]
		for _, h := range portfolio {
			if h.Symbol != symbol {
				kept = append(kept, h)
			}
		}
		if len(kept) == len(portfolio) {
			return fmt.Errorf("%s is not in the portfolio", symbol)
		}

		if err := savePortfolio(kept); err != nil {
			return err
		}
		fmt.Printf("Removed %s, %d holdings remain\n", symbol, len(kept))
		return nil
	},
}

var portfolioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved holdings",
	RunE: func(cmd *cobra.Command, args []string) error {
		portfolio, err := loadPortfolio()
		if err != nil {
			return err
		}
		if len(portfolio) == 0 {
			fmt.Println("No holdings saved. Add some with 'stockpulse portfolio add'.")
			return nil
		}
		for _, h := range portfolio {
			if h.Quantity > 0 {
				fmt.Printf("  %-12s %s (%d shares)\n", h.Symbol, h.Name, h.Quantity)
			} else {
				fmt.Printf("  %-12s %s\n", h.Symbol, h.Name)
			}
		}
		return nil
	},
}

var portfolioNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Fetch news relevant to the saved holdings",
	RunE: func(cmd *cobra.Command, args []string) error {
		portfolio, err := loadPortfolio()
		if err != nil {
			return err
		}
		if len(portfolio) == 0 {
			return fmt.Errorf("no holdings saved; add some with 'stockpulse portfolio add'")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		fetcher := sources.NewFetcher(cfg.Fetch)
		result := pipeline.NewPortfolio(fetcher, cfg.Portfolio).Run(ctx, portfolio)

		fmt.Printf("📰 Portfolio news — %d items for %v\n\n", result.TotalFound, result.PortfolioStocks)
		printArticles(result.PortfolioNews)
		return nil
	},
}

// --- Portfolio file ---

func portfolioPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, ".stockpulse", "portfolio.json"), nil
}

func loadPortfolio() (models.Portfolio, error) {
	path, err := portfolioPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return models.Portfolio{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read portfolio: %w", err)
	}

	var portfolio models.Portfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return portfolio, nil
}

func savePortfolio(portfolio models.Portfolio) error {
	path, err := portfolioPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(portfolio, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
