package models

import (
	"fmt"
	"strings"
)

// Holding is one portfolio entry. Portfolios are owned entirely by the
// client (dashboard localStorage or the CLI's portfolio file); the server
// never retains them beyond a single request.
type Holding struct {
	Symbol   string `json:"symbol"`   // uppercase NSE ticker, e.g. "TCS"
	Name     string `json:"name"`     // display name, e.g. "Tata Consultancy Services"
	Quantity int    `json:"quantity"` // positive share count
}

// Validate checks a holding for the minimum the pipeline needs.
func (h Holding) Validate() error {
	if strings.TrimSpace(h.Symbol) == "" {
		return fmt.Errorf("holding: symbol is required")
	}
	if h.Quantity <= 0 {
		return fmt.Errorf("holding %s: quantity must be positive", h.Symbol)
	}
	return nil
}

// Portfolio is an ordered, symbol-unique sequence of holdings.
type Portfolio []Holding

// Validate checks every holding and enforces symbol uniqueness.
func (p Portfolio) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("portfolio: at least one holding is required")
	}
	seen := make(map[string]bool, len(p))
	for _, h := range p {
		if err := h.Validate(); err != nil {
			return err
		}
		sym := strings.ToUpper(h.Symbol)
		if seen[sym] {
			return fmt.Errorf("portfolio: duplicate symbol %s", sym)
		}
		seen[sym] = true
	}
	return nil
}

// Symbols returns the holdings' symbols in portfolio order.
func (p Portfolio) Symbols() []string {
	symbols := make([]string, len(p))
	for i, h := range p {
		symbols[i] = h.Symbol
	}
	return symbols
}
