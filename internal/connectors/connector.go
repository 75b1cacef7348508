// Package connectors adapts each vacancy source to one uniform fetch
// interface. A connector is its own failure domain: transport and parse
// problems degrade to an empty (or partial) result and a log line, they are
// never surfaced to the orchestrator.
package connectors

import (
	"context"

	"github.com/muzaffarov/vacancy-bot/internal/domain/models"
)

type Connector interface {
	Source() models.Source

	// Fetch returns normalized vacancies for the given search: salary in UZS,
	// published time in UTC, archived items already dropped.
	Fetch(ctx context.Context, keywords []string, location string, pageBudget int) []models.Vacancy
}

// CurrencyRates maps a source currency code to its fixed UZS multiplier.
type CurrencyRates map[string]int

func DefaultCurrencyRates() CurrencyRates {
	return CurrencyRates{
		"USD": 12500,
		"RUB": 135,
		"RUR": 135,
	}
}

// Convert normalizes an optional salary bound to UZS. Unknown currencies are
// passed through unchanged.
func (r CurrencyRates) Convert(amount *int, currency string) *int {
	if amount == nil {
		return nil
	}
	rate, ok := r[currency]
	if !ok {
		return amount
	}
	converted := *amount * rate
	return &converted
}
