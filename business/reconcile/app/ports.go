// Package app contains application services and port definitions for the
// reconcile context.
package app

import (
	"context"
	"time"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

// QuoteProvider fetches the raw listings for one card from one shop.
// Providers own their rate limiting and parsing; the engine only ever
// sees parsed Quote records.
type QuoteProvider interface {
	// Source returns the shop identifier the provider scrapes.
	Source() string

	// FetchQuotes returns every listing found for the card. An empty
	// slice is a normal result.
	FetchQuotes(ctx context.Context, card domain.Card) ([]domain.Quote, error)
}

// MarketPriceProvider fetches the sell-side reference price for a card.
// A nil price with a nil error means "no market price known", which is a
// normal state, not a failure.
type MarketPriceProvider interface {
	FetchPrice(ctx context.Context, card domain.Card) (*domain.MarketPrice, error)
}

// Reporter receives opportunities that crossed the viability threshold.
type Reporter interface {
	ReportViable(ctx context.Context, opp domain.Opportunity) error
}

// HistoryStore persists observed prices across refresh cycles. Optional;
// a refresh succeeds even if history writes fail.
type HistoryStore interface {
	AppendPrices(ctx context.Context, builtAt time.Time, opps []domain.Opportunity) error
	Close() error
}
