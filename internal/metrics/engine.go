package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Engine holds the refresh-cycle instruments.
type Engine struct {
	refreshDuration metric.Float64Histogram
	cardsRefreshed  metric.Int64Counter
	viableCount     metric.Int64Gauge
	providerErrors  metric.Int64Counter
}

// NewEngine registers the engine instruments on the global meter.
func NewEngine() (*Engine, error) {
	meter := otel.Meter("pokemonarbdashboard/engine")

	refreshDuration, err := meter.Float64Histogram(
		"engine_refresh_duration_seconds",
		metric.WithDescription("Wall time of one full refresh cycle"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("refresh duration histogram: %w", err)
	}

	cardsRefreshed, err := meter.Int64Counter(
		"engine_cards_refreshed_total",
		metric.WithDescription("Cards processed across all refresh cycles"),
	)
	if err != nil {
		return nil, fmt.Errorf("cards refreshed counter: %w", err)
	}

	viableCount, err := meter.Int64Gauge(
		"engine_viable_opportunities",
		metric.WithDescription("Viable opportunities in the current snapshot"),
	)
	if err != nil {
		return nil, fmt.Errorf("viable opportunities gauge: %w", err)
	}

	providerErrors, err := meter.Int64Counter(
		"engine_provider_errors_total",
		metric.WithDescription("Fetch failures by upstream source"),
	)
	if err != nil {
		return nil, fmt.Errorf("provider errors counter: %w", err)
	}

	return &Engine{
		refreshDuration: refreshDuration,
		cardsRefreshed:  cardsRefreshed,
		viableCount:     viableCount,
		providerErrors:  providerErrors,
	}, nil
}

// RecordRefresh records the outcome of one completed refresh cycle.
func (e *Engine) RecordRefresh(ctx context.Context, took time.Duration, cards, viable int) {
	e.refreshDuration.Record(ctx, took.Seconds())
	e.cardsRefreshed.Add(ctx, int64(cards))
	e.viableCount.Record(ctx, int64(viable))
}

// CountProviderError counts a failed upstream fetch.
func (e *Engine) CountProviderError(ctx context.Context, source string) {
	e.providerErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}
