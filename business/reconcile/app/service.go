package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/snapshot"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/apm"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/logger"
	"github.com/Keytoexplore/pokemonarbdashboard/internal/metrics"
)

// ServiceConfig carries the engine's collaborators and tuning. Reporters
// and the history store are optional.
type ServiceConfig struct {
	Log       logger.LoggerInterface
	Providers []QuoteProvider
	Market    MarketPriceProvider
	Reporters []Reporter
	History   HistoryStore
	Metrics   *metrics.Engine

	// Sources restricts which shops participate in baselines. Empty
	// means the default set.
	Sources domain.SourceSet

	// Rate converts JPY to USD when a quote has no native USD price.
	// Zero means the default fixed rate.
	Rate decimal.Decimal
}

// Service runs refresh cycles and publishes the resulting snapshot
// document. The published document is replaced wholesale; readers via
// Snapshot always see a complete, internally consistent refresh.
type Service struct {
	cfg    ServiceConfig
	tracer apm.Tracer

	mu      sync.RWMutex
	current *snapshot.Document
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.Log == nil {
		cfg.Log = logger.New(io.Discard, logger.LevelInfo, "reconcile", nil)
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = domain.DefaultSources()
	}
	if !cfg.Rate.IsPositive() {
		cfg.Rate = domain.DefaultJPYUSDRate
	}
	return &Service{
		cfg:    cfg,
		tracer: apm.NewTracer("reconcile"),
	}
}

// Refresh fetches fresh quotes and market prices for every card,
// recomputes all opportunities and publishes a new snapshot. Quotes are
// replaced wholesale per card: a listing that disappeared upstream
// disappears here too. Provider failures degrade the affected card, not
// the cycle.
func (s *Service) Refresh(ctx context.Context, cards []domain.Card) (*snapshot.Document, error) {
	ctx, span := s.tracer.StartSpanFromContext(ctx, "reconcile.refresh",
		trace.WithAttributes(attribute.Int("cards.total", len(cards))))
	defer span.End()

	started := time.Now()
	opps := make([]domain.Opportunity, 0, len(cards))

	for i := range cards {
		card := cards[i]
		card.Quotes = s.fetchQuotes(ctx, card)
		s.fetchMarket(ctx, &card)

		opp := domain.BuildOpportunity(card, s.cfg.Sources, s.cfg.Rate)
		opps = append(opps, opp)

		if opp.IsViable() {
			s.notify(ctx, opp)
		}
	}

	doc := snapshot.Build(opps)

	s.mu.Lock()
	s.current = doc
	s.mu.Unlock()

	s.appendHistory(ctx, doc)
	s.recordRefresh(ctx, doc, time.Since(started))

	s.cfg.Log.Info(ctx, "refresh complete",
		"build_id", doc.BuildID,
		"cards", doc.Stats.TotalCards,
		"viable", doc.Stats.ViableOpportunities,
		"took", time.Since(started).Round(time.Millisecond).String(),
	)
	return doc, nil
}

// fetchQuotes gathers listings from every provider. The result for one
// card is the concatenation across shops; a failing shop contributes
// nothing for this cycle.
func (s *Service) fetchQuotes(ctx context.Context, card domain.Card) []domain.Quote {
	var quotes []domain.Quote
	for _, p := range s.cfg.Providers {
		fetched, err := p.FetchQuotes(ctx, card)
		if err != nil {
			s.cfg.Log.Warn(ctx, "quote fetch failed",
				"source", p.Source(), "card", card.ID, "error", err)
			s.countProviderError(ctx, p.Source())
			continue
		}
		quotes = append(quotes, fetched...)
	}
	return quotes
}

// fetchMarket refreshes the card's reference price. On failure the card
// keeps its previous market price so margins stay visible, just stale.
func (s *Service) fetchMarket(ctx context.Context, card *domain.Card) {
	if s.cfg.Market == nil {
		return
	}
	price, err := s.cfg.Market.FetchPrice(ctx, *card)
	if err != nil {
		s.cfg.Log.Warn(ctx, "market price fetch failed", "card", card.ID, "error", err)
		s.countProviderError(ctx, "market")
		return
	}
	card.Market = price
}

func (s *Service) notify(ctx context.Context, opp domain.Opportunity) {
	for _, r := range s.cfg.Reporters {
		if err := r.ReportViable(ctx, opp); err != nil {
			s.cfg.Log.Warn(ctx, "viable report failed", "card", opp.Card.ID, "error", err)
		}
	}
}

func (s *Service) appendHistory(ctx context.Context, doc *snapshot.Document) {
	if s.cfg.History == nil {
		return
	}
	if err := s.cfg.History.AppendPrices(ctx, doc.BuiltAt, doc.Opportunities); err != nil {
		s.cfg.Log.Warn(ctx, "history append failed", "build_id", doc.BuildID, "error", err)
	}
}

func (s *Service) recordRefresh(ctx context.Context, doc *snapshot.Document, took time.Duration) {
	if s.cfg.Metrics == nil {
		return
	}
	s.cfg.Metrics.RecordRefresh(ctx, took, doc.Stats.TotalCards, doc.Stats.ViableOpportunities)
}

func (s *Service) countProviderError(ctx context.Context, source string) {
	if s.cfg.Metrics == nil {
		return
	}
	s.cfg.Metrics.CountProviderError(ctx, source)
}

// Snapshot returns the last published document, or nil before the first
// refresh completes.
func (s *Service) Snapshot() *snapshot.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LastBuiltAt reports when the current snapshot was published. Used by
// health checks to detect a stalled refresh loop.
func (s *Service) LastBuiltAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return time.Time{}, false
	}
	return s.current.BuiltAt, true
}

// Query filters and returns cards from the current snapshot. Before the
// first refresh it returns an empty slice.
func (s *Service) Query(state FilterState) []domain.Card {
	doc := s.Snapshot()
	if doc == nil {
		return nil
	}
	return ApplyFilters(doc.Cards(), state)
}
