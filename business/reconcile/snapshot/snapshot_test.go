package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

func opportunityWithMargin(id, percent string, viable bool) domain.Opportunity {
	return domain.Opportunity{
		Card: domain.Card{ID: id},
		Result: &domain.ArbitrageResult{
			ProfitPercent: decimal.RequireFromString(percent),
			Viable:        viable,
		},
	}
}

func TestBuild_Stats(t *testing.T) {
	opps := []domain.Opportunity{
		opportunityWithMargin("a", "50.0", true),
		opportunityWithMargin("b", "10.0", false),
		{Card: domain.Card{ID: "c"}}, // no margin: counted in totals only
	}

	doc := Build(opps)

	if doc.BuildID == "" {
		t.Error("expected a build ID")
	}
	if doc.Stats.TotalCards != 3 {
		t.Errorf("TotalCards = %d, want 3", doc.Stats.TotalCards)
	}
	if doc.Stats.ViableOpportunities != 1 {
		t.Errorf("ViableOpportunities = %d, want 1", doc.Stats.ViableOpportunities)
	}
	if want := decimal.RequireFromString("30"); !doc.Stats.AvgMarginPercent.Equal(want) {
		t.Errorf("AvgMarginPercent = %s, want %s", doc.Stats.AvgMarginPercent, want)
	}
}

func TestBuild_EmptySet(t *testing.T) {
	doc := Build(nil)
	if doc.Stats.TotalCards != 0 || doc.Stats.ViableOpportunities != 0 {
		t.Errorf("unexpected stats for empty set: %+v", doc.Stats)
	}
	if !doc.Stats.AvgMarginPercent.IsZero() {
		t.Errorf("AvgMarginPercent = %s, want 0", doc.Stats.AvgMarginPercent)
	}
}

func TestWriteReadFile(t *testing.T) {
	card := domain.NewCard("SV1a", "205", "SAR", "Miriam")
	card.Quotes = []domain.Quote{
		{Source: domain.SourceCardRush, Condition: "A-", PriceJPY: 1000, InStock: true},
	}
	doc := Build([]domain.Opportunity{
		domain.BuildOpportunity(card, domain.DefaultSources(), domain.DefaultJPYUSDRate),
	})

	path := filepath.Join(t.TempDir(), "dashboard.json")
	if err := doc.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if loaded.BuildID != doc.BuildID {
		t.Errorf("BuildID = %q, want %q", loaded.BuildID, doc.BuildID)
	}

	// The engine must be able to re-derive the same baseline from the
	// persisted cards alone.
	cards := loaded.Cards()
	if len(cards) != 1 {
		t.Fatalf("Cards() returned %d cards, want 1", len(cards))
	}
	b := domain.SelectBaseline(cards[0].Quotes, domain.DefaultSources())
	if !b.Resolved() || b.Quote.PriceJPY != 1000 {
		t.Errorf("re-derived baseline = %+v, want the persisted 1000 quote", b)
	}
}
