package app

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

func TestSortByMarginDesc(t *testing.T) {
	rate := decimal.RequireFromString("0.01")
	market := func(usd string) *domain.MarketPrice {
		return &domain.MarketPrice{Price: decimal.RequireFromString(usd)}
	}

	low := cardWith("SV1a", "1", "SAR", "low", inStock(domain.SourceCardRush, 1800))
	low.Market = market("20.00")
	high := cardWith("SV1a", "2", "SAR", "high", inStock(domain.SourceCardRush, 500))
	high.Market = market("20.00")
	none := cardWith("SV1a", "3", "SAR", "none", inStock(domain.SourceCardRush, 500))

	got := SortByMarginDesc([]domain.Card{low, none, high}, domain.DefaultSources(), rate)

	want := []string{"2", "1", "3"}
	for i, number := range want {
		if got[i].Number != number {
			t.Errorf("position %d = %q, want %q", i, got[i].Number, number)
		}
	}
}

func TestSortByPriceAsc(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "1", "SAR", "a", inStock(domain.SourceCardRush, 900)),
		cardWith("SV1a", "2", "SAR", "b"), // unresolved, sinks
		cardWith("SV1a", "3", "SAR", "c", inStock(domain.SourceCardRush, 300)),
	}

	got := SortByPriceAsc(cards, domain.DefaultSources())

	want := []string{"3", "1", "2"}
	for i, number := range want {
		if got[i].Number != number {
			t.Errorf("position %d = %q, want %q", i, got[i].Number, number)
		}
	}
	if cards[0].Number != "1" {
		t.Error("input slice was reordered")
	}
}

func TestSortByName(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "1", "SAR", "pikachu"),
		cardWith("SV1a", "2", "SAR", "Eevee"),
	}
	got := SortByName(cards)
	if got[0].Name != "Eevee" {
		t.Errorf("got %q first, want Eevee", got[0].Name)
	}
}
