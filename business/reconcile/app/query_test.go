package app

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

func cardWith(set, number, rarity, name string, quotes ...domain.Quote) domain.Card {
	card := domain.NewCard(set, number, rarity, name)
	card.Quotes = quotes
	return card
}

func inStock(source string, priceJPY int64) domain.Quote {
	return domain.Quote{Source: source, Condition: "A-", PriceJPY: priceJPY, InStock: true}
}

func outOfStock(source string, priceJPY int64) domain.Quote {
	return domain.Quote{Source: source, Condition: "A-", PriceJPY: priceJPY, InStock: false}
}

func int64p(v int64) *int64 { return &v }

func TestApplyFilters_NoClausesPassesEverything(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "205", "SAR", "Miriam"),
		cardWith("S4a", "021", "RR", "Pikachu"), // no quotes at all
	}
	got := ApplyFilters(cards, FilterState{})
	if len(got) != 2 {
		t.Fatalf("got %d cards, want 2", len(got))
	}
}

func TestApplyFilters_Search(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "205", "SAR", "Miriam"),
		cardWith("SV1a", "198", "SR", "Jacq"),
	}

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{"name_case_insensitive", "miri", 1},
		{"number", "198", 1},
		{"whitespace_only_inactive", "   ", 2},
		{"no_match", "zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(cards, FilterState{Search: tt.search})
			if len(got) != tt.want {
				t.Errorf("search %q matched %d cards, want %d", tt.search, len(got), tt.want)
			}
		})
	}
}

func TestApplyFilters_SetsAndEras(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "205", "SAR", "Miriam"),
		cardWith("SM1a", "060", "SR", "Lillie"),
		cardWith("S4a", "021", "RR", "Pikachu"),
	}

	t.Run("include", func(t *testing.T) {
		got := ApplyFilters(cards, FilterState{IncludeSets: []string{"sv1a"}})
		if len(got) != 1 || got[0].Set != "SV1a" {
			t.Errorf("include got %+v", got)
		}
	})

	t.Run("exclude", func(t *testing.T) {
		got := ApplyFilters(cards, FilterState{ExcludeSets: []string{"S4A"}})
		if len(got) != 2 {
			t.Errorf("exclude got %d cards, want 2", len(got))
		}
	})

	t.Run("eras", func(t *testing.T) {
		got := ApplyFilters(cards, FilterState{Eras: []domain.Era{domain.EraSunMoon}})
		if len(got) != 1 || got[0].Set != "SM1a" {
			t.Errorf("era filter got %+v", got)
		}
	})
}

func TestApplyFilters_InStockOnly(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "1", "SAR", "a", inStock(domain.SourceCardRush, 100)),
		cardWith("SV1a", "2", "SAR", "b", outOfStock(domain.SourceCardRush, 100)),
		// stocked, but only at a shop outside the active set
		cardWith("SV1a", "3", "SAR", "c", inStock(domain.SourceMagi, 100)),
	}

	got := ApplyFilters(cards, FilterState{InStockOnly: true})
	if len(got) != 1 || got[0].Number != "1" {
		t.Errorf("got %+v, want only card 1", got)
	}
}

func TestApplyFilters_PriceRange(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "1", "SAR", "cheap", inStock(domain.SourceCardRush, 300)),
		cardWith("SV1a", "2", "SAR", "mid", inStock(domain.SourceCardRush, 1500)),
		cardWith("SV1a", "3", "SAR", "unpriced"), // no baseline
	}

	t.Run("bounds_active", func(t *testing.T) {
		got := ApplyFilters(cards, FilterState{MinPriceJPY: int64p(1000), MaxPriceJPY: int64p(2000)})
		if len(got) != 1 || got[0].Number != "2" {
			t.Errorf("got %+v, want only card 2", got)
		}
	})

	t.Run("unpriced_excluded_when_bounded", func(t *testing.T) {
		got := ApplyFilters(cards, FilterState{MinPriceJPY: int64p(0)})
		if len(got) != 2 {
			t.Errorf("got %d cards, want 2: no-baseline card must drop", len(got))
		}
	})

	t.Run("no_bounds_inactive", func(t *testing.T) {
		got := ApplyFilters(cards, FilterState{})
		if len(got) != 3 {
			t.Errorf("got %d cards, want all 3", len(got))
		}
	})
}

func TestApplyFilters_MarginBuckets(t *testing.T) {
	rate := decimal.RequireFromString("0.01")
	market := func(usd string) *domain.MarketPrice {
		return &domain.MarketPrice{Price: decimal.RequireFromString(usd)}
	}

	// Conservative margin uses the worst in-stock price, not the baseline.
	rich := cardWith("SV1a", "1", "SAR", "rich",
		inStock(domain.SourceCardRush, 500), inStock(domain.SourceCardRush, 1000)) // worst $10 vs $20 = 100%
	thin := cardWith("SV1a", "2", "SAR", "thin", inStock(domain.SourceCardRush, 1800)) // $18 vs $20 = 11.1%
	blank := cardWith("SV1a", "3", "SAR", "blank", inStock(domain.SourceCardRush, 100))
	rich.Market = market("20.00")
	thin.Market = market("20.00")
	cards := []domain.Card{rich, thin, blank}

	t.Run("bucket_match", func(t *testing.T) {
		got := ApplyFilters(cards, FilterState{Buckets: []domain.MarginBucket{domain.Bucket60Plus}, Rate: rate})
		if len(got) != 1 || got[0].Number != "1" {
			t.Errorf("got %+v, want only the high-margin card", got)
		}
	})

	t.Run("undefined_margin_excluded", func(t *testing.T) {
		got := ApplyFilters(cards, FilterState{Buckets: []domain.MarginBucket{domain.BucketBelow20}, Rate: rate})
		if len(got) != 1 || got[0].Number != "2" {
			t.Errorf("got %+v, want only the thin-margin card", got)
		}
	})
}

func TestApplyFilters_ClausesCombineWithAnd(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "1", "SAR", "Miriam", inStock(domain.SourceCardRush, 300)),
		cardWith("SV1a", "2", "SAR", "Miriam", outOfStock(domain.SourceCardRush, 300)),
		cardWith("S4a", "3", "SAR", "Miriam", inStock(domain.SourceCardRush, 300)),
	}

	got := ApplyFilters(cards, FilterState{
		Search:      "miriam",
		IncludeSets: []string{"SV1a"},
		InStockOnly: true,
	})
	if len(got) != 1 || got[0].Number != "1" {
		t.Errorf("got %+v, want only card 1", got)
	}
}

func TestApplyFilters_StableAndPure(t *testing.T) {
	cards := []domain.Card{
		cardWith("SV1a", "3", "SAR", "c", inStock(domain.SourceCardRush, 100)),
		cardWith("SV1a", "1", "SAR", "a", inStock(domain.SourceCardRush, 100)),
		cardWith("SV1a", "2", "SAR", "b", inStock(domain.SourceCardRush, 100)),
	}

	state := FilterState{InStockOnly: true}
	first := ApplyFilters(cards, state)
	second := ApplyFilters(first, state)

	if len(first) != 3 {
		t.Fatalf("got %d cards, want 3", len(first))
	}
	for i, want := range []string{"3", "1", "2"} {
		if first[i].Number != want {
			t.Errorf("position %d = %q, want %q (input order must hold)", i, first[i].Number, want)
		}
	}
	if len(second) != len(first) {
		t.Errorf("re-applying the same filter changed the result: %d vs %d", len(second), len(first))
	}
	if cards[0].Number != "3" {
		t.Error("input slice was mutated")
	}
}
