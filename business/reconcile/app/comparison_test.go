package app

import (
	"testing"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

func TestBuildComparison(t *testing.T) {
	sources := []string{domain.SourceCardRush, domain.SourceTorecaCamp}

	card := cardWith("SV1a", "205", "SAR", "Miriam",
		inStock(domain.SourceCardRush, 1200),
		inStock(domain.SourceTorecaCamp, 900),
		domain.Quote{Source: domain.SourceTorecaCamp, Condition: "B", PriceJPY: 600, InStock: true},
	)

	cmp := BuildComparison(card, sources)

	if !cmp.Global.Resolved() || cmp.Global.Quote.PriceJPY != 900 {
		t.Fatalf("global baseline = %+v, want the 900 torecacamp offer", cmp.Global)
	}
	if len(cmp.PerShop) != 2 {
		t.Fatalf("got %d shop rows, want 2", len(cmp.PerShop))
	}

	for _, row := range cmp.PerShop {
		switch row.Source {
		case domain.SourceCardRush:
			if row.IsGlobalBest {
				t.Error("cardrush must not be flagged global best")
			}
			if row.Baseline.Quote.PriceJPY != 1200 {
				t.Errorf("cardrush baseline = %d, want 1200", row.Baseline.Quote.PriceJPY)
			}
		case domain.SourceTorecaCamp:
			if !row.IsGlobalBest {
				t.Error("torecacamp holds the global best offer")
			}
		}
	}

	if q := cmp.CheapestByGrade[domain.GradeNearMint]; q == nil || q.PriceJPY != 900 {
		t.Errorf("cheapest near mint = %+v, want 900", q)
	}
	if q := cmp.CheapestByGrade[domain.GradePlayed]; q == nil || q.PriceJPY != 600 {
		t.Errorf("cheapest played = %+v, want 600", q)
	}
}

func TestBuildComparison_TiedOffersBothFlagged(t *testing.T) {
	sources := []string{domain.SourceCardRush, domain.SourceTorecaCamp}

	// Identical price and grade at both shops. The global tie-break picks
	// one source, but structural equality flags only the matching row.
	card := cardWith("SV1a", "205", "SAR", "Miriam",
		inStock(domain.SourceCardRush, 800),
		inStock(domain.SourceTorecaCamp, 800),
	)

	cmp := BuildComparison(card, sources)

	flagged := 0
	for _, row := range cmp.PerShop {
		if row.IsGlobalBest {
			flagged++
			if row.Source != cmp.Global.Quote.Source {
				t.Errorf("flagged row %q does not match global source %q",
					row.Source, cmp.Global.Quote.Source)
			}
		}
	}
	if flagged != 1 {
		t.Errorf("flagged %d rows, want exactly the tie-break winner", flagged)
	}
}

func TestBuildComparison_ShopWithNoOffers(t *testing.T) {
	sources := []string{domain.SourceCardRush, domain.SourceMagi}
	card := cardWith("SV1a", "205", "SAR", "Miriam", inStock(domain.SourceCardRush, 500))

	cmp := BuildComparison(card, sources)

	if len(cmp.PerShop) != 2 {
		t.Fatalf("got %d shop rows, want 2", len(cmp.PerShop))
	}
	for _, row := range cmp.PerShop {
		if row.Source == domain.SourceMagi {
			if row.Baseline.Resolved() {
				t.Error("magi has no offers and must stay unresolved")
			}
			if row.IsGlobalBest {
				t.Error("unresolved baseline can never be global best")
			}
		}
	}
}
