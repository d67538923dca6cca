package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestClassifyEra(t *testing.T) {
	tests := []struct {
		set  string
		want Era
	}{
		{"SV1a", EraScarletViolet},
		{"sv2D", EraScarletViolet},
		{"SM1a", EraSunMoon}, // SM checked before S: not the sword/shield era
		{"SM12", EraSunMoon},
		{"S4a", EraSwordShield},
		{"S12a", EraSwordShield},
		{"M1L", EraMega},
		{"M1S", EraMega},
		{"XY7", EraOther},
		{"BW5", EraOther},
		{"", EraOther},
	}

	for _, tt := range tests {
		t.Run(tt.set, func(t *testing.T) {
			if got := ClassifyEra(tt.set); got != tt.want {
				t.Errorf("ClassifyEra(%q) = %q, want %q", tt.set, got, tt.want)
			}
		})
	}
}

func TestCardID(t *testing.T) {
	got := CardID(" sv1a ", "205", "SAR")
	if want := "SV1A-205-SAR"; got != want {
		t.Errorf("CardID = %q, want %q", got, want)
	}
}

func TestCard_MarketUSD(t *testing.T) {
	card := NewCard("SV1a", "205", "SAR", "Miriam")
	if card.HasMarketPrice() {
		t.Error("fresh card should have no market price")
	}

	card.Market = &MarketPrice{Price: decimal.Zero}
	if card.HasMarketPrice() {
		t.Error("zero market price must count as absent")
	}

	card.Market = &MarketPrice{Price: decimal.RequireFromString("-3")}
	if card.HasMarketPrice() {
		t.Error("negative market price must count as absent")
	}

	card.Market = &MarketPrice{Price: decimal.RequireFromString("42.50")}
	if !card.HasMarketPrice() || !card.MarketUSD().Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("MarketUSD = %s, want 42.50", card.MarketUSD())
	}
}

func TestBuildOpportunity(t *testing.T) {
	rate := decimal.RequireFromString("0.01")

	t.Run("viable_in_stock", func(t *testing.T) {
		card := NewCard("SV1a", "205", "SAR", "Miriam")
		card.Quotes = []Quote{quote(SourceCardRush, "A-", 1000, true)} // $10.00
		card.Market = &MarketPrice{Price: decimal.RequireFromString("15.00")}

		opp := BuildOpportunity(card, DefaultSources(), rate)
		if !opp.IsViable() {
			t.Fatalf("expected viable opportunity, got %+v", opp.Result)
		}
		if opp.Result.Potential {
			t.Error("in-stock baseline must not be flagged potential")
		}
	})

	t.Run("out_of_stock_baseline_is_potential", func(t *testing.T) {
		card := NewCard("SV1a", "205", "SAR", "Miriam")
		card.Quotes = []Quote{quote(SourceCardRush, "A-", 1000, false)}
		card.Market = &MarketPrice{Price: decimal.RequireFromString("15.00")}

		opp := BuildOpportunity(card, DefaultSources(), rate)
		if opp.Result == nil || !opp.Result.Potential {
			t.Errorf("expected potential flag for out-of-stock baseline, got %+v", opp.Result)
		}
	})

	t.Run("no_quotes_no_result", func(t *testing.T) {
		card := NewCard("SV1a", "205", "SAR", "Miriam")
		card.Market = &MarketPrice{Price: decimal.RequireFromString("15.00")}

		opp := BuildOpportunity(card, DefaultSources(), rate)
		if opp.Baseline.Resolved() || opp.Result != nil {
			t.Errorf("expected empty baseline and nil result, got %+v", opp)
		}
	})

	t.Run("no_market_price_no_result", func(t *testing.T) {
		card := NewCard("SV1a", "205", "SAR", "Miriam")
		card.Quotes = []Quote{quote(SourceCardRush, "A-", 1000, true)}

		opp := BuildOpportunity(card, DefaultSources(), rate)
		if !opp.Baseline.Resolved() {
			t.Fatal("baseline should resolve without a market price")
		}
		if opp.Result != nil {
			t.Errorf("expected nil result without a market price, got %+v", opp.Result)
		}
	})
}
