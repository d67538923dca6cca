package app

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

// SortByMarginDesc orders cards by displayed margin percent, highest
// first. Cards with no computable margin sink to the end. Returns a new
// slice; the input is untouched.
func SortByMarginDesc(cards []domain.Card, sources domain.SourceSet, rate decimal.Decimal) []domain.Card {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b domain.Card) int {
		am, aok := displayedMargin(&a, sources, rate)
		bm, bok := displayedMargin(&b, sources, rate)
		switch {
		case aok && bok:
			return bm.Cmp(am)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
	return out
}

// SortByPriceAsc orders cards by baseline local price, cheapest first.
// Cards with no resolvable baseline sink to the end.
func SortByPriceAsc(cards []domain.Card, sources domain.SourceSet) []domain.Card {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b domain.Card) int {
		ab := domain.SelectBaseline(a.Quotes, sources)
		bb := domain.SelectBaseline(b.Quotes, sources)
		switch {
		case ab.Resolved() && bb.Resolved():
			switch {
			case ab.Quote.PriceJPY < bb.Quote.PriceJPY:
				return -1
			case ab.Quote.PriceJPY > bb.Quote.PriceJPY:
				return 1
			default:
				return 0
			}
		case ab.Resolved():
			return -1
		case bb.Resolved():
			return 1
		default:
			return 0
		}
	})
	return out
}

// SortByName orders cards alphabetically by name, case-insensitive.
func SortByName(cards []domain.Card) []domain.Card {
	out := slices.Clone(cards)
	slices.SortStableFunc(out, func(a, b domain.Card) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

func displayedMargin(card *domain.Card, sources domain.SourceSet, rate decimal.Decimal) (decimal.Decimal, bool) {
	baseline := domain.SelectBaseline(card.Quotes, sources)
	if !baseline.Resolved() {
		return decimal.Zero, false
	}
	result := domain.ComputeMargin(baseline.Quote.ReferencePrice(rate), card.MarketUSD())
	if result == nil {
		return decimal.Zero, false
	}
	return result.ProfitPercent, true
}
