package app

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

// FilterState is one composable query over a card collection. All
// clauses AND together; an omitted clause (empty string, nil bound,
// empty list) contributes no constraint.
type FilterState struct {
	Search      string
	Rarity      string
	IncludeSets []string
	ExcludeSets []string
	Eras        []domain.Era
	InStockOnly bool
	MinPriceJPY *int64
	MaxPriceJPY *int64
	Buckets     []domain.MarginBucket

	// Sources is the active shop set for baseline resolution and stock
	// checks. Empty means the default single-source set.
	Sources domain.SourceSet

	// Rate is the JPY to USD conversion used by the margin-bucket
	// clause. Zero means the default fixed rate.
	Rate decimal.Decimal
}

func (s FilterState) rate() decimal.Decimal {
	if s.Rate.IsPositive() {
		return s.Rate
	}
	return domain.DefaultJPYUSDRate
}

// ApplyFilters returns the cards matching every active clause. It never
// mutates its input and the output is a stable subsequence: surviving
// cards keep their relative input order. Sorting is a separate,
// explicit step.
func ApplyFilters(cards []domain.Card, state FilterState) []domain.Card {
	out := make([]domain.Card, 0, len(cards))
	for _, card := range cards {
		if matches(&card, state) {
			out = append(out, card)
		}
	}
	return out
}

func matches(card *domain.Card, state FilterState) bool {
	return matchesSearch(card, state.Search) &&
		matchesRarity(card, state.Rarity) &&
		matchesSets(card, state.IncludeSets, state.ExcludeSets) &&
		matchesEras(card, state.Eras) &&
		matchesStock(card, state) &&
		matchesPriceRange(card, state) &&
		matchesBuckets(card, state)
}

func matchesSearch(card *domain.Card, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(card.Name), needle) ||
		strings.Contains(strings.ToLower(card.Number), needle)
}

func matchesRarity(card *domain.Card, rarity string) bool {
	rarity = strings.TrimSpace(rarity)
	if rarity == "" {
		return true
	}
	return card.Rarity == rarity
}

func matchesSets(card *domain.Card, include, exclude []string) bool {
	code := domain.NormalizeSetCode(card.Set)
	if len(include) > 0 {
		found := false
		for _, s := range include {
			if domain.NormalizeSetCode(s) == code {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, s := range exclude {
		if domain.NormalizeSetCode(s) == code {
			return false
		}
	}
	return true
}

func matchesEras(card *domain.Card, eras []domain.Era) bool {
	if len(eras) == 0 {
		return true
	}
	era := domain.ClassifyEra(card.Set)
	for _, e := range eras {
		if e == era {
			return true
		}
	}
	return false
}

func matchesStock(card *domain.Card, state FilterState) bool {
	if !state.InStockOnly {
		return true
	}
	for _, q := range domain.FilterQuotes(card.Quotes, state.Sources) {
		if q.InStock {
			return true
		}
	}
	return false
}

// matchesPriceRange constrains the baseline's local price. A card with
// no resolvable baseline is excluded outright whenever a bound is set;
// with no bounds the clause is inactive and such cards pass.
func matchesPriceRange(card *domain.Card, state FilterState) bool {
	if state.MinPriceJPY == nil && state.MaxPriceJPY == nil {
		return true
	}
	baseline := domain.SelectBaseline(card.Quotes, state.Sources)
	if !baseline.Resolved() {
		return false
	}
	price := baseline.Quote.PriceJPY
	if state.MinPriceJPY != nil && price < *state.MinPriceJPY {
		return false
	}
	if state.MaxPriceJPY != nil && price > *state.MaxPriceJPY {
		return false
	}
	return true
}

// matchesBuckets constrains the conservative margin bucket. Cards whose
// conservative margin is undefined (no usable quotes or no market
// price) are excluded whenever the clause is active.
func matchesBuckets(card *domain.Card, state FilterState) bool {
	if len(state.Buckets) == 0 {
		return true
	}
	pool := domain.FilterQuotes(card.Quotes, state.Sources)
	pct, ok := domain.ConservativeMarginPercent(pool, card.MarketUSD(), state.rate())
	if !ok {
		return false
	}
	bucket := domain.ClassifyMargin(pct)
	for _, b := range state.Buckets {
		if b == bucket {
			return true
		}
	}
	return false
}
