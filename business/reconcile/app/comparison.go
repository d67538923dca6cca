package app

import (
	"github.com/Keytoexplore/pokemonarbdashboard/business/reconcile/domain"
)

// ShopBaseline is one shop's own best offer for a card, resolved with
// the shop as the only allowed source.
type ShopBaseline struct {
	Source   string          `json:"source"`
	Baseline domain.Baseline `json:"baseline"`

	// IsGlobalBest marks the shop whose baseline is the cross-shop
	// winner. The match is structural, on source, grade and local
	// price, so the flag survives re-resolution of either side.
	IsGlobalBest bool `json:"isGlobalBest"`
}

// Comparison lays one card's offers out side by side across shops.
type Comparison struct {
	Global          domain.Baseline                          `json:"global"`
	PerShop         []ShopBaseline                           `json:"perShop"`
	CheapestByGrade map[domain.Grade]*domain.NormalizedQuote `json:"cheapestByGrade"`
}

// BuildComparison resolves the card's baseline globally and once per
// shop. Per-shop rows appear in the iteration order of sources; shops
// with no usable offer still get a row with an unresolved baseline.
func BuildComparison(card domain.Card, sources []string) Comparison {
	cmp := Comparison{
		Global:          domain.SelectBaseline(card.Quotes, domain.NewSourceSet(sources...)),
		CheapestByGrade: make(map[domain.Grade]*domain.NormalizedQuote),
	}

	for _, src := range sources {
		sb := ShopBaseline{
			Source:   src,
			Baseline: domain.SelectBaseline(card.Quotes, domain.NewSourceSet(src)),
		}
		sb.IsGlobalBest = sameOffer(sb.Baseline, cmp.Global)
		cmp.PerShop = append(cmp.PerShop, sb)
	}

	for _, grade := range []domain.Grade{domain.GradeNearMint, domain.GradePlayed} {
		if q := cheapestOfGrade(card.Quotes, domain.NewSourceSet(sources...), grade); q != nil {
			cmp.CheapestByGrade[grade] = q
		}
	}
	return cmp
}

func sameOffer(a, b domain.Baseline) bool {
	if !a.Resolved() || !b.Resolved() {
		return false
	}
	return a.Quote.Source == b.Quote.Source &&
		a.Grade == b.Grade &&
		a.Quote.PriceJPY == b.Quote.PriceJPY
}

// cheapestOfGrade ignores stock status: it answers "what is the lowest
// listed price for this grade anywhere", in-stock or not.
func cheapestOfGrade(quotes []domain.Quote, allowed domain.SourceSet, grade domain.Grade) *domain.NormalizedQuote {
	var best *domain.NormalizedQuote
	for _, q := range domain.FilterQuotes(quotes, allowed) {
		if q.Grade != grade {
			continue
		}
		if best == nil || q.PriceJPY < best.PriceJPY ||
			(q.PriceJPY == best.PriceJPY && q.Source < best.Source) {
			picked := q
			best = &picked
		}
	}
	return best
}
