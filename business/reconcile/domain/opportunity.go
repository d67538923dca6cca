package domain

import "github.com/shopspring/decimal"

// Opportunity is a Card enriched with the baseline chosen for it and the
// margin of that baseline against the reference market price. Derived
// wholesale on each refresh.
type Opportunity struct {
	Card     Card             `json:"card"`
	Baseline Baseline         `json:"baseline"`
	Result   *ArbitrageResult `json:"result,omitempty"`
}

// BuildOpportunity derives the baseline and margin for one card under
// the given source set and conversion rate. A card with no usable quotes
// or no market price yields an Opportunity with a nil Result; that is a
// normal state, not an error.
func BuildOpportunity(card Card, allowed SourceSet, rate decimal.Decimal) Opportunity {
	baseline := SelectBaseline(card.Quotes, allowed)
	opp := Opportunity{Card: card, Baseline: baseline}
	if !baseline.Resolved() {
		return opp
	}

	result := ComputeMargin(baseline.Quote.ReferencePrice(rate), card.MarketUSD())
	if result != nil {
		// An out-of-stock baseline means no in-stock alternative existed:
		// the margin is a projection, not a live opportunity.
		result.Potential = !baseline.InStock
		opp.Result = result
	}
	return opp
}

// IsViable reports whether the opportunity crossed the viability
// threshold.
func (o *Opportunity) IsViable() bool {
	return o.Result != nil && o.Result.Viable
}
