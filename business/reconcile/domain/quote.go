package domain

import "github.com/shopspring/decimal"

// Known shop sources. Quotes from anything outside this set are dropped
// by the source gate. Magi has no scraper yet; its quotes only enter
// through snapshots built elsewhere.
const (
	SourceCardRush   = "cardrush"
	SourceTorecaCamp = "torecacamp"
	SourceMagi       = "magi"
)

// DefaultJPYUSDRate is the fixed conversion factor applied when a quote
// carries no pre-converted reference price.
var DefaultJPYUSDRate = decimal.NewFromFloat(0.0065)

// Quote is one observed price for one card at one shop.
type Quote struct {
	Source    string          `json:"source"`
	Condition string          `json:"condition"`
	PriceJPY  int64           `json:"priceJpy"`
	PriceUSD  decimal.Decimal `json:"priceUsd"`
	InStock   bool            `json:"inStock"`
	URL       string          `json:"url,omitempty"`
}

// ReferencePrice returns the quote's buy-side price in USD, converting
// from the local price with the given rate when the scraper did not
// pre-convert.
func (q Quote) ReferencePrice(rate decimal.Decimal) decimal.Decimal {
	if q.PriceUSD.IsPositive() {
		return q.PriceUSD
	}
	return decimal.NewFromInt(q.PriceJPY).Mul(rate)
}

// NormalizedQuote is a Quote whose condition has been mapped into a
// canonical grade.
type NormalizedQuote struct {
	Quote
	Grade Grade `json:"grade"`
}

// SourceSet is the allow-list of shops a selection considers.
type SourceSet map[string]struct{}

// NewSourceSet builds a SourceSet from shop identifiers.
func NewSourceSet(sources ...string) SourceSet {
	set := make(SourceSet, len(sources))
	for _, s := range sources {
		set[s] = struct{}{}
	}
	return set
}

// Contains reports whether the source is in the set.
func (s SourceSet) Contains(source string) bool {
	_, ok := s[source]
	return ok
}

// DefaultSources is the single-source set used when a caller supplies
// none.
func DefaultSources() SourceSet {
	return NewSourceSet(SourceCardRush)
}

// AllSources widens the gate to every known shop.
func AllSources() SourceSet {
	return NewSourceSet(SourceCardRush, SourceTorecaCamp, SourceMagi)
}

// FilterQuotes keeps a quote only if its source is allowed, its condition
// normalizes to a supported grade, and its local price is positive.
// Filtering is stable: surviving quotes keep their input order.
func FilterQuotes(quotes []Quote, allowed SourceSet) []NormalizedQuote {
	if len(allowed) == 0 {
		allowed = DefaultSources()
	}

	out := make([]NormalizedQuote, 0, len(quotes))
	for _, q := range quotes {
		if !allowed.Contains(q.Source) {
			continue
		}
		if q.PriceJPY <= 0 {
			continue
		}
		grade, ok := NormalizeCondition(q.Condition)
		if !ok {
			continue
		}
		out = append(out, NormalizedQuote{Quote: q, Grade: grade})
	}
	return out
}
