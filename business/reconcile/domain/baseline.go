package domain

// Baseline is the single quote chosen to represent "the price to beat"
// for a card under the stock/grade preference policy. The zero value is
// the "no usable price" terminal case: nil Quote, empty Grade, InStock
// false. Every caller must handle it.
type Baseline struct {
	Quote   *NormalizedQuote `json:"quote,omitempty"`
	Grade   Grade            `json:"grade,omitempty"`
	InStock bool             `json:"inStock"`
}

// Resolved reports whether a usable quote was found.
func (b Baseline) Resolved() bool {
	return b.Quote != nil
}

// baselineTiers fixes the selection precedence. Availability dominates
// grade: a played copy you can buy beats a near-mint copy you cannot.
var baselineTiers = []struct {
	inStock bool
	grade   Grade
}{
	{true, GradeNearMint},
	{true, GradePlayed},
	{false, GradeNearMint},
	{false, GradePlayed},
}

// SelectBaseline picks exactly one quote from the pool: the cheapest
// local price in the first non-empty tier of baselineTiers. Exact price
// ties break by source identifier so repeated selections are
// reproducible. The selector has no notion of "per-shop" versus
// "global"; that distinction lives entirely in the allowed set the
// caller passes.
func SelectBaseline(quotes []Quote, allowed SourceSet) Baseline {
	pool := FilterQuotes(quotes, allowed)

	for _, tier := range baselineTiers {
		var best *NormalizedQuote
		for i := range pool {
			q := &pool[i]
			if q.InStock != tier.inStock || q.Grade != tier.grade {
				continue
			}
			if best == nil ||
				q.PriceJPY < best.PriceJPY ||
				(q.PriceJPY == best.PriceJPY && q.Source < best.Source) {
				best = q
			}
		}
		if best != nil {
			picked := *best
			return Baseline{Quote: &picked, Grade: picked.Grade, InStock: picked.InStock}
		}
	}
	return Baseline{}
}
