package domain

import "github.com/shopspring/decimal"

// ViabilityThresholdPercent is the profit percent a spread must strictly
// exceed to be flagged viable. 20.0% is not viable; 20.1% is.
const ViabilityThresholdPercent = 20

var (
	viabilityThreshold = decimal.NewFromInt(ViabilityThresholdPercent)
	hundred            = decimal.NewFromInt(100)
)

// ArbitrageResult is the derived margin of a baseline against the
// reference market price. Ephemeral: rebuilt on every refresh, never
// persisted on its own.
type ArbitrageResult struct {
	ProfitUSD     decimal.Decimal `json:"profitUsd"`
	ProfitPercent decimal.Decimal `json:"profitPercent"`
	Viable        bool            `json:"viable"`
	Potential     bool            `json:"potential"`
}

// ComputeMargin compares a buy-side baseline price against the sell-side
// market price, both in USD. Returns nil when either price is absent
// (non-positive): margin is undefined without both.
//
// Amounts round to 2 decimal places and percentages to 1, both
// half-away-from-zero (decimal.Round). The same rounding applies
// everywhere margins are computed.
func ComputeMargin(buyUSD, marketUSD decimal.Decimal) *ArbitrageResult {
	if !buyUSD.IsPositive() || !marketUSD.IsPositive() {
		return nil
	}

	profit := marketUSD.Sub(buyUSD).Round(2)
	percent := profit.Div(buyUSD).Mul(hundred).Round(1)

	return &ArbitrageResult{
		ProfitUSD:     profit,
		ProfitPercent: percent,
		Viable:        percent.GreaterThan(viabilityThreshold),
	}
}

// ConservativeMarginPercent estimates the margin a buyer would see at the
// WORST (highest) in-stock local price in the pool, falling back to all
// quotes when nothing is stocked. It exists only for bucket
// classification; the displayed baseline margin comes from ComputeMargin
// over the selected baseline and the two must not be conflated.
func ConservativeMarginPercent(pool []NormalizedQuote, marketUSD, rate decimal.Decimal) (decimal.Decimal, bool) {
	if len(pool) == 0 || !marketUSD.IsPositive() {
		return decimal.Zero, false
	}

	worst := worstQuote(pool, true)
	if worst == nil {
		worst = worstQuote(pool, false)
	}

	result := ComputeMargin(worst.ReferencePrice(rate), marketUSD)
	if result == nil {
		return decimal.Zero, false
	}
	return result.ProfitPercent, true
}

func worstQuote(pool []NormalizedQuote, inStockOnly bool) *NormalizedQuote {
	var worst *NormalizedQuote
	for i := range pool {
		q := &pool[i]
		if inStockOnly && !q.InStock {
			continue
		}
		if worst == nil || q.PriceJPY > worst.PriceJPY {
			worst = q
		}
	}
	return worst
}

// MarginBucket is a coarse classification of the conservative margin
// percent, used for filter grouping.
type MarginBucket string

const (
	BucketBelow20 MarginBucket = "below20"
	Bucket20To40  MarginBucket = "20to40"
	Bucket40To60  MarginBucket = "40to60"
	Bucket60Plus  MarginBucket = "60plus"
)

var (
	bucketBound20 = decimal.NewFromInt(20)
	bucketBound40 = decimal.NewFromInt(40)
	bucketBound60 = decimal.NewFromInt(60)
)

// ClassifyMargin buckets a margin percent by the fixed boundaries
// <20, [20,40), [40,60), >=60. Boundaries belong to the upper bucket:
// exactly 20.0 is in [20,40), exactly 60.0 is in >=60.
func ClassifyMargin(pct decimal.Decimal) MarginBucket {
	switch {
	case pct.LessThan(bucketBound20):
		return BucketBelow20
	case pct.LessThan(bucketBound40):
		return Bucket20To40
	case pct.LessThan(bucketBound60):
		return Bucket40To60
	default:
		return Bucket60Plus
	}
}
