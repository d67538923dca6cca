package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MarketPrice is the sell-side reference price for a card, as reported
// by the US market collaborator. A zero or negative Price means "no
// market price" and is never treated as a real quote.
type MarketPrice struct {
	Price     decimal.Decimal `json:"price"`
	Sellers   int             `json:"sellers,omitempty"`
	Listings  int             `json:"listings,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	URL       string          `json:"url,omitempty"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// Card is a physical card identity with the raw quotes observed for it.
// Its quote collection is replaced wholesale on every refresh; there is
// no incremental merge across refreshes.
type Card struct {
	ID     string       `json:"id"`
	Set    string       `json:"set"`
	Number string       `json:"number"`
	Rarity string       `json:"rarity"`
	Name   string       `json:"name"`
	Quotes []Quote      `json:"quotes"`
	Market *MarketPrice `json:"market,omitempty"`
}

// CardID derives the stable identifier for a (set, number, rarity)
// combination.
func CardID(set, number, rarity string) string {
	return strings.Join([]string{NormalizeSetCode(set), strings.TrimSpace(number), strings.TrimSpace(rarity)}, "-")
}

// NewCard creates a card with its derived identifier and no quotes.
func NewCard(set, number, rarity, name string) Card {
	return Card{
		ID:     CardID(set, number, rarity),
		Set:    strings.TrimSpace(set),
		Number: strings.TrimSpace(number),
		Rarity: strings.TrimSpace(rarity),
		Name:   name,
	}
}

// MarketUSD returns the reference market price, or zero when none is
// known. Zero and negative reported prices count as "no market price".
func (c *Card) MarketUSD() decimal.Decimal {
	if c.Market == nil || !c.Market.Price.IsPositive() {
		return decimal.Zero
	}
	return c.Market.Price
}

// HasMarketPrice reports whether a usable sell-side price exists.
func (c *Card) HasMarketPrice() bool {
	return c.MarketUSD().IsPositive()
}

// NormalizeSetCode canonicalizes a set code for comparisons.
func NormalizeSetCode(set string) string {
	return strings.ToUpper(strings.TrimSpace(set))
}

// Era is a coarse classification of a card's source set by its prefix.
type Era string

const (
	EraScarletViolet Era = "SV"
	EraSunMoon       Era = "SM"
	EraSwordShield   Era = "S"
	EraMega          Era = "M"
	EraOther         Era = "OTHER"
)

// eraPrefixes is checked in order; SM must precede S or every SM set
// code would classify as the S era.
var eraPrefixes = []struct {
	prefix string
	era    Era
}{
	{"SV", EraScarletViolet},
	{"SM", EraSunMoon},
	{"S", EraSwordShield},
	{"M", EraMega},
}

// ClassifyEra maps a set code to its era, first matching prefix wins.
func ClassifyEra(set string) Era {
	code := NormalizeSetCode(set)
	for _, p := range eraPrefixes {
		if strings.HasPrefix(code, p.prefix) {
			return p.era
		}
	}
	return EraOther
}
