package pricing

import "time"

type PriceType string

const (
	PriceTypeSale    PriceType = "SALE"
	PriceTypeListing PriceType = "LISTING"
)

func (pt PriceType) Valid() bool {
	return pt == PriceTypeSale || pt == PriceTypeListing
}

// Aggregate is a precomputed summary of prices over one window and currency set. Prices
// are in minor units.
type Aggregate struct {
	ID             string
	CardID         string
	CurrencyCode   string
	PriceType      PriceType
	PeriodSizeDays *int
	CurrenciesUsed []string
	Volume         int
	MinPrice       int64
	LowPrice       int64
	Price          int64
	HighPrice      int64
	MaxPrice       int64
	LastUpdatedAt  time.Time
	StatIDs        []string
}

// PokePrice is the representative price of a card in one currency.
type PokePrice struct {
	CardID       string
	CurrencyCode string
	Sold         *Aggregate
	Listing      *Aggregate
	Tags         TagSet
}

func (p *PokePrice) Empty() bool {
	return p == nil || (p.Sold == nil && p.Listing == nil)
}
