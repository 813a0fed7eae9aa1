package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PriceAggregate struct {
	bun.BaseModel `bun:"table:price_aggregates,alias:pa"`

	ID             string    `bun:"id,pk"`
	CardID         string    `bun:"card_id,notnull"`
	CurrencyCode   string    `bun:"currency_code,notnull"`
	PriceType      string    `bun:"price_type,notnull"`
	PeriodSizeDays *int      `bun:"period_size_days"`
	CurrenciesUsed []string  `bun:"currencies_used,array,notnull,default:'{}'"`
	Volume         int       `bun:"volume,notnull"`
	MinPrice       int64     `bun:"min_price,notnull"`
	LowPrice       int64     `bun:"low_price,notnull"`
	Price          int64     `bun:"price,notnull"`
	HighPrice      int64     `bun:"high_price,notnull"`
	MaxPrice       int64     `bun:"max_price,notnull"`
	LastUpdatedAt  time.Time `bun:"last_updated_at,notnull"`
	StatIDs        []string  `bun:"stat_ids,array,notnull,default:'{}'"`
}
