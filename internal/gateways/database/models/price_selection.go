package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PriceSelection struct {
	bun.BaseModel `bun:"table:price_selections,alias:ps"`

	ID            string    `bun:"id,pk"`
	CardID        string    `bun:"card_id,notnull"`
	PriceType     string    `bun:"price_type,notnull"`
	CurrencyCode  string    `bun:"currency_code,notnull"`
	Condition     string    `bun:"condition,notnull"`
	SearchID      string    `bun:"search_id"`
	SearchInclude []string  `bun:"search_include,array,notnull,default:'{}'"`
	SearchExclude []string  `bun:"search_exclude,array,notnull,default:'{}'"`
	HasReconciled bool      `bun:"has_reconciled,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
