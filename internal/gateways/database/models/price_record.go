package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RecordStateActive   = "ACTIVE"
	RecordStateInactive = "INACTIVE"
)

// PriceRecord is one scraped sale. Prices are in minor units.
type PriceRecord struct {
	bun.BaseModel `bun:"table:price_records,alias:pr"`

	ID           string    `bun:"id,pk"`
	CardID       string    `bun:"card_id,notnull"`
	SourceType   string    `bun:"source_type,notnull"`
	ListingName  string    `bun:"listing_name"`
	Price        int64     `bun:"price,notnull"`
	CurrencyCode string    `bun:"currency_code,notnull"`
	Timestamp    time.Time `bun:"timestamp,notnull"`
	State        string    `bun:"state,notnull,default:'ACTIVE'"`
	SearchIDs    []string  `bun:"search_ids,array,notnull,default:'{}'"`
}

// OpenListing is a live marketplace listing, matched like a PriceRecord.
type OpenListing struct {
	bun.BaseModel `bun:"table:open_listings,alias:ol"`

	ID           string    `bun:"id,pk"`
	CardID       string    `bun:"card_id,notnull"`
	SourceType   string    `bun:"source_type,notnull"`
	ListingName  string    `bun:"listing_name"`
	ListingURL   string    `bun:"listing_url"`
	Price        int64     `bun:"price,notnull"`
	CurrencyCode string    `bun:"currency_code,notnull"`
	State        string    `bun:"state,notnull,default:'ACTIVE'"`
	SearchIDs    []string  `bun:"search_ids,array,notnull,default:'{}'"`
	LastSeenAt   time.Time `bun:"last_seen_at,notnull,default:current_timestamp"`
}

// RecordRow is the shared matching view of both record tables.
type RecordRow struct {
	bun.BaseModel `bun:"alias:r"`

	ID          string   `bun:"id"`
	CardID      string   `bun:"card_id"`
	SourceType  string   `bun:"source_type"`
	ListingName string   `bun:"listing_name"`
	State       string   `bun:"state"`
	SearchIDs   []string `bun:"search_ids,array"`
}
