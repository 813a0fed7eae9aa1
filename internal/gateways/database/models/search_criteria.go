package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SearchCriteria stores keywords in their textual form, "(a,b)" for alternations.
type SearchCriteria struct {
	bun.BaseModel `bun:"table:search_criteria,alias:sc"`

	ID             string     `bun:"id,pk"`
	CardID         string     `bun:"card_id,notnull"`
	Include        []string   `bun:"include_keywords,array,notnull"`
	Exclude        []string   `bun:"exclude_keywords,array,notnull"`
	Active         bool       `bun:"active,notnull"`
	SearchURL      string     `bun:"search_url,notnull"`
	LastReconciled time.Time  `bun:"last_reconciled,notnull"`
	BackfillTime   *time.Time `bun:"backfill_time,nullzero"`
	CreatedAt      time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}
