package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/pokeprice/engine/internal/domain/pricing"
	"github.com/pokeprice/engine/internal/domain/search"
	"github.com/pokeprice/engine/internal/domain/selection"
	"github.com/pokeprice/engine/internal/gateways/database/models"
)

const entityPriceSelection = "price_selection"

type SelectionRepository struct {
	*BaseRepository
}

var _ selection.Repository = (*SelectionRepository)(nil)

func NewSelectionRepository(db bun.IDB) *SelectionRepository {
	return &SelectionRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *SelectionRepository) ListByCard(ctx context.Context, cardID string) ([]*selection.Selection, error) {
	var rows []*models.PriceSelection
	err := r.SelectWithTimeout(ctx, "list_by_card", entityPriceSelection, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("card_id = ?", cardID).
			Order("id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]*selection.Selection, 0, len(rows))
	for _, row := range rows {
		out = append(out, &selection.Selection{
			ID:           row.ID,
			CardID:       row.CardID,
			PriceType:    pricing.PriceType(row.PriceType),
			CurrencyCode: row.CurrencyCode,
			Condition:    row.Condition,
			SearchID:     row.SearchID,
			SearchParams: search.Params{
				Include: row.SearchInclude,
				Exclude: row.SearchExclude,
			},
			HasReconciled: row.HasReconciled,
		})
	}
	return out, nil
}

func (r *SelectionRepository) Update(ctx context.Context, selections []*selection.Selection) error {
	if len(selections) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return r.Transaction(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		for _, sel := range selections {
			_, err := tx.NewUpdate().
				Model((*models.PriceSelection)(nil)).
				Set("search_id = ?", sel.SearchID).
				Set("search_include = ?", pgdialect.Array(nonNil(sel.SearchParams.Include))).
				Set("search_exclude = ?", pgdialect.Array(nonNil(sel.SearchParams.Exclude))).
				Set("has_reconciled = ?", sel.HasReconciled).
				Set("updated_at = ?", now).
				Where("id = ?", sel.ID).
				Exec(ctx)
			if err != nil {
				return r.HandleErrorWithID("update", entityPriceSelection, sel.ID, err)
			}
		}
		return nil
	})
}

func (r *SelectionRepository) Import(ctx context.Context, rows []*models.PriceSelection) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return r.BatchInsert(ctx, entityPriceSelection, &rows)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
