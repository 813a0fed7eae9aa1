package repositories

import (
	"context"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/pokeprice/engine/internal/domain/reconcile"
	"github.com/pokeprice/engine/internal/gateways/database/models"
)

const (
	TablePriceRecords = "price_records"
	TableOpenListings = "open_listings"
)

// RecordRepository pages through one of the record tables for reconciliation. Price
// records and open listings share the columns matching needs.
type RecordRepository struct {
	*BaseRepository
	table string
}

var _ reconcile.RecordSource = (*RecordRepository)(nil)

func NewPriceRecordRepository(db bun.IDB) *RecordRepository {
	return &RecordRepository{BaseRepository: NewBaseRepository(db), table: TablePriceRecords}
}

func NewOpenListingRepository(db bun.IDB) *RecordRepository {
	return &RecordRepository{BaseRepository: NewBaseRepository(db), table: TableOpenListings}
}

func (r *RecordRepository) Name() string {
	return r.table
}

func (r *RecordRepository) Batch(ctx context.Context, cardID, startAfterID string, limit int) ([]reconcile.Record, error) {
	var rows []models.RecordRow
	err := r.SelectWithTimeout(ctx, "batch", r.table, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			ModelTableExpr("? AS r", bun.Ident(r.table)).
			Where("r.card_id = ?", cardID).
			Where("r.id > ?", startAfterID).
			OrderExpr("r.id ASC").
			Limit(limit).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]reconcile.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, reconcile.Record{
			ID:          row.ID,
			CardID:      row.CardID,
			SourceType:  row.SourceType,
			ListingName: row.ListingName,
			State:       row.State,
			SearchIDs:   row.SearchIDs,
		})
	}
	return out, nil
}

// UpdateSearchIDs writes one batch in a single transaction.
func (r *RecordRepository) UpdateSearchIDs(ctx context.Context, updates []reconcile.Update) error {
	if len(updates) == 0 {
		return nil
	}
	return r.Transaction(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, u := range updates {
			ids := u.SearchIDs
			if ids == nil {
				ids = []string{}
			}
			_, err := tx.NewUpdate().
				Model((*models.RecordRow)(nil)).
				ModelTableExpr("? AS r", bun.Ident(r.table)).
				Set("search_ids = ?", pgdialect.Array(ids)).
				Where("r.id = ?", u.ID).
				Exec(ctx)
			if err != nil {
				return r.HandleErrorWithID("update_search_ids", r.table, u.ID, err)
			}
		}
		return nil
	})
}

// CountForCriteria reports how many records currently carry the criteria id.
func (r *RecordRepository) CountForCriteria(ctx context.Context, criteriaID string) (int, error) {
	timeoutCtx, cancel := r.WithTimeout(ctx)
	defer cancel()

	count, err := r.db.NewSelect().
		TableExpr("? AS r", bun.Ident(r.table)).
		Where("? = ANY(r.search_ids)", criteriaID).
		Count(timeoutCtx)
	return count, r.HandleError("count_for_criteria", r.table, err)
}

func (r *RecordRepository) ImportPriceRecords(ctx context.Context, rows []*models.PriceRecord) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return r.BatchInsert(ctx, TablePriceRecords, &rows)
}

func (r *RecordRepository) ImportOpenListings(ctx context.Context, rows []*models.OpenListing) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return r.BatchInsert(ctx, TableOpenListings, &rows)
}
