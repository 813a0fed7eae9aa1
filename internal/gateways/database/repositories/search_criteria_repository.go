package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/pokeprice/engine/internal/domain/search"
	"github.com/pokeprice/engine/internal/gateways/database/models"
)

const entitySearchCriteria = "search_criteria"

type SearchCriteriaRepository struct {
	*BaseRepository
}

var _ search.Repository = (*SearchCriteriaRepository)(nil)

func NewSearchCriteriaRepository(db bun.IDB) *SearchCriteriaRepository {
	return &SearchCriteriaRepository{BaseRepository: NewBaseRepository(db)}
}

// RunInCardTx locks the card row for the lifetime of the transaction, so concurrent
// keyword updates of one card are applied one after the other.
func (r *SearchCriteriaRepository) RunInCardTx(ctx context.Context, cardID string, fn func(context.Context, search.Repository) error) error {
	return r.Transaction(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		card := new(models.Card)
		err := tx.NewSelect().
			Model(card).
			Column("id").
			Where("id = ?", cardID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			return r.HandleErrorWithID("lock", "card", cardID, err)
		}
		return fn(ctx, NewSearchCriteriaRepository(tx))
	})
}

func (r *SearchCriteriaRepository) GetByID(ctx context.Context, id string) (*search.Criteria, error) {
	row := new(models.SearchCriteria)
	err := r.SelectOneWithTimeout(ctx, "get", entitySearchCriteria, id, func(ctx context.Context) error {
		return r.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return toCriteria(row)
}

func (r *SearchCriteriaRepository) ActiveForCard(ctx context.Context, cardID string) ([]*search.Criteria, error) {
	var rows []*models.SearchCriteria
	err := r.SelectWithTimeout(ctx, "active_for_card", entitySearchCriteria, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("card_id = ?", cardID).
			Where("active = TRUE").
			Order("created_at ASC", "id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return toCriteriaList(rows)
}

func (r *SearchCriteriaRepository) ListStale(ctx context.Context, limit int) ([]*search.Criteria, error) {
	var rows []*models.SearchCriteria
	err := r.SelectWithTimeout(ctx, "list_stale", entitySearchCriteria, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("active = TRUE").
			Order("last_reconciled ASC", "id ASC").
			Limit(limit).
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return toCriteriaList(rows)
}

// ListActive returns every active criteria of the given cards.
func (r *SearchCriteriaRepository) ListActive(ctx context.Context, cardIDs []string) ([]*search.Criteria, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	var rows []*models.SearchCriteria
	err := r.SelectWithTimeout(ctx, "list_active", entitySearchCriteria, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("card_id IN (?)", bun.In(cardIDs)).
			Where("active = TRUE").
			Order("card_id ASC", "created_at ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return toCriteriaList(rows)
}

func (r *SearchCriteriaRepository) Create(ctx context.Context, c *search.Criteria) error {
	row := fromCriteria(c)
	_, err := r.ExecWithTimeout(ctx, "create", entitySearchCriteria, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().Model(row).Exec(ctx)
	})
	return err
}

func (r *SearchCriteriaRepository) Deactivate(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.ExecWithTimeout(ctx, "deactivate", entitySearchCriteria, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model((*models.SearchCriteria)(nil)).
			Set("active = FALSE").
			Set("backfill_time = NULL").
			Where("id IN (?)", bun.In(ids)).
			Exec(ctx)
	})
	return err
}

func (r *SearchCriteriaRepository) MarkReconciled(ctx context.Context, id string, at time.Time) error {
	affected, err := r.ExecWithTimeout(ctx, "mark_reconciled", entitySearchCriteria, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewUpdate().
			Model((*models.SearchCriteria)(nil)).
			Set("last_reconciled = ?", at).
			Where("id = ?", id).
			Exec(ctx)
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return &NotFoundError{Entity: entitySearchCriteria, ID: id}
	}
	return nil
}

// Import inserts legacy rows as they are; existing ids are kept.
func (r *SearchCriteriaRepository) Import(ctx context.Context, rows []*models.SearchCriteria) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	return r.BatchInsert(ctx, entitySearchCriteria, &rows)
}

func fromCriteria(c *search.Criteria) *models.SearchCriteria {
	return &models.SearchCriteria{
		ID:             c.ID,
		CardID:         c.CardID,
		Include:        search.KeywordStrings(c.Include),
		Exclude:        search.KeywordStrings(c.Exclude),
		Active:         c.Active,
		SearchURL:      c.SearchURL,
		LastReconciled: c.LastReconciled,
		BackfillTime:   c.BackfillTime,
		CreatedAt:      c.CreatedAt,
	}
}

func toCriteria(row *models.SearchCriteria) (*search.Criteria, error) {
	include, err := search.ParseKeywords(row.Include)
	if err != nil {
		return nil, fmt.Errorf("criteria %s has invalid include keywords: %w", row.ID, err)
	}
	exclude, err := search.ParseKeywords(row.Exclude)
	if err != nil {
		return nil, fmt.Errorf("criteria %s has invalid exclude keywords: %w", row.ID, err)
	}
	return &search.Criteria{
		ID:             row.ID,
		CardID:         row.CardID,
		Include:        include,
		Exclude:        exclude,
		Active:         row.Active,
		SearchURL:      row.SearchURL,
		LastReconciled: row.LastReconciled,
		BackfillTime:   row.BackfillTime,
		CreatedAt:      row.CreatedAt,
	}, nil
}

func toCriteriaList(rows []*models.SearchCriteria) ([]*search.Criteria, error) {
	out := make([]*search.Criteria, 0, len(rows))
	for _, row := range rows {
		c, err := toCriteria(row)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
