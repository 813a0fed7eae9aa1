package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"github.com/pokeprice/engine/internal/gateways/database/models"
)

const entityCard = "card"

type CardRepository struct {
	*BaseRepository
}

func NewCardRepository(db bun.IDB) *CardRepository {
	return &CardRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *CardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	card := new(models.Card)
	err := r.SelectOneWithTimeout(ctx, "get", entityCard, id, func(ctx context.Context) error {
		return r.db.NewSelect().Model(card).Where("id = ?", id).Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// Upsert creates the card or refreshes its descriptive fields.
func (r *CardRepository) Upsert(ctx context.Context, card *models.Card) error {
	now := time.Now().UTC()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	card.UpdatedAt = now

	_, err := r.ExecWithTimeout(ctx, "upsert", entityCard, func(ctx context.Context) (sql.Result, error) {
		return r.db.NewInsert().
			Model(card).
			On("CONFLICT (id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("set_name = EXCLUDED.set_name").
			Set("number = EXCLUDED.number").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
	})
	return err
}

// Import inserts cards whose id is not present yet.
func (r *CardRepository) Import(ctx context.Context, cards []*models.Card) (int64, error) {
	if len(cards) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	for _, c := range cards {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
	}
	return r.BatchInsert(ctx, entityCard, &cards)
}
