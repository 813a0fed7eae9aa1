package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/pokeprice/engine/internal/domain/pricing"
	"github.com/pokeprice/engine/internal/gateways/database/models"
)

const entityPriceAggregate = "price_aggregate"

type AggregateRepository struct {
	*BaseRepository
}

var _ pricing.AggregateRepository = (*AggregateRepository)(nil)

func NewAggregateRepository(db bun.IDB) *AggregateRepository {
	return &AggregateRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *AggregateRepository) ListForCard(ctx context.Context, cardID, currency string) ([]pricing.Aggregate, error) {
	var rows []*models.PriceAggregate
	err := r.SelectWithTimeout(ctx, "list_for_card", entityPriceAggregate, func(ctx context.Context) error {
		return r.db.NewSelect().
			Model(&rows).
			Where("card_id = ?", cardID).
			Where("currency_code = ?", currency).
			Order("id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]pricing.Aggregate, 0, len(rows))
	for _, row := range rows {
		out = append(out, pricing.Aggregate{
			ID:             row.ID,
			CardID:         row.CardID,
			CurrencyCode:   row.CurrencyCode,
			PriceType:      pricing.PriceType(row.PriceType),
			PeriodSizeDays: row.PeriodSizeDays,
			CurrenciesUsed: row.CurrenciesUsed,
			Volume:         row.Volume,
			MinPrice:       row.MinPrice,
			LowPrice:       row.LowPrice,
			Price:          row.Price,
			HighPrice:      row.HighPrice,
			MaxPrice:       row.MaxPrice,
			LastUpdatedAt:  row.LastUpdatedAt,
			StatIDs:        row.StatIDs,
		})
	}
	return out, nil
}
