package migration

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/pokeprice/engine/internal/gateways/database/models"
	"github.com/pokeprice/engine/internal/gateways/database/repositories"
)

// RepositoryStore writes imported rows through the database repositories.
type RepositoryStore struct {
	cards        *repositories.CardRepository
	criteria     *repositories.SearchCriteriaRepository
	priceRecords *repositories.RecordRepository
	openListings *repositories.RecordRepository
	selections   *repositories.SelectionRepository
}

var _ Store = (*RepositoryStore)(nil)

func NewRepositoryStore(db bun.IDB) *RepositoryStore {
	return &RepositoryStore{
		cards:        repositories.NewCardRepository(db),
		criteria:     repositories.NewSearchCriteriaRepository(db),
		priceRecords: repositories.NewPriceRecordRepository(db),
		openListings: repositories.NewOpenListingRepository(db),
		selections:   repositories.NewSelectionRepository(db),
	}
}

func (s *RepositoryStore) ImportCards(ctx context.Context, rows []*models.Card) (int64, error) {
	return s.cards.Import(ctx, rows)
}

func (s *RepositoryStore) ImportCriteria(ctx context.Context, rows []*models.SearchCriteria) (int64, error) {
	return s.criteria.Import(ctx, rows)
}

func (s *RepositoryStore) ImportPriceRecords(ctx context.Context, rows []*models.PriceRecord) (int64, error) {
	return s.priceRecords.ImportPriceRecords(ctx, rows)
}

func (s *RepositoryStore) ImportOpenListings(ctx context.Context, rows []*models.OpenListing) (int64, error) {
	return s.openListings.ImportOpenListings(ctx, rows)
}

func (s *RepositoryStore) ImportSelections(ctx context.Context, rows []*models.PriceSelection) (int64, error) {
	return s.selections.Import(ctx, rows)
}
