package selection

import (
	"context"

	"github.com/pokeprice/engine/internal/domain/pricing"
	"github.com/pokeprice/engine/internal/domain/search"
)

// Selection tracks which criteria a card's price view in one currency and condition is
// computed from.
type Selection struct {
	ID            string
	CardID        string
	PriceType     pricing.PriceType
	CurrencyCode  string
	Condition     string
	SearchID      string
	SearchParams  search.Params
	HasReconciled bool
}

//go:generate mockgen -destination=mock/repository.go -package=mock . Repository,CriteriaReader

type Repository interface {
	ListByCard(ctx context.Context, cardID string) ([]*Selection, error)
	// Update writes SearchID, SearchParams and HasReconciled of the given selections.
	Update(ctx context.Context, selections []*Selection) error
}

type CriteriaReader interface {
	ActiveForCard(ctx context.Context, cardID string) ([]*search.Criteria, error)
}
