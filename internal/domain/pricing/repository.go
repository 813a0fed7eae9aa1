package pricing

import "context"

//go:generate mockgen -destination=mock/repository.go -package=mock . AggregateRepository

type AggregateRepository interface {
	// ListForCard returns every aggregate of the card in the currency, both price types.
	ListForCard(ctx context.Context, cardID, currency string) ([]Aggregate, error)
}
