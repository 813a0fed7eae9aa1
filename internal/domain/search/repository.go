package search

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/repository.go -package=mock . Repository,SelectionSyncer

type Repository interface {
	// RunInCardTx runs fn with a repository bound to one transaction holding the card's row
	// lock. It returns an error matching domain.ErrNotFound when the card does not exist.
	RunInCardTx(ctx context.Context, cardID string, fn func(ctx context.Context, repo Repository) error) error
	GetByID(ctx context.Context, id string) (*Criteria, error)
	ActiveForCard(ctx context.Context, cardID string) ([]*Criteria, error)
	// ListStale returns active criteria, least recently reconciled first.
	ListStale(ctx context.Context, limit int) ([]*Criteria, error)
	Create(ctx context.Context, c *Criteria) error
	Deactivate(ctx context.Context, ids []string) error
	MarkReconciled(ctx context.Context, id string, at time.Time) error
}

// SelectionSyncer propagates criteria changes to the card's price selections.
type SelectionSyncer interface {
	SyncSelectionsForCard(ctx context.Context, cardID string) error
}
