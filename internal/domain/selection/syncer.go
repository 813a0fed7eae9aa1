package selection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pokeprice/engine/internal/domain/search"
)

type Syncer struct {
	criteria   CriteriaReader
	selections Repository
}

func NewSyncer(criteria CriteriaReader, selections Repository) *Syncer {
	return &Syncer{criteria: criteria, selections: selections}
}

var _ search.SelectionSyncer = (*Syncer)(nil)

// SyncSelectionsForCard points every selection of the card at its active criteria. Changed
// selections are marked as not reconciled; unchanged ones are not written.
func (s *Syncer) SyncSelectionsForCard(ctx context.Context, cardID string) error {
	active, err := s.criteria.ActiveForCard(ctx, cardID)
	if err != nil {
		return fmt.Errorf("failed to load active criteria: %w", err)
	}
	current := newest(active)
	if current == nil {
		return nil
	}

	selections, err := s.selections.ListByCard(ctx, cardID)
	if err != nil {
		return fmt.Errorf("failed to load selections: %w", err)
	}
	if len(selections) == 0 {
		return nil
	}

	params := current.Params()
	var changed []*Selection
	for _, sel := range selections {
		if sel.SearchID == current.ID && sel.SearchParams.Equal(params) {
			continue
		}
		sel.SearchID = current.ID
		sel.SearchParams = params
		sel.HasReconciled = false
		changed = append(changed, sel)
	}
	if len(changed) == 0 {
		return nil
	}

	if err := s.selections.Update(ctx, changed); err != nil {
		return fmt.Errorf("failed to update %d selections: %w", len(changed), err)
	}

	slog.Info("Price selections synced",
		slog.String("type", "sys"),
		slog.String("card_id", cardID),
		slog.String("criteria_id", current.ID),
		slog.Int("updated", len(changed)),
	)
	return nil
}

// newest picks the most recently created criteria when more than one is active.
func newest(active []*search.Criteria) *search.Criteria {
	var out *search.Criteria
	for _, c := range active {
		if out == nil || c.CreatedAt.After(out.CreatedAt) || (c.CreatedAt.Equal(out.CreatedAt) && c.ID > out.ID) {
			out = c
		}
	}
	return out
}
