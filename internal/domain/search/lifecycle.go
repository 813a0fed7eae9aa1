package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pokeprice/engine/internal/workpool"
)

const maxKeywordLength = 200

// ValidationError is returned before any write happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", ve.Field, ve.Reason)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Request is one keyword update for a card.
type Request struct {
	CardID  string   `validate:"required"`
	Include []string `validate:"required,min=1,dive,required,max=200"`
	Exclude []string `validate:"omitempty,dive,required,max=200"`
}

// BulkResult pairs a bulk request with its outcome.
type BulkResult struct {
	Request  Request
	Criteria *Criteria
	Err      error
}

type Lifecycle struct {
	repo      Repository
	syncer    SelectionSyncer
	validate  *validator.Validate
	searchURL string
	newID     func() string
	now       func() time.Time
}

type LifecycleOption func(*Lifecycle)

func WithClock(now func() time.Time) LifecycleOption {
	return func(l *Lifecycle) { l.now = now }
}

func WithIDGenerator(newID func() string) LifecycleOption {
	return func(l *Lifecycle) { l.newID = newID }
}

func NewLifecycle(repo Repository, syncer SelectionSyncer, searchBaseURL string, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		repo:      repo,
		syncer:    syncer,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		searchURL: searchBaseURL,
		newID:     func() string { return uuid.New().String() },
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateOrUpdate makes the given keyword set the single active criteria of the card. An
// identical active set is returned untouched. Selections are synced after the write; a
// sync failure is returned together with the committed criteria.
func (l *Lifecycle) CreateOrUpdate(ctx context.Context, cardID string, include, exclude []string) (*Criteria, error) {
	req := Request{
		CardID:  strings.TrimSpace(cardID),
		Include: trimAll(include),
		Exclude: trimAll(exclude),
	}
	inc, exc, err := l.prepare(req)
	if err != nil {
		return nil, err
	}

	var (
		result  *Criteria
		created bool
	)
	err = l.repo.RunInCardTx(ctx, req.CardID, func(ctx context.Context, repo Repository) error {
		active, err := repo.ActiveForCard(ctx, req.CardID)
		if err != nil {
			return fmt.Errorf("failed to load active criteria: %w", err)
		}

		if len(active) == 1 && active[0].HasKeywords(inc, exc) {
			result = active[0]
			return nil
		}

		if len(active) > 0 {
			ids := make([]string, 0, len(active))
			for _, c := range active {
				ids = append(ids, c.ID)
			}
			if err := repo.Deactivate(ctx, ids); err != nil {
				return fmt.Errorf("failed to deactivate criteria: %w", err)
			}
		}

		next := &Criteria{
			ID:             l.newID(),
			CardID:         req.CardID,
			Include:        inc,
			Exclude:        exc,
			Active:         true,
			SearchURL:      BuildSearchURL(l.searchURL, inc, exc),
			LastReconciled: time.Unix(0, 0).UTC(),
			CreatedAt:      l.now().UTC(),
		}
		if err := repo.Create(ctx, next); err != nil {
			return fmt.Errorf("failed to create criteria: %w", err)
		}
		result, created = next, true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		slog.Info("Search criteria replaced",
			slog.String("type", "sys"),
			slog.String("card_id", req.CardID),
			slog.String("criteria_id", result.ID),
			slog.Any("include", KeywordStrings(inc)),
			slog.Any("exclude", KeywordStrings(exc)),
		)
	}

	if err := l.sync(ctx, req.CardID); err != nil {
		return result, err
	}
	return result, nil
}

// Remove deactivates every active criteria of the card and returns how many were active.
func (l *Lifecycle) Remove(ctx context.Context, cardID string) (int, error) {
	cardID = strings.TrimSpace(cardID)
	if cardID == "" {
		return 0, &ValidationError{Field: "CardID", Reason: "is required"}
	}

	removed := 0
	err := l.repo.RunInCardTx(ctx, cardID, func(ctx context.Context, repo Repository) error {
		active, err := repo.ActiveForCard(ctx, cardID)
		if err != nil {
			return fmt.Errorf("failed to load active criteria: %w", err)
		}
		if len(active) == 0 {
			return nil
		}
		ids := make([]string, 0, len(active))
		for _, c := range active {
			ids = append(ids, c.ID)
		}
		if err := repo.Deactivate(ctx, ids); err != nil {
			return fmt.Errorf("failed to deactivate criteria: %w", err)
		}
		removed = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		if err := l.sync(ctx, cardID); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// BulkCreateOrUpdate applies many keyword updates through the bounded pool. Results keep
// the order of reqs.
func (l *Lifecycle) BulkCreateOrUpdate(ctx context.Context, pool *workpool.Pool, reqs []Request) []BulkResult {
	results := make([]BulkResult, len(reqs))
	tasks := make([]workpool.Task, len(reqs))
	for i, req := range reqs {
		results[i].Request = req
		tasks[i] = func(ctx context.Context) error {
			c, err := l.CreateOrUpdate(ctx, req.CardID, req.Include, req.Exclude)
			results[i].Criteria, results[i].Err = c, err
			return err
		}
	}

	if err := pool.Run(ctx, tasks); err != nil {
		slog.Warn("Bulk keyword update finished with errors",
			slog.String("type", "sys"),
			slog.Int("requests", len(reqs)),
			slog.Any("error", err),
		)
	}

	// Tasks never started because ctx ended carry no outcome yet.
	for i := range results {
		if results[i].Criteria == nil && results[i].Err == nil {
			results[i].Err = ctx.Err()
		}
	}
	return results
}

func (l *Lifecycle) prepare(req Request) ([]Keyword, []Keyword, error) {
	if err := l.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, nil, &ValidationError{Field: fe.Namespace(), Reason: describeTag(fe)}
		}
		return nil, nil, &ValidationError{Field: "request", Reason: err.Error()}
	}

	inc, err := ParseKeywords(req.Include)
	if err != nil {
		return nil, nil, &ValidationError{Field: "Include", Reason: err.Error()}
	}
	exc, err := ParseKeywords(req.Exclude)
	if err != nil {
		return nil, nil, &ValidationError{Field: "Exclude", Reason: err.Error()}
	}

	inc, exc = NormalizeKeywords(inc, exc)
	return inc, exc, nil
}

func (l *Lifecycle) sync(ctx context.Context, cardID string) error {
	if l.syncer == nil {
		return nil
	}
	if err := l.syncer.SyncSelectionsForCard(ctx, cardID); err != nil {
		return fmt.Errorf("failed to sync selections for card %s: %w", cardID, err)
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("needs at least %s keyword(s)", fe.Param())
	case "max":
		return fmt.Sprintf("is longer than %d characters", maxKeywordLength)
	}
	return fmt.Sprintf("failed %q", fe.Tag())
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
