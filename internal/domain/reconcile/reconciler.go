// Package reconcile keeps the search ids stored on price records and open listings in
// line with the keyword criteria of their card.
package reconcile

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pokeprice/engine/internal/domain/search"
	"github.com/pokeprice/engine/internal/logger"
)

const (
	DefaultBatchSize  = 50
	DefaultSourceType = "EBAY"

	StateInactive = "INACTIVE"
)

// Record is the matching-relevant view of a price record or open listing.
type Record struct {
	ID          string
	CardID      string
	SourceType  string
	ListingName string
	State       string
	SearchIDs   []string
}

type Update struct {
	ID        string
	SearchIDs []string
}

//go:generate mockgen -destination=mock/source.go -package=mock . RecordSource,CriteriaMarker

// RecordSource pages through one record table of a card in ascending id order.
type RecordSource interface {
	Name() string
	Batch(ctx context.Context, cardID, startAfterID string, limit int) ([]Record, error)
	UpdateSearchIDs(ctx context.Context, updates []Update) error
}

type CriteriaMarker interface {
	MarkReconciled(ctx context.Context, id string, at time.Time) error
}

type Result struct {
	Processed int
	Skipped   int
	Updated   int
}

func (r Result) add(o Result) Result {
	return Result{
		Processed: r.Processed + o.Processed,
		Skipped:   r.Skipped + o.Skipped,
		Updated:   r.Updated + o.Updated,
	}
}

type Reconciler struct {
	sources        []RecordSource
	criteria       CriteriaMarker
	matchers       *search.MatcherCache
	batchSize      int
	listingSources map[string]struct{}
	now            func() time.Time
}

type Option func(*Reconciler)

func WithBatchSize(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithListingSources sets the source types whose records carry a marketplace title.
func WithListingSources(types ...string) Option {
	return func(r *Reconciler) {
		if len(types) == 0 {
			return
		}
		r.listingSources = make(map[string]struct{}, len(types))
		for _, t := range types {
			r.listingSources[strings.ToUpper(strings.TrimSpace(t))] = struct{}{}
		}
	}
}

func WithMatcherCache(cache *search.MatcherCache) Option {
	return func(r *Reconciler) { r.matchers = cache }
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

// New builds a reconciler sweeping the given sources in order, price records first.
func New(criteria CriteriaMarker, sources []RecordSource, opts ...Option) *Reconciler {
	r := &Reconciler{
		sources:        sources,
		criteria:       criteria,
		batchSize:      DefaultBatchSize,
		listingSources: map[string]struct{}{DefaultSourceType: {}},
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile sweeps every record of the criteria's card, adding or removing the criteria id
// depending on whether the listing title matches. A failure aborts the sweep; batches
// already written stay written and LastReconciled is left untouched.
func (r *Reconciler) Reconcile(ctx context.Context, c *search.Criteria) (Result, error) {
	start := time.Now()
	matcher := r.matchers.For(c)

	var total Result
	for _, src := range r.sources {
		res, err := r.sweep(ctx, src, c, matcher)
		total = total.add(res)
		if err != nil {
			err = fmt.Errorf("failed to reconcile %s for criteria %s: %w", src.Name(), c.ID, err)
			logger.LogReconcile(c.ID, c.CardID, total.Processed, total.Updated, time.Since(start), err)
			return total, err
		}
	}

	at := r.now().UTC()
	if err := r.criteria.MarkReconciled(ctx, c.ID, at); err != nil {
		err = fmt.Errorf("failed to mark criteria %s reconciled: %w", c.ID, err)
		logger.LogReconcile(c.ID, c.CardID, total.Processed, total.Updated, time.Since(start), err)
		return total, err
	}
	c.LastReconciled = at

	logger.LogReconcile(c.ID, c.CardID, total.Processed, total.Updated, time.Since(start), nil)
	return total, nil
}

func (r *Reconciler) sweep(ctx context.Context, src RecordSource, c *search.Criteria, matcher *search.Matcher) (Result, error) {
	var res Result
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		batch, err := src.Batch(ctx, c.CardID, cursor, r.batchSize)
		if err != nil {
			return res, fmt.Errorf("failed to load batch after %q: %w", cursor, err)
		}
		if len(batch) == 0 {
			return res, nil
		}

		var updates []Update
		for _, rec := range batch {
			res.Processed++
			if !r.eligible(rec) {
				res.Skipped++
				continue
			}
			ok, _ := matcher.Match(rec.ListingName)
			next := NextSearchIDs(rec.SearchIDs, c.ID, ok)
			if slices.Equal(next, Normalize(rec.SearchIDs)) {
				continue
			}
			updates = append(updates, Update{ID: rec.ID, SearchIDs: next})
		}

		if len(updates) > 0 {
			if err := src.UpdateSearchIDs(ctx, updates); err != nil {
				return res, fmt.Errorf("failed to update %d records: %w", len(updates), err)
			}
			res.Updated += len(updates)
		}
		cursor = batch[len(batch)-1].ID
	}
}

func (r *Reconciler) eligible(rec Record) bool {
	if _, ok := r.listingSources[strings.ToUpper(rec.SourceType)]; !ok {
		return false
	}
	if strings.EqualFold(rec.State, StateInactive) {
		return false
	}
	return strings.TrimSpace(rec.ListingName) != ""
}

// NextSearchIDs removes criteriaID from current and adds it back when matched. The result
// is sorted and free of duplicates.
func NextSearchIDs(current []string, criteriaID string, matched bool) []string {
	next := make([]string, 0, len(current)+1)
	for _, id := range current {
		if id != criteriaID && id != "" {
			next = append(next, id)
		}
	}
	if matched {
		next = append(next, criteriaID)
	}
	return Normalize(next)
}

func Normalize(ids []string) []string {
	out := slices.Clone(ids)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
