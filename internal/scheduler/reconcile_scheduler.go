// Package scheduler re-runs reconciliation for the least recently reconciled criteria on
// a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pokeprice/engine/internal/config"
	"github.com/pokeprice/engine/internal/domain/reconcile"
	"github.com/pokeprice/engine/internal/domain/search"
	"github.com/pokeprice/engine/internal/workpool"
)

var ErrAlreadyRunning = errors.New("reconciliation run already in progress")

type CriteriaLister interface {
	ListStale(ctx context.Context, limit int) ([]*search.Criteria, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, c *search.Criteria) (reconcile.Result, error)
}

// RunStats summarizes one scheduler tick.
type RunStats struct {
	StartTime time.Time
	Criteria  int
	Processed int64
	Updated   int64
	Errors    int32
}

type ReconcileScheduler struct {
	criteria   CriteriaLister
	reconciler Reconciler
	pool       *workpool.Pool
	interval   time.Duration
	perTick    int
	timeout    time.Duration
	running    atomic.Bool
}

func NewReconcileScheduler(criteria CriteriaLister, reconciler Reconciler, pool *workpool.Pool, interval time.Duration, perTick int) *ReconcileScheduler {
	if interval <= 0 {
		interval = config.DefaultReconcileInterval
	}
	if perTick <= 0 {
		perTick = config.DefaultCriteriaPerTick
	}
	return &ReconcileScheduler{
		criteria:   criteria,
		reconciler: reconciler,
		pool:       pool,
		interval:   interval,
		perTick:    perTick,
		timeout:    config.ReconcileTimeout,
	}
}

// Run blocks until ctx ends, reconciling once per interval.
func (s *ReconcileScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, ErrAlreadyRunning) {
				slog.Error("Scheduled reconciliation failed",
					slog.String("type", "recon"),
					slog.Any("error", err),
				)
			}
		}
	}
}

// RunOnce reconciles the stalest active criteria through the worker pool. A failing
// criteria does not stop the others; it is picked again on a later tick.
func (s *ReconcileScheduler) RunOnce(ctx context.Context) (RunStats, error) {
	if !s.running.CompareAndSwap(false, true) {
		return RunStats{}, ErrAlreadyRunning
	}
	defer s.running.Store(false)

	stats := RunStats{StartTime: time.Now()}

	stale, err := s.criteria.ListStale(ctx, s.perTick)
	if err != nil {
		return stats, fmt.Errorf("failed to list stale criteria: %w", err)
	}
	stats.Criteria = len(stale)
	if len(stale) == 0 {
		return stats, nil
	}

	var processed, updated atomic.Int64
	var failures atomic.Int32

	tasks := make([]workpool.Task, 0, len(stale))
	for _, c := range stale {
		tasks = append(tasks, func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			res, err := s.reconciler.Reconcile(ctx, c)
			processed.Add(int64(res.Processed))
			updated.Add(int64(res.Updated))
			if err != nil {
				failures.Add(1)
				return err
			}
			return nil
		})
	}

	runErr := s.pool.Run(ctx, tasks)
	stats.Processed = processed.Load()
	stats.Updated = updated.Load()
	stats.Errors = failures.Load()

	slog.Info("Reconciliation run finished",
		slog.String("type", "recon"),
		slog.Int("criteria", stats.Criteria),
		slog.Int64("processed", stats.Processed),
		slog.Int64("updated", stats.Updated),
		slog.Int("errors", int(stats.Errors)),
		slog.Duration("took", time.Since(stats.StartTime)),
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return stats, ctxErr
	}
	if runErr != nil && stats.Errors == int32(stats.Criteria) {
		return stats, fmt.Errorf("every criteria failed: %w", runErr)
	}
	return stats, nil
}
