package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeprice/engine/internal/domain/reconcile"
	"github.com/pokeprice/engine/internal/domain/search"
	"github.com/pokeprice/engine/internal/workpool"
)

type staticLister struct {
	criteria []*search.Criteria
	err      error
	limit    int
}

func (l *staticLister) ListStale(_ context.Context, limit int) ([]*search.Criteria, error) {
	l.limit = limit
	return l.criteria, l.err
}

type funcReconciler func(ctx context.Context, c *search.Criteria) (reconcile.Result, error)

func (f funcReconciler) Reconcile(ctx context.Context, c *search.Criteria) (reconcile.Result, error) {
	return f(ctx, c)
}

func stale(ids ...string) []*search.Criteria {
	out := make([]*search.Criteria, 0, len(ids))
	for _, id := range ids {
		out = append(out, &search.Criteria{ID: id, CardID: "card-" + id, Active: true})
	}
	return out
}

func TestRunOnce_ReconcilesEveryCriteria(t *testing.T) {
	lister := &staticLister{criteria: stale("a", "b", "c")}
	var mu sync.Mutex
	seen := map[string]bool{}
	rec := funcReconciler(func(_ context.Context, c *search.Criteria) (reconcile.Result, error) {
		mu.Lock()
		seen[c.ID] = true
		mu.Unlock()
		return reconcile.Result{Processed: 10, Updated: 2}, nil
	})

	s := NewReconcileScheduler(lister, rec, workpool.New(2), time.Minute, 25)
	stats, err := s.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25, lister.limit)
	assert.Equal(t, 3, stats.Criteria)
	assert.Equal(t, int64(30), stats.Processed)
	assert.Equal(t, int64(6), stats.Updated)
	assert.Zero(t, stats.Errors)
	assert.Len(t, seen, 3)
}

func TestRunOnce_PartialFailureIsNotAnError(t *testing.T) {
	lister := &staticLister{criteria: stale("a", "b")}
	rec := funcReconciler(func(_ context.Context, c *search.Criteria) (reconcile.Result, error) {
		if c.ID == "a" {
			return reconcile.Result{Processed: 1}, errors.New("db gone")
		}
		return reconcile.Result{Processed: 4, Updated: 1}, nil
	})

	s := NewReconcileScheduler(lister, rec, workpool.New(5), time.Minute, 0)
	stats, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), stats.Errors)
	assert.Equal(t, int64(5), stats.Processed)
}

func TestRunOnce_AllFailed(t *testing.T) {
	lister := &staticLister{criteria: stale("a")}
	rec := funcReconciler(func(context.Context, *search.Criteria) (reconcile.Result, error) {
		return reconcile.Result{}, errors.New("db gone")
	})

	s := NewReconcileScheduler(lister, rec, workpool.New(5), time.Minute, 0)
	_, err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db gone")
}

func TestRunOnce_ListError(t *testing.T) {
	s := NewReconcileScheduler(&staticLister{err: errors.New("timeout")}, nil, workpool.New(1), 0, 0)
	_, err := s.RunOnce(context.Background())
	require.Error(t, err)
}

func TestRunOnce_NoOverlap(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	rec := funcReconciler(func(context.Context, *search.Criteria) (reconcile.Result, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return reconcile.Result{}, nil
	})
	s := NewReconcileScheduler(&staticLister{criteria: stale("a")}, rec, workpool.New(1), time.Minute, 0)

	done := make(chan error)
	go func() {
		_, err := s.RunOnce(context.Background())
		done <- err
	}()
	<-started

	_, err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProcessManager(t *testing.T) {
	pm := NewProcessManager(context.Background())

	stopped := make(chan struct{})
	pm.Start("reconcile", "reconciles stale criteria", func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})
	pm.Start("panicky", "panics straight away", func(context.Context) {
		panic("boom")
	})

	require.Eventually(t, func() bool { return pm.Count() == 1 }, time.Second, 5*time.Millisecond)
	list := pm.List()
	require.Len(t, list, 1)
	assert.Equal(t, "reconcile", list[0].Name)

	require.NoError(t, pm.Shutdown(time.Second))
	<-stopped
	assert.Zero(t, pm.Count())
}

func TestProcessManager_ShutdownTimeout(t *testing.T) {
	pm := NewProcessManager(context.Background())
	block := make(chan struct{})
	defer close(block)
	pm.Start("stuck", "ignores cancellation", func(context.Context) { <-block })

	err := pm.Shutdown(10 * time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
