// Package workpool runs independent tasks on a fixed number of workers fed through a
// bounded channel.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Task is one unit of work. Tasks must be safe to run concurrently with each other.
type Task func(ctx context.Context) error

// Pool caps how many tasks run at the same time. A Pool holds no goroutines between
// runs and can be shared by several callers; concurrent runs share the same slots.
// Tasks must not call Run on the pool they run on.
type Pool struct {
	workers int
	slots   *semaphore.Weighted
}

func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers, slots: semaphore.NewWeighted(int64(workers))}
}

func (p *Pool) Workers() int {
	return p.workers
}

// Run executes every task with at most Workers() in flight. A failing task does not stop
// the others; all task errors are joined. When ctx ends, tasks not yet started are
// skipped and ctx.Err() is part of the result.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	jobs := make(chan Task, p.workers)
	var (
		mu   sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	for w := 0; w < p.workers; w++ {
		g.Go(func() error {
			for task := range jobs {
				if p.slots.Acquire(ctx, 1) != nil {
					continue
				}
				err := runTask(ctx, task)
				p.slots.Release(1)
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
			return nil
		})
	}

feed:
	for _, task := range tasks {
		select {
		case jobs <- task:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func runTask(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return task(ctx)
}
