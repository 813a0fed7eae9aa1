package workpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RespectsWorkerLimit(t *testing.T) {
	pool := New(5)

	var inFlight, peak, done int32
	tasks := make([]Task, 40)
	for i := range tasks {
		tasks[i] = func(ctx context.Context) error {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			atomic.AddInt32(&done, 1)
			return nil
		}
	}

	require.NoError(t, pool.Run(context.Background(), tasks))
	assert.Equal(t, int32(40), atomic.LoadInt32(&done))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(5))
}

func TestPool_JoinsErrorsAndKeepsGoing(t *testing.T) {
	pool := New(2)
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	var ran int32
	tasks := []Task{
		func(context.Context) error { atomic.AddInt32(&ran, 1); return errA },
		func(context.Context) error { atomic.AddInt32(&ran, 1); return nil },
		func(context.Context) error { atomic.AddInt32(&ran, 1); return errB },
		func(context.Context) error { atomic.AddInt32(&ran, 1); panic("boom") },
	}

	err := pool.Run(context.Background(), tasks)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "task panicked")
	assert.Equal(t, int32(4), atomic.LoadInt32(&ran))
}

func TestPool_CancelledContext(t *testing.T) {
	pool := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Run(ctx, []Task{func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_Empty(t *testing.T) {
	assert.NoError(t, New(0).Run(context.Background(), nil))
	assert.Equal(t, 1, New(0).Workers())
}

func TestPool_ConcurrentRunsShareSlots(t *testing.T) {
	pool := New(3)

	var inFlight, peak int32
	task := func(context.Context) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	}
	batch := func() []Task {
		tasks := make([]Task, 15)
		for i := range tasks {
			tasks[i] = task
		}
		return tasks
	}

	errs := make(chan error, 2)
	for range 2 {
		go func() { errs <- pool.Run(context.Background(), batch()) }()
	}
	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}
