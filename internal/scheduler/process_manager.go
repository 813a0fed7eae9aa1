package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// ProcessManager owns the long running goroutines of the serve command.
type ProcessManager struct {
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.RWMutex
	processes map[string]*processInfo
}

type processInfo struct {
	name        string
	description string
	startedAt   time.Time
	cancel      context.CancelFunc
}

// ProcessStatus describes one running process.
type ProcessStatus struct {
	Name        string
	Description string
	StartedAt   time.Time
}

func NewProcessManager(parent context.Context) *ProcessManager {
	ctx, cancel := context.WithCancel(parent)
	return &ProcessManager{
		ctx:       ctx,
		cancel:    cancel,
		processes: make(map[string]*processInfo),
	}
}

// Start runs fn in its own goroutine. A process registered under the same name is
// stopped first. Panics are logged and end only that process.
func (pm *ProcessManager) Start(name, description string, fn func(ctx context.Context)) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if _, exists := pm.processes[name]; exists {
		slog.Warn("Process already running, replacing it",
			slog.String("type", "sys"),
			slog.String("process", name),
		)
		pm.stopLocked(name)
	}

	ctx, cancel := context.WithCancel(pm.ctx)
	info := &processInfo{name: name, description: description, startedAt: time.Now(), cancel: cancel}
	pm.processes[name] = info

	pm.wg.Add(1)
	go func() {
		defer pm.wg.Done()
		defer pm.forget(info)
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Background process panic",
					slog.String("type", "error"),
					slog.String("process", name),
					slog.Any("error", fmt.Errorf("panic: %v", r)),
				)
			}
		}()

		slog.Info("Starting background process",
			slog.String("type", "sys"),
			slog.String("process", name),
			slog.String("description", description),
		)
		fn(ctx)
		slog.Info("Background process ended",
			slog.String("type", "sys"),
			slog.String("process", name),
		)
	}()
}

func (pm *ProcessManager) Stop(name string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.stopLocked(name)
}

func (pm *ProcessManager) stopLocked(name string) {
	if p, ok := pm.processes[name]; ok {
		p.cancel()
		delete(pm.processes, name)
	}
}

// forget drops the entry once its goroutine returns, unless it was replaced meanwhile.
func (pm *ProcessManager) forget(info *processInfo) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if current, ok := pm.processes[info.name]; ok && current == info {
		info.cancel()
		delete(pm.processes, info.name)
	}
}

// Shutdown cancels every process and waits up to timeout for them to return.
func (pm *ProcessManager) Shutdown(timeout time.Duration) error {
	slog.Info("Shutting down background processes",
		slog.String("type", "sys"),
		slog.Int("process_count", pm.Count()),
	)
	pm.cancel()

	done := make(chan struct{})
	go func() {
		pm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("background processes still running after %s: %w", timeout, context.DeadlineExceeded)
	}
}

func (pm *ProcessManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.processes)
}

// List returns the running processes ordered by name.
func (pm *ProcessManager) List() []ProcessStatus {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	out := make([]ProcessStatus, 0, len(pm.processes))
	for _, p := range pm.processes {
		out = append(out, ProcessStatus{Name: p.name, Description: p.description, StartedAt: p.startedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
