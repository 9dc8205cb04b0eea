// Package scheduler provides implementations of the Scheduler interface.
// This package contains the wall-clock scheduler used by the UI hosts and a
// manual clock for deterministic tests.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// Dispatcher delivers a callback on the host's UI execution context.
// For Fyne this is fyne.Do; for Bubble Tea it forwards through Program.Send.
type Dispatcher func(fn func())

// Direct runs callbacks on the timer goroutine itself. Intended for tests and
// hosts that do their own synchronisation.
func Direct(fn func()) {
	fn()
}

// Realtime is a wall-clock Scheduler. Each scheduled callback owns one
// goroutine that exits when cancelled or when the scheduler is closed.
//
// Thread-safety: This implementation is thread-safe.
type Realtime struct {
	logger   *slog.Logger
	dispatch Dispatcher

	mu     sync.Mutex
	stops  map[uint64]chan struct{}
	nextID uint64
	closed bool

	wg sync.WaitGroup
}

// NewRealtime creates a wall-clock scheduler delivering callbacks via dispatch.
// A nil dispatch means Direct.
func NewRealtime(logger *slog.Logger, dispatch Dispatcher) *Realtime {
	if dispatch == nil {
		dispatch = Direct
	}
	return &Realtime{
		logger:   logger,
		dispatch: dispatch,
		stops:    make(map[uint64]chan struct{}),
	}
}

// Every invokes fn every d until cancelled.
func (r *Realtime) Every(d time.Duration, fn func()) ports.Cancel {
	id, stop, ok := r.register()
	if !ok {
		return func() {}
	}

	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(d)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Prefer stop when both are ready.
				select {
				case <-stop:
					return
				default:
				}
				r.dispatch(fn)
			}
		}
	}()

	return r.canceller(id)
}

// After invokes fn once after d unless cancelled first.
func (r *Realtime) After(d time.Duration, fn func()) ports.Cancel {
	id, stop, ok := r.register()
	if !ok {
		return func() {}
	}

	go func() {
		defer r.wg.Done()
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-stop:
			return
		case <-timer.C:
			r.release(id)
			r.dispatch(fn)
		}
	}()

	return r.canceller(id)
}

// Pending returns the number of live scheduled callbacks.
func (r *Realtime) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stops)
}

// Close cancels every scheduled callback and waits for their goroutines to exit.
// Callbacks already handed to the dispatcher may still run.
//
// Returns domain.ErrSchedulerClosed if already closed.
func (r *Realtime) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return domain.ErrSchedulerClosed
	}
	r.closed = true
	for id, stop := range r.stops {
		close(stop)
		delete(r.stops, id)
	}
	r.mu.Unlock()

	r.wg.Wait()

	if r.logger != nil {
		r.logger.Debug("scheduler closed")
	}
	return nil
}

// register allocates a stop channel for a new callback goroutine.
func (r *Realtime) register() (uint64, chan struct{}, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		if r.logger != nil {
			r.logger.Warn("schedule on closed scheduler ignored")
		}
		return 0, nil, false
	}

	r.nextID++
	stop := make(chan struct{})
	r.stops[r.nextID] = stop
	r.wg.Add(1)
	return r.nextID, stop, true
}

// canceller returns an idempotent Cancel for id.
func (r *Realtime) canceller(id uint64) ports.Cancel {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if stop, ok := r.stops[id]; ok {
			close(stop)
			delete(r.stops, id)
		}
	}
}

// release forgets a one-shot callback that fired.
func (r *Realtime) release(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.stops, id)
}

// Verify that Realtime implements the Scheduler interface
var _ ports.Scheduler = (*Realtime)(nil)
