package carousel

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// TimerManager owns the recurring auto-advance timer.
// At most one timer is live at any time.
//
// Thread-safety: All operations are thread-safe via sync.Mutex. Ticks from a
// timer that has since been stopped are dropped.
type TimerManager struct {
	logger    *slog.Logger
	scheduler ports.Scheduler
	interval  time.Duration
	enabled   bool
	onTick    func()

	mu         sync.Mutex
	cancel     ports.Cancel
	generation uint64
}

// NewTimerManager creates a timer manager. onTick runs on every tick of the live timer.
func NewTimerManager(
	logger *slog.Logger,
	scheduler ports.Scheduler,
	interval time.Duration,
	enabled bool,
	onTick func(),
) *TimerManager {
	return &TimerManager{
		logger:    logger,
		scheduler: scheduler,
		interval:  interval,
		enabled:   enabled,
		onTick:    onTick,
	}
}

// Start creates the recurring timer.
// It is a no-op when a timer is already live or auto-advance is disabled.
// Returns true if a new timer was created.
func (tm *TimerManager) Start() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.cancel != nil || !tm.enabled {
		return false
	}

	tm.generation++
	gen := tm.generation
	tm.cancel = tm.scheduler.Every(tm.interval, func() {
		if !tm.current(gen) {
			return
		}
		tm.onTick()
	})

	tm.logger.Debug("auto-advance timer started", slog.Duration("interval", tm.interval))
	return true
}

// Stop cancels and releases the live timer.
// It is a no-op when no timer exists. Returns true if a timer was cancelled.
func (tm *TimerManager) Stop() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.cancel == nil {
		return false
	}

	tm.cancel()
	tm.cancel = nil
	tm.generation++

	tm.logger.Debug("auto-advance timer stopped")
	return true
}

// Running returns true while a timer is live.
func (tm *TimerManager) Running() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return tm.cancel != nil
}

// Enabled reports whether auto-advance is configured.
func (tm *TimerManager) Enabled() bool {
	return tm.enabled
}

// current reports whether gen identifies the live timer.
func (tm *TimerManager) current(gen uint64) bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return tm.cancel != nil && tm.generation == gen
}
