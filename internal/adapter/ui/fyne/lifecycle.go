package fyne

import (
	"log/slog"
	"sync"

	fyneapp "fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
)

// LifecycleTarget receives application lifecycle transitions.
type LifecycleTarget interface {
	SetLifecycle(phase domain.LifecyclePhase)
}

// LifecycleBinder maps Fyne application lifecycle hooks to carousel phases
// and forwards them to every registered target. Fyne keeps one callback per
// hook, so all carousels of an application share one binder.
//
// Thread-safety: All operations are thread-safe via sync.Mutex.
type LifecycleBinder struct {
	logger *slog.Logger

	mu      sync.Mutex
	phase   domain.LifecyclePhase
	targets map[uint64]LifecycleTarget
	nextID  uint64
}

// BindLifecycle installs the binder on lc:
// entered foreground is active, exited foreground is inactive and stopped is background.
func BindLifecycle(logger *slog.Logger, lc fyneapp.Lifecycle) *LifecycleBinder {
	b := &LifecycleBinder{
		logger:  logger,
		phase:   domain.PhaseActive,
		targets: make(map[uint64]LifecycleTarget),
	}

	lc.SetOnEnteredForeground(func() { b.Set(domain.PhaseActive) })
	lc.SetOnExitedForeground(func() { b.Set(domain.PhaseInactive) })
	lc.SetOnStopped(func() { b.Set(domain.PhaseBackground) })

	return b
}

// Add registers target and brings it to the current phase.
// The returned function unregisters it.
func (b *LifecycleBinder) Add(target LifecycleTarget) (remove func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.targets[id] = target
	phase := b.phase
	b.mu.Unlock()

	if phase != domain.PhaseActive {
		target.SetLifecycle(phase)
	}

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.targets, id)
	}
}

// Set moves every target to phase.
func (b *LifecycleBinder) Set(phase domain.LifecyclePhase) {
	b.mu.Lock()
	if b.phase == phase {
		b.mu.Unlock()
		return
	}
	b.phase = phase
	targets := make([]LifecycleTarget, 0, len(b.targets))
	for _, t := range b.targets {
		targets = append(targets, t)
	}
	b.mu.Unlock()

	b.logger.Debug("lifecycle phase changed", slog.String("phase", phase.String()), slog.Int("targets", len(targets)))

	for _, t := range targets {
		t.SetLifecycle(phase)
	}
}

// Phase returns the last phase reported by the application.
func (b *LifecycleBinder) Phase() domain.LifecyclePhase {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.phase
}
