// Package memory provides repository implementations backed by Fyne preferences.
package memory

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// Preference keys.
const (
	keyAutoAdvance = "carousel.auto_advance"
	keyTransition  = "carousel.transition"
	keyIntervalMS  = "carousel.interval_ms"
)

// PreferencesRepository implements ports.PreferencesRepository using Fyne preferences.
// This provides a thin wrapper around Fyne's preferences system with proper error handling.
//
// Thread-safe: All operations protected by sync.RWMutex.
type PreferencesRepository struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewPreferencesRepository creates a new preferences' repository.
// The preferences parameter should be obtained from fyne.CurrentApp().Preferences().
func NewPreferencesRepository(prefs fyne.Preferences) *PreferencesRepository {
	return &PreferencesRepository{
		prefs: prefs,
	}
}

// SaveAutoAdvance persists whether timer-driven paging is enabled.
func (r *PreferencesRepository) SaveAutoAdvance(enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetBool(keyAutoAdvance, enabled)
	return nil
}

// LoadAutoAdvance retrieves the saved auto-advance flag.
func (r *PreferencesRepository) LoadAutoAdvance(fallback bool) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.prefs.BoolWithFallback(keyAutoAdvance, fallback), nil
}

// SaveTransition persists the selected transition effect.
func (r *PreferencesRepository) SaveTransition(effect domain.TransitionEffect) error {
	if _, err := domain.ParseTransitionEffect(string(effect)); err != nil {
		return domain.NewRepositoryError("save", "preferences", "unknown transition", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetString(keyTransition, string(effect))
	return nil
}

// LoadTransition retrieves the saved transition effect.
// An unknown stored value yields fallback.
func (r *PreferencesRepository) LoadTransition(fallback domain.TransitionEffect) (domain.TransitionEffect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.prefs.String(keyTransition)
	if stored == "" {
		return fallback, nil
	}

	effect, err := domain.ParseTransitionEffect(stored)
	if err != nil {
		return fallback, nil
	}
	return effect, nil
}

// SaveInterval persists the auto-advance period.
func (r *PreferencesRepository) SaveInterval(interval time.Duration) error {
	if interval <= 0 {
		return domain.NewRepositoryError("save", "preferences", "interval must be positive",
			domain.NewValidationError("Interval", interval, "must be positive"))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.SetInt(keyIntervalMS, int(interval/time.Millisecond))
	return nil
}

// LoadInterval retrieves the saved auto-advance period.
func (r *PreferencesRepository) LoadInterval(fallback time.Duration) (time.Duration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ms := r.prefs.IntWithFallback(keyIntervalMS, 0)
	if ms <= 0 {
		return fallback, nil
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// Clear removes all saved preferences.
func (r *PreferencesRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefs.RemoveValue(keyAutoAdvance)
	r.prefs.RemoveValue(keyTransition)
	r.prefs.RemoveValue(keyIntervalMS)

	return nil
}

// Verify interface implementation
var _ ports.PreferencesRepository = (*PreferencesRepository)(nil)
