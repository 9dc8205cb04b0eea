// Package ports define repository interfaces for data persistence abstraction.
// These interfaces enable the repository pattern and allow swapping persistence mechanisms.
package ports

import (
	"time"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
)

// PreferencesRepository handles the persistence of user carousel preferences.
// Only user-adjustable settings are stored; layout values come from configuration.
//
// Thread-safety: Implementations must be thread-safe.
type PreferencesRepository interface {
	// SaveAutoAdvance persists whether timer-driven paging is enabled.
	SaveAutoAdvance(enabled bool) error

	// LoadAutoAdvance retrieves the saved auto-advance flag.
	// fallback is returned when nothing was saved.
	LoadAutoAdvance(fallback bool) (bool, error)

	// SaveTransition persists the selected transition effect.
	SaveTransition(effect domain.TransitionEffect) error

	// LoadTransition retrieves the saved transition effect.
	// fallback is returned when nothing was saved or the stored value is unknown.
	LoadTransition(fallback domain.TransitionEffect) (domain.TransitionEffect, error)

	// SaveInterval persists the auto-advance period.
	SaveInterval(interval time.Duration) error

	// LoadInterval retrieves the saved auto-advance period.
	// fallback is returned when nothing valid was saved.
	LoadInterval(fallback time.Duration) (time.Duration, error)

	// Clear removes all saved preferences.
	Clear() error
}
