// Package service provides business logic for the GoCarousel application.
package service

import (
	"log/slog"
	"time"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// PreferenceService manages the user-adjustable carousel settings.
// Layout values (height, padding, radius) always come from configuration; only
// auto-advance, transition and interval are remembered between runs.
//
// Thread-safety: the service holds no state of its own. The repository must be thread-safe.
type PreferenceService struct {
	// Dependencies (injected)
	logger     *slog.Logger
	repository ports.PreferencesRepository
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(logger *slog.Logger, repository ports.PreferencesRepository) *PreferenceService {
	logger.Debug("preference service initialized")

	return &PreferenceService{
		logger:     logger,
		repository: repository,
	}
}

// Apply overlays the saved settings on cfg. Settings that fail to load keep cfg's value.
func (s *PreferenceService) Apply(cfg domain.CarouselConfig) domain.CarouselConfig {
	if v, err := s.repository.LoadAutoAdvance(cfg.AutoAdvance); err == nil {
		cfg.AutoAdvance = v
	} else {
		s.logger.Warn("failed to load auto-advance preference", slog.Any("error", err))
	}

	if v, err := s.repository.LoadTransition(cfg.Transition); err == nil {
		cfg.Transition = v
	} else {
		s.logger.Warn("failed to load transition preference", slog.Any("error", err))
	}

	if v, err := s.repository.LoadInterval(cfg.Interval); err == nil {
		cfg.Interval = v
	} else {
		s.logger.Warn("failed to load interval preference", slog.Any("error", err))
	}

	return cfg
}

// SetAutoAdvance saves the auto-advance preference.
func (s *PreferenceService) SetAutoAdvance(enabled bool) error {
	return s.repository.SaveAutoAdvance(enabled)
}

// SetTransition saves the transition preference.
// Returns domain.ErrInvalidTransition (wrapped) for an unknown effect.
func (s *PreferenceService) SetTransition(effect domain.TransitionEffect) error {
	if _, err := domain.ParseTransitionEffect(string(effect)); err != nil {
		return err
	}
	return s.repository.SaveTransition(effect)
}

// SetInterval saves the auto-advance period.
func (s *PreferenceService) SetInterval(interval time.Duration) error {
	if interval <= 0 {
		return domain.NewValidationError("Interval", interval, "must be positive")
	}
	return s.repository.SaveInterval(interval)
}

// ResetToDefaults forgets every saved preference.
func (s *PreferenceService) ResetToDefaults() error {
	if err := s.repository.Clear(); err != nil {
		return err
	}

	s.logger.Info("preferences reset")
	return nil
}
