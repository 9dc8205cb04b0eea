package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/logger"
)

var errStorage = errors.New("storage unavailable")

// Mock preferences repository for testing
type mockPreferencesRepository struct {
	mu          sync.RWMutex
	autoAdvance *bool
	transition  domain.TransitionEffect
	interval    time.Duration
	failLoads   bool
}

func (m *mockPreferencesRepository) SaveAutoAdvance(enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoAdvance = &enabled
	return nil
}

func (m *mockPreferencesRepository) LoadAutoAdvance(fallback bool) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failLoads {
		return false, errStorage
	}
	if m.autoAdvance == nil {
		return fallback, nil
	}
	return *m.autoAdvance, nil
}

func (m *mockPreferencesRepository) SaveTransition(effect domain.TransitionEffect) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transition = effect
	return nil
}

func (m *mockPreferencesRepository) LoadTransition(fallback domain.TransitionEffect) (domain.TransitionEffect, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failLoads {
		return "", errStorage
	}
	if m.transition == "" {
		return fallback, nil
	}
	return m.transition, nil
}

func (m *mockPreferencesRepository) SaveInterval(interval time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = interval
	return nil
}

func (m *mockPreferencesRepository) LoadInterval(fallback time.Duration) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failLoads {
		return 0, errStorage
	}
	if m.interval <= 0 {
		return fallback, nil
	}
	return m.interval, nil
}

func (m *mockPreferencesRepository) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoAdvance = nil
	m.transition = ""
	m.interval = 0
	return nil
}

func newTestService() (*PreferenceService, *mockPreferencesRepository) {
	repo := &mockPreferencesRepository{}
	return NewPreferenceService(logger.NewTestLogger(), repo), repo
}

func TestPreferenceService_ApplyWithoutSavedValues(t *testing.T) {
	s, _ := newTestService()

	cfg := domain.DefaultCarouselConfig()
	assert.Equal(t, cfg, s.Apply(cfg))
}

func TestPreferenceService_ApplySavedValues(t *testing.T) {
	s, _ := newTestService()

	require.NoError(t, s.SetAutoAdvance(false))
	require.NoError(t, s.SetTransition(domain.TransitionScale))
	require.NoError(t, s.SetInterval(10*time.Second))

	cfg := s.Apply(domain.DefaultCarouselConfig())
	assert.False(t, cfg.AutoAdvance)
	assert.Equal(t, domain.TransitionScale, cfg.Transition)
	assert.Equal(t, 10*time.Second, cfg.Interval)

	// Layout values are not preferences
	assert.Equal(t, domain.DefaultPageHeight, cfg.PageHeight)
}

func TestPreferenceService_ApplyKeepsConfigOnLoadFailure(t *testing.T) {
	s, repo := newTestService()
	repo.failLoads = true

	cfg := domain.DefaultCarouselConfig()
	cfg.Transition = domain.TransitionOpacity

	assert.Equal(t, cfg, s.Apply(cfg))
}

func TestPreferenceService_SetTransitionRejectsUnknown(t *testing.T) {
	s, repo := newTestService()

	err := s.SetTransition("spin")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, repo.transition)
}

func TestPreferenceService_SetIntervalValidation(t *testing.T) {
	s, repo := newTestService()

	for _, interval := range []time.Duration{0, -time.Second} {
		err := s.SetInterval(interval)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Interval", validationErr.Field)
	}
	assert.Zero(t, repo.interval)
}

func TestPreferenceService_ResetToDefaults(t *testing.T) {
	s, _ := newTestService()

	require.NoError(t, s.SetTransition(domain.TransitionRotation3D))
	require.NoError(t, s.SetAutoAdvance(false))
	require.NoError(t, s.ResetToDefaults())

	cfg := domain.DefaultCarouselConfig()
	assert.Equal(t, cfg, s.Apply(cfg))
}
