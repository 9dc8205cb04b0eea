// Package domain contains core carousel models and logic with no external dependencies.
// This package defines the configuration, state and lifecycle vocabulary of the carousel.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Default carousel configuration values.
const (
	DefaultInterval          = 3 * time.Second
	DefaultPageHeight        = float32(150)
	DefaultHorizontalPadding = float32(30)
	DefaultCornerRadius      = float32(10)

	// DefaultCorrectionDelay is how long the carousel waits after landing on a
	// duplicated boundary page before silently jumping to the real page.
	// It must outlast the host's page settle animation.
	DefaultCorrectionDelay = 300 * time.Millisecond
)

// TransitionEffect selects the visual transform applied to a page while it is
// offset from its settled position.
type TransitionEffect string

// Available transition effects.
const (
	TransitionNone       TransitionEffect = "none"
	TransitionRotation3D TransitionEffect = "rotation3d"
	TransitionOpacity    TransitionEffect = "opacity"
	TransitionScale      TransitionEffect = "scale"
)

// TransitionEffects returns all transition effects in display order.
func TransitionEffects() []TransitionEffect {
	return []TransitionEffect{TransitionNone, TransitionRotation3D, TransitionOpacity, TransitionScale}
}

// ParseTransitionEffect converts a user supplied name to a TransitionEffect.
// Matching is case-insensitive; "rotation" is accepted as an alias of rotation3d.
func ParseTransitionEffect(name string) (TransitionEffect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return TransitionNone, nil
	case "rotation3d", "rotation":
		return TransitionRotation3D, nil
	case "opacity":
		return TransitionOpacity, nil
	case "scale":
		return TransitionScale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransition, name)
}

// String implements fmt.Stringer.
func (t TransitionEffect) String() string {
	return string(t)
}

// LifecyclePhase mirrors the host application's visibility state.
type LifecyclePhase int

// Lifecycle phases.
const (
	PhaseActive LifecyclePhase = iota
	PhaseInactive
	PhaseBackground
)

// String returns a human-readable representation of the phase.
func (p LifecyclePhase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseInactive:
		return "inactive"
	case PhaseBackground:
		return "background"
	default:
		return "unknown"
	}
}

// CarouselConfig holds the per-instance carousel configuration.
// A controller copies it at construction; later changes have no effect.
type CarouselConfig struct {
	// AutoAdvance enables timer-driven paging
	AutoAdvance bool

	// Interval is the auto-advance period
	Interval time.Duration

	// PageHeight is the rendered height of the carousel
	PageHeight float32

	// HorizontalPadding is the gutter between pages
	HorizontalPadding float32

	// CornerRadius rounds the content corners
	CornerRadius float32

	// Transition is the visual effect driven by the page offset
	Transition TransitionEffect

	// CorrectionDelay is the wait before the silent boundary jump
	CorrectionDelay time.Duration
}

// DefaultCarouselConfig returns the default carousel configuration.
func DefaultCarouselConfig() CarouselConfig {
	return CarouselConfig{
		AutoAdvance:       true,
		Interval:          DefaultInterval,
		PageHeight:        DefaultPageHeight,
		HorizontalPadding: DefaultHorizontalPadding,
		CornerRadius:      DefaultCornerRadius,
		Transition:        TransitionScale,
		CorrectionDelay:   DefaultCorrectionDelay,
	}
}

// Validate reports the first invalid field, if any.
func (c CarouselConfig) Validate() error {
	if c.AutoAdvance && c.Interval <= 0 {
		return NewValidationError("Interval", c.Interval, "must be positive when auto-advance is enabled")
	}
	if c.CorrectionDelay < 0 {
		return NewValidationError("CorrectionDelay", c.CorrectionDelay, "must not be negative")
	}
	if c.PageHeight < 0 {
		return NewValidationError("PageHeight", c.PageHeight, "must not be negative")
	}
	if c.HorizontalPadding < 0 {
		return NewValidationError("HorizontalPadding", c.HorizontalPadding, "must not be negative")
	}
	if c.CornerRadius < 0 {
		return NewValidationError("CornerRadius", c.CornerRadius, "must not be negative")
	}
	if _, err := ParseTransitionEffect(string(c.Transition)); err != nil {
		return NewValidationError("Transition", c.Transition, err.Error())
	}
	return nil
}

// ChangeCause records why the current index changed.
type ChangeCause string

// Index change causes.
const (
	CauseTick       ChangeCause = "tick"
	CauseSelect     ChangeCause = "select"
	CauseCorrection ChangeCause = "correction"
	CauseOverflow   ChangeCause = "overflow"
)

// CarouselState is a snapshot of the controller state.
type CarouselState struct {
	// Index is the current position in the augmented sequence
	Index int

	// RealIndex is the position in the caller's items (-1 when there are none)
	RealIndex int

	// Length is the augmented sequence length
	Length int

	// LoopEligible is true when boundary duplication was applied
	LoopEligible bool

	// TimerRunning is true while an auto-advance timer is live
	TimerRunning bool

	// Settled is false while a page is mid-transition
	Settled bool

	// Phase is the last reported host lifecycle phase
	Phase LifecyclePhase

	// PendingCorrection is the target of a scheduled silent jump (-1 if none)
	PendingCorrection int

	// Closed is true after teardown
	Closed bool
}

// CarouselItem is a displayable item produced by an item source.
type CarouselItem struct {
	// ID identifies the item within its source (a file path for audio sources)
	ID string

	// Title is the primary caption
	Title string

	// Subtitle is a secondary caption (artist, album, ...)
	Subtitle string

	// Artwork is an encoded image (JPEG, PNG), may be nil
	Artwork []byte

	// ArtworkMIME is the MIME type of Artwork
	ArtworkMIME string
}
