// Package domain defines events for the event-driven architecture.
// Events let hosts observe the carousel without registering callbacks on it.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Paging events
	EventPageChanged         EventType = "page.changed"
	EventCorrectionScheduled EventType = "page.correction_scheduled"
	EventCorrectionApplied   EventType = "page.correction_applied"
	EventCorrectionCancelled EventType = "page.correction_cancelled"

	// Timer events
	EventTimerStarted EventType = "timer.started"
	EventTimerStopped EventType = "timer.stopped"

	// Lifecycle events
	EventLifecycleChanged EventType = "lifecycle.changed"
	EventCarouselClosed   EventType = "carousel.closed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// PageChangedEvent is published whenever the current index changes.
type PageChangedEvent struct {
	baseEvent
	Previous  int
	Index     int
	RealIndex int // Index into the caller's items, -1 when empty
	Animated  bool
	Cause     ChangeCause
}

// Type returns the event type.
func (e PageChangedEvent) Type() EventType {
	return EventPageChanged
}

// NewPageChangedEvent creates a new PageChangedEvent.
func NewPageChangedEvent(previous, index, realIndex int, animated bool, cause ChangeCause) PageChangedEvent {
	return PageChangedEvent{
		baseEvent: newBaseEvent(),
		Previous:  previous,
		Index:     index,
		RealIndex: realIndex,
		Animated:  animated,
		Cause:     cause,
	}
}

// CorrectionScheduledEvent is published when the carousel lands on a duplicated
// boundary page and schedules the silent jump.
type CorrectionScheduledEvent struct {
	baseEvent
	From  int
	To    int
	Delay time.Duration
}

// Type returns the event type.
func (e CorrectionScheduledEvent) Type() EventType {
	return EventCorrectionScheduled
}

// NewCorrectionScheduledEvent creates a new CorrectionScheduledEvent.
func NewCorrectionScheduledEvent(from, to int, delay time.Duration) CorrectionScheduledEvent {
	return CorrectionScheduledEvent{
		baseEvent: newBaseEvent(),
		From:      from,
		To:        to,
		Delay:     delay,
	}
}

// CorrectionAppliedEvent is published after the silent jump happened.
type CorrectionAppliedEvent struct {
	baseEvent
	From int
	To   int
}

// Type returns the event type.
func (e CorrectionAppliedEvent) Type() EventType {
	return EventCorrectionApplied
}

// NewCorrectionAppliedEvent creates a new CorrectionAppliedEvent.
func NewCorrectionAppliedEvent(from, to int) CorrectionAppliedEvent {
	return CorrectionAppliedEvent{
		baseEvent: newBaseEvent(),
		From:      from,
		To:        to,
	}
}

// CorrectionCancelledEvent is published when a pending jump is superseded or torn down.
type CorrectionCancelledEvent struct {
	baseEvent
	From int
	To   int
}

// Type returns the event type.
func (e CorrectionCancelledEvent) Type() EventType {
	return EventCorrectionCancelled
}

// NewCorrectionCancelledEvent creates a new CorrectionCancelledEvent.
func NewCorrectionCancelledEvent(from, to int) CorrectionCancelledEvent {
	return CorrectionCancelledEvent{
		baseEvent: newBaseEvent(),
		From:      from,
		To:        to,
	}
}

// TimerStartedEvent is published when the auto-advance timer is created.
type TimerStartedEvent struct {
	baseEvent
	Interval time.Duration
}

// Type returns the event type.
func (e TimerStartedEvent) Type() EventType {
	return EventTimerStarted
}

// NewTimerStartedEvent creates a new TimerStartedEvent.
func NewTimerStartedEvent(interval time.Duration) TimerStartedEvent {
	return TimerStartedEvent{
		baseEvent: newBaseEvent(),
		Interval:  interval,
	}
}

// TimerStoppedEvent is published when the auto-advance timer is cancelled.
type TimerStoppedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e TimerStoppedEvent) Type() EventType {
	return EventTimerStopped
}

// NewTimerStoppedEvent creates a new TimerStoppedEvent.
func NewTimerStoppedEvent() TimerStoppedEvent {
	return TimerStoppedEvent{baseEvent: newBaseEvent()}
}

// LifecycleChangedEvent is published when the host reports a new lifecycle phase.
type LifecycleChangedEvent struct {
	baseEvent
	Phase LifecyclePhase
}

// Type returns the event type.
func (e LifecycleChangedEvent) Type() EventType {
	return EventLifecycleChanged
}

// NewLifecycleChangedEvent creates a new LifecycleChangedEvent.
func NewLifecycleChangedEvent(phase LifecyclePhase) LifecycleChangedEvent {
	return LifecycleChangedEvent{
		baseEvent: newBaseEvent(),
		Phase:     phase,
	}
}

// CarouselClosedEvent is published once when a controller is torn down.
type CarouselClosedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e CarouselClosedEvent) Type() EventType {
	return EventCarouselClosed
}

// NewCarouselClosedEvent creates a new CarouselClosedEvent.
func NewCarouselClosedEvent() CarouselClosedEvent {
	return CarouselClosedEvent{baseEvent: newBaseEvent()}
}
