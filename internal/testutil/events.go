package testutil

import (
	"sync"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// EventRecorder captures every event published on a bus.
type EventRecorder struct {
	mu     sync.Mutex
	events []domain.Event
}

// RecordEvents subscribes a new recorder to all events on bus.
func RecordEvents(bus ports.EventBus) *EventRecorder {
	r := &EventRecorder{}
	bus.SubscribeAll(func(e domain.Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
	})
	return r
}

// Events returns a copy of the recorded events in publish order.
func (r *EventRecorder) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of type t were recorded.
func (r *EventRecorder) Count(t domain.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.events {
		if e.Type() == t {
			n++
		}
	}
	return n
}

// PageChanges returns the recorded page changed events.
func (r *EventRecorder) PageChanges() []domain.PageChangedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.PageChangedEvent
	for _, e := range r.events {
		if pc, ok := e.(domain.PageChangedEvent); ok {
			out = append(out, pc)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
}
