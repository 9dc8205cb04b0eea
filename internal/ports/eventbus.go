// Package ports define the EventBus interface for event-driven communication.
// The event bus lets hosts observe the carousel without callbacks on the core.
package ports

import (
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
// Hosts and tests use it to observe page, timer and lifecycle changes.
//
// The event bus decouples event producers (controllers) from event consumers (UI, logging, etc.).
// Multiple subscribers can listen to the same event, and subscribers don't know about publishers.
//
// Thread-safety: Implementations must be thread-safe as events may be published and
// subscribed from multiple goroutines simultaneously.
//
// Example usage:
//
//	// In the controller: Publish an event
//	bus.Publish(domain.NewPageChangedEvent(prev, idx, real, true, domain.CauseTick))
//
//	// In a host widget: Subscribe to events
//	subID := bus.Subscribe(domain.EventPageChanged, func(event domain.Event) {
//	    e := event.(domain.PageChangedEvent)
//	    view.ShowPage(e.Index, e.Animated)
//	})
//
//	// Later: Unsubscribe
//	bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to the subscribers of its type and to wildcard
	// subscribers, in subscription order, before returning. Controllers publish
	// from the host's UI context, so handlers run there too and may call back
	// into the controller.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// The handler will be called whenever an event of this type is published.
	//
	// The same handler can be registered multiple times, resulting in multiple calls.
	// Each subscription gets a unique SubscriptionID.
	//
	// eventType: The type of events to listen for (e.g., domain.EventPageChanged)
	// handler: The function to call when an event is published
	//
	// Returns a SubscriptionID that can be used to unsubscribe later.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered event handler.
	// After unsubscribing, the handler will no longer receive events.
	//
	// If the subscription ID is invalid or already unsubscribed, this is a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives all events regardless of type.
	// This is useful for logging, debugging, or analytics.
	//
	// Returns a SubscriptionID that can be used to unsubscribe later.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers returns true if there are any active subscriptions for the given event type.
	// This can be used to avoid expensive event construction if no one is listening.
	HasSubscribers(eventType domain.EventType) bool

	// Close drops every subscription. Publishing afterwards is a no-op.
	// Returns domain.ErrBusClosed when called twice.
	Close() error
}

// EventFilter is a function that determines if an event should be delivered to a subscriber.
// It returns true if the event should be delivered, false otherwise.
type EventFilter func(event domain.Event) bool

// FilteringEventBus extends EventBus with filtered subscriptions.
// This is optional and not all implementations need to support it.
type FilteringEventBus interface {
	EventBus

	// SubscribeFiltered registers a handler with a filter function.
	// The handler will only be called for events that pass the filter.
	//
	// Example: Only handle silent corrections
	//	bus.SubscribeFiltered(domain.EventPageChanged, func(e domain.Event) bool {
	//	    return e.(domain.PageChangedEvent).Cause == domain.CauseCorrection
	//	}, handleCorrection)
	SubscribeFiltered(eventType domain.EventType, filter EventFilter, handler domain.EventHandler) domain.SubscriptionID
}
