// Package eventbus provides implementations of the EventBus interface.
// This package contains the synchronous event bus the carousel publishes on.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"slices"
	"sync"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// SyncEventBus is a synchronous implementation of the EventBus interface.
//
// Every handler, typed or wildcard, is called on the publishing goroutine in
// the order it subscribed. Unsubscribing keeps the order of the remaining
// handlers. Handlers may publish, subscribe or unsubscribe; changes made while
// an event is being delivered take effect from the next Publish.
//
// Thread-safety: This implementation is thread-safe. Multiple goroutines can
// publish events and subscribe/unsubscribe handlers concurrently.
//
// Performance: Since handlers are called synchronously, slow handlers will block
// event delivery. A carousel publishes from its UI context, so handlers should
// only update state and request a redraw.
type SyncEventBus struct {
	logger *slog.Logger

	// mu protects subs, nextID and closed
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
	closed bool
}

// subscription is one registered handler. A wildcard subscription has no event type.
type subscription struct {
	id        domain.SubscriptionID
	eventType domain.EventType
	wildcard  bool
	handler   domain.EventHandler
	filter    ports.EventFilter // nil delivers everything
}

// matches reports whether the subscription wants events of type t.
func (s subscription) matches(t domain.EventType) bool {
	return s.wildcard || s.eventType == t
}

// NewSyncEventBus creates a new synchronous event bus.
func NewSyncEventBus() *SyncEventBus {
	return &SyncEventBus{}
}

// SetLogger sets the logger for this event bus.
// Without a logger, handler panics are recovered silently.
func (bus *SyncEventBus) SetLogger(logger *slog.Logger) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.logger = logger
}

// Publish delivers event to every matching subscriber.
// Publishing nil or on a closed bus does nothing.
//
// Panics in handlers and filters are recovered and logged; the remaining
// handlers still receive the event.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	eventType := event.Type()
	targets := make([]subscription, 0, len(bus.subs))
	for _, sub := range bus.subs {
		if sub.matches(eventType) {
			targets = append(targets, sub)
		}
	}
	logger := bus.logger
	bus.mu.RUnlock()

	for _, sub := range targets {
		if sub.filter != nil && !accepts(logger, sub.filter, event) {
			continue
		}
		deliver(logger, sub.handler, event)
	}
}

// deliver calls handler and recovers from panics.
func deliver(logger *slog.Logger, handler domain.EventHandler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("event_type", string(event.Type())))
		}
	}()

	if logger != nil && logger.Enabled(context.Background(), slog.LevelDebug) {
		logger.Debug("event delivered",
			slog.String("event_type", string(event.Type())),
			slog.String("handler", handlerName(handler)))
	}
	handler(event)
}

// accepts runs a subscription filter, treating a panicking filter as a rejection.
func accepts(logger *slog.Logger, filter ports.EventFilter, event domain.Event) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Error("event filter panicked",
					slog.Any("panic", r),
					slog.String("event_type", string(event.Type())))
			}
			ok = false
		}
	}()
	return filter(event)
}

func handlerName(handler domain.EventHandler) string {
	return runtime.FuncForPC(reflect.ValueOf(handler).Pointer()).Name()
}

// Subscribe registers a handler for events of the specified type.
// The same handler can be registered multiple times with different IDs.
//
// Panics if handler is nil or the bus is closed.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	return bus.add(subscription{eventType: eventType, handler: handler})
}

// SubscribeFiltered registers a handler that only receives events of the
// specified type for which filter returns true.
func (bus *SyncEventBus) SubscribeFiltered(eventType domain.EventType, filter ports.EventFilter, handler domain.EventHandler) domain.SubscriptionID {
	if filter == nil {
		panic("event filter cannot be nil")
	}
	return bus.add(subscription{eventType: eventType, handler: handler, filter: filter})
}

// SubscribeAll registers a handler that receives all events regardless of type.
// This is useful for logging and tests.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	return bus.add(subscription{wildcard: true, handler: handler})
}

func (bus *SyncEventBus) add(sub subscription) domain.SubscriptionID {
	if sub.handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	bus.nextID++
	if sub.wildcard {
		sub.id = domain.SubscriptionID(fmt.Sprintf("sub-all-%d", bus.nextID))
	} else {
		sub.id = domain.SubscriptionID(fmt.Sprintf("sub-%d", bus.nextID))
	}

	// Publish works on a copy, so appending never races with delivery.
	bus.subs = append(bus.subs, sub)
	return sub.id
}

// Unsubscribe removes a previously registered event handler.
// Unknown or already removed IDs are a no-op.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.subs = slices.DeleteFunc(bus.subs, func(sub subscription) bool {
		return sub.id == id
	})
}

// HasSubscribers returns true if a handler would receive an event of the given type.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	return slices.ContainsFunc(bus.subs, func(sub subscription) bool {
		return sub.matches(eventType)
	})
}

// Close drops all subscriptions. Later publishes are ignored and later
// subscriptions panic.
//
// Returns domain.ErrBusClosed if already closed.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return domain.ErrBusClosed
	}

	bus.closed = true
	bus.subs = nil
	return nil
}

// SubscriberCount returns the number of active subscriptions, typed and wildcard.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	return len(bus.subs)
}

// Verify that SyncEventBus implements the FilteringEventBus interface
var _ ports.FilteringEventBus = (*SyncEventBus)(nil)
