// Package ports define the Scheduler interface for timed callbacks.
// The carousel core never touches time.Timer directly so it can be driven by a manual clock in tests.
package ports

import "time"

// Cancel stops a scheduled callback.
// Calling it more than once, or after a one-shot callback fired, is a no-op.
type Cancel func()

// Scheduler schedules callbacks on the host's UI execution context.
//
// Implementations must deliver every callback on a single logical thread
// (the Fyne main goroutine, the Bubble Tea update loop, or the test goroutine)
// so the carousel state machine never observes concurrent events.
type Scheduler interface {
	// Every invokes fn repeatedly every d until the returned Cancel is called.
	Every(d time.Duration, fn func()) Cancel

	// After invokes fn once after d unless the returned Cancel is called first.
	After(d time.Duration, fn func()) Cancel
}
