// Package testutil provides testing utilities for the carousel packages.
package testutil

import (
	"io"
	"testing"

	"go.uber.org/goleak"
)

// fyneTopFunctions are goroutines the Fyne drivers start once and never stop.
var fyneTopFunctions = []string{
	"fyne.io/fyne/v2/internal/driver/glfw.(*gLDriver).runGL.func1",
	"fyne.io/fyne/v2/internal/driver/glfw.(*window).RunEventQueue",
	"fyne.io/fyne/v2/internal/animation.(*Runner).runAnimations",
}

// VerifyNoLeaks should be deferred at the start of tests that create a
// scheduler or an application. It fails the test if goroutines survive it.
func VerifyNoLeaks(t *testing.T, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}

// CloseAndVerify closes c and then checks for leaked goroutines, so a
// component whose Close does not join its workers fails the test.
func CloseAndVerify(t *testing.T, c io.Closer, opts ...goleak.Option) {
	t.Helper()
	if err := c.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	goleak.VerifyNone(t, opts...)
}

// IgnoreFyneGoroutines returns goleak options for the goroutines Fyne keeps
// running once an app or animation was started.
func IgnoreFyneGoroutines() []goleak.Option {
	opts := make([]goleak.Option, 0, len(fyneTopFunctions)+1)
	for _, fn := range fyneTopFunctions {
		opts = append(opts, goleak.IgnoreTopFunction(fn))
	}
	return append(opts, goleak.IgnoreAnyFunction("fyne.io/fyne/v2"))
}
