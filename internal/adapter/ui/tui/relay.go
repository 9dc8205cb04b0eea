// Package tui provides a terminal host for the carousel built on Bubble Tea.
package tui

import (
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// callbackMsg carries a scheduled callback onto the Bubble Tea event loop.
type callbackMsg func()

// Relay delivers scheduler callbacks to a running tea.Program so that the
// controller is only ever touched from Update. Its Dispatch method satisfies
// scheduler.Dispatcher.
//
// The program is attached after construction because the scheduler and
// controller must exist before the model the program runs.
type Relay struct {
	logger *slog.Logger

	mu      sync.Mutex
	program *tea.Program
}

// NewRelay creates a relay with no program attached.
func NewRelay(logger *slog.Logger) *Relay {
	return &Relay{logger: logger}
}

// Attach sets the program that receives callbacks.
func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.program = p
}

// Dispatch sends fn to the attached program. Callbacks arriving before a
// program is attached are dropped.
func (r *Relay) Dispatch(fn func()) {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()

	if p == nil {
		r.logger.Debug("callback dropped, no program attached")
		return
	}
	p.Send(callbackMsg(fn))
}
