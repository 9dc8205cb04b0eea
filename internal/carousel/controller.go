package carousel

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// Controller is the carousel index state machine.
// It owns the current page index, reacts to ticks, navigation, settle and
// lifecycle signals, and performs the deferred boundary corrections that make
// the sequence appear infinite.
//
// All state changes are published on the event bus after the internal lock is
// released, so handlers may call back into the controller.
//
// Thread-safety: All operations are thread-safe via sync.Mutex, but hosts are
// expected to drive a controller from a single UI context.
type Controller[T any] struct {
	// Dependencies (injected)
	logger    *slog.Logger
	scheduler ports.Scheduler
	bus       ports.EventBus

	// Immutable after construction
	cfg          domain.CarouselConfig
	items        []T
	loopEligible bool
	timer        *TimerManager

	// State
	mu         sync.Mutex
	index      int
	settled    bool
	visible    bool
	phase      domain.LifecyclePhase
	pending    *correction
	generation uint64
	closed     bool
}

// correction is a scheduled silent jump away from a duplicated boundary page.
type correction struct {
	from   int
	to     int
	gen    uint64
	cancel ports.Cancel
}

// New creates a controller for items. The items slice is not retained.
//
// Returns a *domain.ValidationError if cfg is invalid.
func New[T any](
	logger *slog.Logger,
	cfg domain.CarouselConfig,
	scheduler ports.Scheduler,
	bus ports.EventBus,
	items []T,
) (*Controller[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scheduler == nil {
		return nil, domain.NewValidationError("scheduler", nil, "must not be nil")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	augmented, loopEligible := Wrap(items)
	if !loopEligible {
		augmented = []T{}
	}

	c := &Controller[T]{
		logger:       logger,
		scheduler:    scheduler,
		bus:          bus,
		cfg:          cfg,
		items:        augmented,
		loopEligible: loopEligible,
		index:        startIndex(loopEligible),
		settled:      true,
		phase:        domain.PhaseActive,
	}
	c.timer = NewTimerManager(logger, scheduler, cfg.Interval, cfg.AutoAdvance, c.onTimerTick)

	logger.Debug("carousel controller initialized",
		slog.Int("items", len(items)),
		slog.Bool("loop_eligible", loopEligible),
		slog.Bool("auto_advance", cfg.AutoAdvance))

	return c, nil
}

// Config returns the configuration the controller was built with.
func (c *Controller[T]) Config() domain.CarouselConfig {
	return c.cfg
}

// LoopEligible reports whether boundary duplication was applied.
func (c *Controller[T]) LoopEligible() bool {
	return c.loopEligible
}

// Len returns the augmented sequence length.
func (c *Controller[T]) Len() int {
	return len(c.items)
}

// Augmented returns a copy of the augmented sequence.
func (c *Controller[T]) Augmented() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// At returns the augmented item at index.
func (c *Controller[T]) At(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(c.items) {
		return zero, false
	}
	return c.items[index], true
}

// Index returns the current augmented index.
func (c *Controller[T]) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.index
}

// Current returns the item shown at the current index.
// ok is false when the carousel has nothing to show.
func (c *Controller[T]) Current() (item T, ok bool) {
	c.mu.Lock()
	index := c.index
	c.mu.Unlock()

	return c.At(index)
}

// RealIndex returns the position of the current item in the caller's items,
// or -1 when there are none.
func (c *Controller[T]) RealIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return realIndex(c.index, len(c.items), c.loopEligible)
}

// PendingCorrection returns the target of a scheduled silent jump.
func (c *Controller[T]) PendingCorrection() (target int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return -1, false
	}
	return c.pending.to, true
}

// TimerRunning reports whether an auto-advance timer is live.
func (c *Controller[T]) TimerRunning() bool {
	return c.timer.Running()
}

// State returns a snapshot of the controller state.
func (c *Controller[T]) State() domain.CarouselState {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := -1
	if c.pending != nil {
		pending = c.pending.to
	}

	return domain.CarouselState{
		Index:             c.index,
		RealIndex:         realIndex(c.index, len(c.items), c.loopEligible),
		Length:            len(c.items),
		LoopEligible:      c.loopEligible,
		TimerRunning:      c.timer.Running(),
		Settled:           c.settled,
		Phase:             c.phase,
		PendingCorrection: pending,
		Closed:            c.closed,
	}
}

// Tick advances one page with animation, as the auto-advance timer does.
// It is ignored when auto-advance is disabled or the controller is closed.
func (c *Controller[T]) Tick() {
	c.mu.Lock()
	events := c.tickLocked()
	c.mu.Unlock()

	c.publish(events)
}

// onTimerTick is the live timer's callback. Ticks that race a pause are dropped.
func (c *Controller[T]) onTimerTick() {
	c.mu.Lock()
	if !c.timerAllowedLocked() {
		c.mu.Unlock()
		return
	}
	events := c.tickLocked()
	c.mu.Unlock()

	c.publish(events)
}

// tickLocked advances the index (caller must hold lock).
func (c *Controller[T]) tickLocked() []domain.Event {
	if c.closed || !c.cfg.AutoAdvance {
		return nil
	}

	// A tick that lands before the pending jump fires would step past the
	// trailing duplicate, so apply the jump first.
	events := c.applyCorrectionLocked()
	return append(events, c.setIndexLocked(c.index+1, true, domain.CauseTick)...)
}

// Select moves to an augmented index, as a settled swipe or programmatic
// navigation does.
//
// Returns domain.ErrIndexOutOfRange for an index outside the augmented
// sequence and domain.ErrControllerClosed after Close.
func (c *Controller[T]) Select(index int, animated bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrControllerClosed
	}
	if index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d not in [0, %d)", domain.ErrIndexOutOfRange, index, len(c.items))
	}
	events := c.setIndexLocked(index, animated, domain.CauseSelect)
	c.mu.Unlock()

	c.publish(events)
	return nil
}

// Next moves one page forward with animation.
func (c *Controller[T]) Next() error {
	return c.step(1)
}

// Previous moves one page backward with animation.
func (c *Controller[T]) Previous() error {
	return c.step(-1)
}

// step moves by delta from the corrected index.
func (c *Controller[T]) step(delta int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrControllerClosed
	}

	events := c.applyCorrectionLocked()
	target := c.index + delta
	if target < 0 || (c.loopEligible && target >= len(c.items)) {
		c.mu.Unlock()
		c.publish(events)
		return fmt.Errorf("%w: %d not in [0, %d)", domain.ErrIndexOutOfRange, target, len(c.items))
	}
	events = append(events, c.setIndexLocked(target, true, domain.CauseSelect)...)
	c.mu.Unlock()

	c.publish(events)
	return nil
}

// setIndexLocked changes the index and runs settlement (caller must hold lock).
func (c *Controller[T]) setIndexLocked(index int, animated bool, cause domain.ChangeCause) []domain.Event {
	prev := c.index
	if index == prev {
		return nil
	}

	// A newer index change supersedes any pending jump.
	events := c.cancelCorrectionLocked()

	c.index = index
	events = append(events, domain.NewPageChangedEvent(prev, index, realIndex(index, len(c.items), c.loopEligible), animated, cause))

	return append(events, c.settleLocked(index)...)
}

// settleLocked applies the boundary rules after an index change (caller must hold lock).
func (c *Controller[T]) settleLocked(index int) []domain.Event {
	n := len(c.items)

	if !c.loopEligible {
		if index < n {
			return nil
		}
		prev := c.index
		c.index = 0
		c.logger.Debug("index overflow, snapping to start", slog.Int("index", index))
		return []domain.Event{domain.NewPageChangedEvent(prev, 0, realIndex(0, n, false), true, domain.CauseOverflow)}
	}

	switch index {
	case 0:
		return c.scheduleCorrectionLocked(index, n-2)
	case n - 1:
		return c.scheduleCorrectionLocked(index, 1)
	}
	return nil
}

// scheduleCorrectionLocked arranges the silent jump from -> to (caller must hold lock).
func (c *Controller[T]) scheduleCorrectionLocked(from, to int) []domain.Event {
	c.generation++
	gen := c.generation

	cancel := c.scheduler.After(c.cfg.CorrectionDelay, func() {
		c.onCorrectionDue(gen)
	})
	c.pending = &correction{from: from, to: to, gen: gen, cancel: cancel}

	c.logger.Debug("boundary correction scheduled",
		slog.Int("from", from),
		slog.Int("to", to),
		slog.Duration("delay", c.cfg.CorrectionDelay))

	return []domain.Event{domain.NewCorrectionScheduledEvent(from, to, c.cfg.CorrectionDelay)}
}

// onCorrectionDue runs when a scheduled jump fires. Stale generations are ignored.
func (c *Controller[T]) onCorrectionDue(gen uint64) {
	c.mu.Lock()
	if c.closed || c.pending == nil || c.pending.gen != gen {
		c.mu.Unlock()
		return
	}
	events := c.applyCorrectionLocked()
	c.mu.Unlock()

	c.publish(events)
}

// applyCorrectionLocked performs the pending jump immediately, if any (caller must hold lock).
func (c *Controller[T]) applyCorrectionLocked() []domain.Event {
	p := c.pending
	if p == nil {
		return nil
	}
	c.pending = nil
	p.cancel()

	prev := c.index
	c.index = p.to

	c.logger.Debug("boundary correction applied", slog.Int("from", prev), slog.Int("to", p.to))

	return []domain.Event{
		domain.NewPageChangedEvent(prev, p.to, realIndex(p.to, len(c.items), c.loopEligible), false, domain.CauseCorrection),
		domain.NewCorrectionAppliedEvent(p.from, p.to),
	}
}

// cancelCorrectionLocked drops the pending jump, if any (caller must hold lock).
func (c *Controller[T]) cancelCorrectionLocked() []domain.Event {
	p := c.pending
	if p == nil {
		return nil
	}
	c.pending = nil
	p.cancel()

	c.logger.Debug("boundary correction cancelled", slog.Int("from", p.from), slog.Int("to", p.to))
	return []domain.Event{domain.NewCorrectionCancelledEvent(p.from, p.to)}
}

// PositionChanged reports the horizontal offset of the current page from its
// settled position. Any non-zero offset pauses auto-advance; zero resumes it.
func (c *Controller[T]) PositionChanged(offset float64) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	var events []domain.Event
	if offset != 0 {
		c.settled = false
		events = c.stopTimerLocked()
	} else {
		c.settled = true
		events = c.startTimerLocked()
	}
	c.mu.Unlock()

	c.publish(events)
}

// Appear tells the controller its widget became visible.
func (c *Controller[T]) Appear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.visible = true
	events := c.startTimerLocked()
	c.mu.Unlock()

	c.publish(events)
}

// Disappear tells the controller its widget is no longer visible.
// A pending correction is kept; only the timer stops.
func (c *Controller[T]) Disappear() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.visible = false
	events := c.stopTimerLocked()
	c.mu.Unlock()

	c.publish(events)
}

// SetLifecycle reports a host application lifecycle transition.
func (c *Controller[T]) SetLifecycle(phase domain.LifecyclePhase) {
	c.mu.Lock()
	if c.closed || c.phase == phase {
		c.mu.Unlock()
		return
	}
	c.phase = phase

	events := []domain.Event{domain.NewLifecycleChangedEvent(phase)}
	if phase == domain.PhaseActive {
		events = append(events, c.startTimerLocked()...)
	} else {
		events = append(events, c.stopTimerLocked()...)
	}
	c.mu.Unlock()

	c.publish(events)
}

// timerAllowedLocked reports whether ticks may fire now (caller must hold lock).
func (c *Controller[T]) timerAllowedLocked() bool {
	return !c.closed && c.visible && c.settled && c.phase == domain.PhaseActive
}

// startTimerLocked starts the timer if nothing holds it back (caller must hold lock).
func (c *Controller[T]) startTimerLocked() []domain.Event {
	if !c.timerAllowedLocked() {
		return nil
	}
	if !c.timer.Start() {
		return nil
	}
	return []domain.Event{domain.NewTimerStartedEvent(c.cfg.Interval)}
}

// stopTimerLocked stops the live timer if present (caller must hold lock).
func (c *Controller[T]) stopTimerLocked() []domain.Event {
	if !c.timer.Stop() {
		return nil
	}
	return []domain.Event{domain.NewTimerStoppedEvent()}
}

// Close tears the controller down: the timer and any pending correction are
// cancelled and later events are ignored.
//
// Returns domain.ErrControllerClosed if already closed.
func (c *Controller[T]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrControllerClosed
	}

	events := c.cancelCorrectionLocked()
	events = append(events, c.stopTimerLocked()...)
	c.closed = true
	c.visible = false
	events = append(events, domain.NewCarouselClosedEvent())
	c.mu.Unlock()

	c.logger.Debug("carousel controller closed")
	c.publish(events)
	return nil
}

// publish sends events on the bus, in order.
func (c *Controller[T]) publish(events []domain.Event) {
	if c.bus == nil {
		return
	}
	for _, e := range events {
		c.bus.Publish(e)
	}
}
