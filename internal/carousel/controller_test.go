package carousel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/logger"
	"github.com/tejashwikalptaru/gocarousel/internal/testutil"
)

// Helper to create a controller driven by a manual clock
func newTestController[T any](t *testing.T, items []T, configure func(*domain.CarouselConfig)) (*Controller[T], *scheduler.Manual, *testutil.EventRecorder) {
	t.Helper()

	cfg := domain.DefaultCarouselConfig()
	if configure != nil {
		configure(&cfg)
	}

	clock := scheduler.NewManual()
	bus := eventbus.NewSyncEventBus()
	t.Cleanup(func() { _ = bus.Close() })
	rec := testutil.RecordEvents(bus)

	c, err := New(logger.NewTestLogger(), cfg, clock, bus, items)
	require.NoError(t, err)

	return c, clock, rec
}

func current[T any](t *testing.T, c *Controller[T]) T {
	t.Helper()
	item, ok := c.Current()
	require.True(t, ok)
	return item
}

func TestNew_StartIndex(t *testing.T) {
	c, _, _ := newTestController(t, []string{"1", "2", "3", "4"}, nil)
	assert.True(t, c.LoopEligible())
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, "1", current(t, c))
	assert.Equal(t, []string{"4", "1", "2", "3", "4", "1"}, c.Augmented())

	empty, _, _ := newTestController(t, []string{}, nil)
	assert.False(t, empty.LoopEligible())
	assert.Equal(t, 0, empty.Index())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := domain.DefaultCarouselConfig()
	cfg.Interval = 0

	_, err := New(logger.NewTestLogger(), cfg, scheduler.NewManual(), nil, []int{1})

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Interval", vErr.Field)
}

func TestNew_NilScheduler(t *testing.T) {
	_, err := New[int](nil, domain.DefaultCarouselConfig(), nil, nil, nil)
	assert.Error(t, err)
}

func TestController_ForwardLoop(t *testing.T) {
	c, clock, rec := newTestController(t, []string{"1", "2", "3", "4"}, nil)
	c.Appear()
	require.True(t, c.TimerRunning())

	clock.Advance(3 * time.Second)
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, "2", current(t, c))

	clock.Advance(9 * time.Second)
	assert.Equal(t, 5, c.Index())
	assert.Equal(t, "1", current(t, c), "trailing duplicate shows the first item")

	target, ok := c.PendingCorrection()
	require.True(t, ok)
	assert.Equal(t, 1, target)

	clock.Advance(299 * time.Millisecond)
	assert.Equal(t, 5, c.Index(), "correction must wait for the settle delay")

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, "1", current(t, c))
	_, ok = c.PendingCorrection()
	assert.False(t, ok)

	changes := rec.PageChanges()
	require.Len(t, changes, 5)
	for _, pc := range changes[:4] {
		assert.Equal(t, domain.CauseTick, pc.Cause)
		assert.True(t, pc.Animated)
	}
	last := changes[4]
	assert.Equal(t, domain.CauseCorrection, last.Cause)
	assert.False(t, last.Animated, "the silent jump is not animated")
	assert.Equal(t, 5, last.Previous)
	assert.Equal(t, 1, last.Index)
	assert.Equal(t, 0, last.RealIndex)
	assert.Equal(t, 1, rec.Count(domain.EventCorrectionScheduled))
	assert.Equal(t, 1, rec.Count(domain.EventCorrectionApplied))

	// Paging continues from the first real item
	clock.Advance(2700 * time.Millisecond)
	assert.Equal(t, 2, c.Index())
}

func TestController_BackwardLoop(t *testing.T) {
	c, clock, _ := newTestController(t, []string{"1", "2", "3", "4"}, nil)

	require.NoError(t, c.Previous())
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, "4", current(t, c), "leading duplicate shows the last item")

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, 4, c.Index())
	assert.Equal(t, "4", current(t, c))
	assert.Equal(t, 3, c.RealIndex())
}

func TestController_LoopingLaw(t *testing.T) {
	for n := 1; n <= 6; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i * 10
		}
		c, clock, _ := newTestController(t, items, func(cfg *domain.CarouselConfig) {
			cfg.AutoAdvance = true
		})

		for c.Index() != c.Len()-1 {
			c.Tick()
		}
		clock.Advance(domain.DefaultCorrectionDelay)
		assert.Equal(t, 1, c.Index(), "n=%d", n)
		assert.Equal(t, items[0], current(t, c), "n=%d", n)
	}
}

func TestController_SingleItem(t *testing.T) {
	c, clock, _ := newTestController(t, []string{"x"}, nil)
	assert.Equal(t, []string{"x", "x", "x"}, c.Augmented())

	c.Tick()
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, "x", current(t, c))

	clock.Advance(time.Second)
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, 0, c.RealIndex())
}

func TestController_EmptyItems(t *testing.T) {
	c, _, rec := newTestController(t, []string{}, nil)

	assert.Empty(t, c.Augmented())
	_, ok := c.Current()
	assert.False(t, ok)
	assert.Equal(t, -1, c.RealIndex())

	// The overflow guard snaps back to zero
	c.Tick()
	assert.Equal(t, 0, c.Index())
	changes := rec.PageChanges()
	require.Len(t, changes, 2)
	assert.Equal(t, domain.CauseOverflow, changes[1].Cause)

	err := c.Select(0, true)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Previous(), domain.ErrIndexOutOfRange)
}

func TestController_AutoAdvanceDisabled(t *testing.T) {
	c, clock, rec := newTestController(t, []string{"1", "2", "3"}, func(cfg *domain.CarouselConfig) {
		cfg.AutoAdvance = false
	})

	c.Appear()
	assert.False(t, c.TimerRunning())
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Minute)
	c.Tick()
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, 0, rec.Count(domain.EventTimerStarted))

	// Explicit navigation still works
	require.NoError(t, c.Next())
	assert.Equal(t, 2, c.Index())
	require.NoError(t, c.Select(3, false))
	assert.Equal(t, "3", current(t, c))
}

func TestController_PositionChangedPausesTimer(t *testing.T) {
	c, clock, rec := newTestController(t, []string{"1", "2", "3"}, nil)
	c.Appear()

	c.PositionChanged(12.5)
	assert.False(t, c.TimerRunning())
	assert.False(t, c.State().Settled)

	clock.Advance(10 * time.Second)
	assert.Equal(t, 1, c.Index(), "no ticks while a page is mid-transition")

	c.PositionChanged(0)
	assert.True(t, c.TimerRunning())

	clock.Advance(3 * time.Second)
	assert.Equal(t, 2, c.Index())

	assert.Equal(t, 2, rec.Count(domain.EventTimerStarted))
	assert.Equal(t, 1, rec.Count(domain.EventTimerStopped))
}

func TestController_LifecycleBindsTimer(t *testing.T) {
	c, clock, _ := newTestController(t, []string{"1", "2", "3"}, nil)
	c.Appear()

	c.SetLifecycle(domain.PhaseBackground)
	assert.False(t, c.TimerRunning())

	// Settling while backgrounded must not restart the timer
	c.PositionChanged(0)
	assert.False(t, c.TimerRunning())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, c.Index())

	c.SetLifecycle(domain.PhaseInactive)
	assert.False(t, c.TimerRunning())

	c.SetLifecycle(domain.PhaseActive)
	assert.True(t, c.TimerRunning())
	assert.Equal(t, 1, clock.Pending())

	c.Disappear()
	assert.False(t, c.TimerRunning())
	assert.Equal(t, domain.PhaseActive, c.State().Phase)
}

func TestController_NewerChangeSupersedesCorrection(t *testing.T) {
	c, clock, rec := newTestController(t, []string{"1", "2", "3", "4"}, nil)

	require.NoError(t, c.Select(4, true))
	require.NoError(t, c.Next())
	assert.Equal(t, 5, c.Index())

	require.NoError(t, c.Select(3, true))
	_, ok := c.PendingCorrection()
	assert.False(t, ok)
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, 3, c.Index(), "a stale correction must not apply")
	assert.Equal(t, 1, rec.Count(domain.EventCorrectionCancelled))
	assert.Equal(t, 0, rec.Count(domain.EventCorrectionApplied))
}

func TestController_TickDuringPendingCorrection(t *testing.T) {
	c, clock, _ := newTestController(t, []string{"1", "2", "3", "4"}, func(cfg *domain.CarouselConfig) {
		cfg.Interval = 100 * time.Millisecond
	})
	c.Appear()

	clock.Advance(400 * time.Millisecond)
	assert.Equal(t, 5, c.Index())

	// The next tick lands before the correction is due
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, 2, c.Index())
	assert.Less(t, c.Index(), c.Len())
}

func TestController_SelectOutOfRange(t *testing.T) {
	c, _, _ := newTestController(t, []int{1, 2}, nil)

	assert.ErrorIs(t, c.Select(-1, true), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Select(4, true), domain.ErrIndexOutOfRange)
	require.NoError(t, c.Select(3, true))
}

func TestController_SelectSameIndexKeepsCorrection(t *testing.T) {
	c, _, _ := newTestController(t, []int{1, 2}, nil)

	require.NoError(t, c.Select(3, true))
	require.NoError(t, c.Select(3, true))

	target, ok := c.PendingCorrection()
	assert.True(t, ok)
	assert.Equal(t, 1, target)
}

func TestController_Close(t *testing.T) {
	c, clock, rec := newTestController(t, []string{"1", "2", "3"}, nil)
	c.Appear()
	require.NoError(t, c.Select(4, true))
	require.Equal(t, 2, clock.Pending())

	require.NoError(t, c.Close())
	assert.False(t, c.TimerRunning())
	assert.Equal(t, 0, clock.Pending(), "teardown cancels the timer and the pending correction")

	clock.Advance(time.Minute)
	assert.Equal(t, 4, c.Index())

	assert.ErrorIs(t, c.Close(), domain.ErrControllerClosed)
	assert.ErrorIs(t, c.Select(1, true), domain.ErrControllerClosed)
	assert.ErrorIs(t, c.Next(), domain.ErrControllerClosed)

	c.Appear()
	c.PositionChanged(0)
	c.SetLifecycle(domain.PhaseBackground)
	c.Tick()
	assert.False(t, c.TimerRunning())
	assert.Equal(t, 4, c.Index())
	assert.True(t, c.State().Closed)
	assert.Equal(t, 1, rec.Count(domain.EventCarouselClosed))
}

func TestController_State(t *testing.T) {
	c, _, _ := newTestController(t, []string{"a", "b"}, nil)
	c.Appear()
	require.NoError(t, c.Select(0, false))

	state := c.State()
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, 1, state.RealIndex)
	assert.Equal(t, 4, state.Length)
	assert.True(t, state.LoopEligible)
	assert.True(t, state.TimerRunning)
	assert.True(t, state.Settled)
	assert.Equal(t, 2, state.PendingCorrection)
	assert.False(t, state.Closed)
}

func TestController_HandlersMayReenter(t *testing.T) {
	cfg := domain.DefaultCarouselConfig()
	clock := scheduler.NewManual()
	bus := eventbus.NewSyncEventBus()
	defer bus.Close()

	c, err := New(logger.NewTestLogger(), cfg, clock, bus, []string{"1", "2"})
	require.NoError(t, err)

	var seen []string
	bus.Subscribe(domain.EventPageChanged, func(domain.Event) {
		item, _ := c.Current()
		seen = append(seen, item)
	})

	c.Tick()
	c.Tick()
	clock.Advance(cfg.CorrectionDelay)

	assert.Equal(t, []string{"2", "1", "1"}, seen)
}
