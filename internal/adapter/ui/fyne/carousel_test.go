package fyne

import (
	"math"
	"testing"
	"time"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/logger"
	"github.com/tejashwikalptaru/gocarousel/internal/testutil"
)

func renderLabel(s string) fyneapp.CanvasObject {
	return widget.NewLabel(s)
}

// Helper to create a laid out carousel driven by a manual clock.
// Pages snap into place so tests never depend on animation timing.
func newTestCarousel(t *testing.T, items []string, configure func(*domain.CarouselConfig)) (*Carousel[string], *scheduler.Manual, *testutil.EventRecorder) {
	t.Helper()
	test.NewApp()

	cfg := domain.DefaultCarouselConfig()
	if configure != nil {
		configure(&cfg)
	}

	clock := scheduler.NewManual()
	bus := eventbus.NewSyncEventBus()
	t.Cleanup(func() { _ = bus.Close() })
	rec := testutil.RecordEvents(bus)

	c, err := NewCarousel(items, renderLabel, CarouselOptions{
		Config:    cfg,
		Logger:    logger.NewTestLogger(),
		Scheduler: clock,
		Bus:       bus,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	test.WidgetRenderer(c)
	c.Resize(fyneapp.NewSize(400, 150))

	return c, clock, rec
}

func drag(c *Carousel[string], dx float32) {
	c.Dragged(&fyneapp.DragEvent{Dragged: fyneapp.NewDelta(dx, 0)})
}

func TestNewCarousel_RequiresRender(t *testing.T) {
	_, err := NewCarousel[string]([]string{"a"}, nil, CarouselOptions{
		Config:    domain.DefaultCarouselConfig(),
		Scheduler: scheduler.NewManual(),
	})
	assert.Error(t, err)
}

func TestNewCarousel_InvalidConfig(t *testing.T) {
	cfg := domain.DefaultCarouselConfig()
	cfg.Transition = "spin"

	_, err := NewCarousel([]string{"a"}, renderLabel, CarouselOptions{Config: cfg, Scheduler: scheduler.NewManual()})

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNewCarousel_RendersEveryAugmentedPage(t *testing.T) {
	var rendered []string
	c, err := NewCarousel([]string{"1", "2", "3"}, func(s string) fyneapp.CanvasObject {
		rendered = append(rendered, s)
		return widget.NewLabel(s)
	}, CarouselOptions{Config: domain.DefaultCarouselConfig(), Scheduler: scheduler.NewManual()})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, []string{"3", "1", "2", "3", "1"}, rendered)
}

func TestCarousel_RendererCreationAppears(t *testing.T) {
	test.NewApp()
	c, err := NewCarousel([]string{"1", "2"}, renderLabel, CarouselOptions{
		Config:    domain.DefaultCarouselConfig(),
		Scheduler: scheduler.NewManual(),
	})
	require.NoError(t, err)
	defer c.Close()

	assert.False(t, c.Controller().TimerRunning())

	test.WidgetRenderer(c)
	assert.True(t, c.Controller().TimerRunning())
}

func TestCarousel_AutoAdvance(t *testing.T) {
	c, clock, rec := newTestCarousel(t, []string{"1", "2", "3", "4"}, nil)

	clock.Advance(3 * time.Second)
	assert.Equal(t, 2, c.Controller().Index())
	assert.Zero(t, c.Offset())
	assert.True(t, c.Controller().TimerRunning())

	changes := rec.PageChanges()
	require.Len(t, changes, 1)
	assert.Equal(t, domain.CauseTick, changes[0].Cause)
}

func TestCarousel_DragPausesTimer(t *testing.T) {
	c, clock, _ := newTestCarousel(t, []string{"1", "2", "3", "4"}, nil)

	drag(c, -40)
	assert.Equal(t, float32(-40), c.Offset())
	assert.False(t, c.Controller().TimerRunning())

	// No ticks while the finger is down
	clock.Advance(10 * time.Second)
	assert.Equal(t, 1, c.Controller().Index())
}

func TestCarousel_SwipeLeftTurnsPage(t *testing.T) {
	c, _, _ := newTestCarousel(t, []string{"1", "2", "3", "4"}, nil)

	drag(c, -80)
	drag(c, -70)
	c.DragEnd()

	assert.Equal(t, 2, c.Controller().Index())
	assert.Zero(t, c.Offset())
	assert.True(t, c.Controller().TimerRunning())
}

func TestCarousel_ShortSwipeSpringsBack(t *testing.T) {
	c, _, rec := newTestCarousel(t, []string{"1", "2", "3", "4"}, nil)

	drag(c, -50)
	c.DragEnd()

	assert.Equal(t, 1, c.Controller().Index())
	assert.Zero(t, c.Offset())
	assert.Empty(t, rec.PageChanges())
	assert.True(t, c.Controller().TimerRunning())
}

func TestCarousel_SwipeRightIntoLeadingDuplicate(t *testing.T) {
	c, clock, _ := newTestCarousel(t, []string{"1", "2", "3", "4"}, nil)

	drag(c, 150)
	c.DragEnd()

	assert.Equal(t, 0, c.Controller().Index())
	target, ok := c.Controller().PendingCorrection()
	require.True(t, ok)
	assert.Equal(t, 4, target)

	clock.Advance(domain.DefaultCorrectionDelay)
	assert.Equal(t, 4, c.Controller().Index())
	item, _ := c.Controller().Current()
	assert.Equal(t, "4", item)
}

func TestCarousel_SwipePastEndWithoutLoopSnapsBack(t *testing.T) {
	c, _, _ := newTestCarousel(t, []string{"only"}, nil)

	drag(c, 150)
	c.DragEnd()

	assert.Equal(t, 0, c.Controller().Index())
	assert.Zero(t, c.Offset())
}

func TestCarousel_HideAndShow(t *testing.T) {
	c, _, _ := newTestCarousel(t, []string{"1", "2"}, nil)
	require.True(t, c.Controller().TimerRunning())

	c.Hide()
	assert.False(t, c.Controller().TimerRunning())

	c.Show()
	assert.True(t, c.Controller().TimerRunning())
}

func TestCarousel_Close(t *testing.T) {
	c, clock, rec := newTestCarousel(t, []string{"1", "2"}, nil)

	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Close(), domain.ErrControllerClosed)
	assert.False(t, c.Controller().TimerRunning())
	assert.Equal(t, 1, rec.Count(domain.EventCarouselClosed))

	clock.Advance(10 * time.Second)
	assert.Equal(t, 1, c.Controller().Index())
}

func TestCarousel_LayoutHidesDistantPages(t *testing.T) {
	c, _, _ := newTestCarousel(t, []string{"1", "2", "3", "4"}, nil)
	r := test.WidgetRenderer(c).(*carouselRenderer[string])

	assert.True(t, r.cells[1].box.Visible())
	assert.False(t, r.cells[0].box.Visible())
	assert.False(t, r.cells[2].box.Visible())

	drag(c, -100)
	assert.True(t, r.cells[1].box.Visible())
	assert.True(t, r.cells[2].box.Visible())
	assert.False(t, r.cells[3].box.Visible())
}

func TestCarousel_TransitionEffects(t *testing.T) {
	const pageWidth = 400 - 2*domain.DefaultHorizontalPadding

	t.Run("scale", func(t *testing.T) {
		c, _, _ := newTestCarousel(t, []string{"1", "2", "3"}, func(cfg *domain.CarouselConfig) {
			cfg.Transition = domain.TransitionScale
		})
		r := test.WidgetRenderer(c).(*carouselRenderer[string])

		assert.InDelta(t, pageWidth, r.cells[1].box.Size().Width, 0.01)

		drag(c, -200)
		assert.InDelta(t, pageWidth*0.5, r.cells[1].box.Size().Width, 0.01)
		assert.InDelta(t, 75, r.cells[1].box.Size().Height, 0.01)
	})

	t.Run("rotation3d", func(t *testing.T) {
		c, _, _ := newTestCarousel(t, []string{"1", "2", "3"}, func(cfg *domain.CarouselConfig) {
			cfg.Transition = domain.TransitionRotation3D
		})
		r := test.WidgetRenderer(c).(*carouselRenderer[string])

		drag(c, -200)
		want := float64(pageWidth) * math.Cos(20*math.Pi/180)
		assert.InDelta(t, want, r.cells[1].box.Size().Width, 0.01)
		assert.InDelta(t, 150, r.cells[1].box.Size().Height, 0.01)
	})

	t.Run("opacity", func(t *testing.T) {
		c, _, _ := newTestCarousel(t, []string{"1", "2", "3"}, func(cfg *domain.CarouselConfig) {
			cfg.Transition = domain.TransitionOpacity
		})
		r := test.WidgetRenderer(c).(*carouselRenderer[string])

		drag(c, -200)
		_, _, _, a := r.cells[1].shade.FillColor.RGBA()
		assert.InDelta(t, 127, a>>8, 1)
		assert.InDelta(t, pageWidth, r.cells[1].box.Size().Width, 0.01)
	})

	t.Run("none", func(t *testing.T) {
		c, _, _ := newTestCarousel(t, []string{"1", "2", "3"}, func(cfg *domain.CarouselConfig) {
			cfg.Transition = domain.TransitionNone
		})
		r := test.WidgetRenderer(c).(*carouselRenderer[string])

		drag(c, -200)
		assert.InDelta(t, pageWidth, r.cells[1].box.Size().Width, 0.01)
		assert.Equal(t, fyneapp.NewPos(-200+domain.DefaultHorizontalPadding, 0), r.cells[1].box.Position())
	})
}

func TestCarousel_MinSize(t *testing.T) {
	c, _, _ := newTestCarousel(t, []string{"1"}, func(cfg *domain.CarouselConfig) {
		cfg.PageHeight = 200
	})
	assert.Equal(t, float32(200), c.MinSize().Height)
}
