// Package fyne provides Fyne UI adapter implementations.
// This package hosts the carousel controller inside a Fyne widget and wires it
// to the application lifecycle.
package fyne

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gocarousel/internal/carousel"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

const (
	// DefaultPageAnimation is how long a page turn takes. It must stay below
	// the correction delay so the silent jump lands on a page at rest.
	DefaultPageAnimation = 250 * time.Millisecond

	// swipeThreshold is the fraction of the page width a drag must cover to turn the page.
	swipeThreshold = 0.25
)

// CarouselOptions configures a Carousel widget.
type CarouselOptions struct {
	Config    domain.CarouselConfig
	Logger    *slog.Logger
	Scheduler ports.Scheduler

	// Bus receives the controller's events. A carousel subscribes to page
	// changes on it, so a bus must not be shared by two live carousels.
	// Nil creates a private bus.
	Bus ports.EventBus

	// PageAnimation is the page turn duration; zero snaps pages into place.
	PageAnimation time.Duration
}

// DefaultCarouselOptions returns options with the default configuration and page animation.
// The caller still has to provide a Scheduler.
func DefaultCarouselOptions() CarouselOptions {
	return CarouselOptions{
		Config:        domain.DefaultCarouselConfig(),
		PageAnimation: DefaultPageAnimation,
	}
}

// Carousel is a horizontally paged widget that loops infinitely and can
// advance on its own.
//
// Dragging moves the pages with the pointer; releasing past a quarter of the
// page width turns the page. Showing the widget counts as appearing and hiding
// or destroying its renderer as disappearing.
type Carousel[T any] struct {
	widget.BaseWidget

	logger        *slog.Logger
	ctrl          *carousel.Controller[T]
	cfg           domain.CarouselConfig
	pageAnimation time.Duration

	bus    ports.EventBus
	ownBus bool
	subID  domain.SubscriptionID

	// pages holds one rendered object per augmented index
	pages []fyneapp.CanvasObject

	mu     sync.Mutex
	offset float32
	anim   *fyneapp.Animation
	closed bool
}

// NewCarousel creates a carousel over items. render is called once for every
// page of the augmented sequence, so boundary items are rendered twice.
func NewCarousel[T any](items []T, render func(T) fyneapp.CanvasObject, opts CarouselOptions) (*Carousel[T], error) {
	if render == nil {
		return nil, fmt.Errorf("carousel: render function is required")
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	bus := opts.Bus
	ownBus := false
	if bus == nil {
		syncBus := eventbus.NewSyncEventBus()
		syncBus.SetLogger(log.With(slog.String("component", "eventbus")))
		bus = syncBus
		ownBus = true
	}

	ctrl, err := carousel.New(log, opts.Config, opts.Scheduler, bus, items)
	if err != nil {
		if ownBus {
			_ = bus.Close()
		}
		return nil, fmt.Errorf("failed to create carousel controller: %w", err)
	}

	c := &Carousel[T]{
		logger:        log,
		ctrl:          ctrl,
		cfg:           opts.Config,
		pageAnimation: opts.PageAnimation,
		bus:           bus,
		ownBus:        ownBus,
	}

	for _, item := range ctrl.Augmented() {
		c.pages = append(c.pages, render(item))
	}

	c.subID = bus.Subscribe(domain.EventPageChanged, c.onPageChanged)
	c.ExtendBaseWidget(c)

	return c, nil
}

// Controller returns the index controller driving this widget.
func (c *Carousel[T]) Controller() *carousel.Controller[T] {
	return c.ctrl
}

// Offset returns the current horizontal displacement of the shown page.
func (c *Carousel[T]) Offset() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.offset
}

// CreateRenderer implements fyne.Widget. Creating the renderer means the
// carousel is about to appear.
func (c *Carousel[T]) CreateRenderer() fyneapp.WidgetRenderer {
	r := &carouselRenderer[T]{c: c}
	for _, page := range c.pages {
		cell := newPageCell(page, c.cfg.CornerRadius)
		r.cells = append(r.cells, cell)
		r.objects = append(r.objects, cell.box)
	}

	c.ctrl.Appear()
	return r
}

// MinSize returns the configured page height and room for the padding.
func (c *Carousel[T]) MinSize() fyneapp.Size {
	return fyneapp.NewSize(2*c.cfg.HorizontalPadding+1, c.cfg.PageHeight)
}

// Show makes the carousel visible and lets auto-advance resume.
func (c *Carousel[T]) Show() {
	c.BaseWidget.Show()
	c.ctrl.Appear()
}

// Hide hides the carousel and pauses auto-advance.
func (c *Carousel[T]) Hide() {
	c.BaseWidget.Hide()
	c.ctrl.Disappear()
}

// Dragged implements fyne.Draggable.
func (c *Carousel[T]) Dragged(e *fyneapp.DragEvent) {
	c.stopAnimation()

	c.mu.Lock()
	offset := c.offset + e.Dragged.DX
	c.mu.Unlock()

	c.setOffset(offset)
}

// DragEnd implements fyne.Draggable. The page turns when the drag covered
// enough of the page width and springs back otherwise.
func (c *Carousel[T]) DragEnd() {
	offset := c.Offset()
	threshold := c.Size().Width * swipeThreshold

	var err error
	switch {
	case threshold > 0 && offset <= -threshold:
		err = c.ctrl.Next()
	case threshold > 0 && offset >= threshold:
		err = c.ctrl.Previous()
	default:
		c.animateFrom(offset)
		return
	}

	if err != nil {
		c.logger.Debug("swipe rejected", slog.Any("error", err))
		c.animateFrom(c.Offset())
	}
}

// Close tears the carousel down: its timer and pending correction are
// cancelled and it stops listening to the bus.
//
// Returns domain.ErrControllerClosed if already closed.
func (c *Carousel[T]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrControllerClosed
	}
	c.closed = true
	c.mu.Unlock()

	c.stopAnimation()
	err := c.ctrl.Close()
	c.bus.Unsubscribe(c.subID)
	if c.ownBus {
		_ = c.bus.Close()
	}
	return err
}

// onPageChanged carries the visual position across an index change and
// animates the new page into place. Silent jumps keep the offset since both
// pages look the same.
func (c *Carousel[T]) onPageChanged(event domain.Event) {
	e, ok := event.(domain.PageChangedEvent)
	if !ok {
		return
	}
	if !e.Animated {
		c.Refresh()
		return
	}

	width := c.Size().Width

	c.mu.Lock()
	offset := c.offset + float32(e.Index-e.Previous)*width
	c.mu.Unlock()

	c.animateFrom(clamp(offset, -width, width))
}

// animateFrom moves the shown page from offset back to its resting position.
func (c *Carousel[T]) animateFrom(offset float32) {
	c.stopAnimation()

	if c.pageAnimation <= 0 || offset == 0 {
		c.setOffset(0)
		return
	}

	anim := fyneapp.NewAnimation(c.pageAnimation, func(progress float32) {
		c.setOffset(offset * (1 - progress))
	})
	anim.Curve = fyneapp.AnimationEaseOut

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.anim = anim
	c.mu.Unlock()

	c.setOffset(offset)
	anim.Start()
}

// stopAnimation halts a running page animation, leaving the offset where it is.
func (c *Carousel[T]) stopAnimation() {
	c.mu.Lock()
	anim := c.anim
	c.anim = nil
	c.mu.Unlock()

	if anim != nil {
		anim.Stop()
	}
}

// setOffset moves the pages and reports the displacement to the controller.
func (c *Carousel[T]) setOffset(offset float32) {
	c.mu.Lock()
	c.offset = offset
	c.mu.Unlock()

	c.ctrl.PositionChanged(float64(offset))
	c.Refresh()
}

func clamp(v, lo, hi float32) float32 {
	return float32(math.Max(float64(lo), math.Min(float64(hi), float64(v))))
}

// pageCell is a rounded card holding one rendered page.
type pageCell struct {
	background *canvas.Rectangle
	shade      *canvas.Rectangle
	box        *fyneapp.Container
}

func newPageCell(content fyneapp.CanvasObject, radius float32) *pageCell {
	background := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	background.CornerRadius = radius

	shade := canvas.NewRectangle(color.Transparent)
	shade.CornerRadius = radius

	return &pageCell{
		background: background,
		shade:      shade,
		box:        container.NewStack(background, content, shade),
	}
}

// setFade covers the page with the background colour; 0 is fully visible.
func (p *pageCell) setFade(fade float32) {
	r, g, b, _ := theme.Color(theme.ColorNameBackground).RGBA()
	p.shade.FillColor = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(fade * 255)}
}

// carouselRenderer lays out the shown page and its neighbours according to
// the current offset and transition effect.
type carouselRenderer[T any] struct {
	c       *Carousel[T]
	cells   []*pageCell
	objects []fyneapp.CanvasObject
}

func (r *carouselRenderer[T]) Layout(size fyneapp.Size) {
	index := r.c.ctrl.Index()
	offset := r.c.Offset()
	width := size.Width
	cellWidth := max(width-2*r.c.cfg.HorizontalPadding, 0)

	for i, cell := range r.cells {
		x := float32(i-index)*width + offset
		if width <= 0 || x <= -width || x >= width {
			cell.box.Hide()
			continue
		}
		cell.box.Show()
		r.place(cell, x, width, cellWidth, size.Height)
	}
}

// place positions one page displaced by x from the centre.
func (r *carouselRenderer[T]) place(cell *pageCell, x, width, cellWidth, height float32) {
	strength := float32(carousel.Strength(float64(x), float64(width)))
	w, h := cellWidth, height
	var fade float32

	switch r.c.cfg.Transition {
	case domain.TransitionScale:
		w *= strength
		h *= strength
	case domain.TransitionRotation3D:
		// Fyne has no 3D transform; a y-axis turn is drawn as a horizontal squash.
		rad := carousel.RotationDegrees(float64(x)) * math.Pi / 180
		w *= float32(math.Abs(math.Cos(rad)))
	case domain.TransitionOpacity:
		fade = 1 - strength
	}
	cell.setFade(fade)

	cell.box.Move(fyneapp.NewPos(x+r.c.cfg.HorizontalPadding+(cellWidth-w)/2, (height-h)/2))
	cell.box.Resize(fyneapp.NewSize(w, h))
}

func (r *carouselRenderer[T]) MinSize() fyneapp.Size {
	return r.c.MinSize()
}

func (r *carouselRenderer[T]) Refresh() {
	r.Layout(r.c.Size())
	for _, cell := range r.cells {
		cell.shade.Refresh()
		cell.box.Refresh()
	}
}

func (r *carouselRenderer[T]) Objects() []fyneapp.CanvasObject {
	return r.objects
}

// Destroy is called when the renderer is dropped: the carousel has disappeared.
func (r *carouselRenderer[T]) Destroy() {
	r.c.ctrl.Disappear()
}

// Ensure Carousel implements the required interfaces
var _ fyneapp.Widget = (*Carousel[string])(nil)
var _ fyneapp.Draggable = (*Carousel[string])(nil)
