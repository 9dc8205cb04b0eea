package fyne

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
	"github.com/tejashwikalptaru/gocarousel/internal/service"
)

// Navigator is the part of a carousel controller the presenter drives.
type Navigator interface {
	Next() error
	Previous() error
	State() domain.CarouselState
}

// UIView defines the interface for UI updates.
// The actual UI implementation (MainWindow) must implement this interface.
type UIView interface {
	// ShowItems replaces the shown carousel with a new one over items.
	ShowItems(items []domain.CarouselItem, cfg domain.CarouselConfig) (Navigator, error)

	// Status updates
	SetPageStatus(current, total int)
	SetTimerState(running bool)
	SetSettings(cfg domain.CarouselConfig)

	// Notifications
	ShowNotification(title, message string)
}

// SourceOpener builds an item source for a user-selected folder.
type SourceOpener func(path string) ports.ItemSource

// Presenter implements the Presenter pattern (MVP architecture).
// It coordinates between the carousel, persisted preferences and the UI.
//
// Responsibilities:
// - Subscribe to carousel events and map them to UI updates
// - Translate UI commands to controller calls
// - Persist the user's settings and rebuild the carousel when they change
//
// Thread-safety: All operations are thread-safe via sync.RWMutex.
type Presenter struct {
	logger *slog.Logger

	// EventBus carries the events of the shown carousel
	EventBus ports.EventBus

	prefs *service.PreferenceService
	open  SourceOpener
	view  UIView

	mu       sync.RWMutex
	defaults domain.CarouselConfig
	cfg      domain.CarouselConfig
	items []domain.CarouselItem
	nav   Navigator
	subs  []domain.SubscriptionID

	shutdownOnce sync.Once
}

// NewPresenter creates a new presenter. Saved preferences are applied on top of cfg.
// prefs and open may be nil.
func NewPresenter(
	logger *slog.Logger,
	eventBus ports.EventBus,
	prefs *service.PreferenceService,
	cfg domain.CarouselConfig,
	open SourceOpener,
	view UIView,
) *Presenter {
	p := &Presenter{
		logger:   logger,
		EventBus: eventBus,
		prefs:    prefs,
		open:     open,
		view:     view,
		defaults: cfg,
	}
	if prefs != nil {
		cfg = prefs.Apply(cfg)
	}
	p.cfg = cfg

	p.subscribeToEvents()
	view.SetSettings(p.cfg)

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		domain.EventPageChanged:  p.onPageChanged,
		domain.EventTimerStarted: p.onTimerStarted,
		domain.EventTimerStopped: p.onTimerStopped,
	}

	for eventType, handler := range subscriptions {
		p.subs = append(p.subs, p.EventBus.Subscribe(eventType, handler))
	}
}

// Config returns the configuration used for the next carousel.
func (p *Presenter) Config() domain.CarouselConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.cfg
}

// Load reads items from src and shows them.
func (p *Presenter) Load(ctx context.Context, src ports.ItemSource) error {
	items, err := src.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}
	return p.show(items)
}

// show hands items to the view under the current configuration.
func (p *Presenter) show(items []domain.CarouselItem) error {
	p.mu.Lock()
	p.items = items
	cfg := p.cfg
	p.mu.Unlock()

	nav, err := p.view.ShowItems(items, cfg)
	if err != nil {
		return fmt.Errorf("failed to show carousel: %w", err)
	}

	p.mu.Lock()
	p.nav = nav
	p.mu.Unlock()

	if len(items) > 0 {
		p.view.SetPageStatus(1, len(items))
	} else {
		p.view.SetPageStatus(0, 0)
	}

	p.logger.Info("carousel shown",
		slog.Int("items", len(items)),
		slog.String("transition", cfg.Transition.String()),
		slog.Bool("auto_advance", cfg.AutoAdvance))
	return nil
}

// rebuild shows the current items again with the updated configuration.
func (p *Presenter) rebuild() error {
	p.mu.RLock()
	items := p.items
	loaded := p.nav != nil
	p.mu.RUnlock()

	if !loaded {
		return nil
	}
	return p.show(items)
}

func (p *Presenter) navigator() Navigator {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.nav
}

// User actions (called by UI)

// OnNextClicked handles next button clicks.
func (p *Presenter) OnNextClicked() {
	nav := p.navigator()
	if nav == nil {
		return
	}
	if err := nav.Next(); err != nil && !errors.Is(err, domain.ErrIndexOutOfRange) {
		p.logger.Warn("next failed", slog.Any("error", err))
	}
}

// OnPreviousClicked handles previous button clicks.
func (p *Presenter) OnPreviousClicked() {
	nav := p.navigator()
	if nav == nil {
		return
	}
	if err := nav.Previous(); err != nil && !errors.Is(err, domain.ErrIndexOutOfRange) {
		p.logger.Warn("previous failed", slog.Any("error", err))
	}
}

// OnAutoAdvanceToggled persists the choice and rebuilds the carousel.
func (p *Presenter) OnAutoAdvanceToggled(enabled bool) error {
	p.mu.Lock()
	if p.cfg.AutoAdvance == enabled {
		p.mu.Unlock()
		return nil
	}
	p.cfg.AutoAdvance = enabled
	p.mu.Unlock()

	if p.prefs != nil {
		if err := p.prefs.SetAutoAdvance(enabled); err != nil {
			p.logger.Warn("failed to save auto-advance preference", slog.Any("error", err))
		}
	}
	return p.rebuild()
}

// OnTransitionSelected persists the chosen effect and rebuilds the carousel.
// Returns domain.ErrInvalidTransition (wrapped) for an unknown name.
func (p *Presenter) OnTransitionSelected(name string) error {
	effect, err := domain.ParseTransitionEffect(name)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.cfg.Transition == effect {
		p.mu.Unlock()
		return nil
	}
	p.cfg.Transition = effect
	p.mu.Unlock()

	if p.prefs != nil {
		if err := p.prefs.SetTransition(effect); err != nil {
			p.logger.Warn("failed to save transition preference", slog.Any("error", err))
		}
	}
	return p.rebuild()
}

// OnIntervalChanged persists a new auto-advance period and rebuilds the carousel.
func (p *Presenter) OnIntervalChanged(interval time.Duration) error {
	if interval <= 0 {
		return domain.NewValidationError("Interval", interval, "must be positive")
	}

	p.mu.Lock()
	if p.cfg.Interval == interval {
		p.mu.Unlock()
		return nil
	}
	p.cfg.Interval = interval
	p.mu.Unlock()

	if p.prefs != nil {
		if err := p.prefs.SetInterval(interval); err != nil {
			p.logger.Warn("failed to save interval preference", slog.Any("error", err))
		}
	}
	return p.rebuild()
}

// OnResetSettings forgets the saved settings and rebuilds the carousel with the configured ones.
func (p *Presenter) OnResetSettings() error {
	if p.prefs != nil {
		if err := p.prefs.ResetToDefaults(); err != nil {
			return fmt.Errorf("failed to reset preferences: %w", err)
		}
	}

	p.mu.Lock()
	changed := p.cfg != p.defaults
	p.cfg = p.defaults
	cfg := p.cfg
	p.mu.Unlock()

	p.view.SetSettings(cfg)
	if !changed {
		return nil
	}
	return p.rebuild()
}

// OnFolderOpened loads the folder's tagged audio files as carousel items.
func (p *Presenter) OnFolderOpened(path string) error {
	if p.open == nil {
		return fmt.Errorf("opening folders is not supported")
	}

	p.logger.Info("loading folder", slog.String("path", path))
	return p.Load(context.Background(), p.open(path))
}

// Event handlers

// onPageChanged updates the page counter.
func (p *Presenter) onPageChanged(event domain.Event) {
	e, ok := event.(domain.PageChangedEvent)
	if !ok || e.RealIndex < 0 {
		return
	}

	p.mu.RLock()
	total := len(p.items)
	p.mu.RUnlock()

	p.view.SetPageStatus(e.RealIndex+1, total)
}

// onTimerStarted handles TimerStartedEvent.
func (p *Presenter) onTimerStarted(_ domain.Event) {
	p.view.SetTimerState(true)
}

// onTimerStopped handles TimerStoppedEvent.
func (p *Presenter) onTimerStopped(_ domain.Event) {
	p.view.SetTimerState(false)
}

// Shutdown cleans up presenter resources.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		subs := p.subs
		p.subs = nil
		p.nav = nil
		p.mu.Unlock()

		for _, id := range subs {
			p.EventBus.Unsubscribe(id)
		}
		p.logger.Info("presenter shutdown complete")
	})
}
