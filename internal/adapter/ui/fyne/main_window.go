package fyne

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"time"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
)

// Window geometry.
const (
	WIDTH  = 480
	HEIGHT = 320
)

// WindowOptions holds the infrastructure a MainWindow builds carousels with.
type WindowOptions struct {
	Title         string
	Logger        *slog.Logger
	Scheduler     ports.Scheduler
	EventBus      ports.EventBus
	Lifecycle     *LifecycleBinder
	PageAnimation time.Duration
}

// MainWindow is the demo window implementing the UIView interface.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All decisions are in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	app    fyneapp.App
	window fyneapp.Window
	opts   WindowOptions

	// UI components
	carouselHolder *fyneapp.Container
	prevButton     *widget.Button
	nextButton     *widget.Button
	autoAdvance    *widget.Check
	transition     *widget.Select
	pageStatus     *widget.Label
	timerStatus    *widget.Label

	// Shown carousel
	mu              sync.Mutex
	current         *Carousel[domain.CarouselItem]
	removeLifecycle func()

	// Lifecycle management
	closeOnce     sync.Once
	onBeforeClose func()

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates a new main window.
func NewMainWindow(app fyneapp.App, opts WindowOptions) *MainWindow {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	w := &MainWindow{
		app:  app,
		opts: opts,
	}

	w.window = app.NewWindow(opts.Title)
	w.buildUI()

	w.window.Resize(fyneapp.NewSize(WIDTH, HEIGHT))
	w.window.SetCloseIntercept(func() {
		if w.onBeforeClose != nil {
			w.onBeforeClose()
		}
		w.Close()
	})

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before showing the window.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
	w.addShortcuts()
}

// SetOnBeforeClose registers a callback run before the window closes.
func (w *MainWindow) SetOnBeforeClose(fn func()) {
	w.onBeforeClose = fn
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	w.carouselHolder = container.NewStack(widget.NewLabelWithStyle("Nothing to show",
		fyneapp.TextAlignCenter, fyneapp.TextStyle{Italic: true}))

	w.prevButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), nil)
	w.nextButton = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), nil)

	w.autoAdvance = widget.NewCheck("Auto-advance", nil)

	names := make([]string, 0, len(domain.TransitionEffects()))
	for _, effect := range domain.TransitionEffects() {
		names = append(names, effect.String())
	}
	w.transition = widget.NewSelect(names, nil)

	w.pageStatus = widget.NewLabel("0 / 0")
	w.timerStatus = widget.NewLabel("")
	w.timerStatus.TextStyle = fyneapp.TextStyle{Italic: true}

	buttons := container.NewHBox(w.prevButton, w.pageStatus, w.nextButton)
	settings := container.NewHBox(w.autoAdvance, w.transition)
	controls := container.NewVBox(
		container.NewBorder(nil, nil, buttons, settings),
		w.timerStatus,
	)

	w.window.SetContent(container.NewPadded(container.NewBorder(nil, controls, nil, nil, w.carouselHolder)))
	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// wirePresenterHandlers connects UI events to presenter handlers.
func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	w.prevButton.OnTapped = w.presenter.OnPreviousClicked
	w.nextButton.OnTapped = w.presenter.OnNextClicked

	w.autoAdvance.OnChanged = func(enabled bool) {
		if err := w.presenter.OnAutoAdvanceToggled(enabled); err != nil {
			w.ShowNotification("Error", err.Error())
		}
	}

	w.transition.OnChanged = func(name string) {
		if err := w.presenter.OnTransitionSelected(name); err != nil {
			w.ShowNotification("Error", err.Error())
		}
	}
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	openFolder := fyneapp.NewMenuItem("Open Music Folder", w.handleOpenFolder)
	exitMenu := fyneapp.NewMenuItem("Exit", func() {
		w.window.Close()
	})

	resetSettings := fyneapp.NewMenuItem("Reset Settings", func() {
		if w.presenter == nil {
			return
		}
		if err := w.presenter.OnResetSettings(); err != nil {
			ShowError(w.window, err)
		}
	})

	return []*fyneapp.Menu{
		fyneapp.NewMenu("File", openFolder, fyneapp.NewMenuItemSeparator(), exitMenu),
		fyneapp.NewMenu("Settings", resetSettings),
	}
}

// handleOpenFolder handles the "Open Music Folder" menu action.
func (w *MainWindow) handleOpenFolder() {
	if w.presenter == nil {
		return
	}

	NewFolderDialog(w.window, func(path string) {
		if err := w.presenter.OnFolderOpened(path); err != nil {
			ShowError(w.window, err)
		}
	}, w.opts.Logger).Show()
}

// addShortcuts binds the arrow keys to page navigation.
func (w *MainWindow) addShortcuts() {
	w.window.Canvas().SetOnTypedKey(func(ev *fyneapp.KeyEvent) {
		switch ev.Name {
		case fyneapp.KeyLeft:
			w.presenter.OnPreviousClicked()
		case fyneapp.KeyRight:
			w.presenter.OnNextClicked()
		}
	})
}

// renderItem draws one carousel page: artwork when the item has some,
// captions below it.
func renderItem(item domain.CarouselItem) fyneapp.CanvasObject {
	title := widget.NewLabelWithStyle(item.Title, fyneapp.TextAlignCenter, fyneapp.TextStyle{Bold: true})
	title.Truncation = fyneapp.TextTruncateEllipsis

	captions := container.NewVBox(title)
	if item.Subtitle != "" {
		subtitle := widget.NewLabelWithStyle(item.Subtitle, fyneapp.TextAlignCenter, fyneapp.TextStyle{Italic: true})
		subtitle.Truncation = fyneapp.TextTruncateEllipsis
		captions.Add(subtitle)
	}

	if len(item.Artwork) == 0 {
		return container.NewCenter(captions)
	}

	art := canvas.NewImageFromReader(bytes.NewReader(item.Artwork), item.ID)
	art.FillMode = canvas.ImageFillContain
	return container.NewBorder(nil, captions, nil, nil, art)
}

// closeCarousel tears down the shown carousel, if any.
func (w *MainWindow) closeCarousel() {
	w.mu.Lock()
	current := w.current
	remove := w.removeLifecycle
	w.current = nil
	w.removeLifecycle = nil
	w.mu.Unlock()

	if remove != nil {
		remove()
	}
	if current != nil {
		if err := current.Close(); err != nil {
			w.opts.Logger.Warn("failed to close carousel", slog.Any("error", err))
		}
	}
}

// Carousel returns the shown carousel, or nil.
func (w *MainWindow) Carousel() *Carousel[domain.CarouselItem] {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.current
}

// ShowAndRun shows the window and runs the application.
func (w *MainWindow) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window and the shown carousel.
// It's safe to call multiple times (idempotent).
func (w *MainWindow) Close() {
	w.closeOnce.Do(func() {
		w.closeCarousel()
		w.window.Close()
	})
}

// GetWindow returns the underlying Fyne window.
func (w *MainWindow) GetWindow() fyneapp.Window {
	return w.window
}

// UIView interface implementation

// ShowItems replaces the shown carousel.
func (w *MainWindow) ShowItems(items []domain.CarouselItem, cfg domain.CarouselConfig) (Navigator, error) {
	w.closeCarousel()

	c, err := NewCarousel(items, renderItem, CarouselOptions{
		Config:        cfg,
		Logger:        w.opts.Logger.With(slog.String("component", "carousel")),
		Scheduler:     w.opts.Scheduler,
		Bus:           w.opts.EventBus,
		PageAnimation: w.opts.PageAnimation,
	})
	if err != nil {
		return nil, err
	}

	var remove func()
	if w.opts.Lifecycle != nil {
		remove = w.opts.Lifecycle.Add(c.Controller())
	}

	w.mu.Lock()
	w.current = c
	w.removeLifecycle = remove
	w.mu.Unlock()

	w.timerStatus.SetText("")
	w.carouselHolder.Objects = []fyneapp.CanvasObject{c}
	w.carouselHolder.Refresh()

	return c.Controller(), nil
}

// SetPageStatus updates the page counter.
func (w *MainWindow) SetPageStatus(current, total int) {
	w.pageStatus.SetText(fmt.Sprintf("%d / %d", current, total))
}

// SetTimerState shows whether auto-advance is currently ticking.
func (w *MainWindow) SetTimerState(running bool) {
	if running {
		w.timerStatus.SetText("auto-advancing")
	} else {
		w.timerStatus.SetText("paused")
	}
}

// SetSettings reflects cfg in the settings controls without echoing the change back.
func (w *MainWindow) SetSettings(cfg domain.CarouselConfig) {
	onAuto := w.autoAdvance.OnChanged
	w.autoAdvance.OnChanged = nil
	w.autoAdvance.SetChecked(cfg.AutoAdvance)
	w.autoAdvance.OnChanged = onAuto

	onTransition := w.transition.OnChanged
	w.transition.OnChanged = nil
	w.transition.SetSelected(cfg.Transition.String())
	w.transition.OnChanged = onTransition
}

// ShowNotification displays a system notification.
func (w *MainWindow) ShowNotification(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
}

// Verify UIView implementation
var _ UIView = (*MainWindow)(nil)
