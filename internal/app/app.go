// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/source"
	fyneui "github.com/tejashwikalptaru/gocarousel/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/gocarousel/internal/logger"
	"github.com/tejashwikalptaru/gocarousel/internal/ports"
	"github.com/tejashwikalptaru/gocarousel/internal/service"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	config  Config
	fyneApp fyne.App

	// Infrastructure
	eventBus  ports.EventBus
	scheduler *scheduler.Realtime
	lifecycle *fyneui.LifecycleBinder

	// Repositories
	preferencesRepo ports.PreferencesRepository

	// Services
	preferenceService *service.PreferenceService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{config: config}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 3: Create an event bus
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	// Step 4: Timers fire on the Fyne thread
	app.scheduler = scheduler.NewRealtime(app.logger.With(slog.String("component", "scheduler")), fyne.Do)

	// Step 5: Create repositories and services
	app.preferencesRepo = memory.NewPreferencesRepository(app.fyneApp.Preferences())
	app.preferenceService = service.NewPreferenceService(
		app.logger.With(slog.String("component", "preferences")),
		app.preferencesRepo,
	)

	// Step 6: Bind the application lifecycle
	app.lifecycle = fyneui.BindLifecycle(app.logger.With(slog.String("component", "lifecycle")), app.fyneApp.Lifecycle())

	// Step 7: Create UI
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, fyneui.WindowOptions{
		Title:         config.AppName,
		Logger:        app.logger,
		Scheduler:     app.scheduler,
		EventBus:      app.eventBus,
		Lifecycle:     app.lifecycle,
		PageAnimation: config.PageAnimation,
	})

	// Step 8: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.eventBus,
		app.preferenceService,
		config.Carousel,
		func(path string) ports.ItemSource {
			return source.NewTags(app.logger.With(slog.String("component", "source")), path, config.MaxItems)
		},
		app.mainWindow,
	)
	app.mainWindow.SetPresenter(app.presenter)

	// Step 9: Show the initial items
	if err := app.presenter.Load(context.Background(), itemSource(app.logger, config)); err != nil {
		// Non-fatal - the user can still open a folder
		app.logger.Warn("failed to load initial items", slog.Any("error", err))
		app.mainWindow.ShowNotification("No items", err.Error())
	}

	return app, nil
}

// itemSource picks the configured source: a music folder, the given
// captions, or the demo captions.
func itemSource(log *slog.Logger, config Config) ports.ItemSource {
	switch {
	case config.MusicDir != "":
		return source.NewTags(log.With(slog.String("component", "source")), config.MusicDir, config.MaxItems)
	case len(config.Items) > 0:
		return source.NewStatic(config.Items...)
	default:
		return source.NewStatic(DemoItems...)
	}
}

// Run starts the application.
// This is called from main.go after the application is created.
func (a *Application) Run() {
	a.logger.Info("GoCarousel started")

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully shuts down the application.
// It is safe to call more than once; later calls return the first result.
func (a *Application) Shutdown() error {
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		if a.presenter != nil {
			a.presenter.Shutdown()
		}
		if a.mainWindow != nil {
			a.mainWindow.Close()
		}

		if a.scheduler != nil {
			if err := a.scheduler.Close(); err != nil {
				a.shutdownErr = fmt.Errorf("failed to close scheduler: %w", err)
			}
		}
		if a.eventBus != nil {
			if err := a.eventBus.Close(); err != nil && a.shutdownErr == nil {
				a.shutdownErr = fmt.Errorf("failed to close event bus: %w", err)
			}
		}

		a.logger.Info("application shutdown complete")
	})
	return a.shutdownErr
}

// GetEventBus returns the application event bus.
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetFyneApp returns the Fyne application.
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}

// GetPresenter returns the main window presenter.
func (a *Application) GetPresenter() *fyneui.Presenter {
	return a.presenter
}

// GetMainWindow returns the main window.
func (a *Application) GetMainWindow() *fyneui.MainWindow {
	return a.mainWindow
}

// logOutput opens the terminal-mode log destination.
func logOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return io.Discard, func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}
