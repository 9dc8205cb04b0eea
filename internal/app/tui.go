package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/scheduler"
	"github.com/tejashwikalptaru/gocarousel/internal/adapter/ui/tui"
	"github.com/tejashwikalptaru/gocarousel/internal/carousel"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/logger"
)

// RunTUI runs the carousel in the terminal until the user quits or ctx is done.
func RunTUI(ctx context.Context, config Config, in io.Reader, out io.Writer) (err error) {
	logOut, closeLog, err := logOutput(config.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	log := logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
		Output: logOut,
	})

	items, err := itemSource(log, config).Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	bus := eventbus.NewSyncEventBus()
	bus.SetLogger(log.With(slog.String("component", "eventbus")))
	defer bus.Close()
	bus.SubscribeAll(func(e domain.Event) {
		log.Debug("carousel event", slog.String("type", string(e.Type())))
	})

	relay := tui.NewRelay(log)
	sched := scheduler.NewRealtime(log.With(slog.String("component", "scheduler")), relay.Dispatch)
	defer func() {
		if closeErr := sched.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	ctrl, err := carousel.New(log.With(slog.String("component", "carousel")), config.Carousel, sched, bus, items)
	if err != nil {
		return fmt.Errorf("failed to create carousel: %w", err)
	}
	defer func() {
		if closeErr := ctrl.Close(); closeErr != nil && !errors.Is(closeErr, domain.ErrControllerClosed) {
			log.Warn("failed to close carousel", slog.Any("error", closeErr))
		}
	}()

	program := tea.NewProgram(
		tui.NewModel(ctrl, len(items)),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithReportFocus(),
	)
	relay.Attach(program)

	log.Info("terminal carousel started", slog.Int("items", len(items)))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal carousel: %w", err)
	}
	return nil
}
