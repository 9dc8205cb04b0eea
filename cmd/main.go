// Package main is the production entry point for GoCarousel.
//
// GoCarousel shows an infinitely looping, auto-advancing carousel either in a
// Fyne window or in the terminal:
// - Event-driven communication (no callbacks)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
//
// Build:
//
//	go build -o build/gocarousel ./cmd
//
// Run:
//
//	./build/gocarousel [--tui] [--config file.yaml] [--music dir] [items...]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/gocarousel/internal/app"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/logger"
)

// runners start the two hosts. Tests replace them to inspect the resolved configuration.
type runners struct {
	gui func(config app.Config) error
	tui func(ctx context.Context, config app.Config) error
}

func defaultRunners() runners {
	return runners{
		gui: runGUI,
		tui: func(ctx context.Context, config app.Config) error {
			return app.RunTUI(ctx, config, os.Stdin, os.Stdout)
		},
	}
}

// runGUI runs the Fyne application until its window closes.
func runGUI(config app.Config) error {
	application, err := app.NewApplication(config)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	// Run application (blocks until the window closed)
	application.Run()
	return nil
}

// NewRootCmd creates the root command. Flags override the configuration file.
func NewRootCmd(run runners) *cobra.Command {
	var (
		configPath  string
		musicDir    string
		transition  string
		logLevel    string
		interval    time.Duration
		useTUI      bool
		noAutoPlay  bool
		maxItems    int
		pageHeight  float32
		padding     float32
		cornerRound float32
	)

	cmd := &cobra.Command{
		Use:   "gocarousel [items...]",
		Short: "An infinitely looping, auto-advancing carousel",
		Long: "GoCarousel pages through the given captions, or the tagged audio files of a\n" +
			"music folder, in a window or in the terminal.",
		Version:       app.GetVersionInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("music") {
				config.MusicDir = musicDir
			}
			if flags.Changed("max-items") {
				config.MaxItems = maxItems
			}
			if flags.Changed("transition") {
				effect, err := domain.ParseTransitionEffect(transition)
				if err != nil {
					return err
				}
				config.Carousel.Transition = effect
			}
			if flags.Changed("interval") {
				config.Carousel.Interval = interval
			}
			if flags.Changed("no-auto") {
				config.Carousel.AutoAdvance = !noAutoPlay
			}
			if flags.Changed("height") {
				config.Carousel.PageHeight = pageHeight
			}
			if flags.Changed("padding") {
				config.Carousel.HorizontalPadding = padding
			}
			if flags.Changed("radius") {
				config.Carousel.CornerRadius = cornerRound
			}
			if flags.Changed("log-level") {
				level, ok := logger.ParseLevel(logLevel)
				if !ok {
					return fmt.Errorf("unknown log level %q", logLevel)
				}
				config.LogLevel = level
			}
			if len(args) > 0 {
				config.Items = args
			}

			if err := config.Carousel.Validate(); err != nil {
				return err
			}

			if useTUI {
				return run.tui(cmd.Context(), config)
			}
			return run.gui(config)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flags.BoolVar(&useTUI, "tui", false, "run in the terminal instead of a window")
	flags.StringVarP(&musicDir, "music", "m", "", "folder of tagged audio files to page through")
	flags.IntVar(&maxItems, "max-items", 0, "maximum number of audio files to read (0 for all)")
	flags.StringVarP(&transition, "transition", "t", "", "page transition: none, rotation3d, opacity or scale")
	flags.DurationVarP(&interval, "interval", "i", domain.DefaultInterval, "auto-advance period")
	flags.BoolVar(&noAutoPlay, "no-auto", false, "disable auto-advance")
	flags.Float32Var(&pageHeight, "height", domain.DefaultPageHeight, "page height")
	flags.Float32Var(&padding, "padding", domain.DefaultHorizontalPadding, "horizontal page padding")
	flags.Float32Var(&cornerRound, "radius", domain.DefaultCornerRadius, "page corner radius")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	return cmd
}

func main() {
	if err := NewRootCmd(defaultRunners()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
