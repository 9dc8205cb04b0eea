package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneui "github.com/tejashwikalptaru/gocarousel/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
	"github.com/tejashwikalptaru/gocarousel/internal/logger"
	"gopkg.in/yaml.v3"
)

// DemoItems are shown when neither items nor a music folder are configured.
var DemoItems = []string{"1", "2", "3", "4"}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// Carousel is the configuration of every carousel the application builds
	Carousel domain.CarouselConfig

	// PageAnimation is the duration of a page turn in the Fyne host
	PageAnimation time.Duration

	// Items are text captions to page through
	Items []string

	// MusicDir, when set, is scanned for tagged audio files instead of Items
	MusicDir string

	// MaxItems caps the number of items read from MusicDir (0 for no cap)
	MaxItems int

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// LogFormat is "text" or "json"
	LogFormat string

	// LogFile receives logs in terminal mode, where stderr would garble the screen.
	// Empty discards them.
	LogFile string

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:         "com.gocarousel.app",
		AppName:       "GoCarousel",
		Carousel:      domain.DefaultCarouselConfig(),
		PageAnimation: fyneui.DefaultPageAnimation,
		LogLevel:      loggerCfg.Level,
		LogFormat:     loggerCfg.Format,
	}
}

// fileConfig is the layout of a YAML configuration file. Absent keys keep
// their defaults.
type fileConfig struct {
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
	LogFile   string   `yaml:"log_file"`
	MusicDir  string   `yaml:"music_dir"`
	MaxItems  int      `yaml:"max_items"`
	Items     []string `yaml:"items"`

	Carousel struct {
		AutoAdvance       *bool          `yaml:"auto_advance"`
		Interval          *time.Duration `yaml:"interval"`
		PageHeight        *float32       `yaml:"page_height"`
		HorizontalPadding *float32       `yaml:"horizontal_padding"`
		CornerRadius      *float32       `yaml:"corner_radius"`
		Transition        *string        `yaml:"transition"`
		CorrectionDelay   *time.Duration `yaml:"correction_delay"`
		PageAnimation     *time.Duration `yaml:"page_animation"`
	} `yaml:"carousel"`
}

// LoadConfig reads configuration from the given path, falling back to defaults when missing.
// An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := file.apply(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// apply overlays the values present in the file on cfg.
func (f fileConfig) apply(cfg *Config) error {
	if f.LogLevel != "" {
		level, ok := logger.ParseLevel(f.LogLevel)
		if !ok {
			return domain.NewValidationError("log_level", f.LogLevel, "unknown level")
		}
		cfg.LogLevel = level
	}
	if f.LogFormat != "" {
		cfg.LogFormat = f.LogFormat
	}
	if f.LogFile != "" {
		cfg.LogFile = f.LogFile
	}
	if f.MusicDir != "" {
		cfg.MusicDir = f.MusicDir
	}
	if f.MaxItems > 0 {
		cfg.MaxItems = f.MaxItems
	}
	if len(f.Items) > 0 {
		cfg.Items = f.Items
	}

	c := f.Carousel
	if c.AutoAdvance != nil {
		cfg.Carousel.AutoAdvance = *c.AutoAdvance
	}
	if c.Interval != nil {
		cfg.Carousel.Interval = *c.Interval
	}
	if c.PageHeight != nil {
		cfg.Carousel.PageHeight = *c.PageHeight
	}
	if c.HorizontalPadding != nil {
		cfg.Carousel.HorizontalPadding = *c.HorizontalPadding
	}
	if c.CornerRadius != nil {
		cfg.Carousel.CornerRadius = *c.CornerRadius
	}
	if c.Transition != nil {
		effect, err := domain.ParseTransitionEffect(*c.Transition)
		if err != nil {
			return err
		}
		cfg.Carousel.Transition = effect
	}
	if c.CorrectionDelay != nil {
		cfg.Carousel.CorrectionDelay = *c.CorrectionDelay
	}
	if c.PageAnimation != nil {
		cfg.PageAnimation = *c.PageAnimation
	}

	return cfg.Carousel.Validate()
}
