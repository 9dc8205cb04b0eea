package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/gocarousel/internal/app"
	"github.com/tejashwikalptaru/gocarousel/internal/domain"
)

// recorder captures which host ran and with what configuration.
type recorder struct {
	host   string
	config app.Config
}

func (r *recorder) runners() runners {
	return runners{
		gui: func(config app.Config) error {
			r.host, r.config = "gui", config
			return nil
		},
		tui: func(_ context.Context, config app.Config) error {
			r.host, r.config = "tui", config
			return nil
		},
	}
}

// executeCommandC executes a cobra command and captures its output.
func executeCommandC(root *cobra.Command, args ...string) (string, error) {
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootHelp(t *testing.T) {
	rec := &recorder{}
	out, err := executeCommandC(NewRootCmd(rec.runners()), "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--tui")
	assert.Empty(t, rec.host)
}

func TestRoot_DefaultsToGUI(t *testing.T) {
	rec := &recorder{}
	_, err := executeCommandC(NewRootCmd(rec.runners()))
	require.NoError(t, err)

	assert.Equal(t, "gui", rec.host)
	assert.Equal(t, domain.DefaultCarouselConfig(), rec.config.Carousel)
	assert.Empty(t, rec.config.Items)
}

func TestRoot_TUIWithItemsAndFlags(t *testing.T) {
	rec := &recorder{}
	_, err := executeCommandC(NewRootCmd(rec.runners()),
		"--tui", "-t", "opacity", "-i", "5s", "--no-auto", "--height", "90", "red", "green")
	require.NoError(t, err)

	assert.Equal(t, "tui", rec.host)
	assert.Equal(t, []string{"red", "green"}, rec.config.Items)
	assert.Equal(t, domain.TransitionOpacity, rec.config.Carousel.Transition)
	assert.Equal(t, 5*time.Second, rec.config.Carousel.Interval)
	assert.False(t, rec.config.Carousel.AutoAdvance)
	assert.Equal(t, float32(90), rec.config.Carousel.PageHeight)
}

func TestRoot_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("music_dir: /from/file\ncarousel:\n  transition: none\n  interval: 7s\n"), 0o644))

	rec := &recorder{}
	_, err := executeCommandC(NewRootCmd(rec.runners()), "--config", path, "--music", "/from/flag")
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", rec.config.MusicDir)
	assert.Equal(t, domain.TransitionNone, rec.config.Carousel.Transition)
	assert.Equal(t, 7*time.Second, rec.config.Carousel.Interval)
}

func TestRoot_InvalidFlags(t *testing.T) {
	tests := [][]string{
		{"--transition", "spin"},
		{"--interval", "0s"},
		{"--padding=-1"},
		{"--log-level", "chatty"},
	}

	for _, args := range tests {
		rec := &recorder{}
		_, err := executeCommandC(NewRootCmd(rec.runners()), args...)
		assert.Error(t, err, "args %v", args)
		assert.Empty(t, rec.host, "args %v", args)
	}
}
