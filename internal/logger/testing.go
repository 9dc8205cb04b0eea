package logger

import (
	"log/slog"
	"os"
)

// TestLevelEnv names the environment variable that sets the level of test loggers.
const TestLevelEnv = "GOCAROUSEL_TEST_LOG"

// NewTestLogger returns the logger tests hand to components. It only shows
// warnings and errors unless GOCAROUSEL_TEST_LOG names a lower level,
// e.g. GOCAROUSEL_TEST_LOG=debug go test ./internal/carousel.
func NewTestLogger() *slog.Logger {
	level := slog.LevelWarn
	if l, ok := ParseLevel(os.Getenv(TestLevelEnv)); ok {
		level = l
	}

	return NewLogger(Config{
		Level:  level,
		Format: "text",
		Output: os.Stdout,
	})
}
