// Package util holds the logging helpers shared by all packages.
package util

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	// LevelTrace sits below Debug. Per-item load records use it.
	LevelTrace slog.Level = slog.LevelDebug - 4
)

// Trace logs a record at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// TraceEnabled tells if the default logger would emit trace records. Callers
// use it to skip building expensive attributes.
func TraceEnabled() bool {
	return slog.Default().Enabled(context.Background(), LevelTrace)
}

// ParseLevel converts a level name from the configuration.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "trace":
		return LevelTrace, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level %q", name)
	}
}

// SetupLogger installs a text handler on stderr as the default logger.
func SetupLogger(level slog.Level) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}
