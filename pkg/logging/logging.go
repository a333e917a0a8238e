// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup(os.Getenv("LOG_LEVEL"))  // debug, info, warn, error (default: info)
//	logging.SetupWithLevel(slog.LevelDebug)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a colored default logger at the named level.
func Setup(level string) {
	SetupWithLevel(ParseLevel(level))
}

// SetupWithLevel installs a colored default logger on stderr.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level)))
}

// NewHandler returns a tint handler writing to w.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
	})
}

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
