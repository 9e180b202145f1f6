// Package logger builds slog loggers from deckconv configuration.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mtgtools/deckconv/pkg/config"
)

// New creates a slog.Logger according to the provided configuration.
// Invalid values fall back to Info level, text format, stderr.
func New(cfg *config.LogConfig) *slog.Logger {
	var out io.Writer
	switch strings.ToLower(cfg.Destination) {
	case "stdout":
		out = os.Stdout
	default:
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level. Valid levels:
// "debug", "info", "warn", "error" (case-insensitive); anything else
// defaults to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
