// Package logging provides the slog.Logger factory used by gh-reporank.
//
// Log format is controlled by the LOG_FORMAT environment variable:
//
//	LOG_FORMAT=text    human-readable key=value pairs (default)
//	LOG_FORMAT=json    structured JSON
//
// Log level is controlled by LOG_LEVEL (debug, info, warn, error; default warn).
// The --verbose flag lowers the level to debug.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a logger writing to w, configured from environment variables.
func New(w io.Writer, verbose bool) *slog.Logger {
	return NewWithSettings(w, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), verbose)
}

// NewWithSettings returns a logger for explicit level and format strings.
func NewWithSettings(w io.Writer, level, format string, verbose bool) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
