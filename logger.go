package main

import (
	"io"
	"log/slog"
)

// NewLogger returns a structured JSON slog.Logger with the given level.
// Source locations are added at debug level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug})
	return slog.New(h)
}
