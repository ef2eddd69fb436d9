package logger

import (
	"log/slog"
	"os"
)

// New returns a structured JSON logger writing to stdout. Level defaults to
// info; set DOSEGUARD_LOG_LEVEL=debug for request-level detail.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("DOSEGUARD_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
