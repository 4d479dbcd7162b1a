// internal/util/logger.go
package util

import (
	"io"
	"log/slog"
	"os"
)

var logger *slog.Logger

// InitLogger initializes the global structured logger with a JSON handler
// writing to stderr, keeping stdout free for query output.
func InitLogger(level slog.Level) {
	logger = NewLogger(os.Stderr, level)
	slog.SetDefault(logger) // Set as default logger for convenience
}

// NewLogger builds a JSON logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true, // Add file and line number to logs
		Level:     level,
	}))
}

// GetLogger returns the initialized global logger.
func GetLogger() *slog.Logger {
	if logger == nil {
		InitLogger(slog.LevelInfo) // Should be called explicitly at app start
	}
	return logger
}
