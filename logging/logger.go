// Package logging provides the application's structured logger: a thin
// package-level wrapper over log/slog.
package logging

import (
	"log/slog"
	"os"
)

var logger *slog.Logger

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel changes the logging level.
func SetLevel(level slog.Level) {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetJSONOutput switches to JSON format output.
func SetJSONOutput(level slog.Level) {
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Debug logs internal component behavior.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs user-facing operations.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs conditions that should be monitored.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs logical bugs that shouldn't happen.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// Fatal logs at ERROR level and exits.
func Fatal(msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}
