package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the package-level structured logger.
	Logger *slog.Logger = newLogger(os.Stderr, false, slog.LevelInfo)

	// Verbose reports whether debug logging is enabled.
	Verbose bool

	jsonOutput bool
)

func newLogger(w io.Writer, jsonFormat bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup configures the package logger. A nil writer logs to stderr.
func Setup(verbose, jsonFormat bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	Verbose, jsonOutput = verbose, jsonFormat

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	Logger = newLogger(w, jsonFormat, level)
}

// ToFile redirects the logger to path, appending, and keeps the current
// verbosity and format. The returned func closes the file.
func ToFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	Setup(Verbose, jsonOutput, f)
	return f.Close, nil
}

// Silence drops all records until the next Setup. The picker uses it while
// it owns the terminal.
func Silence() {
	Logger = newLogger(io.Discard, jsonOutput, slog.LevelError+1)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { Logger.Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { Logger.Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { Logger.Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { Logger.Error(msg, args...) }

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
