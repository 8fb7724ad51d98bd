// Package logging provides structured logging for boardlint.
//
// It wraps log/slog with level parsing, text/JSON handler selection and
// default fields, so collaborators (the CLI, the history store) log
// consistently. The validation engine itself never logs: it performs no
// I/O and reports exclusively through findings.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects log level, format and destination.
type Config struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	Level string

	// Format is "text" for human-readable output, anything else is JSON.
	Format string

	// Output is "stderr" or "stdout" (the default).
	Output string
}

// Logger wraps slog.Logger with boardlint defaults.
//
// All methods are safe for concurrent use from multiple goroutines.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given configuration. The service name and
// version are attached as default fields on every record.
func New(cfg Config, version string) *Logger {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	default:
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewJSONHandler(output, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "boardlint"),
		slog.String("version", version),
	})

	return &Logger{Logger: slog.New(handler)}
}

// With returns a new Logger with additional default attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default creates a logger for use before flags are parsed: stderr,
// text format, info level.
func Default() *Logger {
	return New(Config{Level: "info", Format: "text", Output: "stderr"}, "dev")
}

// parseLevel converts a string log level to slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
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
