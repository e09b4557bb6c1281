// Package logging provides structured JSON logging for CaseClipper.
//
// The TUI owns the terminal, so logs never go to stderr while it runs.
// They are written to debug.log under the configuration directory, rotated
// by size. Commands that do not draw a UI may log to any io.Writer.
package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// Log levels accepted by logging.level.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogFileName is the name of the debug log inside the log directory.
const LogFileName = "debug.log"

// Logger writes JSON log entries. Child loggers created with With or
// WithComponent share the parent's sink. It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	sink   *sink
}

// sink is the shared output of a logger family.
type sink struct {
	mu     sync.Mutex
	closer io.Closer
}

// New creates a Logger writing to w at the given level. Unknown levels
// fall back to INFO.
func New(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)})
	l := &Logger{logger: slog.New(handler), sink: &sink{}}
	if c, ok := w.(io.Closer); ok {
		l.sink.closer = c
	}
	return l
}

// NewFileLogger creates a Logger writing to {dir}/debug.log, rotated
// according to cfg.
func NewFileLogger(dir, level string, cfg RotationConfig) (*Logger, error) {
	w, err := NewRotatingWriter(filepath.Join(dir, LogFileName), cfg)
	if err != nil {
		return nil, err
	}
	return New(w, level), nil
}

// NopLogger returns a Logger that discards everything.
func NopLogger() *Logger {
	return New(io.Discard, LevelError)
}

// With returns a child Logger that adds the key-value pairs to every entry.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	return &Logger{logger: l.logger.With(args...), sink: l.sink}
}

// WithComponent tags every entry with component=name, e.g. "tui",
// "watcher" or "config".
func (l *Logger) WithComponent(name string) *Logger {
	return l.With("component", name)
}

// Debug logs at DEBUG level. args are alternating keys and values.
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info logs at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Log(context.Background(), slog.LevelError, msg, args...)
}

// Close closes the underlying sink if it is closable. Closing any logger in
// a family closes the shared sink; closing twice is a no-op.
func (l *Logger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.closer == nil {
		return nil
	}
	err := l.sink.closer.Close()
	l.sink.closer = nil
	return err
}

func slogLevel(level string) slog.Level {
	switch ParseLevel(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel normalizes level to one of the Level constants. Unknown
// values become LevelInfo.
func ParseLevel(level string) string {
	switch l := strings.ToUpper(strings.TrimSpace(level)); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l
	case "WARNING":
		return LevelWarn
	default:
		return LevelInfo
	}
}

// IsValidLevel reports whether level names a known level, ignoring case.
func IsValidLevel(level string) bool {
	l := strings.ToUpper(strings.TrimSpace(level))
	for _, v := range ValidLevels() {
		if l == v {
			return true
		}
	}
	return l == "WARNING"
}

// ValidLevels returns the accepted level names.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
