package batch

import (
	"fmt"
	"log/slog"
)

// Logger defines the logging hooks used by the harness. Implementations can
// route messages anywhere; if none is provided, no logging occurs.
type Logger interface {
	// Debug logs a debug-level message, formatted with fmt.Sprintf.
	Debug(format string, args ...any)

	// Info logs an info-level message.
	Info(format string, args ...any)

	// Warn logs a warning-level message.
	Warn(format string, args ...any)

	// Error logs an error-level message.
	Error(format string, args ...any)
}

// NoOpLogger discards all log messages. It is the default logger when none
// is specified.
type NoOpLogger struct{}

// Debug implements the Logger interface.
func (NoOpLogger) Debug(format string, args ...any) {}

// Info implements the Logger interface.
func (NoOpLogger) Info(format string, args ...any) {}

// Warn implements the Logger interface.
func (NoOpLogger) Warn(format string, args ...any) {}

// Error implements the Logger interface.
func (NoOpLogger) Error(format string, args ...any) {}

// SlogLogger adapts a *slog.Logger to the Logger interface.
type SlogLogger struct {
	L *slog.Logger
}

// NewSlogLogger returns a SlogLogger writing to l, or to slog.Default()
// when l is nil.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return &SlogLogger{L: l}
}

// Debug implements the Logger interface.
func (s *SlogLogger) Debug(format string, args ...any) {
	s.L.Debug(fmt.Sprintf(format, args...))
}

// Info implements the Logger interface.
func (s *SlogLogger) Info(format string, args ...any) {
	s.L.Info(fmt.Sprintf(format, args...))
}

// Warn implements the Logger interface.
func (s *SlogLogger) Warn(format string, args ...any) {
	s.L.Warn(fmt.Sprintf(format, args...))
}

// Error implements the Logger interface.
func (s *SlogLogger) Error(format string, args ...any) {
	s.L.Error(fmt.Sprintf(format, args...))
}
