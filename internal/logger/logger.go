// Package logger provides a simple logging interface for hostwatch components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
//
// The default implementation writes through zerolog's console writer with
// colour disabled, because in daemon mode stderr is redirected into the same
// append-only file that receives the cycle reports.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DebugEnv enables debug-level output when set to any non-empty value.
const DebugEnv = "HOSTWATCH_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// zeroLogger implements Logger on top of a zerolog.Logger.
type zeroLogger struct {
	zl zerolog.Logger
}

// New creates a logger writing human-readable lines to w.
// The component is attached to every line (e.g., "daemon" or "sampler").
// Debug messages are only emitted when HOSTWATCH_DEBUG is set.
func New(w io.Writer, component string) Logger {
	level := zerolog.InfoLevel
	if os.Getenv(DebugEnv) != "" {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if component != "" {
		ctx = ctx.Str("component", component)
	}
	return &zeroLogger{zl: ctx.Logger()}
}

// NewEnvLogger creates a stderr logger that respects HOSTWATCH_DEBUG.
func NewEnvLogger(component string) Logger {
	return New(os.Stderr, component)
}

func (l *zeroLogger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *zeroLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *zeroLogger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *zeroLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Safe for use from the signal goroutine and the scheduler at the same time.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the captured messages.
func (l *BufferLogger) Snapshot() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.Messages))
	copy(out, l.Messages)
	return out
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}
