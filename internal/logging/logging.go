// Package logging provides a leveled printf-style logger on top of go-kit's
// logfmt encoder.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	levelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) filter() level.Option {
	switch l {
	case LevelDebug:
		return level.AllowDebug()
	case LevelInfo:
		return level.AllowInfo()
	case LevelWarn:
		return level.AllowWarn()
	case LevelError:
		return level.AllowError()
	default:
		return level.AllowNone()
	}
}

// Logger is a leveled logger. Lines are logfmt with ts, level and msg keys
// plus any context added through With.
type Logger struct {
	mu      sync.Mutex
	level   Level
	output  io.Writer
	context []interface{}
	base    kitlog.Logger
}

// New creates a new logger writing to stderr.
func New(level Level) *Logger {
	l := &Logger{
		level:  level,
		output: os.Stderr,
	}
	l.rebuild()
	return l
}

// rebuild recreates the go-kit chain; callers hold mu or own l exclusively.
func (l *Logger) rebuild() {
	base := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(l.output))
	base = kitlog.With(base, "ts", kitlog.DefaultTimestampUTC)
	if len(l.context) > 0 {
		base = kitlog.With(base, l.context...)
	}
	l.base = level.NewFilter(base, l.level.filter())
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// With returns a child logger that adds key/value context to every line.
// The child copies the parent's output and level at the time of the call;
// later SetOutput or SetLevel on the parent does not reach it, so configure
// the parent before deriving children.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	ctx := make([]interface{}, 0, len(l.context)+len(keyvals))
	ctx = append(ctx, l.context...)
	ctx = append(ctx, keyvals...)
	child := &Logger{
		level:   l.level,
		output:  l.output,
		context: ctx,
	}
	child.rebuild()
	return child
}

func (l *Logger) log(lv Level, format string, args ...interface{}) {
	l.mu.Lock()
	base := l.base
	l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	switch lv {
	case LevelDebug:
		_ = level.Debug(base).Log("msg", msg)
	case LevelInfo:
		_ = level.Info(base).Log("msg", msg)
	case LevelWarn:
		_ = level.Warn(base).Log("msg", msg)
	default:
		_ = level.Error(base).Log("msg", msg)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	l := &Logger{
		level:  levelNone,
		output: io.Discard,
	}
	l.rebuild()
	return l
}
