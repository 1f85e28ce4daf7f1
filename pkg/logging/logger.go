// Package logging provides the leveled key/value logger used across ocrview.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel maps a level name to a Level, defaulting to LevelInfo
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides structured logging for the viewer
type Logger struct {
	prefix string
	min    Level
	out    io.Writer
	logger *log.Logger
}

// NewLogger creates a new logger with a prefix writing to stderr
func NewLogger(prefix string) *Logger {
	return New(os.Stderr, prefix, LevelInfo)
}

// New creates a logger writing to w that drops lines below min
func New(w io.Writer, prefix string, min Level) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		prefix: prefix,
		min:    min,
		out:    w,
		logger: log.New(w, fmt.Sprintf("[%s] ", prefix), log.LstdFlags),
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(io.Discard, "discard", LevelError+1)
}

// With returns a logger sharing the output and level with a new prefix
func (l *Logger) With(prefix string) *Logger {
	if l == nil {
		return nil
	}
	return New(l.out, prefix, l.min)
}

// SetLevel changes the minimum level
func (l *Logger) SetLevel(min Level) {
	if l != nil {
		l.min = min
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.logWithKV(LevelDebug, msg, keysAndValues...)
}

// Info logs an informational message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.logWithKV(LevelInfo, msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.logWithKV(LevelWarn, msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.logWithKV(LevelError, msg, keysAndValues...)
}

// A nil logger is valid and silent.
func (l *Logger) logWithKV(level Level, msg string, keysAndValues ...interface{}) {
	if l == nil || level < l.min {
		return
	}
	var kv strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&kv, " %v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&kv, " %v=?", keysAndValues[i])
		}
	}
	l.logger.Printf("[%s] %s%s", level, msg, kv.String())
}
