// Package logging provides the structured logger used by all cquery
// subsystems.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	// DebugLevel for debug messages
	DebugLevel Level = iota
	// InfoLevel for informational messages
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name into a Level. Unknown names map to
// InfoLevel.
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Format represents the output format for logs.
type Format string

const (
	// JSONFormat outputs logs as JSON, one object per line
	JSONFormat Format = "json"
	// HumanFormat outputs logs in human-readable format
	HumanFormat Format = "human"
)

// Fields carries structured key/value context for a log message.
type Fields map[string]interface{}

// Logger provides leveled, structured logging. It is safe for
// concurrent use.
type Logger struct {
	mu     sync.Mutex
	writer io.Writer
	level  Level
	format Format
	base   Fields
}

// New creates a logger writing to w. A nil w writes to stderr.
func New(w io.Writer, level Level, format Format) *Logger {
	if w == nil {
		w = os.Stderr
	}
	if format != JSONFormat {
		format = HumanFormat
	}
	return &Logger{writer: w, level: level, format: format}
}

// NewDefault returns a human-format info-level logger on stderr.
func NewDefault() *Logger {
	return New(os.Stderr, InfoLevel, HumanFormat)
}

// With returns a child logger that attaches fields to every message.
func (l *Logger) With(fields Fields) *Logger {
	merged := make(Fields, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{writer: l.writer, level: l.level, format: l.format, base: merged}
}

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
}

func (l *Logger) log(level Level, message string, fields Fields) {
	if level < l.level {
		return
	}

	merged := fields
	if len(l.base) > 0 {
		merged = make(Fields, len(l.base)+len(fields))
		for k, v := range l.base {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}
	}

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Fields:    merged,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.format == JSONFormat {
		l.writeJSON(e)
	} else {
		l.writeHuman(e)
	}
}

func (l *Logger) writeJSON(e entry) {
	data, err := json.Marshal(e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal log entry: %v\n", err)
		return
	}
	fmt.Fprintln(l.writer, string(data))
}

func (l *Logger) writeHuman(e entry) {
	fmt.Fprintf(l.writer, "%s [%s] %s", e.Timestamp, e.Level, e.Message)
	if len(e.Fields) > 0 {
		// Sorted so human output is stable.
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprint(l.writer, " |")
		for _, k := range keys {
			fmt.Fprintf(l.writer, " %s=%v", k, e.Fields[k])
		}
	}
	fmt.Fprintln(l.writer)
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields Fields) { l.log(DebugLevel, message, fields) }

// Info logs an info message.
func (l *Logger) Info(message string, fields Fields) { l.log(InfoLevel, message, fields) }

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields Fields) { l.log(WarnLevel, message, fields) }

// Error logs an error message.
func (l *Logger) Error(message string, fields Fields) { l.log(ErrorLevel, message, fields) }
