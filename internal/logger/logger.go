// Package logger provides the levelled, component-tagged logger used by the
// capture binaries. Output is one line per entry, either human-readable text
// or JSON.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log entry.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	// CRITICAL marks data the pipeline had to invent to keep going.
	CRITICAL
)

// String returns the upper-case name of the level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Format is the output encoding.
type Format int

const (
	TextFormat Format = iota
	JSONFormat
)

// Fields are structured key/value pairs attached to an entry.
type Fields map[string]interface{}

// Entry is a single structured log line.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Component string `json:"component,omitempty"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Config holds logger configuration.
type Config struct {
	Level     Level
	Format    Format
	Output    io.Writer
	Component string
}

// Logger writes levelled entries to an io.Writer. It is safe for concurrent use.
type Logger struct {
	mu        *sync.Mutex
	level     Level
	format    Format
	output    io.Writer
	component string
	fields    Fields
	now       func() time.Time
}

// New creates a logger. A nil Output writes to stderr.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		mu:        &sync.Mutex{},
		level:     cfg.Level,
		format:    cfg.Format,
		output:    cfg.Output,
		component: cfg.Component,
		now:       time.Now,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(Config{Level: CRITICAL + 1, Output: io.Discard})
}

// OpenFile opens path for appending, creating parent directories as needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// WithComponent returns a logger that tags entries with component.
// It shares the parent's output.
func (l *Logger) WithComponent(component string) *Logger {
	c := *l
	c.component = component
	return &c
}

// WithFields returns a logger that attaches fields to every entry.
func (l *Logger) WithFields(fields Fields) *Logger {
	c := *l
	c.fields = make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		c.fields[k] = v
	}
	for k, v := range fields {
		c.fields[k] = v
	}
	return &c
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool { return level >= l.level }

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}

	merged := l.fields
	if len(fields) > 0 {
		merged = make(Fields, len(l.fields)+len(fields))
		for k, v := range l.fields {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}
	}

	entry := Entry{
		Timestamp: l.now().Format("2006-01-02 15:04:05"),
		Level:     level.String(),
		Message:   message,
		Component: l.component,
		File:      filepath.Base(file),
		Line:      line,
		Fields:    merged,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	var out string
	switch l.format {
	case JSONFormat:
		b, _ := json.Marshal(entry)
		out = string(b) + "\n"
	default:
		out = formatText(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.output, out)
}

// formatText renders "<time> - LEVEL - [component] message k=v ... (file:line)".
func formatText(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s - ", e.Timestamp, e.Level)
	if e.Component != "" {
		fmt.Fprintf(&b, "[%s] ", e.Component)
	}
	b.WriteString(e.Message)

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
		}
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " error=%q", e.Error)
	}
	if e.File != "" && e.Line > 0 {
		fmt.Fprintf(&b, " (%s:%d)", e.File, e.Line)
	}
	b.WriteByte('\n')
	return b.String()
}

func firstFields(fields []Fields) Fields {
	if len(fields) > 0 {
		return fields[0]
	}
	return nil
}

// Debug logs at DEBUG.
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(DEBUG, message, firstFields(fields), nil)
}

// Info logs at INFO.
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(INFO, message, firstFields(fields), nil)
}

// Warn logs at WARN.
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(WARN, message, firstFields(fields), nil)
}

// Error logs at ERROR with an optional cause.
func (l *Logger) Error(message string, err error, fields ...Fields) {
	l.log(ERROR, message, firstFields(fields), err)
}

// Critical logs at CRITICAL with an optional cause.
func (l *Logger) Critical(message string, err error, fields ...Fields) {
	l.log(CRITICAL, message, firstFields(fields), err)
}

// Debugf logs a formatted message at DEBUG.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DEBUG, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs a formatted message at INFO.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted message at WARN.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs a formatted message at ERROR.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, args...), nil, nil)
}

// Criticalf logs a formatted message at CRITICAL.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.log(CRITICAL, fmt.Sprintf(format, args...), nil, nil)
}

// ParseLevel parses a level name. "warning" is accepted for WARN.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "CRITICAL":
		return CRITICAL, nil
	default:
		return INFO, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseFormat parses "text" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	default:
		return TextFormat, fmt.Errorf("unknown log format %q", s)
	}
}
