package internal

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

var levelNames = map[LogLevel]string{
	LogLevelError: "ERROR",
	LogLevelWarn:  "WARN",
	LogLevelInfo:  "INFO",
	LogLevelDebug: "DEBUG",
	LogLevelTrace: "TRACE",
}

// String returns the level name as accepted by ParseLogLevel
func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLogLevel parses ERROR, WARN, INFO, DEBUG or TRACE, case-insensitively
func ParseLogLevel(s string) (LogLevel, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for level, name := range levelNames {
		if name == want {
			return level, nil
		}
	}
	return LogLevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger provides leveled logging
type Logger struct {
	level  LogLevel
	prefix string
	out    *log.Logger
}

// NewLogger creates a new logger with the specified level
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level, out: log.Default()}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	level := LogLevelInfo // default
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if parsed, err := ParseLogLevel(levelStr); err == nil {
			level = parsed
		}
	}
	return NewLogger(level)
}

// NewDiscardLogger returns a logger that drops everything, for tests
func NewDiscardLogger() *Logger {
	return &Logger{level: LogLevelError, out: log.New(io.Discard, "", 0)}
}

// Named returns a copy of the logger that tags every line with component
func (l *Logger) Named(component string) *Logger {
	cp := *l
	cp.prefix = component
	return &cp
}

// WithOutput returns a copy of the logger writing to w
func (l *Logger) WithOutput(w io.Writer) *Logger {
	cp := *l
	cp.out = log.New(w, "", log.LstdFlags)
	return &cp
}

func (l *Logger) logf(level LogLevel, format string, args []interface{}) {
	if l == nil || l.level < level {
		return
	}
	tag := "[" + level.String() + "] "
	if l.prefix != "" {
		tag += l.prefix + ": "
	}
	l.out.Printf(tag+format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, format, args)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, format, args)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogLevelInfo, format, args)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, format, args)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.logf(LogLevelTrace, format, args)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
