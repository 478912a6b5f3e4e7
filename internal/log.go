package internal

import (
	"log"
	"os"
)

// LogLevel orders the calculator's logging verbosity.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger is a leveled logger with an optional component prefix, so engine,
// sweep and transport lines are tellable apart in shared output.
type Logger struct {
	level  LogLevel
	prefix string
}

// NewLogger creates a logger at a fixed level.
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger reads the level from LOG_LEVEL, defaulting to info.
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LogLevelError
	case "WARN":
		level = LogLevelWarn
	case "DEBUG":
		level = LogLevelDebug
	}
	return &Logger{level: level}
}

// Named returns a logger whose lines carry the component name.
func (l *Logger) Named(component string) *Logger {
	return &Logger{level: l.level, prefix: component + ": "}
}

// Level returns the configured verbosity.
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) printf(tag, format string, args ...interface{}) {
	log.Printf(tag+" "+l.prefix+format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		l.printf("[ERROR]", format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		l.printf("[WARN]", format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		l.printf("[INFO]", format, args...)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		l.printf("[DEBUG]", format, args...)
	}
}

// DefaultLogger is the fallback for components given a nil logger.
var DefaultLogger = NewDefaultLogger()
