package logger

import (
	"os"
	"strings"
)

var globalLogger *Logger

func init() {
	globalLogger = NewDefault()
	Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Getenv("ENVIRONMENT"))
}

// Configure applies textual level/format settings to the global logger.
// Unknown values leave the current setting untouched. Format "auto" picks
// text output for development and JSON everywhere else.
func Configure(level, format, environment string) {
	if lvl, ok := ParseLevel(level); ok {
		globalLogger.SetLevel(lvl)
	}
	if f, ok := ParseFormat(format, environment); ok {
		globalLogger.SetFormat(f)
	}
}

// ParseLevel parses a log level string
func ParseLevel(level string) (LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	default:
		return INFO, false
	}
}

// ParseFormat parses a log format string
func ParseFormat(format, environment string) (LogFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat, true
	case "text":
		return TextFormat, true
	case "auto":
		if environment == "" || environment == "development" || environment == "local" {
			return TextFormat, true
		}
		return JSONFormat, true
	default:
		return JSONFormat, false
	}
}

// Global returns the global logger instance
func Global() *Logger {
	return globalLogger
}

// SetGlobal replaces the global logger instance
func SetGlobal(l *Logger) {
	globalLogger = l
}

// Component returns a child of the global logger tagged with name
func Component(name string) *Logger {
	return globalLogger.WithComponent(name)
}

// Info logs an info message using the global logger
func Info(message string, fields ...Fields) {
	globalLogger.log(INFO, message, first(fields), nil)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...Fields) {
	globalLogger.log(WARN, message, first(fields), nil)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...Fields) {
	globalLogger.log(ERROR, message, first(fields), err)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...Fields) {
	globalLogger.log(FATAL, message, first(fields), err)
}
