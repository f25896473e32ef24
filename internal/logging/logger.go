// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// levelEnvVar lets SOLFMT_LOG_LEVEL set the initial level of the default
// logger, so debug output can be enabled without a flag.
const levelEnvVar = "SOLFMT_LOG_LEVEL"

//nolint:gochecknoglobals // process-wide default logger
var (
	defaultLogger *log.Logger
	defaultOnce   sync.Once
)

// ParseLevel maps a level name to a charmbracelet/log level. Unknown or
// empty names fall back to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New creates a logger writing to stderr at the named level.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// NewInteractive creates a logger for user-facing command output. It writes
// to stdout so messages interleave correctly with printed results.
func NewInteractive() *log.Logger {
	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.InfoLevel)
	return logger
}

// Default returns the process-wide default logger, creating it on first use
// with the level named by SOLFMT_LOG_LEVEL.
func Default() *log.Logger {
	defaultOnce.Do(func() {
		defaultLogger = New(os.Getenv(levelEnvVar))
	})
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
func SetDefault(logger *log.Logger) {
	defaultOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel updates the level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
