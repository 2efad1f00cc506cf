// Package logging hands out pion leveled loggers for depthframe packages.
// Levels are selected through the usual PION_LOG_* environment variables,
// e.g. PION_LOG_DEBUG=depthframe/frame.
package logging

import (
	"github.com/pion/logging"
)

var loggerFactory logging.LoggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a logger for scope from the default factory.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}

// NewLoggerFrom returns a logger for scope from f, falling back to the default
// factory when f is nil.
func NewLoggerFrom(f logging.LoggerFactory, scope string) logging.LeveledLogger {
	if f == nil {
		return NewLogger(scope)
	}
	return f.NewLogger(scope)
}
