// Package log provides a structured logging interface for the bike-share
// feature pipeline.
//
// This package defines a minimal, slog-compatible logging interface backed by
// zerolog in production and by an in-memory logger in tests. Pipeline steps,
// the model store and the CLI all log through it with the standard attribute
// keys defined in attributes.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("pipeline").With(
//	    log.StepKey, "outlier_handler",
//	)
//	logger.Info("Step fitted",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 17379,
//	)

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// The interface supports method chaining through the With method, allowing
// for creation of contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional key-value fields.
	//
	// Example:
	//   logger.Debug("Quartiles recomputed",
	//       "column", "windspeed",
	//       "q1", 7.0015,
	//   )
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional key-value fields.
	//
	// Example:
	//   logger.Info("Pipeline fitted",
	//       log.DurationMsKey, 54,
	//       log.FeaturesKey, 19,
	//   )
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional key-value fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional key-value fields.
	// If the first field is an error, it is attached under the "error" key
	// together with its stack trace when the error carries one.
	//
	// Example:
	//   logger.Error("Transform failed",
	//       err,
	//       log.StepKey, "map_hr",
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
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

// LoggerProvider defines an interface for creating and configuring loggers.
// This interface allows for dependency injection and testing with different
// logger implementations.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
