// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package logutil

import (
	"log/slog"
	"slices"
)

// ComponentLogger provides component-scoped structured logging.
//
// The global logger is looked up on every call, so a ComponentLogger
// created at package init follows later calls to Configure or SetupLogger.
type ComponentLogger struct {
	component string
	args      []any
}

// NewLogger creates a Logger scoped to a named component.
func NewLogger(component string) *ComponentLogger {
	return &ComponentLogger{
		component: component,
		args:      []any{ComponentKey, component},
	}
}

func (l *ComponentLogger) with(args ...any) *ComponentLogger {
	return &ComponentLogger{
		component: l.component,
		args:      slices.Concat(l.args, args),
	}
}

// WithService returns a new Logger with the service context added.
func (l *ComponentLogger) WithService(name string) *ComponentLogger {
	return l.with("service", name)
}

// WithOperation returns a new Logger with the operation context added.
func (l *ComponentLogger) WithOperation(name string) *ComponentLogger {
	return l.with("operation", name)
}

// WithFields returns a new Logger with additional fields.
// Fields are provided as alternating key-value pairs.
func (l *ComponentLogger) WithFields(fields ...any) *ComponentLogger {
	return l.with(fields...)
}

// Component returns the component name for this logger.
func (l *ComponentLogger) Component() string {
	return l.component
}

// Slog returns a slog.Logger carrying this logger's context.
func (l *ComponentLogger) Slog() *slog.Logger {
	return Logger().With(l.args...)
}

// Debug logs a message at debug level.
func (l *ComponentLogger) Debug(msg string, args ...any) {
	l.Slog().Debug(msg, args...)
}

// Info logs a message at info level.
func (l *ComponentLogger) Info(msg string, args ...any) {
	l.Slog().Info(msg, args...)
}

// Warn logs a message at warn level.
func (l *ComponentLogger) Warn(msg string, args ...any) {
	l.Slog().Warn(msg, args...)
}

// Error logs a message at error level.
func (l *ComponentLogger) Error(msg string, args ...any) {
	l.Slog().Error(msg, args...)
}
