// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package logutil provides a structured logging abstraction built on top of slog.
//
// It wraps the standard library's slog package with convenience functions,
// component-scoped loggers and environment-aware output profiles.
//
// # Basic Usage
//
//	// Pick the profile for the running application (typically in main.go)
//	if err := logutil.Configure(appenv.Default(), platform.IsCF()); err != nil {
//		return err
//	}
//
//	// Log messages at different levels
//	logutil.Debug("resolving credentials", "spec", spec)
//	logutil.Info("server started", "port", port)
//	logutil.Error("export failed", "error", err)
//
// # Profiles
//
//   - local: timestamped lines on stdout, colored when stdout is a terminal
//   - cf: untimestamped lines on stdout
//   - test: every record in test.log, warnings and errors also on stderr
//
// In the test profile SuppressTestStderr(true) keeps expected failures out
// of the test runner's output.
//
// # Debug Mode
//
// Debug logging can be enabled in two ways:
//   - Pass debug=true to SetupLogger
//   - Set GARAGE_DEBUG=true environment variable
//
// # Structured Logging
//
// When structured=true is passed to SetupLogger, logs are output as JSON:
//
//	{"time":"2024-01-15T10:30:00Z","level":"INFO","msg":"operation completed","duration":"1.5s"}
//
// # HTTP
//
// RequestLogger is middleware that logs one line per request:
//
//	r := chi.NewRouter()
//	r.Use(logutil.RequestLogger(logutil.RequestLoggerOptions{}))
package logutil
