package logutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jongio/garage-core/appenv"
)

// DefaultTestLogFile is where the test profile writes every record.
const DefaultTestLogFile = "test.log"

// Profile selects where and how log lines are written.
type Profile int

const (
	// ProfileLocal writes timestamped, colorized lines to stdout.
	ProfileLocal Profile = iota
	// ProfileCF writes untimestamped lines to stdout; the platform adds
	// its own timestamps.
	ProfileCF
	// ProfileTest writes every record to a file and warnings to stderr.
	ProfileTest
)

// String returns the profile name.
func (p Profile) String() string {
	switch p {
	case ProfileCF:
		return "cf"
	case ProfileTest:
		return "test"
	default:
		return "local"
	}
}

// ProfileFor picks the profile for an application: test runs use the test
// profile, then Cloud Foundry, then local.
func ProfileFor(app *appenv.Context, onCF bool) Profile {
	switch {
	case app.IsTest():
		return ProfileTest
	case onCF:
		return ProfileCF
	default:
		return ProfileLocal
	}
}

// DefaultLevel is info in production and debug otherwise.
func DefaultLevel(app *appenv.Context) Level {
	if app.IsProd() {
		return LevelInfo
	}
	return LevelDebug
}

// Options overrides the destinations used by ConfigureProfile.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// TestLogFile defaults to DefaultTestLogFile in the working directory.
	TestLogFile string
	// Level is the minimum level. The zero value is LevelDebug.
	Level Level
}

// testLoggers holds the two loggers of the test profile.
type testLoggers struct {
	file       *os.File
	full       *slog.Logger
	suppressed *slog.Logger
}

var active *testLoggers

// Configure installs the profile and default level for app.
func Configure(app *appenv.Context, onCF bool) error {
	return ConfigureProfile(ProfileFor(app, onCF), Options{Level: DefaultLevel(app)})
}

// ConfigureProfile installs profile p as the global logger.
func ConfigureProfile(p Profile, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.TestLogFile == "" {
		opts.TestLogFile = DefaultTestLogFile
	}

	var tl *testLoggers
	var logger *slog.Logger
	switch p {
	case ProfileTest:
		f, err := os.OpenFile(opts.TestLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening test log: %w", err)
		}
		fileHandler := NewPatternHandler(f, &PatternOptions{Level: levelVar, Timestamp: true})
		stderrHandler := NewPatternHandler(opts.Stderr, &PatternOptions{
			Level:     floorLeveler{base: levelVar, floor: slog.LevelWarn},
			Timestamp: true,
			Color:     isTerminal(opts.Stderr),
		})
		tl = &testLoggers{
			file:       f,
			full:       slog.New(fanoutHandler{fileHandler, stderrHandler}),
			suppressed: slog.New(fileHandler),
		}
		logger = tl.full
	case ProfileCF:
		logger = slog.New(NewPatternHandler(opts.Stdout, &PatternOptions{Level: levelVar}))
	default:
		logger = slog.New(NewPatternHandler(opts.Stdout, &PatternOptions{
			Level:     levelVar,
			Timestamp: true,
			Color:     isTerminal(opts.Stdout),
		}))
	}

	mu.Lock()
	defer mu.Unlock()
	closeTestLoggersLocked()
	active = tl
	outputWriter = opts.Stdout
	isStructured = false
	setLevelLocked(opts.Level)
	setLoggerLocked(logger)
	return nil
}

// SuppressTestStderr switches the test profile between writing warnings to
// stderr and writing only to its log file. Outside the test profile it
// logs a warning and does nothing.
func SuppressTestStderr(suppress bool) {
	mu.Lock()
	defer mu.Unlock()

	if active == nil {
		globalLogger.Warn("stderr suppression is only available in the test profile")
		return
	}
	if suppress {
		setLoggerLocked(active.suppressed)
	} else {
		setLoggerLocked(active.full)
	}
}

// closeTestLoggersLocked releases the test profile's file.
// Caller must hold mu.Lock().
func closeTestLoggersLocked() {
	if active == nil {
		return
	}
	_ = active.file.Close()
	active = nil
}
