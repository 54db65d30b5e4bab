package cfexport

import (
	"context"
	"strings"

	"github.com/jongio/garage-core/cmdutil"
)

// CommandRunner is an interface for running external commands.
// This allows for mocking in tests.
type CommandRunner interface {
	// Run returns the command's stdout. On failure the stdout captured so
	// far is returned with the error.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with cmdutil in the working directory.
type ExecRunner struct{}

// Run executes a command and returns its output. A non-zero exit is
// reported as a *cmdutil.CommandError.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return cmdutil.Output(ctx, "", name, args...)
}

// CFError is a failure reported by the cf CLI. Message is the CLI's own
// explanation, taken from its output.
type CFError struct {
	Message string
	Cause   error
}

func (e *CFError) Error() string {
	return e.Message
}

func (e *CFError) Unwrap() error {
	return e.Cause
}

// cfError turns a failed cf invocation into a CFError. cf prints "FAILED"
// on the first line of stdout and the reason on the second.
func cfError(err error, stdout []byte) error {
	lines := strings.Split(normalizeEOL(string(stdout)), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[1]) == "" {
		return err
	}
	return &CFError{Message: lines[1], Cause: err}
}
