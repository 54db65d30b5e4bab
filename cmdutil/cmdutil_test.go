package cmdutil

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
}

func TestOutput(t *testing.T) {
	skipOnWindows(t)

	out, err := Output(context.Background(), "", "sh", "-c", "echo hello; echo ignored >&2")
	if err != nil {
		t.Fatalf("Output() error = %v, want nil", err)
	}
	if string(out) != "hello\n" {
		t.Errorf("Output() = %q, want %q", out, "hello\n")
	}
}

func TestOutputDir(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()

	out, err := Output(context.Background(), dir, "sh", "-c", "pwd -P")
	if err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	want, _ := exec.Command("sh", "-c", "cd "+dir+" && pwd -P").Output()
	if string(out) != string(want) {
		t.Errorf("Output() ran in %q, want %q", out, want)
	}
}

func TestOutputExitError(t *testing.T) {
	skipOnWindows(t)

	out, err := Output(context.Background(), "", "sh", "-c", "echo FAILED; echo bad >&2; exit 4")
	if string(out) != "FAILED\n" {
		t.Errorf("expected stdout to be returned on failure, got %q", out)
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T: %v", err, err)
	}
	if cmdErr.ExitCode != 4 {
		t.Errorf("ExitCode = %d, want 4", cmdErr.ExitCode)
	}
	if cmdErr.Stderr != "bad\n" {
		t.Errorf("Stderr = %q", cmdErr.Stderr)
	}
	if got := cmdErr.Error(); got != "sh -c echo FAILED; echo bad >&2; exit 4: exit code 4: bad" {
		t.Errorf("Error() = %q", got)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Error("expected CommandError to unwrap to *exec.ExitError")
	}
}

func TestOutputInvalidCommand(t *testing.T) {
	_, err := Output(context.Background(), "", "nonexistent-command-xyz-123")
	if err == nil {
		t.Fatal("Output() with invalid command should fail")
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		t.Error("a command that never started should not be a CommandError")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("expected exec.ErrNotFound, got %v", err)
	}
}

func TestOutputCanceled(t *testing.T) {
	skipOnWindows(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Output(ctx, "", "sleep", "10"); err == nil {
		t.Error("Output() with canceled context should fail")
	}
}

func TestOutputDeadline(t *testing.T) {
	skipOnWindows(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Output(ctx, "", "sleep", "10")
	if err == nil {
		t.Fatal("Output() past its deadline should fail")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("Output() did not stop at the context deadline")
	}
}
