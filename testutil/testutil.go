package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CaptureOutput captures stdout during function execution.
// It redirects os.Stdout to a pipe, executes the function, and returns the captured output.
// The original stdout is always restored, even if the function returns an error.
//
// Example:
//
//	output := testutil.CaptureOutput(t, func() error {
//	    fmt.Println("test output")
//	    return nil
//	})
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	os.Stdout = w

	// Buffered to avoid a goroutine leak
	outCh := make(chan string, 1)
	go func() {
		var output strings.Builder
		buf := make([]byte, 1024)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				output.Write(buf[:n])
			}
			if readErr != nil {
				break
			}
		}
		outCh <- output.String()
	}()

	fnErr := fn()

	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	os.Stdout = origStdout

	output := <-outCh

	if fnErr != nil {
		t.Logf("Command error: %v", fnErr)
	}

	return output
}

// AppTree builds a directory tree for tests under a temporary root.
// All paths are given as segments relative to the root.
type AppTree struct {
	t    *testing.T
	Root string
}

// NewAppTree creates an AppTree rooted in t.TempDir().
func NewAppTree(t *testing.T) *AppTree {
	t.Helper()
	return &AppTree{t: t, Root: t.TempDir()}
}

// Path joins segments onto the tree root without touching the filesystem.
func (a *AppTree) Path(segments ...string) string {
	return filepath.Join(append([]string{a.Root}, segments...)...)
}

// Dir creates a directory and returns its absolute path.
func (a *AppTree) Dir(segments ...string) string {
	a.t.Helper()
	dir := a.Path(segments...)
	if err := os.MkdirAll(dir, 0750); err != nil {
		a.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}
	return dir
}

// File writes content to a file, creating parent directories, and returns its path.
func (a *AppTree) File(content string, segments ...string) string {
	a.t.Helper()
	path := a.Path(segments...)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		a.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		a.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// JSON writes v as JSON to a file and returns its path.
func (a *AppTree) JSON(v any, segments ...string) string {
	a.t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		a.t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return a.File(string(data), segments...)
}

// Manifest writes a package.json with the given version into the directory
// named by segments and returns that directory. An empty version writes a
// manifest without a version field.
func (a *AppTree) Manifest(version string, segments ...string) string {
	a.t.Helper()
	m := map[string]string{"name": "app"}
	if version != "" {
		m["version"] = version
	}
	a.JSON(m, append(segments, "package.json")...)
	return a.Path(segments...)
}
