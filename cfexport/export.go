package cfexport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jongio/garage-core/fileutil"
	"github.com/jongio/garage-core/pathutil"
	"github.com/jongio/garage-core/security"
)

// Default output file names.
const (
	DefaultEnvFile      = ".env"
	DefaultServicesFile = "services.json"
	ScriptFile          = "env.sh"
)

var (
	// ErrUserWithJSON means Options.User was combined with Options.JSON.
	ErrUserWithJSON = errors.New("--user cannot be used with --json")
	// ErrInvalidCF means the cf executable did not identify itself.
	ErrInvalidCF = errors.New("invalid cf executable: check installation and path")
	// ErrCFUnavailable means the cf executable could not be run.
	ErrCFUnavailable = errors.New("unable to run cf executable: check installation and path")
)

// eol is the line ending for env and JSON files.
var eol = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// Options selects what Export writes.
type Options struct {
	// JSON writes just VCAP_SERVICES as indented JSON instead of a .env file.
	JSON bool
	// User adds user-provided variables to the .env file.
	User bool
	// Script also writes env.sh, which loads the saved file.
	Script bool
	// Filename defaults to .env, or services.json with JSON.
	Filename string
}

// Exporter saves a cf app's environment. The zero value runs "cf" from PATH
// and writes to the working directory.
type Exporter struct {
	Runner CommandRunner
	// CF is the cf executable. Defaults to cf from PATH, or from the usual
	// install directories.
	CF string
	// Dir is the output directory. Defaults to the working directory.
	Dir string
}

// Export fetches app's environment and writes the files selected by opts.
// It returns the paths written.
func (e *Exporter) Export(ctx context.Context, app string, opts Options) ([]string, error) {
	if opts.JSON && opts.User {
		return nil, ErrUserWithJSON
	}
	if err := security.ValidateAppName(app); err != nil {
		return nil, err
	}

	filename := opts.Filename
	if filename == "" {
		filename = DefaultEnvFile
		if opts.JSON {
			filename = DefaultServicesFile
		}
	}
	path, err := e.outputPath(filename)
	if err != nil {
		return nil, err
	}

	if err := e.checkCF(ctx); err != nil {
		return nil, err
	}

	log := logger.WithOperation("export").WithFields("app", app)
	log.Debug("running cf env")
	out, err := e.runner().Run(ctx, e.cf(), "env", app)
	if err != nil {
		return nil, cfError(err, out)
	}
	content, err := render(normalizeEOL(string(out)), opts)
	if err != nil {
		return nil, err
	}

	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	if err := fileutil.AtomicWriteFile(path, []byte(content+eol), fileutil.SecretFilePermission); err != nil {
		return nil, fmt.Errorf("writing %s: %w", filename, err)
	}
	written := []string{path}

	if opts.Script {
		scriptPath, err := e.outputPath(ScriptFile)
		if err != nil {
			return written, err
		}
		if err := fileutil.AtomicWriteFile(scriptPath, []byte(ScriptContent(filename, opts.JSON)), fileutil.ScriptPermission); err != nil {
			return written, fmt.Errorf("writing %s: %w", ScriptFile, err)
		}
		written = append(written, scriptPath)
	}

	log.Info("saved cf environment", "files", strings.Join(written, ","))
	return written, nil
}

// render builds the file content from LF-normalized `cf env` output.
func render(output string, opts Options) (string, error) {
	services, err := ParseServices(output)
	if err != nil {
		return "", err
	}

	if opts.JSON {
		var buf bytes.Buffer
		if err := json.Indent(&buf, services, "", "  "); err != nil {
			return "", err
		}
		return strings.ReplaceAll(buf.String(), "\n", eol), nil
	}

	vars := []Var{{Name: "VCAP_SERVICES", Value: string(services)}}
	if opts.User {
		user, err := ParseUserProvided(output)
		if err != nil {
			return "", err
		}
		vars = append(vars, user...)
	}
	return FormatEnv(vars, eol), nil
}

func (e *Exporter) checkCF(ctx context.Context) error {
	out, err := e.runner().Run(ctx, e.cf(), "-v")
	if err != nil {
		return fmt.Errorf("%w: %w (%s)", ErrCFUnavailable, err, pathutil.GetInstallSuggestion("cf"))
	}
	if !strings.HasPrefix(string(out), "cf version") {
		return ErrInvalidCF
	}
	return nil
}

func (e *Exporter) outputPath(filename string) (string, error) {
	dir := e.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving output directory: %w", err)
		}
		dir = wd
	}
	if _, err := security.ValidatePathWithinBases(filepath.Join(dir, filename), dir); err != nil {
		return "", fmt.Errorf("invalid output file %q: %w", filename, err)
	}
	return filepath.Join(dir, filename), nil
}

func (e *Exporter) runner() CommandRunner {
	if e.Runner == nil {
		return ExecRunner{}
	}
	return e.Runner
}

func (e *Exporter) cf() string {
	if e.CF == "" {
		return pathutil.FindTool("cf")
	}
	return e.CF
}

func normalizeEOL(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
