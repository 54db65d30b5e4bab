package appenv

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Defaults for Options.
const (
	DefaultManifestName = "package.json"
)

var (
	// DefaultInstallDirs are directory names that hold installed dependencies.
	DefaultInstallDirs = []string{"node_modules", "node-modules", "user_modules"}
	// DefaultTestRunners are entry point names that indicate a test run.
	// Executables built by go test (*.test) are always classified as test.
	DefaultTestRunners = []string{"_mocha", "jest"}
)

// Options configures how a Context detects its values.
// Zero fields take their defaults.
type Options struct {
	// ModuleDir is where the root directory walk starts.
	// Defaults to the directory holding this package's source.
	ModuleDir string

	// MainFile returns the entry point path. Defaults to os.Executable.
	MainFile func() string

	// ManifestName is the package manifest file name.
	ManifestName string

	// InstallDirs are names of dependency installation directories.
	InstallDirs []string

	// TestRunners are entry point base names that mark a test run.
	TestRunners []string
}

func (o Options) withDefaults() Options {
	if o.ModuleDir == "" {
		o.ModuleDir = sourceDir()
	}
	if o.MainFile == nil {
		o.MainFile = executable
	}
	if o.ManifestName == "" {
		o.ManifestName = DefaultManifestName
	}
	if o.InstallDirs == nil {
		o.InstallDirs = DefaultInstallDirs
	}
	if o.TestRunners == nil {
		o.TestRunners = DefaultTestRunners
	}
	return o
}

// Context caches the detected application environment.
// It is safe for concurrent use, but Reset and the Set* methods overwrite
// shared state that every holder of the Context observes.
type Context struct {
	mu   sync.RWMutex
	opts Options

	moduleDir string
	mainFile  string
	rootDir   string
	version   string
	env       Env
}

var (
	defaultOnce sync.Once
	defaultCtx  *Context
)

// Default returns the process-wide Context built with default Options.
func Default() *Context {
	defaultOnce.Do(func() {
		defaultCtx = New(Options{})
	})
	return defaultCtx
}

// New creates a Context and detects its values.
func New(opts Options) *Context {
	opts = opts.withDefaults()
	c := &Context{
		opts:      opts,
		moduleDir: opts.ModuleDir,
	}
	c.Reset()
	return c
}

// Reset recomputes the entry point, root directory, version and
// classification from the current process state, in that order.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mainFile = c.opts.MainFile()
	c.rootDir = c.detectRootDir()
	c.version = c.readVersion()
	c.env = c.detectEnv()
}

// ModuleDir returns the directory the root directory walk starts from.
func (c *Context) ModuleDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.moduleDir
}

// MainFile returns the cached entry point path.
func (c *Context) MainFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mainFile
}

// RootDir returns the cached application root directory, or "" if unknown.
func (c *Context) RootDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rootDir
}

// Version returns the cached manifest version, or "" if unknown.
func (c *Context) Version() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Env returns the cached classification.
func (c *Context) Env() Env {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.env
}

// IsProd reports whether the classification is production.
func (c *Context) IsProd() bool { return c.is(KindProduction) }

// IsDev reports whether the classification is development.
func (c *Context) IsDev() bool { return c.is(KindDevelopment) }

// IsTest reports whether the classification is test.
func (c *Context) IsTest() bool { return c.is(KindTest) }

// IsScript reports whether the classification is script.
func (c *Context) IsScript() bool { return c.is(KindScript) }

func (c *Context) is(kind Kind) bool {
	return c.Env().Kind() == kind
}

// SetModuleDir changes where the root directory walk starts.
// Unlike the other setters it survives Reset.
func (c *Context) SetModuleDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moduleDir = dir
}

// SetMainFile overrides the cached entry point until the next Reset.
func (c *Context) SetMainFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mainFile = path
}

// SetRootDir overrides the cached root directory until the next Reset.
func (c *Context) SetRootDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rootDir = dir
}

// SetVersion overrides the cached version until the next Reset.
func (c *Context) SetVersion(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version = version
}

// SetEnv overrides the cached classification until the next Reset.
func (c *Context) SetEnv(env Env) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.env = env
}

func sourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(file)
}

func executable() string {
	path, err := os.Executable()
	if err != nil {
		return ""
	}
	return path
}
