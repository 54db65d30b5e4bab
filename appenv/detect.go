package appenv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jongio/garage-core/fileutil"
)

type manifest struct {
	Version string `json:"version"`
}

// DetectRootDir computes the root directory from the current module
// directory and cached entry point, without updating the cache.
func (c *Context) DetectRootDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.detectRootDir()
}

// ReadVersion reads the version from the manifest in the cached root
// directory, without updating the cache.
func (c *Context) ReadVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.readVersion()
}

// DetectEnv computes the classification from DEPLOY_ENV and the cached
// entry point and root directory, without updating the cache.
func (c *Context) DetectEnv() Env {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.detectEnv()
}

func (c *Context) detectRootDir() string {
	if dir := c.findRoot(c.moduleDir); dir != "" {
		return dir
	}
	if c.mainFile == "" {
		return ""
	}
	return c.findRoot(filepath.Dir(c.mainFile))
}

// findRoot walks up from start to the first directory holding a manifest
// whose parent is not an install directory.
func (c *Context) findRoot(start string) string {
	if start == "" {
		return ""
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}

	for {
		if fileutil.IsFile(filepath.Join(dir, c.opts.ManifestName)) {
			parent := filepath.Dir(dir)
			if !slices.Contains(c.opts.InstallDirs, filepath.Base(parent)) {
				return dir
			}
			// A dependency's own package: resume above its install directory.
			dir = filepath.Dir(parent)
			continue
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func (c *Context) readVersion() string {
	if c.rootDir == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(c.rootDir, c.opts.ManifestName))
	if err != nil {
		return ""
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	return m.Version
}

func (c *Context) detectEnv() Env {
	if cfg, err := LoadConfig(); err == nil && cfg.DeployEnv != "" {
		return ParseEnv(cfg.DeployEnv)
	}

	if c.mainFile == "" {
		return Env{}
	}

	if base := filepath.Base(c.mainFile); slices.Contains(c.opts.TestRunners, base) || isGoTestBinary(base) {
		return ParseEnv(Test)
	}

	scriptDirs := []string{filepath.Join(c.moduleDir, "..", "bin")}
	if c.rootDir != "" {
		scriptDirs = append(scriptDirs,
			filepath.Join(c.rootDir, "bin"),
			filepath.Join(c.rootDir, "scripts"),
		)
	}
	for _, dir := range scriptDirs {
		if within(dir, c.mainFile) {
			return ParseEnv(Script)
		}
	}

	return Env{}
}

// within reports whether path lies below dir.
func within(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// isGoTestBinary reports whether base names an executable built by
// go test, such as "cloudenv.test" or "cloudenv.test.exe".
func isGoTestBinary(base string) bool {
	name := strings.TrimSuffix(base, ".exe")
	return len(name) > len(".test") && strings.HasSuffix(name, ".test")
}
