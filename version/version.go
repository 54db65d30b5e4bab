// Package version provides build information and a reusable version command
// for garage binaries.
package version

import (
	"fmt"

	"github.com/jongio/garage-core/appenv"
)

// Info holds version information for a binary.
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`

	// AppVersion and Env describe the application the binary runs in, when
	// one was detected.
	AppVersion string `json:"appVersion,omitempty" yaml:"appVersion,omitempty"`
	Env        string `json:"env,omitempty" yaml:"env,omitempty"`
}

// New creates a new Info with default values. Version, BuildDate, GitCommit
// are expected to be set via ldflags at build time.
func New(name string) *Info {
	return &Info{
		Name:      name,
		Version:   "0.0.0-dev",
		BuildDate: "unknown",
		GitCommit: "unknown",
	}
}

// WithApp records the version and environment detected by c.
func (i *Info) WithApp(c *appenv.Context) *Info {
	i.AppVersion = c.Version()
	i.Env = c.Env().String()
	return i
}

// String returns a human-readable version string.
func (i *Info) String() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s)", i.Name, i.Version, i.GitCommit, i.BuildDate)
}
