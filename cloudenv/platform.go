package cloudenv

import "sync"

// Platform is the detected hosting platform.
type Platform int

const (
	// PlatformNone means no known platform was detected.
	PlatformNone Platform = iota
	// PlatformCF is Cloud Foundry.
	PlatformCF
	// PlatformKube is Kubernetes.
	PlatformKube
)

// String returns "cf", "kube" or "" for none.
func (p Platform) String() string {
	switch p {
	case PlatformCF:
		return "cf"
	case PlatformKube:
		return "kube"
	default:
		return ""
	}
}

// Env caches the platform and port. Reset re-reads them from the
// environment; the setters override them for tests.
type Env struct {
	mu       sync.RWMutex
	platform Platform
	port     string
}

// NewEnv returns an Env populated from the environment.
func NewEnv() *Env {
	e := &Env{}
	e.Reset()
	return e
}

// Reset re-reads the platform and port.
func (e *Env) Reset() {
	platform, port := detectPlatform()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.platform = platform
	e.port = port
}

// Platform returns the cached platform.
func (e *Env) Platform() Platform {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.platform
}

// Port returns the cached listen port.
func (e *Env) Port() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.port
}

// IsCF reports whether the platform is Cloud Foundry.
func (e *Env) IsCF() bool { return e.Platform() == PlatformCF }

// IsKube reports whether the platform is Kubernetes.
func (e *Env) IsKube() bool { return e.Platform() == PlatformKube }

// IsLocal reports whether the app is not running on Cloud Foundry.
func (e *Env) IsLocal() bool { return !e.IsCF() }

// SetPlatform overrides the cached platform.
func (e *Env) SetPlatform(p Platform) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.platform = p
}

// SetPort overrides the cached port.
func (e *Env) SetPort(port string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.port = port
}

func detectPlatform() (Platform, string) {
	cfg, err := LoadConfig()
	if err != nil {
		return PlatformNone, DefaultPort
	}

	switch {
	case cfg.VCAPApplication != "":
		return PlatformCF, cfg.Port
	case cfg.KubernetesServiceHost != "":
		return PlatformKube, cfg.Port
	default:
		return PlatformNone, cfg.Port
	}
}
