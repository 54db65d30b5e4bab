package cloudenv

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jongio/garage-core/appenv"
	"github.com/jongio/garage-core/logutil"
)

// DefaultServicesFile is the fallback descriptor in the application root.
const DefaultServicesFile = "services.json"

// Source identifies where a services descriptor came from.
type Source int

const (
	// SourceNone means no descriptor was available.
	SourceNone Source = iota
	// SourceEnv is the VCAP_SERVICES variable.
	SourceEnv
	// SourceMock is a descriptor installed with SetMock.
	SourceMock
	// SourceFile is the services.json fallback file.
	SourceFile
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceEnv:
		return "env"
	case SourceMock:
		return "mock"
	case SourceFile:
		return "file"
	default:
		return "none"
	}
}

var logger = logutil.NewLogger("cloudenv")

// Resolver resolves service credentials. The descriptor is re-read on every
// call; only SetMock installs a fixed one.
type Resolver struct {
	app          *appenv.Context
	servicesFile string

	mu   sync.RWMutex
	mock Services
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithServicesFile changes the fallback descriptor file name.
func WithServicesFile(name string) ResolverOption {
	return func(r *Resolver) { r.servicesFile = name }
}

// NewResolver creates a Resolver that finds the fallback descriptor under
// app's root directory.
func NewResolver(app *appenv.Context, opts ...ResolverOption) *Resolver {
	r := &Resolver{app: app, servicesFile: DefaultServicesFile}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetMock installs a descriptor used when VCAP_SERVICES is absent, until
// ClearMock is called. Intended for tests.
func (r *Resolver) SetMock(services Services) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if services == nil {
		services = Services{}
	}
	r.mock = services
}

// ClearMock removes a descriptor installed with SetMock.
func (r *Resolver) ClearMock() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mock = nil
}

// Services loads the descriptor from VCAP_SERVICES, then the mock, then
// the fallback file. It returns an empty descriptor and SourceNone when none
// is available.
func (r *Resolver) Services() (Services, Source) {
	services, source := r.loadServices()
	recordDescriptorLoad(source)
	return services, source
}

func (r *Resolver) loadServices() (Services, Source) {
	if cfg, err := LoadConfig(); err == nil && cfg.VCAPServices != "" {
		services, err := ParseServices([]byte(cfg.VCAPServices))
		if err == nil {
			return services, SourceEnv
		}
		logger.Warn("ignoring VCAP_SERVICES", "error", err)
	}

	r.mu.RLock()
	mock := r.mock
	r.mu.RUnlock()
	if mock != nil {
		return mock, SourceMock
	}

	if path := r.servicesPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if services, err := ParseServices(data); err == nil {
				logger.Info("read local services definition", "path", path)
				return services, SourceFile
			}
		}
	}

	logger.Info("no VCAP_SERVICES or services.json available")
	return Services{}, SourceNone
}

func (r *Resolver) servicesPath() string {
	if r.app == nil {
		return ""
	}
	root := r.app.RootDir()
	if root == "" {
		return ""
	}
	return filepath.Join(root, r.servicesFile)
}

// ServiceCreds resolves credentials for specs. Every spec is evaluated
// first; then exactly one may have resolved. When none did it returns
// nil, nil, or ErrNoService if required is set. Malformed specs and data
// are errors regardless of required.
func (r *Resolver) ServiceCreds(required bool, specs ...Spec) (Credentials, error) {
	creds, err := r.serviceCreds(required, specs)
	switch {
	case err != nil:
		recordResolution(outcomeError)
	case creds == nil:
		recordResolution(outcomeNotFound)
	default:
		recordResolution(outcomeFound)
	}
	return creds, err
}

func (r *Resolver) serviceCreds(required bool, specs []Spec) (Credentials, error) {
	services, source := r.Services()

	var found []Credentials
	for _, spec := range specs {
		creds, err := resolve(spec, services, source)
		if err != nil {
			return nil, err
		}
		if creds != nil {
			found = append(found, creds)
		}
	}

	switch len(found) {
	case 0:
		if required {
			return nil, noServiceError(fmt.Sprint(specs), source)
		}
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %d of %v", ErrMultipleServices, len(found), specs)
	}
}

// resolve returns nil credentials when spec matches nothing.
func resolve(spec Spec, services Services, source Source) (Credentials, error) {
	specType := spec.Type
	if specType == SpecTypeDefault {
		specType = SpecTypeEnv
		if source != SourceNone {
			specType = SpecTypeCF
		}
	}

	switch specType {
	case SpecTypeCF:
		return resolveCF(spec, services)
	case SpecTypeEnv:
		return resolveEnv(spec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpecType, spec.Type)
	}
}

func resolveCF(spec Spec, services Services) (Credentials, error) {
	if !present(spec.Label) && !present(spec.Name) {
		return nil, fmt.Errorf("%w: cf spec needs a name or label: %v", ErrInvalidSpec, spec)
	}

	var candidates []Instance
	if present(spec.Label) {
		candidates = services.Lookup(spec.Label)
	} else {
		candidates = services.All()
	}

	if present(spec.Name) {
		var named []Instance
		for _, inst := range candidates {
			if spec.Name.Match(inst.Name) {
				named = append(named, inst)
			}
		}
		candidates = named
	}

	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return credentialsOf(candidates[0]), nil
	default:
		return nil, fmt.Errorf("%w: %v matched %d instances", ErrMultipleInstances, spec, len(candidates))
	}
}

func resolveEnv(spec Spec) (Credentials, error) {
	name, ok := spec.Name.(Exact)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: env spec needs a variable name: %v", ErrInvalidSpec, spec)
	}

	raw := os.Getenv(string(name))
	if raw == "" {
		return nil, nil
	}

	creds, err := parseCredentials([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidCredentials, name, err)
	}
	return creds, nil
}

// CredsByLabel returns the credentials of the single instance under the
// label matched by label.
func (r *Resolver) CredsByLabel(label Matcher) (Credentials, error) {
	if !present(label) {
		return nil, fmt.Errorf("%w: label lookup needs a label", ErrInvalidSpec)
	}
	services, source := r.Services()

	instances := services.Lookup(label)
	switch len(instances) {
	case 0:
		return nil, noServiceError(label.String(), source)
	case 1:
		return credentialsOf(instances[0]), nil
	default:
		return nil, fmt.Errorf("%w: label %v has %d instances", ErrMultipleInstances, label, len(instances))
	}
}

// CredsByName returns the credentials of the first instance, in label
// order, whose name matches name.
func (r *Resolver) CredsByName(name Matcher) (Credentials, error) {
	if !present(name) {
		return nil, fmt.Errorf("%w: name lookup needs a name", ErrInvalidSpec)
	}
	services, source := r.Services()

	for _, inst := range services.All() {
		if name.Match(inst.Name) {
			return credentialsOf(inst), nil
		}
	}
	return nil, noServiceError(name.String(), source)
}

func credentialsOf(inst Instance) Credentials {
	if inst.Credentials == nil {
		return Credentials{}
	}
	return inst.Credentials
}

func noServiceError(what string, source Source) error {
	if source != SourceEnv {
		return fmt.Errorf("%w: %s (local services.json definition missing?)", ErrNoService, what)
	}
	return fmt.Errorf("%w: %s", ErrNoService, what)
}
