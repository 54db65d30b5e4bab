package appenv

// Kind identifies a well-known classification.
type Kind int

const (
	// KindUnset means no classification could be determined.
	KindUnset Kind = iota
	// KindProduction is a production deployment.
	KindProduction
	// KindDevelopment is a development run.
	KindDevelopment
	// KindTest is a run under a test runner.
	KindTest
	// KindScript is a run of an application script or bundled binary.
	KindScript
	// KindCustom is any other value supplied through DEPLOY_ENV.
	KindCustom
)

// Well-known classification names.
const (
	Production  = "production"
	Development = "development"
	Test        = "test"
	Script      = "script"
)

// Env is the classification of the current run.
// The zero value is unset.
type Env struct {
	kind Kind
	name string
}

// ParseEnv maps a classification name to an Env.
// Unknown non-empty names become KindCustom and keep their verbatim value.
func ParseEnv(name string) Env {
	switch name {
	case "":
		return Env{}
	case Production:
		return Env{kind: KindProduction, name: name}
	case Development:
		return Env{kind: KindDevelopment, name: name}
	case Test:
		return Env{kind: KindTest, name: name}
	case Script:
		return Env{kind: KindScript, name: name}
	default:
		return Env{kind: KindCustom, name: name}
	}
}

// Kind returns the classification kind.
func (e Env) Kind() Kind {
	return e.kind
}

// String returns the classification name, or "" when unset.
func (e Env) String() string {
	return e.name
}

// IsSet reports whether a classification was determined.
func (e Env) IsSet() bool {
	return e.kind != KindUnset
}

func (k Kind) String() string {
	switch k {
	case KindProduction:
		return Production
	case KindDevelopment:
		return Development
	case KindTest:
		return Test
	case KindScript:
		return Script
	case KindCustom:
		return "custom"
	default:
		return "unset"
	}
}
