package cloudenv

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher matches a service label or instance name. It is implemented only
// by Exact and Pattern.
type Matcher interface {
	Match(s string) bool
	String() string
	matcher()
}

// Exact matches a string equal to itself.
type Exact string

// Match reports whether s equals e.
func (e Exact) Match(s string) bool { return string(e) == s }

func (e Exact) String() string { return string(e) }

func (Exact) matcher() {}

// Pattern matches strings accepted by a regular expression.
type Pattern struct {
	Re *regexp.Regexp
}

// MustPattern compiles expr into a Pattern. It panics if expr is invalid.
func MustPattern(expr string) Pattern {
	return Pattern{Re: regexp.MustCompile(expr)}
}

// Match reports whether the expression matches s.
func (p Pattern) Match(s string) bool { return p.Re.MatchString(s) }

func (p Pattern) String() string { return "/" + p.Re.String() + "/" }

func (Pattern) matcher() {}

// present reports whether m constrains anything.
func present(m Matcher) bool {
	if m == nil {
		return false
	}
	switch m := m.(type) {
	case Exact:
		return m != ""
	case Pattern:
		return m.Re != nil
	}
	return true
}

// SpecType selects the credential source of a Spec.
type SpecType string

const (
	// SpecTypeDefault is cf when a services descriptor is available and
	// env otherwise.
	SpecTypeDefault SpecType = ""
	// SpecTypeCF looks the service up in the services descriptor.
	SpecTypeCF SpecType = "cf"
	// SpecTypeEnv reads credentials from a JSON environment variable.
	SpecTypeEnv SpecType = "env"
)

// Spec describes one place credentials may come from.
type Spec struct {
	Type  SpecType
	Name  Matcher
	Label Matcher
}

// ByName is a spec matching an instance name, or naming an environment
// variable when no descriptor is available.
func ByName(name string) Spec {
	return Spec{Name: Exact(name)}
}

// CF is a cf spec for a label and instance name. Either may be empty.
func CF(label, name string) Spec {
	s := Spec{Type: SpecTypeCF}
	if label != "" {
		s.Label = Exact(label)
	}
	if name != "" {
		s.Name = Exact(name)
	}
	return s
}

// EnvVar is an env spec for the named variable.
func EnvVar(name string) Spec {
	return Spec{Type: SpecTypeEnv, Name: Exact(name)}
}

// String describes the spec for error messages.
func (s Spec) String() string {
	var parts []string
	if s.Type != SpecTypeDefault {
		parts = append(parts, "type="+string(s.Type))
	}
	if present(s.Label) {
		parts = append(parts, "label="+s.Label.String())
	}
	if present(s.Name) {
		parts = append(parts, "name="+s.Name.String())
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, " "))
}
