package cfexport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jongio/garage-core/logutil"
	"github.com/jongio/garage-core/security"
)

// ErrInvalidOutput means `cf env` output could not be parsed.
var ErrInvalidOutput = errors.New("invalid cf env output")

var (
	servicesPattern     = regexp.MustCompile(`(?m)^System-Provided:\n\{\s*"VCAP_SERVICES":([\s\S]*?)^\}`)
	noUserVarsPattern   = regexp.MustCompile(`(?m)^No user-defined env variables have been set$`)
	userProvidedPattern = regexp.MustCompile(`(?m)^User-Provided:\n([\s\S]*?)^$`)
	safeValuePattern    = regexp.MustCompile(`^['a-zA-Z0-9,._+:@%/-]*$`)
)

var logger = logutil.NewLogger("cfexport")

// Var is a named environment value.
type Var struct {
	Name  string
	Value string
}

// ParseServices extracts the VCAP_SERVICES document from `cf env` output.
// The output must use LF line endings. The result is compact JSON.
func ParseServices(output string) (json.RawMessage, error) {
	m := servicesPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("%w: cannot parse VCAP_SERVICES", ErrInvalidOutput)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(m[1])); err != nil {
		return nil, fmt.Errorf("%w: cannot parse VCAP_SERVICES: %w", ErrInvalidOutput, err)
	}
	return buf.Bytes(), nil
}

// ParseUserProvided extracts user-provided variables from `cf env` output,
// in output order. Lines whose name is not a shell identifier are skipped.
func ParseUserProvided(output string) ([]Var, error) {
	if noUserVarsPattern.MatchString(output) {
		return nil, nil
	}

	m := userProvidedPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("%w: cannot parse user-provided environment variables", ErrInvalidOutput)
	}

	var vars []Var
	for line := range strings.SplitSeq(m[1], "\n") {
		name, value, _ := strings.Cut(line, ":")
		if name == "" {
			continue
		}
		if err := security.ValidateEnvName(name); err != nil {
			logger.Warn("skipping user-provided variable", "error", err)
			continue
		}
		vars = append(vars, Var{Name: name, Value: value})
	}
	return vars, nil
}

// EnvValue trims v and quotes it for a shell or .env file. Values made only
// of safe characters are left bare with single quotes escaped; anything
// else is wrapped in single quotes.
func EnvValue(v string) string {
	v = strings.TrimSpace(v)
	if safeValuePattern.MatchString(v) {
		return strings.ReplaceAll(v, "'", `\'`)
	}
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// FormatEnv renders vars as NAME=value lines joined by eol. A later var
// replaces the value of an earlier one with the same name in place.
func FormatEnv(vars []Var, eol string) string {
	index := make(map[string]int, len(vars))
	var merged []Var
	for _, v := range vars {
		if i, ok := index[v.Name]; ok {
			merged[i].Value = v.Value
			continue
		}
		index[v.Name] = len(merged)
		merged = append(merged, v)
	}

	lines := make([]string, len(merged))
	for i, v := range merged {
		lines[i] = v.Name + "=" + EnvValue(v.Value)
	}
	return strings.Join(lines, eol)
}

// ScriptContent returns a bash script that exports the values saved in
// filename. The script's first argument overrides filename. When jsonFile is
// set the file holds the services descriptor rather than env lines.
func ScriptContent(filename string, jsonFile bool) string {
	load := `. "$filename"`
	if jsonFile {
		load = `VCAP_SERVICES=$(cat "$filename")`
	}
	return "#!/bin/bash\n" +
		`filename="./${1:-` + filename + `}"` + "\n" +
		"set -a\n" +
		load + "\n" +
		"set +a\n"
}
