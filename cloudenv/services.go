package cloudenv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Credentials is the credentials object of a service instance.
// Numbers are kept as json.Number so they re-encode exactly.
type Credentials map[string]any

// Instance is one bound service instance.
type Instance struct {
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Plan        string      `json:"plan,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	Credentials Credentials `json:"credentials,omitempty"`
}

// UnmarshalJSON decodes an instance leniently: a field holding an
// unexpected type is left at its zero value instead of failing the
// whole descriptor.
func (i *Instance) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := decodeObject(data, &fields); err != nil {
		return err
	}

	*i = Instance{}
	lenient(fields["name"], &i.Name)
	lenient(fields["label"], &i.Label)
	lenient(fields["plan"], &i.Plan)
	lenient(fields["tags"], &i.Tags)
	if raw := fields["credentials"]; len(raw) > 0 {
		if creds, err := parseCredentials(raw); err == nil {
			i.Credentials = creds
		}
	}
	return nil
}

// lenient sets dst only when raw decodes cleanly as a T.
func lenient[T any](raw json.RawMessage, dst *T) {
	if len(raw) == 0 {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// Services maps a service label to its instances.
type Services map[string][]Instance

// Labels returns the labels in lexicographic order. Pattern lookups and
// name-only searches visit labels in this order.
func (s Services) Labels() []string {
	return slices.Sorted(maps.Keys(s))
}

// Lookup returns the instances under the label matched by m: the exact key
// for Exact, or the first matching label for a Pattern.
func (s Services) Lookup(m Matcher) []Instance {
	if !present(m) {
		return nil
	}
	if exact, ok := m.(Exact); ok {
		return s[string(exact)]
	}
	for _, label := range s.Labels() {
		if m.Match(label) {
			return s[label]
		}
	}
	return nil
}

// All returns every instance, ordered by label.
func (s Services) All() []Instance {
	var all []Instance
	for _, label := range s.Labels() {
		all = append(all, s[label]...)
	}
	return all
}

// ParseServices decodes a services descriptor. The document must be a JSON
// object. Labels whose value is not an array, and entries that are not
// objects, are skipped.
func ParseServices(data []byte) (Services, error) {
	var raw map[string]json.RawMessage
	if err := decodeObject(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing services descriptor: %w", err)
	}

	services := make(Services, len(raw))
	for label, value := range raw {
		var entries []json.RawMessage
		if err := json.Unmarshal(value, &entries); err != nil {
			continue
		}
		instances := make([]Instance, 0, len(entries))
		for _, entry := range entries {
			var inst Instance
			if err := json.Unmarshal(entry, &inst); err != nil {
				continue
			}
			instances = append(instances, inst)
		}
		services[label] = instances
	}
	return services, nil
}

// parseCredentials decodes a credentials object.
func parseCredentials(data []byte) (Credentials, error) {
	var creds Credentials
	if err := decodeObject(data, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

var errNotObject = errors.New("not a JSON object")

func decodeObject(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON object")
	}
	return nil
}
