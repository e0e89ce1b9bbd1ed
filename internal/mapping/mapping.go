// Package mapping parses and renders field definitions ("mappings") and holds
// the resulting set of vector fields.
package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperjump/vecsearch/internal/field"
	"github.com/hyperjump/vecsearch/internal/vector"
)

const (
	keyProperties = "properties"
	keyType       = "type"
	keyDimensions = "dimensions"
)

// ErrConflict is returned when a merge would redefine an existing field.
var ErrConflict = errors.New("mapping conflict")

// Mapping is an immutable set of vector fields keyed by name.
type Mapping struct {
	fields map[string]*field.Field
}

// Empty returns a mapping with no fields.
func Empty() *Mapping {
	return &Mapping{fields: map[string]*field.Field{}}
}

// Field returns the field named name.
func (m *Mapping) Field(name string) (*field.Field, bool) {
	f, ok := m.fields[name]
	return f, ok
}

// Fields returns all fields sorted by name.
func (m *Mapping) Fields() []*field.Field {
	out := make([]*field.Field, 0, len(m.fields))
	for _, f := range m.fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Len returns the number of fields.
func (m *Mapping) Len() int {
	return len(m.fields)
}

// Parse reads a mapping document of the form
//
//	{"properties": {"v": {"type": "vector", "dimensions": 8}}}
func Parse(data []byte) (*Mapping, error) {
	var doc map[string]json.RawMessage
	if err := decodeStrict(data, &doc); err != nil {
		return nil, &vector.InvalidConfigurationError{Reason: "mapping is not a JSON object: " + err.Error()}
	}
	for k := range doc {
		if k != keyProperties {
			return nil, &vector.InvalidConfigurationError{Reason: fmt.Sprintf("unsupported mapping key [%s]", k)}
		}
	}
	m := Empty()
	raw, ok := doc[keyProperties]
	if !ok {
		return m, nil
	}
	var props map[string]map[string]json.RawMessage
	if err := decodeStrict(raw, &props); err != nil {
		return nil, &vector.InvalidConfigurationError{Reason: "properties must be an object of field definitions: " + err.Error()}
	}
	for name, def := range props {
		f, err := parseField(name, def)
		if err != nil {
			return nil, err
		}
		m.fields[name] = f
	}
	return m, nil
}

func parseField(name string, def map[string]json.RawMessage) (*field.Field, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &vector.InvalidConfigurationError{Reason: "field name must not be empty"}
	}
	if strings.HasPrefix(name, "_") {
		return nil, &vector.InvalidConfigurationError{Field: name, Reason: "field names starting with '_' are reserved"}
	}

	var typeName string
	rawType, ok := def[keyType]
	if !ok {
		return nil, &vector.InvalidConfigurationError{Field: name, Reason: "no type specified"}
	}
	if err := json.Unmarshal(rawType, &typeName); err != nil || typeName != field.TypeName {
		return nil, &vector.InvalidConfigurationError{Field: name, Reason: fmt.Sprintf("no handler for type %s", string(rawType))}
	}

	policy := vector.DefaultPolicy()
	for k, v := range def {
		switch k {
		case keyType:
		case keyDimensions:
			d, err := parseDimensions(v)
			if err != nil {
				return nil, &vector.InvalidConfigurationError{Field: name, Reason: err.Error()}
			}
			p, err := vector.NewPolicy(d)
			if err != nil {
				var invalid *vector.InvalidConfigurationError
				if errors.As(err, &invalid) {
					invalid.Field = name
				}
				return nil, err
			}
			policy = p
		default:
			return nil, &vector.InvalidConfigurationError{Field: name, Reason: fmt.Sprintf("unsupported parameter [%s]", k)}
		}
	}
	return field.New(name, policy)
}

// parseDimensions accepts a JSON integer or a string holding one.
func parseDimensions(raw json.RawMessage) (int, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		d, err := strconv.Atoi(n.String())
		if err != nil {
			return 0, fmt.Errorf("dimensions must be an integer, got %s", n)
		}
		return d, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		d, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("dimensions must be an integer, got %q", s)
		}
		return d, nil
	}
	return 0, fmt.Errorf("dimensions must be an integer, got %s", string(raw))
}

func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after mapping")
	}
	return nil
}

// Merge returns a new mapping with the fields of other added. Redefining an
// existing field with different dimensions fails with ErrConflict; an
// identical redefinition is a no-op.
func (m *Mapping) Merge(other *Mapping) (*Mapping, error) {
	out := &Mapping{fields: make(map[string]*field.Field, len(m.fields)+len(other.fields))}
	for name, f := range m.fields {
		out.fields[name] = f
	}
	for name, f := range other.fields {
		if existing, ok := out.fields[name]; ok {
			if existing.Dimensions() != f.Dimensions() {
				return nil, fmt.Errorf("%w: field [%s] already has dimensions %d, cannot change to %d",
					ErrConflict, name, existing.Dimensions(), f.Dimensions())
			}
			continue
		}
		out.fields[name] = f
	}
	return out, nil
}

// Render returns the mapping as a JSON-ready value. dimensions is emitted only
// when it differs from the default, unless includeDefaults is set.
func (m *Mapping) Render(includeDefaults bool) map[string]interface{} {
	props := make(map[string]interface{}, len(m.fields))
	for name, f := range m.fields {
		def := map[string]interface{}{keyType: field.TypeName}
		if includeDefaults || !f.Policy().IsDefault() {
			def[keyDimensions] = f.Dimensions()
		}
		props[name] = def
	}
	return map[string]interface{}{keyProperties: props}
}

// MarshalJSON renders the mapping without defaults.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Render(false))
}
