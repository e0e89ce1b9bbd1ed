// Package field implements the "vector" field type: it turns document values
// into point and existence entries and builds queries against them.
package field

import (
	"github.com/hyperjump/vecsearch/internal/vector"
)

// TypeName is the mapping type name of vector fields.
const TypeName = "vector"

// Field is a declared vector field. It holds no per-document state and is safe
// for concurrent use.
type Field struct {
	name   string
	policy vector.Policy
}

// New returns a field named name validated by policy.
func New(name string, policy vector.Policy) (*Field, error) {
	if name == "" {
		return nil, &vector.InvalidConfigurationError{Reason: "field name must not be empty"}
	}
	if policy.Dimensions() <= 0 {
		return nil, &vector.InvalidConfigurationError{Field: name, Reason: "policy has no dimensions"}
	}
	return &Field{name: name, policy: policy}, nil
}

// Name returns the field name.
func (f *Field) Name() string {
	return f.name
}

// Policy returns the field's dimensionality policy.
func (f *Field) Policy() vector.Policy {
	return f.policy
}

// Dimensions is shorthand for f.Policy().Dimensions().
func (f *Field) Dimensions() int {
	return f.policy.Dimensions()
}

// EntryKind tells the index which structure an Entry belongs to.
type EntryKind int

const (
	// PointEntry goes to the point index.
	PointEntry EntryKind = iota
	// ExistsEntry goes to the existence index.
	ExistsEntry
)

func (k EntryKind) String() string {
	switch k {
	case PointEntry:
		return "point"
	case ExistsEntry:
		return "exists"
	default:
		return "unknown"
	}
}

// Entry is one indexable artifact produced for a document. The document it
// belongs to is implied by the caller.
type Entry struct {
	Kind   EntryKind
	Field  string
	Vector vector.Vector // nil for ExistsEntry
}

// IndexValue converts a raw document value into entries. A nil raw value means
// the field is unset and produces nothing. On any error no entry is returned.
func (f *Field) IndexValue(raw *string) ([]Entry, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := vector.Decode(*raw)
	if err != nil {
		return nil, err
	}
	if err := f.policy.Validate(v); err != nil {
		return nil, err
	}
	return []Entry{
		{Kind: PointEntry, Field: f.name, Vector: v},
		{Kind: ExistsEntry, Field: f.name},
	}, nil
}
