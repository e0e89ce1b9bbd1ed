package vector

import "fmt"

const (
	// DefaultDimensions is used when a field definition does not set dimensions.
	DefaultDimensions = 8
	// MaxDimensions is the point index's hard ceiling on dimensions per point.
	MaxDimensions = 8
)

// Policy holds the configured dimension count of a field. The zero value is
// not usable; build one with NewPolicy.
type Policy struct {
	dimensions int
}

// NewPolicy returns a policy for d dimensions. d must be in [1, MaxDimensions].
func NewPolicy(d int) (Policy, error) {
	if d <= 0 {
		return Policy{}, &InvalidConfigurationError{Reason: fmt.Sprintf("dimensions must be positive, got %d", d)}
	}
	if d > MaxDimensions {
		return Policy{}, &InvalidConfigurationError{Reason: fmt.Sprintf("dimensions %d exceeds the point index maximum of %d", d, MaxDimensions)}
	}
	return Policy{dimensions: d}, nil
}

// DefaultPolicy returns the policy for DefaultDimensions.
func DefaultPolicy() Policy {
	return Policy{dimensions: DefaultDimensions}
}

// Dimensions returns the configured dimension count.
func (p Policy) Dimensions() int {
	return p.dimensions
}

// IsDefault reports whether the policy uses DefaultDimensions.
func (p Policy) IsDefault() bool {
	return p.dimensions == DefaultDimensions
}

// Validate returns a *DimensionMismatchError unless v has exactly the configured
// number of components.
func (p Policy) Validate(v Vector) error {
	if v.Dimension() != p.dimensions {
		return &DimensionMismatchError{Expected: p.dimensions, Actual: v.Dimension()}
	}
	return nil
}
