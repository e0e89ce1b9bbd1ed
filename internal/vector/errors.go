package vector

import "fmt"

// MalformedVectorError indicates text that is not a comma-separated list of numbers.
//
// The underlying parse error (if any) can be accessed via errors.Unwrap.
type MalformedVectorError struct {
	Input    string
	Position int
	Reason   string
	cause    error
}

func (e *MalformedVectorError) Error() string {
	return fmt.Sprintf("malformed vector %q: component %d: %s", e.Input, e.Position, e.Reason)
}

func (e *MalformedVectorError) Unwrap() error { return e.cause }

// DimensionMismatchError indicates a vector whose length differs from the
// field's configured dimensions.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("data has wrong number of dimensions %d (should be %d)", e.Actual, e.Expected)
}

// InvalidConfigurationError indicates a field definition that cannot be accepted.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	if e.Field == "" {
		return "invalid field configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration for field [%s]: %s", e.Field, e.Reason)
}
