// Package vector provides the vector value type, its text codec, and the
// dimensionality policy applied to vector fields.
package vector

import "math"

// Vector is a fixed-length sequence of float64 components.
type Vector []float64

// Dimension returns the number of components.
func (v Vector) Dimension() int {
	return len(v)
}

// Filled returns a vector of n components all set to x.
func Filled(n int, x float64) Vector {
	v := make(Vector, n)
	for i := range v {
		v[i] = x
	}
	return v
}

// NegInf returns the fully open lower corner for n dimensions.
func NegInf(n int) Vector {
	return Filled(n, math.Inf(-1))
}

// PosInf returns the fully open upper corner for n dimensions.
func PosInf(n int) Vector {
	return Filled(n, math.Inf(1))
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}
