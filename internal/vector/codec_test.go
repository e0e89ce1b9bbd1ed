package vector

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Vector
		wantErr bool
	}{
		{"three components", "1.0,2.0,3.0", Vector{1, 2, 3}, false},
		{"single component", "42", Vector{42}, false},
		{"negative and exponent", "-0.75,1e-3,2E2", Vector{-0.75, 0.001, 200}, false},
		{"spaces around parts", " 1.5 , 2.5 ", Vector{1.5, 2.5}, false},
		{"explicit infinities", "-Inf,+Inf", Vector{math.Inf(-1), math.Inf(1)}, false},
		{"letters in the middle", "1.0,abc,3.0", nil, true},
		{"empty string", "", nil, true},
		{"blank string", "   ", nil, true},
		{"trailing separator", "1.0,2.0,", nil, true},
		{"empty middle part", "1.0,,2.0", nil, true},
		{"NaN", "1.0,NaN", nil, true},
		{"bracketed", "[1.0,2.0]", nil, true},
		{"out of range", "1e400", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var malformed *MalformedVectorError
				assert.True(t, errors.As(err, &malformed), "expected *MalformedVectorError, got %T", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "Decode(%q) = %v, want %v", tt.input, got, tt.want)
		})
	}
}

func TestDecode_MalformedPosition(t *testing.T) {
	_, err := Decode("1.0,abc,3.0")
	var malformed *MalformedVectorError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Position)
	assert.Equal(t, "1.0,abc,3.0", malformed.Input)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "1,2,3", Encode(Vector{1, 2, 3}))
	assert.Equal(t, "-0.75,0.5", Encode(Vector{-0.75, 0.5}))
	assert.Equal(t, "0.1", Encode(Vector{0.1}))
	assert.Equal(t, "", Encode(Vector{}))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= MaxDimensions; n++ {
		for i := 0; i < 200; i++ {
			v := make(Vector, n)
			for j := range v {
				v[j] = (rng.Float64() - 0.5) * math.Pow(10, float64(rng.Intn(40)-20))
			}
			got, err := Decode(Encode(v))
			require.NoError(t, err)
			require.Equal(t, v, got, "round trip of %v gave %v", v, got)
		}
	}
}

func TestEncodeDecode_RoundTripExtremes(t *testing.T) {
	v := Vector{math.MaxFloat64, -math.MaxFloat64, math.SmallestNonzeroFloat64, 0, 1.0 / 3.0}
	got, err := Decode(Encode(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestDecode_NegativeZero(t *testing.T) {
	v, err := Decode("-0,-0.0,0")
	require.NoError(t, err)
	for i, x := range v {
		assert.False(t, math.Signbit(x), "component %d kept its sign bit", i)
	}
	assert.Equal(t, "0,0,0", Encode(v))
}

func BenchmarkDecode(b *testing.B) {
	text := "0.125,-3.5,1e10,42,0.0001,-0.75,7,8"
	for i := 0; i < b.N; i++ {
		_, _ = Decode(text)
	}
}

func BenchmarkEncode(b *testing.B) {
	v := Vector{0.125, -3.5, 1e10, 42, 0.0001, -0.75, 7, 8}
	for i := 0; i < b.N; i++ {
		_ = Encode(v)
	}
}
