package vector

import (
	"math"
	"strconv"
	"strings"
)

// Separator joins vector components in the text form.
const Separator = ","

// Encode returns the comma-joined text form of v, e.g. "0.5,1,-2".
func Encode(v Vector) string {
	var b strings.Builder
	for i, x := range v {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	return b.String()
}

// Decode parses the comma-joined text form of a vector. It does not check the
// number of components; that is the Policy's job.
//
// Empty text is malformed: callers treat an absent value as "no vector"
// before calling Decode.
func Decode(text string) (Vector, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &MalformedVectorError{Input: text, Reason: "empty value"}
	}
	parts := strings.Split(text, Separator)
	v := make(Vector, len(parts))
	for i, part := range parts {
		p := strings.TrimSpace(part)
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, &MalformedVectorError{Input: text, Position: i, Reason: "not a number: " + strconv.Quote(p), cause: err}
		}
		if math.IsNaN(x) {
			return nil, &MalformedVectorError{Input: text, Position: i, Reason: "NaN component"}
		}
		if x == 0 {
			// -0 and +0 must land on the same point in every index.
			x = 0
		}
		v[i] = x
	}
	return v, nil
}
