package field

import (
	"fmt"

	"github.com/hyperjump/vecsearch/internal/vector"
)

// Query is a query object executed by a point or existence index.
type Query interface {
	// FieldName returns the field the query targets.
	FieldName() string
	isQuery()
}

// PointRangeQuery selects documents whose point lies inside [Lower, Upper] on
// every axis. Infinite components are open. Inclusivity is applied by the
// executing index.
type PointRangeQuery struct {
	Field        string
	Lower        vector.Vector
	Upper        vector.Vector
	IncludeLower bool
	IncludeUpper bool
}

// FieldName implements Query.
func (q *PointRangeQuery) FieldName() string { return q.Field }

func (*PointRangeQuery) isQuery() {}

func (q *PointRangeQuery) String() string {
	lo, hi := "(", ")"
	if q.IncludeLower {
		lo = "["
	}
	if q.IncludeUpper {
		hi = "]"
	}
	return fmt.Sprintf("%s:%s%s TO %s%s", q.Field, lo, vector.Encode(q.Lower), vector.Encode(q.Upper), hi)
}

// ExistsQuery selects documents that have any value for Field.
type ExistsQuery struct {
	Field string
}

// FieldName implements Query.
func (q *ExistsQuery) FieldName() string { return q.Field }

func (*ExistsQuery) isQuery() {}

func (q *ExistsQuery) String() string { return "exists:" + q.Field }

// UnsupportedQueryError is returned for query kinds a vector field cannot answer.
type UnsupportedQueryError struct {
	Field string
	Kind  string
}

func (e *UnsupportedQueryError) Error() string {
	return fmt.Sprintf("no exact searching on this field! [%s] (%s query)", e.Field, e.Kind)
}

// QueryRequest is a parsed query request against a single vector field:
// one of RangeRequest, TermRequest or ExistsRequest.
type QueryRequest interface {
	queryRequest()
}

// RangeRequest asks for a box query. Nil bounds are open.
type RangeRequest struct {
	Lower        *string
	Upper        *string
	IncludeLower bool
	IncludeUpper bool
}

// TermRequest asks for an exact-match query. Vector fields always reject it.
type TermRequest struct {
	Value string
}

// ExistsRequest asks for documents that have the field.
type ExistsRequest struct{}

func (RangeRequest) queryRequest()  {}
func (TermRequest) queryRequest()   {}
func (ExistsRequest) queryRequest() {}

// BuildQuery turns req into a query object for this field.
func (f *Field) BuildQuery(req QueryRequest) (Query, error) {
	switch r := req.(type) {
	case RangeRequest:
		return f.RangeQuery(r.Lower, r.Upper, r.IncludeLower, r.IncludeUpper)
	case *RangeRequest:
		return f.RangeQuery(r.Lower, r.Upper, r.IncludeLower, r.IncludeUpper)
	case TermRequest:
		return f.TermQuery(r.Value)
	case *TermRequest:
		return f.TermQuery(r.Value)
	case ExistsRequest, *ExistsRequest:
		return f.ExistsQuery(), nil
	default:
		return nil, &UnsupportedQueryError{Field: f.name, Kind: fmt.Sprintf("%T", req)}
	}
}

// ExistsQuery returns a query for documents that have this field.
func (f *Field) ExistsQuery() Query {
	return &ExistsQuery{Field: f.name}
}

// TermQuery always fails: exact matching on a continuous vector is not supported.
func (f *Field) TermQuery(string) (Query, error) {
	return nil, &UnsupportedQueryError{Field: f.name, Kind: "term"}
}

// RangeQuery builds a box query. A nil lower bound is every axis at -Inf, a nil
// upper bound every axis at +Inf. Present bounds are decoded and validated
// independently of each other.
func (f *Field) RangeQuery(lower, upper *string, includeLower, includeUpper bool) (Query, error) {
	d := f.policy.Dimensions()

	lo, err := f.bound(lower, vector.NegInf(d))
	if err != nil {
		return nil, fmt.Errorf("lower bound: %w", err)
	}
	hi, err := f.bound(upper, vector.PosInf(d))
	if err != nil {
		return nil, fmt.Errorf("upper bound: %w", err)
	}
	return &PointRangeQuery{
		Field:        f.name,
		Lower:        lo,
		Upper:        hi,
		IncludeLower: includeLower,
		IncludeUpper: includeUpper,
	}, nil
}

func (f *Field) bound(text *string, open vector.Vector) (vector.Vector, error) {
	if text == nil {
		return open, nil
	}
	v, err := vector.Decode(*text)
	if err != nil {
		return nil, err
	}
	if err := f.policy.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}
