package search

import (
	"errors"
	"fmt"

	"github.com/hyperjump/vecsearch/internal/field"
	"github.com/hyperjump/vecsearch/internal/models"
)

// ErrInvalidRequest is returned for a search request that cannot be translated.
var ErrInvalidRequest = errors.New("invalid search request")

// Query kinds, used as metric labels.
const (
	KindRange  = "range"
	KindTerm   = "term"
	KindExists = "exists"
)

// ProcessQuery validates req, applies size defaults, and translates its clause into
// the target field name and a field.QueryRequest.
func ProcessQuery(req *models.SearchRequest, defaultSize, maxSize int) (fieldName, kind string, qr field.QueryRequest, err error) {
	if err := req.Validate(defaultSize, maxSize); err != nil {
		return "", "", nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	q := req.Query
	switch {
	case len(q.Range) > 0:
		for name, clause := range q.Range {
			lower, upper, incL, incU, err := clause.Bounds()
			if err != nil {
				return "", "", nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
			}
			return name, KindRange, field.RangeRequest{
				Lower: lower, Upper: upper, IncludeLower: incL, IncludeUpper: incU,
			}, nil
		}
	case len(q.Term) > 0:
		for name, value := range q.Term {
			return name, KindTerm, field.TermRequest{Value: string(value)}, nil
		}
	case q.Exists != nil:
		return q.Exists.Field, KindExists, field.ExistsRequest{}, nil
	}
	return "", "", nil, ErrInvalidRequest
}
