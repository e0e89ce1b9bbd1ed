// Package pointindex stores per-document vector points and field-existence
// markers, and executes box and exists queries over them.
package pointindex

import (
	"context"
	"fmt"
	"math"

	"github.com/hyperjump/vecsearch/internal/field"
	"github.com/hyperjump/vecsearch/internal/vector"
)

// Index is the point and existence index used by the indexer and search engine.
//
// Range semantics: a point matches a *field.PointRangeQuery when every
// component lies between the bounds. A finite bound component is inclusive or
// exclusive per IncludeLower/IncludeUpper. An infinite bound component is open
// and matches any value, including an infinite one.
type Index interface {
	// Apply replaces all entries of docID with entries. Empty entries remove the document.
	Apply(ctx context.Context, docID string, entries []field.Entry) error
	Delete(ctx context.Context, docID string) error
	// Search runs q and returns matching document IDs in ascending ID order.
	Search(ctx context.Context, q field.Query, from, size int) (*Result, error)
	DocCount() (uint64, error)
	Type() string
	Close() error
}

// Result is one page of matching document IDs.
type Result struct {
	Total uint64
	IDs   []string
}

// checkEntries rejects entries the point index cannot store.
func checkEntries(entries []field.Entry) error {
	for _, e := range entries {
		if e.Field == "" {
			return fmt.Errorf("entry without field name")
		}
		if e.Kind != field.PointEntry {
			continue
		}
		if d := e.Vector.Dimension(); d == 0 || d > vector.MaxDimensions {
			return fmt.Errorf("point for field [%s] has %d dimensions, index supports 1 to %d", e.Field, d, vector.MaxDimensions)
		}
	}
	return nil
}

// axisMatches applies the range semantics of Index to one component.
func axisMatches(x, lo, hi float64, includeLower, includeUpper bool) bool {
	if !math.IsInf(lo, -1) {
		if includeLower && x < lo || !includeLower && x <= lo {
			return false
		}
	}
	if !math.IsInf(hi, 1) {
		if includeUpper && x > hi || !includeUpper && x >= hi {
			return false
		}
	}
	return true
}

func pageBounds(total, from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if from > total {
		from = total
	}
	end := total
	if size >= 0 && from+size < total {
		end = from + size
	}
	return from, end
}
