package pointindex

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/hyperjump/vecsearch/internal/field"
)

// FieldNamesField is the keyword field holding existence markers.
const FieldNamesField = "_field_names"

// BleveIndex implements Index on Bleve. Each point component is indexed as a
// numeric field named "<field>.<axis>"; a box query is the conjunction of one
// numeric range per axis.
type BleveIndex struct {
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path. An empty path creates
// a memory-only index.
func NewBleveIndex(path string) (*BleveIndex, error) {
	im := newIndexMapping()

	if path == "" {
		index, err := bleve.NewMemOnly(im)
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory Bleve index: %w", err)
		}
		return &BleveIndex{index: index}, nil
	}

	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index}, nil
	}

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

func newIndexMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	// Markers are exact field names; the keyword analyzer keeps them as single terms.
	markers := bleve.NewKeywordFieldMapping()
	markers.Store = false
	markers.IncludeInAll = false
	docMapping.AddFieldMappingsAt(FieldNamesField, markers)

	im.DefaultMapping = docMapping
	// Point components are mapped dynamically as numeric fields and never stored.
	im.StoreDynamic = false
	im.DocValuesDynamic = false
	return im
}

// AxisField returns the Bleve field name holding component axis of name.
func AxisField(name string, axis int) string {
	return name + "." + strconv.Itoa(axis)
}

// Type returns the index type identifier.
func (b *BleveIndex) Type() string {
	return string(IndexTypeBleve)
}

// Apply indexes the entries of docID, replacing any previous version.
func (b *BleveIndex) Apply(ctx context.Context, docID string, entries []field.Entry) error {
	if err := checkEntries(entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		return b.Delete(ctx, docID)
	}
	doc := make(map[string]interface{})
	var markers []string
	for _, e := range entries {
		switch e.Kind {
		case field.PointEntry:
			for axis, x := range e.Vector {
				doc[AxisField(e.Field, axis)] = x
			}
		case field.ExistsEntry:
			markers = append(markers, e.Field)
		}
	}
	if len(markers) > 0 {
		doc[FieldNamesField] = markers
	}
	if err := b.index.Index(docID, doc); err != nil {
		return fmt.Errorf("failed to index points: %w", err)
	}
	return nil
}

// Delete removes a document from the index.
func (b *BleveIndex) Delete(ctx context.Context, docID string) error {
	return b.index.Delete(docID)
}

// Search translates q to a Bleve query and returns one page of IDs.
func (b *BleveIndex) Search(ctx context.Context, q field.Query, from, size int) (*Result, error) {
	bq, err := translate(q)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		count, err := b.index.DocCount()
		if err != nil {
			return nil, fmt.Errorf("failed to get doc count: %w", err)
		}
		size = int(count)
	}
	req := bleve.NewSearchRequestOptions(bq, size, from, false)
	req.SortBy([]string{"_id"})
	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := &Result{Total: res.Total, IDs: make([]string, len(res.Hits))}
	for i, hit := range res.Hits {
		out.IDs[i] = hit.ID
	}
	return out, nil
}

func translate(q field.Query) (blevequery.Query, error) {
	switch q := q.(type) {
	case *field.PointRangeQuery:
		if len(q.Lower) != len(q.Upper) || len(q.Lower) == 0 {
			return nil, fmt.Errorf("range query on [%s] has bounds of %d and %d dimensions", q.Field, len(q.Lower), len(q.Upper))
		}
		axes := make([]blevequery.Query, len(q.Lower))
		for i := range q.Lower {
			axes[i] = axisRange(AxisField(q.Field, i), q.Lower[i], q.Upper[i], q.IncludeLower, q.IncludeUpper)
		}
		return bleve.NewConjunctionQuery(axes...), nil
	case *field.ExistsQuery:
		tq := bleve.NewTermQuery(q.Field)
		tq.SetField(FieldNamesField)
		return tq, nil
	default:
		return nil, fmt.Errorf("unsupported query type %T", q)
	}
}

// axisRange builds the numeric range for one axis. Infinite components are
// open, so they are always inclusive to also match stored infinities.
func axisRange(name string, lo, hi float64, includeLower, includeUpper bool) blevequery.Query {
	if math.IsInf(lo, -1) {
		includeLower = true
	}
	if math.IsInf(hi, 1) {
		includeUpper = true
	}
	nq := bleve.NewNumericRangeInclusiveQuery(&lo, &hi, &includeLower, &includeUpper)
	nq.SetField(name)
	return nq
}

// DocCount returns the number of documents with at least one entry.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
