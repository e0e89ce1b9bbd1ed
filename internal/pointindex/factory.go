package pointindex

import "fmt"

// IndexType represents the type of point index to use.
type IndexType string

const (
	// IndexTypeBleve stores points as Bleve numeric fields. Persistent when given a path.
	IndexTypeBleve IndexType = "bleve"
	// IndexTypeMemory uses in-memory brute-force scans. Good for tests and small datasets.
	IndexTypeMemory IndexType = "memory"
)

// NewIndex creates a point index of the specified type.
// Supported types: "bleve" (default), "memory". For bleve, an empty path gives
// a memory-only Bleve index.
func NewIndex(indexType string, path string) (Index, error) {
	switch IndexType(indexType) {
	case IndexTypeBleve, "":
		return NewBleveIndex(path)
	case IndexTypeMemory:
		return NewMemoryIndex(), nil
	default:
		return nil, fmt.Errorf("unknown index type: %s (supported: bleve, memory)", indexType)
	}
}
