package pointindex

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hyperjump/vecsearch/internal/field"
	"github.com/hyperjump/vecsearch/internal/vector"
)

// MemoryIndex is an in-memory index using brute-force containment checks.
// Existence markers are kept as one roaring bitmap of document ordinals per field.
// Suitable for tests and small datasets.
type MemoryIndex struct {
	mu     sync.RWMutex
	ords   map[string]uint32 // docID -> ordinal; ordinals are never reused
	ids    []string          // ordinal -> docID
	live   *roaring.Bitmap
	points map[string]map[uint32]vector.Vector // field -> ordinal -> point
	exists map[string]*roaring.Bitmap          // field -> ordinals with a marker
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		ords:   make(map[string]uint32),
		ids:    make([]string, 0),
		live:   roaring.New(),
		points: make(map[string]map[uint32]vector.Vector),
		exists: make(map[string]*roaring.Bitmap),
	}
}

// Type returns the index type identifier.
func (m *MemoryIndex) Type() string {
	return string(IndexTypeMemory)
}

// Apply replaces the entries of docID.
func (m *MemoryIndex) Apply(ctx context.Context, docID string, entries []field.Entry) error {
	if err := checkEntries(entries); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ord := m.ordinalLocked(docID)
	m.removeLocked(ord)
	for _, e := range entries {
		switch e.Kind {
		case field.PointEntry:
			pts, ok := m.points[e.Field]
			if !ok {
				pts = make(map[uint32]vector.Vector)
				m.points[e.Field] = pts
			}
			pts[ord] = e.Vector.Clone()
		case field.ExistsEntry:
			bm, ok := m.exists[e.Field]
			if !ok {
				bm = roaring.New()
				m.exists[e.Field] = bm
			}
			bm.Add(ord)
		}
		m.live.Add(ord)
	}
	return nil
}

func (m *MemoryIndex) ordinalLocked(docID string) uint32 {
	if ord, ok := m.ords[docID]; ok {
		return ord
	}
	ord := uint32(len(m.ids))
	m.ids = append(m.ids, docID)
	m.ords[docID] = ord
	return ord
}

func (m *MemoryIndex) removeLocked(ord uint32) {
	for _, pts := range m.points {
		delete(pts, ord)
	}
	for _, bm := range m.exists {
		bm.Remove(ord)
	}
	m.live.Remove(ord)
}

// Delete removes all entries of docID.
func (m *MemoryIndex) Delete(ctx context.Context, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ord, ok := m.ords[docID]; ok {
		m.removeLocked(ord)
	}
	return nil
}

// Search scans the points of the queried field.
func (m *MemoryIndex) Search(ctx context.Context, q field.Query, from, size int) (*Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits *roaring.Bitmap
	switch q := q.(type) {
	case *field.PointRangeQuery:
		if len(q.Lower) != len(q.Upper) || len(q.Lower) == 0 {
			return nil, fmt.Errorf("range query on [%s] has bounds of %d and %d dimensions", q.Field, len(q.Lower), len(q.Upper))
		}
		hits = roaring.New()
		for ord, p := range m.points[q.Field] {
			if contains(q, p) {
				hits.Add(ord)
			}
		}
	case *field.ExistsQuery:
		if bm, ok := m.exists[q.Field]; ok {
			hits = bm.Clone()
		} else {
			hits = roaring.New()
		}
	default:
		return nil, fmt.Errorf("unsupported query type %T", q)
	}

	ids := make([]string, 0, hits.GetCardinality())
	it := hits.Iterator()
	for it.HasNext() {
		ids = append(ids, m.ids[it.Next()])
	}
	sort.Strings(ids)
	start, end := pageBounds(len(ids), from, size)
	return &Result{Total: uint64(len(ids)), IDs: ids[start:end]}, nil
}

func contains(q *field.PointRangeQuery, p vector.Vector) bool {
	if len(p) != len(q.Lower) {
		return false
	}
	for i, x := range p {
		if !axisMatches(x, q.Lower[i], q.Upper[i], q.IncludeLower, q.IncludeUpper) {
			return false
		}
	}
	return true
}

// DocCount returns the number of documents with at least one entry.
func (m *MemoryIndex) DocCount() (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.live.GetCardinality(), nil
}

// Close is a no-op for MemoryIndex.
func (m *MemoryIndex) Close() error {
	return nil
}

// Save persists the points to path. Directory is created if needed. Format:
// count (4), then per point: idLen (4), id, fieldLen (4), field, dim (4),
// dim*8 bytes of float64. Existence markers are rebuilt from points on Load.
func (m *MemoryIndex) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()

	var n uint32
	for _, pts := range m.points {
		n += uint32(len(pts))
	}
	if err := binary.Write(f, binary.LittleEndian, n); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	fields := make([]string, 0, len(m.points))
	for name := range m.points {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		for ord, p := range m.points[name] {
			if err := writeString(f, m.ids[ord]); err != nil {
				return fmt.Errorf("write id: %w", err)
			}
			if err := writeString(f, name); err != nil {
				return fmt.Errorf("write field: %w", err)
			}
			if err := binary.Write(f, binary.LittleEndian, uint32(len(p))); err != nil {
				return fmt.Errorf("write dimensions: %w", err)
			}
			if _, err := f.Write(float64SliceToBytes(p)); err != nil {
				return fmt.Errorf("write point: %w", err)
			}
		}
	}
	return nil
}

// Load reads points from path and replaces the in-memory contents.
// If the file does not exist, no error is returned and the index is unchanged.
func (m *MemoryIndex) Load(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	var n uint32
	if err := binary.Read(f, binary.LittleEndian, &n); err != nil {
		return fmt.Errorf("read count: %w", err)
	}
	entries := make(map[string][]field.Entry)
	order := make([]string, 0)
	for i := uint32(0); i < n; i++ {
		id, err := readString(f)
		if err != nil {
			return fmt.Errorf("read id: %w", err)
		}
		name, err := readString(f)
		if err != nil {
			return fmt.Errorf("read field: %w", err)
		}
		var dim uint32
		if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
			return fmt.Errorf("read dimensions: %w", err)
		}
		if dim == 0 || dim > vector.MaxDimensions {
			return fmt.Errorf("invalid point dimensions %d in index file", dim)
		}
		buf := make([]byte, dim*8)
		if _, err := io.ReadFull(f, buf); err != nil {
			return fmt.Errorf("read point: %w", err)
		}
		if _, ok := entries[id]; !ok {
			order = append(order, id)
		}
		entries[id] = append(entries[id],
			field.Entry{Kind: field.PointEntry, Field: name, Vector: bytesToFloat64Slice(buf)},
			field.Entry{Kind: field.ExistsEntry, Field: name},
		)
	}

	fresh := NewMemoryIndex()
	for _, id := range order {
		if err := fresh.Apply(context.Background(), id, entries[id]); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ords, m.ids, m.live, m.points, m.exists = fresh.ords, fresh.ids, fresh.live, fresh.points, fresh.exists
	return nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func float64SliceToBytes(s []float64) []byte {
	const size = 8
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint64(out[i*size:(i+1)*size], math.Float64bits(v))
	}
	return out
}

func bytesToFloat64Slice(b []byte) vector.Vector {
	const size = 8
	out := make(vector.Vector, len(b)/size)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*size : (i+1)*size]))
	}
	return out
}
