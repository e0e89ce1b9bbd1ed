package pointindex

import (
	"context"
	"fmt"
	"testing"
)

func populate(b *testing.B, idx Index, n int) {
	b.Helper()
	f := mustField(b, "v", 3)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		indexRaw(b, idx, f, fmt.Sprintf("doc-%05d", i), fmt.Sprintf("%g,%g,%g", x, 1-x, x/2))
	}
}

func benchmarkRangeSearch(b *testing.B, idx Index) {
	defer idx.Close()
	populate(b, idx, 1000)
	q, err := mustField(b, "v", 3).RangeQuery(str("0.25,0,0"), str("0.75,1,1"), true, true)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = idx.Search(ctx, q, 0, 10)
	}
}

func BenchmarkMemoryIndexRangeSearch(b *testing.B) {
	benchmarkRangeSearch(b, NewMemoryIndex())
}

func BenchmarkBleveIndexRangeSearch(b *testing.B) {
	idx, err := NewBleveIndex("")
	if err != nil {
		b.Fatal(err)
	}
	benchmarkRangeSearch(b, idx)
}

func BenchmarkMemoryIndexApply(b *testing.B) {
	idx := NewMemoryIndex()
	f := mustField(b, "v", 8)
	raw := "0.1,0.2,0.3,0.4,0.5,0.6,0.7,0.8"
	entries, err := f.IndexValue(&raw)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.Apply(ctx, fmt.Sprintf("doc-%d", i%1000), entries)
	}
}
