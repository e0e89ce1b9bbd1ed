package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSized(t *testing.T, path string, n int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, n), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiskUsageBytes(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "documents.db")
	writeSized(t, db, 100)
	writeSized(t, db+"-wal", 20)
	writeSized(t, db+"-shm", 3)
	index := filepath.Join(dir, "points")
	writeSized(t, filepath.Join(index, "index_meta.json"), 7)
	writeSized(t, filepath.Join(index, "store", "root.bolt"), 50)

	tests := []struct {
		name  string
		paths []string
		want  int64
	}{
		{"database with sidecars", []string{db}, 123},
		{"index directory", []string{index}, 57},
		{"database and index", []string{db, index}, 180},
		{"missing path is skipped", []string{filepath.Join(dir, "nonexistent"), index}, 57},
		{"empty path is skipped", []string{"", db}, 123},
		{"nothing", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiskUsageBytes(tt.paths...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("DiskUsageBytes(%v) = %d, want %d", tt.paths, got, tt.want)
			}
		})
	}
}

func TestDiskUsageBytes_SQLiteStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "documents.db")
	s, err := NewSQLiteStorage(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := DiskUsageBytes(path)
	if err != nil {
		t.Fatal(err)
	}
	if got <= 0 {
		t.Errorf("expected a non-empty database, got %d bytes", got)
	}
}
