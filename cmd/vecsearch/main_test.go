package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperjump/vecsearch/internal/config"
	"github.com/hyperjump/vecsearch/internal/models"
	"go.uber.org/zap"
)

func TestSearchArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after field are moved first",
			args:     []string{"location", "-gte", "0,0"},
			expected: []string{"-gte", "0,0", "location"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-gte", "0,0", "location"},
			expected: []string{"-gte", "0,0", "location"},
		},
		{
			name:     "field only returns unchanged",
			args:     []string{"location"},
			expected: []string{"location"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "negative bound stays with its flag",
			args:     []string{"location", "--gte", "-1,-1", "--lte", "1,1"},
			expected: []string{"--gte", "-1,-1", "--lte", "1,1", "location"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("searchArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildSearchRequest(t *testing.T) {
	t.Run("range", func(t *testing.T) {
		req, err := buildSearchRequest("v", searchFlags{
			gte: "0,0", lt: "1,1", size: 5,
			set: map[string]bool{"gte": true, "lt": true},
		})
		if err != nil {
			t.Fatal(err)
		}
		clause := req.Query.Range["v"]
		if clause == nil || clause.GTE == nil || clause.LT == nil || clause.GT != nil || clause.LTE != nil {
			t.Fatalf("unexpected range clause: %+v", clause)
		}
		lower, upper, incL, incU, err := clause.Bounds()
		if err != nil {
			t.Fatal(err)
		}
		if *lower != "0,0" || *upper != "1,1" || !incL || incU {
			t.Errorf("bounds = %s %s %v %v", *lower, *upper, incL, incU)
		}
		if req.Size != 5 || !req.WantSource() {
			t.Errorf("size = %d, want source = %v", req.Size, req.WantSource())
		}
	})

	t.Run("empty bound value is still a bound", func(t *testing.T) {
		req, err := buildSearchRequest("v", searchFlags{set: map[string]bool{"lte": true}})
		if err != nil {
			t.Fatal(err)
		}
		if req.Query.Range["v"].LTE == nil {
			t.Error("explicit --lte should be kept")
		}
	})

	t.Run("term", func(t *testing.T) {
		req, err := buildSearchRequest("v", searchFlags{term: "1,2", set: map[string]bool{"term": true}})
		if err != nil {
			t.Fatal(err)
		}
		if got := req.Query.Term["v"]; got != "1,2" {
			t.Errorf("term = %q", got)
		}
	})

	t.Run("exists without source", func(t *testing.T) {
		req, err := buildSearchRequest(" v ", searchFlags{exists: true, noSource: true, set: map[string]bool{"exists": true}})
		if err != nil {
			t.Fatal(err)
		}
		if req.Query.Exists == nil || req.Query.Exists.Field != "v" {
			t.Fatalf("exists = %+v", req.Query.Exists)
		}
		if req.WantSource() {
			t.Error("--no-source should disable sources")
		}
	})

	errorCases := []struct {
		name  string
		field string
		flags searchFlags
	}{
		{"no kind", "v", searchFlags{set: map[string]bool{}}},
		{"range and exists", "v", searchFlags{exists: true, set: map[string]bool{"gte": true, "exists": true}}},
		{"term and range", "v", searchFlags{set: map[string]bool{"term": true, "lt": true}}},
		{"blank field", "  ", searchFlags{exists: true, set: map[string]bool{"exists": true}}},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildSearchRequest(tt.field, tt.flags); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSearchConfigPathFromArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		defaultPath string
		want        string
	}{
		{"no config flag", []string{"-size", "5", "v"}, "/default.yaml", "/default.yaml"},
		{"-config present", []string{"-config", "/custom.yaml", "v"}, "/default.yaml", "/custom.yaml"},
		{"--config present", []string{"--config", "/other.yaml"}, "/default.yaml", "/other.yaml"},
		{"config at end", []string{"v", "-config", "/end.yaml"}, "/default.yaml", "/end.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchConfigPathFromArgs(tt.args, tt.defaultPath)
			if got != tt.want {
				t.Errorf("searchConfigPathFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSearchSizeDefaultFromConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
search:
  default_size: 25
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	if got := searchSizeDefaultFromConfig(configPath); got != 25 {
		t.Errorf("searchSizeDefaultFromConfig() = %d, want 25", got)
	}
	if got := searchSizeDefaultFromConfig(filepath.Join(dir, "nonexistent.yaml")); got != 10 {
		t.Errorf("searchSizeDefaultFromConfig(nonexistent) = %d, want 10", got)
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 9200
storage:
  database_path: "./test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s (canon %s), want %s (canon %s)", resolved, resolvedCanon, configPath, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "./test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}

func testConfig(t *testing.T, indexType string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	mappingPath := filepath.Join(dir, "mapping.json")
	mappingBody := `{"properties": {"location": {"type": "vector", "dimensions": 2}}}`
	if err := os.WriteFile(mappingPath, []byte(mappingBody), 0600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		Storage: config.StorageConfig{
			DatabasePath: filepath.Join(dir, "documents.db"),
			IndexPath:    filepath.Join(dir, "points"),
		},
		Index: config.IndexConfig{Type: indexType, MappingFile: mappingPath},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestInitializeComponents_MemorySnapshotSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.IndexTypeMemory)
	logger := zap.NewNop()

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := components.Indexer.Mapping().Field("location"); !ok {
		t.Fatal("mapping file should be applied at startup")
	}
	for id, v := range map[string]string{"a": "0.5,0.5", "b": "3,3"} {
		source := json.RawMessage(`{"location": "` + v + `"}`)
		if _, err := components.Indexer.IndexDocument(ctx, &models.DocumentInput{ID: id, Source: source}); err != nil {
			t.Fatal(err)
		}
	}
	components.Close()
	components.Close()

	reopened, err := initializeComponents(cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	req, err := buildSearchRequest("location", searchFlags{gte: "0,0", lte: "1,1", set: map[string]bool{"gte": true, "lte": true}})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := reopened.Engine.Search(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || len(resp.Hits) != 1 || resp.Hits[0].ID != "a" {
		t.Errorf("unexpected hits after restart: %+v", resp)
	}

	status, err := directStatus(ctx, reopened)
	if err != nil {
		t.Fatal(err)
	}
	if status.Documents != 2 || status.IndexedDocuments != 2 || status.Fields != 1 {
		t.Errorf("unexpected status: %+v", status)
	}
	var buf bytes.Buffer
	writeStatusText(&buf, &status)
	if !strings.Contains(buf.String(), "index_type:") || !strings.Contains(buf.String(), "memory") {
		t.Errorf("status text missing index type:\n%s", buf.String())
	}
}

func TestInitializeComponents_BadMappingFile(t *testing.T) {
	cfg := testConfig(t, config.IndexTypeMemory)
	if err := os.WriteFile(cfg.Index.MappingFile, []byte(`{"properties": {"location": {"type": "text"}}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := initializeComponents(cfg, zap.NewNop()); err == nil {
		t.Error("expected error for an invalid mapping file")
	}
}

func TestCallAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/bad" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "field [v] expects 2 dimensions, got 3", "type": "dimension_mismatch"}`))
			return
		}
		var req models.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(models.SearchResponse{Total: 1, Hits: []*models.Hit{{ID: req.Query.Exists.Field}}})
	}))
	defer srv.Close()

	req := &models.SearchRequest{Query: models.QueryClause{Exists: &models.ExistsClause{Field: "v"}}}
	var resp models.SearchResponse
	if err := callAPI(http.MethodPost, srv.URL+"/search", req, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || resp.Hits[0].ID != "v" {
		t.Errorf("unexpected response: %+v", resp)
	}

	err := callAPI(http.MethodPost, srv.URL+"/bad", req, &resp)
	if err == nil || !strings.Contains(err.Error(), "dimension_mismatch") {
		t.Errorf("expected typed server error, got %v", err)
	}
}
