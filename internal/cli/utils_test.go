package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/hyperjump/vecsearch/internal/models"
)

func TestWriteSearchResults_JSON(t *testing.T) {
	response := &models.SearchResponse{
		Query:     "v:[0,0 TO 1,1]",
		QueryTime: 42,
		Total:     1,
		Hits: []*models.Hit{
			{ID: "doc-1", Source: json.RawMessage(`{"v":"0.5,0.5"}`)},
		},
	}
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, response, OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded models.SearchResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != response.Query || decoded.QueryTime != 42 || decoded.Total != 1 {
		t.Errorf("decoded %+v", decoded)
	}
	if len(decoded.Hits) != 1 || decoded.Hits[0].ID != "doc-1" {
		t.Errorf("decoded hits: want one hit with id doc-1, got %+v", decoded.Hits)
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	response := &models.SearchResponse{
		Query:     "exists:v",
		QueryTime: 10,
		Total:     3,
		Hits: []*models.Hit{
			{ID: "id1", Source: json.RawMessage(`{"v":"1,2"}`)},
			{ID: "id2"},
		},
	}
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, response, OutputText); err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"exists:v", "Found 3 documents", "10ms", "showing 2", "1. ID: id1", `{"v":"1,2"}`, "2. ID: id2"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteSearchResults_unknownFormatTreatedAsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, &models.SearchResponse{}, SearchOutputFormat("unknown")); err != nil {
		t.Fatalf("WriteSearchResults(unknown): %v", err)
	}
	if !strings.Contains(buf.String(), "Found") {
		t.Errorf("unknown format should fall back to text; got %q", buf.String())
	}
}

func TestWriteOutcomes(t *testing.T) {
	var buf bytes.Buffer
	rejected := WriteOutcomes(&buf, []*models.IndexOutcome{
		{ID: "a", Status: models.StatusIndexed},
		{ID: "b", Status: models.StatusIndexed, SkippedFields: []string{"v", "w"}},
		{ID: "c", Status: models.StatusRejected, Error: "failed to parse field [v]"},
	})
	if rejected != 1 {
		t.Errorf("rejected = %d, want 1", rejected)
	}
	out := buf.String()
	for _, sub := range []string{"indexed  a", "skipped: v, w", "rejected c: failed to parse field [v]", "2 indexed, 1 rejected"} {
		if !strings.Contains(out, sub) {
			t.Errorf("output missing %q:\n%s", sub, out)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"empty", "", 5, ""},
		{"short", "hi", 5, "hi"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello..."},
		{"maxLen zero", "ab", 0, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPrintSearchResults(t *testing.T) {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
		_ = w.Close()
	}()
	PrintSearchResults(&models.SearchResponse{Query: "exists:v"})
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	if !strings.Contains(buf.String(), "Found 0 documents") {
		t.Errorf("PrintSearchResults should write to stdout; got %q", buf.String())
	}
}
