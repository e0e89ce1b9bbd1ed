// Package cli provides output helpers for the vecsearch command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/vecsearch/internal/models"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\n%s\nFound %d documents in %dms (showing %d)\n\n",
		response.Query, response.Total, response.QueryTime, len(response.Hits))
	for i, hit := range response.Hits {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "%d. ID: %s\n", i+1, hit.ID)
		if len(hit.Source) > 0 {
			fmt.Fprintf(w, "%s\n", Truncate(string(hit.Source), 200))
		}
		fmt.Fprintln(w)
	}
}

// WriteOutcomes writes one line per indexed document and returns the number rejected.
func WriteOutcomes(w io.Writer, outcomes []*models.IndexOutcome) int {
	rejected := 0
	for _, o := range outcomes {
		switch {
		case o.Status == models.StatusRejected:
			rejected++
			fmt.Fprintf(w, "rejected %s: %s\n", o.ID, o.Error)
		case len(o.SkippedFields) > 0:
			fmt.Fprintf(w, "indexed  %s (skipped: %s)\n", o.ID, strings.Join(o.SkippedFields, ", "))
		default:
			fmt.Fprintf(w, "indexed  %s\n", o.ID)
		}
	}
	fmt.Fprintf(w, "\n%d indexed, %d rejected\n", len(outcomes)-rejected, rejected)
	return rejected
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
