package models

import "encoding/json"

// Hit is a single matching document.
type Hit struct {
	ID     string          `json:"id"`
	Source json.RawMessage `json:"source,omitempty"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Total     uint64 `json:"total"`
	Hits      []*Hit `json:"hits"`
	QueryTime int64  `json:"query_time_ms"`
	// Query is the executed query in its readable form, e.g. "v:[0,0 TO 1,1]".
	Query string `json:"query"`
}
