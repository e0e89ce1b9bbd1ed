// Package models defines core data structures for documents, search requests, and results.
package models

import (
	"encoding/json"
	"time"
)

// Document is a stored document: its ID and the JSON source it was indexed from.
type Document struct {
	ID        string          `json:"id" db:"id"`
	Source    json.RawMessage `json:"source" db:"source"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// DocumentInput is the input for creating or replacing a document.
// Source must be a JSON object; vector fields hold comma-separated numbers as text.
type DocumentInput struct {
	ID     string          `json:"id,omitempty"`
	Source json.RawMessage `json:"source"`
}

// IndexOutcome reports the result of indexing one document of a bulk request.
type IndexOutcome struct {
	ID            string   `json:"id"`
	Status        string   `json:"status"`
	Error         string   `json:"error,omitempty"`
	SkippedFields []string `json:"skipped_fields,omitempty"`
}

const (
	// StatusIndexed marks a document that was stored and indexed.
	StatusIndexed = "indexed"
	// StatusRejected marks a document that was not stored.
	StatusRejected = "rejected"
)
