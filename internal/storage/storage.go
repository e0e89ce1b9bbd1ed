// Package storage defines the persistence interface for document sources and the field mapping.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/vecsearch/internal/models"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// Storage defines document and mapping persistence operations.
type Storage interface {
	// Document operations
	PutDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	GetDocuments(ctx context.Context, ids []string) (map[string]*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, offset, limit int) ([]*models.Document, error)
	DocumentIDsWithPrefix(ctx context.Context, prefix string) ([]string, error)

	// Mapping is stored as its JSON rendering.
	SaveMapping(ctx context.Context, data []byte) error
	LoadMapping(ctx context.Context) ([]byte, error)

	// Stats
	CountDocuments(ctx context.Context) (int64, error)

	Close() error
}
