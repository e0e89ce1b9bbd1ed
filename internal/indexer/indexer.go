// Package indexer turns JSON documents into point index entries and stored sources.
package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/vecsearch/internal/config"
	"github.com/hyperjump/vecsearch/internal/field"
	"github.com/hyperjump/vecsearch/internal/mapping"
	"github.com/hyperjump/vecsearch/internal/metrics"
	"github.com/hyperjump/vecsearch/internal/models"
	"github.com/hyperjump/vecsearch/internal/pointindex"
	"github.com/hyperjump/vecsearch/internal/storage"
	"github.com/hyperjump/vecsearch/internal/vector"
)

// ErrInvalidDocument is returned when a document source is not a JSON object.
var ErrInvalidDocument = errors.New("invalid document")

// FieldError reports which field of a document failed to index.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("failed to parse field [%s]: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Indexer indexes documents into storage and the point index.
type Indexer struct {
	storage     storage.Storage
	index       pointindex.Index
	skipBadData bool
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Metrics

	mu      sync.RWMutex
	mapping *mapping.Mapping

	// writeMu keeps the point index and the stored source of a document in step.
	writeMu sync.Mutex
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithLogger sets a logger for debug output (document indexed, field skipped, etc.).
func WithLogger(l *zap.Logger) IndexerOption {
	return func(idx *Indexer) { idx.logger = l }
}

// WithMetrics records document and field outcomes.
func WithMetrics(m *metrics.Metrics) IndexerOption {
	return func(idx *Indexer) { idx.metrics = m }
}

// NewIndexer creates an indexer with an empty mapping. Call Restore to load a
// previously saved mapping.
func NewIndexer(store storage.Storage, index pointindex.Index, cfg *config.IndexConfig, opts ...IndexerOption) *Indexer {
	idx := &Indexer{
		storage:     store,
		index:       index,
		skipBadData: cfg.OnFieldError == config.OnFieldErrorSkip,
		concurrency: cfg.Concurrency,
		logger:      zap.NewNop(),
		mapping:     mapping.Empty(),
	}
	if idx.concurrency <= 0 {
		idx.concurrency = 1
	}
	for _, opt := range opts {
		opt(idx)
	}
	if idx.logger == nil {
		idx.logger = zap.NewNop()
	}
	return idx
}

// Mapping returns the current mapping.
func (idx *Indexer) Mapping() *mapping.Mapping {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.mapping
}

// Restore loads the mapping saved in storage, if any.
func (idx *Indexer) Restore(ctx context.Context) error {
	data, err := idx.storage.LoadMapping(ctx)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	m, err := mapping.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse stored mapping: %w", err)
	}
	idx.mu.Lock()
	idx.mapping = m
	idx.mu.Unlock()
	idx.logger.Info("mapping restored", zap.Int("fields", m.Len()))
	return nil
}

// UpdateMapping parses data, merges it into the current mapping and persists the result.
// Existing fields cannot change their dimensions.
func (idx *Indexer) UpdateMapping(ctx context.Context, data []byte) (*mapping.Mapping, error) {
	incoming, err := mapping.Parse(data)
	if err != nil {
		return nil, err
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	merged, err := idx.mapping.Merge(incoming)
	if err != nil {
		return nil, err
	}
	rendered, err := json.Marshal(merged.Render(true))
	if err != nil {
		return nil, fmt.Errorf("failed to render mapping: %w", err)
	}
	if err := idx.storage.SaveMapping(ctx, rendered); err != nil {
		return nil, err
	}
	idx.mapping = merged
	idx.logger.Info("mapping updated", zap.Int("fields", merged.Len()))
	return merged, nil
}

// IndexDocument validates the mapped vector fields of input, applies their entries to
// the point index and stores the source. Returns the outcome; the error is non-nil
// when the document was rejected.
func (idx *Indexer) IndexDocument(ctx context.Context, input *models.DocumentInput) (*models.IndexOutcome, error) {
	if input.ID == "" {
		input.ID = uuid.New().String()
	}
	outcome := &models.IndexOutcome{ID: input.ID}

	entries, skipped, err := idx.entries(input)
	if err != nil {
		return idx.reject(outcome, err)
	}
	outcome.SkippedFields = skipped

	idx.writeMu.Lock()
	defer idx.writeMu.Unlock()
	prev, err := idx.storedDocument(ctx, input.ID)
	if err != nil {
		return idx.reject(outcome, err)
	}
	if err := idx.index.Apply(ctx, input.ID, entries); err != nil {
		return idx.reject(outcome, fmt.Errorf("failed to index points: %w", err))
	}
	doc := &models.Document{ID: input.ID, Source: input.Source}
	if err := idx.storage.PutDocument(ctx, doc); err != nil {
		idx.restorePoints(ctx, input.ID, prev)
		return idx.reject(outcome, fmt.Errorf("failed to store document: %w", err))
	}

	outcome.Status = models.StatusIndexed
	idx.metrics.DocumentIndexed(models.StatusIndexed)
	idx.logger.Debug("indexer document indexed",
		zap.String("id", input.ID),
		zap.Int("entries", len(entries)),
		zap.Strings("skipped_fields", skipped),
	)
	return outcome, nil
}

// storedDocument returns the stored version of id, or nil when there is none.
func (idx *Indexer) storedDocument(ctx context.Context, id string) (*models.Document, error) {
	doc, err := idx.storage.GetDocument(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stored document: %w", err)
	}
	return doc, nil
}

// restorePoints puts the point index entries of id back to what prev describes.
// A nil prev means the document did not exist.
func (idx *Indexer) restorePoints(ctx context.Context, id string, prev *models.Document) {
	var entries []field.Entry
	if prev != nil {
		var err error
		entries, _, err = idx.entries(&models.DocumentInput{ID: id, Source: prev.Source})
		if err != nil {
			idx.logger.Warn("stored document no longer indexes, dropping its points",
				zap.String("id", id), zap.Error(err))
			prev = nil
		}
	}
	var err error
	if prev == nil {
		err = idx.index.Delete(ctx, id)
	} else {
		err = idx.index.Apply(ctx, id, entries)
	}
	if err != nil {
		idx.logger.Warn("failed to roll back point index", zap.String("id", id), zap.Error(err))
	}
}

func (idx *Indexer) reject(outcome *models.IndexOutcome, err error) (*models.IndexOutcome, error) {
	outcome.Status = models.StatusRejected
	outcome.Error = err.Error()
	idx.metrics.DocumentIndexed(models.StatusRejected)
	idx.logger.Debug("indexer document rejected", zap.String("id", outcome.ID), zap.Error(err))
	return outcome, err
}

// entries converts every mapped field present in the source. Under the skip policy a
// failing field is dropped and reported in skipped.
func (idx *Indexer) entries(input *models.DocumentInput) (entries []field.Entry, skipped []string, err error) {
	source, err := decodeSource(input.Source)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range idx.Mapping().Fields() {
		raw, err := fieldText(source[f.Name()])
		if err == nil {
			var fieldEntries []field.Entry
			fieldEntries, err = f.IndexValue(raw)
			entries = append(entries, fieldEntries...)
		}
		if err == nil {
			continue
		}
		idx.metrics.FieldError(errorReason(err))
		if !idx.skipBadData {
			return nil, nil, &FieldError{Field: f.Name(), Err: err}
		}
		idx.logger.Warn("skipping field with bad data",
			zap.String("id", input.ID), zap.String("field", f.Name()), zap.Error(err))
		skipped = append(skipped, f.Name())
	}
	return entries, skipped, nil
}

func decodeSource(data json.RawMessage) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: source must be a JSON object", ErrInvalidDocument)
	}
	var source map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &source); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return source, nil
}

// fieldText extracts the raw text of a vector value. Missing and null mean absent.
// A JSON number is taken as its literal text, so a one-dimensional value may be
// written unquoted.
func fieldText(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch {
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		s := n.String()
		return &s, nil
	default:
		return nil, &vector.MalformedVectorError{
			Input:  string(raw),
			Reason: "expected a string of comma-separated numbers",
		}
	}
}

func errorReason(err error) string {
	var malformed *vector.MalformedVectorError
	var mismatch *vector.DimensionMismatchError
	switch {
	case errors.As(err, &malformed):
		return "malformed"
	case errors.As(err, &mismatch):
		return "dimension_mismatch"
	default:
		return "other"
	}
}

// IndexBulk indexes inputs concurrently. One outcome is returned per input, in order;
// a rejected document does not stop the others. The error is non-nil only when ctx
// is cancelled.
func (idx *Indexer) IndexBulk(ctx context.Context, inputs []*models.DocumentInput) ([]*models.IndexOutcome, error) {
	outcomes := make([]*models.IndexOutcome, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcome, _ := idx.IndexDocument(gctx, input)
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// DeleteDocument removes a document from the point index and storage.
// Returns storage.ErrNotFound when the document does not exist.
func (idx *Indexer) DeleteDocument(ctx context.Context, id string) error {
	idx.writeMu.Lock()
	defer idx.writeMu.Unlock()
	prev, err := idx.storage.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if err := idx.index.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete from point index: %w", err)
	}
	if err := idx.storage.DeleteDocument(ctx, id); err != nil {
		idx.restorePoints(ctx, id, prev)
		return err
	}
	idx.metrics.DocumentIndexed("deleted")
	idx.logger.Debug("indexer document deleted", zap.String("id", id))
	return nil
}
