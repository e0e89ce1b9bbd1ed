// Package search runs range, term and exists queries against vector fields.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/vecsearch/internal/config"
	"github.com/hyperjump/vecsearch/internal/mapping"
	"github.com/hyperjump/vecsearch/internal/metrics"
	"github.com/hyperjump/vecsearch/internal/models"
	"github.com/hyperjump/vecsearch/internal/pointindex"
	"github.com/hyperjump/vecsearch/internal/storage"
)

// ErrUnknownField is returned when a query targets a field absent from the mapping.
var ErrUnknownField = errors.New("unknown field")

// MappingSource supplies the current mapping. *indexer.Indexer implements it.
type MappingSource interface {
	Mapping() *mapping.Mapping
}

// Engine resolves queries against the mapping and runs them on the point index.
type Engine struct {
	storage  storage.Storage
	index    pointindex.Index
	mappings MappingSource
	config   *config.SearchConfig
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a logger for query debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics records query counts and latency.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(
	storage storage.Storage,
	index pointindex.Index,
	mappings MappingSource,
	cfg *config.SearchConfig,
	opts ...EngineOption,
) *Engine {
	e := &Engine{
		storage:  storage,
		index:    index,
		mappings: mappings,
		config:   cfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Search runs req and returns matching documents in ascending ID order.
func (e *Engine) Search(ctx context.Context, req *models.SearchRequest) (resp *models.SearchResponse, err error) {
	startTime := time.Now()
	fieldName, kind, qr, err := ProcessQuery(req, e.config.DefaultSize, e.config.MaxSize)
	if err != nil {
		return nil, err
	}
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		e.metrics.QueryExecuted(kind, outcome, startTime)
	}()

	m := e.mappings.Mapping()
	f, ok := m.Field(fieldName)
	if !ok {
		if suggestion, found := m.Suggest(fieldName); found {
			return nil, fmt.Errorf("%w: [%s], did you mean [%s]?", ErrUnknownField, fieldName, suggestion)
		}
		return nil, fmt.Errorf("%w: [%s]", ErrUnknownField, fieldName)
	}
	query, err := f.BuildQuery(qr)
	if err != nil {
		return nil, err
	}
	result, err := e.index.Search(ctx, query, req.From, req.Size)
	if err != nil {
		return nil, fmt.Errorf("point index search failed: %w", err)
	}

	response := &models.SearchResponse{
		Total: result.Total,
		Hits:  make([]*models.Hit, 0, len(result.IDs)),
		Query: fmt.Sprint(query),
	}
	var docs map[string]*models.Document
	if req.WantSource() {
		docs, err = e.storage.GetDocuments(ctx, result.IDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load documents: %w", err)
		}
	}
	for _, id := range result.IDs {
		hit := &models.Hit{ID: id}
		if doc, ok := docs[id]; ok {
			hit.Source = doc.Source
		}
		response.Hits = append(response.Hits, hit)
	}
	response.QueryTime = time.Since(startTime).Milliseconds()

	e.logger.Debug("search executed",
		zap.String("query", response.Query),
		zap.Uint64("total", response.Total),
		zap.Int("hits", len(response.Hits)),
		zap.Int64("query_time_ms", response.QueryTime),
	)
	return response, nil
}
