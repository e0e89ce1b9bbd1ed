package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/vecsearch/internal/indexer"
	"github.com/hyperjump/vecsearch/internal/models"
	"github.com/hyperjump/vecsearch/internal/storage"
)

func (s *Server) handleGetMapping(w http.ResponseWriter, r *http.Request) {
	includeDefaults, _ := strconv.ParseBool(r.URL.Query().Get("include_defaults"))
	s.respondJSON(w, http.StatusOK, s.indexer.Mapping().Render(includeDefaults))
}

func (s *Server) handlePutMapping(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	m, err := s.indexer.UpdateMapping(r.Context(), body)
	if err != nil {
		s.respondErr(w, "mapping update failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, m.Render(false))
}

func (s *Server) handleIndexDocument(w http.ResponseWriter, r *http.Request) {
	var input models.DocumentInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}
	s.logger.Debug("index document request", zap.String("id", input.ID))
	outcome, err := s.indexer.IndexDocument(r.Context(), &input)
	if err != nil {
		s.respondErr(w, "indexing failed", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, outcome)
}

type bulkResponse struct {
	Took   int64                  `json:"took_ms"`
	Errors bool                   `json:"errors"`
	Items  []*models.IndexOutcome `json:"items"`
}

func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	inputs, err := indexer.ParseNDJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes), nil)
	if err != nil {
		s.respondErr(w, "bulk parse failed", err)
		return
	}
	outcomes, err := s.indexer.IndexBulk(r.Context(), inputs)
	if err != nil {
		s.respondErr(w, "bulk indexing failed", err)
		return
	}
	resp := bulkResponse{Items: outcomes}
	for _, o := range outcomes {
		if o.Status == models.StatusRejected {
			resp.Errors = true
			break
		}
	}
	resp.Took = time.Since(start).Milliseconds()
	s.logger.Debug("bulk request", zap.Int("documents", len(outcomes)), zap.Bool("errors", resp.Errors))
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.storage.GetDocument(r.Context(), id)
	if err != nil {
		s.respondErr(w, "get document failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete document request", zap.String("id", id))
	if err := s.indexer.DeleteDocument(r.Context(), id); err != nil {
		s.respondErr(w, "deletion failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body: "+err.Error())
		return
	}
	response, err := s.engine.Search(r.Context(), &req)
	if err != nil {
		s.respondErr(w, "search failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docCount, err := s.storage.CountDocuments(ctx)
	if err != nil {
		s.respondErr(w, "status: count documents failed", err)
		return
	}
	indexed, err := s.index.DocCount()
	if err != nil {
		s.respondErr(w, "status: count indexed documents failed", err)
		return
	}
	resp := map[string]interface{}{
		"documents":         docCount,
		"indexed_documents": indexed,
		"fields":            s.indexer.Mapping().Len(),
	}
	configInfo := map[string]interface{}{
		"index_type":     s.index.Type(),
		"on_field_error": s.config.Index.OnFieldError,
		"database_path":  s.config.Storage.DatabasePath,
		"index_path":     s.config.Storage.IndexPath,
	}
	if diskBytes, err := storage.DiskUsageBytes(s.config.Storage.DatabasePath, s.config.Storage.IndexPath); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	if s.watch != nil {
		configInfo["watch_directories"] = s.watch.Directories()
	}
	resp["config"] = configInfo
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWatchDirectoriesList(w http.ResponseWriter, r *http.Request) {
	if s.watch == nil {
		s.respondError(w, http.StatusNotImplemented, "not_implemented", "watch not enabled")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"directories": s.watch.Directories()})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, errType, message string) {
	s.respondJSON(w, status, map[string]string{"error": message, "type": errType})
}

// respondErr writes err with the status its type maps to. Server faults are logged at error level.
func (s *Server) respondErr(w http.ResponseWriter, msg string, err error) {
	status, errType := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, zap.Error(err))
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug(msg, zap.Error(err))
	}
	s.respondError(w, status, errType, err.Error())
}
