package server

import (
	"errors"
	"net/http"

	"github.com/hyperjump/vecsearch/internal/field"
	"github.com/hyperjump/vecsearch/internal/indexer"
	"github.com/hyperjump/vecsearch/internal/mapping"
	"github.com/hyperjump/vecsearch/internal/search"
	"github.com/hyperjump/vecsearch/internal/storage"
	"github.com/hyperjump/vecsearch/internal/vector"
)

// errorStatus maps an error to its HTTP status and a short type name.
func errorStatus(err error) (int, string) {
	var (
		malformed   *vector.MalformedVectorError
		mismatch    *vector.DimensionMismatchError
		invalidCfg  *vector.InvalidConfigurationError
		unsupported *field.UnsupportedQueryError
	)
	switch {
	case errors.As(err, &malformed):
		return http.StatusBadRequest, "malformed_vector"
	case errors.As(err, &mismatch):
		return http.StatusBadRequest, "dimension_mismatch"
	case errors.As(err, &unsupported):
		return http.StatusBadRequest, "unsupported_query"
	case errors.As(err, &invalidCfg):
		return http.StatusBadRequest, "invalid_configuration"
	case errors.Is(err, search.ErrUnknownField):
		return http.StatusBadRequest, "unknown_field"
	case errors.Is(err, search.ErrInvalidRequest), errors.Is(err, indexer.ErrInvalidDocument):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, mapping.ErrConflict):
		return http.StatusConflict, "mapping_conflict"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
