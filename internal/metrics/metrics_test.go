package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.DocumentIndexed("indexed")
	m.DocumentIndexed("indexed")
	m.DocumentIndexed("rejected")
	m.FieldError("malformed")
	m.QueryExecuted("range", "ok", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documentsTotal.WithLabelValues("indexed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsTotal.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fieldErrors.WithLabelValues("malformed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.queriesTotal.WithLabelValues("range", "ok")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DocumentIndexed("indexed")
		m.FieldError("malformed")
		m.QueryExecuted("exists", "ok", time.Now())
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.QueryExecuted("term", "error", time.Now())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `vecsearch_queries_total{kind="term",outcome="error"} 1`), body)
	assert.Contains(t, body, "vecsearch_search_duration_seconds")
}
