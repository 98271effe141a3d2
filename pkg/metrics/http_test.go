package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointLabel(t *testing.T) {
	routes := []string{"/mcp", "/health", "/mcp/docs", "/metrics", "/static/"}
	tests := map[string]string{
		"/mcp":          "/mcp",
		"/mcp/docs":     "/mcp/docs",
		"/health":       "/health",
		"/static/a.css": "/static/",
		"/mcp/unknown":  "other",
		"/wp-admin.php": "other",
		"":              "other",
	}
	for path, want := range tests {
		assert.Equal(t, want, endpointLabel(path, routes), path)
	}

	assert.Equal(t, "/anything", endpointLabel("/anything", nil))
}

func TestMiddlewareKeepsStatusAndBody(t *testing.T) {
	h := HTTPMetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), "sse", "/mcp")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestResponseWriterFlushes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
	_, _ = rw.Write([]byte("x"))
	rw.Flush()

	assert.True(t, rec.Flushed)
	assert.Equal(t, 1, rw.size)
	assert.Same(t, http.ResponseWriter(rec), rw.Unwrap())
}
