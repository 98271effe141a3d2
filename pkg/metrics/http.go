package metrics

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const otherEndpoint = "other"

// Handler serves the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}

// HTTPMetricsMiddleware wraps an HTTP handler to collect metrics. Paths
// outside routes are reported as "other" to keep label cardinality bounded;
// a route ending in '/' matches its whole subtree.
func HTTPMetricsMiddleware(next http.Handler, mode string, routes ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := endpointLabel(r.URL.Path, routes)

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m := Get()
		if m != nil {
			m.HTTPRequestsInFlight.WithLabelValues(endpoint).Inc()
			defer m.HTTPRequestsInFlight.WithLabelValues(endpoint).Dec()

			if r.ContentLength > 0 {
				m.HTTPRequestSize.WithLabelValues(r.Method, endpoint).Observe(float64(r.ContentLength))
			}
		}

		next.ServeHTTP(rw, r)

		if m != nil {
			statusCode := strconv.Itoa(rw.statusCode)
			m.HTTPRequestsTotal.WithLabelValues(r.Method, endpoint, statusCode, mode).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, endpoint, statusCode).Observe(time.Since(start).Seconds())
			m.HTTPResponseSize.WithLabelValues(r.Method, endpoint).Observe(float64(rw.size))
		}
	})
}

func endpointLabel(path string, routes []string) string {
	if path == "" {
		path = "/"
	}
	if len(routes) == 0 {
		return path
	}
	best := ""
	for _, route := range routes {
		switch {
		case path == route:
			return route
		case strings.HasSuffix(route, "/") && strings.HasPrefix(path, route) && len(route) > len(best):
			best = route
		}
	}
	if best != "" {
		return best
	}
	return otherEndpoint
}

// responseWriter captures the status code and size of a response
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	size        int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

func (rw *responseWriter) ReadFrom(r io.Reader) (int64, error) {
	rw.wroteHeader = true
	n, err := io.Copy(rw.ResponseWriter, r)
	rw.size += int(n)
	return n, err
}

// Flush keeps streamable MCP responses working through the wrapper
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
