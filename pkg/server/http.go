package server

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/metrics"
)

const (
	healthPath = "/health"
	docsPath   = "/mcp/docs"
)

// Handlers are the pieces mounted on the HTTP mux
type Handlers struct {
	MCP     http.Handler
	Docs    http.Handler
	Health  http.Handler
	Metrics http.Handler
}

// NewMux wires the MCP endpoint, docs, health and metrics routes.
// Only the MCP endpoint requires the bearer token.
func NewMux(cfg *config.Config, h Handlers, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	routes := []string{cfg.Server.URI}

	mux.Handle(cfg.Server.URI, AuthMiddleware(h.MCP, cfg.Server.Auth, logger))
	if h.Health != nil {
		mux.Handle(healthPath, h.Health)
		routes = append(routes, healthPath)
	}
	if h.Docs != nil && cfg.Server.URI != docsPath {
		mux.Handle(docsPath, h.Docs)
		routes = append(routes, docsPath)
	}
	if cfg.Metrics.Enabled && h.Metrics != nil {
		mux.Handle(cfg.Metrics.Path, h.Metrics)
		routes = append(routes, cfg.Metrics.Path)
	}

	return metrics.HTTPMetricsMiddleware(mux, cfg.Server.Mode, routes...)
}

// NewHTTPServer returns an http.Server listening on the configured address
func NewHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              Address(cfg.Server),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Address joins host and port
func Address(cfg config.ServerConfig) string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// URL returns the MCP endpoint a client should connect to
func URL(cfg config.ServerConfig) string {
	return fmt.Sprintf("http://%s%s", Address(cfg), cfg.URI)
}
