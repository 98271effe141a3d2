package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Metrics holds all the Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestSize      *prometheus.HistogramVec
	HTTPResponseSize     *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// MCP session metrics
	SessionsTotal  prometheus.Counter
	ActiveSessions prometheus.Gauge

	// MCP tool metrics
	MCPToolCallsTotal   *prometheus.CounterVec
	MCPToolCallDuration *prometheus.HistogramVec
	MCPToolErrorsTotal  *prometheus.CounterVec

	// Module metrics
	ModuleEnabled       *prometheus.GaugeVec
	ModuleRequestsTotal *prometheus.CounterVec

	// Unreal bridge metrics
	BridgeRequestsTotal   *prometheus.CounterVec
	BridgeRequestDuration *prometheus.HistogramVec
	BridgeErrorsTotal     *prometheus.CounterVec
	BridgeConnected       *prometheus.GaugeVec
	BridgeReconnectsTotal prometheus.Counter

	// Command queue metrics
	QueueDepth        prometheus.Gauge
	QueueWaitDuration *prometheus.HistogramVec
	QueueRetriesTotal *prometheus.CounterVec
	QueueDropsTotal   *prometheus.CounterVec

	// Asset cache metrics
	CacheLookupsTotal *prometheus.CounterVec

	// Auth metrics
	AuthRequestsTotal      *prometheus.CounterVec
	AuthValidationDuration prometheus.Histogram

	// System metrics
	ProcessGoroutines  prometheus.Gauge
	ProcessMemoryBytes *prometheus.GaugeVec

	buildInfo *prometheus.GaugeVec
	logger    *zap.Logger
}

var (
	// Default instance
	defaultMetrics *Metrics
)

// Init initializes the metrics system
func Init(logger *zap.Logger) *Metrics {
	if defaultMetrics != nil {
		return defaultMetrics
	}

	m := &Metrics{
		logger: logger,
	}

	// HTTP metrics
	m.HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code", "mode"},
	)

	m.HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	m.HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 7),
		},
		[]string{"method", "endpoint"},
	)

	m.HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 7),
		},
		[]string{"method", "endpoint"},
	)

	m.HTTPRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"endpoint"},
	)

	// MCP session metrics
	m.SessionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mcp_sessions_total",
			Help: "Total number of MCP client sessions",
		},
	)

	m.ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mcp_active_sessions",
			Help: "Number of registered MCP client sessions",
		},
	)

	// MCP tool metrics
	m.MCPToolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_tool_calls_total",
			Help: "Total number of MCP tool calls",
		},
		[]string{"tool_name", "module", "status"},
	)

	m.MCPToolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mcp_tool_call_duration_seconds",
			Help:    "MCP tool call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"tool_name", "module"},
	)

	m.MCPToolErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_tool_errors_total",
			Help: "Total number of MCP tool errors",
		},
		[]string{"tool_name", "module", "error_type"},
	)

	// Module metrics
	m.ModuleEnabled = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "module_enabled",
			Help: "Module enabled status (0=disabled, 1=enabled)",
		},
		[]string{"module_name"},
	)

	m.ModuleRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "module_requests_total",
			Help: "Total number of requests per module",
		},
		[]string{"module_name"},
	)

	// Unreal bridge metrics
	m.BridgeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unreal_bridge_requests_total",
			Help: "Total number of Remote Control requests sent to the editor",
		},
		[]string{"transport", "route", "status"},
	)

	m.BridgeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unreal_bridge_request_duration_seconds",
			Help:    "Remote Control request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"transport", "route"},
	)

	m.BridgeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unreal_bridge_errors_total",
			Help: "Total number of Remote Control request errors",
		},
		[]string{"transport", "error_type"},
	)

	m.BridgeConnected = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "unreal_bridge_connected",
			Help: "Bridge connection status per transport (0=down, 1=up)",
		},
		[]string{"transport"},
	)

	m.BridgeReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unreal_bridge_reconnects_total",
			Help: "Total number of WebSocket reconnect attempts",
		},
	)

	// Command queue metrics
	m.QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "command_queue_depth",
			Help: "Number of commands waiting in the queue",
		},
	)

	m.QueueWaitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_queue_wait_seconds",
			Help:    "Time commands spend queued before execution",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"kind"},
	)

	m.QueueRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "command_queue_retries_total",
			Help: "Total number of command retries",
		},
		[]string{"command"},
	)

	m.QueueDropsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "command_queue_drops_total",
			Help: "Total number of commands rejected or skipped",
		},
		[]string{"reason"},
	)

	// Asset cache metrics
	m.CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_cache_lookups_total",
			Help: "Asset listing cache lookups",
		},
		[]string{"result"},
	)

	// Auth metrics
	m.AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total number of authentication requests",
		},
		[]string{"status"},
	)

	m.AuthValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_token_validation_duration_seconds",
			Help:    "Authentication token validation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// System metrics
	m.ProcessGoroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_goroutines",
			Help: "Number of goroutines",
		},
	)

	m.ProcessMemoryBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "process_memory_bytes",
			Help: "Process memory usage in bytes",
		},
		[]string{"type"},
	)

	m.buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information",
		},
		[]string{"version", "git_commit", "build_date"},
	)

	defaultMetrics = m
	logger.Info("Metrics system initialized")
	return m
}

// Get returns the default metrics instance
func Get() *Metrics {
	return defaultMetrics
}

// SetModuleEnabled sets the enabled status for a module
func (m *Metrics) SetModuleEnabled(moduleName string, enabled bool) {
	value := 0.0
	if enabled {
		value = 1.0
	}
	m.ModuleEnabled.WithLabelValues(moduleName).Set(value)
}

// SetBuildInfo sets the build information metric
func SetBuildInfo(version, gitCommit, buildDate string) {
	m := Get()
	if m == nil {
		return
	}
	m.buildInfo.WithLabelValues(version, gitCommit, buildDate).Set(1)
}
