// Package bridge connects to a running Unreal Editor through the Remote
// Control API. Every tool request goes through the shared command queue so
// the editor sees one paced stream of work regardless of how many MCP
// clients are calling tools. Health pings go straight to the HTTP endpoint.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/metrics"
	"github.com/shaowenchen/unreal-mcp-server/pkg/queue"
)

const tracerName = "github.com/shaowenchen/unreal-mcp-server/pkg/bridge"

// Status is a snapshot of the bridge connection state
type Status struct {
	Connected    bool        `json:"connected"`
	Transport    string      `json:"transport"`
	HTTPURL      string      `json:"http_url"`
	WebSocketURL string      `json:"websocket_url,omitempty"`
	WebSocket    bool        `json:"websocket_connected"`
	LastPing     *time.Time  `json:"last_ping,omitempty"`
	LastError    string      `json:"last_error,omitempty"`
	Reconnects   uint64      `json:"reconnects"`
	Queue        queue.Stats `json:"queue"`
}

// Bridge sends Remote Control requests to the editor
type Bridge struct {
	cfg    config.UnrealConfig
	queue  *queue.Queue
	logger *zap.Logger
	tracer trace.Tracer
	http   *httpTransport

	mu        sync.RWMutex
	ws        *wsTransport
	healthy   bool
	lastPing  time.Time
	lastError string

	reconnects atomic.Uint64
	closed     atomic.Bool
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New creates a bridge. Call Start to connect.
func New(cfg config.UnrealConfig, q *queue.Queue, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Transport == "" {
		cfg.Transport = transportAuto
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}
	if cfg.Reconnect.MaxTries == 0 {
		cfg.Reconnect.MaxTries = 1
	}

	b := &Bridge{
		cfg:    cfg,
		queue:  q,
		logger: logger.Named("bridge"),
		tracer: otel.Tracer(tracerName),
		http:   newHTTPTransport(cfg.HTTPBaseURL(), cfg.ConnectTimeout),
	}

	b.logger.Info("Bridge created",
		zap.String("http_url", cfg.HTTPBaseURL()),
		zap.String("websocket_url", cfg.WebSocketURL()),
		zap.String("transport", cfg.Transport),
		zap.Bool("allow_python", cfg.AllowPython))
	return b
}

// Start connects to the editor and begins health monitoring. An editor that
// is not running yet is not an error unless the WebSocket transport is
// required.
func (b *Bridge) Start(ctx context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	ctx, b.cancel = context.WithCancel(ctx)

	if b.wantsWebSocket() {
		if err := b.connectWebSocket(ctx); err != nil {
			if b.cfg.Transport == transportWS {
				b.cancel()
				return fmt.Errorf("failed to connect websocket: %w", err)
			}
			b.logger.Warn("WebSocket unavailable, falling back to HTTP", zap.Error(err))
		}
	}

	if err := b.checkHealth(ctx); err != nil {
		b.logger.Warn("Unreal editor not reachable yet", zap.Error(err))
	}

	b.wg.Add(1)
	go b.monitor(ctx)
	return nil
}

// Close stops health monitoring and closes the WebSocket. Queued commands
// still pending fail with ErrClosed once they reach the worker.
func (b *Bridge) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()

	b.mu.Lock()
	ws := b.ws
	b.ws = nil
	b.mu.Unlock()
	if ws != nil {
		metrics.SetBridgeConnected(transportWS, false)
		return ws.Close()
	}
	return nil
}

// Status returns the current connection state
func (b *Bridge) Status() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()

	st := Status{
		Connected:  b.healthy || b.ws != nil,
		Transport:  b.cfg.Transport,
		HTTPURL:    b.cfg.HTTPBaseURL(),
		WebSocket:  b.ws != nil,
		LastError:  b.lastError,
		Reconnects: b.reconnects.Load(),
	}
	if b.cfg.Transport != transportHTTP {
		st.WebSocketURL = b.cfg.WebSocketURL()
	}
	if !b.lastPing.IsZero() {
		t := b.lastPing
		st.LastPing = &t
	}
	if b.queue != nil {
		st.Queue = b.queue.Stats()
	}
	return st
}

// Ping checks that the Remote Control API answers
func (b *Bridge) Ping(ctx context.Context) error {
	return b.checkHealth(ctx)
}

func (b *Bridge) wantsWebSocket() bool {
	return b.cfg.Transport != transportHTTP
}

func (b *Bridge) connectWebSocket(ctx context.Context) error {
	expo := backoff.NewExponentialBackOff()
	if b.cfg.Reconnect.InitialInterval > 0 {
		expo.InitialInterval = b.cfg.Reconnect.InitialInterval
	}
	if b.cfg.Reconnect.MaxInterval > 0 {
		expo.MaxInterval = b.cfg.Reconnect.MaxInterval
	}

	url := b.cfg.WebSocketURL()
	ws, err := backoff.Retry(ctx, func() (*wsTransport, error) {
		return dialWebSocket(ctx, url, b.cfg.ConnectTimeout, b.logger)
	},
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(b.cfg.Reconnect.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			b.logger.Debug("WebSocket dial failed, retrying",
				zap.String("url", url),
				zap.Duration("next", next),
				zap.Error(err))
		}),
	)
	if err != nil {
		b.setError(err)
		return err
	}

	b.mu.Lock()
	b.ws = ws
	b.mu.Unlock()
	metrics.SetBridgeConnected(transportWS, true)
	b.logger.Info("WebSocket connected", zap.String("url", url))
	return nil
}

func (b *Bridge) currentWebSocket() *wsTransport {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ws
}

func (b *Bridge) dropWebSocket(ws *wsTransport) {
	b.mu.Lock()
	if b.ws == ws {
		b.ws = nil
	}
	b.mu.Unlock()
	_ = ws.Close()
	metrics.SetBridgeConnected(transportWS, false)
}

// monitor pings the editor periodically and re-dials the WebSocket after it drops
func (b *Bridge) monitor(ctx context.Context) {
	defer b.wg.Done()

	var tick <-chan time.Time
	if b.cfg.HealthInterval > 0 {
		ticker := time.NewTicker(b.cfg.HealthInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		var lost <-chan struct{}
		ws := b.currentWebSocket()
		if ws != nil {
			lost = ws.Done()
		}

		select {
		case <-ctx.Done():
			return
		case <-lost:
			b.logger.Warn("WebSocket connection lost, reconnecting")
			b.dropWebSocket(ws)
			b.reconnect(ctx)
		case <-tick:
			if err := b.checkHealth(ctx); err != nil {
				b.logger.Debug("Health check failed", zap.Error(err))
			}
			if b.wantsWebSocket() && b.currentWebSocket() == nil {
				b.reconnect(ctx)
			}
		}
	}
}

func (b *Bridge) reconnect(ctx context.Context) {
	b.reconnects.Add(1)
	metrics.RecordBridgeReconnect()
	if err := b.connectWebSocket(ctx); err != nil && ctx.Err() == nil {
		b.logger.Warn("WebSocket reconnect failed", zap.Error(err))
	}
}

// checkHealth bypasses the queue so a long build holding the worker does
// not leave the reported state stale
func (b *Bridge) checkHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.ConnectTimeout)
	defer cancel()

	resp, err := b.http.Do(ctx, http.MethodGet, infoRoute, nil)
	if err == nil && (resp.Status < 200 || resp.Status >= 300) {
		err = &RemoteError{StatusCode: resp.Status, Route: infoRoute, Message: remoteMessage(resp.Body)}
	}

	b.mu.Lock()
	b.healthy = err == nil
	if err == nil {
		b.lastPing = time.Now()
		b.lastError = ""
	} else {
		b.lastError = err.Error()
	}
	b.mu.Unlock()

	metrics.SetBridgeConnected(transportHTTP, err == nil)
	return err
}

func (b *Bridge) setError(err error) {
	b.mu.Lock()
	b.lastError = err.Error()
	b.mu.Unlock()
}

// pick returns the transport for the next request
func (b *Bridge) pick() (transport, error) {
	if b.wantsWebSocket() {
		if ws := b.currentWebSocket(); ws != nil {
			return ws, nil
		}
		if b.cfg.Transport == transportWS {
			return nil, ErrNotConnected
		}
	}
	return b.http, nil
}

// request queues one Remote Control request and returns the response body
func (b *Bridge) request(ctx context.Context, verb, route string, body any, o callOptions) ([]byte, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	v, err := b.queue.Do(ctx, queue.Command{
		Name:     o.name,
		Priority: o.priority,
		Kind:     o.kind,
		Fn: func(ctx context.Context) (any, error) {
			if b.closed.Load() {
				return nil, ErrClosed
			}
			return b.send(ctx, verb, route, payload, o.timeout)
		},
	})
	if err != nil {
		return nil, err
	}
	data, _ := v.([]byte)
	return data, nil
}

func (b *Bridge) send(ctx context.Context, verb, route string, payload []byte, timeout time.Duration) ([]byte, error) {
	t, err := b.pick()
	if err != nil {
		metrics.RecordBridgeError(b.cfg.Transport, errorType(err))
		return nil, err
	}

	ctx, span := b.tracer.Start(ctx, "unreal "+verb+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(verb),
			semconv.URLPath(route),
			semconv.ServerAddress(b.cfg.Host),
			attribute.String("unreal.transport", t.Name()),
		))
	defer span.End()

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := t.Do(reqCtx, verb, route, payload)
	if err != nil && errors.Is(err, ErrNotConnected) && t.Name() == transportWS && b.cfg.Transport == transportAuto {
		b.logger.Debug("WebSocket request failed, retrying over HTTP", zap.String("route", route), zap.Error(err))
		t = b.http
		span.SetAttributes(attribute.String("unreal.transport", t.Name()))
		resp, err = t.Do(reqCtx, verb, route, payload)
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		err = fmt.Errorf("%w after %s: %s %s", ErrTimeout, timeout, verb, route)
	}
	if err == nil && (resp.Status < 200 || resp.Status >= 300) {
		err = &RemoteError{StatusCode: resp.Status, Route: route, Message: remoteMessage(resp.Body)}
	}

	metrics.RecordBridgeRequest(t.Name(), route, time.Since(start), err == nil)
	if resp.Status != 0 {
		span.SetAttributes(semconv.HTTPResponseStatusCode(resp.Status))
	}
	if err != nil {
		metrics.RecordBridgeError(t.Name(), errorType(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		b.logger.Debug("Remote control request failed",
			zap.String("verb", verb),
			zap.String("route", route),
			zap.String("transport", t.Name()),
			zap.Error(err))
		return nil, err
	}

	b.logger.Debug("Remote control response received",
		zap.String("verb", verb),
		zap.String("route", route),
		zap.String("transport", t.Name()),
		zap.Int("status_code", resp.Status),
		zap.Duration("duration", time.Since(start)))
	return resp.Body, nil
}

func remoteMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "errorMessage"); msg.Exists() {
		return msg.String()
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 512 {
		text = text[:512] + "..."
	}
	return text
}
