package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
)

func TestSetupNoopWhenDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{Endpoint: "http://localhost:4318"}, "test", "dev")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupNoopWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TracingConfig{Enabled: true}, "test", "dev")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupCreatesProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	// non-routable address so nothing is exported
	shutdown, err := Setup(context.Background(), config.TracingConfig{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		SampleRatio: 1,
	}, "test", "dev")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestWrapToolHandlerRecordsSpan(t *testing.T) {
	sr := recordSpans(t)

	handler := WrapToolHandler(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}, "control_actor", "actors")

	_, err := handler(context.Background(), callRequest(map[string]any{"action": "spawn"}))
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool control_actor", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, "spawn", attrs["mcp.tool.action"])
	assert.Equal(t, "actors", attrs["mcp.module"])
}

func TestWrapToolHandlerMarksFailures(t *testing.T) {
	sr := recordSpans(t)

	failing := WrapToolHandler(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("boom"), nil
	}, "manage_asset", "assets")
	broken := WrapToolHandler(func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("bad request")
	}, "manage_asset", "assets")

	_, _ = failing(context.Background(), callRequest(nil))
	_, _ = broken(context.Background(), callRequest(nil))

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Len(t, spans[1].Events(), 1)
}
