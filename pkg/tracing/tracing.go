// Package tracing configures OpenTelemetry and wraps tool handlers in spans.
package tracing

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
)

const tracerName = "github.com/shaowenchen/unreal-mcp-server/pkg/tracing"

// Setup installs a global tracer provider exporting over OTLP/HTTP.
//
// Tracing is opt-in: when tracing is disabled or no endpoint is set, Setup
// returns a no-op shutdown function and leaves the global provider alone.
// The returned shutdown function flushes pending spans.
func Setup(ctx context.Context, cfg config.TracingConfig, serviceName, version string) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled || cfg.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// WrapToolHandler records a span around every call of a tool
func WrapToolHandler(handler server.ToolHandlerFunc, toolName, moduleName string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		attrs := []attribute.KeyValue{
			attribute.String("mcp.tool.name", toolName),
			attribute.String("mcp.module", moduleName),
		}
		if action, ok := request.GetArguments()["action"].(string); ok {
			attrs = append(attrs, attribute.String("mcp.tool.action", action))
		}

		ctx, span := otel.Tracer(tracerName).Start(ctx, "tool "+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...))
		defer span.End()

		result, err := handler(ctx, request)
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case result != nil && result.IsError:
			span.SetStatus(codes.Error, "tool returned an error result")
		default:
			span.SetStatus(codes.Ok, "")
		}
		return result, err
	}
}
