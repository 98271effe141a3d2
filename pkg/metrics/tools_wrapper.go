package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// WrapToolHandler wraps a tool handler with metrics collection
func WrapToolHandler(handler server.ToolHandlerFunc, toolName, moduleName string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		m := Get()
		if m != nil {
			m.ModuleRequestsTotal.WithLabelValues(moduleName).Inc()
		}

		result, err := handler(ctx, request)

		duration := time.Since(start)
		success := err == nil && (result == nil || !result.IsError)

		if m == nil {
			return result, err
		}

		status := "success"
		if !success {
			status = "failure"
		}
		m.MCPToolCallsTotal.WithLabelValues(toolName, moduleName, status).Inc()
		m.MCPToolCallDuration.WithLabelValues(toolName, moduleName).Observe(duration.Seconds())

		switch {
		case err != nil:
			m.MCPToolErrorsTotal.WithLabelValues(toolName, moduleName, ClassifyError(err.Error())).Inc()
		case result != nil && result.IsError:
			m.MCPToolErrorsTotal.WithLabelValues(toolName, moduleName, ClassifyError(resultText(result))).Inc()
		}

		return result, err
	}
}

// ClassifyError maps an error message onto a small set of metric labels
func ClassifyError(message string) string {
	errStr := strings.ToLower(message)
	switch {
	case errStr == "":
		return "unknown"
	case strings.Contains(errStr, "not found") || strings.Contains(errStr, "does not exist"):
		return "not_found"
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline"):
		return "timeout"
	case strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "forbidden") || strings.Contains(errStr, "blocked"):
		return "rejected"
	case strings.Contains(errStr, "invalid") || strings.Contains(errStr, "required") || strings.Contains(errStr, "unknown action"):
		return "invalid_input"
	case strings.Contains(errStr, "connection") || strings.Contains(errStr, "not connected") || strings.Contains(errStr, "network"):
		return "network_error"
	case strings.Contains(errStr, "traceback") || strings.Contains(errStr, "python"):
		return "engine_error"
	}
	return "unknown"
}

func resultText(result *mcp.CallToolResult) string {
	var b strings.Builder
	for _, content := range result.Content {
		if text, ok := content.(mcp.TextContent); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}
