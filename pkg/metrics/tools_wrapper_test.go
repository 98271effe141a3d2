package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := map[string]string{
		"":                                   "unknown",
		"asset /Game/X does not exist":       "not_found",
		"context deadline exceeded":          "timeout",
		"console command blocked: quit":      "rejected",
		"unknown action \"explode\"":         "invalid_input",
		"bridge not connected":               "network_error",
		"Traceback (most recent call last):": "engine_error",
		"something odd":                      "unknown",
	}
	for message, want := range tests {
		assert.Equal(t, want, ClassifyError(message), message)
	}
}

func TestWrapToolHandlerPassesThrough(t *testing.T) {
	want := mcp.NewToolResultText(`{"success":true}`)
	wrapped := WrapToolHandler(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return want, nil
	}, "manage_asset", "assets")

	got, err := wrapped(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.Same(t, want, got)

	errWrapped := WrapToolHandler(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("invalid arguments format")
	}, "manage_asset", "assets")
	_, err = errWrapped(context.Background(), mcp.CallToolRequest{})
	assert.EqualError(t, err, "invalid arguments format")
}

func TestResultText(t *testing.T) {
	result := mcp.NewToolResultError("boom")
	assert.Equal(t, "boom", resultText(result))
}
