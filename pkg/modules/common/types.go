// Package common holds the pieces shared by every tool module: the engine
// interface, argument decoding, action dispatch and input validation.
package common

import (
	"context"

	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
)

// ToolConfig defines configuration for a single tool
type ToolConfig struct {
	Enabled     bool   // Whether the tool is enabled
	Name        string // Tool name
	Description string // Tool description
}

// Engine is the part of the bridge the tool modules depend on
type Engine interface {
	Info(ctx context.Context, opts ...bridge.Option) ([]byte, error)
	Status() bridge.Status
	ExecutePython(ctx context.Context, script string, opts ...bridge.Option) (*bridge.PythonResult, error)
	ConsoleCommand(ctx context.Context, command string, opts ...bridge.Option) ([]byte, error)
	CallFunction(ctx context.Context, objectPath, function string, params map[string]any, opts ...bridge.Option) ([]byte, error)
	GetProperty(ctx context.Context, objectPath, property string, opts ...bridge.Option) ([]byte, error)
	SetProperty(ctx context.Context, objectPath, property string, value any, opts ...bridge.Option) ([]byte, error)
	Describe(ctx context.Context, objectPath string, opts ...bridge.Option) ([]byte, error)
	ListPresets(ctx context.Context, opts ...bridge.Option) ([]byte, error)
	GetPreset(ctx context.Context, name string, opts ...bridge.Option) ([]byte, error)
	SearchAssets(ctx context.Context, query string, filter bridge.AssetFilter, opts ...bridge.Option) ([]byte, error)
}

var _ Engine = (*bridge.Bridge)(nil)

// BuildToolName applies the configured prefix and suffix to a tool name
func BuildToolName(cfg config.ToolsConfig, baseName string) string {
	toolName := baseName
	if cfg.Prefix != "" {
		toolName = cfg.Prefix + toolName
	}
	if cfg.Suffix != "" {
		toolName = toolName + cfg.Suffix
	}
	return toolName
}
