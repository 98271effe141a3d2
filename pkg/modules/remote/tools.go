package remote

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// RemoteToolsConfig defines configuration for all tools
type RemoteToolsConfig struct {
	RemoteControl common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() RemoteToolsConfig {
	return RemoteToolsConfig{
		RemoteControl: common.ToolConfig{
			Enabled: true,
			Name:    "remote_control",
			Description: "Direct access to the Unreal Remote Control API: call functions, read and write properties, " +
				"describe objects, inspect presets and search assets. " +
				"Actions: call_function, get_property, set_property, describe, list_presets, get_preset, search_assets.",
		},
	}
}

func (m *Module) buildRemoteControlToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("call_function", "get_property", "set_property", "describe", "list_presets", "get_preset", "search_assets"),
			mcp.Description("Operation to perform")),
		mcp.WithString("objectPath", mcp.Description("Object path such as /Game/Maps/Main.Main:PersistentLevel.Cube_1")),
		mcp.WithString("function", mcp.Description("call_function: function name")),
		mcp.WithObject("parameters", mcp.Description("call_function: function parameters by name")),
		mcp.WithString("property", mcp.Description("get_property/set_property: property name")),
		mcp.WithString("value", mcp.Description("set_property: new value; JSON text such as {\"X\": 1} or [1, 2] is decoded")),
		mcp.WithString("preset", mcp.Description("get_preset: preset name")),
		mcp.WithString("query", mcp.Description("search_assets: search text")),
		mcp.WithArray("classNames", mcp.WithStringItems(), mcp.Description("search_assets: class path filters such as /Script/Engine.StaticMesh")),
		mcp.WithArray("packagePaths", mcp.WithStringItems(), mcp.Description("search_assets: folders to search (default /Game)")),
		mcp.WithBoolean("recursive", mcp.Description("search_assets: include subfolders (default true)")),
		mcp.WithNumber("limit", mcp.Description("search_assets: maximum number of assets returned (default 100)")),
	)
}
