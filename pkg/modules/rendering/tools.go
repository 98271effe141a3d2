package rendering

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// RenderingToolsConfig defines configuration for all tools
type RenderingToolsConfig struct {
	ManageRendering common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() RenderingToolsConfig {
	return RenderingToolsConfig{
		ManageRendering: common.ToolConfig{
			Enabled: true,
			Name:    "manage_rendering",
			Description: "Control editor rendering: console variables, scalability, view modes, show flags, stat overlays and screenshots. " +
				"Actions: set_cvar, get_cvar, set_scalability, set_view_mode, show_flag, stat, screenshot.",
		},
	}
}

func (m *Module) buildManageRenderingToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("set_cvar", "get_cvar", "set_scalability", "set_view_mode", "show_flag", "stat", "screenshot"),
			mcp.Description("Operation to perform")),
		mcp.WithString("name", mcp.Description("set_cvar/get_cvar: console variable; stat: stat group such as fps, unit or gpu; show_flag: flag name")),
		mcp.WithString("value", mcp.Description("set_cvar: new value")),
		mcp.WithString("level", mcp.Enum(levelNames()...), mcp.Description("set_scalability: quality level")),
		mcp.WithString("group", mcp.Enum(groupNames()...), mcp.Description("set_scalability: single group; all groups when omitted")),
		mcp.WithString("mode", mcp.Enum(viewModes...), mcp.Description("set_view_mode: view mode")),
		mcp.WithBoolean("enabled", mcp.Description("show_flag: whether the flag is shown")),
		mcp.WithString("filename", mcp.Description("screenshot: file name without directory")),
		mcp.WithNumber("width", mcp.Description("screenshot: width in pixels (default 1920)")),
		mcp.WithNumber("height", mcp.Description("screenshot: height in pixels (default 1080)")),
	)
}
