package editor

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// EditorToolsConfig defines configuration for all tools
type EditorToolsConfig struct {
	ControlEditor common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() EditorToolsConfig {
	return EditorToolsConfig{
		ControlEditor: common.ToolConfig{
			Enabled: true,
			Name:    "control_editor",
			Description: "Control the Unreal Editor session: connection status, Play In Editor, viewport camera, levels, console commands and Python. " +
				"Actions: status, play, stop, pause, is_playing, get_camera, set_camera, open_level, save_level, console, execute_python. " +
				"execute_python is only available when the server allows raw Python.",
		},
	}
}

func (m *Module) buildControlEditorToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("status", "play", "stop", "pause", "is_playing", "get_camera", "set_camera",
				"open_level", "save_level", "console", "execute_python"),
			mcp.Description("Operation to perform")),
		mcp.WithObject("location", mcp.Description("set_camera: viewport location {x, y, z}")),
		mcp.WithObject("rotation", mcp.Description("set_camera: viewport rotation {pitch, yaw, roll}")),
		mcp.WithString("level", mcp.Description("open_level: level asset path such as /Game/Maps/Main")),
		mcp.WithString("command", mcp.Description("console: console command line")),
		mcp.WithString("script", mcp.Description("execute_python: Python source to run in the editor")),
	)
}
