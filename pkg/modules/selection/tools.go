package selection

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// SelectionToolsConfig defines configuration for all tools
type SelectionToolsConfig struct {
	ManageSelection common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() SelectionToolsConfig {
	return SelectionToolsConfig{
		ManageSelection: common.ToolConfig{
			Enabled:     true,
			Name:        "manage_selection",
			Description: "Read and change the editor actor selection. Actions: get, select, clear, select_by_class, invert.",
		},
	}
}

func (m *Module) buildManageSelectionToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("get", "select", "clear", "select_by_class", "invert"),
			mcp.Description("Operation to perform")),
		mcp.WithArray("names", mcp.WithStringItems(), mcp.Description("select: actor labels or names")),
		mcp.WithString("class", mcp.Description("select_by_class: actor class name such as StaticMeshActor")),
		mcp.WithBoolean("add", mcp.Description("select/select_by_class: add to the current selection instead of replacing it")),
	)
}
