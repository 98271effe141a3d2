package input

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// InputToolsConfig defines configuration for all tools
type InputToolsConfig struct {
	ManageInput common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() InputToolsConfig {
	return InputToolsConfig{
		ManageInput: common.ToolConfig{
			Enabled: true,
			Name:    "manage_input",
			Description: "Manage Enhanced Input actions and mapping contexts. " +
				"Actions: create_action, create_mapping_context, add_mapping, remove_mapping, list_mappings.",
		},
	}
}

func (m *Module) buildManageInputToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("create_action", "create_mapping_context", "add_mapping", "remove_mapping", "list_mappings"),
			mcp.Description("Operation to perform")),
		mcp.WithString("name", mcp.Description("create_*: new asset name")),
		mcp.WithString("folder", mcp.Description("create_*: destination folder (default /Game/Input)")),
		mcp.WithString("valueType", mcp.Enum("bool", "axis1d", "axis2d", "axis3d"),
			mcp.Description("create_action: value type (default bool)")),
		mcp.WithString("context", mcp.Description("*_mapping: mapping context asset path")),
		mcp.WithString("inputAction", mcp.Description("add_mapping/remove_mapping: input action asset path")),
		mcp.WithString("key", mcp.Description("add_mapping/remove_mapping: key name such as SpaceBar, W or Gamepad_FaceButton_Bottom")),
	)
}
