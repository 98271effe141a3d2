package materials

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// MaterialsToolsConfig defines configuration for all tools
type MaterialsToolsConfig struct {
	ManageMaterial common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() MaterialsToolsConfig {
	return MaterialsToolsConfig{
		ManageMaterial: common.ToolConfig{
			Enabled: true,
			Name:    "manage_material",
			Description: "Create materials and material instances, edit instance parameters and assign materials to actors. " +
				"Actions: create, create_instance, set_scalar, set_vector, set_texture, get_parameters, apply.",
		},
	}
}

func (m *Module) buildManageMaterialToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("create", "create_instance", "set_scalar", "set_vector", "set_texture", "get_parameters", "apply"),
			mcp.Description("Operation to perform")),
		mcp.WithString("name", mcp.Description("create/create_instance: new asset name")),
		mcp.WithString("folder", mcp.Description("create/create_instance: destination folder (default /Game/Materials)")),
		mcp.WithString("path", mcp.Description("Material or material instance asset path")),
		mcp.WithString("parent", mcp.Description("create_instance: parent material path")),
		mcp.WithObject("baseColor", mcp.Description("create: base color {r, g, b, a} exposed as the BaseColor parameter")),
		mcp.WithString("parameter", mcp.Description("set_*: parameter name")),
		mcp.WithNumber("value", mcp.Description("set_scalar: value")),
		mcp.WithObject("color", mcp.Description("set_vector: color {r, g, b, a} or [r, g, b, a]")),
		mcp.WithString("texture", mcp.Description("set_texture: texture asset path")),
		mcp.WithString("actor", mcp.Description("apply: actor label or name")),
		mcp.WithNumber("slot", mcp.Description("apply: material slot index (default 0)")),
	)
}
