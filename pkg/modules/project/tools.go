package project

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// ProjectToolsConfig defines configuration for all tools
type ProjectToolsConfig struct {
	ManageProject common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() ProjectToolsConfig {
	return ProjectToolsConfig{
		ManageProject: common.ToolConfig{
			Enabled: true,
			Name:    "manage_project",
			Description: "Project-wide operations: project information, lighting and navigation builds, Blueprint compilation and saving. " +
				"Actions: info, build_lighting, build_navigation, compile_blueprint, save_all.",
		},
	}
}

func (m *Module) buildManageProjectToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("info", "build_lighting", "build_navigation", "compile_blueprint", "save_all"),
			mcp.Description("Operation to perform")),
		mcp.WithString("quality", mcp.Enum(qualityNames...), mcp.Description("build_lighting: lighting quality (default production)")),
		mcp.WithBoolean("reflectionCaptures", mcp.Description("build_lighting: also rebuild reflection captures (default true)")),
		mcp.WithString("path", mcp.Description("compile_blueprint: Blueprint asset path")),
		mcp.WithBoolean("includeMaps", mcp.Description("save_all: also save dirty map packages (default true)")),
	)
}
