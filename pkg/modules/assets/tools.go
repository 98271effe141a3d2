package assets

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// AssetsToolsConfig defines configuration for all tools
type AssetsToolsConfig struct {
	ManageAsset common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() AssetsToolsConfig {
	return AssetsToolsConfig{
		ManageAsset: common.ToolConfig{
			Enabled: true,
			Name:    "manage_asset",
			Description: "Manage content browser assets. Actions: list (cached folder listing), exists, metadata, " +
				"create_folder, import, duplicate, rename, delete, save.",
		},
	}
}

func (m *Module) buildManageAssetToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("list", "exists", "metadata", "create_folder", "import", "duplicate", "rename", "delete", "save"),
			mcp.Description("Operation to perform")),
		mcp.WithString("path", mcp.Description("Asset or folder path, e.g. /Game/Props/SM_Rock. Relative paths are placed under /Game")),
		mcp.WithArray("paths", mcp.Description("Several asset paths for delete and save"), mcp.WithStringItems()),
		mcp.WithBoolean("recursive", mcp.Description("list: include sub folders (default true)")),
		mcp.WithString("classFilter", mcp.Description("list: only return assets of this class, e.g. StaticMesh")),
		mcp.WithNumber("limit", mcp.Description("list: maximum number of assets returned (default 200)")),
		mcp.WithString("source", mcp.Description("duplicate/rename: source asset path; import: file on disk")),
		mcp.WithString("destination", mcp.Description("duplicate/rename: destination asset path; import: destination folder")),
		mcp.WithString("name", mcp.Description("import: destination asset name")),
		mcp.WithBoolean("replaceExisting", mcp.Description("import: overwrite existing assets")),
		mcp.WithBoolean("save", mcp.Description("import: save imported assets")),
	)
}
