package collision

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// CollisionToolsConfig defines configuration for all tools
type CollisionToolsConfig struct {
	ManageCollision common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() CollisionToolsConfig {
	return CollisionToolsConfig{
		ManageCollision: common.ToolConfig{
			Enabled: true,
			Name:    "manage_collision",
			Description: "Inspect and change collision and physics settings of an actor's primitive components. " +
				"Actions: get, set_profile, set_enabled, set_response, set_simulate_physics.",
		},
	}
}

func (m *Module) buildManageCollisionToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("get", "set_profile", "set_enabled", "set_response", "set_simulate_physics"),
			mcp.Description("Operation to perform")),
		mcp.WithString("actor", mcp.Required(), mcp.Description("Actor label or name")),
		mcp.WithString("component", mcp.Description("Component name; defaults to the root primitive component")),
		mcp.WithString("profile", mcp.Description("set_profile: collision profile name such as BlockAll or OverlapAllDynamic")),
		mcp.WithString("mode", mcp.Enum(collisionModeNames()...),
			mcp.Description("set_enabled: collision enabled mode")),
		mcp.WithString("channel", mcp.Enum(channelNames()...), mcp.Description("set_response: collision channel")),
		mcp.WithString("response", mcp.Enum("ignore", "overlap", "block"), mcp.Description("set_response: response")),
		mcp.WithBoolean("enabled", mcp.Description("set_simulate_physics: whether to simulate physics")),
	)
}
