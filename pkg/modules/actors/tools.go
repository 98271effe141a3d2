package actors

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// ActorsToolsConfig defines configuration for all tools
type ActorsToolsConfig struct {
	ControlActor common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() ActorsToolsConfig {
	return ActorsToolsConfig{
		ControlActor: common.ToolConfig{
			Enabled: true,
			Name:    "control_actor",
			Description: "Spawn, find and edit actors in the current level. Actions: spawn, delete, list, find, " +
				"get_transform, set_transform, set_visibility, attach, add_tag. Actors are addressed by label or object name.",
		},
	}
}

func (m *Module) buildControlActorToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("spawn", "delete", "list", "find", "get_transform", "set_transform", "set_visibility", "attach", "add_tag"),
			mcp.Description("Operation to perform")),
		mcp.WithString("name", mcp.Description("Actor label or object name")),
		mcp.WithArray("names", mcp.Description("delete: several actors"), mcp.WithStringItems()),
		mcp.WithString("class", mcp.Description("spawn: actor class such as PointLight, or a Blueprint asset path")),
		mcp.WithString("mesh", mcp.Description("spawn: static mesh asset path; implies StaticMeshActor")),
		mcp.WithString("label", mcp.Description("spawn: label of the new actor")),
		mcp.WithObject("location", mcp.Description("World location {x, y, z} or [x, y, z]")),
		mcp.WithObject("rotation", mcp.Description("Rotation in degrees {pitch, yaw, roll}")),
		mcp.WithObject("scale", mcp.Description("Scale {x, y, z}")),
		mcp.WithString("classFilter", mcp.Description("list: only actors of this class")),
		mcp.WithString("pattern", mcp.Description("find: case-insensitive substring of label or name")),
		mcp.WithString("tag", mcp.Description("find/add_tag: actor tag")),
		mcp.WithNumber("limit", mcp.Description("list/find: maximum actors returned (default 500)")),
		mcp.WithBoolean("visible", mcp.Description("set_visibility: show or hide the actor")),
		mcp.WithString("parent", mcp.Description("attach: parent actor label or name")),
		mcp.WithString("socket", mcp.Description("attach: socket on the parent")),
		mcp.WithBoolean("keepWorldTransform", mcp.Description("attach: keep the world transform (default true)")),
	)
}
