package splines

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// SplinesToolsConfig defines configuration for all tools
type SplinesToolsConfig struct {
	ManageSpline common.ToolConfig
}

// GetDefaultToolsConfig returns default tool configuration
func GetDefaultToolsConfig() SplinesToolsConfig {
	return SplinesToolsConfig{
		ManageSpline: common.ToolConfig{
			Enabled: true,
			Name:    "manage_spline",
			Description: "Create spline actors and edit their points. " +
				"Actions: create, add_point, set_point, remove_point, get_points, set_closed.",
		},
	}
}

func (m *Module) buildManageSplineToolDefinition(config common.ToolConfig) mcp.Tool {
	return mcp.NewTool(m.BuildToolName(config.Name),
		mcp.WithDescription(config.Description),
		mcp.WithString("action", mcp.Required(),
			mcp.Enum("create", "add_point", "set_point", "remove_point", "get_points", "set_closed"),
			mcp.Description("Operation to perform")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Label of the spline actor")),
		mcp.WithObject("location", mcp.Description("create: actor location; add_point/set_point: point location {x, y, z}")),
		mcp.WithArray("points", mcp.Description("create: initial points as a list of {x, y, z}")),
		mcp.WithObject("tangent", mcp.Description("set_point: arrive and leave tangent {x, y, z}")),
		mcp.WithNumber("index", mcp.Description("Point index; add_point appends when omitted")),
		mcp.WithString("space", mcp.Enum("local", "world"), mcp.Description("Coordinate space of point locations (default local)")),
		mcp.WithBoolean("closed", mcp.Description("create/set_closed: whether the spline loops")),
	)
}
