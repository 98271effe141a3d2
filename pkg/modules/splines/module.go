package splines

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/python"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

const maxPoints = 1000

var spaces = map[string]python.Raw{
	"local": "unreal.SplineCoordinateSpace.LOCAL",
	"world": "unreal.SplineCoordinateSpace.WORLD",
}

// Module represents the splines module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
}

// New creates a new splines module
func New(cfg *config.ModuleConfig, engine common.Engine, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("splines config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("splines"),
		engine: engine,
	}
	m.logger.Info("Splines module created")
	return m, nil
}

// GetTools returns all MCP tools for the splines module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig SplinesToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ManageSpline.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildManageSplineToolDefinition(toolsConfig.ManageSpline),
			Handler: common.Handler(m.logger, toolsConfig.ManageSpline.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"create":       m.create,
		"add_point":    m.addPoint,
		"set_point":    m.setPoint,
		"remove_point": m.removePoint,
		"get_points":   m.getPoints,
		"set_closed":   m.setClosed,
	}
}

// base collects the arguments every action shares
func base(args common.Args) (map[string]any, error) {
	name, err := args.RequireString("name")
	if err != nil {
		return nil, err
	}
	if err := common.ValidateLabel(name); err != nil {
		return nil, err
	}
	space, ok := spaces[args.StringOr("space", "local")]
	if !ok {
		return nil, fmt.Errorf("invalid space: must be local or world")
	}
	return map[string]any{"Name": name, "Space": space}, nil
}

func (m *Module) run(ctx context.Context, script *python.Script, data map[string]any, okMsg, failMsg string) result.Envelope {
	return common.RunScript(ctx, m.engine, script, data, result.Options{SuccessMessage: okMsg, FailureMessage: failMsg})
}

func (m *Module) create(ctx context.Context, args common.Args) result.Envelope {
	data, err := base(args)
	if err != nil {
		return common.Invalid(err)
	}
	location, _, err := args.Vec3("location")
	if err != nil {
		return common.Invalid(err)
	}
	points, err := pointsArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	closed, err := args.BoolOr("closed", false)
	if err != nil {
		return common.Invalid(err)
	}
	data["Location"] = location
	data["Points"] = points
	data["Closed"] = closed
	return m.run(ctx, createScript, data, "Created spline "+data["Name"].(string), "Failed to create spline")
}

func (m *Module) addPoint(ctx context.Context, args common.Args) result.Envelope {
	data, err := base(args)
	if err != nil {
		return common.Invalid(err)
	}
	location, ok, err := args.Vec3("location")
	if err != nil {
		return common.Invalid(err)
	}
	if !ok {
		return common.Invalid(fmt.Errorf("location is required"))
	}
	index, err := args.IntOr("index", -1)
	if err != nil {
		return common.Invalid(err)
	}
	hasIndex := args.Has("index")
	if hasIndex && index < 0 {
		return common.Invalid(fmt.Errorf("invalid index: must not be negative"))
	}
	data["Location"] = location
	data["Index"] = index
	data["HasIndex"] = hasIndex
	return m.run(ctx, addPointScript, data, "Added spline point", "Failed to add spline point")
}

func (m *Module) setPoint(ctx context.Context, args common.Args) result.Envelope {
	data, err := indexed(args)
	if err != nil {
		return common.Invalid(err)
	}
	var location, tangent *python.Vec3
	if v, ok, err := args.Vec3("location"); err != nil {
		return common.Invalid(err)
	} else if ok {
		location = &v
	}
	if v, ok, err := args.Vec3("tangent"); err != nil {
		return common.Invalid(err)
	} else if ok {
		tangent = &v
	}
	if location == nil && tangent == nil {
		return common.Invalid(fmt.Errorf("location or tangent is required"))
	}
	data["Location"] = location
	data["Tangent"] = tangent
	return m.run(ctx, setPointScript, data, "Updated spline point", "Failed to update spline point")
}

func (m *Module) removePoint(ctx context.Context, args common.Args) result.Envelope {
	data, err := indexed(args)
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, removePointScript, data, "Removed spline point", "Failed to remove spline point")
}

func (m *Module) getPoints(ctx context.Context, args common.Args) result.Envelope {
	data, err := base(args)
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, getPointsScript, data, "Read spline points", "Failed to read spline points")
}

func (m *Module) setClosed(ctx context.Context, args common.Args) result.Envelope {
	data, err := base(args)
	if err != nil {
		return common.Invalid(err)
	}
	closed, err := args.RequireBool("closed")
	if err != nil {
		return common.Invalid(err)
	}
	data["Closed"] = closed
	return m.run(ctx, setClosedScript, data, "Updated spline loop", "Failed to update spline loop")
}

func indexed(args common.Args) (map[string]any, error) {
	data, err := base(args)
	if err != nil {
		return nil, err
	}
	index, err := args.RequireInt("index")
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, fmt.Errorf("invalid index: must not be negative")
	}
	data["Index"] = index
	return data, nil
}

func pointsArg(args common.Args) ([]python.Vec3, error) {
	raw, ok := args["points"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid points: expected a list of locations")
	}
	if len(list) > maxPoints {
		return nil, fmt.Errorf("invalid points: at most %d points are allowed", maxPoints)
	}
	points := make([]python.Vec3, 0, len(list))
	for i, item := range list {
		p, _, err := common.Args{"point": item}.Vec3("point")
		if err != nil {
			return nil, fmt.Errorf("invalid points[%d]: %w", i, err)
		}
		points = append(points, p)
	}
	return points, nil
}
