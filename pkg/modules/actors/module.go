package actors

import (
	"context"
	"fmt"
	"regexp"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/python"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

const defaultLimit = 500

var classPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Module represents the actors module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
}

// New creates a new actors module
func New(cfg *config.ModuleConfig, engine common.Engine, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("actors config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("actors"),
		engine: engine,
	}
	m.logger.Info("Actors module created")
	return m, nil
}

// GetTools returns all MCP tools for the actors module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig ActorsToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ControlActor.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildControlActorToolDefinition(toolsConfig.ControlActor),
			Handler: common.Handler(m.logger, toolsConfig.ControlActor.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"spawn":          m.spawn,
		"delete":         m.delete,
		"list":           m.list,
		"find":           m.find,
		"get_transform":  m.getTransform,
		"set_transform":  m.setTransform,
		"set_visibility": m.setVisibility,
		"attach":         m.attach,
		"add_tag":        m.addTag,
	}
}

func (m *Module) run(ctx context.Context, script *python.Script, data map[string]any, okMsg, failMsg string) result.Envelope {
	return common.RunScript(ctx, m.engine, script, data, result.Options{SuccessMessage: okMsg, FailureMessage: failMsg})
}

func (m *Module) spawn(ctx context.Context, args common.Args) result.Envelope {
	class := args.StringOr("class", "")
	mesh := ""
	if raw, ok := args.String("mesh"); ok {
		p, err := common.ValidateAssetPath(raw)
		if err != nil {
			return common.Invalid(err)
		}
		mesh = p
		if class == "" {
			class = "StaticMeshActor"
		}
	}
	if class == "" {
		return common.Invalid(fmt.Errorf("class or mesh is required"))
	}
	if !classPattern.MatchString(class) {
		p, err := common.ValidateAssetPath(class)
		if err != nil || class[0] != '/' {
			return common.Invalid(fmt.Errorf("invalid class %q: expected a class name or a Blueprint path", class))
		}
		class = p
	}

	label := args.StringOr("label", "")
	if label != "" {
		if err := common.ValidateLabel(label); err != nil {
			return common.Invalid(err)
		}
	}

	location, _, err := args.Vec3("location")
	if err != nil {
		return common.Invalid(err)
	}
	rotation, _, err := args.Rot3("rotation")
	if err != nil {
		return common.Invalid(err)
	}
	scale, ok, err := args.Vec3("scale")
	if err != nil {
		return common.Invalid(err)
	}
	if !ok {
		scale = python.Vec3{X: 1, Y: 1, Z: 1}
	}

	return m.run(ctx, spawnScript, map[string]any{
		"Class":    class,
		"Mesh":     mesh,
		"Label":    label,
		"Location": location,
		"Rotation": rotation,
		"Scale":    scale,
	}, "Spawned actor", "Failed to spawn actor")
}

func (m *Module) delete(ctx context.Context, args common.Args) result.Envelope {
	names, err := args.StringSlice("names")
	if err != nil {
		return common.Invalid(err)
	}
	if name, ok := args.String("name"); ok {
		names = append(names, name)
	}
	if len(names) == 0 {
		return common.Invalid(fmt.Errorf("name or names is required"))
	}
	for _, n := range names {
		if err := common.ValidateLabel(n); err != nil {
			return common.Invalid(err)
		}
	}
	return m.run(ctx, deleteScript, map[string]any{"Names": names}, "Deleted actors", "Failed to delete actors")
}

func (m *Module) list(ctx context.Context, args common.Args) result.Envelope {
	limit, err := limitArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, listScript, map[string]any{
		"ClassFilter": args.StringOr("classFilter", ""),
		"Limit":       limit,
	}, "Listed actors", "Failed to list actors")
}

func (m *Module) find(ctx context.Context, args common.Args) result.Envelope {
	limit, err := limitArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	pattern := args.StringOr("pattern", args.StringOr("name", ""))
	tag := args.StringOr("tag", "")
	if pattern == "" && tag == "" {
		return common.Invalid(fmt.Errorf("pattern or tag is required"))
	}
	return m.run(ctx, findScript, map[string]any{
		"Pattern": pattern,
		"Tag":     tag,
		"Limit":   limit,
	}, "Found actors", "Failed to find actors")
}

func (m *Module) getTransform(ctx context.Context, args common.Args) result.Envelope {
	name, err := nameArg(args, "name")
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, getTransformScript, map[string]any{"Name": name}, "Read actor transform", "Failed to read actor transform")
}

func (m *Module) setTransform(ctx context.Context, args common.Args) result.Envelope {
	name, err := nameArg(args, "name")
	if err != nil {
		return common.Invalid(err)
	}

	data := map[string]any{"Name": name, "Location": nil, "Rotation": nil, "Scale": nil}
	if v, ok, err := args.Vec3("location"); err != nil {
		return common.Invalid(err)
	} else if ok {
		data["Location"] = &v
	}
	if r, ok, err := args.Rot3("rotation"); err != nil {
		return common.Invalid(err)
	} else if ok {
		data["Rotation"] = &r
	}
	if s, ok, err := args.Vec3("scale"); err != nil {
		return common.Invalid(err)
	} else if ok {
		data["Scale"] = &s
	}
	if data["Location"] == nil && data["Rotation"] == nil && data["Scale"] == nil {
		return common.Invalid(fmt.Errorf("location, rotation or scale is required"))
	}

	return m.run(ctx, setTransformScript, data, "Updated actor transform", "Failed to update actor transform")
}

func (m *Module) setVisibility(ctx context.Context, args common.Args) result.Envelope {
	name, err := nameArg(args, "name")
	if err != nil {
		return common.Invalid(err)
	}
	visible, err := args.RequireBool("visible")
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, setVisibilityScript, map[string]any{"Name": name, "Visible": visible},
		"Updated actor visibility", "Failed to update actor visibility")
}

func (m *Module) attach(ctx context.Context, args common.Args) result.Envelope {
	name, err := nameArg(args, "name")
	if err != nil {
		return common.Invalid(err)
	}
	parent, err := nameArg(args, "parent")
	if err != nil {
		return common.Invalid(err)
	}
	if parent == name {
		return common.Invalid(fmt.Errorf("an actor cannot be attached to itself"))
	}
	socket := args.StringOr("socket", "")
	if socket != "" {
		if err := common.ValidateName(socket); err != nil {
			return common.Invalid(err)
		}
	}
	keepWorld, err := args.BoolOr("keepWorldTransform", true)
	if err != nil {
		return common.Invalid(err)
	}
	rule := python.Raw("unreal.AttachmentRule.KEEP_WORLD")
	if !keepWorld {
		rule = python.Raw("unreal.AttachmentRule.KEEP_RELATIVE")
	}

	return m.run(ctx, attachScript, map[string]any{
		"Name":   name,
		"Parent": parent,
		"Socket": socket,
		"Rule":   rule,
	}, "Attached actor", "Failed to attach actor")
}

func (m *Module) addTag(ctx context.Context, args common.Args) result.Envelope {
	name, err := nameArg(args, "name")
	if err != nil {
		return common.Invalid(err)
	}
	tag, err := args.RequireString("tag")
	if err != nil {
		return common.Invalid(err)
	}
	if err := common.ValidateLabel(tag); err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, addTagScript, map[string]any{"Name": name, "Tag": tag}, "Tagged actor", "Failed to tag actor")
}

func nameArg(args common.Args, key string) (string, error) {
	name, err := args.RequireString(key)
	if err != nil {
		return "", err
	}
	if err := common.ValidateLabel(name); err != nil {
		return "", err
	}
	return name, nil
}

func limitArg(args common.Args) (int, error) {
	limit, err := args.IntOr("limit", defaultLimit)
	if err != nil {
		return 0, err
	}
	if limit <= 0 {
		return 0, fmt.Errorf("invalid limit: must be positive")
	}
	return limit, nil
}
