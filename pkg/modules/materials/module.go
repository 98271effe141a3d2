package materials

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

const defaultFolder = "/Game/Materials"

// Module represents the materials module
type Module struct {
	config   *config.ModuleConfig
	logger   *zap.Logger
	engine   common.Engine
	listings *common.Listings
}

// New creates a new materials module. listings is the shared asset listing
// cache, invalidated when materials are created; it may be nil.
func New(cfg *config.ModuleConfig, engine common.Engine, listings *common.Listings, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("materials config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config:   cfg,
		logger:   logger.Named("materials"),
		engine:   engine,
		listings: listings,
	}
	m.logger.Info("Materials module created")
	return m, nil
}

// GetTools returns all MCP tools for the materials module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig MaterialsToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ManageMaterial.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildManageMaterialToolDefinition(toolsConfig.ManageMaterial),
			Handler: common.Handler(m.logger, toolsConfig.ManageMaterial.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"create":          m.create,
		"create_instance": m.createInstance,
		"set_scalar":      m.setScalar,
		"set_vector":      m.setVector,
		"set_texture":     m.setTexture,
		"get_parameters":  m.getParameters,
		"apply":           m.apply,
	}
}

func (m *Module) run(ctx context.Context, script *python.Script, data map[string]any, okMsg, failMsg string) result.Envelope {
	return common.RunScript(ctx, m.engine, script, data, result.Options{SuccessMessage: okMsg, FailureMessage: failMsg})
}

// target resolves name and folder for a new material asset
func target(args common.Args) (folder, name string, err error) {
	name, err = args.RequireString("name")
	if err != nil {
		return "", "", err
	}
	if err := common.ValidateName(name); err != nil {
		return "", "", err
	}
	folder, err = common.ValidateAssetPath(args.StringOr("folder", defaultFolder))
	if err != nil {
		return "", "", err
	}
	return folder, name, nil
}

func (m *Module) create(ctx context.Context, args common.Args) result.Envelope {
	folder, name, err := target(args)
	if err != nil {
		return common.Invalid(err)
	}
	var baseColor any
	if color, ok, err := args.Color("baseColor"); err != nil {
		return common.Invalid(err)
	} else if ok {
		baseColor = color
	}

	env := m.run(ctx, createScript, map[string]any{
		"Folder":    folder,
		"Name":      name,
		"BaseColor": baseColor,
	}, "Created material "+name, "Failed to create material")
	m.invalidate(folder + "/" + name)
	return env
}

func (m *Module) createInstance(ctx context.Context, args common.Args) result.Envelope {
	folder, name, err := target(args)
	if err != nil {
		return common.Invalid(err)
	}
	parent, err := pathArg(args, "parent")
	if err != nil {
		return common.Invalid(err)
	}

	env := m.run(ctx, createInstanceScript, map[string]any{
		"Folder": folder,
		"Name":   name,
		"Parent": parent,
	}, "Created material instance "+name, "Failed to create material instance")
	m.invalidate(folder + "/" + name)
	return env
}

func (m *Module) setScalar(ctx context.Context, args common.Args) result.Envelope {
	p, parameter, err := instanceArgs(args)
	if err != nil {
		return common.Invalid(err)
	}
	value, err := args.RequireFloat("value")
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, setScalarScript, map[string]any{
		"Path":      p,
		"Parameter": parameter,
		"Value":     value,
	}, "Set scalar parameter "+parameter, "Failed to set scalar parameter")
}

func (m *Module) setVector(ctx context.Context, args common.Args) result.Envelope {
	p, parameter, err := instanceArgs(args)
	if err != nil {
		return common.Invalid(err)
	}
	color, ok, err := args.Color("color")
	if err != nil {
		return common.Invalid(err)
	}
	if !ok {
		return common.Invalid(fmt.Errorf("color is required"))
	}
	return m.run(ctx, setVectorScript, map[string]any{
		"Path":      p,
		"Parameter": parameter,
		"Color":     color,
	}, "Set vector parameter "+parameter, "Failed to set vector parameter")
}

func (m *Module) setTexture(ctx context.Context, args common.Args) result.Envelope {
	p, parameter, err := instanceArgs(args)
	if err != nil {
		return common.Invalid(err)
	}
	texture, err := pathArg(args, "texture")
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, setTextureScript, map[string]any{
		"Path":      p,
		"Parameter": parameter,
		"Texture":   texture,
	}, "Set texture parameter "+parameter, "Failed to set texture parameter")
}

func (m *Module) getParameters(ctx context.Context, args common.Args) result.Envelope {
	p, err := pathArg(args, "path")
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, getParametersScript, map[string]any{"Path": p},
		"Read material parameters", "Failed to read material parameters")
}

func (m *Module) apply(ctx context.Context, args common.Args) result.Envelope {
	p, err := pathArg(args, "path")
	if err != nil {
		return common.Invalid(err)
	}
	actor, err := args.RequireString("actor")
	if err != nil {
		return common.Invalid(err)
	}
	if err := common.ValidateLabel(actor); err != nil {
		return common.Invalid(err)
	}
	slot, err := args.IntOr("slot", 0)
	if err != nil {
		return common.Invalid(err)
	}
	if slot < 0 {
		return common.Invalid(fmt.Errorf("invalid slot: must not be negative"))
	}
	return m.run(ctx, applyScript, map[string]any{
		"Path":  p,
		"Actor": actor,
		"Slot":  slot,
	}, "Applied material to "+actor, "Failed to apply material")
}

func (m *Module) invalidate(assetPath string) {
	if dropped := common.InvalidateListings(m.listings, assetPath); dropped > 0 {
		m.logger.Debug("Invalidated asset listings", zap.String("path", assetPath), zap.Int("entries", dropped))
	}
}

func pathArg(args common.Args, key string) (string, error) {
	raw, err := args.RequireString(key)
	if err != nil {
		return "", err
	}
	return common.ValidateAssetPath(raw)
}

func instanceArgs(args common.Args) (string, string, error) {
	p, err := pathArg(args, "path")
	if err != nil {
		return "", "", err
	}
	parameter, err := args.RequireString("parameter")
	if err != nil {
		return "", "", err
	}
	if err := common.ValidateLabel(parameter); err != nil {
		return "", "", fmt.Errorf("invalid parameter: %w", err)
	}
	return p, parameter, nil
}
