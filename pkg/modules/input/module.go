package input

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

const defaultFolder = "/Game/Input"

var (
	keyPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

	valueTypes = map[string]python.Raw{
		"bool":   "unreal.InputActionValueType.BOOLEAN",
		"axis1d": "unreal.InputActionValueType.AXIS1D",
		"axis2d": "unreal.InputActionValueType.AXIS2D",
		"axis3d": "unreal.InputActionValueType.AXIS3D",
	}
)

// Module represents the input module
type Module struct {
	config   *config.ModuleConfig
	logger   *zap.Logger
	engine   common.Engine
	listings *common.Listings
}

// New creates a new input module. listings may be nil.
func New(cfg *config.ModuleConfig, engine common.Engine, listings *common.Listings, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("input config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config:   cfg,
		logger:   logger.Named("input"),
		engine:   engine,
		listings: listings,
	}
	m.logger.Info("Input module created")
	return m, nil
}

// GetTools returns all MCP tools for the input module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig InputToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ManageInput.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildManageInputToolDefinition(toolsConfig.ManageInput),
			Handler: common.Handler(m.logger, toolsConfig.ManageInput.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"create_action":          m.createAction,
		"create_mapping_context": m.createContext,
		"add_mapping":            m.addMapping,
		"remove_mapping":         m.removeMapping,
		"list_mappings":          m.listMappings,
	}
}

func (m *Module) run(ctx context.Context, script *python.Script, data map[string]any, okMsg, failMsg string) result.Envelope {
	return common.RunScript(ctx, m.engine, script, data, result.Options{SuccessMessage: okMsg, FailureMessage: failMsg})
}

func (m *Module) createAction(ctx context.Context, args common.Args) result.Envelope {
	folder, name, err := newAsset(args)
	if err != nil {
		return common.Invalid(err)
	}
	valueType, ok := valueTypes[args.StringOr("valueType", "bool")]
	if !ok {
		return common.Invalid(fmt.Errorf("invalid valueType: must be bool, axis1d, axis2d or axis3d"))
	}
	env := m.run(ctx, createActionScript, map[string]any{
		"Folder":    folder,
		"Name":      name,
		"ValueType": valueType,
	}, "Created input action "+name, "Failed to create input action")
	m.invalidate(folder + "/" + name)
	return env
}

func (m *Module) createContext(ctx context.Context, args common.Args) result.Envelope {
	folder, name, err := newAsset(args)
	if err != nil {
		return common.Invalid(err)
	}
	env := m.run(ctx, createContextScript, map[string]any{"Folder": folder, "Name": name},
		"Created mapping context "+name, "Failed to create mapping context")
	m.invalidate(folder + "/" + name)
	return env
}

func (m *Module) addMapping(ctx context.Context, args common.Args) result.Envelope {
	data, err := mappingArgs(args)
	if err != nil {
		return common.Invalid(err)
	}
	if data["Key"] == "" {
		return common.Invalid(fmt.Errorf("key is required"))
	}
	return m.run(ctx, addMappingScript, data, "Added mapping", "Failed to add mapping")
}

func (m *Module) removeMapping(ctx context.Context, args common.Args) result.Envelope {
	data, err := mappingArgs(args)
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, removeMappingScript, data, "Removed mapping", "Failed to remove mapping")
}

func (m *Module) listMappings(ctx context.Context, args common.Args) result.Envelope {
	imc, err := pathArg(args, "context")
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, listMappingsScript, map[string]any{"Context": imc}, "Listed mappings", "Failed to list mappings")
}

func (m *Module) invalidate(assetPath string) {
	if dropped := common.InvalidateListings(m.listings, assetPath); dropped > 0 {
		m.logger.Debug("Invalidated asset listings", zap.String("path", assetPath), zap.Int("entries", dropped))
	}
}

func newAsset(args common.Args) (string, string, error) {
	name, err := args.RequireString("name")
	if err != nil {
		return "", "", err
	}
	if err := common.ValidateName(name); err != nil {
		return "", "", err
	}
	folder, err := common.ValidateAssetPath(args.StringOr("folder", defaultFolder))
	if err != nil {
		return "", "", err
	}
	return folder, name, nil
}

func mappingArgs(args common.Args) (map[string]any, error) {
	imc, err := pathArg(args, "context")
	if err != nil {
		return nil, err
	}
	action, err := pathArg(args, "inputAction")
	if err != nil {
		return nil, err
	}
	key := args.StringOr("key", "")
	if key != "" && !keyPattern.MatchString(key) {
		return nil, fmt.Errorf("invalid key %q", key)
	}
	return map[string]any{"Context": imc, "Action": action, "Key": key}, nil
}

func pathArg(args common.Args, key string) (string, error) {
	raw, err := args.RequireString(key)
	if err != nil {
		return "", err
	}
	return common.ValidateAssetPath(raw)
}
