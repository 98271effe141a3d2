package collision

import (
	"context"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/python"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

var (
	collisionModes = map[string]python.Raw{
		"none":          "unreal.CollisionEnabled.NO_COLLISION",
		"query":         "unreal.CollisionEnabled.QUERY_ONLY",
		"physics":       "unreal.CollisionEnabled.PHYSICS_ONLY",
		"query_physics": "unreal.CollisionEnabled.QUERY_AND_PHYSICS",
	}

	channels = map[string]string{
		"world_static":  "ECC_WORLD_STATIC",
		"world_dynamic": "ECC_WORLD_DYNAMIC",
		"pawn":          "ECC_PAWN",
		"visibility":    "ECC_VISIBILITY",
		"camera":        "ECC_CAMERA",
		"physics_body":  "ECC_PHYSICS_BODY",
		"vehicle":       "ECC_VEHICLE",
		"destructible":  "ECC_DESTRUCTIBLE",
	}

	responses = map[string]python.Raw{
		"ignore":  "unreal.CollisionResponseType.ECR_IGNORE",
		"overlap": "unreal.CollisionResponseType.ECR_OVERLAP",
		"block":   "unreal.CollisionResponseType.ECR_BLOCK",
	}
)

func collisionModeNames() []string { return sortedKeys(collisionModes) }

func channelNames() []string { return sortedKeys(channels) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// channelMembers lists the CollisionChannel members reported by every action
func channelMembers() []string {
	members := make([]string, 0, len(channels))
	for _, name := range channelNames() {
		members = append(members, channels[name])
	}
	return members
}

// Module represents the collision module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
}

// New creates a new collision module
func New(cfg *config.ModuleConfig, engine common.Engine, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("collision config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("collision"),
		engine: engine,
	}
	m.logger.Info("Collision module created")
	return m, nil
}

// GetTools returns all MCP tools for the collision module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig CollisionToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ManageCollision.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildManageCollisionToolDefinition(toolsConfig.ManageCollision),
			Handler: common.Handler(m.logger, toolsConfig.ManageCollision.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"get":                  m.get,
		"set_profile":          m.setProfile,
		"set_enabled":          m.setEnabled,
		"set_response":         m.setResponse,
		"set_simulate_physics": m.setSimulatePhysics,
	}
}

func target(args common.Args) (map[string]any, error) {
	actor, err := args.RequireString("actor")
	if err != nil {
		return nil, err
	}
	if err := common.ValidateLabel(actor); err != nil {
		return nil, err
	}
	component := args.StringOr("component", "")
	if component != "" {
		if err := common.ValidateName(component); err != nil {
			return nil, fmt.Errorf("invalid component: %w", err)
		}
	}
	return map[string]any{
		"Actor":     actor,
		"Component": component,
		"Channels":  channelMembers(),
	}, nil
}

func (m *Module) run(ctx context.Context, script *python.Script, data map[string]any, okMsg, failMsg string) result.Envelope {
	return common.RunScript(ctx, m.engine, script, data, result.Options{SuccessMessage: okMsg, FailureMessage: failMsg})
}

func (m *Module) get(ctx context.Context, args common.Args) result.Envelope {
	data, err := target(args)
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, getScript, data, "Read collision settings", "Failed to read collision settings")
}

func (m *Module) setProfile(ctx context.Context, args common.Args) result.Envelope {
	data, err := target(args)
	if err != nil {
		return common.Invalid(err)
	}
	profile, err := args.RequireString("profile")
	if err != nil {
		return common.Invalid(err)
	}
	if err := common.ValidateName(profile); err != nil {
		return common.Invalid(fmt.Errorf("invalid profile: %w", err))
	}
	data["Profile"] = profile
	return m.run(ctx, setProfileScript, data, "Set collision profile "+profile, "Failed to set collision profile")
}

func (m *Module) setEnabled(ctx context.Context, args common.Args) result.Envelope {
	data, err := target(args)
	if err != nil {
		return common.Invalid(err)
	}
	mode, ok := collisionModes[args.StringOr("mode", "")]
	if !ok {
		return common.Invalid(fmt.Errorf("invalid mode: must be one of %v", collisionModeNames()))
	}
	data["Mode"] = mode
	return m.run(ctx, setEnabledScript, data, "Set collision mode", "Failed to set collision mode")
}

func (m *Module) setResponse(ctx context.Context, args common.Args) result.Envelope {
	data, err := target(args)
	if err != nil {
		return common.Invalid(err)
	}
	channel, ok := channels[args.StringOr("channel", "")]
	if !ok {
		return common.Invalid(fmt.Errorf("invalid channel: must be one of %v", channelNames()))
	}
	response, ok := responses[args.StringOr("response", "")]
	if !ok {
		return common.Invalid(fmt.Errorf("invalid response: must be ignore, overlap or block"))
	}
	data["Channel"] = python.Raw("unreal.CollisionChannel." + channel)
	data["Response"] = response
	return m.run(ctx, setResponseScript, data, "Set collision response", "Failed to set collision response")
}

func (m *Module) setSimulatePhysics(ctx context.Context, args common.Args) result.Envelope {
	data, err := target(args)
	if err != nil {
		return common.Invalid(err)
	}
	enabled, err := args.RequireBool("enabled")
	if err != nil {
		return common.Invalid(err)
	}
	data["Enabled"] = enabled
	msg := "Disabled physics simulation"
	if enabled {
		msg = "Enabled physics simulation"
	}
	return m.run(ctx, setSimulatePhysicsScript, data, msg, "Failed to change physics simulation")
}
