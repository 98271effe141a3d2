package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

const defaultSearchLimit = 100

var (
	objectPathPattern = regexp.MustCompile(`^/[A-Za-z0-9_\-/.:]+$`)
	identPattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,127}$`)
	classPathPattern  = regexp.MustCompile(`^(/[A-Za-z0-9_]+)+\.[A-Za-z0-9_]+$`)
)

// Module represents the remote control module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
}

// New creates a new remote control module
func New(cfg *config.ModuleConfig, engine common.Engine, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("remote config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("remote"),
		engine: engine,
	}
	m.logger.Info("Remote control module created")
	return m, nil
}

// GetTools returns all MCP tools for the remote control module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig RemoteToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.RemoteControl.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildRemoteControlToolDefinition(toolsConfig.RemoteControl),
			Handler: common.Handler(m.logger, toolsConfig.RemoteControl.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"call_function": m.callFunction,
		"get_property":  m.getProperty,
		"set_property":  m.setProperty,
		"describe":      m.describe,
		"list_presets":  m.listPresets,
		"get_preset":    m.getPreset,
		"search_assets": m.searchAssets,
	}
}

func (m *Module) callFunction(ctx context.Context, args common.Args) result.Envelope {
	objectPath, err := objectPathArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	function, err := identArg(args, "function")
	if err != nil {
		return common.Invalid(err)
	}
	params := map[string]any{}
	if raw, ok := args["parameters"]; ok && raw != nil {
		p, ok := raw.(map[string]any)
		if !ok {
			return common.Invalid(fmt.Errorf("invalid parameters: expected an object"))
		}
		params = p
	}

	body, err := m.engine.CallFunction(ctx, objectPath, function, params, bridge.WithName("call "+function))
	return common.Remote(body, err, result.Options{
		SuccessMessage: "Called " + function,
		FailureMessage: "Failed to call " + function,
	}).With("objectPath", objectPath).With("function", function)
}

func (m *Module) getProperty(ctx context.Context, args common.Args) result.Envelope {
	objectPath, err := objectPathArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	property, err := identArg(args, "property")
	if err != nil {
		return common.Invalid(err)
	}
	body, err := m.engine.GetProperty(ctx, objectPath, property)
	return common.Remote(body, err, result.Options{
		SuccessMessage: "Read " + property,
		FailureMessage: "Failed to read " + property,
	}).With("property", property)
}

func (m *Module) setProperty(ctx context.Context, args common.Args) result.Envelope {
	objectPath, err := objectPathArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	property, err := identArg(args, "property")
	if err != nil {
		return common.Invalid(err)
	}
	value, ok := args["value"]
	if !ok {
		return common.Invalid(fmt.Errorf("value is required"))
	}
	value = decodeValue(value)

	body, err := m.engine.SetProperty(ctx, objectPath, property, value)
	return common.Remote(body, err, result.Options{
		SuccessMessage: "Set " + property,
		FailureMessage: "Failed to set " + property,
	}).With("property", property).With("value", value)
}

func (m *Module) describe(ctx context.Context, args common.Args) result.Envelope {
	objectPath, err := objectPathArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	body, err := m.engine.Describe(ctx, objectPath)
	return common.Remote(body, err, result.Options{SuccessMessage: "Described object", FailureMessage: "Failed to describe object"})
}

func (m *Module) listPresets(ctx context.Context, args common.Args) result.Envelope {
	body, err := m.engine.ListPresets(ctx)
	env := common.Remote(body, err, result.Options{SuccessMessage: "Listed presets", FailureMessage: "Failed to list presets"})
	if env.Success {
		env = env.With("count", gjson.GetBytes(body, "Presets.#").Int())
	}
	return env
}

func (m *Module) getPreset(ctx context.Context, args common.Args) result.Envelope {
	name, err := args.RequireString("preset")
	if err != nil {
		return common.Invalid(err)
	}
	if err := common.ValidateName(name); err != nil {
		return common.Invalid(err)
	}
	body, err := m.engine.GetPreset(ctx, name)
	return common.Remote(body, err, result.Options{SuccessMessage: "Read preset " + name, FailureMessage: "Failed to read preset"})
}

func (m *Module) searchAssets(ctx context.Context, args common.Args) result.Envelope {
	query := args.StringOr("query", "")
	if query != "" {
		if err := common.ValidateLabel(query); err != nil {
			return common.Invalid(err)
		}
	}
	classNames, err := args.StringSlice("classNames")
	if err != nil {
		return common.Invalid(err)
	}
	for _, c := range classNames {
		if !classPathPattern.MatchString(c) {
			return common.Invalid(fmt.Errorf("invalid class path %q: expected /Script/Module.Class", c))
		}
	}
	rawPaths, err := args.StringSlice("packagePaths")
	if err != nil {
		return common.Invalid(err)
	}
	if len(rawPaths) == 0 {
		rawPaths = []string{"/Game"}
	}
	paths := make([]string, 0, len(rawPaths))
	for _, p := range rawPaths {
		v, err := common.ValidateAssetPath(p)
		if err != nil {
			return common.Invalid(err)
		}
		paths = append(paths, v)
	}
	recursive, err := args.BoolOr("recursive", true)
	if err != nil {
		return common.Invalid(err)
	}
	limit, err := args.IntOr("limit", defaultSearchLimit)
	if err != nil {
		return common.Invalid(err)
	}
	if limit <= 0 {
		return common.Invalid(fmt.Errorf("invalid limit: must be positive"))
	}

	body, err := m.engine.SearchAssets(ctx, query, bridge.AssetFilter{
		ClassNames:   classNames,
		PackagePaths: paths,
		Recursive:    recursive,
	})
	env := common.Remote(body, err, result.Options{SuccessMessage: "Searched assets", FailureMessage: "Failed to search assets"})
	if !env.Success {
		return env
	}

	assets, _ := env.Payload["Assets"].([]any)
	truncated := len(assets) > limit
	if truncated {
		assets = assets[:limit]
	}
	return env.
		With("Assets", assets).
		With("count", len(assets)).
		With("truncated", truncated)
}

func objectPathArg(args common.Args) (string, error) {
	p, err := args.RequireString("objectPath")
	if err != nil {
		return "", err
	}
	if !objectPathPattern.MatchString(p) || strings.Contains(p, "..") {
		return "", fmt.Errorf("invalid objectPath %q", p)
	}
	return p, nil
}

func identArg(args common.Args, key string) (string, error) {
	v, err := args.RequireString(key)
	if err != nil {
		return "", err
	}
	if !identPattern.MatchString(v) {
		return "", fmt.Errorf("invalid %s %q", key, v)
	}
	return v, nil
}

// decodeValue turns JSON object or array text into structured values so
// clients limited to string parameters can still set structs
func decodeValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return v
	}
	if !gjson.Valid(trimmed) {
		return v
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return v
	}
	return decoded
}
