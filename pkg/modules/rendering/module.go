package rendering

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

const maxScreenshotSize = 7680

var (
	cvarPattern     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]{0,127}$`)
	cvarValue       = regexp.MustCompile(`^[A-Za-z0-9_.,+-]{0,64}$`)
	identPattern    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)
	filenamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}(\.png)?$`)

	levels = map[string]int{
		"low":       0,
		"medium":    1,
		"high":      2,
		"epic":      3,
		"cinematic": 4,
	}

	groups = map[string]string{
		"view_distance":       "sg.ViewDistanceQuality",
		"anti_aliasing":       "sg.AntiAliasingQuality",
		"shadows":             "sg.ShadowQuality",
		"global_illumination": "sg.GlobalIlluminationQuality",
		"reflections":         "sg.ReflectionQuality",
		"post_process":        "sg.PostProcessQuality",
		"textures":            "sg.TextureQuality",
		"effects":             "sg.EffectsQuality",
		"foliage":             "sg.FoliageQuality",
		"shading":             "sg.ShadingQuality",
	}

	viewModes = []string{
		"lit", "unlit", "wireframe", "detaillighting", "lightingonly", "lightcomplexity",
		"shadercomplexity", "lightmapdensity", "reflections", "collisionpawn", "collisionvisibility",
	}
)

func levelNames() []string {
	names := make([]string, 0, len(levels))
	for k := range levels {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return levels[names[i]] < levels[names[j]] })
	return names
}

func groupNames() []string {
	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Module represents the rendering module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
}

// New creates a new rendering module
func New(cfg *config.ModuleConfig, engine common.Engine, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("rendering config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("rendering"),
		engine: engine,
	}
	m.logger.Info("Rendering module created")
	return m, nil
}

// GetTools returns all MCP tools for the rendering module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig RenderingToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ManageRendering.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildManageRenderingToolDefinition(toolsConfig.ManageRendering),
			Handler: common.Handler(m.logger, toolsConfig.ManageRendering.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"set_cvar":        m.setCVar,
		"get_cvar":        m.getCVar,
		"set_scalability": m.setScalability,
		"set_view_mode":   m.setViewMode,
		"show_flag":       m.showFlag,
		"stat":            m.stat,
		"screenshot":      m.screenshot,
	}
}

// console runs one or more commands in order and stops at the first failure
func (m *Module) console(ctx context.Context, okMsg, failMsg string, commands ...string) result.Envelope {
	opts := result.Options{SuccessMessage: okMsg, FailureMessage: failMsg}
	for _, cmd := range commands {
		body, err := m.engine.ConsoleCommand(ctx, cmd)
		if env := common.Remote(body, err, opts); !env.Success {
			return env.With("command", cmd)
		}
	}
	env := result.OK(okMsg, nil)
	if len(commands) == 1 {
		return env.With("command", commands[0])
	}
	return env.With("commands", commands)
}

func (m *Module) setCVar(ctx context.Context, args common.Args) result.Envelope {
	name, err := cvarArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	value, err := args.RequireString("value")
	if err != nil {
		return common.Invalid(err)
	}
	if !cvarValue.MatchString(value) {
		return common.Invalid(fmt.Errorf("invalid value %q", value))
	}
	return m.console(ctx, "Set "+name, "Failed to set "+name, name+" "+value).
		With("name", name).
		With("value", value)
}

func (m *Module) getCVar(ctx context.Context, args common.Args) result.Envelope {
	name, err := cvarArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	return common.RunScript(ctx, m.engine, getCVarScript, map[string]any{"Name": name},
		result.Options{SuccessMessage: "Read " + name, FailureMessage: "Failed to read " + name})
}

func (m *Module) setScalability(ctx context.Context, args common.Args) result.Envelope {
	levelName := strings.ToLower(args.StringOr("level", ""))
	level, ok := levels[levelName]
	if !ok {
		return common.Invalid(fmt.Errorf("invalid level: must be one of %v", levelNames()))
	}
	groupName := args.StringOr("group", "")
	if groupName == "" {
		return m.console(ctx, "Set scalability to "+levelName, "Failed to set scalability",
			fmt.Sprintf("scalability %d", level)).
			With("level", levelName)
	}
	cvar, ok := groups[groupName]
	if !ok {
		return common.Invalid(fmt.Errorf("invalid group: must be one of %v", groupNames()))
	}
	return m.console(ctx, "Set "+groupName+" quality to "+levelName, "Failed to set scalability",
		fmt.Sprintf("%s %d", cvar, level)).
		With("level", levelName).
		With("group", groupName)
}

func (m *Module) setViewMode(ctx context.Context, args common.Args) result.Envelope {
	mode := strings.ToLower(args.StringOr("mode", ""))
	valid := false
	for _, v := range viewModes {
		if v == mode {
			valid = true
			break
		}
	}
	if !valid {
		return common.Invalid(fmt.Errorf("invalid mode: must be one of %v", viewModes))
	}
	return m.console(ctx, "Set view mode to "+mode, "Failed to set view mode", "viewmode "+mode).
		With("mode", mode)
}

func (m *Module) showFlag(ctx context.Context, args common.Args) result.Envelope {
	flag, err := args.RequireString("name")
	if err != nil {
		return common.Invalid(err)
	}
	if !identPattern.MatchString(flag) {
		return common.Invalid(fmt.Errorf("invalid show flag %q", flag))
	}
	enabled, err := args.RequireBool("enabled")
	if err != nil {
		return common.Invalid(err)
	}
	state := "0"
	if enabled {
		state = "1"
	}
	return m.console(ctx, "Updated show flag "+flag, "Failed to update show flag", "ShowFlag."+flag+" "+state).
		With("flag", flag).
		With("enabled", enabled)
}

// stat toggles a stat overlay. The bridge paces stat commands so overlays
// have time to draw before the next command runs.
func (m *Module) stat(ctx context.Context, args common.Args) result.Envelope {
	name, err := args.RequireString("name")
	if err != nil {
		return common.Invalid(err)
	}
	name = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "stat "))
	if !identPattern.MatchString(name) {
		return common.Invalid(fmt.Errorf("invalid stat %q", name))
	}
	return m.console(ctx, "Toggled stat "+name, "Failed to toggle stat", "stat "+name).
		With("stat", name)
}

func (m *Module) screenshot(ctx context.Context, args common.Args) result.Envelope {
	filename := args.StringOr("filename", "")
	if filename == "" {
		filename = "Screenshot"
	}
	if !filenamePattern.MatchString(filename) {
		return common.Invalid(fmt.Errorf("invalid filename %q: use letters, digits, '-' and '_'", filename))
	}
	if !strings.HasSuffix(filename, ".png") {
		filename += ".png"
	}
	width, err := sizeArg(args, "width", 1920)
	if err != nil {
		return common.Invalid(err)
	}
	height, err := sizeArg(args, "height", 1080)
	if err != nil {
		return common.Invalid(err)
	}
	return common.RunScript(ctx, m.engine, screenshotScript, map[string]any{
		"Filename": filename,
		"Width":    width,
		"Height":   height,
	}, result.Options{SuccessMessage: "Screenshot requested", FailureMessage: "Failed to take screenshot"})
}

func cvarArg(args common.Args) (string, error) {
	name, err := args.RequireString("name")
	if err != nil {
		return "", err
	}
	if !cvarPattern.MatchString(name) {
		return "", fmt.Errorf("invalid console variable %q", name)
	}
	return name, nil
}

func sizeArg(args common.Args, key string, def int) (int, error) {
	v, err := args.IntOr(key, def)
	if err != nil {
		return 0, err
	}
	if v <= 0 || v > maxScreenshotSize {
		return 0, fmt.Errorf("invalid %s: must be between 1 and %d", key, maxScreenshotSize)
	}
	return v, nil
}
