package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/python"
	"github.com/shaowenchen/unreal-mcp-server/pkg/queue"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

const maxScriptSize = 256 << 10

// Module represents the editor module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
}

// New creates a new editor module
func New(cfg *config.ModuleConfig, engine common.Engine, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("editor config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("editor"),
		engine: engine,
	}
	m.logger.Info("Editor module created")
	return m, nil
}

// GetTools returns all MCP tools for the editor module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig EditorToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ControlEditor.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildControlEditorToolDefinition(toolsConfig.ControlEditor),
			Handler: common.Handler(m.logger, toolsConfig.ControlEditor.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"status":         m.status,
		"play":           m.simple(playScript, "Started Play In Editor", "Failed to start Play In Editor"),
		"stop":           m.simple(stopScript, "Stopped Play In Editor", "Failed to stop Play In Editor"),
		"pause":          m.simple(pauseScript, "Toggled pause", "Failed to toggle pause"),
		"is_playing":     m.simple(isPlayingScript, "Read play state", "Failed to read play state"),
		"get_camera":     m.simple(getCameraScript, "Read viewport camera", "Failed to read viewport camera"),
		"set_camera":     m.setCamera,
		"open_level":     m.openLevel,
		"save_level":     m.simple(saveLevelScript, "Saved current level", "Failed to save level"),
		"console":        m.console,
		"execute_python": m.executePython,
	}
}

// simple binds a parameterless snippet to an action
func (m *Module) simple(script *python.Script, okMsg, failMsg string) common.ActionFunc {
	return func(ctx context.Context, args common.Args) result.Envelope {
		return common.RunScript(ctx, m.engine, script, map[string]any{},
			result.Options{SuccessMessage: okMsg, FailureMessage: failMsg})
	}
}

// status reports the local bridge and queue state, then asks the editor for
// its version. An unreachable editor still yields a successful status.
func (m *Module) status(ctx context.Context, args common.Args) result.Envelope {
	st := m.engine.Status()
	env := result.OK("Read editor status", nil).
		With("bridge", st).
		With("connected", st.Connected)

	body, err := m.engine.Info(ctx, bridge.WithPriority(queue.PriorityHigh))
	if err != nil {
		return env.
			With("connected", false).
			WithWarning("Unreal Editor is not reachable: " + err.Error())
	}
	env = env.
		With("connected", true).
		With("routes", gjson.GetBytes(body, "HttpRoutes.#").Int())

	version := common.RunScript(ctx, m.engine, versionScript, map[string]any{}, result.Options{},
		bridge.WithPriority(queue.PriorityHigh))
	if !version.Success {
		return env.WithWarning("Failed to read engine version: " + version.Error)
	}
	for _, key := range []string{"engine_version", "project", "level", "playing"} {
		if v, ok := version.Get(key); ok {
			env = env.With(key, v)
		}
	}
	return env
}

func (m *Module) setCamera(ctx context.Context, args common.Args) result.Envelope {
	var location *python.Vec3
	var rotation *python.Rot3
	if v, ok, err := args.Vec3("location"); err != nil {
		return common.Invalid(err)
	} else if ok {
		location = &v
	}
	if r, ok, err := args.Rot3("rotation"); err != nil {
		return common.Invalid(err)
	} else if ok {
		rotation = &r
	}
	if location == nil && rotation == nil {
		return common.Invalid(fmt.Errorf("location or rotation is required"))
	}
	return common.RunScript(ctx, m.engine, setCameraScript, map[string]any{
		"Location": location,
		"Rotation": rotation,
	}, result.Options{SuccessMessage: "Moved viewport camera", FailureMessage: "Failed to move viewport camera"})
}

func (m *Module) openLevel(ctx context.Context, args common.Args) result.Envelope {
	raw, err := args.RequireString("level")
	if err != nil {
		return common.Invalid(err)
	}
	level, err := common.ValidateAssetPath(raw)
	if err != nil {
		return common.Invalid(err)
	}
	return common.RunScript(ctx, m.engine, openLevelScript, map[string]any{"Level": level},
		result.Options{SuccessMessage: "Opened level " + level, FailureMessage: "Failed to open level"})
}

func (m *Module) console(ctx context.Context, args common.Args) result.Envelope {
	command, err := args.RequireString("command")
	if err != nil {
		return common.Invalid(err)
	}
	if strings.ContainsRune(command, 0) {
		return common.Invalid(fmt.Errorf("invalid command: contains a NUL byte"))
	}
	if seg, blocked := bridge.BlockedSegment(command); blocked {
		return result.Fail("Command blocked", fmt.Sprintf("%q would quit or crash the editor", seg))
	}

	body, err := m.engine.ConsoleCommand(ctx, command)
	return common.Remote(body, err, result.Options{
		SuccessMessage: "Executed console command",
		FailureMessage: "Failed to execute console command",
	}).With("command", command)
}

// executePython runs client-supplied source. It is not marked generated, so
// the bridge refuses it unless raw Python is allowed.
func (m *Module) executePython(ctx context.Context, args common.Args) result.Envelope {
	script, ok := args["script"].(string)
	if !ok || strings.TrimSpace(script) == "" {
		return common.Invalid(fmt.Errorf("script is required"))
	}
	if len(script) > maxScriptSize {
		return common.Invalid(fmt.Errorf("script exceeds %d bytes", maxScriptSize))
	}

	opts := result.Options{SuccessMessage: "Executed Python", FailureMessage: "Python execution failed"}
	res, err := m.engine.ExecutePython(ctx, script, bridge.WithName("execute_python"))
	if err != nil {
		return common.EngineError(opts, err)
	}
	out := res.Output()
	env := result.Interpret(out, opts)
	if _, ok := env.Get("output"); !ok && strings.TrimSpace(out) != "" {
		env = env.With("output", strings.TrimSpace(out))
	}
	return env
}
