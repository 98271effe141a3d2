package selection

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

var classPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Module represents the selection module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
}

// New creates a new selection module
func New(cfg *config.ModuleConfig, engine common.Engine, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("selection config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("selection"),
		engine: engine,
	}
	m.logger.Info("Selection module created")
	return m, nil
}

// GetTools returns all MCP tools for the selection module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig SelectionToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ManageSelection.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildManageSelectionToolDefinition(toolsConfig.ManageSelection),
			Handler: common.Handler(m.logger, toolsConfig.ManageSelection.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"get":             m.get,
		"select":          m.selectActors,
		"clear":           m.clear,
		"select_by_class": m.selectByClass,
		"invert":          m.invert,
	}
}

func (m *Module) run(ctx context.Context, script *python.Script, data map[string]any, okMsg, failMsg string) result.Envelope {
	return common.RunScript(ctx, m.engine, script, data, result.Options{SuccessMessage: okMsg, FailureMessage: failMsg})
}

func (m *Module) get(ctx context.Context, args common.Args) result.Envelope {
	return m.run(ctx, getScript, map[string]any{}, "Read selection", "Failed to read selection")
}

func (m *Module) selectActors(ctx context.Context, args common.Args) result.Envelope {
	names, err := args.StringSlice("names")
	if err != nil {
		return common.Invalid(err)
	}
	if len(names) == 0 {
		return common.Invalid(fmt.Errorf("names is required"))
	}
	for _, n := range names {
		if err := common.ValidateLabel(n); err != nil {
			return common.Invalid(err)
		}
	}
	add, err := args.BoolOr("add", false)
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, selectScript, map[string]any{"Names": names, "Add": add}, "Selected actors", "Failed to select actors")
}

func (m *Module) clear(ctx context.Context, args common.Args) result.Envelope {
	return m.run(ctx, clearScript, map[string]any{}, "Cleared selection", "Failed to clear selection")
}

func (m *Module) selectByClass(ctx context.Context, args common.Args) result.Envelope {
	class, err := args.RequireString("class")
	if err != nil {
		return common.Invalid(err)
	}
	if !classPattern.MatchString(class) {
		return common.Invalid(fmt.Errorf("invalid class %q", class))
	}
	add, err := args.BoolOr("add", false)
	if err != nil {
		return common.Invalid(err)
	}
	return m.run(ctx, selectByClassScript, map[string]any{"Class": class, "Add": add},
		"Selected actors of class "+class, "Failed to select actors")
}

func (m *Module) invert(ctx context.Context, args common.Args) result.Envelope {
	return m.run(ctx, invertScript, map[string]any{}, "Inverted selection", "Failed to invert selection")
}
