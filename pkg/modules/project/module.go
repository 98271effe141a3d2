package project

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/python"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

// builds routinely outlast the default request timeout
const buildTimeout = 30 * time.Minute

var (
	qualityNames = []string{"preview", "medium", "high", "production"}

	qualities = map[string]python.Raw{
		"preview":    "unreal.LightingBuildQuality.QUALITY_PREVIEW",
		"medium":     "unreal.LightingBuildQuality.QUALITY_MEDIUM",
		"high":       "unreal.LightingBuildQuality.QUALITY_HIGH",
		"production": "unreal.LightingBuildQuality.QUALITY_PRODUCTION",
	}
)

// Module represents the project module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
}

// New creates a new project module
func New(cfg *config.ModuleConfig, engine common.Engine, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("project config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("project"),
		engine: engine,
	}
	m.logger.Info("Project module created")
	return m, nil
}

// GetTools returns all MCP tools for the project module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig ProjectToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ManageProject.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildManageProjectToolDefinition(toolsConfig.ManageProject),
			Handler: common.Handler(m.logger, toolsConfig.ManageProject.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"info":              m.info,
		"build_lighting":    m.buildLighting,
		"build_navigation":  m.buildNavigation,
		"compile_blueprint": m.compileBlueprint,
		"save_all":          m.saveAll,
	}
}

func (m *Module) info(ctx context.Context, args common.Args) result.Envelope {
	return common.RunScript(ctx, m.engine, infoScript, map[string]any{},
		result.Options{SuccessMessage: "Read project information", FailureMessage: "Failed to read project information"})
}

func (m *Module) buildLighting(ctx context.Context, args common.Args) result.Envelope {
	qualityName := args.StringOr("quality", "production")
	quality, ok := qualities[qualityName]
	if !ok {
		return common.Invalid(fmt.Errorf("invalid quality: must be one of %v", qualityNames))
	}
	reflections, err := args.BoolOr("reflectionCaptures", true)
	if err != nil {
		return common.Invalid(err)
	}

	m.logger.Info("Building lighting", zap.String("quality", qualityName))
	return common.RunScript(ctx, m.engine, buildLightingScript, map[string]any{
		"Quality":            quality,
		"ReflectionCaptures": reflections,
	}, result.Options{SuccessMessage: "Built lighting", FailureMessage: "Failed to build lighting"},
		bridge.WithTimeout(buildTimeout))
}

func (m *Module) buildNavigation(ctx context.Context, args common.Args) result.Envelope {
	opts := result.Options{SuccessMessage: "Rebuilt navigation", FailureMessage: "Failed to rebuild navigation"}
	body, err := m.engine.ConsoleCommand(ctx, "RebuildNavigation", bridge.WithTimeout(buildTimeout))
	return common.Remote(body, err, opts).With("command", "RebuildNavigation")
}

func (m *Module) compileBlueprint(ctx context.Context, args common.Args) result.Envelope {
	raw, err := args.RequireString("path")
	if err != nil {
		return common.Invalid(err)
	}
	p, err := common.ValidateAssetPath(raw)
	if err != nil {
		return common.Invalid(err)
	}
	return common.RunScript(ctx, m.engine, compileBlueprintScript, map[string]any{"Path": p},
		result.Options{SuccessMessage: "Compiled Blueprint", FailureMessage: "Failed to compile Blueprint"})
}

func (m *Module) saveAll(ctx context.Context, args common.Args) result.Envelope {
	includeMaps, err := args.BoolOr("includeMaps", true)
	if err != nil {
		return common.Invalid(err)
	}
	return common.RunScript(ctx, m.engine, saveAllScript, map[string]any{"IncludeMaps": includeMaps},
		result.Options{SuccessMessage: "Saved all dirty packages", FailureMessage: "Failed to save packages"})
}
