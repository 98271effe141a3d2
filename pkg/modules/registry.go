// Package modules assembles the enabled tool modules.
package modules

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/metrics"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/actors"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/assets"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/collision"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/editor"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/input"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/materials"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/project"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/remote"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/rendering"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/selection"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/splines"
	"github.com/shaowenchen/unreal-mcp-server/pkg/tracing"
)

// Module is implemented by every tool module
type Module interface {
	GetTools() []server.ServerTool
}

// Registered is an enabled module and its instrumented tools
type Registered struct {
	Name  string
	Tools []server.ServerTool
}

// Dependencies are shared by all modules
type Dependencies struct {
	Engine   common.Engine
	Listings *common.Listings
	Logger   *zap.Logger
}

// Build creates every enabled module in registration order. Tool handlers
// are wrapped with metrics and tracing.
func Build(cfg *config.ModulesConfig, deps Dependencies) ([]Registered, error) {
	var registered []Registered
	for _, name := range config.ModuleNames {
		moduleCfg, ok := cfg.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown module %q", name)
		}
		if !moduleCfg.Enabled {
			deps.Logger.Debug("Module disabled", zap.String("module", name))
			continue
		}

		module, err := newModule(name, moduleCfg, deps)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s module: %w", name, err)
		}

		tools := module.GetTools()
		for i := range tools {
			toolName := tools[i].Tool.Name
			tools[i].Handler = metrics.WrapToolHandler(
				tracing.WrapToolHandler(tools[i].Handler, toolName, name),
				toolName, name)
		}
		registered = append(registered, Registered{Name: name, Tools: tools})
	}
	return registered, nil
}

func newModule(name string, cfg *config.ModuleConfig, deps Dependencies) (Module, error) {
	switch name {
	case config.ModuleAssets:
		return assets.New(cfg, deps.Engine, deps.Listings, deps.Logger)
	case config.ModuleActors:
		return actors.New(cfg, deps.Engine, deps.Logger)
	case config.ModuleMaterials:
		return materials.New(cfg, deps.Engine, deps.Listings, deps.Logger)
	case config.ModuleSplines:
		return splines.New(cfg, deps.Engine, deps.Logger)
	case config.ModuleInput:
		return input.New(cfg, deps.Engine, deps.Listings, deps.Logger)
	case config.ModuleCollision:
		return collision.New(cfg, deps.Engine, deps.Logger)
	case config.ModuleRendering:
		return rendering.New(cfg, deps.Engine, deps.Logger)
	case config.ModuleSelection:
		return selection.New(cfg, deps.Engine, deps.Logger)
	case config.ModuleProject:
		return project.New(cfg, deps.Engine, deps.Logger)
	case config.ModuleEditor:
		return editor.New(cfg, deps.Engine, deps.Logger)
	case config.ModuleRemote:
		return remote.New(cfg, deps.Engine, deps.Logger)
	}
	return nil, fmt.Errorf("unknown module %q", name)
}

// Register adds every tool to the MCP server and returns the tool count
func Register(s *server.MCPServer, registered []Registered, logger *zap.Logger) int {
	total := 0
	for _, r := range registered {
		s.AddTools(r.Tools...)
		total += len(r.Tools)
		if m := metrics.Get(); m != nil {
			m.SetModuleEnabled(r.Name, true)
		}
		logger.Info("Module enabled", zap.String("module", r.Name), zap.Int("tools", len(r.Tools)))
	}
	return total
}
