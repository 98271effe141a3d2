package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/cache"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
	"github.com/shaowenchen/unreal-mcp-server/pkg/python"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

const defaultListLimit = 200

// Module represents the assets module
type Module struct {
	config *config.ModuleConfig
	logger *zap.Logger
	engine common.Engine
	cache  *common.Listings
}

// New creates a new assets module. listings may be nil to disable caching.
func New(cfg *config.ModuleConfig, engine common.Engine, listings *common.Listings, logger *zap.Logger) (*Module, error) {
	if cfg == nil {
		return nil, fmt.Errorf("assets config is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if listings == nil {
		listings = cache.New[result.Envelope](0, 0)
	}

	m := &Module{
		config: cfg,
		logger: logger.Named("assets"),
		engine: engine,
		cache:  listings,
	}
	m.logger.Info("Assets module created")
	return m, nil
}

// GetTools returns all MCP tools for the assets module
func (m *Module) GetTools() []server.ServerTool {
	return m.BuildTools(GetDefaultToolsConfig())
}

// BuildToolName builds tool name based on configuration
func (m *Module) BuildToolName(baseName string) string {
	return common.BuildToolName(m.config.Tools, baseName)
}

// BuildTools builds tool list based on configuration
func (m *Module) BuildTools(toolsConfig AssetsToolsConfig) []server.ServerTool {
	var tools []server.ServerTool

	if toolsConfig.ManageAsset.Enabled {
		tools = append(tools, server.ServerTool{
			Tool:    m.buildManageAssetToolDefinition(toolsConfig.ManageAsset),
			Handler: common.Handler(m.logger, toolsConfig.ManageAsset.Name, m.actions()),
		})
	}

	return tools
}

func (m *Module) actions() common.Actions {
	return common.Actions{
		"list":          m.list,
		"exists":        m.exists,
		"metadata":      m.metadata,
		"create_folder": m.createFolder,
		"import":        m.importAsset,
		"duplicate":     m.duplicate,
		"rename":        m.rename,
		"delete":        m.delete,
		"save":          m.save,
	}
}

// loadFailure carries a failed listing through the cache without storing it
type loadFailure struct {
	env result.Envelope
}

func (f *loadFailure) Error() string { return f.env.Error }

func (m *Module) list(ctx context.Context, args common.Args) result.Envelope {
	folder, err := common.ValidateAssetPath(args.StringOr("path", "/Game"))
	if err != nil {
		return common.Invalid(err)
	}
	recursive, err := args.BoolOr("recursive", true)
	if err != nil {
		return common.Invalid(err)
	}
	limit, err := args.IntOr("limit", defaultListLimit)
	if err != nil {
		return common.Invalid(err)
	}
	if limit <= 0 {
		return common.Invalid(fmt.Errorf("invalid limit: must be positive"))
	}
	classFilter := args.StringOr("classFilter", "")

	opts := result.Options{SuccessMessage: "Listed assets in " + folder, FailureMessage: "Failed to list assets"}
	env, hit, err := m.cache.GetOrLoad(ctx, common.ListingKey(folder, recursive, classFilter), func(ctx context.Context) (result.Envelope, error) {
		env := common.RunScript(ctx, m.engine, listScript, map[string]any{
			"Path":        folder,
			"Recursive":   recursive,
			"ClassFilter": classFilter,
		}, opts)
		if !env.Success {
			return env, &loadFailure{env: env}
		}
		return env, nil
	})
	if err != nil {
		var failed *loadFailure
		if errors.As(err, &failed) {
			return failed.env
		}
		return common.EngineError(opts, err)
	}

	assets, _ := env.Payload["assets"].([]any)
	truncated := len(assets) > limit
	if truncated {
		assets = assets[:limit]
	}
	return env.
		With("path", folder).
		With("assets", assets).
		With("count", len(assets)).
		With("truncated", truncated).
		With("cached", hit)
}

func (m *Module) exists(ctx context.Context, args common.Args) result.Envelope {
	p, err := assetPathArg(args, "path")
	if err != nil {
		return common.Invalid(err)
	}
	return common.RunScript(ctx, m.engine, existsScript, map[string]any{"Path": p},
		result.Options{SuccessMessage: "Checked asset", FailureMessage: "Failed to check asset"})
}

func (m *Module) metadata(ctx context.Context, args common.Args) result.Envelope {
	p, err := assetPathArg(args, "path")
	if err != nil {
		return common.Invalid(err)
	}
	return common.RunScript(ctx, m.engine, metadataScript, map[string]any{"Path": p},
		result.Options{SuccessMessage: "Loaded asset metadata", FailureMessage: "Failed to load asset metadata"})
}

func (m *Module) createFolder(ctx context.Context, args common.Args) result.Envelope {
	p, err := assetPathArg(args, "path")
	if err != nil {
		return common.Invalid(err)
	}
	env := common.RunScript(ctx, m.engine, createFolderScript, map[string]any{"Path": p},
		result.Options{SuccessMessage: "Created folder " + p, FailureMessage: "Failed to create folder"})
	m.invalidate(env, p)
	return env
}

func (m *Module) importAsset(ctx context.Context, args common.Args) result.Envelope {
	source, err := args.RequireString("source")
	if err != nil {
		return common.Invalid(err)
	}
	if err := common.ValidateLabel(source); err != nil {
		return common.Invalid(fmt.Errorf("invalid source: %w", err))
	}
	destination, err := common.ValidateAssetPath(args.StringOr("destination", "/Game"))
	if err != nil {
		return common.Invalid(err)
	}
	name := args.StringOr("name", "")
	if name != "" {
		if err := common.ValidateName(name); err != nil {
			return common.Invalid(err)
		}
	}
	replace, err := args.BoolOr("replaceExisting", false)
	if err != nil {
		return common.Invalid(err)
	}
	save, err := args.BoolOr("save", true)
	if err != nil {
		return common.Invalid(err)
	}

	env := common.RunScript(ctx, m.engine, importScript, map[string]any{
		"Source":      source,
		"Destination": destination,
		"Name":        name,
		"Replace":     replace,
		"Save":        save,
	}, result.Options{SuccessMessage: "Imported " + fileName(source), FailureMessage: "Failed to import asset"})
	m.invalidate(env, destination)
	return env
}

func (m *Module) duplicate(ctx context.Context, args common.Args) result.Envelope {
	return m.move(ctx, args, duplicateScript, "Duplicated asset", "Failed to duplicate asset")
}

func (m *Module) rename(ctx context.Context, args common.Args) result.Envelope {
	return m.move(ctx, args, renameScript, "Renamed asset", "Failed to rename asset")
}

func (m *Module) move(ctx context.Context, args common.Args, script *python.Script, okMsg, failMsg string) result.Envelope {
	source, err := assetPathArg(args, "source")
	if err != nil {
		return common.Invalid(err)
	}
	destination, err := assetPathArg(args, "destination")
	if err != nil {
		return common.Invalid(err)
	}
	if _, name := common.SplitAssetPath(destination); name != "" {
		if err := common.ValidateName(name); err != nil {
			return common.Invalid(err)
		}
	}
	if source == destination {
		return common.Invalid(fmt.Errorf("source and destination are the same"))
	}

	env := common.RunScript(ctx, m.engine, script, map[string]any{"Source": source, "Destination": destination},
		result.Options{SuccessMessage: okMsg, FailureMessage: failMsg})
	m.invalidate(env, source, destination)
	return env
}

func (m *Module) delete(ctx context.Context, args common.Args) result.Envelope {
	paths, err := assetPathsArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	env := common.RunScript(ctx, m.engine, deleteScript, map[string]any{"Paths": paths},
		result.Options{SuccessMessage: "Deleted assets", FailureMessage: "Failed to delete assets"})
	m.invalidate(env, paths...)
	return env
}

func (m *Module) save(ctx context.Context, args common.Args) result.Envelope {
	paths, err := assetPathsArg(args)
	if err != nil {
		return common.Invalid(err)
	}
	return common.RunScript(ctx, m.engine, saveScript, map[string]any{"Paths": paths},
		result.Options{SuccessMessage: "Saved assets", FailureMessage: "Failed to save assets"})
}

// invalidate drops listings affected by a mutation. Listings are dropped
// even after a failure since partial changes are possible.
func (m *Module) invalidate(env result.Envelope, paths ...string) {
	if dropped := common.InvalidateListings(m.cache, paths...); dropped > 0 {
		m.logger.Debug("Invalidated asset listings",
			zap.Strings("paths", paths),
			zap.Int("entries", dropped),
			zap.Bool("success", env.Success))
	}
}

func assetPathArg(args common.Args, key string) (string, error) {
	raw, err := args.RequireString(key)
	if err != nil {
		return "", err
	}
	return common.ValidateAssetPath(raw)
}

func assetPathsArg(args common.Args) ([]string, error) {
	raw, err := args.StringSlice("paths")
	if err != nil {
		return nil, err
	}
	if single, ok := args.String("path"); ok {
		raw = append(raw, single)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("path or paths is required")
	}
	paths := make([]string, 0, len(raw))
	for _, r := range raw {
		p, err := common.ValidateAssetPath(r)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func fileName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}
