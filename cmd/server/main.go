package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/shaowenchen/unreal-mcp-server/cmd/version"
	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/cache"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/docs"
	"github.com/shaowenchen/unreal-mcp-server/pkg/metrics"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules"
	"github.com/shaowenchen/unreal-mcp-server/pkg/queue"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
	httpserver "github.com/shaowenchen/unreal-mcp-server/pkg/server"
	"github.com/shaowenchen/unreal-mcp-server/pkg/tracing"
)

const serviceName = "unreal-mcp-server"

const shutdownTimeout = 10 * time.Second

var (
	cfgFile string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "MCP server exposing Unreal Engine editor operations as tools",
	Long: `An MCP server that drives a running Unreal Engine editor through the Remote Control API.
Tools cover assets, actors, materials, splines, input, collision, rendering, selection,
project builds, editor control and raw Remote Control calls.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is configs/config.yaml)")
	flags.String("log-level", defaults.Log.Level, "Log level (debug, info, warn, error)")
	flags.String("host", defaults.Server.Host, "Server host")
	flags.Int("port", defaults.Server.Port, "Server port")
	flags.String("mode", defaults.Server.Mode, "Server mode: stdio or sse")
	flags.String("unreal-host", defaults.Unreal.Host, "Unreal editor host")
	flags.Int("unreal-http-port", defaults.Unreal.HTTPPort, "Remote Control HTTP port")
	flags.Int("unreal-ws-port", defaults.Unreal.WSPort, "Remote Control WebSocket port")
	flags.String("transport", defaults.Unreal.Transport, "Editor transport: auto, ws or http")
	flags.Bool("allow-python", defaults.Unreal.AllowPython, "Allow the execute_python action")

	// Module flags
	for _, name := range config.ModuleNames {
		module, _ := defaults.Modules.Get(name)
		flags.Bool("enable-"+name, module.Enabled, fmt.Sprintf("Enable %s module", name))
	}

	if err := bindFlags(rootCmd); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(version.Command())
}

// bindFlags maps the persistent flags onto their config keys
func bindFlags(cmd *cobra.Command) error {
	flags := cmd.PersistentFlags()
	bind := map[string]string{
		"log.level":          "log-level",
		"server.host":        "host",
		"server.port":        "port",
		"server.mode":        "mode",
		"unreal.host":        "unreal-host",
		"unreal.httpPort":    "unreal-http-port",
		"unreal.wsPort":      "unreal-ws-port",
		"unreal.transport":   "transport",
		"unreal.allowPython": "allow-python",
	}
	for _, name := range config.ModuleNames {
		bind["modules."+name+".enabled"] = "enable-" + name
	}

	for key, flag := range bind {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	configureEnv()

	readErr := viper.ReadInConfig()

	var err error
	logger, err = newLogger(viper.GetString("log.level"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	var notFound viper.ConfigFileNotFoundError
	switch {
	case readErr == nil:
		logger.Info("Loaded config file", zap.String("file", viper.ConfigFileUsed()))
	case errors.As(readErr, &notFound):
		logger.Debug("No config file found, using defaults")
	default:
		logger.Warn("Could not read config file", zap.Error(readErr))
	}
}

// configureEnv lets UNREAL_MCP_<SECTION>_<KEY> override any config key.
// Registering every default makes the keys known to viper, which AutomaticEnv
// needs before Unmarshal will consult the environment.
func configureEnv() {
	viper.SetEnvPrefix("UNREAL_MCP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults("", reflect.ValueOf(config.Default()))
}

func setDefaults(prefix string, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("mapstructure")
		if key == "" || key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		field := v.Field(i)
		if field.Kind() == reflect.Struct {
			setDefaults(key, field)
			continue
		}
		viper.SetDefault(key, field.Interface())
	}
}

// newLogger writes to stderr so stdout stays free for the stdio transport
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zcfg zap.Config
	if lvl == zapcore.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting Unreal MCP Server",
		zap.String("version", version.BuildVersion),
		zap.String("mode", cfg.Server.Mode),
		zap.String("unreal", cfg.Unreal.HTTPBaseURL()),
		zap.String("transport", cfg.Unreal.Transport),
		zap.Bool("allow_python", cfg.Unreal.AllowPython),
	)

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, serviceName, version.BuildVersion)
	if err != nil {
		logger.Warn("Tracing disabled", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	if cfg.Metrics.Enabled {
		metrics.Init(logger)
		metrics.SetBuildInfo(version.BuildVersion, version.GitCommitID, version.BuildDate)
		metrics.StartSystemMetricsCollector(ctx, logger)
	}

	q := queue.New(queue.Config{
		MinDelay:     cfg.Queue.MinDelay,
		StatDelay:    cfg.Queue.StatDelay,
		Burst:        cfg.Queue.Burst,
		MaxRetries:   cfg.Queue.MaxRetries,
		RetryInitial: cfg.Queue.RetryInitial,
		RetryMax:     cfg.Queue.RetryMax,
		Capacity:     cfg.Queue.Capacity,
		Retryable:    bridge.IsRetryable,
	}, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q.Run(gctx)
		return nil
	})

	b := bridge.New(cfg.Unreal, q, logger)
	if err := b.Start(gctx); err != nil {
		stop()
		q.Close()
		_ = g.Wait()
		return fmt.Errorf("failed to start bridge: %w", err)
	}

	listings := cache.New[result.Envelope](cfg.Cache.MaxEntries, cfg.Cache.AssetTTL)
	registered, err := modules.Build(&cfg.Modules, modules.Dependencies{
		Engine:   b,
		Listings: listings,
		Logger:   logger,
	})
	if err != nil {
		stop()
		_ = b.Close()
		q.Close()
		_ = g.Wait()
		return err
	}

	mcpServer := newMCPServer()
	toolCount := modules.Register(mcpServer, registered, logger)
	if toolCount == 0 {
		logger.Warn("No modules enabled, server will have no tools available")
	} else {
		logger.Info("Server initialized", zap.Int("total_tools", toolCount))
	}

	switch cfg.Server.Mode {
	case "stdio":
		g.Go(func() error {
			defer stop()
			return serveStdio(gctx, mcpServer)
		})
	case "sse":
		handler := httpserver.NewMux(cfg, httpserver.Handlers{
			MCP:     server.NewStreamableHTTPServer(mcpServer, server.WithEndpointPath(cfg.Server.URI)),
			Docs:    http.HandlerFunc(docs.NewHandler(registered, logger).HandleDocs),
			Health:  httpserver.NewHealthHandler(b, toolCount, logger),
			Metrics: metrics.Handler(),
		}, logger)
		g.Go(func() error {
			defer stop()
			return serveHTTP(gctx, httpserver.NewHTTPServer(cfg, handler), cfg)
		})
	}

	err = g.Wait()
	if cerr := b.Close(); cerr != nil {
		logger.Warn("Failed to close bridge", zap.Error(cerr))
	}
	q.Close()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

func newMCPServer() *server.MCPServer {
	hooks := &server.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, session server.ClientSession) {
		metrics.RecordSessionStart()
		logger.Debug("Session registered", zap.String("session", session.SessionID()))
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		metrics.RecordSessionEnd()
		logger.Debug("Session unregistered", zap.String("session", session.SessionID()))
	})

	return server.NewMCPServer(serviceName, version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithHooks(hooks),
	)
}

func serveStdio(ctx context.Context, mcpServer *server.MCPServer) error {
	logger.Info("Starting server in stdio mode")
	stdio := server.NewStdioServer(mcpServer)
	stdio.SetErrorLogger(zap.NewStdLog(logger.Named("stdio")))
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server failed: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, srv *http.Server, cfg *config.Config) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server in SSE mode",
			zap.String("address", srv.Addr),
			zap.String("endpoint", httpserver.URL(cfg.Server)),
			zap.Bool("auth", cfg.Server.Auth.Enabled))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server failed: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return <-errCh
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
