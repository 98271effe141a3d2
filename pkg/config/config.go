package config

import (
	"fmt"
	"time"
)

// Module names used for configuration keys, CLI flags and metrics labels
const (
	ModuleAssets    = "assets"
	ModuleActors    = "actors"
	ModuleMaterials = "materials"
	ModuleSplines   = "splines"
	ModuleInput     = "input"
	ModuleCollision = "collision"
	ModuleRendering = "rendering"
	ModuleSelection = "selection"
	ModuleProject   = "project"
	ModuleEditor    = "editor"
	ModuleRemote    = "remote"
)

// ModuleNames lists every tool module in registration order
var ModuleNames = []string{
	ModuleAssets,
	ModuleActors,
	ModuleMaterials,
	ModuleSplines,
	ModuleInput,
	ModuleCollision,
	ModuleRendering,
	ModuleSelection,
	ModuleProject,
	ModuleEditor,
	ModuleRemote,
}

// Config represents the complete server configuration
type Config struct {
	Log     LogConfig     `mapstructure:"log" json:"log" yaml:"log"`
	Server  ServerConfig  `mapstructure:"server" json:"server" yaml:"server"`
	Unreal  UnrealConfig  `mapstructure:"unreal" json:"unreal" yaml:"unreal"`
	Queue   QueueConfig   `mapstructure:"queue" json:"queue" yaml:"queue"`
	Cache   CacheConfig   `mapstructure:"cache" json:"cache" yaml:"cache"`
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics" yaml:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing" json:"tracing" yaml:"tracing"`
	Modules ModulesConfig `mapstructure:"modules" json:"modules" yaml:"modules"`
}

// ToolsConfig contains tools configuration
type ToolsConfig struct {
	Prefix string `mapstructure:"prefix" json:"prefix" yaml:"prefix"`
	Suffix string `mapstructure:"suffix" json:"suffix" yaml:"suffix"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `mapstructure:"level" json:"level" yaml:"level"`
}

// ServerConfig contains server configuration
type ServerConfig struct {
	Host string     `mapstructure:"host" json:"host" yaml:"host"`
	Port int        `mapstructure:"port" json:"port" yaml:"port"`
	Mode string     `mapstructure:"mode" json:"mode" yaml:"mode"`
	URI  string     `mapstructure:"uri" json:"uri" yaml:"uri"`
	Auth AuthConfig `mapstructure:"auth" json:"auth" yaml:"auth"`
}

// AuthConfig contains authentication configuration for the HTTP transport
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Token   string `mapstructure:"token" json:"-" yaml:"token"`
}

// ReconnectConfig controls the bridge reconnect backoff
type ReconnectConfig struct {
	InitialInterval time.Duration `mapstructure:"initialInterval" json:"initialInterval" yaml:"initialInterval"`
	MaxInterval     time.Duration `mapstructure:"maxInterval" json:"maxInterval" yaml:"maxInterval"`
	MaxTries        uint          `mapstructure:"maxTries" json:"maxTries" yaml:"maxTries"`
}

// UnrealConfig contains the Remote Control connection settings
type UnrealConfig struct {
	Host           string          `mapstructure:"host" json:"host" yaml:"host"`
	HTTPPort       int             `mapstructure:"httpPort" json:"httpPort" yaml:"httpPort"`
	WSPort         int             `mapstructure:"wsPort" json:"wsPort" yaml:"wsPort"`
	Transport      string          `mapstructure:"transport" json:"transport" yaml:"transport"`
	RequestTimeout time.Duration   `mapstructure:"requestTimeout" json:"requestTimeout" yaml:"requestTimeout"`
	ConnectTimeout time.Duration   `mapstructure:"connectTimeout" json:"connectTimeout" yaml:"connectTimeout"`
	HealthInterval time.Duration   `mapstructure:"healthInterval" json:"healthInterval" yaml:"healthInterval"`
	Reconnect      ReconnectConfig `mapstructure:"reconnect" json:"reconnect" yaml:"reconnect"`
	AllowPython    bool            `mapstructure:"allowPython" json:"allowPython" yaml:"allowPython"`
}

// QueueConfig contains command pacing configuration
type QueueConfig struct {
	MinDelay     time.Duration `mapstructure:"minDelay" json:"minDelay" yaml:"minDelay"`
	StatDelay    time.Duration `mapstructure:"statDelay" json:"statDelay" yaml:"statDelay"`
	Burst        int           `mapstructure:"burst" json:"burst" yaml:"burst"`
	MaxRetries   uint          `mapstructure:"maxRetries" json:"maxRetries" yaml:"maxRetries"`
	RetryInitial time.Duration `mapstructure:"retryInitial" json:"retryInitial" yaml:"retryInitial"`
	RetryMax     time.Duration `mapstructure:"retryMax" json:"retryMax" yaml:"retryMax"`
	Capacity     int           `mapstructure:"capacity" json:"capacity" yaml:"capacity"`
}

// CacheConfig contains asset listing cache configuration
type CacheConfig struct {
	AssetTTL   time.Duration `mapstructure:"assetTTL" json:"assetTTL" yaml:"assetTTL"`
	MaxEntries int           `mapstructure:"maxEntries" json:"maxEntries" yaml:"maxEntries"`
}

// MetricsConfig contains Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" json:"path" yaml:"path"`
}

// TracingConfig contains OpenTelemetry configuration
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Endpoint    string  `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"`
	SampleRatio float64 `mapstructure:"sampleRatio" json:"sampleRatio" yaml:"sampleRatio"`
}

// ModuleConfig contains per-module configuration
type ModuleConfig struct {
	Enabled bool        `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Tools   ToolsConfig `mapstructure:"tools" json:"tools" yaml:"tools"`
}

// ModulesConfig contains configuration for every tool module
type ModulesConfig struct {
	Assets    ModuleConfig `mapstructure:"assets" json:"assets" yaml:"assets"`
	Actors    ModuleConfig `mapstructure:"actors" json:"actors" yaml:"actors"`
	Materials ModuleConfig `mapstructure:"materials" json:"materials" yaml:"materials"`
	Splines   ModuleConfig `mapstructure:"splines" json:"splines" yaml:"splines"`
	Input     ModuleConfig `mapstructure:"input" json:"input" yaml:"input"`
	Collision ModuleConfig `mapstructure:"collision" json:"collision" yaml:"collision"`
	Rendering ModuleConfig `mapstructure:"rendering" json:"rendering" yaml:"rendering"`
	Selection ModuleConfig `mapstructure:"selection" json:"selection" yaml:"selection"`
	Project   ModuleConfig `mapstructure:"project" json:"project" yaml:"project"`
	Editor    ModuleConfig `mapstructure:"editor" json:"editor" yaml:"editor"`
	Remote    ModuleConfig `mapstructure:"remote" json:"remote" yaml:"remote"`
}

// Get returns the configuration of the named module
func (m *ModulesConfig) Get(name string) (*ModuleConfig, bool) {
	switch name {
	case ModuleAssets:
		return &m.Assets, true
	case ModuleActors:
		return &m.Actors, true
	case ModuleMaterials:
		return &m.Materials, true
	case ModuleSplines:
		return &m.Splines, true
	case ModuleInput:
		return &m.Input, true
	case ModuleCollision:
		return &m.Collision, true
	case ModuleRendering:
		return &m.Rendering, true
	case ModuleSelection:
		return &m.Selection, true
	case ModuleProject:
		return &m.Project, true
	case ModuleEditor:
		return &m.Editor, true
	case ModuleRemote:
		return &m.Remote, true
	}
	return nil, false
}

// Default returns the configuration used when no file or flag overrides a value
func Default() Config {
	enabled := ModuleConfig{Enabled: true}
	return Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
			Mode: "stdio",
			URI:  "/mcp",
		},
		Unreal: UnrealConfig{
			Host:           "127.0.0.1",
			HTTPPort:       30010,
			WSPort:         30020,
			Transport:      "auto",
			RequestTimeout: 30 * time.Second,
			ConnectTimeout: 5 * time.Second,
			HealthInterval: 15 * time.Second,
			Reconnect: ReconnectConfig{
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     10 * time.Second,
				MaxTries:        5,
			},
			AllowPython: true,
		},
		Queue: QueueConfig{
			MinDelay:     100 * time.Millisecond,
			StatDelay:    300 * time.Millisecond,
			Burst:        1,
			MaxRetries:   3,
			RetryInitial: 250 * time.Millisecond,
			RetryMax:     2 * time.Second,
			Capacity:     256,
		},
		Cache: CacheConfig{
			AssetTTL:   10 * time.Second,
			MaxEntries: 256,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Tracing: TracingConfig{
			SampleRatio: 1,
		},
		Modules: ModulesConfig{
			Assets:    enabled,
			Actors:    enabled,
			Materials: enabled,
			Splines:   enabled,
			Input:     enabled,
			Collision: enabled,
			Rendering: enabled,
			Selection: enabled,
			Project:   enabled,
			Editor:    enabled,
			Remote:    enabled,
		},
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "stdio", "sse":
	default:
		return fmt.Errorf("invalid server mode %q: must be stdio or sse", c.Server.Mode)
	}
	if c.Server.Mode == "sse" && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.Auth.Enabled && c.Server.Auth.Token == "" {
		return fmt.Errorf("server.auth.token is required when auth is enabled")
	}

	switch c.Unreal.Transport {
	case "auto", "ws", "http":
	default:
		return fmt.Errorf("invalid unreal transport %q: must be auto, ws or http", c.Unreal.Transport)
	}
	if c.Unreal.Host == "" {
		return fmt.Errorf("unreal.host is required")
	}
	if c.Unreal.HTTPPort <= 0 || c.Unreal.HTTPPort > 65535 {
		return fmt.Errorf("invalid unreal httpPort %d", c.Unreal.HTTPPort)
	}
	if c.Unreal.Transport != "http" && (c.Unreal.WSPort <= 0 || c.Unreal.WSPort > 65535) {
		return fmt.Errorf("invalid unreal wsPort %d", c.Unreal.WSPort)
	}
	if c.Unreal.RequestTimeout <= 0 {
		return fmt.Errorf("unreal.requestTimeout must be positive")
	}

	if c.Queue.MinDelay < 0 || c.Queue.StatDelay < 0 {
		return fmt.Errorf("queue delays must not be negative")
	}
	if c.Queue.Capacity <= 0 {
		return fmt.Errorf("queue.capacity must be positive")
	}
	if c.Queue.MaxRetries == 0 {
		return fmt.Errorf("queue.maxRetries must be at least 1")
	}

	if c.Cache.AssetTTL < 0 {
		return fmt.Errorf("cache.assetTTL must not be negative")
	}
	if c.Tracing.Enabled && (c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1) {
		return fmt.Errorf("tracing.sampleRatio must be within [0, 1]")
	}
	return nil
}

// HTTPBaseURL returns the Remote Control HTTP endpoint
func (u UnrealConfig) HTTPBaseURL() string {
	return fmt.Sprintf("http://%s:%d", u.Host, u.HTTPPort)
}

// WebSocketURL returns the Remote Control WebSocket endpoint
func (u UnrealConfig) WebSocketURL() string {
	return fmt.Sprintf("ws://%s:%d", u.Host, u.WSPort)
}
