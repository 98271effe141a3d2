package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 30010, cfg.Unreal.HTTPPort)
	assert.Equal(t, 30020, cfg.Unreal.WSPort)
	assert.Equal(t, "http://127.0.0.1:30010", cfg.Unreal.HTTPBaseURL())
	assert.Equal(t, "ws://127.0.0.1:30020", cfg.Unreal.WebSocketURL())

	for _, name := range ModuleNames {
		m, ok := cfg.Modules.Get(name)
		require.True(t, ok, name)
		assert.True(t, m.Enabled, name)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"mode", func(c *Config) { c.Server.Mode = "grpc" }, "invalid server mode"},
		{"transport", func(c *Config) { c.Unreal.Transport = "tcp" }, "invalid unreal transport"},
		{"http port", func(c *Config) { c.Unreal.HTTPPort = 0 }, "httpPort"},
		{"capacity", func(c *Config) { c.Queue.Capacity = 0 }, "capacity"},
		{"retries", func(c *Config) { c.Queue.MaxRetries = 0 }, "maxRetries"},
		{"auth token", func(c *Config) { c.Server.Auth.Enabled = true }, "token"},
		{"negative delay", func(c *Config) { c.Queue.StatDelay = -time.Second }, "delays"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWSPortIgnoredForHTTPTransport(t *testing.T) {
	cfg := Default()
	cfg.Unreal.Transport = "http"
	cfg.Unreal.WSPort = 0
	assert.NoError(t, cfg.Validate())
}

func TestViperOverlayKeepsDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	yaml := `
unreal:
  host: 10.0.0.5
  requestTimeout: 5s
queue:
  minDelay: 250ms
modules:
  splines:
    enabled: false
    tools:
      prefix: ue_
`
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))

	cfg := Default()
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "10.0.0.5", cfg.Unreal.Host)
	assert.Equal(t, 30010, cfg.Unreal.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.Unreal.RequestTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Queue.MinDelay)
	assert.Equal(t, 300*time.Millisecond, cfg.Queue.StatDelay)
	assert.False(t, cfg.Modules.Splines.Enabled)
	assert.Equal(t, "ue_", cfg.Modules.Splines.Tools.Prefix)
	assert.True(t, cfg.Modules.Assets.Enabled)
}
