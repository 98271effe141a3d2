package modules

import (
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common/commontest"
)

func testDeps() Dependencies {
	return Dependencies{Engine: commontest.New(), Logger: zap.NewNop()}
}

func TestBuildAllModules(t *testing.T) {
	cfg := config.Default()
	registered, err := Build(&cfg.Modules, testDeps())
	require.NoError(t, err)
	require.Len(t, registered, len(config.ModuleNames))

	seen := map[string]bool{}
	for i, r := range registered {
		assert.Equal(t, config.ModuleNames[i], r.Name)
		require.Len(t, r.Tools, 1, r.Name)
		name := r.Tools[0].Tool.Name
		assert.False(t, seen[name], "duplicate tool %s", name)
		seen[name] = true
	}
	for _, want := range []string{
		"manage_asset", "control_actor", "manage_material", "manage_spline", "manage_input",
		"manage_collision", "manage_rendering", "manage_selection", "manage_project",
		"control_editor", "remote_control",
	} {
		assert.True(t, seen[want], want)
	}
}

func TestBuildHonorsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Modules.Remote.Enabled = false
	cfg.Modules.Editor.Tools = config.ToolsConfig{Prefix: "ue_", Suffix: "_v2"}

	registered, err := Build(&cfg.Modules, testDeps())
	require.NoError(t, err)
	require.Len(t, registered, len(config.ModuleNames)-1)

	var names []string
	for _, r := range registered {
		assert.NotEqual(t, config.ModuleRemote, r.Name)
		names = append(names, r.Tools[0].Tool.Name)
	}
	assert.Contains(t, names, "ue_control_editor_v2")
	assert.NotContains(t, names, "remote_control")
}

func TestWrappedHandlersStillDispatch(t *testing.T) {
	cfg := config.Default()
	engine := commontest.New()
	registered, err := Build(&cfg.Modules, Dependencies{Engine: engine, Logger: zap.NewNop()})
	require.NoError(t, err)

	var handler server.ToolHandlerFunc
	for _, r := range registered {
		if r.Name == config.ModuleSelection {
			handler = r.Tools[0].Handler
		}
	}
	require.NotNil(t, handler)

	out, isErr := commontest.CallTool(t, handler, map[string]any{"action": "clear"})
	require.False(t, isErr, out)
	assert.Len(t, engine.Scripts(), 1)
}

func TestRegister(t *testing.T) {
	cfg := config.Default()
	registered, err := Build(&cfg.Modules, testDeps())
	require.NoError(t, err)

	s := server.NewMCPServer("test", "0.0.0")
	assert.Equal(t, len(config.ModuleNames), Register(s, registered, zap.NewNop()))
}
