package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common/commontest"
)

func newHandler(t *testing.T, engine *commontest.Engine) func(map[string]any) (map[string]any, bool) {
	t.Helper()
	m, err := New(&config.ModuleConfig{Enabled: true}, engine, zap.NewNop())
	require.NoError(t, err)
	handler := commontest.FindTool(t, m.GetTools(), "manage_rendering")
	return func(args map[string]any) (map[string]any, bool) {
		return commontest.CallTool(t, handler, args)
	}
}

func TestConsoleBackedActions(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	for _, tc := range []struct {
		args map[string]any
		want string
	}{
		{map[string]any{"action": "set_cvar", "name": "r.ScreenPercentage", "value": 75}, "r.ScreenPercentage 75"},
		{map[string]any{"action": "set_scalability", "level": "Epic"}, "scalability 3"},
		{map[string]any{"action": "set_scalability", "level": "low", "group": "shadows"}, "sg.ShadowQuality 0"},
		{map[string]any{"action": "set_view_mode", "mode": "Wireframe"}, "viewmode wireframe"},
		{map[string]any{"action": "show_flag", "name": "Collision", "enabled": true}, "ShowFlag.Collision 1"},
		{map[string]any{"action": "stat", "name": "stat FPS"}, "stat fps"},
	} {
		out, isErr := call(tc.args)
		require.False(t, isErr, out)
		assert.Equal(t, tc.want, out["command"])
	}

	assert.Equal(t, []string{
		"r.ScreenPercentage 75",
		"scalability 3",
		"sg.ShadowQuality 0",
		"viewmode wireframe",
		"ShowFlag.Collision 1",
		"stat fps",
	}, engine.Commands())
	assert.Empty(t, engine.Scripts())
}

func TestConsoleFailure(t *testing.T) {
	engine := commontest.New()
	engine.ConsoleErr = bridge.ErrNotConnected
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "stat", "name": "unit"})
	assert.True(t, isErr)
	assert.Equal(t, "Failed to toggle stat", out["message"])
	assert.Equal(t, "stat unit", out["command"])
	assert.NotEmpty(t, out["warnings"])
}

func TestScriptBackedActions(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = `RESULT:{"success": true, "value": "100"}`
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "get_cvar", "name": "r.ScreenPercentage"})
	require.False(t, isErr)
	assert.Equal(t, "100", out["value"])
	assert.Contains(t, engine.LastScript(), `name = "r.ScreenPercentage"`)

	_, isErr = call(map[string]any{"action": "screenshot", "filename": "shot-01", "width": 1280, "height": 720})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), `take_high_res_screenshot(1280, 720, "shot-01.png")`)
}

func TestRenderingValidation(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	cases := []map[string]any{
		{"action": "set_cvar", "name": "r.ScreenPercentage"},
		{"action": "set_cvar", "name": "r.X", "value": "1; quit"},
		{"action": "set_cvar", "name": "bad name", "value": "1"},
		{"action": "get_cvar"},
		{"action": "set_scalability", "level": "ultra"},
		{"action": "set_scalability", "level": "high", "group": "audio"},
		{"action": "set_view_mode", "mode": "xray"},
		{"action": "show_flag", "name": "Collision"},
		{"action": "stat", "name": "fps | quit"},
		{"action": "screenshot", "filename": "../evil"},
		{"action": "screenshot", "width": 100000},
	}
	for _, args := range cases {
		out, isErr := call(args)
		assert.True(t, isErr, args)
		assert.Equal(t, "Invalid arguments", out["message"], args)
	}
	assert.Zero(t, engine.Requests())
}
