package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common/commontest"
)

func newHandler(t *testing.T, engine *commontest.Engine) func(map[string]any) (map[string]any, bool) {
	t.Helper()
	m, err := New(&config.ModuleConfig{Enabled: true}, engine, zap.NewNop())
	require.NoError(t, err)
	handler := commontest.FindTool(t, m.GetTools(), "manage_project")
	return func(args map[string]any) (map[string]any, bool) {
		return commontest.CallTool(t, handler, args)
	}
}

func TestInfo(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = `RESULT:{"success": true, "project_name": "Demo", "engine_version": "5.4.4"}`
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "info"})
	require.False(t, isErr, out)
	assert.Equal(t, "Demo", out["project_name"])
	assert.Equal(t, "5.4.4", out["engine_version"])
}

func TestBuildLighting(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{"action": "build_lighting", "quality": "preview", "reflectionCaptures": false})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), "build_light_maps(unreal.LightingBuildQuality.QUALITY_PREVIEW, False)")

	_, isErr = call(map[string]any{"action": "build_lighting"})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), "build_light_maps(unreal.LightingBuildQuality.QUALITY_PRODUCTION, True)")
}

func TestBuildNavigationUsesConsole(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "build_navigation"})
	require.False(t, isErr)
	assert.Equal(t, "RebuildNavigation", out["command"])
	assert.Equal(t, []string{"RebuildNavigation"}, engine.Commands())
}

func TestCompileAndSave(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{"action": "compile_blueprint", "path": "Blueprints/BP_Door"})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), `path = "/Game/Blueprints/BP_Door"`)

	_, isErr = call(map[string]any{"action": "save_all", "includeMaps": false})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), "save_dirty_packages(False, True)")
}

func TestProjectValidation(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	cases := []map[string]any{
		{"action": "build_lighting", "quality": "ultra"},
		{"action": "compile_blueprint"},
		{"action": "compile_blueprint", "path": "/Game/../BP"},
		{"action": "save_all", "includeMaps": 3},
	}
	for _, args := range cases {
		out, isErr := call(args)
		assert.True(t, isErr, args)
		assert.Equal(t, "Invalid arguments", out["message"], args)
	}
	assert.Zero(t, engine.Requests())
}
