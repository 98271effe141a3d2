package collision

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
	handler := commontest.FindTool(t, m.GetTools(), "manage_collision")
	return func(args map[string]any) (map[string]any, bool) {
		return commontest.CallTool(t, handler, args)
	}
}

func TestGetReportsAllChannels(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = `RESULT:{"success": true, "profile": "BlockAll", "simulate_physics": false}`
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "get", "actor": "Crate"})
	require.False(t, isErr, out)
	assert.Equal(t, "BlockAll", out["profile"])

	script := engine.LastScript()
	assert.Contains(t, script, `_find_actor("Crate")`)
	assert.Contains(t, script, `component_name = ""`)
	assert.Contains(t, script, `"ECC_WORLD_STATIC"`)
	assert.Contains(t, script, `"ECC_PAWN"`)
}

func TestSetters(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{"action": "set_profile", "actor": "Crate", "profile": "OverlapAllDynamic"})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), `component.set_collision_profile_name("OverlapAllDynamic")`)

	_, isErr = call(map[string]any{"action": "set_enabled", "actor": "Crate", "mode": "query"})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), `component.set_collision_enabled(unreal.CollisionEnabled.QUERY_ONLY)`)

	_, isErr = call(map[string]any{"action": "set_response", "actor": "Crate", "component": "Mesh", "channel": "pawn", "response": "overlap"})
	require.False(t, isErr)
	script := engine.LastScript()
	assert.Contains(t, script, `component.set_collision_response_to_channel(unreal.CollisionChannel.ECC_PAWN, unreal.CollisionResponseType.ECR_OVERLAP)`)
	assert.Contains(t, script, `component_name = "Mesh"`)
}

func TestSimulatePhysics(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "set_simulate_physics", "actor": "Crate", "enabled": true})
	require.False(t, isErr)
	assert.Equal(t, "Enabled physics simulation", out["message"])
	assert.Contains(t, engine.LastScript(), "component.set_mobility(unreal.ComponentMobility.MOVABLE)")
	assert.Contains(t, engine.LastScript(), "component.set_simulate_physics(True)")

	_, isErr = call(map[string]any{"action": "set_simulate_physics", "actor": "Crate", "enabled": "false"})
	require.False(t, isErr)
	assert.NotContains(t, engine.LastScript(), "set_mobility")
	assert.Contains(t, engine.LastScript(), "component.set_simulate_physics(False)")
}

func TestCollisionValidation(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	cases := []map[string]any{
		{"action": "get"},
		{"action": "get", "actor": "Crate", "component": "Bad Name"},
		{"action": "set_profile", "actor": "Crate"},
		{"action": "set_enabled", "actor": "Crate", "mode": "sometimes"},
		{"action": "set_response", "actor": "Crate", "channel": "pawn"},
		{"action": "set_response", "actor": "Crate", "channel": "ghosts", "response": "block"},
		{"action": "set_simulate_physics", "actor": "Crate"},
	}
	for _, args := range cases {
		out, isErr := call(args)
		assert.True(t, isErr, args)
		assert.Equal(t, "Invalid arguments", out["message"], args)
	}
	assert.Zero(t, engine.Requests())
}
