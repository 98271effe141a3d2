package actors

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
	handler := commontest.FindTool(t, m.GetTools(), "control_actor")
	return func(args map[string]any) (map[string]any, bool) {
		return commontest.CallTool(t, handler, args)
	}
}

func TestSpawnBuildsScript(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = `RESULT:{"success": true, "name": "StaticMeshActor_0", "label": "Rock"}`
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{
		"action":   "spawn",
		"mesh":     "/Engine/BasicShapes/Cube",
		"label":    "Rock",
		"location": map[string]any{"x": 100, "y": 0, "z": 50},
		"rotation": []any{0, 90, 0},
	})
	require.False(t, isErr, out)
	assert.Equal(t, "Spawned actor", out["message"])
	assert.Equal(t, "spawn", out["action"])

	script := engine.LastScript()
	assert.Contains(t, script, `class_name = "StaticMeshActor"`)
	assert.Contains(t, script, `mesh_path = "/Engine/BasicShapes/Cube"`)
	assert.Contains(t, script, `unreal.Vector(100.0, 0.0, 50.0), unreal.Rotator(roll=0.0, pitch=0.0, yaw=90.0)`)
	assert.Contains(t, script, `actor.set_actor_scale3d(unreal.Vector(1.0, 1.0, 1.0))`)
	assert.Contains(t, script, `actor.set_actor_label("Rock")`)
}

func TestSpawnBlueprintPath(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{"action": "spawn", "class": "/Game/Blueprints/BP_Door"})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), `class_name = "/Game/Blueprints/BP_Door"`)
	assert.NotContains(t, engine.LastScript(), "set_actor_label")
}

func TestSetTransformOnlyTouchesGivenParts(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{"action": "set_transform", "name": "Cube", "rotation": map[string]any{"yaw": 45}})
	require.False(t, isErr)

	script := engine.LastScript()
	assert.Contains(t, script, `actor.set_actor_rotation(unreal.Rotator(roll=0.0, pitch=0.0, yaw=45.0), False)`)
	assert.NotContains(t, script, "set_actor_location(")
	assert.NotContains(t, script, "set_actor_scale3d(unreal")
}

func TestAttachUsesRule(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{"action": "attach", "name": "Lamp", "parent": "Table", "keepWorldTransform": false})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), "rule = unreal.AttachmentRule.KEEP_RELATIVE")
}

func TestEngineFailurePropagates(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = `RESULT:{"success": false, "error": "Actor not found: Ghost"}`
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "get_transform", "name": "Ghost"})
	assert.True(t, isErr)
	assert.Equal(t, "Actor not found: Ghost", out["error"])
	assert.Equal(t, "Failed to read actor transform", out["message"])
}

func TestActorValidation(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	cases := []map[string]any{
		{"action": "spawn"},
		{"action": "spawn", "class": "Bad Class!"},
		{"action": "spawn", "class": "PointLight", "location": "here"},
		{"action": "delete"},
		{"action": "find"},
		{"action": "list", "limit": -1},
		{"action": "set_transform", "name": "Cube"},
		{"action": "set_visibility", "name": "Cube"},
		{"action": "attach", "name": "Cube", "parent": "Cube"},
		{"action": "add_tag", "name": "Cube"},
		{"action": "get_transform", "name": "bad\nname"},
	}
	for _, args := range cases {
		out, isErr := call(args)
		assert.True(t, isErr, args)
		assert.Equal(t, "Invalid arguments", out["message"], args)
	}
	assert.Zero(t, engine.Requests())
}

func TestListAndFind(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{"action": "list", "classFilter": "PointLight", "limit": 5})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), `class_filter = "PointLight".lower()`)
	assert.Contains(t, engine.LastScript(), `actors[:5]`)

	_, isErr = call(map[string]any{"action": "find", "tag": "Enemy"})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), `tag = "Enemy"`)

	_, isErr = call(map[string]any{"action": "delete", "names": []any{"A", "B"}})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), `for name in ["A", "B"]:`)
}
