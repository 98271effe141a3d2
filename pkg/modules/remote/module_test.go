package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common/commontest"
)

const cubePath = "/Game/Maps/Main.Main:PersistentLevel.Cube_1"

func newHandler(t *testing.T, engine *commontest.Engine) func(map[string]any) (map[string]any, bool) {
	t.Helper()
	m, err := New(&config.ModuleConfig{Enabled: true}, engine, zap.NewNop())
	require.NoError(t, err)
	handler := commontest.FindTool(t, m.GetTools(), "remote_control")
	return func(args map[string]any) (map[string]any, bool) {
		return commontest.CallTool(t, handler, args)
	}
}

func TestCallFunction(t *testing.T) {
	engine := commontest.New()
	engine.RemoteBody = []byte(`{"ReturnValue": {"X": 1, "Y": 2, "Z": 3}}`)
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{
		"action":     "call_function",
		"objectPath": cubePath,
		"function":   "K2_GetActorLocation",
	})
	require.False(t, isErr, out)
	assert.Equal(t, map[string]any{"X": float64(1), "Y": float64(2), "Z": float64(3)}, out["ReturnValue"])
	assert.Equal(t, "K2_GetActorLocation", out["function"])

	calls := engine.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "CallFunction", calls[0].Method)
	assert.Equal(t, cubePath, calls[0].ObjectPath)
	assert.Empty(t, calls[0].Params)
}

func TestSetPropertyDecodesJSONText(t *testing.T) {
	engine := commontest.New()
	engine.RemoteBody = nil
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{
		"action":     "set_property",
		"objectPath": cubePath,
		"property":   "RelativeScale3D",
		"value":      `{"X": 2, "Y": 2, "Z": 2}`,
	})
	require.False(t, isErr)

	_, isErr = call(map[string]any{
		"action":     "set_property",
		"objectPath": cubePath,
		"property":   "bHidden",
		"value":      true,
	})
	require.False(t, isErr)

	calls := engine.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, map[string]any{"X": float64(2), "Y": float64(2), "Z": float64(2)}, calls[0].Value)
	assert.Equal(t, true, calls[1].Value)
}

func TestRemoteErrorStatus(t *testing.T) {
	engine := commontest.New()
	engine.RemoteErr = &bridge.RemoteError{StatusCode: 404, Route: "/remote/object/property", Message: "Object not found"}
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "get_property", "objectPath": cubePath, "property": "Tags"})
	assert.True(t, isErr)
	assert.Equal(t, "Failed to read Tags", out["message"])
	assert.Equal(t, float64(404), out["status_code"])
	assert.Contains(t, out["error"], "Object not found")
}

func TestPresetsAndSearch(t *testing.T) {
	engine := commontest.New()
	engine.RemoteBody = []byte(`{"Presets": [{"Name": "Lights"}, {"Name": "Cameras"}]}`)
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "list_presets"})
	require.False(t, isErr)
	assert.Equal(t, float64(2), out["count"])

	_, isErr = call(map[string]any{"action": "get_preset", "preset": "Lights"})
	require.False(t, isErr)

	engine.RemoteBody = []byte(`{"Assets": [{"Name": "A"}, {"Name": "B"}, {"Name": "C"}]}`)
	out, isErr = call(map[string]any{
		"action":     "search_assets",
		"query":      "Rock",
		"classNames": []any{"/Script/Engine.StaticMesh"},
		"limit":      2,
	})
	require.False(t, isErr)
	assert.Equal(t, float64(2), out["count"])
	assert.Equal(t, true, out["truncated"])

	calls := engine.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, "Rock", last.Name)
	assert.Equal(t, []string{"/Game"}, last.Filter.PackagePaths)
	assert.True(t, last.Filter.Recursive)
	assert.Equal(t, []string{"/Script/Engine.StaticMesh"}, last.Filter.ClassNames)
}

func TestRemoteValidation(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	cases := []map[string]any{
		{"action": "call_function", "function": "Foo"},
		{"action": "call_function", "objectPath": "Game/NoSlash", "function": "Foo"},
		{"action": "call_function", "objectPath": "/Game/../Etc", "function": "Foo"},
		{"action": "call_function", "objectPath": cubePath, "function": "Foo Bar"},
		{"action": "call_function", "objectPath": cubePath, "function": "Foo", "parameters": []any{1}},
		{"action": "set_property", "objectPath": cubePath, "property": "bHidden"},
		{"action": "describe"},
		{"action": "get_preset"},
		{"action": "search_assets", "classNames": []any{"StaticMesh"}},
		{"action": "search_assets", "limit": 0},
	}
	for _, args := range cases {
		out, isErr := call(args)
		assert.True(t, isErr, args)
		assert.Equal(t, "Invalid arguments", out["message"], args)
	}
	assert.Zero(t, engine.Requests())
}
