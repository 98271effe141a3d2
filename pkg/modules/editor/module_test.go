package editor

import (
	"errors"
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
	handler := commontest.FindTool(t, m.GetTools(), "control_editor")
	return func(args map[string]any) (map[string]any, bool) {
		return commontest.CallTool(t, handler, args)
	}
}

func TestStatusConnected(t *testing.T) {
	engine := commontest.New()
	engine.RemoteBody = []byte(`{"HttpRoutes": [{"Path": "/remote/info"}, {"Path": "/remote/object/call"}]}`)
	engine.PythonOutput = `RESULT:{"success": true, "engine_version": "5.4.4", "playing": false}`
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "status"})
	require.False(t, isErr, out)
	assert.Equal(t, true, out["connected"])
	assert.Equal(t, float64(2), out["routes"])
	assert.Equal(t, "5.4.4", out["engine_version"])
	assert.Equal(t, false, out["playing"])

	bridgeStatus, ok := out["bridge"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "http", bridgeStatus["transport"])
}

func TestStatusUnreachableIsNotAnError(t *testing.T) {
	engine := commontest.New()
	engine.RemoteErr = bridge.ErrNotConnected
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "status"})
	require.False(t, isErr, out)
	assert.Equal(t, false, out["connected"])
	assert.NotEmpty(t, out["warnings"])
	assert.Empty(t, engine.Scripts())
}

func TestPlayStopCamera(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	_, isErr := call(map[string]any{"action": "play"})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), "level_editor.editor_request_begin_play()")

	_, isErr = call(map[string]any{"action": "stop"})
	require.False(t, isErr)
	assert.Contains(t, engine.LastScript(), "level_editor.editor_request_end_play()")

	_, isErr = call(map[string]any{"action": "set_camera", "rotation": []any{-30, 45, 0}})
	require.False(t, isErr)
	script := engine.LastScript()
	assert.Contains(t, script, "rotation = unreal.Rotator(roll=0.0, pitch=-30.0, yaw=45.0)")
	assert.NotContains(t, script, "location = unreal.Vector")
}

func TestConsole(t *testing.T) {
	engine := commontest.New()
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "console", "command": "r.SetRes 1280x720w"})
	require.False(t, isErr)
	assert.Equal(t, "r.SetRes 1280x720w", out["command"])

	out, isErr = call(map[string]any{"action": "console", "command": "stat fps | QUIT"})
	assert.True(t, isErr)
	assert.Equal(t, "Command blocked", out["message"])
	assert.Equal(t, []string{"r.SetRes 1280x720w"}, engine.Commands())
}

func TestExecutePython(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = "hello from unreal"
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "execute_python", "script": "print('hello from unreal')"})
	require.False(t, isErr, out)
	assert.Equal(t, "hello from unreal", out["output"])
	assert.Equal(t, "print('hello from unreal')", engine.LastScript())
}

func TestExecutePythonDisabled(t *testing.T) {
	engine := commontest.New()
	engine.PythonErr = bridge.ErrPythonDisabled
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "execute_python", "script": "import os"})
	assert.True(t, isErr)
	assert.Equal(t, "Python execution failed", out["message"])
	assert.Contains(t, out["warnings"], "Set unreal.allowPython to true to run raw Python")
}

func TestExecutePythonTraceback(t *testing.T) {
	engine := commontest.New()
	engine.PythonFunc = func(string) (string, error) {
		return "Traceback (most recent call last):\nNameError: name 'x' is not defined", nil
	}
	call := newHandler(t, engine)

	out, isErr := call(map[string]any{"action": "execute_python", "script": "x"})
	assert.True(t, isErr)
	assert.NotEmpty(t, out["error"])
}

func TestEditorValidation(t *testing.T) {
	engine := commontest.New()
	engine.PythonErr = errors.New("should not be called")
	call := newHandler(t, engine)

	cases := []map[string]any{
		{"action": "set_camera"},
		{"action": "set_camera", "location": "up"},
		{"action": "open_level"},
		{"action": "open_level", "level": "/Game/../../Maps"},
		{"action": "console"},
		{"action": "execute_python"},
		{"action": "execute_python", "script": "   "},
	}
	for _, args := range cases {
		out, isErr := call(args)
		assert.True(t, isErr, args)
		assert.Equal(t, "Invalid arguments", out["message"], args)
	}
	assert.Zero(t, engine.Requests())
}
