package assets

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/cache"
	"github.com/shaowenchen/unreal-mcp-server/pkg/config"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common/commontest"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

func newModule(t *testing.T, engine *commontest.Engine) *Module {
	t.Helper()
	m, err := New(&config.ModuleConfig{Enabled: true}, engine, cache.New[result.Envelope](16, time.Minute), zap.NewNop())
	require.NoError(t, err)
	return m
}

const listing = `RESULT:{"success": true, "assets": [` +
	`{"path": "/Game/Props/A", "name": "A", "class": "StaticMesh"},` +
	`{"path": "/Game/Props/B", "name": "B", "class": "StaticMesh"},` +
	`{"path": "/Game/Props/C", "name": "C", "class": "StaticMesh"}], "total": 3}`

func TestNewRequiresConfigAndEngine(t *testing.T) {
	_, err := New(nil, commontest.New(), nil, zap.NewNop())
	assert.Error(t, err)
	_, err = New(&config.ModuleConfig{}, nil, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestToolNaming(t *testing.T) {
	m, err := New(&config.ModuleConfig{Tools: config.ToolsConfig{Prefix: "ue_"}}, commontest.New(), nil, zap.NewNop())
	require.NoError(t, err)
	tools := m.GetTools()
	require.Len(t, tools, 1)
	assert.Equal(t, "ue_manage_asset", tools[0].Tool.Name)
}

func TestListIsCachedAndLimited(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = listing
	handler := commontest.FindTool(t, newModule(t, engine).GetTools(), "manage_asset")

	out, isErr := commontest.CallTool(t, handler, map[string]any{"action": "list", "path": "/Game/Props", "limit": 2})
	require.False(t, isErr, out)
	assert.Equal(t, true, out["success"])
	assert.Len(t, out["assets"], 2)
	assert.Equal(t, true, out["truncated"])
	assert.Equal(t, false, out["cached"])
	assert.EqualValues(t, 3, out["total"])
	assert.Contains(t, engine.LastScript(), `path = "/Game/Props"`)
	assert.Contains(t, engine.LastScript(), `recursive=True`)

	out, _ = commontest.CallTool(t, handler, map[string]any{"action": "list", "path": "/Game/Props", "limit": 10})
	assert.Equal(t, true, out["cached"])
	assert.Len(t, out["assets"], 3)
	assert.Len(t, engine.Scripts(), 1)

	// a different class filter is a different listing
	_, _ = commontest.CallTool(t, handler, map[string]any{"action": "list", "path": "/Game/Props", "classFilter": "Material"})
	assert.Len(t, engine.Scripts(), 2)
}

func TestListFailureIsNotCached(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = `RESULT:{"success": false, "error": "Directory not found: /Game/Nope"}`
	handler := commontest.FindTool(t, newModule(t, engine).GetTools(), "manage_asset")

	out, isErr := commontest.CallTool(t, handler, map[string]any{"action": "list", "path": "/Game/Nope"})
	assert.True(t, isErr)
	assert.Equal(t, "Directory not found: /Game/Nope", out["error"])

	_, _ = commontest.CallTool(t, handler, map[string]any{"action": "list", "path": "/Game/Nope"})
	assert.Len(t, engine.Scripts(), 2)
}

func TestMutationsInvalidateListings(t *testing.T) {
	engine := commontest.New()
	engine.PythonOutput = listing
	handler := commontest.FindTool(t, newModule(t, engine).GetTools(), "manage_asset")

	list := func(p string) {
		_, isErr := commontest.CallTool(t, handler, map[string]any{"action": "list", "path": p})
		require.False(t, isErr)
	}
	list("/Game")
	list("/Game/Props")
	list("/Game/Maps")
	require.Len(t, engine.Scripts(), 3)

	_, isErr := commontest.CallTool(t, handler, map[string]any{"action": "delete", "path": "/Game/Props/A"})
	require.False(t, isErr)

	// /Game and /Game/Props are reloaded, /Game/Maps is still cached
	list("/Game")
	list("/Game/Props")
	list("/Game/Maps")
	assert.Len(t, engine.Scripts(), 6)
}

func TestValidationHappensBeforeEngine(t *testing.T) {
	engine := commontest.New()
	handler := commontest.FindTool(t, newModule(t, engine).GetTools(), "manage_asset")

	cases := []map[string]any{
		{"action": "exists"},
		{"action": "metadata", "path": "/Game/../x"},
		{"action": "duplicate", "source": "/Game/A", "destination": "/Game/A"},
		{"action": "rename", "source": "/Game/A", "destination": "/Game/Bad Name"},
		{"action": "delete"},
		{"action": "import", "destination": "/Game"},
		{"action": "import", "source": "C:/x.fbx", "name": "bad/name"},
		{"action": "list", "limit": 0},
		{"action": "list", "recursive": "maybe"},
	}
	for _, args := range cases {
		out, isErr := commontest.CallTool(t, handler, args)
		assert.True(t, isErr, args)
		assert.Equal(t, "Invalid arguments", out["message"], args)
	}
	assert.Zero(t, engine.Requests())
}

func TestUnknownAction(t *testing.T) {
	handler := commontest.FindTool(t, newModule(t, commontest.New()).GetTools(), "manage_asset")
	out, isErr := commontest.CallTool(t, handler, map[string]any{"action": "explode"})
	assert.True(t, isErr)
	assert.Contains(t, out["supported_actions"], "rename")
}

func TestScriptsRender(t *testing.T) {
	engine := commontest.New()
	handler := commontest.FindTool(t, newModule(t, engine).GetTools(), "manage_asset")

	tests := []struct {
		args map[string]any
		want []string
	}{
		{map[string]any{"action": "exists", "path": "Props/Rock"}, []string{`path = "/Game/Props/Rock"`, "does_asset_exist"}},
		{map[string]any{"action": "create_folder", "path": "/Game/New"}, []string{"make_directory"}},
		{map[string]any{"action": "import", "source": "C:/art/rock.fbx", "destination": "/Game/Props", "name": "SM_Rock"},
			[]string{`task.filename = source`, `source = "C:/art/rock.fbx"`, `task.destination_name = "SM_Rock"`, `task.replace_existing = False`}},
		{map[string]any{"action": "duplicate", "source": "/Game/A", "destination": "/Game/B"}, []string{"duplicate_asset(source, destination)"}},
		{map[string]any{"action": "rename", "source": "/Game/A", "destination": "/Game/B"}, []string{"rename_asset(source, destination)"}},
		{map[string]any{"action": "save", "paths": []any{"/Game/A", "/Game/B"}}, []string{`for path in ["/Game/A", "/Game/B"]:`}},
		{map[string]any{"action": "metadata", "path": "/Game/A"}, []string{"get_metadata_tag_values"}},
	}
	for _, tt := range tests {
		out, isErr := commontest.CallTool(t, handler, tt.args)
		require.False(t, isErr, out)
		script := engine.LastScript()
		for _, want := range tt.want {
			assert.True(t, strings.Contains(script, want), "%v: missing %q", tt.args["action"], want)
		}
	}
}
