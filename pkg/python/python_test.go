package python

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "None"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
		{"whole float", 2.0, "2.0"},
		{"nan", math.NaN(), "float('nan')"},
		{"string", "Cube", `"Cube"`},
		{"quotes", `say "hi"\n`, `"say \"hi\"\\n"`},
		{"injection", "\"); unreal.SystemLibrary.quit_editor(); (\"", `"\"); unreal.SystemLibrary.quit_editor(); (\""`},
		{"html chars", "<a&b>", `"<a&b>"`},
		{"newline", "a\nb", `"a\nb"`},
		{"vector", Vec3{X: 1, Y: -2.5, Z: 0}, "unreal.Vector(1.0, -2.5, 0.0)"},
		{"rotator", Rot3{Pitch: 10, Yaw: 90, Roll: 0}, "unreal.Rotator(roll=0.0, pitch=10.0, yaw=90.0)"},
		{"nil vector", (*Vec3)(nil), "None"},
		{"color", Color{R: 1, G: 0.5, B: 0, A: 1}, "unreal.LinearColor(1.0, 0.5, 0.0, 1.0)"},
		{"strings", []string{"a", "b"}, `["a", "b"]`},
		{"mixed", []any{1, "x", nil}, `[1, "x", None]`},
		{"dict", map[string]any{"b": 2, "a": true}, `{"a": True, "b": 2}`},
		{"typed slice", []float64{1, 2}, "[1.0, 2.0]"},
		{"raw", Raw("unreal.CollisionEnabled.NO_COLLISION"), "unreal.CollisionEnabled.NO_COLLISION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Literal(tt.in))
		})
	}
}

func TestScriptRender(t *testing.T) {
	s := New("spawn", `actor = _find_actor({{py .Name}})
if actor is None:
    return _fail("missing")

result["location"] = _vec(actor.get_actor_location())`)

	out, err := s.Render(map[string]any{"Name": "Cube \"1\""})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "import unreal\n"))
	assert.Contains(t, out, "def _run():\n    actor = _find_actor(\"Cube \\\"1\\\"\")\n")
	assert.Contains(t, out, "\n        return _fail(\"missing\")\n")
	assert.Contains(t, out, `print("RESULT:" + json.dumps(result, default=str))`)
	assert.Equal(t, "spawn", s.Name())
}

func TestScriptRenderMissingKey(t *testing.T) {
	s := New("broken", `x = {{py .Missing}}`)
	_, err := s.Render(map[string]any{})
	assert.Error(t, err)
}

func TestWrapEmptyBody(t *testing.T) {
	out := Wrap("")
	assert.Contains(t, out, "def _run():\n    pass\n")
}
