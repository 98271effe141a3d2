package result

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayloadMarker(t *testing.T) {
	text := "LogPython: spawning\nLogPython: RESULT:{\"success\": true, \"count\": 3, \"names\": [\"A\", \"B\"]}\n"
	payload, ok := ParsePayload(text)
	require.True(t, ok)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, int64(3), payload["count"])
	assert.Equal(t, []any{"A", "B"}, payload["names"])
}

func TestParsePayloadUsesLastMarker(t *testing.T) {
	text := "RESULT:{\"step\": 1}\nRESULT:{\"step\": 2}\n"
	payload, ok := ParsePayload(text)
	require.True(t, ok)
	assert.Equal(t, int64(2), payload["step"])
}

func TestParsePayloadSkipsBrokenMarker(t *testing.T) {
	text := "RESULT:{\"step\": 1}\nRESULT:{not json\n"
	payload, ok := ParsePayload(text)
	require.True(t, ok)
	assert.Equal(t, int64(1), payload["step"])
}

func TestParsePayloadFallsBackToLastJSONObject(t *testing.T) {
	text := `first {"a": 1} then {"b": {"nested": "}"}} done`
	payload, ok := ParsePayload(text)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"nested": "}"}, payload["b"])
}

func TestParsePayloadPythonRepr(t *testing.T) {
	text := `{'success': True, 'path': '/Game/It\'s', 'value': None, 'scale': (1.0, 2.0, 3.0)}`
	payload, ok := ParsePayload(text)
	require.True(t, ok)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "/Game/It's", payload["path"])
	assert.Nil(t, payload["value"])
	assert.Equal(t, []any{1.0, 2.0, 3.0}, payload["scale"])
}

func TestParsePayloadNothing(t *testing.T) {
	_, ok := ParsePayload("just some log text")
	assert.False(t, ok)
	_, ok = ParsePayload("")
	assert.False(t, ok)
}

func TestInterpretPayload(t *testing.T) {
	env := Interpret(`RESULT:{"success": false, "error": "Actor not found: Cube", "warnings": "check label", "details": ["searched 12 actors"], "actor": "Cube"}`,
		Options{SuccessMessage: "Moved", FailureMessage: "Move failed"})

	assert.False(t, env.Success)
	assert.Equal(t, "Move failed", env.Message)
	assert.Equal(t, "Actor not found: Cube", env.Error)
	assert.Equal(t, []string{"check label"}, env.Warnings)
	assert.Equal(t, []string{"searched 12 actors"}, env.Details)
	assert.Equal(t, "Cube", env.Payload["actor"])
}

func TestInterpretSuccessDefaults(t *testing.T) {
	env := Interpret(`RESULT:{"path": "/Game/Foo"}`, Options{SuccessMessage: "Created"})
	assert.True(t, env.Success)
	assert.Equal(t, "Created", env.Message)
	assert.Empty(t, env.Error)
}

func TestInterpretFailureWithoutErrorUsesMessage(t *testing.T) {
	env := Interpret(`RESULT:{"success": false, "message": "Nothing selected"}`, Options{})
	assert.False(t, env.Success)
	assert.Equal(t, "Nothing selected", env.Error)
}

func TestInterpretTraceback(t *testing.T) {
	text := "Traceback (most recent call last):\n  File \"<string>\", line 3, in <module>\nAttributeError: 'NoneType' object has no attribute 'get_actor_label'\n"
	env := Interpret(text, Options{FailureMessage: "Script failed"})
	assert.False(t, env.Success)
	assert.Equal(t, "Script failed", env.Message)
	assert.Equal(t, "AttributeError: 'NoneType' object has no attribute 'get_actor_label'", env.Error)
}

func TestInterpretPlainOutput(t *testing.T) {
	env := Interpret("  5.4.2-0+++UE5+Release-5.4  \n", Options{SuccessMessage: "Version read"})
	assert.True(t, env.Success)
	assert.Equal(t, "5.4.2-0+++UE5+Release-5.4", env.Payload["output"])

	empty := Interpret("", Options{})
	assert.True(t, empty.Success)
	assert.Nil(t, empty.Payload)
}

func TestFromRemote(t *testing.T) {
	env := FromRemote([]byte(`{"ReturnValue": true}`), Options{SuccessMessage: "Called"})
	assert.True(t, env.Success)
	assert.Equal(t, true, env.Payload["ReturnValue"])

	failed := FromRemote([]byte(`{"errorMessage": "Object /Game/Missing not found"}`), Options{FailureMessage: "Call failed"})
	assert.False(t, failed.Success)
	assert.Equal(t, "Object /Game/Missing not found", failed.Error)

	list := FromRemote([]byte(`[1, 2]`), Options{})
	assert.Equal(t, []any{1.0, 2.0}, list.Payload["value"])

	text := FromRemote([]byte(`plain`), Options{})
	assert.Equal(t, "plain", text.Payload["value"])

	empty := FromRemote(nil, Options{})
	assert.True(t, empty.Success)
}

func TestEnvelopeJSONFlattensPayload(t *testing.T) {
	env := OK("Listed", map[string]any{"assets": []string{"/Game/A"}, "success": "shadowed"}).
		WithWarning("truncated").
		With("count", 1)

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, "Listed", decoded["message"])
	assert.Equal(t, []any{"/Game/A"}, decoded["assets"])
	assert.Equal(t, []any{"truncated"}, decoded["warnings"])
	assert.Equal(t, 1.0, decoded["count"])
	assert.NotContains(t, decoded, "error")
}

func TestToolResult(t *testing.T) {
	ok := ToolResult(OK("done", nil))
	assert.False(t, ok.IsError)

	failed := ToolResult(Fail("nope", ""))
	assert.True(t, failed.IsError)
}

func TestFailf(t *testing.T) {
	env := Failf("unknown action %q", "explode")
	assert.False(t, env.Success)
	assert.Equal(t, `unknown action "explode"`, env.Error)
}

func TestParsePayloadUnbalancedBracesStayFast(t *testing.T) {
	start := time.Now()
	_, ok := ParsePayload(strings.Repeat("{", 100000))
	assert.False(t, ok)

	payload, ok := ParsePayload(strings.Repeat("{[", 50000) + "\n" + `{"success": true}`)
	require.True(t, ok)
	assert.Equal(t, true, payload["success"])

	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestParsePayloadStrayBraceBeforeObject(t *testing.T) {
	text := "LogTemp: can't parse {oops\n" + `{"count": 2}`
	payload, ok := ParsePayload(text)
	require.True(t, ok)
	assert.Equal(t, int64(2), payload["count"])
}

func TestParsePayloadPythonReprPrefersOutermostDict(t *testing.T) {
	payload, ok := ParsePayload(`done {'outer': {'inner': 1}, 'ok': True}`)
	require.True(t, ok)
	assert.Equal(t, true, payload["ok"])
	assert.Equal(t, map[string]any{"inner": int64(1)}, payload["outer"])
}

func TestParsePayloadSearchesOnlyTheTail(t *testing.T) {
	text := `{"early": true}` + strings.Repeat("x", maxScanBytes+1)
	_, ok := ParsePayload(text)
	assert.False(t, ok)
}
