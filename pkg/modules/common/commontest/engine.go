// Package commontest provides an in-memory Engine for tool module tests.
package commontest

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules/common"
)

// Call is one direct Remote Control request seen by the engine
type Call struct {
	Method     string
	ObjectPath string
	Name       string
	Params     map[string]any
	Value      any
	Filter     bridge.AssetFilter
}

// Engine records every request and answers with canned replies
type Engine struct {
	mu       sync.Mutex
	scripts  []string
	commands []string
	calls    []Call

	// PythonOutput is printed by every script unless PythonFunc is set
	PythonOutput string
	PythonFunc   func(script string) (string, error)
	PythonErr    error

	RemoteBody []byte
	RemoteErr  error
	ConsoleErr error

	StatusValue bridge.Status
}

var _ common.Engine = (*Engine)(nil)

// New returns an engine whose scripts report success
func New() *Engine {
	return &Engine{
		PythonOutput: `RESULT:{"success": true}`,
		RemoteBody:   []byte(`{"ReturnValue": true}`),
		StatusValue:  bridge.Status{Connected: true, Transport: "http"},
	}
}

func (e *Engine) Info(ctx context.Context, opts ...bridge.Option) ([]byte, error) {
	e.record(Call{Method: "Info"})
	return e.RemoteBody, e.RemoteErr
}

func (e *Engine) Status() bridge.Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.StatusValue
}

func (e *Engine) ExecutePython(ctx context.Context, script string, opts ...bridge.Option) (*bridge.PythonResult, error) {
	e.mu.Lock()
	e.scripts = append(e.scripts, script)
	fn, out, err := e.PythonFunc, e.PythonOutput, e.PythonErr
	e.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if fn != nil {
		out, err = fn(script)
		if err != nil {
			return nil, err
		}
	}
	return &bridge.PythonResult{
		ReturnValue: true,
		LogOutput:   []bridge.PythonLog{{Type: "Info", Output: out}},
	}, nil
}

func (e *Engine) ConsoleCommand(ctx context.Context, command string, opts ...bridge.Option) ([]byte, error) {
	if _, blocked := bridge.BlockedSegment(command); blocked {
		return nil, bridge.ErrCommandBlocked
	}
	e.mu.Lock()
	e.commands = append(e.commands, command)
	err := e.ConsoleErr
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []byte(`{}`), nil
}

func (e *Engine) CallFunction(ctx context.Context, objectPath, function string, params map[string]any, opts ...bridge.Option) ([]byte, error) {
	e.record(Call{Method: "CallFunction", ObjectPath: objectPath, Name: function, Params: params})
	return e.RemoteBody, e.RemoteErr
}

func (e *Engine) GetProperty(ctx context.Context, objectPath, property string, opts ...bridge.Option) ([]byte, error) {
	e.record(Call{Method: "GetProperty", ObjectPath: objectPath, Name: property})
	return e.RemoteBody, e.RemoteErr
}

func (e *Engine) SetProperty(ctx context.Context, objectPath, property string, value any, opts ...bridge.Option) ([]byte, error) {
	e.record(Call{Method: "SetProperty", ObjectPath: objectPath, Name: property, Value: value})
	return e.RemoteBody, e.RemoteErr
}

func (e *Engine) Describe(ctx context.Context, objectPath string, opts ...bridge.Option) ([]byte, error) {
	e.record(Call{Method: "Describe", ObjectPath: objectPath})
	return e.RemoteBody, e.RemoteErr
}

func (e *Engine) ListPresets(ctx context.Context, opts ...bridge.Option) ([]byte, error) {
	e.record(Call{Method: "ListPresets"})
	return e.RemoteBody, e.RemoteErr
}

func (e *Engine) GetPreset(ctx context.Context, name string, opts ...bridge.Option) ([]byte, error) {
	e.record(Call{Method: "GetPreset", Name: name})
	return e.RemoteBody, e.RemoteErr
}

func (e *Engine) SearchAssets(ctx context.Context, query string, filter bridge.AssetFilter, opts ...bridge.Option) ([]byte, error) {
	e.record(Call{Method: "SearchAssets", Name: query, Filter: filter})
	return e.RemoteBody, e.RemoteErr
}

func (e *Engine) record(c Call) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, c)
}

// Scripts returns every executed script
func (e *Engine) Scripts() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.scripts...)
}

// LastScript returns the most recent script or ""
func (e *Engine) LastScript() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.scripts) == 0 {
		return ""
	}
	return e.scripts[len(e.scripts)-1]
}

// Commands returns every console command sent
func (e *Engine) Commands() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.commands...)
}

// Calls returns every direct Remote Control call
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Requests counts everything that reached the engine
func (e *Engine) Requests() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.scripts) + len(e.commands) + len(e.calls)
}

// CallTool invokes a tool handler and decodes its JSON envelope
func CallTool(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (map[string]any, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("handler returned an empty result")
	}

	var text strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			text.WriteString(tc.Text)
		}
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(text.String()), &out); err != nil {
		t.Fatalf("result is not a JSON envelope: %v\n%s", err, text.String())
	}
	return out, res.IsError
}

// FindTool returns the handler of the named tool
func FindTool(t *testing.T, tools []server.ServerTool, name string) server.ToolHandlerFunc {
	t.Helper()
	for _, tool := range tools {
		if tool.Tool.Name == name {
			return tool.Handler
		}
	}
	t.Fatalf("tool %q not registered", name)
	return nil
}
