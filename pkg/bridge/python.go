package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const pythonLibrary = "/Script/PythonScriptPlugin.Default__PythonScriptLibrary"

// PythonLog is one line captured while a script ran
type PythonLog struct {
	Type   string `json:"Type"`
	Output string `json:"Output"`
}

// PythonResult is the answer of ExecutePythonCommandEx
type PythonResult struct {
	ReturnValue   bool        `json:"ReturnValue"`
	CommandResult string      `json:"CommandResult"`
	LogOutput     []PythonLog `json:"LogOutput"`
}

// Output joins everything the script printed. A failed command without any
// error line gets one so callers can detect the failure from text alone.
func (r *PythonResult) Output() string {
	var sb strings.Builder
	for _, entry := range r.LogOutput {
		sb.WriteString(strings.TrimRight(entry.Output, "\n"))
		sb.WriteString("\n")
	}
	if cr := strings.TrimSpace(r.CommandResult); cr != "" && cr != "None" {
		sb.WriteString(cr)
		sb.WriteString("\n")
	}
	out := sb.String()
	if !r.ReturnValue && !strings.Contains(out, "Error") && !strings.Contains(out, "Traceback") {
		out += "Error: python command failed\n"
	}
	return out
}

// ExecutePython runs a script inside the editor's Python interpreter.
// Scripts not marked Generated are refused when unreal.allowPython is false.
func (b *Bridge) ExecutePython(ctx context.Context, script string, opts ...Option) (*PythonResult, error) {
	o := b.collect("python", opts)
	if !o.generated && !b.cfg.AllowPython {
		return nil, ErrPythonDisabled
	}
	if strings.TrimSpace(script) == "" {
		return nil, fmt.Errorf("python script is empty")
	}

	params := map[string]any{
		"PythonCommand":      script,
		"ExecutionMode":      "ExecuteFile",
		"FileExecutionScope": "Public",
	}
	body, err := b.call(ctx, pythonLibrary, "ExecutePythonCommandEx", params, false, o)
	if err != nil {
		return nil, err
	}

	var res PythonResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode python result: %w", err)
	}
	return &res, nil
}
