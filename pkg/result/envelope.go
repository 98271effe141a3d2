// Package result normalizes the heterogeneous replies coming back from the
// editor (Python stdout, JSON blobs, Remote Control call bodies) into one
// envelope shape shared by every tool.
package result

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Envelope is the uniform tool result. Payload keys are flattened into the
// top level of the JSON form; the envelope's own keys take precedence.
type Envelope struct {
	Success  bool
	Message  string
	Error    string
	Warnings []string
	Details  []string
	Payload  map[string]any
}

// Options supplies default messages when the engine reply carries none
type Options struct {
	SuccessMessage string
	FailureMessage string
}

func (o Options) success() string {
	if o.SuccessMessage != "" {
		return o.SuccessMessage
	}
	return "Operation completed"
}

func (o Options) failure() string {
	if o.FailureMessage != "" {
		return o.FailureMessage
	}
	return "Operation failed"
}

// OK builds a successful envelope
func OK(message string, payload map[string]any) Envelope {
	return Envelope{Success: true, Message: message, Payload: payload}
}

// Fail builds a failed envelope
func Fail(message, errMsg string) Envelope {
	if errMsg == "" {
		errMsg = message
	}
	return Envelope{Success: false, Message: message, Error: errMsg}
}

// Failf builds a failed envelope whose message and error are the formatted text
func Failf(format string, args ...any) Envelope {
	msg := fmt.Sprintf(format, args...)
	return Envelope{Success: false, Message: msg, Error: msg}
}

// FromError builds a failed envelope from a Go error
func FromError(message string, err error) Envelope {
	if err == nil {
		return Fail(message, "")
	}
	return Fail(message, err.Error())
}

// With returns a copy of the envelope with an additional payload value
func (e Envelope) With(key string, value any) Envelope {
	payload := make(map[string]any, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value
	e.Payload = payload
	return e
}

// WithWarning returns a copy of the envelope with an additional warning
func (e Envelope) WithWarning(warning string) Envelope {
	e.Warnings = append(append([]string(nil), e.Warnings...), warning)
	return e
}

// Get returns a payload value
func (e Envelope) Get(key string) (any, bool) {
	v, ok := e.Payload[key]
	return v, ok
}

// Map returns the flattened form of the envelope
func (e Envelope) Map() map[string]any {
	out := make(map[string]any, len(e.Payload)+5)
	for k, v := range e.Payload {
		out[k] = v
	}
	out["success"] = e.Success
	if e.Message != "" {
		out["message"] = e.Message
	} else {
		delete(out, "message")
	}
	if e.Error != "" {
		out["error"] = e.Error
	} else {
		delete(out, "error")
	}
	if len(e.Warnings) > 0 {
		out["warnings"] = e.Warnings
	} else {
		delete(out, "warnings")
	}
	if len(e.Details) > 0 {
		out["details"] = e.Details
	} else {
		delete(out, "details")
	}
	return out
}

// MarshalJSON implements json.Marshaler
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}

// ToolResult renders the envelope as an MCP tool result
func ToolResult(e Envelope) *mcp.CallToolResult {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(`{"success":false,"error":%q}`, err.Error()))
	}
	if !e.Success {
		return mcp.NewToolResultError(string(data))
	}
	return mcp.NewToolResultText(string(data))
}
