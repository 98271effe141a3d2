package result

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var failureMarkers = []string{
	"Traceback (most recent call last)",
	"LogPython: Error:",
	"Error:",
}

// Interpret normalizes raw engine output into an envelope
func Interpret(text string, opts Options) Envelope {
	if payload, ok := ParsePayload(text); ok {
		return FromPayload(payload, opts)
	}
	if errLine, failed := detectFailure(text); failed {
		return Envelope{Success: false, Message: opts.failure(), Error: errLine}
	}

	env := Envelope{Success: true, Message: opts.success()}
	if out := strings.TrimSpace(text); out != "" {
		env.Payload = map[string]any{"output": out}
	}
	return env
}

// FromPayload maps a decoded result object onto an envelope. The keys
// success, message, error, warnings and details are lifted out; everything
// else stays in the payload.
func FromPayload(payload map[string]any, opts Options) Envelope {
	env := Envelope{Payload: make(map[string]any, len(payload))}

	for k, v := range payload {
		switch k {
		case "success", "message", "error", "warnings", "details":
		default:
			env.Payload[k] = v
		}
	}

	env.Message = stringValue(payload["message"])
	env.Error = stringValue(payload["error"])
	env.Warnings = stringList(payload["warnings"])
	env.Details = stringList(payload["details"])

	if success, ok := payload["success"].(bool); ok {
		env.Success = success
	} else {
		env.Success = env.Error == ""
	}

	if env.Message == "" {
		if env.Success {
			env.Message = opts.success()
		} else {
			env.Message = opts.failure()
		}
	}
	if !env.Success && env.Error == "" {
		env.Error = env.Message
	}
	if len(env.Payload) == 0 {
		env.Payload = nil
	}
	return env
}

// FromRemote normalizes a Remote Control response body. Bodies carrying an
// errorMessage are failures; objects become the payload, anything else is
// stored under "value".
func FromRemote(body []byte, opts Options) Envelope {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return Envelope{Success: true, Message: opts.success()}
	}
	if !gjson.Valid(trimmed) {
		return Envelope{Success: true, Message: opts.success(), Payload: map[string]any{"value": trimmed}}
	}

	parsed := gjson.Parse(trimmed)
	if msg := parsed.Get("errorMessage"); msg.Exists() && msg.String() != "" {
		return Envelope{Success: false, Message: opts.failure(), Error: msg.String()}
	}

	if parsed.IsObject() {
		if payload, ok := decodeObject(trimmed); ok {
			return Envelope{Success: true, Message: opts.success(), Payload: payload}
		}
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		value = trimmed
	}
	return Envelope{Success: true, Message: opts.success(), Payload: map[string]any{"value": value}}
}

// detectFailure reports whether unstructured output describes an error and
// returns the most specific error line
func detectFailure(text string) (string, bool) {
	failed := false
	for _, marker := range failureMarkers {
		if strings.Contains(text, marker) {
			failed = true
			break
		}
	}
	if !failed {
		return "", false
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if strings.Contains(line, "Error") || strings.Contains(line, "Exception") {
			return strings.TrimPrefix(line, "LogPython: "), true
		}
	}
	return strings.TrimSpace(lines[len(lines)-1]), true
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	default:
		return fmt.Sprint(t)
	}
}

func stringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return []string{fmt.Sprint(t)}
	}
}
