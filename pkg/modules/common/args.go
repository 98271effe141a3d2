package common

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/shaowenchen/unreal-mcp-server/pkg/python"
)

// Args is the decoded argument object of a tool call
type Args map[string]any

// ArgsOf returns the arguments of a tool call
func ArgsOf(request mcp.CallToolRequest) Args {
	args := request.GetArguments()
	if args == nil {
		return Args{}
	}
	return Args(args)
}

// Has reports whether key is present and not null
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// String returns a trimmed string argument
func (a Args) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// RequireString returns a non-empty string argument
func (a Args) RequireString(key string) (string, error) {
	s, ok := a.String(key)
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

// StringOr returns a string argument or def
func (a Args) StringOr(key, def string) string {
	if s, ok := a.String(key); ok {
		return s
	}
	return def
}

// Float returns a numeric argument. Numeric strings are accepted.
func (a Args) Float(key string) (float64, bool, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, true, nil
}

// RequireFloat returns a numeric argument that must be present
func (a Args) RequireFloat(key string) (float64, error) {
	f, ok, err := a.Float(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return f, nil
}

// FloatOr returns a numeric argument or def
func (a Args) FloatOr(key string, def float64) (float64, error) {
	f, ok, err := a.Float(key)
	if err != nil || !ok {
		return def, err
	}
	return f, nil
}

// IntOr returns an integral argument or def
func (a Args) IntOr(key string, def int) (int, error) {
	f, ok, err := a.Float(key)
	if err != nil || !ok {
		return def, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid %s: %v is not an integer", key, f)
	}
	return int(f), nil
}

// RequireInt returns an integral argument that must be present
func (a Args) RequireInt(key string) (int, error) {
	if !a.Has(key) {
		return 0, fmt.Errorf("%s is required", key)
	}
	return a.IntOr(key, 0)
}

// BoolOr returns a boolean argument or def. The strings "true" and "false"
// are accepted.
func (a Args) BoolOr(key string, def bool) (bool, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return def, nil
	}
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return def, fmt.Errorf("invalid %s: %q is not a boolean", key, t)
		}
		return b, nil
	}
	return def, fmt.Errorf("invalid %s: expected a boolean", key)
}

// RequireBool returns a boolean argument that must be present
func (a Args) RequireBool(key string) (bool, error) {
	if !a.Has(key) {
		return false, fmt.Errorf("%s is required", key)
	}
	return a.BoolOr(key, false)
}

// StringSlice returns a list of strings. A single string is treated as a
// one-element list.
func (a Args) StringSlice(key string) ([]string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return []string{s}, nil
		}
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("invalid %s[%d]: expected a string", key, i)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("invalid %s: expected a list of strings", key)
}

// Vec3 decodes {x,y,z} or [x,y,z]. Missing object components are zero.
func (a Args) Vec3(key string) (python.Vec3, bool, error) {
	vals, ok, err := a.components(key, []string{"x", "y", "z"}, 3)
	if err != nil || !ok {
		return python.Vec3{}, ok, err
	}
	return python.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, true, nil
}

// Rot3 decodes {pitch,yaw,roll} or [pitch,yaw,roll]
func (a Args) Rot3(key string) (python.Rot3, bool, error) {
	vals, ok, err := a.components(key, []string{"pitch", "yaw", "roll"}, 3)
	if err != nil || !ok {
		return python.Rot3{}, ok, err
	}
	return python.Rot3{Pitch: vals[0], Yaw: vals[1], Roll: vals[2]}, true, nil
}

// Color decodes {r,g,b,a} or [r,g,b] / [r,g,b,a]. Alpha defaults to 1.
func (a Args) Color(key string) (python.Color, bool, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return python.Color{}, false, nil
	}
	if list, isList := v.([]any); isList && len(list) == 3 {
		v = append(append([]any(nil), list...), 1.0)
	}
	if obj, isObj := v.(map[string]any); isObj {
		if _, hasAlpha := obj["a"]; !hasAlpha {
			withAlpha := make(map[string]any, len(obj)+1)
			for k, val := range obj {
				withAlpha[k] = val
			}
			withAlpha["a"] = 1.0
			v = withAlpha
		}
	}
	vals, err := decodeComponents(key, v, []string{"r", "g", "b", "a"}, 4)
	if err != nil {
		return python.Color{}, true, err
	}
	return python.Color{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, true, nil
}

func (a Args) components(key string, names []string, n int) ([]float64, bool, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	vals, err := decodeComponents(key, v, names, n)
	return vals, true, err
}

func decodeComponents(key string, v any, names []string, n int) ([]float64, error) {
	vals := make([]float64, n)
	switch t := v.(type) {
	case []any:
		if len(t) != n {
			return nil, fmt.Errorf("invalid %s: expected %d numbers, got %d", key, n, len(t))
		}
		for i, item := range t {
			f, err := toFloat(item)
			if err != nil {
				return nil, fmt.Errorf("invalid %s[%d]: %w", key, i, err)
			}
			vals[i] = f
		}
	case map[string]any:
		found := false
		for i, name := range names {
			item, ok := lookupFold(t, name)
			if !ok {
				continue
			}
			found = true
			f, err := toFloat(item)
			if err != nil {
				return nil, fmt.Errorf("invalid %s.%s: %w", key, name, err)
			}
			vals[i] = f
		}
		if !found {
			return nil, fmt.Errorf("invalid %s: expected keys %s", key, strings.Join(names, ", "))
		}
	default:
		return nil, fmt.Errorf("invalid %s: expected an object or a list", key)
	}
	return vals, nil
}

func lookupFold(m map[string]any, name string) (any, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func toFloat(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t.String())
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected a finite number")
	}
	return f, nil
}
