// Package python generates the Unreal Python snippets executed inside the
// editor. User-supplied values only ever reach a snippet through Literal.
package python

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Vec3 is a location or scale in Unreal units
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rot3 is a rotation in degrees
type Rot3 struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Color is a linear color
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Raw is emitted verbatim. It is reserved for expressions the generator
// itself builds, such as enum members.
type Raw string

// Literal renders a Go value as a Python expression
func Literal(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case Raw:
		return string(t)
	case string:
		return quote(t)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case float32:
		return pyFloat(float64(t))
	case float64:
		return pyFloat(t)
	case Vec3:
		return fmt.Sprintf("unreal.Vector(%s, %s, %s)", pyFloat(t.X), pyFloat(t.Y), pyFloat(t.Z))
	case *Vec3:
		if t == nil {
			return "None"
		}
		return Literal(*t)
	case Rot3:
		return fmt.Sprintf("unreal.Rotator(roll=%s, pitch=%s, yaw=%s)", pyFloat(t.Roll), pyFloat(t.Pitch), pyFloat(t.Yaw))
	case *Rot3:
		if t == nil {
			return "None"
		}
		return Literal(*t)
	case Color:
		return fmt.Sprintf("unreal.LinearColor(%s, %s, %s, %s)", pyFloat(t.R), pyFloat(t.G), pyFloat(t.B), pyFloat(t.A))
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return list(items)
	case []any:
		return list(t)
	case map[string]any:
		return dict(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return list(items)
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return dict(m)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.String:
		return quote(rv.String())
	}
	return quote(fmt.Sprint(v))
}

// quote produces a Python string literal. JSON string escapes are a subset
// of Python's, so the encoded form is valid Python source.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

func pyFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "float('nan')"
	case math.IsInf(f, 1):
		return "float('inf')"
	case math.IsInf(f, -1):
		return "float('-inf')"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func list(items []any) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(Literal(item))
	}
	buf.WriteByte(']')
	return buf.String()
}

func dict(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(quote(k))
		buf.WriteString(": ")
		buf.WriteString(Literal(m[k]))
	}
	buf.WriteByte('}')
	return buf.String()
}

