package result

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Marker prefixes the JSON line every generated snippet prints last
const Marker = "RESULT:"

// ParsePayload extracts the structured result from engine output. It looks
// for the last marker line, then the last top-level JSON object, then the
// last Python dict repr.
func ParsePayload(text string) (map[string]any, bool) {
	if text == "" {
		return nil, false
	}
	if payload, ok := parseMarker(text); ok {
		return payload, true
	}
	if payload, ok := lastJSONObject(text); ok {
		return payload, true
	}
	return lastPythonDict(text)
}

func parseMarker(text string) (map[string]any, bool) {
	idx := strings.LastIndex(text, Marker)
	for tries := 0; idx >= 0 && tries < maxMarkers; tries++ {
		if payload, ok := decodeObject(text[idx+len(Marker):]); ok {
			return payload, true
		}
		idx = strings.LastIndex(text[:idx], Marker)
	}
	return nil, false
}

// decodeObject decodes the first JSON object at the start of s, ignoring
// anything after it
func decodeObject(s string) (map[string]any, bool) {
	s = strings.TrimLeft(s, " \t")
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var payload map[string]any
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, false
	}
	return normalizeNumbers(payload).(map[string]any), true
}

const (
	// maxScanBytes bounds how much trailing output is searched for a payload
	maxScanBytes = 64 << 10
	// maxMarkers bounds how many marker lines are tried, newest first
	maxMarkers = 8
)

func lastJSONObject(text string) (map[string]any, bool) {
	text = scanTail(text)
	spans := objectSpans(text)
	for i := len(spans) - 1; i >= 0; i-- {
		candidate := text[spans[i][0] : spans[i][1]+1]
		if !gjson.Valid(candidate) {
			continue
		}
		if payload, ok := decodeObject(candidate); ok {
			return payload, true
		}
	}
	return nil, false
}

func lastPythonDict(text string) (map[string]any, bool) {
	text = scanTail(text)
	spans := objectSpans(text)
	for i := len(spans) - 1; i >= 0; i-- {
		converted, ok := pythonReprToJSON(text[spans[i][0] : spans[i][1]+1])
		if !ok || !gjson.Valid(converted) {
			continue
		}
		if payload, ok := decodeObject(converted); ok {
			return payload, true
		}
	}
	return nil, false
}

func scanTail(text string) string {
	if len(text) > maxScanBytes {
		return text[len(text)-maxScanBytes:]
	}
	return text
}

// objectSpans returns the outermost balanced {...} spans of text in order,
// in a single pass. Braces that never close are ignored and quoted strings
// of either style are skipped. A quote still open at a newline is dropped
// since neither JSON nor a repr() string spans lines.
func objectSpans(text string) [][2]int {
	var (
		spans [][2]int
		opens []int
		kinds []byte
		quote byte
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote, '\n':
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			if len(kinds) > 0 {
				quote = c
			}
		case '{', '[':
			opens = append(opens, i)
			kinds = append(kinds, c)
		case '}', ']':
			if len(kinds) == 0 {
				continue
			}
			want := byte('{')
			if c == ']' {
				want = '['
			}
			if kinds[len(kinds)-1] != want {
				opens, kinds = opens[:0], kinds[:0]
				continue
			}
			start := opens[len(opens)-1]
			opens, kinds = opens[:len(opens)-1], kinds[:len(kinds)-1]
			if c != '}' {
				continue
			}
			for len(spans) > 0 && spans[len(spans)-1][0] > start {
				spans = spans[:len(spans)-1]
			}
			spans = append(spans, [2]int{start, i})
		}
	}
	return spans
}

// pythonReprToJSON converts a repr() of a dict built from str, int, float,
// bool, None, list and dict values into JSON
func pythonReprToJSON(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			end, value, ok := readPythonString(s, i)
			if !ok {
				return "", false
			}
			encoded, _ := json.Marshal(value)
			b.Write(encoded)
			i = end
		case strings.HasPrefix(s[i:], "True"):
			b.WriteString("true")
			i += len("True") - 1
		case strings.HasPrefix(s[i:], "False"):
			b.WriteString("false")
			i += len("False") - 1
		case strings.HasPrefix(s[i:], "None"):
			b.WriteString("null")
			i += len("None") - 1
		case c == '(':
			b.WriteByte('[')
		case c == ')':
			b.WriteByte(']')
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), true
}

func readPythonString(s string, start int) (int, string, bool) {
	quote := s[start]
	var b strings.Builder
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		if c == quote {
			return i, b.String(), true
		}
		b.WriteByte(c)
	}
	return 0, "", false
}

// normalizeNumbers turns json.Number values into int64 when integral and
// float64 otherwise
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}
