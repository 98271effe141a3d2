package python

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// prelude is shared by every snippet. Bodies run inside _run() so they can
// return early; they report through the module-level result dict.
const prelude = `import unreal
import json
import traceback

result = {"success": True, "message": "", "error": "", "warnings": [], "details": []}


def _fail(message):
    result["success"] = False
    result["error"] = message


def _warn(message):
    result["warnings"].append(message)


def _vec(v):
    return {"x": v.x, "y": v.y, "z": v.z}


def _rot(r):
    return {"pitch": r.pitch, "yaw": r.yaw, "roll": r.roll}


def _actors():
    return unreal.get_editor_subsystem(unreal.EditorActorSubsystem).get_all_level_actors()


def _find_actor(name):
    for actor in _actors():
        if actor.get_actor_label() == name or actor.get_name() == name:
            return actor
    return None


def _asset_class(data):
    try:
        return str(data.asset_class_path.asset_name)
    except AttributeError:
        return str(data.asset_class)


def _run():
`

const epilogue = `

try:
    _run()
except Exception as exc:
    result["success"] = False
    result["error"] = str(exc)
    result["details"].append(traceback.format_exc().strip().splitlines()[-1])

print("RESULT:" + json.dumps(result, default=str))
`

// Script is a parsed snippet body
type Script struct {
	name string
	tmpl *template.Template
}

// New parses a snippet body template. Bodies use {{py .Field}} to inline
// values and are indented into the harness automatically. It panics on a
// malformed template, which is a programming error.
func New(name, body string) *Script {
	tmpl := template.Must(template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{"py": Literal}).
		Parse(body))
	return &Script{name: name, tmpl: tmpl}
}

// Name returns the snippet name
func (s *Script) Name() string {
	return s.name
}

// Render executes the body template with data and wraps it into a complete
// program that prints a marker line with the JSON result
func (s *Script) Render(data any) (string, error) {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render script %s: %w", s.name, err)
	}
	return Wrap(body.String()), nil
}

// Wrap places body inside the standard harness
func Wrap(body string) string {
	var b strings.Builder
	b.WriteString(prelude)
	wrote := false
	for _, line := range strings.Split(strings.Trim(body, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString("    ")
		b.WriteString(line)
		b.WriteString("\n")
		wrote = true
	}
	if !wrote {
		b.WriteString("    pass\n")
	}
	b.WriteString(epilogue)
	return b.String()
}
