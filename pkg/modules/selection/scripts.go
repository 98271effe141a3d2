package selection

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

const describeSelection = `
subsystem = unreal.get_editor_subsystem(unreal.EditorActorSubsystem)
selected = subsystem.get_selected_level_actors()
result["selected"] = [{"name": a.get_name(), "label": a.get_actor_label(), "class": a.get_class().get_name()} for a in selected]
result["count"] = len(selected)
`

var getScript = python.New("selection_get", describeSelection)

var selectScript = python.New("selection_select", `
subsystem = unreal.get_editor_subsystem(unreal.EditorActorSubsystem)
wanted = {{py .Names}}
found = []
missing = []
for name in wanted:
    actor = _find_actor(name)
    if actor is None:
        missing.append(name)
    else:
        found.append(actor)
if not found:
    _fail("No matching actors: " + ", ".join(missing))
    return
for name in missing:
    _warn("Actor not found: " + name)
{{- if .Add}}
found = list(subsystem.get_selected_level_actors()) + found
{{- end}}
subsystem.set_selected_level_actors(found)
`+describeSelection)

var clearScript = python.New("selection_clear", `
unreal.get_editor_subsystem(unreal.EditorActorSubsystem).clear_actor_selection_set()
`+describeSelection)

var selectByClassScript = python.New("selection_select_by_class", `
subsystem = unreal.get_editor_subsystem(unreal.EditorActorSubsystem)
class_name = {{py .Class}}.lower()
matches = [a for a in _actors() if a.get_class().get_name().lower() == class_name]
if not matches:
    _warn("No actors of class " + {{py .Class}})
{{- if .Add}}
matches = list(subsystem.get_selected_level_actors()) + matches
{{- end}}
subsystem.set_selected_level_actors(matches)
`+describeSelection)

var invertScript = python.New("selection_invert", `
subsystem = unreal.get_editor_subsystem(unreal.EditorActorSubsystem)
current = set(a.get_path_name() for a in subsystem.get_selected_level_actors())
subsystem.set_selected_level_actors([a for a in _actors() if a.get_path_name() not in current])
`+describeSelection)
