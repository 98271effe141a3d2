package actors

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

// findActor resolves .Name into actor or stops the script
const findActor = `actor = _find_actor({{py .Name}})
if actor is None:
    _fail("Actor not found: " + {{py .Name}})
    return
`

const describeActor = `
def _describe(a):
    return {
        "name": a.get_name(),
        "label": a.get_actor_label(),
        "class": a.get_class().get_name(),
        "location": _vec(a.get_actor_location()),
    }
`

var spawnScript = python.New("actor_spawn", `
class_name = {{py .Class}}
mesh_path = {{py .Mesh}}
subsystem = unreal.get_editor_subsystem(unreal.EditorActorSubsystem)

if class_name.startswith("/"):
    blueprint = unreal.EditorAssetLibrary.load_asset(class_name)
    if blueprint is None:
        _fail("Blueprint not found: " + class_name)
        return
    actor_class = blueprint.generated_class()
else:
    actor_class = getattr(unreal, class_name, None)
    if actor_class is None:
        _fail("Unknown actor class: " + class_name)
        return

actor = subsystem.spawn_actor_from_class(actor_class, {{py .Location}}, {{py .Rotation}})
if actor is None:
    _fail("Failed to spawn " + class_name)
    return

if mesh_path:
    mesh = unreal.EditorAssetLibrary.load_asset(mesh_path)
    component = actor.get_component_by_class(unreal.StaticMeshComponent)
    if mesh is None:
        _warn("Mesh not found: " + mesh_path)
    elif component is None:
        _warn("Actor has no static mesh component")
    else:
        component.set_static_mesh(mesh)

actor.set_actor_scale3d({{py .Scale}})
{{- if .Label}}
actor.set_actor_label({{py .Label}})
{{- end}}
result["name"] = actor.get_name()
result["label"] = actor.get_actor_label()
result["class"] = actor.get_class().get_name()
result["location"] = _vec(actor.get_actor_location())
result["rotation"] = _rot(actor.get_actor_rotation())
`)

var deleteScript = python.New("actor_delete", `
subsystem = unreal.get_editor_subsystem(unreal.EditorActorSubsystem)
deleted = []
for name in {{py .Names}}:
    actor = _find_actor(name)
    if actor is None:
        _warn("Actor not found: " + name)
        continue
    if subsystem.destroy_actor(actor):
        deleted.append(name)
    else:
        _warn("Failed to delete " + name)

result["deleted"] = deleted
if not deleted:
    _fail("No actors were deleted")
`)

var listScript = python.New("actor_list", describeActor+`
class_filter = {{py .ClassFilter}}.lower()
actors = [a for a in _actors() if not class_filter or a.get_class().get_name().lower() == class_filter]
result["total"] = len(actors)
result["actors"] = [_describe(a) for a in actors[:{{py .Limit}}]]
result["truncated"] = len(actors) > {{py .Limit}}
`)

var findScript = python.New("actor_find", describeActor+`
pattern = {{py .Pattern}}.lower()
tag = {{py .Tag}}
matches = []
for a in _actors():
    if pattern and pattern not in a.get_actor_label().lower() and pattern not in a.get_name().lower():
        continue
    if tag and not a.actor_has_tag(tag):
        continue
    matches.append(a)
result["total"] = len(matches)
result["actors"] = [_describe(a) for a in matches[:{{py .Limit}}]]
if not matches:
    _warn("No actors matched")
`)

var getTransformScript = python.New("actor_get_transform", findActor+`
result["name"] = actor.get_name()
result["label"] = actor.get_actor_label()
result["location"] = _vec(actor.get_actor_location())
result["rotation"] = _rot(actor.get_actor_rotation())
result["scale"] = _vec(actor.get_actor_scale3d())
`)

var setTransformScript = python.New("actor_set_transform", findActor+`
{{- if .Location}}
actor.set_actor_location({{py .Location}}, False, False)
{{- end}}
{{- if .Rotation}}
actor.set_actor_rotation({{py .Rotation}}, False)
{{- end}}
{{- if .Scale}}
actor.set_actor_scale3d({{py .Scale}})
{{- end}}
result["location"] = _vec(actor.get_actor_location())
result["rotation"] = _rot(actor.get_actor_rotation())
result["scale"] = _vec(actor.get_actor_scale3d())
`)

var setVisibilityScript = python.New("actor_set_visibility", findActor+`
hidden = not {{py .Visible}}
actor.set_actor_hidden_in_game(hidden)
actor.set_is_temporarily_hidden_in_editor(hidden)
result["visible"] = not hidden
`)

var attachScript = python.New("actor_attach", findActor+`
parent = _find_actor({{py .Parent}})
if parent is None:
    _fail("Parent actor not found: " + {{py .Parent}})
    return
rule = {{py .Rule}}
actor.attach_to_actor(parent, {{py .Socket}}, rule, rule, rule, False)
result["parent"] = parent.get_actor_label()
result["location"] = _vec(actor.get_actor_location())
`)

var addTagScript = python.New("actor_add_tag", findActor+`
tag = unreal.Name({{py .Tag}})
tags = list(actor.tags)
if tag in tags:
    _warn("Actor already has tag " + str(tag))
else:
    tags.append(tag)
    actor.set_editor_property("tags", tags)
result["tags"] = [str(t) for t in actor.tags]
`)
