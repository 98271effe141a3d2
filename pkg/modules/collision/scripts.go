package collision

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

const findComponent = `actor = _find_actor({{py .Actor}})
if actor is None:
    _fail("Actor not found: " + {{py .Actor}})
    return
component_name = {{py .Component}}
candidates = list(actor.get_components_by_class(unreal.PrimitiveComponent))
if component_name:
    candidates = [c for c in candidates if c.get_name() == component_name]
else:
    root = actor.get_editor_property("root_component")
    candidates.sort(key=lambda c: c != root)
component = candidates[0] if candidates else None
if component is None:
    _fail("Actor has no matching primitive component")
    return
`

const describeCollision = `
responses = {}
for channel in {{py .Channels}}:
    responses[channel] = str(component.get_collision_response_to_channel(getattr(unreal.CollisionChannel, channel)))
result["actor"] = actor.get_actor_label()
result["component"] = component.get_name()
result["profile"] = str(component.get_collision_profile_name())
result["enabled"] = str(component.get_collision_enabled())
result["object_type"] = str(component.get_collision_object_type())
result["simulate_physics"] = component.is_simulating_physics()
result["responses"] = responses
`

var getScript = python.New("collision_get", findComponent+describeCollision)

var setProfileScript = python.New("collision_set_profile", findComponent+`
component.modify()
component.set_collision_profile_name({{py .Profile}})
if str(component.get_collision_profile_name()) != {{py .Profile}}:
    _fail("Unknown collision profile: " + {{py .Profile}})
    return
`+describeCollision)

var setEnabledScript = python.New("collision_set_enabled", findComponent+`
component.modify()
component.set_collision_enabled({{py .Mode}})
`+describeCollision)

var setResponseScript = python.New("collision_set_response", findComponent+`
component.modify()
component.set_collision_response_to_channel({{py .Channel}}, {{py .Response}})
`+describeCollision)

var setSimulatePhysicsScript = python.New("collision_set_simulate_physics", findComponent+`
component.modify()
{{- if .Enabled}}
if component.get_collision_enabled() in (unreal.CollisionEnabled.NO_COLLISION, unreal.CollisionEnabled.QUERY_ONLY):
    _warn("Collision does not include physics; the component will not collide while simulating")
if component.get_editor_property("mobility") != unreal.ComponentMobility.MOVABLE:
    component.set_mobility(unreal.ComponentMobility.MOVABLE)
    _warn("Mobility was changed to Movable")
{{- end}}
component.set_simulate_physics({{py .Enabled}})
`+describeCollision)
