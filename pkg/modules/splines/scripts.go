package splines

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

// findSpline resolves the spline component of a labeled actor
const findSpline = `actor = _find_actor({{py .Name}})
if actor is None:
    _fail("Spline actor not found: " + {{py .Name}})
    return
spline = actor.get_component_by_class(unreal.SplineComponent)
if spline is None:
    _fail("Actor has no spline component: " + {{py .Name}})
    return
space = {{py .Space}}
`

const checkIndex = `count = spline.get_number_of_spline_points()
index = {{py .Index}}
if index < 0 or index >= count:
    _fail("Point index " + str(index) + " is out of range; the spline has " + str(count) + " points")
    return
`

const describePoints = `points = []
for i in range(spline.get_number_of_spline_points()):
    points.append({
        "index": i,
        "location": _vec(spline.get_location_at_spline_point(i, space)),
        "tangent": _vec(spline.get_tangent_at_spline_point(i, space)),
    })
result["name"] = actor.get_actor_label()
result["points"] = points
result["count"] = len(points)
result["closed"] = spline.is_closed_loop()
result["length"] = spline.get_spline_length()
`

var createScript = python.New("spline_create", `
if _find_actor({{py .Name}}) is not None:
    _fail("Actor already exists: " + {{py .Name}})
    return
actor = unreal.EditorLevelLibrary.spawn_actor_from_class(unreal.Actor, {{py .Location}}, unreal.Rotator(0, 0, 0))
if actor is None:
    _fail("Failed to spawn spline actor")
    return
actor.set_actor_label({{py .Name}})

subsystem = unreal.get_engine_subsystem(unreal.SubobjectDataSubsystem)
handles = subsystem.k2_gather_subobject_data_for_instance(actor)
params = unreal.AddNewSubobjectParams(parent_handle=handles[0], new_class=unreal.SplineComponent)
handle, reason = subsystem.add_new_subobject(params)
if not reason.is_empty():
    _fail("Failed to add spline component: " + str(reason))
    return

spline = actor.get_component_by_class(unreal.SplineComponent)
space = {{py .Space}}
{{- if .Points}}
spline.clear_spline_points(False)
for point in {{py .Points}}:
    spline.add_spline_point(point, space, False)
spline.update_spline()
{{- end}}
spline.set_closed_loop({{py .Closed}}, True)
`+describePoints)

var addPointScript = python.New("spline_add_point", findSpline+`
{{- if .HasIndex}}
count = spline.get_number_of_spline_points()
if {{py .Index}} > count:
    _fail("Point index {{.Index}} is out of range; the spline has " + str(count) + " points")
    return
spline.add_spline_point_at_index({{py .Location}}, {{py .Index}}, space, True)
{{- else}}
spline.add_spline_point({{py .Location}}, space, True)
{{- end}}
`+describePoints)

var setPointScript = python.New("spline_set_point", findSpline+checkIndex+`
{{- if .Location}}
spline.set_location_at_spline_point(index, {{py .Location}}, space, False)
{{- end}}
{{- if .Tangent}}
spline.set_tangent_at_spline_point(index, {{py .Tangent}}, space, False)
{{- end}}
spline.update_spline()
`+describePoints)

var removePointScript = python.New("spline_remove_point", findSpline+checkIndex+`
spline.remove_spline_point(index, True)
`+describePoints)

var getPointsScript = python.New("spline_get_points", findSpline+describePoints)

var setClosedScript = python.New("spline_set_closed", findSpline+`
spline.set_closed_loop({{py .Closed}}, True)
`+describePoints)
