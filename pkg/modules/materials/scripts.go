package materials

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

const loadInstance = `mel = unreal.MaterialEditingLibrary
path = {{py .Path}}
instance = unreal.EditorAssetLibrary.load_asset(path)
if instance is None:
    _fail("Material instance not found: " + path)
    return
if not isinstance(instance, unreal.MaterialInstanceConstant):
    _fail(path + " is not a material instance")
    return
`

var createScript = python.New("material_create", `
mel = unreal.MaterialEditingLibrary
folder = {{py .Folder}}
name = {{py .Name}}
if unreal.EditorAssetLibrary.does_asset_exist(folder + "/" + name):
    _fail("Asset already exists: " + folder + "/" + name)
    return

tools = unreal.AssetToolsHelpers.get_asset_tools()
material = tools.create_asset(name, folder, unreal.Material, unreal.MaterialFactoryNew())
if material is None:
    _fail("Failed to create material " + name)
    return
{{- if .BaseColor}}

param = mel.create_material_expression(material, unreal.MaterialExpressionVectorParameter, -384, 0)
param.set_editor_property("parameter_name", "BaseColor")
param.set_editor_property("default_value", {{py .BaseColor}})
mel.connect_material_property(param, "", unreal.MaterialProperty.MP_BASE_COLOR)
{{- end}}

mel.recompile_material(material)
unreal.EditorAssetLibrary.save_loaded_asset(material)
result["path"] = material.get_path_name().split(".")[0]
`)

var createInstanceScript = python.New("material_create_instance", `
mel = unreal.MaterialEditingLibrary
folder = {{py .Folder}}
name = {{py .Name}}
parent = unreal.EditorAssetLibrary.load_asset({{py .Parent}})
if parent is None:
    _fail("Parent material not found: " + {{py .Parent}})
    return
if unreal.EditorAssetLibrary.does_asset_exist(folder + "/" + name):
    _fail("Asset already exists: " + folder + "/" + name)
    return

tools = unreal.AssetToolsHelpers.get_asset_tools()
instance = tools.create_asset(name, folder, unreal.MaterialInstanceConstant, unreal.MaterialInstanceConstantFactoryNew())
if instance is None:
    _fail("Failed to create material instance " + name)
    return
mel.set_material_instance_parent(instance, parent)
mel.update_material_instance(instance)
unreal.EditorAssetLibrary.save_loaded_asset(instance)
result["path"] = instance.get_path_name().split(".")[0]
result["parent"] = parent.get_path_name().split(".")[0]
`)

var setScalarScript = python.New("material_set_scalar", loadInstance+`
parameter = {{py .Parameter}}
if parameter not in [str(n) for n in mel.get_scalar_parameter_names(instance)]:
    _warn("Parameter " + parameter + " is not exposed by the parent material")
mel.set_material_instance_scalar_parameter_value(instance, parameter, {{py .Value}})
mel.update_material_instance(instance)
result["parameter"] = parameter
result["value"] = mel.get_material_instance_scalar_parameter_value(instance, parameter)
`)

var setVectorScript = python.New("material_set_vector", loadInstance+`
parameter = {{py .Parameter}}
if parameter not in [str(n) for n in mel.get_vector_parameter_names(instance)]:
    _warn("Parameter " + parameter + " is not exposed by the parent material")
mel.set_material_instance_vector_parameter_value(instance, parameter, {{py .Color}})
mel.update_material_instance(instance)
value = mel.get_material_instance_vector_parameter_value(instance, parameter)
result["parameter"] = parameter
result["value"] = {"r": value.r, "g": value.g, "b": value.b, "a": value.a}
`)

var setTextureScript = python.New("material_set_texture", loadInstance+`
parameter = {{py .Parameter}}
texture = unreal.EditorAssetLibrary.load_asset({{py .Texture}})
if texture is None:
    _fail("Texture not found: " + {{py .Texture}})
    return
if parameter not in [str(n) for n in mel.get_texture_parameter_names(instance)]:
    _warn("Parameter " + parameter + " is not exposed by the parent material")
mel.set_material_instance_texture_parameter_value(instance, parameter, texture)
mel.update_material_instance(instance)
result["parameter"] = parameter
result["texture"] = texture.get_path_name().split(".")[0]
`)

var getParametersScript = python.New("material_get_parameters", `
mel = unreal.MaterialEditingLibrary
path = {{py .Path}}
material = unreal.EditorAssetLibrary.load_asset(path)
if material is None:
    _fail("Material not found: " + path)
    return

is_instance = isinstance(material, unreal.MaterialInstanceConstant)
scalars = {}
for n in mel.get_scalar_parameter_names(material):
    scalars[str(n)] = mel.get_material_instance_scalar_parameter_value(material, n) if is_instance else None
vectors = {}
for n in mel.get_vector_parameter_names(material):
    if is_instance:
        v = mel.get_material_instance_vector_parameter_value(material, n)
        vectors[str(n)] = {"r": v.r, "g": v.g, "b": v.b, "a": v.a}
    else:
        vectors[str(n)] = None
textures = {}
for n in mel.get_texture_parameter_names(material):
    t = mel.get_material_instance_texture_parameter_value(material, n) if is_instance else None
    textures[str(n)] = t.get_path_name().split(".")[0] if t else None

result["path"] = path
result["is_instance"] = is_instance
result["scalar"] = scalars
result["vector"] = vectors
result["texture"] = textures
`)

var applyScript = python.New("material_apply", `
material = unreal.EditorAssetLibrary.load_asset({{py .Path}})
if material is None:
    _fail("Material not found: " + {{py .Path}})
    return
actor = _find_actor({{py .Actor}})
if actor is None:
    _fail("Actor not found: " + {{py .Actor}})
    return
component = actor.get_component_by_class(unreal.MeshComponent)
if component is None:
    _fail("Actor has no mesh component")
    return
slots = component.get_num_materials()
if {{py .Slot}} >= slots:
    _fail("Slot {{.Slot}} is out of range; the mesh has " + str(slots) + " slots")
    return
component.set_material({{py .Slot}}, material)
result["actor"] = actor.get_actor_label()
result["slot"] = {{py .Slot}}
result["material"] = {{py .Path}}
`)
