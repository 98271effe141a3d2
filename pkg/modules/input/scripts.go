package input

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

const loadContext = `context = unreal.EditorAssetLibrary.load_asset({{py .Context}})
if context is None or not isinstance(context, unreal.InputMappingContext):
    _fail("Mapping context not found: " + {{py .Context}})
    return
`

const loadAction = `input_action = unreal.EditorAssetLibrary.load_asset({{py .Action}})
if input_action is None or not isinstance(input_action, unreal.InputAction):
    _fail("Input action not found: " + {{py .Action}})
    return
`

const describeMappings = `mappings = []
for mapping in context.get_editor_property("mappings"):
    act = mapping.get_editor_property("action")
    mappings.append({
        "action": act.get_path_name().split(".")[0] if act else None,
        "key": str(mapping.get_editor_property("key").get_editor_property("key_name")),
    })
result["context"] = {{py .Context}}
result["mappings"] = mappings
result["count"] = len(mappings)
`

var createActionScript = python.New("input_create_action", `
folder = {{py .Folder}}
name = {{py .Name}}
if unreal.EditorAssetLibrary.does_asset_exist(folder + "/" + name):
    _fail("Asset already exists: " + folder + "/" + name)
    return
tools = unreal.AssetToolsHelpers.get_asset_tools()
factory = unreal.InputAction_Factory()
asset = tools.create_asset(name, folder, unreal.InputAction, factory)
if asset is None:
    _fail("Failed to create input action " + name)
    return
asset.set_editor_property("value_type", {{py .ValueType}})
unreal.EditorAssetLibrary.save_loaded_asset(asset)
result["path"] = asset.get_path_name().split(".")[0]
result["value_type"] = str(asset.get_editor_property("value_type"))
`)

var createContextScript = python.New("input_create_mapping_context", `
folder = {{py .Folder}}
name = {{py .Name}}
if unreal.EditorAssetLibrary.does_asset_exist(folder + "/" + name):
    _fail("Asset already exists: " + folder + "/" + name)
    return
tools = unreal.AssetToolsHelpers.get_asset_tools()
factory = unreal.InputMappingContext_Factory()
asset = tools.create_asset(name, folder, unreal.InputMappingContext, factory)
if asset is None:
    _fail("Failed to create mapping context " + name)
    return
unreal.EditorAssetLibrary.save_loaded_asset(asset)
result["path"] = asset.get_path_name().split(".")[0]
`)

var addMappingScript = python.New("input_add_mapping", loadContext+loadAction+`
key = unreal.Key()
key.import_text({{py .Key}})
if not unreal.InputLibrary.key_is_valid(key):
    _fail("Unknown key: " + {{py .Key}})
    return
for mapping in context.get_editor_property("mappings"):
    if mapping.get_editor_property("action") == input_action and str(mapping.get_editor_property("key").get_editor_property("key_name")) == {{py .Key}}:
        _warn("Mapping already exists")
        break
else:
    context.map_key(input_action, key)
unreal.EditorAssetLibrary.save_loaded_asset(context)
`+describeMappings)

var removeMappingScript = python.New("input_remove_mapping", loadContext+loadAction+`
{{- if .Key}}
key = unreal.Key()
key.import_text({{py .Key}})
before = len(context.get_editor_property("mappings"))
context.unmap_key(input_action, key)
{{- else}}
before = len(context.get_editor_property("mappings"))
context.unmap_all_keys_from_action(input_action)
{{- end}}
removed = before - len(context.get_editor_property("mappings"))
if removed == 0:
    _warn("No matching mapping was found")
unreal.EditorAssetLibrary.save_loaded_asset(context)
result["removed"] = removed
`+describeMappings)

var listMappingsScript = python.New("input_list_mappings", loadContext+describeMappings)
