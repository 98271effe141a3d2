package assets

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

var listScript = python.New("asset_list", `
path = {{py .Path}}
class_filter = {{py .ClassFilter}}.lower()
if not unreal.EditorAssetLibrary.does_directory_exist(path):
    _fail("Directory not found: " + path)
    return

assets = []
for asset_path in unreal.EditorAssetLibrary.list_assets(path, recursive={{py .Recursive}}, include_folder=False):
    data = unreal.EditorAssetLibrary.find_asset_data(asset_path)
    cls = _asset_class(data)
    if class_filter and cls.lower() != class_filter:
        continue
    assets.append({"path": str(data.package_name), "name": str(data.asset_name), "class": cls})

assets.sort(key=lambda a: a["path"])
result["assets"] = assets
result["total"] = len(assets)
`)

var existsScript = python.New("asset_exists", `
path = {{py .Path}}
result["path"] = path
result["exists"] = unreal.EditorAssetLibrary.does_asset_exist(path)
result["is_folder"] = unreal.EditorAssetLibrary.does_directory_exist(path)
`)

var metadataScript = python.New("asset_metadata", `
path = {{py .Path}}
if not unreal.EditorAssetLibrary.does_asset_exist(path):
    _fail("Asset not found: " + path)
    return

data = unreal.EditorAssetLibrary.find_asset_data(path)
asset = data.get_asset()
result["path"] = str(data.package_name)
result["name"] = str(data.asset_name)
result["class"] = _asset_class(data)
result["package_path"] = str(data.package_path)
tags = unreal.EditorAssetLibrary.get_metadata_tag_values(asset) if asset else {}
result["tags"] = {str(k): str(v) for k, v in tags.items()}
result["references"] = [str(p) for p in unreal.EditorAssetLibrary.find_package_referencers_for_asset(path, False)]
`)

var createFolderScript = python.New("asset_create_folder", `
path = {{py .Path}}
result["path"] = path
if unreal.EditorAssetLibrary.does_directory_exist(path):
    result["created"] = False
    _warn("Folder already exists: " + path)
    return
if not unreal.EditorAssetLibrary.make_directory(path):
    _fail("Failed to create folder " + path)
    return
result["created"] = True
`)

var importScript = python.New("asset_import", `
import os

source = {{py .Source}}
if not os.path.isfile(source):
    _fail("Source file not found: " + source)
    return

task = unreal.AssetImportTask()
task.filename = source
task.destination_path = {{py .Destination}}
{{- if .Name}}
task.destination_name = {{py .Name}}
{{- end}}
task.replace_existing = {{py .Replace}}
task.automated = True
task.save = {{py .Save}}
unreal.AssetToolsHelpers.get_asset_tools().import_asset_tasks([task])

imported = [str(p) for p in task.imported_object_paths]
if not imported:
    _fail("Nothing was imported from " + source)
    return
result["imported"] = imported
`)

var duplicateScript = python.New("asset_duplicate", `
source = {{py .Source}}
destination = {{py .Destination}}
if not unreal.EditorAssetLibrary.does_asset_exist(source):
    _fail("Asset not found: " + source)
    return
if unreal.EditorAssetLibrary.does_asset_exist(destination):
    _fail("Destination already exists: " + destination)
    return
if unreal.EditorAssetLibrary.duplicate_asset(source, destination) is None:
    _fail("Failed to duplicate " + source)
    return
result["source"] = source
result["path"] = destination
`)

var renameScript = python.New("asset_rename", `
source = {{py .Source}}
destination = {{py .Destination}}
if not unreal.EditorAssetLibrary.does_asset_exist(source):
    _fail("Asset not found: " + source)
    return
if unreal.EditorAssetLibrary.does_asset_exist(destination):
    _fail("Destination already exists: " + destination)
    return
if not unreal.EditorAssetLibrary.rename_asset(source, destination):
    _fail("Failed to rename " + source)
    return
result["source"] = source
result["path"] = destination
`)

var deleteScript = python.New("asset_delete", `
deleted = []
for path in {{py .Paths}}:
    if not unreal.EditorAssetLibrary.does_asset_exist(path):
        _warn("Asset not found: " + path)
        continue
    if unreal.EditorAssetLibrary.delete_asset(path):
        deleted.append(path)
    else:
        _warn("Failed to delete " + path)

result["deleted"] = deleted
if not deleted:
    _fail("No assets were deleted")
`)

var saveScript = python.New("asset_save", `
saved = []
for path in {{py .Paths}}:
    if unreal.EditorAssetLibrary.does_directory_exist(path) and not unreal.EditorAssetLibrary.does_asset_exist(path):
        ok = unreal.EditorAssetLibrary.save_directory(path, only_if_is_dirty=False, recursive=True)
    elif unreal.EditorAssetLibrary.does_asset_exist(path):
        ok = unreal.EditorAssetLibrary.save_asset(path, only_if_is_dirty=False)
    else:
        _warn("Asset not found: " + path)
        continue
    if ok:
        saved.append(path)
    else:
        _warn("Failed to save " + path)

result["saved"] = saved
if not saved:
    _fail("Nothing was saved")
`)
