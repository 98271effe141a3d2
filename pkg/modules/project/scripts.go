package project

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

var infoScript = python.New("project_info", `
sys_lib = unreal.SystemLibrary
world = unreal.get_editor_subsystem(unreal.UnrealEditorSubsystem).get_editor_world()
result["project_name"] = sys_lib.get_game_name()
result["project_dir"] = unreal.Paths.convert_relative_path_to_full(unreal.Paths.project_dir())
result["engine_version"] = sys_lib.get_engine_version()
result["platform"] = sys_lib.get_platform_user_name()
result["level"] = world.get_path_name().split(".")[0] if world else None
result["actor_count"] = len(_actors())
`)

var buildLightingScript = python.New("project_build_lighting", `
subsystem = unreal.get_editor_subsystem(unreal.LevelEditorSubsystem)
ok = subsystem.build_light_maps({{py .Quality}}, {{py .ReflectionCaptures}})
if not ok:
    _fail("Lighting build failed; check the editor message log")
    return
result["quality"] = str({{py .Quality}})
`)

var compileBlueprintScript = python.New("project_compile_blueprint", `
path = {{py .Path}}
blueprint = unreal.EditorAssetLibrary.load_asset(path)
if blueprint is None:
    _fail("Blueprint not found: " + path)
    return
if not isinstance(blueprint, unreal.Blueprint):
    _fail(path + " is not a Blueprint")
    return
unreal.BlueprintEditorLibrary.compile_blueprint(blueprint)
status = blueprint.get_editor_property("status") if hasattr(blueprint, "status") else None
if status is not None and status == unreal.BlueprintStatus.BS_ERROR:
    _fail("Blueprint compiled with errors: " + path)
    return
result["path"] = path
result["status"] = str(status) if status is not None else "compiled"
`)

var saveAllScript = python.New("project_save_all", `
ok = unreal.EditorLoadingAndSavingUtils.save_dirty_packages({{py .IncludeMaps}}, True)
if not ok:
    _fail("Some packages could not be saved")
    return
`)
