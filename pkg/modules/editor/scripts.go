package editor

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

const levelEditor = `level_editor = unreal.get_editor_subsystem(unreal.LevelEditorSubsystem)
`

var versionScript = python.New("editor_version", levelEditor+`
world = unreal.get_editor_subsystem(unreal.UnrealEditorSubsystem).get_editor_world()
result["engine_version"] = unreal.SystemLibrary.get_engine_version()
result["project"] = unreal.SystemLibrary.get_game_name()
result["level"] = world.get_path_name().split(".")[0] if world else None
result["playing"] = level_editor.is_in_play_in_editor()
`)

var playScript = python.New("editor_play", levelEditor+`
if level_editor.is_in_play_in_editor():
    _warn("Play In Editor is already running")
else:
    level_editor.editor_request_begin_play()
result["playing"] = True
`)

var stopScript = python.New("editor_stop", levelEditor+`
if not level_editor.is_in_play_in_editor():
    _warn("Play In Editor is not running")
else:
    level_editor.editor_request_end_play()
result["playing"] = False
`)

var pauseScript = python.New("editor_pause", levelEditor+`
if not level_editor.is_in_play_in_editor():
    _fail("Play In Editor is not running")
    return
world = unreal.get_editor_subsystem(unreal.UnrealEditorSubsystem).get_game_world()
if world is None:
    _fail("No game world is active")
    return
paused = not unreal.GameplayStatics.is_game_paused(world)
unreal.GameplayStatics.set_game_paused(world, paused)
result["paused"] = paused
`)

var isPlayingScript = python.New("editor_is_playing", levelEditor+`
result["playing"] = level_editor.is_in_play_in_editor()
`)

var getCameraScript = python.New("editor_get_camera", `
ok, location, rotation = unreal.get_editor_subsystem(unreal.UnrealEditorSubsystem).get_level_viewport_camera_info()
if not ok:
    _fail("No level viewport is active")
    return
result["location"] = _vec(location)
result["rotation"] = _rot(rotation)
`)

var setCameraScript = python.New("editor_set_camera", `
subsystem = unreal.get_editor_subsystem(unreal.UnrealEditorSubsystem)
ok, location, rotation = subsystem.get_level_viewport_camera_info()
if not ok:
    _fail("No level viewport is active")
    return
{{- if .Location}}
location = {{py .Location}}
{{- end}}
{{- if .Rotation}}
rotation = {{py .Rotation}}
{{- end}}
subsystem.set_level_viewport_camera_info(location, rotation)
result["location"] = _vec(location)
result["rotation"] = _rot(rotation)
`)

var openLevelScript = python.New("editor_open_level", levelEditor+`
level = {{py .Level}}
if not unreal.EditorAssetLibrary.does_asset_exist(level):
    _fail("Level not found: " + level)
    return
if level_editor.is_in_play_in_editor():
    _fail("Stop Play In Editor before opening a level")
    return
if not level_editor.load_level(level):
    _fail("Failed to load level " + level)
    return
result["level"] = level
`)

var saveLevelScript = python.New("editor_save_level", levelEditor+`
if not level_editor.save_current_level():
    _fail("Failed to save the current level")
    return
world = unreal.get_editor_subsystem(unreal.UnrealEditorSubsystem).get_editor_world()
result["level"] = world.get_path_name().split(".")[0] if world else None
`)
