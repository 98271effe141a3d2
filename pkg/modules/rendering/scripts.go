package rendering

import "github.com/shaowenchen/unreal-mcp-server/pkg/python"

var getCVarScript = python.New("rendering_get_cvar", `
name = {{py .Name}}
lib = unreal.SystemLibrary
if hasattr(lib, "get_console_variable_string_value"):
    raw = lib.get_console_variable_string_value(name)
else:
    raw = str(lib.get_console_variable_float_value(name))
if raw is None or raw == "":
    _fail("Console variable not found: " + name)
    return
result["name"] = name
result["value"] = raw
result["int_value"] = lib.get_console_variable_int_value(name)
result["float_value"] = lib.get_console_variable_float_value(name)
`)

var screenshotScript = python.New("rendering_screenshot", `
automation = unreal.AutomationLibrary
task = automation.take_high_res_screenshot({{py .Width}}, {{py .Height}}, {{py .Filename}})
if task is None:
    _fail("Screenshot could not be scheduled")
    return
directory = unreal.Paths.convert_relative_path_to_full(unreal.Paths.screen_shot_dir())
result["filename"] = {{py .Filename}}
result["directory"] = directory
result["path"] = directory + {{py .Filename}}
result["width"] = {{py .Width}}
result["height"] = {{py .Height}}
`)
