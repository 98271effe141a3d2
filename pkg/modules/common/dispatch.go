package common

import (
	"context"
	"errors"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
	"github.com/shaowenchen/unreal-mcp-server/pkg/python"
	"github.com/shaowenchen/unreal-mcp-server/pkg/queue"
	"github.com/shaowenchen/unreal-mcp-server/pkg/result"
)

// ActionFunc runs one action of a tool
type ActionFunc func(ctx context.Context, args Args) result.Envelope

// Actions maps action names to their implementation
type Actions map[string]ActionFunc

// Names returns the supported actions in sorted order
func (a Actions) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handler dispatches a tool call to the action named by its "action" argument
func Handler(logger *zap.Logger, toolName string, actions Actions) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := ArgsOf(request)
		action, _ := args.String("action")

		run, ok := actions[action]
		if !ok {
			env := result.Failf("unknown action %q for %s", action, toolName).
				With("supported_actions", actions.Names())
			return result.ToolResult(env), nil
		}

		logger.Debug("Running tool action",
			zap.String("tool", toolName),
			zap.String("action", action))

		env := run(ctx, args)
		if !env.Success {
			logger.Info("Tool action failed",
				zap.String("tool", toolName),
				zap.String("action", action),
				zap.String("error", env.Error))
		}
		return result.ToolResult(env.With("action", action)), nil
	}
}

// Invalid reports a validation failure before anything reaches the editor
func Invalid(err error) result.Envelope {
	return result.Fail("Invalid arguments", err.Error())
}

// EngineError converts a bridge failure into an envelope
func EngineError(opts result.Options, err error) result.Envelope {
	msg := opts.FailureMessage
	if msg == "" {
		msg = "Operation failed"
	}
	env := result.FromError(msg, err)

	var remote *bridge.RemoteError
	switch {
	case errors.Is(err, bridge.ErrNotConnected):
		env = env.WithWarning("Unreal Editor is not reachable; check that it is running with the Remote Control API plugin enabled")
	case errors.Is(err, bridge.ErrPythonDisabled):
		env = env.WithWarning("Set unreal.allowPython to true to run raw Python")
	case errors.Is(err, bridge.ErrCommandBlocked):
		env = env.WithWarning("Commands that quit or crash the editor are not allowed")
	case errors.Is(err, queue.ErrQueueFull):
		env = env.WithWarning("The editor is busy; retry shortly")
	case errors.As(err, &remote):
		env = env.With("status_code", remote.StatusCode)
	}
	return env
}

// RunScript renders a generated snippet, executes it and interprets the output
func RunScript(ctx context.Context, engine Engine, script *python.Script, data any, opts result.Options, callOpts ...bridge.Option) result.Envelope {
	src, err := script.Render(data)
	if err != nil {
		return result.FromError("Failed to build script", err)
	}

	callOpts = append([]bridge.Option{bridge.Generated(), bridge.WithName(script.Name())}, callOpts...)
	res, err := engine.ExecutePython(ctx, src, callOpts...)
	if err != nil {
		return EngineError(opts, err)
	}
	return result.Interpret(res.Output(), opts)
}

// Remote interprets the answer of a direct Remote Control call
func Remote(body []byte, err error, opts result.Options) result.Envelope {
	if err != nil {
		return EngineError(opts, err)
	}
	return result.FromRemote(body, opts)
}
