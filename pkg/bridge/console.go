package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/shaowenchen/unreal-mcp-server/pkg/queue"
)

const systemLibrary = "/Script/Engine.Default__KismetSystemLibrary"

// commands that terminate, deliberately crash or stall the editor with
// forced garbage collection
var blockedCommands = []string{
	"quit",
	"exit",
	"crash",
	"gpf",
	"debug crash",
	"debug assert",
	"debug ensure",
	"debug fatal",
	"debug gpf",
	"debug oom",
	"debug stackoverflow",
	"debug threadcrash",
	"debug hang",
	"r.gpucrash",
	"r.gpuhang",
	"gc.collectgarbageeveryframe",
	"obj gc",
	"obj trygc",
	"obj collectgarbage",
}

// BlockedSegment returns the first blocked command found in a console line.
// Lines chained with '|' or newlines are checked segment by segment.
func BlockedSegment(command string) (string, bool) {
	segments := strings.FieldsFunc(command, func(r rune) bool {
		return r == '|' || r == '\n' || r == '\r'
	})
	for _, seg := range segments {
		norm := strings.ToLower(strings.Join(strings.Fields(seg), " "))
		for _, blocked := range blockedCommands {
			if norm == blocked || strings.HasPrefix(norm, blocked+" ") {
				return strings.TrimSpace(seg), true
			}
		}
	}
	return "", false
}

// IsStatCommand reports whether the command toggles an engine stat overlay
func IsStatCommand(command string) bool {
	norm := strings.ToLower(strings.TrimSpace(command))
	return norm == "stat" || strings.HasPrefix(norm, "stat ")
}

// ConsoleCommand runs a console command in the editor world. Stat commands
// are paced with the stat delay.
func (b *Bridge) ConsoleCommand(ctx context.Context, command string, opts ...Option) ([]byte, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, fmt.Errorf("console command is empty")
	}
	if seg, blocked := BlockedSegment(command); blocked {
		return nil, fmt.Errorf("%w: %q", ErrCommandBlocked, seg)
	}

	if IsStatCommand(command) {
		opts = append([]Option{WithKind(queue.KindStat)}, opts...)
	}
	o := b.collect("console "+firstWord(command), opts)

	params := map[string]any{
		"WorldContextObject": nil,
		"Command":            command,
		"SpecificPlayer":     nil,
	}
	return b.call(ctx, systemLibrary, "ExecuteConsoleCommand", params, false, o)
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}
