package docs

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/cmd/version"
	"github.com/shaowenchen/unreal-mcp-server/pkg/modules"
)

const serviceName = "unreal-mcp-server"

// Collector collects tool information from all enabled modules
type Collector struct {
	registered []modules.Registered
	logger     *zap.Logger
}

// NewCollector creates a new docs collector over already built modules
func NewCollector(registered []modules.Registered, logger *zap.Logger) *Collector {
	return &Collector{
		registered: registered,
		logger:     logger,
	}
}

// CollectToolsInfo collects tool information from all enabled modules
func (c *Collector) CollectToolsInfo() ToolsInfoResponse {
	resp := ToolsInfoResponse{
		Service: serviceName,
		Version: version.Get().Version,
		Modules: []string{},
		Tools:   []ToolInfo{},
	}

	for _, r := range c.registered {
		resp.Modules = append(resp.Modules, r.Name)
		for _, serverTool := range r.Tools {
			resp.Tools = append(resp.Tools, ToolInfo{
				Name:        serverTool.Tool.Name,
				Description: serverTool.Tool.Description,
				Parameters:  convertToolParameters(serverTool.Tool.InputSchema),
				Actions:     actionsOf(serverTool.Tool.InputSchema),
				Module:      r.Name,
			})
		}
	}
	resp.TotalTools = len(resp.Tools)
	return resp
}

// convertToolParameters converts an MCP input schema to a flat parameter map
func convertToolParameters(schema mcp.ToolInputSchema) map[string]ParameterInfo {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	params := make(map[string]ParameterInfo, len(schema.Properties))
	for name, raw := range schema.Properties {
		def, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		info := ParameterInfo{Required: required[name]}
		info.Type, _ = def["type"].(string)
		info.Description, _ = def["description"].(string)
		info.Enum = stringList(def["enum"])
		params[name] = info
	}
	return params
}

// actionsOf returns the values accepted by the action parameter
func actionsOf(schema mcp.ToolInputSchema) []string {
	def, ok := schema.Properties["action"].(map[string]any)
	if !ok {
		return nil
	}
	actions := stringList(def["enum"])
	sort.Strings(actions)
	return actions
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
