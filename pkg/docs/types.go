package docs

// ParameterInfo describes one tool parameter
type ParameterInfo struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// ToolInfo represents information about a tool
type ToolInfo struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Parameters  map[string]ParameterInfo `json:"parameters"`
	Actions     []string                 `json:"actions,omitempty"`
	Module      string                   `json:"module"`
}

// ToolsInfoResponse represents the response structure for /mcp/docs
type ToolsInfoResponse struct {
	Service    string     `json:"service"`
	Version    string     `json:"version"`
	TotalTools int        `json:"total_tools"`
	Modules    []string   `json:"enabled_modules"`
	Tools      []ToolInfo `json:"tools"`
}
