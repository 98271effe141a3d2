package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/cmd/version"
	"github.com/shaowenchen/unreal-mcp-server/pkg/bridge"
)

// StatusSource reports the editor connection state
type StatusSource interface {
	Status() bridge.Status
}

// HealthResponse is the /health payload
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Tools   int           `json:"tools"`
	Editor  bridge.Status `json:"editor"`
}

// HealthHandler reports liveness. The server is healthy even when the
// editor is unreachable; the editor field carries the connection state.
type HealthHandler struct {
	source StatusSource
	tools  int
	logger *zap.Logger
}

// NewHealthHandler creates a health handler
func NewHealthHandler(source StatusSource, tools int, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{source: source, tools: tools, logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := HealthResponse{
		Status:  "ok",
		Version: version.BuildVersion,
		Tools:   h.tools,
	}
	if h.source != nil {
		resp.Editor = h.source.Status()
		if !resp.Editor.Connected {
			resp.Status = "degraded"
		}
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("Failed to encode health response", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("Failed to write health response", zap.Error(err))
	}
}
