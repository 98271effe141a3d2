package docs

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/shaowenchen/unreal-mcp-server/pkg/modules"
)

// Handler handles documentation requests
type Handler struct {
	collector *Collector
	logger    *zap.Logger
}

// NewHandler creates a new docs handler
func NewHandler(registered []modules.Registered, logger *zap.Logger) *Handler {
	return &Handler{
		collector: NewCollector(registered, logger),
		logger:    logger,
	}
}

// HandleDocs handles the /mcp/docs endpoint
func (h *Handler) HandleDocs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := json.Marshal(h.collector.CollectToolsInfo())
	if err != nil {
		h.logger.Error("Failed to encode tools info", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("Failed to write tools info", zap.Error(err))
	}
}
