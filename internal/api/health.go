package api

import (
	"net/http"
	"time"

	"github.com/cakeshelf/cakeshelf/internal/api/respond"
)

// HealthHandler reports process status backed by the service-level health
// aggregate.
type HealthHandler struct {
	isHealthy func() bool
}

// NewHealthHandler creates a health handler. isHealthy may be nil, in which
// case the process is reported healthy as long as it serves requests.
func NewHealthHandler(isHealthy func() bool) *HealthHandler {
	return &HealthHandler{isHealthy: isHealthy}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// CheckHealth handles GET /health.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC().Format(time.RFC3339)
	if h.isHealthy == nil || h.isHealthy() {
		respond.WriteJSON(w, http.StatusOK, healthResponse{Status: "UP", Timestamp: now})
		return
	}
	respond.WriteJSON(w, http.StatusInternalServerError, healthResponse{Status: "DOWN", Timestamp: now})
}
