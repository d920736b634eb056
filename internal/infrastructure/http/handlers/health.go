package handlers

import (
	"net/http"
	"time"
)

// HealthCheck handles GET /api/v1/health
func (h *APIHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"budget":    h.video.Budget(),
		},
		Message: "Service is healthy",
	})
}
