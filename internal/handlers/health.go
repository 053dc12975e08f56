package handlers

import (
	"net/http"
	"time"

	"webhook-verifier/internal/common/logging"
)

// HealthCheck reports whether the service and its optional dependencies are up.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r); err != nil {
			h.logger.Warn("Health check failed", logging.Err(err))
			h.sendError(w, http.StatusServiceUnavailable, "unhealthy")
			return
		}
	}

	h.sendJSONResponse(w, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}
