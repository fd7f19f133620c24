package controller

import (
	"net/http"
)

type HealthController struct {
	backendURL string
}

func NewHealthController(backendURL string) *HealthController {
	return &HealthController{backendURL: backendURL}
}

func (h *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness reports whether a payment backend is configured. It does not
// contact the backend.
func (h *HealthController) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.backendURL == "" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "payment backend not configured",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready", "backend": h.backendURL})
}
