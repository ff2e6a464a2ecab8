package handlers

import "net/http"

type HealthHandler struct {
	version string
}

func NewHealthHandler(version string) *HealthHandler { return &HealthHandler{version: version} }

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "staffdesk-api"})
}

// Index describes the API for anyone poking the root path.
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "StaffDesk Employee API",
		"version": h.version,
		"docs":    "/docs/index.html",
		"endpoints": map[string]string{
			"auth":      "/api/auth",
			"employees": "/api/employees",
			"health":    "/health",
		},
	})
}
