package handlers

import (
	"net/http"

	"frvn-service/internal/api/dto"
	"frvn-service/internal/services"
)

// HealthHandler serves the backend liveness report.
// A degraded report is still a 200 so that clients can display its status.
type HealthHandler struct {
	Service *services.HealthService
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r) {
		return
	}

	report := h.Service.Report(r.Context())

	res := dto.HealthResponse{
		Status:       string(report.Status),
		Dependencies: report.Dependencies,
	}
	writeJSON(w, r, http.StatusOK, res)
}
