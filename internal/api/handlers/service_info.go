package handlers

import (
	"net/http"

	"frvn-service/internal/api/dto"
)

// ServiceInfoHandler reports which project and environment is running.
type ServiceInfoHandler struct {
	ProjectName string
	Env         string
}

func (h *ServiceInfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ServiceInfoResponse{
		Service: h.ProjectName,
		Env:     h.Env,
	})
}
