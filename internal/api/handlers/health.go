package handlers

import (
	"net/http"

	"github.com/nrjt/eduplatform/internal/portal"
)

// healthStatus is reported by the health check
type healthStatus struct {
	Folders  int `json:"folders"`
	Files    int `json:"files"`
	Sessions int `json:"sessions"`
}

// HealthHandler reports whether the resource store answers
type HealthHandler struct {
	BaseHandler
	portal *portal.Portal
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(p *portal.Portal) *HealthHandler {
	return &HealthHandler{portal: p}
}

// HealthCheck answers 503 when the resource store cannot be queried
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, req *http.Request) {
	tables, err := h.portal.TableInfo()
	if err != nil {
		h.sendError(w, http.StatusServiceUnavailable, "Resource store unavailable: "+err.Error())
		return
	}

	status := healthStatus{Sessions: h.portal.Sessions().Len()}
	for _, table := range tables {
		switch table.Name {
		case "folders":
			status.Folders = table.RowCount
		case "files":
			status.Files = table.RowCount
		}
	}
	h.sendSuccess(w, "EduPlatform API is healthy", status)
}
