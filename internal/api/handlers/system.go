package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nrjt/eduplatform/internal/portal"
)

// SystemHandler handles system-related endpoints
type SystemHandler struct {
	BaseHandler
	portal *portal.Portal
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(p *portal.Portal) *SystemHandler {
	return &SystemHandler{
		portal: p,
	}
}

// Reset handles the reset endpoint
func (h *SystemHandler) Reset(w http.ResponseWriter, req *http.Request) {
	if err := h.portal.Reset(); err != nil {
		h.sendFailure(w, req, "reset resource store", err)
		return
	}

	h.sendSuccess(w, "Resource store reset successfully", nil)
}

// GetTables handles the get tables endpoint
func (h *SystemHandler) GetTables(w http.ResponseWriter, req *http.Request) {
	tables, err := h.portal.TableInfo()
	if err != nil {
		h.sendFailure(w, req, "get table info", err)
		return
	}

	h.sendSuccess(w, "Tables retrieved successfully", tables)
}

// GetTableCount handles the get table count endpoint
func (h *SystemHandler) GetTableCount(w http.ResponseWriter, req *http.Request) {
	tableName := chi.URLParam(req, "tableName")
	if tableName == "" {
		h.sendError(w, http.StatusBadRequest, "table name is required")
		return
	}

	tables, err := h.portal.TableInfo()
	if err != nil {
		h.sendFailure(w, req, "get table count", err)
		return
	}

	for _, table := range tables {
		if table.Name != tableName {
			continue
		}
		response := map[string]any{
			"table_name": tableName,
			"count":      table.RowCount,
		}
		h.sendSuccess(w, "Table count retrieved successfully", response)
		return
	}

	h.sendError(w, http.StatusNotFound, "unknown table: "+tableName)
}

// GetConfig handles the get config endpoint
func (h *SystemHandler) GetConfig(w http.ResponseWriter, req *http.Request) {
	config := h.portal.Config()
	h.sendSuccess(w, "Config retrieved successfully", config)
}
