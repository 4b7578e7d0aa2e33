package handlers

import (
	"net/http"

	"github.com/nrjt/eduplatform/internal/catalog"
)

// CatalogHandler serves the standards catalog
type CatalogHandler struct {
	BaseHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListStandards handles the list standards endpoint
func (h *CatalogHandler) ListStandards(w http.ResponseWriter, req *http.Request) {
	h.sendSuccess(w, "Standards retrieved successfully", catalog.Standards())
}
