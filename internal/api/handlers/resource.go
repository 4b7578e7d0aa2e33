package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nrjt/eduplatform/internal/api/models"
	"github.com/nrjt/eduplatform/internal/portal"
	"github.com/nrjt/eduplatform/internal/types"
)

// ResourceHandler handles the resource store endpoints
type ResourceHandler struct {
	BaseHandler
	portal   *portal.Portal
	validate *validator.Validate
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(p *portal.Portal) *ResourceHandler {
	return &ResourceHandler{
		portal:   p,
		validate: validator.New(),
	}
}

// ListResources handles the list resources endpoint
func (h *ResourceHandler) ListResources(w http.ResponseWriter, req *http.Request) {
	scope, kind, err := scopeAndKind(req)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	folders, err := h.portal.Resources(scope, kind)
	if err != nil {
		h.sendFailure(w, req, "list resources", err)
		return
	}

	h.sendSuccess(w, "Resources retrieved successfully", folders)
}

// Upload handles the upload endpoint. It applies the same descriptor the
// upload modal would hand over.
func (h *ResourceHandler) Upload(w http.ResponseWriter, req *http.Request) {
	scope, kind, err := scopeAndKind(req)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	var request models.UploadRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		if errors.Is(err, types.ErrInvalidDescriptor) {
			h.sendError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(request); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.sendError(w, http.StatusBadRequest, "folder_name is required")
			return
		}
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	if request.Descriptor.Kind() == "" {
		h.sendError(w, http.StatusBadRequest, "descriptor is required")
		return
	}

	if err := h.portal.Upload(scope, kind, request.FolderName, request.Descriptor); err != nil {
		h.sendFailure(w, req, "apply upload", err)
		return
	}

	folders, err := h.portal.Resources(scope, kind)
	if err != nil {
		h.sendFailure(w, req, "list resources", err)
		return
	}

	h.sendJSON(w, http.StatusCreated, types.APIResponse{
		Success: true,
		Message: "Upload applied successfully",
		Data:    folders,
	})
}

// DeleteFolder handles the delete folder endpoint
func (h *ResourceHandler) DeleteFolder(w http.ResponseWriter, req *http.Request) {
	scope, kind, err := scopeAndKind(req)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder := chi.URLParam(req, "folder")
	if err := h.portal.DeleteFolder(scope, kind, folder); err != nil {
		h.sendFailure(w, req, "delete folder", err)
		return
	}

	h.sendSuccess(w, "Folder deleted successfully", nil)
}
