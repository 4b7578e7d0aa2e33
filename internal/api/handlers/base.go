package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nrjt/eduplatform/internal/catalog"
	"github.com/nrjt/eduplatform/internal/db"
	"github.com/nrjt/eduplatform/internal/logging"
	"github.com/nrjt/eduplatform/internal/types"
	"github.com/nrjt/eduplatform/internal/ui"
)

// BaseHandler provides common functionality for all API handlers
type BaseHandler struct{}

// sendJSON sends a JSON response with the given status code and data
func (h *BaseHandler) sendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response with the given status code and message
func (h *BaseHandler) sendError(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, types.APIResponse{
		Success: false,
		Message: message,
	})
}

// sendSuccess sends a success response with the given data
func (h *BaseHandler) sendSuccess(w http.ResponseWriter, message string, data any) {
	h.sendJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// sendFailure sends an error response whose status is derived from err and
// logs server-side failures
func (h *BaseHandler) sendFailure(w http.ResponseWriter, req *http.Request, action string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.WithContext(req.Context()).Error(action+" failed", zap.Error(err))
	}
	h.sendError(w, status, fmt.Sprintf("Failed to %s: %v", action, err))
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrUnknownStandard),
		errors.Is(err, catalog.ErrUnknownBoard),
		errors.Is(err, db.ErrFolderNotFound),
		errors.Is(err, db.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ui.ErrFolderNameRequired),
		errors.Is(err, types.ErrInvalidDescriptor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// scopeAndKind reads {standard}, {kind} and the board query parameter
func scopeAndKind(req *http.Request) (types.Scope, types.Kind, error) {
	kind, err := types.ParseKind(chi.URLParam(req, "kind"))
	if err != nil {
		return types.Scope{}, "", err
	}
	scope := types.Scope{
		Standard: chi.URLParam(req, "standard"),
		Board:    req.URL.Query().Get("board"),
	}
	return scope, kind, nil
}
