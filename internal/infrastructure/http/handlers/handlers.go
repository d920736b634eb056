// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nutriplan/v1/internal/ports/inbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

// APIHandlers handles REST API requests
type APIHandlers struct {
	planner   inbound.PlannerService
	assistant inbound.AssistantService
	video     inbound.VideoService
	feedback  inbound.FeedbackService
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(
	planner inbound.PlannerService,
	assistant inbound.AssistantService,
	video inbound.VideoService,
	feedback inbound.FeedbackService,
	logger *zap.Logger,
) *APIHandlers {
	return &APIHandlers{
		planner:   planner,
		assistant: assistant,
		video:     video,
		feedback:  feedback,
		validate:  validator.New(),
		logger:    logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// decode parses and validates a JSON request body
func (h *APIHandlers) decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("Request body must be valid JSON").WithCause(err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// writeJSON writes a JSON response
func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps an application error onto the response envelope
func (h *APIHandlers) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.Wrap(err, "request failed")

	message := appErr.Message
	if appErr.Details != "" {
		message = appErr.Message + ": " + appErr.Details
	}

	h.writeJSON(w, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   message,
	})
}

// generationFailed reports whether err came out of the generation pipeline,
// where callers get a uniform retry hint instead of backend internals
func generationFailed(err error) bool {
	switch apperrors.GetCode(err) {
	case apperrors.CodeTransportError, apperrors.CodeAuthError, apperrors.CodeQuotaExceeded,
		apperrors.CodeModelUnavailable, apperrors.CodeMalformedResponse:
		return true
	default:
		return false
	}
}
