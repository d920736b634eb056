package handlers

import (
	"net/http"

	"github.com/nutriplan/v1/internal/infrastructure/http/middleware"
	"github.com/nutriplan/v1/internal/ports/inbound"
)

type feedbackRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback"`
}

// SubmitFeedback handles POST /api/v1/feedback.
// Anonymous submissions are allowed: the user header is optional here.
func (h *APIHandlers) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	fb, err := h.feedback.Submit(r.Context(), inbound.FeedbackCommand{
		UserID:   middleware.UserID(r.Context()),
		Rating:   req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    fb,
		Message: "Feedback submitted successfully",
	})
}

// ListFeedback handles GET /api/v1/feedback
func (h *APIHandlers) ListFeedback(w http.ResponseWriter, r *http.Request) {
	list, err := h.feedback.List(r.Context(), pagination(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}
