package handlers

import (
	"net/http"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/inbound"
)

type chatRequest struct {
	Message     string             `json:"message" validate:"required"`
	CurrentPlan *mealplan.MealPlan `json:"currentPlan"`
}

// Chat handles POST /api/v1/assistant
func (h *APIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	reply, err := h.assistant.Chat(r.Context(), inbound.ChatCommand{
		Message:     req.Message,
		CurrentPlan: req.CurrentPlan,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: reply})
}
