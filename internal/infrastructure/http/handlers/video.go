package handlers

import (
	"net/http"

	"github.com/nutriplan/v1/internal/ports/inbound"
)

type generateVideoRequest struct {
	RecipeName  string   `json:"recipeName" validate:"required"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// GenerateVideoScript handles POST /api/v1/videos/script
func (h *APIHandlers) GenerateVideoScript(w http.ResponseWriter, r *http.Request) {
	var req generateVideoRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	script, err := h.video.GenerateScript(r.Context(), inbound.GenerateVideoCommand{
		RecipeName:  req.RecipeName,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    script,
		Message: "Video script generated successfully",
	})
}

// GenerateVideo handles POST /api/v1/videos
func (h *APIHandlers) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req generateVideoRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.video.GenerateVideo(r.Context(), inbound.GenerateVideoCommand{
		RecipeName:  req.RecipeName,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
		Message: "Video generated successfully",
	})
}

// VideoBudget handles GET /api/v1/videos/budget
func (h *APIHandlers) VideoBudget(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    h.video.Budget(),
	})
}
