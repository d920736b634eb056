package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/application/export"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/infrastructure/http/middleware"
	"github.com/nutriplan/v1/internal/ports/inbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

const planGenerationFailedMessage = "Failed to generate meal plan. Please try again."

type generateMealPlanRequest struct {
	Preferences mealplan.MealPreferences   `json:"preferences"`
	HealthGoals mealplan.HealthGoals       `json:"healthGoals"`
	Budget      mealplan.BudgetConstraints `json:"budget"`
}

type generateRecipeRequest struct {
	Request             string   `json:"request" validate:"required"`
	CuisineType         string   `json:"cuisineType"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	BudgetLimit         float64  `json:"budgetLimit"`
}

type savePlanRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Plan        mealplan.MealPlan `json:"plan"`
}

type setFavoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// GenerateMealPlan handles POST /api/v1/meal-plans/generate
func (h *APIHandlers) GenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	var req generateMealPlanRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	plan, err := h.planner.GenerateMealPlan(r.Context(), inbound.GenerateMealPlanCommand{
		Preferences: req.Preferences,
		Goals:       req.HealthGoals,
		Budget:      req.Budget,
	})
	if err != nil {
		if generationFailed(err) {
			h.logger.Error("Meal plan generation failed", zap.Error(err))
			appErr := apperrors.Wrap(err, "generation failed")
			h.writeJSON(w, appErr.StatusCode(), APIResponse{
				Success: false,
				Error:   planGenerationFailedMessage,
			})
			return
		}
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    plan,
		Message: "Meal plan generated successfully",
	})
}

// GenerateRecipe handles POST /api/v1/recipes/generate
func (h *APIHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req generateRecipeRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	recipe, err := h.planner.GenerateRecipe(r.Context(), inbound.GenerateRecipeCommand{
		Request:             req.Request,
		CuisineType:         req.CuisineType,
		DietaryRestrictions: req.DietaryRestrictions,
		BudgetLimit:         req.BudgetLimit,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipe,
		Message: "Recipe generated successfully",
	})
}

// SavePlan handles POST /api/v1/meal-plans
func (h *APIHandlers) SavePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req savePlanRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	saved, err := h.planner.SavePlan(r.Context(), inbound.SavePlanCommand{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Plan:        req.Plan,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    saved,
		Message: "Meal plan saved successfully",
	})
}

// ListPlans handles GET /api/v1/meal-plans
func (h *APIHandlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	list, err := h.planner.ListPlans(r.Context(), userID, pagination(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}

// ListFavorites handles GET /api/v1/meal-plans/favorites
func (h *APIHandlers) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	list, err := h.planner.ListFavorites(r.Context(), userID, pagination(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: list})
}

// GetPlan handles GET /api/v1/meal-plans/{id}
func (h *APIHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	id, err := planID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	plan, err := h.planner.GetPlan(r.Context(), userID, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: plan})
}

// DeletePlan handles DELETE /api/v1/meal-plans/{id}
func (h *APIHandlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	id, err := planID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.planner.DeletePlan(r.Context(), userID, id); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Meal plan deleted successfully",
	})
}

// SetFavorite handles PUT /api/v1/meal-plans/{id}/favorite
func (h *APIHandlers) SetFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	id, err := planID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req setFavoriteRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.planner.SetFavorite(r.Context(), userID, id, req.Favorite); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Favorite flag updated",
	})
}

// ShoppingList handles POST /api/v1/meal-plans/shopping-list.
// The plan travels in the body so unsaved plans can be exported too.
func (h *APIHandlers) ShoppingList(w http.ResponseWriter, r *http.Request) {
	var plan mealplan.MealPlan
	if err := h.decode(r, &plan); err != nil {
		h.writeError(w, err)
		return
	}

	csv := export.ShoppingListCSV(&plan)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="shopping-list.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}

// Calendar handles POST /api/v1/meal-plans/calendar?date=2006-01-02
func (h *APIHandlers) Calendar(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.writeError(w, apperrors.NewBadRequestError("date must be formatted as YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	var plan mealplan.MealPlan
	if err := h.decode(r, &plan); err != nil {
		h.writeError(w, err)
		return
	}

	ics := export.CalendarICS(&plan, date)

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", `attachment; filename="meal-plan.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ics))
}

// requireUserID resolves the caller identity or writes a 400
func (h *APIHandlers) requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.UserID(r.Context())
	if userID == "" {
		h.writeError(w, apperrors.NewBadRequestError("X-User-ID header is required"))
		return "", false
	}
	return userID, true
}

// planID parses the {id} route parameter
func planID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("Plan ID must be a valid UUID")
	}
	return id, nil
}

// pagination reads page and pageSize query parameters
func pagination(r *http.Request) inbound.PaginationParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	return inbound.PaginationParams{Page: page, PageSize: pageSize}
}
