// Package planner implements the meal plan and recipe generation use cases:
// prompt building, the model call through the generation chain, JSON
// extraction, normalization, and saved-plan management.
package planner

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/application/generation"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements inbound.PlannerService
type Service struct {
	chain  *generation.Chain
	plans  outbound.MealPlanRepository
	logger *zap.Logger
}

// NewService creates the planner service
func NewService(chain *generation.Chain, plans outbound.MealPlanRepository, logger *zap.Logger) *Service {
	return &Service{
		chain:  chain,
		plans:  plans,
		logger: logger.Named("planner-service"),
	}
}

// GenerateMealPlan produces one full day's plan for the given inputs
func (s *Service) GenerateMealPlan(ctx context.Context, cmd inbound.GenerateMealPlanCommand) (*mealplan.MealPlan, error) {
	if err := cmd.Preferences.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := cmd.Goals.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := cmd.Budget.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	s.logger.Info("Generating meal plan",
		zap.String("cuisine", cmd.Preferences.CuisineType),
		zap.Int("calorie_target", cmd.Goals.CalorieTarget),
		zap.Float64("daily_budget", cmd.Budget.DailyBudget))

	prompt := BuildMealPlanPrompt(cmd.Preferences, cmd.Goals, cmd.Budget)
	text, err := s.chain.Generate(ctx, "meal_plan", prompt)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var wire planWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apperrors.NewMalformedResponseError("meal plan JSON does not match the expected schema", text).WithCause(err)
	}

	plan, err := NormalizeMealPlan(wire, cmd.Preferences, cmd.Goals, cmd.Budget)
	if err != nil {
		return nil, err
	}

	for _, warning := range plan.Warnings {
		s.logger.Warn("Meal plan validation warning", zap.String("warning", warning))
	}

	s.logger.Info("Meal plan generated",
		zap.Float64("total_cost", plan.TotalCost),
		zap.Float64("total_calories", plan.TotalNutrition.Calories),
		zap.Int("warnings", len(plan.Warnings)))

	return plan, nil
}

// GenerateRecipe produces a single recipe from free-text ingredients
func (s *Service) GenerateRecipe(ctx context.Context, cmd inbound.GenerateRecipeCommand) (*mealplan.GeneratedRecipe, error) {
	if strings.TrimSpace(cmd.Request) == "" {
		return nil, apperrors.NewValidationError("ingredients are required")
	}

	s.logger.Info("Generating recipe", zap.String("cuisine", cmd.CuisineType))

	prompt := BuildRecipePrompt(cmd.Request, cmd.CuisineType)
	text, err := s.chain.Generate(ctx, "recipe", prompt)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var wire recipeWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, apperrors.NewMalformedResponseError("recipe JSON does not match the expected schema", text).WithCause(err)
	}
	if strings.TrimSpace(wire.Name) == "" {
		return nil, apperrors.NewMalformedResponseError("recipe is missing a name", text)
	}

	return &mealplan.GeneratedRecipe{
		Name:         strings.TrimSpace(wire.Name),
		Ingredients:  wire.Ingredients,
		Instructions: wire.Instructions,
		CookingTime:  wire.CookingTime,
		Difficulty:   mealplan.Difficulty(wire.Difficulty),
		Nutrition: mealplan.RecipeNutrition{
			Calories: wire.Nutrition.Calories.Float(),
			Protein:  wire.Nutrition.Protein.Float(),
			Carbs:    wire.Nutrition.Carbs.Float(),
			Fat:      wire.Nutrition.Fat.Float(),
		},
		EstimatedCost: wire.EstimatedCost.Float(),
	}, nil
}

// GenerateVideoScript produces the scene list for a cooking video. The video
// pipeline consumes this; it is not part of the inbound planner interface.
func (s *Service) GenerateVideoScript(ctx context.Context, recipeName string, ingredients, steps []string) (mealplan.VideoScript, error) {
	if strings.TrimSpace(recipeName) == "" {
		return nil, apperrors.NewValidationError("recipe name is required")
	}

	prompt := BuildVideoScriptPrompt(recipeName, ingredients, steps)
	text, err := s.chain.Generate(ctx, "video_script", prompt)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSONArray(text)
	if err != nil {
		return nil, err
	}

	var wires []sceneWire
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, apperrors.NewMalformedResponseError("video script JSON does not match the expected schema", text).WithCause(err)
	}
	if len(wires) == 0 {
		return nil, apperrors.NewMalformedResponseError("video script has no scenes", text)
	}

	script := make(mealplan.VideoScript, 0, len(wires))
	for _, w := range wires {
		script = append(script, mealplan.Scene{
			Visual:    w.Visual,
			Narration: w.Narration,
			Duration:  w.Duration.Float(),
		})
	}
	return script, nil
}

// SavePlan persists a generated plan for a user
func (s *Service) SavePlan(ctx context.Context, cmd inbound.SavePlanCommand) (*mealplan.SavedMealPlan, error) {
	saved, err := mealplan.NewSavedMealPlan(cmd.UserID, cmd.Name, cmd.Description, cmd.Tags, cmd.Plan)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.plans.Create(ctx, saved); err != nil {
		return nil, err
	}

	s.logger.Info("Meal plan saved",
		zap.String("plan_id", saved.ID.String()),
		zap.String("user_id", saved.UserID))

	return saved, nil
}

// GetPlan loads one saved plan owned by the user
func (s *Service) GetPlan(ctx context.Context, userID string, id uuid.UUID) (*mealplan.SavedMealPlan, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	return s.plans.FindByID(ctx, userID, id)
}

// ListPlans returns the user's saved plans, most recently updated first
func (s *Service) ListPlans(ctx context.Context, userID string, params inbound.PaginationParams) (*inbound.SavedPlanList, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	plans, total, err := s.plans.FindByUserID(ctx, userID, params.Offset(), params.Limit())
	if err != nil {
		return nil, err
	}
	return s.planList(plans, total, params), nil
}

// ListFavorites returns the user's favorite plans
func (s *Service) ListFavorites(ctx context.Context, userID string, params inbound.PaginationParams) (*inbound.SavedPlanList, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	plans, total, err := s.plans.FindFavorites(ctx, userID, params.Offset(), params.Limit())
	if err != nil {
		return nil, err
	}
	return s.planList(plans, total, params), nil
}

func (s *Service) planList(plans []*mealplan.SavedMealPlan, total int, params inbound.PaginationParams) *inbound.SavedPlanList {
	page := params.Page
	if page < 1 {
		page = 1
	}
	return &inbound.SavedPlanList{
		Plans:    plans,
		Total:    total,
		Page:     page,
		PageSize: params.Limit(),
	}
}

// DeletePlan removes a saved plan owned by the user
func (s *Service) DeletePlan(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	return s.plans.Delete(ctx, userID, id)
}

// SetFavorite flags or unflags a saved plan as favorite
func (s *Service) SetFavorite(ctx context.Context, userID string, id uuid.UUID, favorite bool) error {
	if userID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	return s.plans.SetFavorite(ctx, userID, id, favorite)
}
