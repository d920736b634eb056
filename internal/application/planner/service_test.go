package planner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/application/generation"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/inbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validPlanJSON = `{
	"breakfast": {"name": "Poha", "type": "breakfast", "cost": 25,
		"nutrition": {"calories": 350, "protein": 8, "carbs": 60, "fat": 10, "fiber": 4, "sugar": 6},
		"ingredients": ["poha", "onion"], "instructions": ["rinse", "cook"]},
	"lunch": {"name": "Dal Rice", "type": "lunch", "cost": 60,
		"nutrition": {"calories": 650, "protein": 22, "carbs": 90, "fat": 15, "fiber": 8, "sugar": 3},
		"ingredients": ["dal", "rice"], "instructions": ["boil", "temper"]},
	"snack": {"name": "Roasted Chana", "type": "snack", "cost": 15,
		"nutrition": {"calories": 200, "protein": 10, "carbs": 30, "fat": 4, "fiber": 6, "sugar": 1},
		"ingredients": ["chana"], "instructions": ["roast"]},
	"dinner": {"name": "Vegetable Khichdi", "type": "dinner", "cost": 80,
		"nutrition": {"calories": 800, "protein": 25, "carbs": 120, "fat": 18, "fiber": 10, "sugar": 5},
		"ingredients": ["rice", "moong dal", "vegetables"], "instructions": ["pressure cook"]},
	"totalNutrition": {"calories": 2000, "protein": 65, "carbs": 300, "fat": 47, "fiber": 28, "sugar": 15},
	"totalCost": 180
}`

type stubGenerator struct {
	name  string
	reply string
	err   error
	calls int
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(primary, fallback *stubGenerator) *Service {
	// A typed nil would make the interface non-nil inside the chain
	var chain *generation.Chain
	if fallback != nil {
		chain = generation.NewChain(primary, fallback, nil, zap.NewNop())
	} else {
		chain = generation.NewChain(primary, nil, nil, zap.NewNop())
	}
	return NewService(chain, nil, zap.NewNop())
}

func planCommand() inbound.GenerateMealPlanCommand {
	return inbound.GenerateMealPlanCommand{
		Preferences: mealplan.MealPreferences{CuisineType: "North Indian"},
		Goals:       mealplan.HealthGoals{PrimaryGoal: mealplan.GoalMaintenance, CalorieTarget: 2000},
		Budget:      mealplan.BudgetConstraints{DailyBudget: 300, BudgetPriority: mealplan.BudgetBalanced},
	}
}

func TestGenerateMealPlan(t *testing.T) {
	primary := &stubGenerator{name: "gemini", reply: "Here you go:\n" + validPlanJSON}
	svc := newTestService(primary, nil)

	plan, err := svc.GenerateMealPlan(context.Background(), planCommand())
	require.NoError(t, err)
	assert.Equal(t, "Poha", plan.Breakfast.Name)
	assert.Equal(t, 180.0, plan.TotalCost)
	assert.Empty(t, plan.Warnings)
}

func TestGenerateMealPlanValidatesInputs(t *testing.T) {
	svc := newTestService(&stubGenerator{name: "gemini", reply: validPlanJSON}, nil)

	cmd := planCommand()
	cmd.Goals.CalorieTarget = 0
	_, err := svc.GenerateMealPlan(context.Background(), cmd)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))

	cmd = planCommand()
	cmd.Preferences.CuisineType = ""
	_, err = svc.GenerateMealPlan(context.Background(), cmd)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))

	cmd = planCommand()
	cmd.Budget.DailyBudget = -10
	_, err = svc.GenerateMealPlan(context.Background(), cmd)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}

func TestGenerateMealPlanUsesFallbackOnce(t *testing.T) {
	primary := &stubGenerator{name: "gemini", err: apperrors.NewTransportError("gemini", nil)}
	fallback := &stubGenerator{name: "ollama", reply: validPlanJSON}
	svc := newTestService(primary, fallback)

	plan, err := svc.GenerateMealPlan(context.Background(), planCommand())
	require.NoError(t, err)
	assert.Equal(t, "Dal Rice", plan.Lunch.Name)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestGenerateMealPlanMalformedNeverFallsBack(t *testing.T) {
	primary := &stubGenerator{name: "gemini", reply: "I cannot answer that."}
	fallback := &stubGenerator{name: "ollama", reply: validPlanJSON}
	svc := newTestService(primary, fallback)

	_, err := svc.GenerateMealPlan(context.Background(), planCommand())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMalformedResponse))
	assert.Equal(t, 0, fallback.calls)
}

func TestGenerateMealPlanMissingSlotIsMalformed(t *testing.T) {
	reply := `{"breakfast": {"name": "Poha"}, "lunch": {"name": "Dal"}, "dinner": {"name": "Khichdi"}}`
	svc := newTestService(&stubGenerator{name: "gemini", reply: reply}, nil)

	_, err := svc.GenerateMealPlan(context.Background(), planCommand())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMalformedResponse))
}

func TestGenerateRecipe(t *testing.T) {
	reply := `{"name": "Palak Paneer", "ingredients": ["paneer", "spinach"],
		"instructions": ["blanch", "simmer"], "cookingTime": "30 minutes",
		"difficulty": "medium", "nutrition": {"calories": "420", "protein": 18, "carbs": 12, "fat": 32},
		"estimatedCost": "95.50"}`
	svc := newTestService(&stubGenerator{name: "gemini", reply: reply}, nil)

	recipe, err := svc.GenerateRecipe(context.Background(), inbound.GenerateRecipeCommand{
		Request:     "paneer, spinach",
		CuisineType: "Punjabi",
	})
	require.NoError(t, err)
	assert.Equal(t, "Palak Paneer", recipe.Name)
	assert.Equal(t, 420.0, recipe.Nutrition.Calories)
	assert.Equal(t, 95.5, recipe.EstimatedCost)
	assert.Equal(t, mealplan.DifficultyMedium, recipe.Difficulty)
}

func TestGenerateRecipeEmptyRequest(t *testing.T) {
	svc := newTestService(&stubGenerator{name: "gemini", reply: "{}"}, nil)

	_, err := svc.GenerateRecipe(context.Background(), inbound.GenerateRecipeCommand{Request: "  "})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}

func TestGenerateVideoScript(t *testing.T) {
	reply := `Here is the script:
	[{"visual": "hands dicing onions", "narration": "We start with the onions", "duration": 4},
	 {"visual": "pan with spices", "narration": "Temper the spices", "duration": "5"}]`
	svc := newTestService(&stubGenerator{name: "gemini", reply: reply}, nil)

	script, err := svc.GenerateVideoScript(context.Background(), "Masala Dosa", []string{"batter"}, []string{"heat tawa"})
	require.NoError(t, err)
	require.Len(t, script, 2)
	assert.Equal(t, 4.0, script[0].Duration)
	assert.Equal(t, 5.0, script[1].Duration)
	assert.Equal(t, 9.0, script.TotalDuration())
}

func TestGenerateVideoScriptEmptyScenes(t *testing.T) {
	svc := newTestService(&stubGenerator{name: "gemini", reply: "[]"}, nil)

	_, err := svc.GenerateVideoScript(context.Background(), "Masala Dosa", nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeMalformedResponse))
}

type memoryPlanRepo struct {
	plans map[uuid.UUID]*mealplan.SavedMealPlan
}

func newMemoryPlanRepo() *memoryPlanRepo {
	return &memoryPlanRepo{plans: make(map[uuid.UUID]*mealplan.SavedMealPlan)}
}

func (m *memoryPlanRepo) Create(ctx context.Context, plan *mealplan.SavedMealPlan) error {
	m.plans[plan.ID] = plan
	return nil
}

func (m *memoryPlanRepo) Update(ctx context.Context, plan *mealplan.SavedMealPlan) error {
	m.plans[plan.ID] = plan
	return nil
}

func (m *memoryPlanRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	delete(m.plans, id)
	return nil
}

func (m *memoryPlanRepo) FindByID(ctx context.Context, userID string, id uuid.UUID) (*mealplan.SavedMealPlan, error) {
	plan, ok := m.plans[id]
	if !ok || plan.UserID != userID {
		return nil, apperrors.NewPlanNotFoundError(id.String())
	}
	return plan, nil
}

func (m *memoryPlanRepo) FindByUserID(ctx context.Context, userID string, offset, limit int) ([]*mealplan.SavedMealPlan, int, error) {
	var out []*mealplan.SavedMealPlan
	for _, plan := range m.plans {
		if plan.UserID == userID {
			out = append(out, plan)
		}
	}
	return out, len(out), nil
}

func (m *memoryPlanRepo) FindFavorites(ctx context.Context, userID string, offset, limit int) ([]*mealplan.SavedMealPlan, int, error) {
	var out []*mealplan.SavedMealPlan
	for _, plan := range m.plans {
		if plan.UserID == userID && plan.IsFavorite {
			out = append(out, plan)
		}
	}
	return out, len(out), nil
}

func (m *memoryPlanRepo) SetFavorite(ctx context.Context, userID string, id uuid.UUID, favorite bool) error {
	plan, ok := m.plans[id]
	if !ok {
		return apperrors.NewPlanNotFoundError(id.String())
	}
	plan.IsFavorite = favorite
	return nil
}

func TestSaveAndManagePlans(t *testing.T) {
	repo := newMemoryPlanRepo()
	chain := generation.NewChain(&stubGenerator{name: "gemini", reply: validPlanJSON}, nil, nil, zap.NewNop())
	svc := NewService(chain, repo, zap.NewNop())
	ctx := context.Background()

	plan, err := svc.GenerateMealPlan(ctx, planCommand())
	require.NoError(t, err)

	saved, err := svc.SavePlan(ctx, inbound.SavePlanCommand{
		UserID: "user-1",
		Name:   "Week 1",
		Plan:   *plan,
	})
	require.NoError(t, err)
	assert.Equal(t, 180.0, saved.TotalCost)

	got, err := svc.GetPlan(ctx, "user-1", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	list, err := svc.ListPlans(ctx, "user-1", inbound.PaginationParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	require.NoError(t, svc.SetFavorite(ctx, "user-1", saved.ID, true))
	favorites, err := svc.ListFavorites(ctx, "user-1", inbound.PaginationParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, favorites.Total)

	require.NoError(t, svc.DeletePlan(ctx, "user-1", saved.ID))
	_, err = svc.GetPlan(ctx, "user-1", saved.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodePlanNotFound))
}

func TestSavePlanRejectsIncompletePlan(t *testing.T) {
	svc := NewService(generation.NewChain(&stubGenerator{name: "g"}, nil, nil, zap.NewNop()), newMemoryPlanRepo(), zap.NewNop())

	_, err := svc.SavePlan(context.Background(), inbound.SavePlanCommand{
		UserID: "user-1",
		Plan:   mealplan.MealPlan{Breakfast: mealplan.Meal{Name: "Poha"}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}
