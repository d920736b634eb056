package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/ports/inbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPlan() mealplan.MealPlan {
	meal := func(name string, mealType mealplan.MealType, cost, calories float64) mealplan.Meal {
		return mealplan.Meal{
			Name:        name,
			Type:        mealType,
			Cost:        cost,
			Nutrition:   mealplan.Nutrition{Calories: calories},
			Ingredients: []string{"rice", "onion"},
		}
	}

	plan := mealplan.MealPlan{
		Breakfast: meal("Poha", mealplan.MealTypeBreakfast, 25, 350),
		Lunch:     meal("Dal Rice", mealplan.MealTypeLunch, 60, 650),
		Snack:     meal("Roasted Chana", mealplan.MealTypeSnack, 15, 200),
		Dinner:    meal("Paneer Bhurji", mealplan.MealTypeDinner, 80, 800),
	}
	plan.TotalCost = plan.SumCost()
	plan.TotalNutrition = plan.SumNutrition()
	return plan
}

type fakePlanner struct {
	generateErr error
	saved       map[uuid.UUID]*mealplan.SavedMealPlan
}

func newFakePlanner() *fakePlanner {
	return &fakePlanner{saved: make(map[uuid.UUID]*mealplan.SavedMealPlan)}
}

func (f *fakePlanner) GenerateMealPlan(ctx context.Context, cmd inbound.GenerateMealPlanCommand) (*mealplan.MealPlan, error) {
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	if err := cmd.Preferences.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	plan := testPlan()
	return &plan, nil
}

func (f *fakePlanner) GenerateRecipe(ctx context.Context, cmd inbound.GenerateRecipeCommand) (*mealplan.GeneratedRecipe, error) {
	return &mealplan.GeneratedRecipe{Name: "Dal Tadka", EstimatedCost: 45}, nil
}

func (f *fakePlanner) SavePlan(ctx context.Context, cmd inbound.SavePlanCommand) (*mealplan.SavedMealPlan, error) {
	saved, err := mealplan.NewSavedMealPlan(cmd.UserID, cmd.Name, cmd.Description, cmd.Tags, cmd.Plan)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	f.saved[saved.ID] = saved
	return saved, nil
}

func (f *fakePlanner) GetPlan(ctx context.Context, userID string, id uuid.UUID) (*mealplan.SavedMealPlan, error) {
	plan, ok := f.saved[id]
	if !ok || plan.UserID != userID {
		return nil, apperrors.NewPlanNotFoundError(id.String())
	}
	return plan, nil
}

func (f *fakePlanner) ListPlans(ctx context.Context, userID string, params inbound.PaginationParams) (*inbound.SavedPlanList, error) {
	var plans []*mealplan.SavedMealPlan
	for _, p := range f.saved {
		if p.UserID == userID {
			plans = append(plans, p)
		}
	}
	return &inbound.SavedPlanList{Plans: plans, Total: len(plans), Page: 1, PageSize: params.Limit()}, nil
}

func (f *fakePlanner) ListFavorites(ctx context.Context, userID string, params inbound.PaginationParams) (*inbound.SavedPlanList, error) {
	var plans []*mealplan.SavedMealPlan
	for _, p := range f.saved {
		if p.UserID == userID && p.IsFavorite {
			plans = append(plans, p)
		}
	}
	return &inbound.SavedPlanList{Plans: plans, Total: len(plans), Page: 1, PageSize: params.Limit()}, nil
}

func (f *fakePlanner) DeletePlan(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := f.GetPlan(ctx, userID, id); err != nil {
		return err
	}
	delete(f.saved, id)
	return nil
}

func (f *fakePlanner) SetFavorite(ctx context.Context, userID string, id uuid.UUID, favorite bool) error {
	plan, err := f.GetPlan(ctx, userID, id)
	if err != nil {
		return err
	}
	plan.IsFavorite = favorite
	return nil
}

type fakeAssistant struct{}

func (f *fakeAssistant) Chat(ctx context.Context, cmd inbound.ChatCommand) (*inbound.ChatReply, error) {
	return &inbound.ChatReply{Reply: "Eat more dal."}, nil
}

type fakeVideo struct{}

func (f *fakeVideo) GenerateScript(ctx context.Context, cmd inbound.GenerateVideoCommand) (mealplan.VideoScript, error) {
	return mealplan.VideoScript{{Visual: "pan shot", Narration: "heat the oil", Duration: 5}}, nil
}

func (f *fakeVideo) GenerateVideo(ctx context.Context, cmd inbound.GenerateVideoCommand) (*inbound.VideoResult, error) {
	return &inbound.VideoResult{
		ID:       "vid-1",
		Provider: "runway",
		VideoURL: "https://cdn.nutriplan.app/videos/vid-1.mp4",
		Status:   "completed",
	}, nil
}

func (f *fakeVideo) Budget() inbound.ProviderBudget {
	return inbound.ProviderBudget{Runway: 125, Pika: 30, Luma: 20}
}

type fakeFeedback struct {
	entries []*mealplan.Feedback
}

func (f *fakeFeedback) Submit(ctx context.Context, cmd inbound.FeedbackCommand) (*mealplan.Feedback, error) {
	fb, err := mealplan.NewFeedback(cmd.UserID, cmd.Rating, cmd.Feedback)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	f.entries = append(f.entries, fb)
	return fb, nil
}

func (f *fakeFeedback) List(ctx context.Context, params inbound.PaginationParams) (*inbound.FeedbackList, error) {
	return &inbound.FeedbackList{Entries: f.entries, Total: len(f.entries), Page: 1, PageSize: params.Limit()}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "NutriPlan", Environment: "test"},
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    60 * time.Second,
			RequestTimeout: 30 * time.Second,
		},
	}
}

type testEnv struct {
	server  *Server
	planner *fakePlanner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	planner := newFakePlanner()
	srv := NewServer(testConfig(), zap.NewNop(), planner, &fakeAssistant{}, &fakeVideo{}, &fakeFeedback{})
	return &testEnv{server: srv, planner: planner}
}

func (e *testEnv) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func generateRequestBody() map[string]interface{} {
	return map[string]interface{}{
		"preferences": map[string]interface{}{
			"cuisineType":         "north-indian",
			"dietaryRestrictions": []string{"vegetarian"},
		},
		"healthGoals": map[string]interface{}{
			"primaryGoal":   "maintenance",
			"calorieTarget": 2000,
		},
		"budget": map[string]interface{}{
			"dailyBudget":    200,
			"budgetPriority": "balanced",
		},
	}
}

func TestGenerateMealPlan(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans/generate", "", generateRequestBody())
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeResponse(t, rec)
	assert.Equal(t, true, out["success"])

	data := out["data"].(map[string]interface{})
	breakfast := data["breakfast"].(map[string]interface{})
	assert.Equal(t, "Poha", breakfast["name"])
}

func TestGenerateMealPlanBackendFailure(t *testing.T) {
	env := newTestEnv(t)
	env.planner.generateErr = apperrors.NewTransportError("gemini", nil)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans/generate", "", generateRequestBody())
	require.Equal(t, http.StatusBadGateway, rec.Code)

	out := decodeResponse(t, rec)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Failed to generate meal plan. Please try again.", out["error"])
}

func TestGenerateMealPlanMalformedResponseFailure(t *testing.T) {
	env := newTestEnv(t)
	env.planner.generateErr = apperrors.NewMalformedResponseError("no JSON found", "sorry, I cannot")

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans/generate", "", generateRequestBody())
	require.Equal(t, http.StatusBadGateway, rec.Code)

	out := decodeResponse(t, rec)
	assert.Equal(t, "Failed to generate meal plan. Please try again.", out["error"])
}

func TestGenerateMealPlanInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/meal-plans/generate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavePlanRequiresUser(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans", "", map[string]interface{}{
		"name": "My Plan",
		"plan": testPlan(),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSavePlanAndFetch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans", "user-1", map[string]interface{}{
		"name": "Weekday Plan",
		"tags": []string{"weekday"},
		"plan": testPlan(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	out := decodeResponse(t, rec)
	data := out["data"].(map[string]interface{})
	id := data["id"].(string)

	rec = env.do(t, http.MethodGet, "/api/v1/meal-plans/"+id, "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	out = decodeResponse(t, rec)
	fetched := out["data"].(map[string]interface{})
	assert.Equal(t, "Weekday Plan", fetched["name"])

	// Another user gets a 404, not someone else's plan
	rec = env.do(t, http.MethodGet, "/api/v1/meal-plans/"+id, "user-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPlanInvalidID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/meal-plans/not-a-uuid", "user-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavoriteFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans", "user-1", map[string]interface{}{
		"plan": testPlan(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeResponse(t, rec)["data"].(map[string]interface{})["id"].(string)

	rec = env.do(t, http.MethodPut, "/api/v1/meal-plans/"+id+"/favorite", "user-1", map[string]interface{}{
		"favorite": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/meal-plans/favorites", "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeResponse(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), list["total"])
}

func TestDeletePlan(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans", "user-1", map[string]interface{}{
		"plan": testPlan(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decodeResponse(t, rec)["data"].(map[string]interface{})["id"].(string)

	rec = env.do(t, http.MethodDelete, "/api/v1/meal-plans/"+id, "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/meal-plans/"+id, "user-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShoppingListExport(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans/shopping-list", "", testPlan())
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Equal(t, "Item,Category", strings.TrimSpace(lines[0]))
	// 2 distinct ingredients across all meals
	assert.Len(t, lines, 3)
}

func TestCalendarExport(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans/calendar?date=2026-03-14", "", testPlan())
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/calendar", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "DTSTART:20260314T080000")
	assert.Contains(t, body, "SUMMARY:Breakfast: Poha")
}

func TestCalendarExportBadDate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/meal-plans/calendar?date=14-03-2026", "", testPlan())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRecipe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/recipes/generate", "", map[string]interface{}{
		"request": "something with lentils",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeResponse(t, rec)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Dal Tadka", data["name"])
}

func TestGenerateRecipeMissingRequest(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/recipes/generate", "", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssistantChat(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/assistant", "", map[string]interface{}{
		"message": "what should I eat for protein?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeResponse(t, rec)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "Eat more dal.", data["reply"])
}

func TestAssistantChatEmptyMessage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/assistant", "", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/videos/script", "", map[string]interface{}{
		"recipeName": "Dal Tadka",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/videos", "", map[string]interface{}{
		"recipeName": "Dal Tadka",
		"steps":      []string{"heat oil", "add cumin"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeResponse(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "runway", data["provider"])

	rec = env.do(t, http.MethodGet, "/api/v1/videos/budget", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	budget := decodeResponse(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(125), budget["runway"])
}

func TestFeedbackEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/feedback", "user-1", map[string]interface{}{
		"rating":   5,
		"feedback": "Great planner",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/feedback", "", map[string]interface{}{
		"rating": 6,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/feedback", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeResponse(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), list["total"])
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeResponse(t, rec)
	assert.Equal(t, true, out["success"])

	rec = env.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
