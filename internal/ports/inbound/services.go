// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/domain/mealplan"
)

// PlannerService defines the use cases for meal plan and recipe generation.
// This is the primary port that HTTP handlers and other driving adapters use.
type PlannerService interface {
	// Generation
	GenerateMealPlan(ctx context.Context, cmd GenerateMealPlanCommand) (*mealplan.MealPlan, error)
	GenerateRecipe(ctx context.Context, cmd GenerateRecipeCommand) (*mealplan.GeneratedRecipe, error)

	// Saved plan management
	SavePlan(ctx context.Context, cmd SavePlanCommand) (*mealplan.SavedMealPlan, error)
	GetPlan(ctx context.Context, userID string, id uuid.UUID) (*mealplan.SavedMealPlan, error)
	ListPlans(ctx context.Context, userID string, params PaginationParams) (*SavedPlanList, error)
	ListFavorites(ctx context.Context, userID string, params PaginationParams) (*SavedPlanList, error)
	DeletePlan(ctx context.Context, userID string, id uuid.UUID) error
	SetFavorite(ctx context.Context, userID string, id uuid.UUID, favorite bool) error
}

// AssistantService defines the conversational nutrition assistant use case
type AssistantService interface {
	Chat(ctx context.Context, cmd ChatCommand) (*ChatReply, error)
}

// VideoService defines the cooking video generation use cases
type VideoService interface {
	GenerateScript(ctx context.Context, cmd GenerateVideoCommand) (mealplan.VideoScript, error)
	GenerateVideo(ctx context.Context, cmd GenerateVideoCommand) (*VideoResult, error)
	Budget() ProviderBudget
}

// FeedbackService defines the user feedback use case
type FeedbackService interface {
	Submit(ctx context.Context, cmd FeedbackCommand) (*mealplan.Feedback, error)
	List(ctx context.Context, params PaginationParams) (*FeedbackList, error)
}

// Command objects for operations

// GenerateMealPlanCommand contains the inputs for one day's plan
type GenerateMealPlanCommand struct {
	Preferences mealplan.MealPreferences
	Goals       mealplan.HealthGoals
	Budget      mealplan.BudgetConstraints
}

// GenerateRecipeCommand contains the inputs for a single recipe
type GenerateRecipeCommand struct {
	Request             string
	CuisineType         string
	DietaryRestrictions []string
	BudgetLimit         float64
}

// SavePlanCommand contains the data for persisting a generated plan
type SavePlanCommand struct {
	UserID      string
	Name        string
	Description string
	Tags        []string
	Plan        mealplan.MealPlan
}

// ChatCommand is one user turn addressed to the assistant
type ChatCommand struct {
	Message string
	// CurrentPlan, when present, is summarized into the assistant prompt
	CurrentPlan *mealplan.MealPlan
}

// ChatReply is the assistant's answer to one turn
type ChatReply struct {
	Reply string `json:"reply"`
}

// GenerateVideoCommand contains the inputs for a cooking video
type GenerateVideoCommand struct {
	RecipeName  string
	Ingredients []string
	Steps       []string
}

// FeedbackCommand contains a user rating submission
type FeedbackCommand struct {
	UserID   string
	Rating   int
	Feedback string
}

// PaginationParams for paginated queries
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the record offset for the page
func (p PaginationParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// Limit returns the bounded page size
func (p PaginationParams) Limit() int {
	if p.PageSize < 1 {
		return 20
	}
	if p.PageSize > 100 {
		return 100
	}
	return p.PageSize
}

// Response DTOs

// SavedPlanList is a page of saved meal plans
type SavedPlanList struct {
	Plans    []*mealplan.SavedMealPlan `json:"plans"`
	Total    int                       `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"pageSize"`
}

// FeedbackList is a page of feedback entries
type FeedbackList struct {
	Entries  []*mealplan.Feedback `json:"entries"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"pageSize"`
}

// ProviderBudget is the remaining credit balance per video provider.
// It is a value snapshot: callers receive copies, never shared state.
type ProviderBudget struct {
	Runway int `json:"runway"`
	Pika   int `json:"pika"`
	Luma   int `json:"luma"`
}

// Total returns the combined remaining credits
func (b ProviderBudget) Total() int {
	return b.Runway + b.Pika + b.Luma
}

// VideoResult is the outcome of a full video generation run
type VideoResult struct {
	ID        string               `json:"id"`
	Provider  string               `json:"provider"`
	VideoURL  string               `json:"videoUrl"`
	Thumbnail string               `json:"thumbnail"`
	Duration  float64              `json:"duration"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	Script    mealplan.VideoScript `json:"script"`
	Remaining ProviderBudget       `json:"remaining"`
}
