// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/domain/mealplan"
)

// TextGenerator is the single seam between the application and a text
// generation backend. Implementations translate backend-specific failures
// into the structured error taxonomy in pkg/errors so callers can apply
// the fallback policy uniformly.
type TextGenerator interface {
	// Name identifies the backend in logs and audit records
	Name() string

	// Generate sends one prompt and returns the raw completion text.
	// No retries, no response parsing: that is the caller's job.
	Generate(ctx context.Context, prompt string) (string, error)
}

// MealPlanRepository defines the interface for saved meal plan persistence
type MealPlanRepository interface {
	Create(ctx context.Context, plan *mealplan.SavedMealPlan) error
	Update(ctx context.Context, plan *mealplan.SavedMealPlan) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*mealplan.SavedMealPlan, error)
	FindByUserID(ctx context.Context, userID string, offset, limit int) ([]*mealplan.SavedMealPlan, int, error)
	FindFavorites(ctx context.Context, userID string, offset, limit int) ([]*mealplan.SavedMealPlan, int, error)
	SetFavorite(ctx context.Context, userID string, id uuid.UUID, favorite bool) error
}

// FeedbackRepository defines the interface for feedback persistence
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *mealplan.Feedback) error
	List(ctx context.Context, offset, limit int) ([]*mealplan.Feedback, int, error)
}

// GenerationRecord is one audit entry for a generation attempt
type GenerationRecord struct {
	ID         uuid.UUID
	Kind       string // meal_plan, recipe, assistant, video_script
	Backend    string
	Prompt     string
	Fallback   bool
	Success    bool
	ErrorCode  string
	DurationMS int64
	CreatedAt  time.Time
}

// GenerationLog records generation attempts for auditing.
// Implementations must never fail a generation on a logging error.
type GenerationLog interface {
	Record(ctx context.Context, record GenerationRecord) error
}
