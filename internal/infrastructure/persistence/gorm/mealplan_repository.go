package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"gorm.io/gorm"
)

// MealPlanRepository implements the meal plan repository interface using GORM.
// Every query is scoped by user ID so one user can never read or mutate
// another user's plans.
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create persists a new saved meal plan
func (r *MealPlanRepository) Create(ctx context.Context, plan *mealplan.SavedMealPlan) error {
	model := toMealPlanModel(plan)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("create meal plan", result.Error)
	}

	plan.ID = model.ID
	return nil
}

// Update replaces an existing saved meal plan
func (r *MealPlanRepository) Update(ctx context.Context, plan *mealplan.SavedMealPlan) error {
	model := toMealPlanModel(plan)

	result := r.db.WithContext(ctx).
		Where("user_id = ?", plan.UserID).
		Save(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("update meal plan", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewPlanNotFoundError(plan.ID.String())
	}

	return nil
}

// Delete soft-deletes a saved meal plan owned by userID
func (r *MealPlanRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&MealPlanModel{})
	if result.Error != nil {
		return apperrors.NewDatabaseError("delete meal plan", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewPlanNotFoundError(id.String())
	}

	return nil
}

// FindByID finds a saved meal plan owned by userID
func (r *MealPlanRepository) FindByID(ctx context.Context, userID string, id uuid.UUID) (*mealplan.SavedMealPlan, error) {
	var model MealPlanModel

	result := r.db.WithContext(ctx).
		First(&model, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewPlanNotFoundError(id.String())
		}
		return nil, apperrors.NewDatabaseError("find meal plan", result.Error)
	}

	return toDomainMealPlan(&model), nil
}

// FindByUserID returns the user's saved plans, most recently updated first
func (r *MealPlanRepository) FindByUserID(ctx context.Context, userID string, offset, limit int) ([]*mealplan.SavedMealPlan, int, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID), offset, limit)
}

// FindFavorites returns the user's favorite plans, most recently updated first
func (r *MealPlanRepository) FindFavorites(ctx context.Context, userID string, offset, limit int) ([]*mealplan.SavedMealPlan, int, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ? AND is_favorite = ?", userID, true), offset, limit)
}

// SetFavorite flips the favorite flag on a plan owned by userID
func (r *MealPlanRepository) SetFavorite(ctx context.Context, userID string, id uuid.UUID, favorite bool) error {
	result := r.db.WithContext(ctx).
		Model(&MealPlanModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_favorite", favorite)
	if result.Error != nil {
		return apperrors.NewDatabaseError("update favorite flag", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewPlanNotFoundError(id.String())
	}

	return nil
}

// list runs a scoped query with a count and pagination
func (r *MealPlanRepository) list(ctx context.Context, query *gorm.DB, offset, limit int) ([]*mealplan.SavedMealPlan, int, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Model(&MealPlanModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count meal plans", err)
	}

	var models []MealPlanModel
	result := query.
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, apperrors.NewDatabaseError("list meal plans", result.Error)
	}

	plans := make([]*mealplan.SavedMealPlan, len(models))
	for i := range models {
		plans[i] = toDomainMealPlan(&models[i])
	}

	return plans, int(total), nil
}
