package gorm

import (
	"context"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"gorm.io/gorm"
)

// FeedbackRepository implements the feedback repository interface using GORM
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) outbound.FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create persists a feedback entry
func (r *FeedbackRepository) Create(ctx context.Context, feedback *mealplan.Feedback) error {
	model := toFeedbackModel(feedback)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("create feedback", result.Error)
	}

	feedback.ID = model.ID
	return nil
}

// List returns feedback entries, newest first
func (r *FeedbackRepository) List(ctx context.Context, offset, limit int) ([]*mealplan.Feedback, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&FeedbackModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewDatabaseError("count feedback", err)
	}

	var models []FeedbackModel
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, apperrors.NewDatabaseError("list feedback", result.Error)
	}

	entries := make([]*mealplan.Feedback, len(models))
	for i := range models {
		entries[i] = toDomainFeedback(&models[i])
	}

	return entries, int(total), nil
}
