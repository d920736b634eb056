// Package feedback implements the user feedback use case
package feedback

import (
	"context"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements inbound.FeedbackService
type Service struct {
	repo   outbound.FeedbackRepository
	logger *zap.Logger
}

// NewService creates the feedback service
func NewService(repo outbound.FeedbackRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.Named("feedback-service"),
	}
}

// Submit validates and stores one rating
func (s *Service) Submit(ctx context.Context, cmd inbound.FeedbackCommand) (*mealplan.Feedback, error) {
	fb, err := mealplan.NewFeedback(cmd.UserID, cmd.Rating, cmd.Feedback)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}

	s.logger.Info("feedback submitted",
		zap.String("feedback_id", fb.ID.String()),
		zap.Int("rating", fb.Rating))

	return fb, nil
}

// List returns a page of feedback entries, newest first
func (s *Service) List(ctx context.Context, params inbound.PaginationParams) (*inbound.FeedbackList, error) {
	entries, total, err := s.repo.List(ctx, params.Offset(), params.Limit())
	if err != nil {
		return nil, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	return &inbound.FeedbackList{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: params.Limit(),
	}, nil
}

var _ inbound.FeedbackService = (*Service)(nil)
