package gorm

import (
	"context"

	"github.com/nutriplan/v1/internal/ports/outbound"
	apperrors "github.com/nutriplan/v1/pkg/errors"
	"gorm.io/gorm"
)

// GenerationLog implements the generation audit log using GORM.
// Callers treat Record failures as non-fatal, so this type only translates
// errors and never panics.
type GenerationLog struct {
	db *gorm.DB
}

// NewGenerationLog creates a new generation audit log
func NewGenerationLog(db *gorm.DB) outbound.GenerationLog {
	return &GenerationLog{db: db}
}

// Record persists one generation attempt
func (l *GenerationLog) Record(ctx context.Context, record outbound.GenerationRecord) error {
	model := &GenerationModel{
		ID:         record.ID,
		Kind:       record.Kind,
		Backend:    record.Backend,
		Prompt:     record.Prompt,
		Fallback:   record.Fallback,
		Success:    record.Success,
		ErrorCode:  record.ErrorCode,
		DurationMS: record.DurationMS,
		CreatedAt:  record.CreatedAt,
	}

	result := l.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("record generation attempt", result.Error)
	}

	return nil
}
