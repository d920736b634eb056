// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/domain/mealplan"
	"gorm.io/gorm"
)

// MealPlanModel represents the GORM model for saved meal plans
type MealPlanModel struct {
	ID          uuid.UUID   `gorm:"type:char(36);primaryKey"`
	UserID      string      `gorm:"type:varchar(255);not null;index"`
	Name        string      `gorm:"type:varchar(255);not null"`
	Description string      `gorm:"type:text"`
	Tags        StringSlice `gorm:"type:json"`
	IsFavorite  bool        `gorm:"default:false;index"`

	// Full plan document, stored as one JSON column. The denormalized totals
	// below exist for listing without deserializing the plan.
	PlanData      PlanJSON `gorm:"type:json"`
	TotalCost     float64  `gorm:"default:0"`
	TotalCalories float64  `gorm:"default:0"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// FeedbackModel represents the GORM model for user feedback
type FeedbackModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(255);index"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Feedback  string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// GenerationModel represents the GORM model for generation audit records
type GenerationModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	Kind       string    `gorm:"type:varchar(50);not null;index"`
	Backend    string    `gorm:"type:varchar(50);not null;index"`
	Prompt     string    `gorm:"type:text"`
	Fallback   bool      `gorm:"default:false"`
	Success    bool      `gorm:"default:false;index"`
	ErrorCode  string    `gorm:"type:varchar(100)"`
	DurationMS int64     `gorm:"column:duration_ms;default:0"`
	CreatedAt  time.Time `gorm:"index"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// PlanJSON custom type for storing a full meal plan as a JSON column
type PlanJSON mealplan.MealPlan

// Scan implements the sql.Scanner interface
func (p *PlanJSON) Scan(value interface{}) error {
	if value == nil {
		*p = PlanJSON{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PlanJSON", value)
	}
}

// Value implements the driver.Valuer interface
func (p PlanJSON) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// BeforeCreate hook for MealPlanModel
func (m *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for FeedbackModel
func (f *FeedbackModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for GenerationModel
func (g *GenerationModel) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (MealPlanModel) TableName() string {
	return "meal_plans"
}

func (FeedbackModel) TableName() string {
	return "feedback"
}

func (GenerationModel) TableName() string {
	return "generations"
}
