package gorm

import (
	"github.com/nutriplan/v1/internal/domain/mealplan"
)

// toMealPlanModel converts a domain saved plan to its GORM model
func toMealPlanModel(plan *mealplan.SavedMealPlan) *MealPlanModel {
	return &MealPlanModel{
		ID:            plan.ID,
		UserID:        plan.UserID,
		Name:          plan.Name,
		Description:   plan.Description,
		Tags:          StringSlice(plan.Tags),
		IsFavorite:    plan.IsFavorite,
		PlanData:      PlanJSON(plan.Plan),
		TotalCost:     plan.TotalCost,
		TotalCalories: plan.TotalCalories,
		CreatedAt:     plan.CreatedAt,
		UpdatedAt:     plan.UpdatedAt,
	}
}

// toDomainMealPlan converts a GORM model back to the domain saved plan
func toDomainMealPlan(model *MealPlanModel) *mealplan.SavedMealPlan {
	return &mealplan.SavedMealPlan{
		ID:            model.ID,
		UserID:        model.UserID,
		Name:          model.Name,
		Description:   model.Description,
		Tags:          []string(model.Tags),
		IsFavorite:    model.IsFavorite,
		Plan:          mealplan.MealPlan(model.PlanData),
		TotalCost:     model.TotalCost,
		TotalCalories: model.TotalCalories,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// toFeedbackModel converts domain feedback to its GORM model
func toFeedbackModel(fb *mealplan.Feedback) *FeedbackModel {
	return &FeedbackModel{
		ID:        fb.ID,
		UserID:    fb.UserID,
		Rating:    fb.Rating,
		Feedback:  fb.Feedback,
		CreatedAt: fb.CreatedAt,
	}
}

// toDomainFeedback converts a GORM model back to domain feedback
func toDomainFeedback(model *FeedbackModel) *mealplan.Feedback {
	return &mealplan.Feedback{
		ID:        model.ID,
		UserID:    model.UserID,
		Rating:    model.Rating,
		Feedback:  model.Feedback,
		CreatedAt: model.CreatedAt,
	}
}
