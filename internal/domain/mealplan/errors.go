package mealplan

import "errors"

// Domain errors returned by entity constructors and Validate methods
var (
	ErrMissingCuisine       = errors.New("cuisine type is required")
	ErrInvalidCalorieTarget = errors.New("calorie target must be positive")
	ErrInvalidBudget        = errors.New("daily budget must be positive")
	ErrMissingMealSlot      = errors.New("meal plan is missing a meal slot")
	ErrMissingUserID        = errors.New("user id is required")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrEmptyMessage         = errors.New("message cannot be empty")
	ErrPlanNotFound         = errors.New("meal plan not found")
)
