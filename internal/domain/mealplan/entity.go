// Package mealplan contains the core domain types for AI-assisted meal planning.
// All entities here are transient value objects: created fresh per request, held
// in session state, and replaced wholesale rather than mutated in place.
package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// MealType identifies one of the four daily meal slots
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeSnack     MealType = "snack"
	MealTypeDinner    MealType = "dinner"
)

// MealTypes returns the four slots in serving order
func MealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeSnack, MealTypeDinner}
}

// Goal represents the user's primary health goal
type Goal string

const (
	GoalWeightLoss  Goal = "weight_loss"
	GoalMuscleGain  Goal = "muscle_gain"
	GoalMaintenance Goal = "maintenance"
)

// BudgetPriority describes how strictly the daily budget binds
type BudgetPriority string

const (
	BudgetStrict           BudgetPriority = "strict"
	BudgetBalanced         BudgetPriority = "balanced"
	BudgetNutritionFocused BudgetPriority = "nutrition_focused"
)

// Difficulty describes how hard a meal or recipe is to prepare
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// MealPreferences captures the user's cuisine and ingredient preferences
type MealPreferences struct {
	CuisineType         string   `json:"cuisineType"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	DislikedIngredients string   `json:"dislikedIngredients"`
}

// Validate checks the preferences for required fields
func (p MealPreferences) Validate() error {
	if p.CuisineType == "" {
		return ErrMissingCuisine
	}
	return nil
}

// HealthGoals captures the user's goal, calorie target and conditions
type HealthGoals struct {
	PrimaryGoal      Goal     `json:"primaryGoal"`
	CalorieTarget    int      `json:"calorieTarget"`
	HealthConditions []string `json:"healthConditions"`
}

// Validate checks the goals for a positive calorie target
func (g HealthGoals) Validate() error {
	if g.CalorieTarget <= 0 {
		return ErrInvalidCalorieTarget
	}
	return nil
}

// BudgetConstraints captures the daily budget in rupees and its priority
type BudgetConstraints struct {
	DailyBudget    float64        `json:"dailyBudget"`
	BudgetPriority BudgetPriority `json:"budgetPriority"`
}

// Validate checks the budget for a positive daily amount
func (b BudgetConstraints) Validate() error {
	if b.DailyBudget <= 0 {
		return ErrInvalidBudget
	}
	return nil
}

// Nutrition is a per-meal or aggregate nutritional breakdown.
// All values are non-negative after normalization.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

// Add returns the component-wise sum of two breakdowns
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Carbs:    n.Carbs + other.Carbs,
		Fat:      n.Fat + other.Fat,
		Fiber:    n.Fiber + other.Fiber,
		Sugar:    n.Sugar + other.Sugar,
	}
}

// Meal is one generated meal for a single slot
type Meal struct {
	Name         string     `json:"name"`
	Type         MealType   `json:"type"`
	Description  string     `json:"description,omitempty"`
	Cost         float64    `json:"cost"`
	Nutrition    Nutrition  `json:"nutrition"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	PrepTime     string     `json:"prepTime,omitempty"`
	Servings     int        `json:"servings,omitempty"`
	Tips         []string   `json:"tips,omitempty"`
	CuisineType  string     `json:"cuisineType,omitempty"`
	Difficulty   Difficulty `json:"difficulty,omitempty"`
}

// MealPlan is a full day of meals with aggregate totals. Warnings carries
// soft-validation findings back to the caller; a plan with warnings is still
// a valid plan.
type MealPlan struct {
	Breakfast      Meal      `json:"breakfast"`
	Lunch          Meal      `json:"lunch"`
	Snack          Meal      `json:"snack"`
	Dinner         Meal      `json:"dinner"`
	TotalNutrition Nutrition `json:"totalNutrition"`
	TotalCost      float64   `json:"totalCost"`
	Warnings       []string  `json:"warnings,omitempty"`
}

// Meals returns the four slots in serving order
func (p *MealPlan) Meals() []*Meal {
	return []*Meal{&p.Breakfast, &p.Lunch, &p.Snack, &p.Dinner}
}

// Complete reports whether every slot holds a named meal.
// A plan missing a slot is never returned to the caller.
func (p *MealPlan) Complete() bool {
	for _, m := range p.Meals() {
		if m.Name == "" {
			return false
		}
	}
	return true
}

// SumCost returns the cost of the four meals
func (p *MealPlan) SumCost() float64 {
	var total float64
	for _, m := range p.Meals() {
		total += m.Cost
	}
	return total
}

// SumNutrition returns the aggregate nutrition of the four meals
func (p *MealPlan) SumNutrition() Nutrition {
	var total Nutrition
	for _, m := range p.Meals() {
		total = total.Add(m.Nutrition)
	}
	return total
}

// GeneratedRecipe is a single AI-generated recipe
type GeneratedRecipe struct {
	Name          string          `json:"name"`
	Ingredients   []string        `json:"ingredients"`
	Instructions  []string        `json:"instructions"`
	CookingTime   string          `json:"cookingTime"`
	Difficulty    Difficulty      `json:"difficulty"`
	Nutrition     RecipeNutrition `json:"nutrition"`
	EstimatedCost float64         `json:"estimatedCost"`
}

// RecipeNutrition is the reduced breakdown returned for single recipes
type RecipeNutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Scene is one segment of a cooking video script
type Scene struct {
	Visual    string  `json:"visual"`
	Narration string  `json:"narration"`
	Duration  float64 `json:"duration"`
}

// VideoScript is an ordered sequence of scenes
type VideoScript []Scene

// TotalDuration returns the script length in seconds
func (s VideoScript) TotalDuration() float64 {
	var total float64
	for _, scene := range s {
		total += scene.Duration
	}
	return total
}

// SavedMealPlan is a persisted meal plan owned by a user
type SavedMealPlan struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	IsFavorite    bool      `json:"isFavorite"`
	Plan          MealPlan  `json:"plan"`
	TotalCost     float64   `json:"totalCost"`
	TotalCalories float64   `json:"totalCalories"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewSavedMealPlan builds a saved plan record from a generated plan
func NewSavedMealPlan(userID, name, description string, tags []string, plan MealPlan) (*SavedMealPlan, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if name == "" {
		name = "Meal Plan - " + time.Now().Format("Jan 2, 2006")
	}
	if !plan.Complete() {
		return nil, ErrMissingMealSlot
	}

	now := time.Now()
	return &SavedMealPlan{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Description:   description,
		Tags:          tags,
		Plan:          plan,
		TotalCost:     plan.SumCost(),
		TotalCalories: plan.SumNutrition().Calories,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Feedback is a user rating of the product, 1 to 5 stars
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Rating    int       `json:"rating"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFeedback builds a feedback record with a validated rating
func NewFeedback(userID string, rating int, text string) (*Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	return &Feedback{
		ID:        uuid.New(),
		UserID:    userID,
		Rating:    rating,
		Feedback:  text,
		CreatedAt: time.Now(),
	}, nil
}
