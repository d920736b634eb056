package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/nutriplan/v1/internal/domain/mealplan"
	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// Per-slot plausible cost bands in rupees, derived from the prompt's
// "typical Indian meal ₹30-120" guidance with slack for slot size.
var slotCostBands = map[mealplan.MealType][2]float64{
	mealplan.MealTypeBreakfast: {20, 150},
	mealplan.MealTypeLunch:     {30, 250},
	mealplan.MealTypeSnack:     {10, 100},
	mealplan.MealTypeDinner:    {30, 250},
}

// Ingredient keywords that conflict with a dietary restriction. Matching is
// case-insensitive substring over the meal name and ingredient lines.
var restrictionKeywords = map[string][]string{
	"vegetarian":  {"chicken", "fish", "egg", "mutton", "prawn", "meat"},
	"vegan":       {"chicken", "fish", "egg", "mutton", "prawn", "meat", "milk", "paneer", "ghee", "butter", "curd", "yogurt", "cheese", "honey"},
	"gluten-free": {"wheat", "atta", "maida", "bread", "roti"},
}

// budgetSlack tolerates small overshoot before warning: generation costs are
// estimates, and a hard cutoff at 100% would flag nearly every plan.
const budgetSlack = 1.05

// calorieTolerance is the accepted deviation from the daily target
const calorieTolerance = 50.0

// NormalizeMealPlan turns a decoded wire payload into a domain plan. Shape
// problems (a missing or unnamed slot) are hard errors; everything else is a
// soft warning appended to the plan. Totals the model omitted or got wrong
// are recomputed from the four meals.
func NormalizeMealPlan(wire planWire, prefs mealplan.MealPreferences, goals mealplan.HealthGoals, budget mealplan.BudgetConstraints) (*mealplan.MealPlan, error) {
	slots := []struct {
		wire mealWire
		typ  mealplan.MealType
	}{
		{wire.Breakfast, mealplan.MealTypeBreakfast},
		{wire.Lunch, mealplan.MealTypeLunch},
		{wire.Snack, mealplan.MealTypeSnack},
		{wire.Dinner, mealplan.MealTypeDinner},
	}

	for _, slot := range slots {
		if strings.TrimSpace(slot.wire.Name) == "" {
			return nil, apperrors.NewMalformedResponseError(
				fmt.Sprintf("meal plan is missing the %s slot", slot.typ), "")
		}
	}

	plan := &mealplan.MealPlan{
		Breakfast: toMeal(wire.Breakfast, mealplan.MealTypeBreakfast),
		Lunch:     toMeal(wire.Lunch, mealplan.MealTypeLunch),
		Snack:     toMeal(wire.Snack, mealplan.MealTypeSnack),
		Dinner:    toMeal(wire.Dinner, mealplan.MealTypeDinner),
	}

	// Recompute totals from the slots; the model's own totals are advisory
	plan.TotalCost = plan.SumCost()
	plan.TotalNutrition = plan.SumNutrition()

	plan.Warnings = collectWarnings(plan, prefs, goals, budget)
	return plan, nil
}

func toMeal(w mealWire, typ mealplan.MealType) mealplan.Meal {
	return mealplan.Meal{
		Name:         strings.TrimSpace(w.Name),
		Type:         typ,
		Description:  w.Description,
		Cost:         w.Cost.Float(),
		Nutrition:    toNutrition(w.Nutrition),
		Ingredients:  w.Ingredients,
		Instructions: w.Instructions,
		PrepTime:     w.PrepTime,
		Servings:     int(w.Servings.Float()),
		Tips:         w.Tips,
		CuisineType:  w.CuisineType,
		Difficulty:   mealplan.Difficulty(w.Difficulty),
	}
}

func toNutrition(w nutritionWire) mealplan.Nutrition {
	return mealplan.Nutrition{
		Calories: w.Calories.Float(),
		Protein:  w.Protein.Float(),
		Carbs:    w.Carbs.Float(),
		Fat:      w.Fat.Float(),
		Fiber:    w.Fiber.Float(),
		Sugar:    w.Sugar.Float(),
	}
}

func collectWarnings(plan *mealplan.MealPlan, prefs mealplan.MealPreferences, goals mealplan.HealthGoals, budget mealplan.BudgetConstraints) []string {
	var warnings []string

	if budget.DailyBudget > 0 && plan.TotalCost > budget.DailyBudget*budgetSlack {
		warnings = append(warnings, fmt.Sprintf(
			"total cost ₹%.2f exceeds the daily budget of ₹%.2f", plan.TotalCost, budget.DailyBudget))
	}

	if goals.CalorieTarget > 0 {
		if diff := math.Abs(plan.TotalNutrition.Calories - float64(goals.CalorieTarget)); diff > calorieTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"total calories %.0f is off the %d calorie target by %.0f", plan.TotalNutrition.Calories, goals.CalorieTarget, diff))
		}
	}

	for _, meal := range plan.Meals() {
		band := slotCostBands[meal.Type]
		if meal.Cost < band[0] || meal.Cost > band[1] {
			warnings = append(warnings, fmt.Sprintf(
				"%s cost ₹%.2f is outside the typical ₹%.0f-%.0f range", meal.Type, meal.Cost, band[0], band[1]))
		}
	}

	warnings = append(warnings, restrictionWarnings(plan, prefs.DietaryRestrictions)...)
	return warnings
}

func restrictionWarnings(plan *mealplan.MealPlan, restrictions []string) []string {
	var warnings []string

	for _, restriction := range restrictions {
		keywords, ok := restrictionKeywords[normalizeRestriction(restriction)]
		if !ok {
			continue
		}

		for _, meal := range plan.Meals() {
			if keyword := findKeyword(meal, keywords); keyword != "" {
				warnings = append(warnings, fmt.Sprintf(
					"%s %q appears to contain %q, which conflicts with the %s restriction",
					meal.Type, meal.Name, keyword, restriction))
			}
		}
	}

	return warnings
}

func normalizeRestriction(restriction string) string {
	r := strings.ToLower(strings.TrimSpace(restriction))
	r = strings.ReplaceAll(r, "_", "-")
	return strings.ReplaceAll(r, " ", "-")
}

// findKeyword returns the first conflicting keyword found in the meal name or
// ingredient lines, or "" when the meal looks compliant.
func findKeyword(meal *mealplan.Meal, keywords []string) string {
	haystacks := make([]string, 0, len(meal.Ingredients)+1)
	haystacks = append(haystacks, strings.ToLower(meal.Name))
	for _, ingredient := range meal.Ingredients {
		haystacks = append(haystacks, strings.ToLower(ingredient))
	}

	for _, keyword := range keywords {
		for _, haystack := range haystacks {
			if strings.Contains(haystack, keyword) {
				return keyword
			}
		}
	}
	return ""
}
