package planner

import (
	"fmt"
	"strings"

	"github.com/nutriplan/v1/internal/domain/mealplan"
)

// joinOrNone renders a string list for a prompt, with "None" for empty input
// so the model never sees a dangling label.
func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// spaced turns snake_case enum values into prompt-friendly text
func spaced(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// BuildMealPlanPrompt assembles the full daily meal plan prompt. Every user
// input appears verbatim, including the literal calorie target and budget
// numbers, together with the Indian grocery reference prices and the exact
// JSON schema the response must follow.
func BuildMealPlanPrompt(prefs mealplan.MealPreferences, goals mealplan.HealthGoals, budget mealplan.BudgetConstraints) string {
	var b strings.Builder

	b.WriteString("You are a professional nutritionist and meal planning expert specializing in Indian cuisine and Indian market pricing. Create a complete daily meal plan based on these requirements:\n\n")

	b.WriteString("PREFERENCES:\n")
	fmt.Fprintf(&b, "- Cuisine: %s\n", prefs.CuisineType)
	fmt.Fprintf(&b, "- Dietary restrictions: %s\n", joinOrNone(prefs.DietaryRestrictions))
	fmt.Fprintf(&b, "- Disliked ingredients: %s\n\n", orNone(prefs.DislikedIngredients))

	b.WriteString("HEALTH GOALS:\n")
	fmt.Fprintf(&b, "- Primary goal: %s\n", spaced(string(goals.PrimaryGoal)))
	fmt.Fprintf(&b, "- Daily calorie target: %d calories\n", goals.CalorieTarget)
	fmt.Fprintf(&b, "- Health conditions: %s\n\n", joinOrNone(goals.HealthConditions))

	b.WriteString("BUDGET (Indian Rupees):\n")
	fmt.Fprintf(&b, "- Daily budget: ₹%.0f\n", budget.DailyBudget)
	fmt.Fprintf(&b, "- Budget priority: %s\n\n", spaced(string(budget.BudgetPriority)))

	b.WriteString(`IMPORTANT PRICING GUIDELINES FOR INDIAN MARKET:
- Use Indian Rupee (₹) for all costs
- Base pricing on average Indian grocery costs:
  * Rice/wheat: ₹40-60 per kg
  * Dal/pulses: ₹80-120 per kg
  * Vegetables: ₹20-80 per kg
  * Milk: ₹50-60 per liter
  * Cooking oil: ₹120-160 per liter
  * Spices: ₹100-300 per kg
- A typical Indian meal should cost between ₹30-120
- Consider regional Indian ingredients and cooking methods
- If budget is below ₹200/day, focus on dal-rice, seasonal vegetables, and affordable proteins

Create a meal plan with breakfast, lunch, snack, and dinner. Each meal must include:
- Authentic, culturally appropriate Indian name (if Indian cuisine selected)
- Detailed ingredient list with measurements in Indian units (kg, grams, liters, cups, teaspoons)
- Step-by-step cooking instructions (5-8 steps)
- Accurate nutritional breakdown (calories, protein, carbs, fat, fiber, sugar)
- Cost estimation in Indian Rupees (₹)
- Preparation time
- Indian cooking tips and techniques

Return ONLY valid JSON in this exact format:
{
  "breakfast": {
    "name": "meal name",
    "type": "breakfast",
    "description": "brief description",
    "cost": 0.00,
    "nutrition": {"calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0, "sugar": 0},
    "ingredients": ["ingredient 1", "ingredient 2"],
    "instructions": ["step 1", "step 2"],
    "prepTime": "15 minutes",
    "servings": 1,
    "tips": ["tip 1"],
    "cuisineType": "cuisine",
    "difficulty": "easy"
  },
  "lunch": { "same structure": true },
  "snack": { "same structure": true },
  "dinner": { "same structure": true },
  "totalNutrition": {"calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0, "sugar": 0},
  "totalCost": 0.00
}`)

	return b.String()
}

// BuildRecipePrompt assembles the single recipe prompt from free-text
// ingredients and an optional cuisine preference.
func BuildRecipePrompt(ingredients, cuisine string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a recipe using these available ingredients: %s\n", ingredients)
	if cuisine != "" {
		fmt.Fprintf(&b, "Cuisine preference: %s\n", cuisine)
	}

	b.WriteString(`
IMPORTANT: Use Indian market pricing in Rupees (₹) and Indian cooking methods.

Return a complete recipe with:
- Creative recipe name (use Indian names if appropriate)
- Full ingredient list with measurements in Indian units (grams, cups, teaspoons)
- Detailed cooking instructions suitable for Indian kitchens
- Cooking time and difficulty level
- Nutritional information (must be numbers, not strings)
- Cost estimation in Indian Rupees (must be a number, not string)

CRITICAL: All numeric values must be actual numbers, not strings.

Format as JSON with this EXACT structure (ensure all numbers are actual numbers):
{
  "name": "recipe name",
  "ingredients": ["ingredient with measurement"],
  "instructions": ["step by step"],
  "cookingTime": "time",
  "difficulty": "easy/medium/hard",
  "nutrition": {
    "calories": 0,
    "protein": 0,
    "carbs": 0,
    "fat": 0
  },
  "estimatedCost": 0.00
}`)

	return b.String()
}

// BuildVideoScriptPrompt assembles the scene-by-scene cooking video script
// prompt for a recipe.
func BuildVideoScriptPrompt(recipeName string, ingredients, steps []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a short cooking video script for this recipe: %s\n", recipeName)
	if len(ingredients) > 0 {
		fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(ingredients, ", "))
	}
	if len(steps) > 0 {
		b.WriteString("Cooking steps:\n")
		for i, step := range steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	b.WriteString(`
Break the recipe into 4-8 short scenes. Each scene needs a visual description
suitable for an AI video generator (close-up shots, Indian kitchen setting,
cinematic lighting) and a short voiceover narration line.

Return ONLY a valid JSON array in this exact format:
[
  {"visual": "close-up of hands dicing onions on a wooden board", "narration": "We start by finely dicing two onions", "duration": 4}
]

Durations are in seconds and must be numbers.`)

	return b.String()
}
