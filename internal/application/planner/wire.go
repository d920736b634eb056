package planner

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a float64 that tolerates the numeric sloppiness of model output:
// JSON numbers parse normally, numeric strings are coerced, and null or
// garbage becomes 0. Coercion is idempotent, so normalizing an
// already-normalized payload changes nothing.
type Number float64

// UnmarshalJSON implements lenient numeric decoding
func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// Float returns the coerced value
func (n Number) Float() float64 {
	return float64(n)
}

// Wire structs mirror the JSON schemas in the prompts, with every numeric
// field declared as Number so a single stringly-typed value cannot fail the
// whole plan.

type nutritionWire struct {
	Calories Number `json:"calories"`
	Protein  Number `json:"protein"`
	Carbs    Number `json:"carbs"`
	Fat      Number `json:"fat"`
	Fiber    Number `json:"fiber"`
	Sugar    Number `json:"sugar"`
}

type mealWire struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	Description  string        `json:"description"`
	Cost         Number        `json:"cost"`
	Nutrition    nutritionWire `json:"nutrition"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions"`
	PrepTime     string        `json:"prepTime"`
	Servings     Number        `json:"servings"`
	Tips         []string      `json:"tips"`
	CuisineType  string        `json:"cuisineType"`
	Difficulty   string        `json:"difficulty"`
}

type planWire struct {
	Breakfast      mealWire      `json:"breakfast"`
	Lunch          mealWire      `json:"lunch"`
	Snack          mealWire      `json:"snack"`
	Dinner         mealWire      `json:"dinner"`
	TotalNutrition nutritionWire `json:"totalNutrition"`
	TotalCost      Number        `json:"totalCost"`
}

type recipeNutritionWire struct {
	Calories Number `json:"calories"`
	Protein  Number `json:"protein"`
	Carbs    Number `json:"carbs"`
	Fat      Number `json:"fat"`
}

type recipeWire struct {
	Name          string              `json:"name"`
	Ingredients   []string            `json:"ingredients"`
	Instructions  []string            `json:"instructions"`
	CookingTime   string              `json:"cookingTime"`
	Difficulty    string              `json:"difficulty"`
	Nutrition     recipeNutritionWire `json:"nutrition"`
	EstimatedCost Number              `json:"estimatedCost"`
}

type sceneWire struct {
	Visual    string `json:"visual"`
	Narration string `json:"narration"`
	Duration  Number `json:"duration"`
}
