// Package export renders meal plans into interchange formats: a shopping
// list CSV and an iCalendar day schedule.
package export

import (
	"encoding/csv"
	"strings"

	"github.com/nutriplan/v1/internal/domain/mealplan"
)

// Ingredient keyword table for category assignment. First category whose
// keyword matches wins; unmatched lines land in Other.
var ingredientCategories = []struct {
	name     string
	keywords []string
}{
	{"Vegetables", []string{"onion", "garlic", "ginger", "tomato", "potato", "carrot", "peas", "spinach", "cauliflower", "cabbage"}},
	{"Proteins", []string{"chicken", "fish", "egg", "paneer", "tofu", "lentils", "chickpeas", "beans", "dal"}},
	{"Grains", []string{"rice", "wheat", "bread", "roti", "oats", "quinoa", "poha"}},
	{"Dairy", []string{"milk", "yogurt", "curd", "cheese", "butter", "ghee"}},
	{"Spices", []string{"turmeric", "cumin", "coriander", "salt", "pepper", "chili", "garam masala"}},
}

// CategorizeIngredient maps an ingredient line to its shopping category
func CategorizeIngredient(ingredient string) string {
	lower := strings.ToLower(ingredient)
	for _, category := range ingredientCategories {
		for _, keyword := range category.keywords {
			if strings.Contains(lower, keyword) {
				return category.name
			}
		}
	}
	return "Other"
}

// ShoppingListCSV renders the plan's combined ingredient list as CSV with an
// Item,Category header. Ingredients are de-duplicated by exact string match
// across the four meals, keeping first-seen order.
func ShoppingListCSV(plan *mealplan.MealPlan) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	_ = w.Write([]string{"Item", "Category"})

	seen := make(map[string]bool)
	for _, meal := range plan.Meals() {
		for _, ingredient := range meal.Ingredients {
			if seen[ingredient] {
				continue
			}
			seen[ingredient] = true
			_ = w.Write([]string{ingredient, CategorizeIngredient(ingredient)})
		}
	}

	w.Flush()
	return b.String()
}
