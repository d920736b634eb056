package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nutriplan/v1/internal/domain/mealplan"
)

// Fixed meal slot times for the calendar export
var slotTimes = []struct {
	typ        mealplan.MealType
	label      string
	startHour  int
	startMin   int
	endHour    int
	endMin     int
}{
	{mealplan.MealTypeBreakfast, "Breakfast", 8, 0, 9, 0},
	{mealplan.MealTypeLunch, "Lunch", 12, 0, 13, 0},
	{mealplan.MealTypeSnack, "Snack", 16, 0, 16, 30},
	{mealplan.MealTypeDinner, "Dinner", 19, 0, 20, 0},
}

// icsTimeLayout is the iCalendar floating local time format. Times are
// deliberately not UTC: a 08:00 breakfast should read 08:00 in the user's
// calendar regardless of timezone.
const icsTimeLayout = "20060102T150405"

// CalendarICS renders the plan as a VCALENDAR with one VEVENT per populated
// meal slot on the given date, at the fixed slot times.
func CalendarICS(plan *mealplan.MealPlan, date time.Time) string {
	var events []string

	meals := map[mealplan.MealType]*mealplan.Meal{
		mealplan.MealTypeBreakfast: &plan.Breakfast,
		mealplan.MealTypeLunch:     &plan.Lunch,
		mealplan.MealTypeSnack:     &plan.Snack,
		mealplan.MealTypeDinner:    &plan.Dinner,
	}

	for _, slot := range slotTimes {
		meal := meals[slot.typ]
		if meal.Name == "" {
			continue
		}

		start := time.Date(date.Year(), date.Month(), date.Day(), slot.startHour, slot.startMin, 0, 0, date.Location())
		end := time.Date(date.Year(), date.Month(), date.Day(), slot.endHour, slot.endMin, 0, 0, date.Location())

		events = append(events, strings.Join([]string{
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:%s@nutriplan.app", uuid.New().String()),
			fmt.Sprintf("DTSTART:%s", start.Format(icsTimeLayout)),
			fmt.Sprintf("DTEND:%s", end.Format(icsTimeLayout)),
			fmt.Sprintf("SUMMARY:%s: %s", slot.label, escapeICSText(meal.Name)),
			"DESCRIPTION:Meal planned by NutriPlan AI",
			"END:VEVENT",
		}, "\r\n"))
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//NutriPlan//Meal Planner//EN",
	}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR")

	return strings.Join(lines, "\r\n") + "\r\n"
}

// escapeICSText escapes the characters RFC 5545 reserves in text values
func escapeICSText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
