package video

import "github.com/nutriplan/v1/internal/ports/inbound"

// Per-scene credit cost for each provider
const (
	runwayCostPerScene = 5
	pikaCostPerScene   = 1
	lumaCostPerScene   = 1
)

// DefaultProviderBudget returns the free-tier starting credits:
// Runway 125/month, Pika 30/day, Luma 20.
func DefaultProviderBudget() inbound.ProviderBudget {
	return inbound.ProviderBudget{Runway: 125, Pika: 30, Luma: 20}
}

// ChooseProvider picks the provider for the next render from the remaining
// credits. Runway is the final fallback since its credits reset monthly.
func ChooseProvider(budget inbound.ProviderBudget) string {
	switch {
	case budget.Runway > 10:
		return "runway"
	case budget.Pika > 5:
		return "pika"
	case budget.Luma > 3:
		return "luma"
	default:
		return "runway"
	}
}

// debit returns the budget after charging scenes renders on provider.
// Balances can go negative on the runway fallback; the next reset clears it.
func debit(budget inbound.ProviderBudget, provider string, scenes int) inbound.ProviderBudget {
	switch provider {
	case "runway":
		budget.Runway -= runwayCostPerScene * scenes
	case "pika":
		budget.Pika -= pikaCostPerScene * scenes
	case "luma":
		budget.Luma -= lumaCostPerScene * scenes
	}
	return budget
}
