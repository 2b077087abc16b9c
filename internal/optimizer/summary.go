package optimizer

import (
	"math"

	"menu-optimizer/internal/menu"
)

// Summarize computes the aggregate view of a finalized plan.
func (e *Evaluator) Summarize(c *menu.Candidate) menu.Summary {
	nutrition := 0.0
	if len(c.Days) > 0 {
		nutrition = e.NutritionScore(c)
	}
	return menu.Summary{
		TotalCost:      c.TotalCost(),
		NutritionScore: int(math.Round(100 * clamp01(nutrition))),
		Carbon:         c.TotalCarbon(),
		AverageQuality: c.AverageQuality(),
	}
}
