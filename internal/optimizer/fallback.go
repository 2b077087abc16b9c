package optimizer

import (
	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/quality"
)

const fallbackItemsPerMeal = 2

// FallbackPlan builds a plan without search: one meal per main slot, made
// of the first compliant foods of the slot's pool, rotated by day. It never
// fails; an empty catalog yields days of empty meals.
func FallbackPlan(cat catalog.Catalog, profile menu.UserProfile, days int, scorer quality.Scorer) *menu.Candidate {
	if days < 0 {
		days = 0
	}
	pools := make(map[menu.MealType][]*catalog.FoodItem)
	for _, t := range menu.Slots(false) {
		for _, f := range cat.Lookup(t.Categories()...) {
			if !profile.Restricts(f.Categories) {
				pools[t] = append(pools[t], f)
			}
		}
	}

	plan := make([]*menu.Day, days)
	for i := range plan {
		d := menu.NewDay(i, profile.DateFor(i))
		for _, t := range menu.Slots(false) {
			pool := pools[t]
			var foods []*catalog.FoodItem
			for k := 0; k < fallbackItemsPerMeal && k < len(pool); k++ {
				foods = append(foods, pool[(i*fallbackItemsPerMeal+k)%len(pool)])
			}
			m := menu.NewMeal(t, dedupe(foods))
			m.Quality = scorer.ScoreMeal(m)
			d.Meals[t] = m
		}
		plan[i] = d
	}
	return menu.NewCandidate(plan)
}

func dedupe(foods []*catalog.FoodItem) []*catalog.FoodItem {
	seen := make(map[string]bool, len(foods))
	out := foods[:0]
	for _, f := range foods {
		if !seen[f.ID] {
			seen[f.ID] = true
			out = append(out, f)
		}
	}
	return out
}
