package optimizer

import (
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/quality"
)

// MealTimer moves protein after training on the profile's activity days:
// the most protein-dense breakfast item goes to the afternoon snack, or to
// dinner when snacks are off.
type MealTimer struct {
	profile menu.UserProfile
	scorer  quality.Scorer
}

// NewMealTimer binds the profile's activity days.
func NewMealTimer(profile menu.UserProfile, scorer quality.Scorer) *MealTimer {
	return &MealTimer{profile: profile, scorer: scorer}
}

// Name implements PostProcessor.
func (t *MealTimer) Name() string { return "meal_timing" }

// Process implements PostProcessor.
func (t *MealTimer) Process(c *menu.Candidate) int {
	moved := 0
	for _, d := range c.Days {
		if !t.profile.IsActivityDay(d.Index) {
			continue
		}
		breakfast := d.Meals[menu.Breakfast]
		if breakfast == nil || len(breakfast.Ingredients) < 2 {
			continue
		}
		idx := mostProteinDense(breakfast)
		if idx < 0 {
			continue
		}

		target := t.target(d)
		if target == nil {
			continue
		}
		ing := breakfast.RemoveIngredient(idx)
		target.AddIngredient(ing)
		breakfast.Quality = t.scorer.ScoreMeal(breakfast)
		target.Quality = t.scorer.ScoreMeal(target)
		moved++
	}
	return moved
}

func (t *MealTimer) target(d *menu.Day) *menu.Meal {
	if m := d.Meals[menu.AfternoonSnack]; m != nil {
		return m
	}
	if t.profile.IncludeSnacks {
		m := menu.NewMeal(menu.AfternoonSnack, nil)
		d.Meals[menu.AfternoonSnack] = m
		return m
	}
	return d.Meals[menu.Dinner]
}

// mostProteinDense returns the index of the ingredient with the most
// protein per kcal, or -1 when none has protein.
func mostProteinDense(m *menu.Meal) int {
	best, bestDensity := -1, 0.0
	for i, ing := range m.Ingredients {
		if ing.Food == nil {
			continue
		}
		protein := ing.Food.Nutrients[nutrient.Protein]
		if protein <= 0 {
			continue
		}
		density := protein / max(ing.Food.Nutrients[nutrient.Calories], 1)
		if density > bestDensity {
			best, bestDensity = i, density
		}
	}
	return best
}
