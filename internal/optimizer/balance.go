package optimizer

import (
	"gonum.org/v1/gonum/stat"

	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/quality"
)

// PostProcessor is an optional stage applied to the returned plan after the
// search. Process reports how many changes it made.
type PostProcessor interface {
	Name() string
	Process(c *menu.Candidate) int
}

// DayBalancer smooths per-nutrient outlier days by moving the top
// contributing ingredient to a light day. Best effort only.
type DayBalancer struct {
	targets nutrient.Targets
	scorer  quality.Scorer
}

// NewDayBalancer balances the nutrients tracked by targets.
func NewDayBalancer(targets nutrient.Targets, scorer quality.Scorer) *DayBalancer {
	return &DayBalancer{targets: targets, scorer: scorer}
}

// Name implements PostProcessor.
func (b *DayBalancer) Name() string { return "day_balance" }

// Process implements PostProcessor. A day above mean+2σ gives its top
// ingredient to the lightest meal of the lightest day below mean-σ.
func (b *DayBalancer) Process(c *menu.Candidate) int {
	if len(c.Days) < 2 {
		return 0
	}
	moves := 0
	for _, n := range b.targets.TrackedNutrients() {
		totals := make([]float64, len(c.Days))
		for i, d := range c.Days {
			totals[i] = d.Nutrients()[n]
		}
		mean, std := stat.MeanStdDev(totals, nil)
		if std == 0 {
			continue
		}
		high, low := mean+2*std, mean-std

		for i := range c.Days {
			if totals[i] <= high {
				continue
			}
			recv := -1
			for j, v := range totals {
				if v < low && (recv < 0 || v < totals[recv]) {
					recv = j
				}
			}
			if recv < 0 {
				continue
			}
			moved, ok := b.move(c.Days[i], c.Days[recv], n)
			if !ok {
				continue
			}
			totals[i] -= moved
			totals[recv] += moved
			moves++
		}
	}
	return moves
}

// move transfers the top contributor of n from the source day's heaviest
// meal into the receiving day's lightest meal. The source meal must keep
// at least one ingredient.
func (b *DayBalancer) move(from, to *menu.Day, n nutrient.Nutrient) (float64, bool) {
	src := extremeMeal(from, n, true)
	dst := extremeMeal(to, n, false)
	if src == nil || dst == nil || len(src.Ingredients) < 2 {
		return 0, false
	}

	top, amount := -1, 0.0
	for i, ing := range src.Ingredients {
		if v := ing.Nutrients()[n]; v > amount {
			top, amount = i, v
		}
	}
	if top < 0 {
		return 0, false
	}

	ing := src.RemoveIngredient(top)
	dst.AddIngredient(ing)
	src.Quality = b.scorer.ScoreMeal(src)
	dst.Quality = b.scorer.ScoreMeal(dst)
	return amount, true
}

// extremeMeal returns the meal with the most (or least) of n.
func extremeMeal(d *menu.Day, n nutrient.Nutrient, most bool) *menu.Meal {
	var best *menu.Meal
	for _, m := range d.OrderedMeals() {
		if best == nil ||
			(most && m.Nutrients[n] > best.Nutrients[n]) ||
			(!most && m.Nutrients[n] < best.Nutrients[n]) {
			best = m
		}
	}
	return best
}
