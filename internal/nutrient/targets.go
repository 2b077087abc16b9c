package nutrient

// TargetRange is the daily {min, optimal, max} window for one nutrient.
type TargetRange struct {
	Min     float64 `toml:"min"`
	Optimal float64 `toml:"optimal"`
	Max     float64 `toml:"max"`
}

// Targets holds the daily range of every nutrient and which of them are scored.
type Targets struct {
	Ranges  [Count]TargetRange
	Tracked [Count]bool
}

// Set stores the range for n and marks it tracked.
func (t *Targets) Set(n Nutrient, r TargetRange) {
	t.Ranges[n] = r
	t.Tracked[n] = true
}

// TrackedNutrients lists the nutrients that take part in scoring.
func (t Targets) TrackedNutrients() []Nutrient {
	var out []Nutrient
	for i, ok := range t.Tracked {
		if ok {
			out = append(out, Nutrient(i))
		}
	}
	return out
}

// DefaultTargets returns adult daily targets. Protein scales with body weight.
func DefaultTargets(bodyWeightKg float64) Targets {
	if bodyWeightKg <= 0 {
		bodyWeightKg = 70
	}
	var t Targets
	t.Set(Calories, TargetRange{Min: 1800, Optimal: 2200, Max: 2800})
	t.Set(Protein, TargetRange{Min: 0.8 * bodyWeightKg, Optimal: 1.2 * bodyWeightKg, Max: 2.0 * bodyWeightKg})
	t.Set(Carbohydrates, TargetRange{Min: 200, Optimal: 275, Max: 350})
	t.Set(Fat, TargetRange{Min: 50, Optimal: 70, Max: 95})
	t.Set(Fiber, TargetRange{Min: 25, Optimal: 30, Max: 50})
	t.Set(Iron, TargetRange{Min: 14, Optimal: 16, Max: 45})
	t.Set(Calcium, TargetRange{Min: 950, Optimal: 1000, Max: 2500})
	t.Set(Zinc, TargetRange{Min: 8, Optimal: 11, Max: 40})
	t.Set(VitaminB12, TargetRange{Min: 2.4, Optimal: 4, Max: 100})
	t.Set(VitaminD, TargetRange{Min: 10, Optimal: 15, Max: 100})
	t.Set(Omega3, TargetRange{Min: 1.6, Optimal: 2.5, Max: 6})
	t.Set(VitaminC, TargetRange{Min: 75, Optimal: 110, Max: 2000})
	t.Set(Magnesium, TargetRange{Min: 300, Optimal: 400, Max: 700})
	return t
}
