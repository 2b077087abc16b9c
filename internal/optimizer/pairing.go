package optimizer

import (
	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/quality"
)

const (
	ironRich     = 3.0
	vitaminCRich = 20.0
	calciumRich  = 150.0
)

// Pairer adds absorption partners: vitamin C next to iron-rich foods and
// vitamin D on calcium-rich days that lack it.
type Pairer struct {
	vitaminC      *catalog.FoodItem
	vitaminD      *catalog.FoodItem
	vitaminDDaily float64
	scorer        quality.Scorer
}

// NewPairer picks the partner foods once. Restricted foods are never used.
func NewPairer(cat catalog.Catalog, profile menu.UserProfile, targets nutrient.Targets, scorer quality.Scorer) *Pairer {
	p := &Pairer{scorer: scorer, vitaminDDaily: targets.Ranges[nutrient.VitaminD].Min}
	for _, f := range cat.All() {
		if profile.Restricts(f.Categories) {
			continue
		}
		if f.HasCategory("fruit", "vegetable") && f.Nutrients[nutrient.VitaminC] >= vitaminCRich &&
			(p.vitaminC == nil || f.Nutrients[nutrient.VitaminC] > p.vitaminC.Nutrients[nutrient.VitaminC]) {
			p.vitaminC = f
		}
		if f.Nutrients[nutrient.VitaminD] > 0 &&
			(p.vitaminD == nil || f.Nutrients[nutrient.VitaminD] > p.vitaminD.Nutrients[nutrient.VitaminD]) {
			p.vitaminD = f
		}
	}
	return p
}

// Name implements PostProcessor.
func (p *Pairer) Name() string { return "pairing" }

// Process implements PostProcessor.
func (p *Pairer) Process(c *menu.Candidate) int {
	added := 0
	for _, d := range c.Days {
		for _, m := range d.OrderedMeals() {
			if p.vitaminC != nil && hasFoodAtLeast(m, nutrient.Iron, ironRich) &&
				!hasFoodAtLeast(m, nutrient.VitaminC, vitaminCRich) && !m.Contains(p.vitaminC.ID) {
				p.add(m, p.vitaminC)
				added++
			}
			if p.vitaminD != nil && hasFoodAtLeast(m, nutrient.Calcium, calciumRich) &&
				d.Nutrients()[nutrient.VitaminD] < p.vitaminDDaily && !m.Contains(p.vitaminD.ID) {
				p.add(m, p.vitaminD)
				added++
			}
		}
	}
	return added
}

func (p *Pairer) add(m *menu.Meal, f *catalog.FoodItem) {
	m.AddIngredient(menu.NewIngredient(f, m.Type.Multiplier()))
	m.Quality = p.scorer.ScoreMeal(m)
}

// hasFoodAtLeast reports whether a food of the meal carries at least
// amount of n per reference portion.
func hasFoodAtLeast(m *menu.Meal, n nutrient.Nutrient, amount float64) bool {
	for _, ing := range m.Ingredients {
		if ing.Food != nil && ing.Food.Nutrients[n] >= amount {
			return true
		}
	}
	return false
}
