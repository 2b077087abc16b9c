// Package menu holds the plan structures the optimizer evolves: meals, days
// and candidates, plus the user profile they are scored against.
package menu

import (
	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/nutrient"
)

// MealType names a meal slot within a day.
type MealType string

const (
	Breakfast      MealType = "breakfast"
	MorningSnack   MealType = "morning_snack"
	Lunch          MealType = "lunch"
	AfternoonSnack MealType = "afternoon_snack"
	Dinner         MealType = "dinner"
)

var slotOrder = []MealType{Breakfast, MorningSnack, Lunch, AfternoonSnack, Dinner}

// Slots returns the meal types of a day in serving order.
func Slots(includeSnacks bool) []MealType {
	if includeSnacks {
		out := make([]MealType, len(slotOrder))
		copy(out, slotOrder)
		return out
	}
	return []MealType{Breakfast, Lunch, Dinner}
}

// IsSnack reports whether the slot is optional.
func (t MealType) IsSnack() bool {
	return t == MorningSnack || t == AfternoonSnack
}

// Multiplier is the portion scale applied to a food's reference nutrients.
func (t MealType) Multiplier() float64 {
	switch t {
	case Breakfast:
		return 0.8
	case Lunch:
		return 1.0
	case Dinner:
		return 1.2
	default:
		return 0.5
	}
}

// Categories lists the food categories suitable for the slot.
func (t MealType) Categories() []string {
	switch t {
	case Breakfast:
		return []string{"grain", "dairy", "fruit", "egg", "breakfast"}
	case Lunch, Dinner:
		return []string{"protein", "grain", "vegetable", "legume"}
	default:
		return []string{"fruit", "nuts", "dairy", "snack"}
	}
}

// Ingredient references a catalog food with the portion it is served at.
type Ingredient struct {
	Food       *catalog.FoodItem `json:"-"`
	FoodID     string            `json:"food_id"`
	Name       string            `json:"name"`
	Portion    float64           `json:"portion"`
	Categories []string          `json:"categories"`
}

// NewIngredient copies the food's categories so restriction checks never
// need the catalog again.
func NewIngredient(food *catalog.FoodItem, portion float64) Ingredient {
	cats := make([]string, len(food.Categories))
	copy(cats, food.Categories)
	return Ingredient{
		Food:       food,
		FoodID:     food.ID,
		Name:       food.Name,
		Portion:    portion,
		Categories: cats,
	}
}

// Nutrients is the ingredient's contribution at its portion.
func (i Ingredient) Nutrients() nutrient.Vector {
	if i.Food == nil {
		return nutrient.Vector{}
	}
	return i.Food.Nutrients.Scale(i.Portion)
}

func (i Ingredient) cost() float64 {
	if i.Food == nil {
		return 0
	}
	return i.Food.Cost * i.Portion
}

func (i Ingredient) carbon() float64 {
	if i.Food == nil {
		return 0
	}
	return i.Food.Carbon * i.Portion
}

// HasCategory reports whether the copied categories contain any of cats.
func (i Ingredient) HasCategory(cats ...string) bool {
	return intersects(i.Categories, cats)
}

func (i Ingredient) clone() Ingredient {
	cp := i
	cp.Categories = make([]string, len(i.Categories))
	copy(cp.Categories, i.Categories)
	return cp
}

// Meal is one served slot. Nutrients, Cost, Carbon and PrepMinutes are
// derived from the ingredients and kept current by the mutators below.
type Meal struct {
	Type        MealType        `json:"type"`
	Ingredients []Ingredient    `json:"ingredients"`
	Nutrients   nutrient.Vector `json:"-"`
	Cost        float64         `json:"cost"`
	Carbon      float64         `json:"carbon"`
	PrepMinutes int             `json:"prep_minutes"`
	Quality     float64         `json:"quality"`
}

// NewMeal serves each food at the slot's portion multiplier.
func NewMeal(t MealType, foods []*catalog.FoodItem) *Meal {
	m := &Meal{Type: t}
	for _, f := range foods {
		m.Ingredients = append(m.Ingredients, NewIngredient(f, t.Multiplier()))
	}
	m.Recalculate()
	return m
}

// Recalculate rebuilds every derived field from the ingredients.
func (m *Meal) Recalculate() {
	m.Nutrients = nutrient.Vector{}
	m.Cost, m.Carbon = 0, 0
	for _, ing := range m.Ingredients {
		m.Nutrients = m.Nutrients.Add(ing.Nutrients())
		m.Cost += ing.cost()
		m.Carbon += ing.carbon()
	}
	m.updatePrep()
}

// updatePrep estimates the longest item plus two minutes per extra item.
func (m *Meal) updatePrep() {
	longest := 0
	for _, ing := range m.Ingredients {
		if ing.Food != nil && ing.Food.PrepMinutes > longest {
			longest = ing.Food.PrepMinutes
		}
	}
	extra := 0
	if n := len(m.Ingredients); n > 1 {
		extra = 2 * (n - 1)
	}
	m.PrepMinutes = longest + extra
}

// AddIngredient appends an ingredient and adds its contribution.
func (m *Meal) AddIngredient(ing Ingredient) {
	m.Ingredients = append(m.Ingredients, ing)
	m.Nutrients = m.Nutrients.Add(ing.Nutrients())
	m.Cost += ing.cost()
	m.Carbon += ing.carbon()
	m.updatePrep()
}

// RemoveIngredient drops the ingredient at idx and subtracts its contribution.
func (m *Meal) RemoveIngredient(idx int) Ingredient {
	ing := m.Ingredients[idx]
	m.Ingredients = append(m.Ingredients[:idx:idx], m.Ingredients[idx+1:]...)
	m.Nutrients = m.Nutrients.Sub(ing.Nutrients())
	m.Cost = nonNegative(m.Cost - ing.cost())
	m.Carbon = nonNegative(m.Carbon - ing.carbon())
	m.updatePrep()
	return ing
}

// ReplaceIngredient swaps the food at idx, keeping the portion.
func (m *Meal) ReplaceIngredient(idx int, food *catalog.FoodItem) Ingredient {
	old := m.Ingredients[idx]
	next := NewIngredient(food, old.Portion)
	m.Ingredients[idx] = next
	m.Nutrients = m.Nutrients.Sub(old.Nutrients()).Add(next.Nutrients())
	m.Cost = nonNegative(m.Cost - old.cost() + next.cost())
	m.Carbon = nonNegative(m.Carbon - old.carbon() + next.carbon())
	m.updatePrep()
	return old
}

// Contains reports whether the food is already part of the meal.
func (m *Meal) Contains(foodID string) bool {
	for _, ing := range m.Ingredients {
		if ing.FoodID == foodID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Food pointers are shared since foods are immutable.
func (m *Meal) Clone() *Meal {
	if m == nil {
		return nil
	}
	cp := *m
	cp.Ingredients = make([]Ingredient, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		cp.Ingredients[i] = ing.clone()
	}
	return &cp
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
