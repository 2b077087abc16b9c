package menu

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"menu-optimizer/internal/nutrient"
)

// Day maps meal types to meals. A missing key means the slot is not served.
type Day struct {
	Index int                `json:"index"`
	Date  time.Time          `json:"date"`
	Meals map[MealType]*Meal `json:"meals"`
}

// NewDay returns an empty day.
func NewDay(index int, date time.Time) *Day {
	return &Day{Index: index, Date: date, Meals: make(map[MealType]*Meal)}
}

// OrderedMeals returns the served meals in slot order.
func (d *Day) OrderedMeals() []*Meal {
	var out []*Meal
	for _, t := range slotOrder {
		if m, ok := d.Meals[t]; ok && m != nil {
			out = append(out, m)
		}
	}
	return out
}

// Nutrients sums the day's meals.
func (d *Day) Nutrients() nutrient.Vector {
	var v nutrient.Vector
	for _, m := range d.OrderedMeals() {
		v = v.Add(m.Nutrients)
	}
	return v
}

// Cost sums the day's meal costs.
func (d *Day) Cost() float64 {
	var c float64
	for _, m := range d.OrderedMeals() {
		c += m.Cost
	}
	return c
}

// Contains reports whether any meal of the day uses the food.
func (d *Day) Contains(foodID string) bool {
	for _, m := range d.Meals {
		if m != nil && m.Contains(foodID) {
			return true
		}
	}
	return false
}

// Clone deep-copies the day and its meals.
func (d *Day) Clone() *Day {
	cp := &Day{Index: d.Index, Date: d.Date, Meals: make(map[MealType]*Meal, len(d.Meals))}
	for t, m := range d.Meals {
		cp.Meals[t] = m.Clone()
	}
	return cp
}

// Summary is the aggregate view of a finalized candidate.
type Summary struct {
	TotalCost      float64 `json:"total_cost"`
	NutritionScore int     `json:"nutrition_score"`
	Carbon         float64 `json:"carbon"`
	AverageQuality float64 `json:"average_quality"`
}

// Candidate is one multi-day plan. It owns its days and meals; use Clone
// before handing a copy to code that mutates it.
type Candidate struct {
	ID      string  `json:"id"`
	Days    []*Day  `json:"days"`
	Summary Summary `json:"summary"`
	Fitness float64 `json:"fitness"`
}

// NewCandidate wraps the days under a fresh identifier.
func NewCandidate(days []*Day) *Candidate {
	return &Candidate{ID: uuid.NewString(), Days: days}
}

// Clone returns a deep copy sharing no mutable state with c.
func (c *Candidate) Clone() *Candidate {
	cp := &Candidate{
		ID:      c.ID,
		Days:    make([]*Day, len(c.Days)),
		Summary: c.Summary,
		Fitness: c.Fitness,
	}
	for i, d := range c.Days {
		cp.Days[i] = d.Clone()
	}
	return cp
}

// Meals returns every served meal, day by day in slot order.
func (c *Candidate) Meals() []*Meal {
	var out []*Meal
	for _, d := range c.Days {
		out = append(out, d.OrderedMeals()...)
	}
	return out
}

// TotalNutrients sums every day.
func (c *Candidate) TotalNutrients() nutrient.Vector {
	var v nutrient.Vector
	for _, d := range c.Days {
		v = v.Add(d.Nutrients())
	}
	return v
}

// AverageDailyNutrients is the total divided by the day count.
func (c *Candidate) AverageDailyNutrients() nutrient.Vector {
	if len(c.Days) == 0 {
		return nutrient.Vector{}
	}
	return c.TotalNutrients().Scale(1 / float64(len(c.Days)))
}

// TotalCost sums the cost of every day.
func (c *Candidate) TotalCost() float64 {
	var total float64
	for _, d := range c.Days {
		total += d.Cost()
	}
	return total
}

// AverageDailyCost is zero for a candidate without days.
func (c *Candidate) AverageDailyCost() float64 {
	if len(c.Days) == 0 {
		return 0
	}
	return c.TotalCost() / float64(len(c.Days))
}

// TotalCarbon sums the per-meal carbon estimates.
func (c *Candidate) TotalCarbon() float64 {
	var total float64
	for _, m := range c.Meals() {
		total += m.Carbon
	}
	return total
}

// AverageQuality is the mean cached meal quality on a 0-100 scale.
func (c *Candidate) AverageQuality() float64 {
	meals := c.Meals()
	if len(meals) == 0 {
		return 0
	}
	var sum float64
	for _, m := range meals {
		sum += m.Quality
	}
	return sum / float64(len(meals))
}

// IngredientFrequency counts ingredient occurrences by lower-cased name.
func (c *Candidate) IngredientFrequency() map[string]int {
	freq := make(map[string]int)
	for _, m := range c.Meals() {
		for _, ing := range m.Ingredients {
			freq[strings.ToLower(ing.Name)]++
		}
	}
	return freq
}

// DaysContaining counts, per food ID, the days that use the food at least once.
func (c *Candidate) DaysContaining() map[string]int {
	counts := make(map[string]int)
	for _, d := range c.Days {
		seen := make(map[string]bool)
		for _, m := range d.Meals {
			if m == nil {
				continue
			}
			for _, ing := range m.Ingredients {
				if !seen[ing.FoodID] {
					seen[ing.FoodID] = true
					counts[ing.FoodID]++
				}
			}
		}
	}
	return counts
}
