package optimizer

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/quality"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func starterCatalog() *catalog.Memory {
	return catalog.NewMemory(catalog.StarterFoods())
}

func baseProfile(days int) menu.UserProfile {
	return menu.UserProfile{
		Days:         days,
		Budget:       menu.BudgetMedium,
		CookingTime:  menu.CookingMedium,
		BodyWeightKg: 70,
		StartDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func testConfig(seed uint64) Config {
	cfg := FastConfig()
	cfg.Seed = seed
	return cfg
}

func newTestOptimizer(t *testing.T, cat catalog.Catalog, cfg Config) *Optimizer {
	t.Helper()
	o, err := New(cat, nil, nil, cfg, nil)
	require.NoError(t, err)
	return o
}

// randomCandidate builds an unrepaired candidate the way the initializer does.
func randomCandidate(cat catalog.Catalog, profile menu.UserProfile, rng *rand.Rand) *menu.Candidate {
	f := newMealFactory(cat, quality.FoodGradeScorer{})
	days := make([]*menu.Day, profile.Days)
	for i := range days {
		days[i] = f.newDay(i, profile, rng)
	}
	return menu.NewCandidate(days)
}

// food builds a catalog item with the given nutrient amounts.
func food(id string, cats []string, cost float64, amounts map[nutrient.Nutrient]float64) *catalog.FoodItem {
	f := &catalog.FoodItem{ID: id, Name: id, Categories: cats, Cost: cost, Quality: 60, PrepMinutes: 5}
	for n, v := range amounts {
		f.Nutrients[n] = v
	}
	return f
}

// planOf builds a candidate with one meal per listed day, all of type t.
func planOf(t menu.MealType, days ...[]*catalog.FoodItem) *menu.Candidate {
	out := make([]*menu.Day, len(days))
	for i, foods := range days {
		d := menu.NewDay(i, time.Time{})
		d.Meals[t] = menu.NewMeal(t, foods)
		out[i] = d
	}
	return menu.NewCandidate(out)
}

func allIngredients(c *menu.Candidate) []menu.Ingredient {
	var out []menu.Ingredient
	for _, m := range c.Meals() {
		out = append(out, m.Ingredients...)
	}
	return out
}
