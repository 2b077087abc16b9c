package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/quality"
)

func TestTournamentSelect_PrefersFrontOfPopulation(t *testing.T) {
	pop := make([]*menu.Candidate, 10)
	index := make(map[*menu.Candidate]int)
	for i := range pop {
		pop[i] = menu.NewCandidate(nil)
		index[pop[i]] = i
	}

	rng := newRNG(11)
	counts := make([]int, len(pop))
	for i := 0; i < 5000; i++ {
		counts[index[tournamentSelect(pop, rng)]]++
	}

	assert.Greater(t, counts[0], counts[4])
	assert.Greater(t, counts[4], counts[9])
	// The last position only wins when all three draws land on it.
	assert.Less(t, counts[9], 50)
}

func TestCrossover_Structure(t *testing.T) {
	cat := starterCatalog()
	profile := baseProfile(5)
	profile.IncludeSnacks = true
	slots := menu.Slots(true)
	rng := newRNG(5)

	a := randomCandidate(cat, profile, rng)
	b := randomCandidate(cat, profile, rng)
	// Sparse parents: a has no morning snack, b has no afternoon snack.
	for i := range a.Days {
		delete(a.Days[i].Meals, menu.MorningSnack)
		delete(b.Days[i].Meals, menu.AfternoonSnack)
	}

	for trial := 0; trial < 20; trial++ {
		child := crossover(a, b, 1, slots, rng)
		require.Len(t, child.Days, len(a.Days))
		for i, d := range child.Days {
			for slot, m := range d.Meals {
				fromA, okA := a.Days[i].Meals[slot]
				fromB, okB := b.Days[i].Meals[slot]
				require.True(t, okA || okB, "slot %s of day %d absent from both parents", slot, i)
				sameAsA := okA && sameFoods(m, fromA)
				sameAsB := okB && sameFoods(m, fromB)
				assert.True(t, sameAsA || sameAsB, "slot %s of day %d not inherited", slot, i)
			}
		}
	}
}

func TestCrossover_ZeroRateCopiesFirstParent(t *testing.T) {
	cat := starterCatalog()
	rng := newRNG(6)
	a := randomCandidate(cat, baseProfile(3), rng)
	b := randomCandidate(cat, baseProfile(3), rng)

	child := crossover(a, b, 0, menu.Slots(false), rng)

	assert.NotEqual(t, a.ID, child.ID)
	ta, tc := a.TotalNutrients(), child.TotalNutrients()
	assert.InDeltaSlice(t, ta[:], tc[:], 1e-9)
	for i := range a.Days {
		for slot, m := range a.Days[i].Meals {
			assert.True(t, sameFoods(m, child.Days[i].Meals[slot]))
			assert.NotSame(t, m, child.Days[i].Meals[slot])
		}
	}
}

func TestCrossover_ChildIsIndependentOfParents(t *testing.T) {
	cat := starterCatalog()
	profile := baseProfile(4)
	profile.IncludeSnacks = true
	slots := menu.Slots(true)
	rng := newRNG(7)
	f := newMealFactory(cat, quality.FoodGradeScorer{})

	a := randomCandidate(cat, profile, rng)
	b := randomCandidate(cat, profile, rng)
	beforeA, beforeB := a.TotalNutrients(), b.TotalNutrients()
	costA, costB := a.TotalCost(), b.TotalCost()

	child := crossover(a, b, 1, slots, rng)
	extra := catalog.StarterFoods()[0]
	for _, m := range child.Meals() {
		m.AddIngredient(menu.NewIngredient(extra, 1))
		m.Ingredients[0].Categories[0] = "mutated"
	}
	radicalMutate(child, f, slots, rng)
	lightMutate(child, 1, f, slots, rng)

	assert.Equal(t, beforeA, a.TotalNutrients())
	assert.Equal(t, beforeB, b.TotalNutrients())
	assert.Equal(t, costA, a.TotalCost())
	assert.Equal(t, costB, b.TotalCost())
	for _, ing := range append(allIngredients(a), allIngredients(b)...) {
		assert.NotContains(t, ing.Categories, "mutated")
	}
}

func TestLightMutate(t *testing.T) {
	cat := starterCatalog()
	f := newMealFactory(cat, quality.FoodGradeScorer{})
	slots := menu.Slots(false)
	rng := newRNG(8)

	c := randomCandidate(cat, baseProfile(10), rng)
	before := make([]map[menu.MealType]*menu.Meal, len(c.Days))
	for i, d := range c.Days {
		before[i] = make(map[menu.MealType]*menu.Meal)
		for slot, m := range d.Meals {
			before[i][slot] = m
		}
	}

	assert.False(t, lightMutate(c, 0, f, slots, rng))
	assert.True(t, lightMutate(c, 1, f, slots, rng))

	changedDays := 0
	for i, d := range c.Days {
		changed := 0
		for _, slot := range slots {
			if d.Meals[slot] != before[i][slot] {
				changed++
			}
		}
		assert.LessOrEqual(t, changed, 1, "one slot per mutated day")
		if changed > 0 {
			changedDays++
		}
	}
	assert.Equal(t, 3, changedDays, "three of ten days are touched")
	assert.Len(t, c.Days, 10)
}

func TestRadicalMutate_RegeneratesAboutHalfTheSlots(t *testing.T) {
	cat := starterCatalog()
	f := newMealFactory(cat, quality.FoodGradeScorer{})
	profile := baseProfile(20)
	profile.IncludeSnacks = true
	slots := menu.Slots(true)
	rng := newRNG(9)

	c := randomCandidate(cat, profile, rng)
	changed := radicalMutate(c, f, slots, rng)

	total := len(c.Days) * len(slots)
	assert.InDelta(t, total/2, changed, float64(total)/5)
	for _, d := range c.Days {
		assert.Len(t, d.Meals, len(slots))
	}
}

func TestMealFactory_Build(t *testing.T) {
	t.Run("category appropriate and distinct", func(t *testing.T) {
		f := newMealFactory(starterCatalog(), quality.FoodGradeScorer{})
		rng := newRNG(10)
		for _, slot := range menu.Slots(true) {
			for i := 0; i < 20; i++ {
				m := f.build(slot, rng)
				require.GreaterOrEqual(t, len(m.Ingredients), minMealItems)
				require.LessOrEqual(t, len(m.Ingredients), maxMealItems)
				seen := map[string]bool{}
				for _, ing := range m.Ingredients {
					assert.True(t, ing.HasCategory(slot.Categories()...))
					assert.False(t, seen[ing.FoodID])
					seen[ing.FoodID] = true
					assert.Equal(t, slot.Multiplier(), ing.Portion)
				}
				assert.Greater(t, m.Quality, 0.0)
			}
		}
	})

	t.Run("thin pool yields partial meal", func(t *testing.T) {
		cat := catalog.NewMemory([]*catalog.FoodItem{
			food("only-grain", []string{"grain"}, 1, map[nutrient.Nutrient]float64{nutrient.Calories: 100}),
		})
		f := newMealFactory(cat, quality.FoodGradeScorer{})
		rng := newRNG(1)

		assert.Len(t, f.build(menu.Breakfast, rng).Ingredients, 1)
		assert.Empty(t, f.build(menu.MorningSnack, rng).Ingredients)
	})
}

func TestNewPopulation(t *testing.T) {
	cat := starterCatalog()
	f := newMealFactory(cat, quality.FoodGradeScorer{})
	profile := baseProfile(3)

	pop, err := newPopulation(cat, f, profile, 8, newRNG(2))
	require.NoError(t, err)
	require.Len(t, pop, 8)
	for _, c := range pop {
		assert.Len(t, c.Days, 3)
		assert.Equal(t, profile.StartDate.AddDate(0, 0, 2), c.Days[2].Date)
	}
	// Candidates never share meals.
	seen := map[*menu.Meal]bool{}
	for _, c := range pop {
		for _, m := range c.Meals() {
			assert.False(t, seen[m])
			seen[m] = true
		}
	}

	_, err = newPopulation(catalog.NewMemory(nil), f, profile, 8, newRNG(2))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func sameFoods(a, b *menu.Meal) bool {
	if a == nil || b == nil || len(a.Ingredients) != len(b.Ingredients) {
		return false
	}
	for i := range a.Ingredients {
		if a.Ingredients[i].FoodID != b.Ingredients[i].FoodID {
			return false
		}
	}
	return true
}
