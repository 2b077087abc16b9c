package optimizer

import (
	"errors"
	"math/rand/v2"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/quality"
)

// ErrEmptyCatalog is returned when the catalog has no foods at all.
var ErrEmptyCatalog = errors.New("food catalog is empty")

const (
	minMealItems = 2
	maxMealItems = 4
)

// mealFactory draws random category-appropriate meals. Food pools are
// resolved once per run.
type mealFactory struct {
	pools  map[menu.MealType][]*catalog.FoodItem
	scorer quality.Scorer
}

func newMealFactory(cat catalog.Catalog, scorer quality.Scorer) *mealFactory {
	f := &mealFactory{
		pools:  make(map[menu.MealType][]*catalog.FoodItem),
		scorer: scorer,
	}
	for _, t := range menu.Slots(true) {
		f.pools[t] = cat.Lookup(t.Categories()...)
	}
	return f
}

// build returns a meal of 2-4 distinct foods. A thin pool yields a smaller
// or empty meal instead of an error.
func (f *mealFactory) build(t menu.MealType, rng *rand.Rand) *menu.Meal {
	pool := f.pools[t]
	n := minMealItems + rng.IntN(maxMealItems-minMealItems+1)
	if n > len(pool) {
		n = len(pool)
	}

	foods := make([]*catalog.FoodItem, 0, n)
	for _, idx := range sampleIndexes(rng, len(pool), n) {
		foods = append(foods, pool[idx])
	}

	m := menu.NewMeal(t, foods)
	m.Quality = f.scorer.ScoreMeal(m)
	return m
}

// sampleIndexes draws k distinct indexes from [0,n) with a partial shuffle.
func sampleIndexes(rng *rand.Rand, n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// newDay fills every slot of the profile's day layout.
func (f *mealFactory) newDay(index int, profile menu.UserProfile, rng *rand.Rand) *menu.Day {
	d := menu.NewDay(index, profile.DateFor(index))
	for _, t := range menu.Slots(profile.IncludeSnacks) {
		d.Meals[t] = f.build(t, rng)
	}
	return d
}

// newPopulation builds size independent candidates of the given length.
func newPopulation(cat catalog.Catalog, f *mealFactory, profile menu.UserProfile, size int, rng *rand.Rand) ([]*menu.Candidate, error) {
	if len(cat.All()) == 0 {
		return nil, ErrEmptyCatalog
	}
	pop := make([]*menu.Candidate, size)
	for i := range pop {
		days := make([]*menu.Day, profile.Days)
		for d := range days {
			days[d] = f.newDay(d, profile, rng)
		}
		pop[i] = menu.NewCandidate(days)
	}
	return pop, nil
}
