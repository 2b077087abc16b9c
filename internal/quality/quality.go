// Package quality provides meal quality scores on a 0-100 scale. Scores are
// derived from the grades stored with each food and never computed from
// nutrient data here.
package quality

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"menu-optimizer/internal/menu"
)

// UngradedScore is assumed for foods that were never graded.
const UngradedScore = 50.0

// Scorer scores a prepared meal.
type Scorer interface {
	ScoreMeal(m *menu.Meal) float64
}

// FoodGradeScorer averages the stored food grades, weighted by portion.
type FoodGradeScorer struct{}

// ScoreMeal implements Scorer. An empty meal scores zero.
func (FoodGradeScorer) ScoreMeal(m *menu.Meal) float64 {
	if m == nil || len(m.Ingredients) == 0 {
		return 0
	}
	var sum, weight float64
	for _, ing := range m.Ingredients {
		grade := UngradedScore
		if ing.Food != nil && ing.Food.Quality > 0 {
			grade = ing.Food.Quality
		}
		w := ing.Portion
		if w <= 0 {
			w = 1
		}
		sum += grade * w
		weight += w
	}
	return clamp(sum / weight)
}

// Cached memoizes another scorer by meal composition. It is safe for
// concurrent use, so one instance can serve parallel evaluation.
type Cached struct {
	inner Scorer
	mu    sync.RWMutex
	cache map[string]float64
}

// NewCached wraps inner.
func NewCached(inner Scorer) *Cached {
	return &Cached{inner: inner, cache: make(map[string]float64)}
}

// ScoreMeal implements Scorer.
func (c *Cached) ScoreMeal(m *menu.Meal) float64 {
	if m == nil {
		return 0
	}
	key := mealKey(m)

	c.mu.RLock()
	score, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return score
	}

	score = c.inner.ScoreMeal(m)
	c.mu.Lock()
	c.cache[key] = score
	c.mu.Unlock()
	return score
}

// Len returns the number of cached compositions.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func mealKey(m *menu.Meal) string {
	ids := make([]string, len(m.Ingredients))
	for i, ing := range m.Ingredients {
		ids[i] = ing.FoodID + "@" + strconv.FormatFloat(ing.Portion, 'f', 3, 64)
	}
	sort.Strings(ids)
	return string(m.Type) + ":" + strings.Join(ids, ",")
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
