package optimizer

import (
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"menu-optimizer/internal/menu"
)

const (
	tournamentSize = 3
	// lightMutationDayShare is the share of days a light mutation touches.
	lightMutationDayShare = 0.3
	radicalSlotRate       = 0.5
)

// tournamentSelect draws tournamentSize positions and returns the candidate
// at the smallest one. pop must be sorted best-first.
func tournamentSelect(pop []*menu.Candidate, rng *rand.Rand) *menu.Candidate {
	best := rng.IntN(len(pop))
	for i := 1; i < tournamentSize; i++ {
		if j := rng.IntN(len(pop)); j < best {
			best = j
		}
	}
	return pop[best]
}

// crossover builds a child that takes each day/slot meal from a or b with
// equal odds. With probability 1-rate the child is a copy of a. The child
// never shares meals with either parent.
func crossover(a, b *menu.Candidate, rate float64, slots []menu.MealType, rng *rand.Rand) *menu.Candidate {
	if rng.Float64() >= rate {
		child := a.Clone()
		child.ID = uuid.NewString()
		child.Fitness = 0
		return child
	}

	days := make([]*menu.Day, len(a.Days))
	for i, da := range a.Days {
		var db *menu.Day
		if i < len(b.Days) {
			db = b.Days[i]
		}
		d := menu.NewDay(da.Index, da.Date)
		for _, t := range slots {
			src := da
			if db != nil && rng.IntN(2) == 1 {
				src = db
			}
			if m, ok := src.Meals[t]; ok && m != nil {
				d.Meals[t] = m.Clone()
			}
		}
		days[i] = d
	}
	return menu.NewCandidate(days)
}

// lightMutate, with probability rate, regenerates one random slot on about
// a third of the days. It reports whether anything changed.
func lightMutate(c *menu.Candidate, rate float64, f *mealFactory, slots []menu.MealType, rng *rand.Rand) bool {
	if len(c.Days) == 0 || len(slots) == 0 || rng.Float64() >= rate {
		return false
	}
	n := max(1, int(math.Round(lightMutationDayShare*float64(len(c.Days)))))
	for _, di := range sampleIndexes(rng, len(c.Days), n) {
		t := slots[rng.IntN(len(slots))]
		c.Days[di].Meals[t] = f.build(t, rng)
	}
	return true
}

// radicalMutate regenerates every slot of every day with 50% probability.
func radicalMutate(c *menu.Candidate, f *mealFactory, slots []menu.MealType, rng *rand.Rand) int {
	changed := 0
	for _, d := range c.Days {
		for _, t := range slots {
			if rng.Float64() < radicalSlotRate {
				d.Meals[t] = f.build(t, rng)
				changed++
			}
		}
	}
	return changed
}
