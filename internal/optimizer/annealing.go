package optimizer

import (
	"math"
	"math/rand/v2"

	"menu-optimizer/internal/menu"
)

// temperature decays linearly from 1 at generation 0 to 0 at the last one.
func temperature(gen, generations int) float64 {
	if generations <= 0 {
		return 0
	}
	return math.Max(0, 1-float64(gen)/float64(generations))
}

// metropolisAccept always takes an improvement and otherwise accepts with
// probability exp(delta/T). At T <= 0 only improvements pass.
func metropolisAccept(current, proposed, temp float64, rng *rand.Rand) bool {
	if proposed > current {
		return true
	}
	if temp <= 0 {
		return false
	}
	return rng.Float64() < math.Exp((proposed-current)/temp)
}

// anneal proposes a radically mutated clone for every non-elite candidate
// and keeps it under the Metropolis criterion. It returns the number of
// accepted clones.
func (r *run) anneal(pop []*menu.Candidate, gen int) int {
	temp := temperature(gen, r.cfg.Generations)
	accepted := 0
	for i := r.elites(len(pop)); i < len(pop); i++ {
		c := pop[i]
		clone := c.Clone()
		radicalMutate(clone, r.factory, r.slots, r.rng)

		current := r.eval.Fitness(c)
		proposed := r.eval.Fitness(clone)
		if metropolisAccept(current, proposed, temp, r.rng) {
			clone.Fitness = proposed
			pop[i] = clone
			accepted++
		}
	}
	return accepted
}
