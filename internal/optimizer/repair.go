package optimizer

import (
	"math/rand/v2"
	"sort"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/quality"
)

const (
	proteinPerKg  = 0.8
	proteinRich   = 15.0
	richPoolSize  = 3
	varietyCutoff = 0.7
)

// floor is a daily minimum closed by injecting foods richer than cutoff.
type floor struct {
	nutrient nutrient.Nutrient
	daily    float64
	cutoff   float64
	rich     []*catalog.FoodItem
}

var micronutrientFloors = []struct {
	n             nutrient.Nutrient
	daily, cutoff float64
}{
	{nutrient.Iron, 14, 3},
	{nutrient.Calcium, 950, 150},
	{nutrient.VitaminB12, 2.4, 1.0},
	{nutrient.VitaminD, 10, 2},
	{nutrient.Omega3, 1.6, 0.5},
}

// RepairStats counts the changes of one repair pass.
type RepairStats struct {
	Injections     int
	Replacements   int
	Unreplaceable  int
	VarietyChanges int
}

func (s *RepairStats) add(o RepairStats) {
	s.Injections += o.Injections
	s.Replacements += o.Replacements
	s.Unreplaceable += o.Unreplaceable
	s.VarietyChanges += o.VarietyChanges
}

// Repairer patches hard-floor violations in place. It is owned by a single
// run and draws from that run's generator.
type Repairer struct {
	profile  menu.UserProfile
	scorer   quality.Scorer
	rng      *rand.Rand
	allowed  []*catalog.FoodItem
	pools    map[menu.MealType][]*catalog.FoodItem
	floors   []floor
	maxSteps int
}

// NewRepairer prepares the floors and substitute pools for a profile.
// Restricted foods are never injected or used as substitutes.
func NewRepairer(cat catalog.Catalog, profile menu.UserProfile, scorer quality.Scorer, maxStepsPerDay int, rng *rand.Rand) *Repairer {
	r := &Repairer{
		profile:  profile,
		scorer:   scorer,
		rng:      rng,
		pools:    make(map[menu.MealType][]*catalog.FoodItem),
		maxSteps: max(1, maxStepsPerDay),
	}
	for _, f := range cat.All() {
		if !profile.Restricts(f.Categories) {
			r.allowed = append(r.allowed, f)
		}
	}
	for _, t := range menu.Slots(true) {
		for _, f := range cat.Lookup(t.Categories()...) {
			if !profile.Restricts(f.Categories) {
				r.pools[t] = append(r.pools[t], f)
			}
		}
	}

	weight := profile.BodyWeightKg
	if weight <= 0 {
		weight = defaultBodyWeightKg
	}
	r.floors = append(r.floors, r.newFloor(nutrient.Protein, proteinPerKg*weight, proteinRich))
	for _, m := range micronutrientFloors {
		r.floors = append(r.floors, r.newFloor(m.n, m.daily, m.cutoff))
	}
	return r
}

func (r *Repairer) newFloor(n nutrient.Nutrient, daily, cutoff float64) floor {
	fl := floor{nutrient: n, daily: daily, cutoff: cutoff}
	for _, f := range r.allowed {
		if f.Nutrients[n] > cutoff {
			fl.rich = append(fl.rich, f)
		}
	}
	sort.SliceStable(fl.rich, func(i, j int) bool {
		return fl.rich[i].Nutrients[n] > fl.rich[j].Nutrients[n]
	})
	return fl
}

// RepairAll repairs every candidate of the population.
func (r *Repairer) RepairAll(pop []*menu.Candidate) RepairStats {
	var total RepairStats
	for _, c := range pop {
		total.add(r.Repair(c))
	}
	return total
}

// Repair restores restriction compliance, the variety floor and the
// nutrient floors, in that order.
func (r *Repairer) Repair(c *menu.Candidate) RepairStats {
	var s RepairStats
	s.add(r.RepairRestrictions(c))
	s.VarietyChanges += r.repairVariety(c)
	for _, fl := range r.floors {
		s.Injections += r.closeDeficit(c, fl)
	}
	return s
}

// closeDeficit injects one of the richest foods into random meals until
// the average daily amount reaches the floor or the step budget runs out.
func (r *Repairer) closeDeficit(c *menu.Candidate, fl floor) int {
	days := len(c.Days)
	if days == 0 || len(fl.rich) == 0 {
		return 0
	}
	deficit := fl.daily*float64(days) - c.TotalNutrients()[fl.nutrient]
	injected := 0
	for step := 0; deficit > 0 && step < r.maxSteps*days; step++ {
		food := fl.rich[r.rng.IntN(min(richPoolSize, len(fl.rich)))]
		meals := c.Days[r.rng.IntN(days)].OrderedMeals()
		if len(meals) == 0 {
			continue
		}
		meal := meals[r.rng.IntN(len(meals))]
		if meal.Contains(food.ID) {
			continue
		}
		ing := menu.NewIngredient(food, meal.Type.Multiplier())
		meal.AddIngredient(ing)
		meal.Quality = r.scorer.ScoreMeal(meal)
		deficit -= ing.Nutrients()[fl.nutrient]
		injected++
	}
	return injected
}

type occurrence struct {
	meal *menu.Meal
	idx  int
}

// repairVariety replaces about half of the occurrences of any food served
// on more than 70% of days. Plans shorter than two days are left alone.
func (r *Repairer) repairVariety(c *menu.Candidate) int {
	days := len(c.Days)
	if days < 2 {
		return 0
	}
	counts := c.DaysContaining()
	ids := make([]string, 0, len(counts))
	for id, n := range counts {
		if float64(n)/float64(days) > varietyCutoff {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	changed := 0
	for _, id := range ids {
		var occ []occurrence
		for _, d := range c.Days {
			for _, m := range d.OrderedMeals() {
				for i, ing := range m.Ingredients {
					if ing.FoodID == id {
						occ = append(occ, occurrence{meal: m, idx: i})
					}
				}
			}
		}
		r.rng.Shuffle(len(occ), func(i, j int) { occ[i], occ[j] = occ[j], occ[i] })
		for _, o := range occ[:max(1, len(occ)/2)] {
			alt := r.substitute(o.meal, o.meal.Ingredients[o.idx])
			if alt == nil {
				continue
			}
			o.meal.ReplaceIngredient(o.idx, alt)
			o.meal.Quality = r.scorer.ScoreMeal(o.meal)
			changed++
		}
	}
	return changed
}

// RepairRestrictions replaces restricted ingredients. An ingredient with no
// compliant substitute stays in place and is counted as unreplaceable.
func (r *Repairer) RepairRestrictions(c *menu.Candidate) RepairStats {
	var s RepairStats
	if len(r.profile.Restrictions) == 0 {
		return s
	}
	for _, d := range c.Days {
		for _, m := range d.OrderedMeals() {
			touched := false
			for i := range m.Ingredients {
				ing := m.Ingredients[i]
				if !r.profile.Restricts(ing.Categories) {
					continue
				}
				alt := r.substitute(m, ing)
				if alt == nil {
					s.Unreplaceable++
					continue
				}
				m.ReplaceIngredient(i, alt)
				s.Replacements++
				touched = true
			}
			if touched {
				m.Quality = r.scorer.ScoreMeal(m)
			}
		}
	}
	return s
}

// substitute picks a compliant food sharing a category with ing, falling
// back to the meal type's pool. Foods already in the meal are avoided.
func (r *Repairer) substitute(m *menu.Meal, ing menu.Ingredient) *catalog.FoodItem {
	var same []*catalog.FoodItem
	for _, f := range r.allowed {
		if f.ID != ing.FoodID && f.HasCategory(ing.Categories...) {
			same = append(same, f)
		}
	}
	if alt := r.pick(m, same); alt != nil {
		return alt
	}

	var pool []*catalog.FoodItem
	for _, f := range r.pools[m.Type] {
		if f.ID != ing.FoodID {
			pool = append(pool, f)
		}
	}
	return r.pick(m, pool)
}

func (r *Repairer) pick(m *menu.Meal, foods []*catalog.FoodItem) *catalog.FoodItem {
	var fresh []*catalog.FoodItem
	for _, f := range foods {
		if !m.Contains(f.ID) {
			fresh = append(fresh, f)
		}
	}
	if len(fresh) == 0 {
		return nil
	}
	return fresh[r.rng.IntN(len(fresh))]
}
