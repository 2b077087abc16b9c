package optimizer

import (
	"errors"
	"math"

	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/nutrient"
)

// NeutralFitness is assigned when a candidate cannot be scored.
const NeutralFitness = 0.5

const (
	weightNutrition  = 0.40
	weightVariety    = 0.20
	weightQuality    = 0.15
	weightCost       = 0.15
	weightPreference = 0.10
)

var (
	errNoDays   = errors.New("candidate has no days")
	errEmptyDay = errors.New("day has no meals")
)

// Evaluator scores candidates against one profile and target set. It only
// reads candidates, so one Evaluator may score a population concurrently.
type Evaluator struct {
	profile menu.UserProfile
	targets nutrient.Targets
}

// NewEvaluator binds the profile and targets of a run.
func NewEvaluator(profile menu.UserProfile, targets nutrient.Targets) *Evaluator {
	return &Evaluator{profile: profile, targets: targets}
}

// Scores holds the five sub-scores of a candidate, each in [0,1].
type Scores struct {
	Nutrition  float64
	Variety    float64
	Quality    float64
	Cost       float64
	Preference float64
}

// Weighted combines the sub-scores into a fitness.
func (s Scores) Weighted() float64 {
	return weightNutrition*s.Nutrition +
		weightVariety*s.Variety +
		weightQuality*s.Quality +
		weightCost*s.Cost +
		weightPreference*s.Preference
}

// Fitness reduces c to a value in [0,1]. Malformed candidates, including
// ones whose scoring panics, get NeutralFitness.
func (e *Evaluator) Fitness(c *menu.Candidate) (fitness float64) {
	defer func() {
		if r := recover(); r != nil {
			fitness = NeutralFitness
		}
	}()

	s, err := e.Scores(c)
	if err != nil {
		return NeutralFitness
	}
	f := s.Weighted()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NeutralFitness
	}
	return clamp01(f)
}

// Scores computes every sub-score of c.
func (e *Evaluator) Scores(c *menu.Candidate) (Scores, error) {
	if c == nil || len(c.Days) == 0 {
		return Scores{}, errNoDays
	}
	for _, d := range c.Days {
		if d == nil || len(d.OrderedMeals()) == 0 {
			return Scores{}, errEmptyDay
		}
	}
	return Scores{
		Nutrition:  e.NutritionScore(c),
		Variety:    VarietyScore(c),
		Quality:    QualityScore(c),
		Cost:       CostScore(c.AverageDailyCost(), e.profile.Budget),
		Preference: e.PreferenceScore(c),
	}, nil
}

// NutritionScore averages the per-nutrient scores of the average day.
func (e *Evaluator) NutritionScore(c *menu.Candidate) float64 {
	tracked := e.targets.TrackedNutrients()
	if len(tracked) == 0 || len(c.Days) == 0 {
		return 0
	}
	avg := c.AverageDailyNutrients()
	var sum float64
	for _, n := range tracked {
		sum += rangeScore(avg[n], e.targets.Ranges[n])
	}
	return sum / float64(len(tracked))
}

// rangeScore ramps 0 to 0.7 below the minimum, 0.7 to 1.0 up to the
// optimum, 1.0 down to 0.8 up to the maximum and decays to 0 once the
// excess reaches the maximum again.
func rangeScore(v float64, r nutrient.TargetRange) float64 {
	switch {
	case v < r.Min:
		if r.Min <= 0 {
			return 0.7
		}
		return 0.7 * v / r.Min
	case v <= r.Optimal:
		if r.Optimal <= r.Min {
			return 1
		}
		return 0.7 + 0.3*(v-r.Min)/(r.Optimal-r.Min)
	case v <= r.Max:
		if r.Max <= r.Optimal {
			return 1
		}
		return 1 - 0.2*(v-r.Optimal)/(r.Max-r.Optimal)
	default:
		if r.Max <= 0 {
			return 0
		}
		return math.Max(0, 0.8-0.8*(v-r.Max)/r.Max)
	}
}

// VarietyScore blends the normalized Shannon entropy of ingredient names
// (70%) with a capped count of distinct ingredients (30%).
func VarietyScore(c *menu.Candidate) float64 {
	freq := c.IngredientFrequency()
	total := 0
	for _, n := range freq {
		total += n
	}
	if total == 0 {
		return 0
	}

	distinct := len(freq)
	var entropy float64
	for _, n := range freq {
		p := float64(n) / float64(total)
		entropy -= p * math.Log(p)
	}
	normalized := 0.0
	if distinct > 1 {
		normalized = entropy / math.Log(float64(distinct))
	}

	uniqueness := math.Min(float64(distinct)/float64(distinctCap(len(c.Days))), 1)
	return clamp01(0.7*normalized + 0.3*uniqueness)
}

// distinctCap is the distinct-ingredient count that earns the full
// uniqueness bonus: seven per day, between 30 and 50.
func distinctCap(days int) int {
	return max(30, min(50, 7*days))
}

// QualityScore is the mean cached meal quality scaled to [0,1].
func QualityScore(c *menu.Candidate) float64 {
	return clamp01(c.AverageQuality() / 100)
}

// CostScore is 1.0 exactly at the budget's daily target, 0.7 to 1.0 below
// it and falls linearly to 0 at twice the target.
func CostScore(avgDailyCost float64, budget menu.Budget) float64 {
	target := budget.DailyTarget()
	if avgDailyCost <= target {
		return 1 - 0.3*(target-math.Max(avgDailyCost, 0))/target
	}
	return math.Max(0, 1-(avgDailyCost-target)/target)
}

// PreferenceScore averages cooking time, restriction, favorite and dislike
// compliance.
func (e *Evaluator) PreferenceScore(c *menu.Candidate) float64 {
	return (e.cookingTimeScore(c) +
		e.restrictionScore(c) +
		e.favoriteScore(c) +
		e.dislikeScore(c)) / 4
}

func (e *Evaluator) cookingTimeScore(c *menu.Candidate) float64 {
	meals := c.Meals()
	if len(meals) == 0 {
		return 1
	}
	ceiling := float64(e.profile.CookingTime.MealCeiling())
	var sum float64
	for _, m := range meals {
		prep := float64(m.PrepMinutes)
		if prep <= ceiling {
			sum++
			continue
		}
		sum += math.Max(0, 1-(prep-ceiling)/ceiling)
	}
	return sum / float64(len(meals))
}

func (e *Evaluator) restrictionScore(c *menu.Candidate) float64 {
	if len(e.profile.Restrictions) == 0 {
		return 1
	}
	total, violations := 0, 0
	for _, m := range c.Meals() {
		for _, ing := range m.Ingredients {
			total++
			if e.profile.Restricts(ing.Categories) {
				violations++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return 1 - float64(violations)/float64(total)
}

// favoriteScore peaks when half of the days contain a favorite.
func (e *Evaluator) favoriteScore(c *menu.Candidate) float64 {
	if len(e.profile.Favorites) == 0 || len(c.Days) == 0 {
		return 1
	}
	hits := 0
	for _, d := range c.Days {
		if dayMatches(d, e.profile.Favorites) {
			hits++
		}
	}
	rate := float64(hits) / float64(len(c.Days))
	if rate <= 0.5 {
		return rate / 0.5
	}
	return 1 - (rate - 0.5)
}

func (e *Evaluator) dislikeScore(c *menu.Candidate) float64 {
	if len(e.profile.Dislikes) == 0 {
		return 1
	}
	total, violations := 0, 0
	for _, m := range c.Meals() {
		for _, ing := range m.Ingredients {
			total++
			if menu.MatchesName(ing.Name, e.profile.Dislikes) {
				violations++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return math.Max(0, 1-3*float64(violations)/float64(total))
}

func dayMatches(d *menu.Day, terms []string) bool {
	for _, m := range d.OrderedMeals() {
		for _, ing := range m.Ingredients {
			if menu.MatchesName(ing.Name, terms) {
				return true
			}
		}
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
