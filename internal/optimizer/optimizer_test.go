package optimizer

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
)

type panicScorer struct{}

func (panicScorer) ScoreMeal(*menu.Meal) float64 { panic("scorer exploded") }

func planFoodIDs(c *menu.Candidate) [][]string {
	var out [][]string
	for _, d := range c.Days {
		for _, m := range d.OrderedMeals() {
			ids := make([]string, 0, len(m.Ingredients))
			for _, ing := range m.Ingredients {
				ids = append(ids, ing.FoodID)
			}
			out = append(out, ids)
		}
	}
	return out
}

func TestOptimize_MediumBudgetPlans(t *testing.T) {
	for _, days := range []int{3, 7} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			o := newTestOptimizer(t, starterCatalog(), testConfig(42))
			profile := baseProfile(days)
			profile.Budget = menu.BudgetMedium

			plan, err := o.Optimize(context.Background(), profile, days)
			require.NoError(t, err)
			require.Len(t, plan.Days, days)

			for i, d := range plan.Days {
				assert.Equal(t, i, d.Index)
				assert.Equal(t, profile.DateFor(i), d.Date)
				for _, slot := range menu.Slots(false) {
					require.Contains(t, d.Meals, slot, "day %d", i)
					assert.NotEmpty(t, d.Meals[slot].Ingredients, "day %d %s", i, slot)
				}
				assert.NotContains(t, d.Meals, menu.MorningSnack)
				assert.NotContains(t, d.Meals, menu.AfternoonSnack)
			}
			assert.GreaterOrEqual(t, plan.Fitness, 0.0)
			assert.LessOrEqual(t, plan.Fitness, 1.0)
			assert.GreaterOrEqual(t, plan.Summary.NutritionScore, 0)
			assert.LessOrEqual(t, plan.Summary.NutritionScore, 100)
			assert.Positive(t, plan.Summary.TotalCost)
			assert.InDelta(t, plan.TotalCost(), plan.Summary.TotalCost, 1e-9)
			assert.NotEmpty(t, plan.ID)
		})
	}
}

func TestOptimize_HonorsRestrictions(t *testing.T) {
	o := newTestOptimizer(t, starterCatalog(), testConfig(7))
	profile := baseProfile(5)
	profile.Restrictions = []string{"nuts"}

	plan, err := o.Optimize(context.Background(), profile, 5)
	require.NoError(t, err)

	for _, ing := range allIngredients(plan) {
		assert.False(t, ing.HasCategory("nuts"), "%s is restricted", ing.FoodID)
	}
}

func TestOptimize_Snacks(t *testing.T) {
	o := newTestOptimizer(t, starterCatalog(), testConfig(11))
	profile := baseProfile(3)
	profile.IncludeSnacks = true

	plan, err := o.Optimize(context.Background(), profile, 3)
	require.NoError(t, err)

	for _, d := range plan.Days {
		for _, slot := range menu.Slots(true) {
			assert.Contains(t, d.Meals, slot)
		}
	}
}

func TestOptimize_FailFast(t *testing.T) {
	o := newTestOptimizer(t, starterCatalog(), testConfig(1))

	t.Run("day count", func(t *testing.T) {
		for _, days := range []int{0, -3} {
			_, err := o.Optimize(context.Background(), baseProfile(1), days)
			assert.ErrorIs(t, err, menu.ErrInvalidDayCount)
		}
	})

	t.Run("profile", func(t *testing.T) {
		profile := baseProfile(3)
		profile.Budget = menu.Budget("luxury")
		_, err := o.Optimize(context.Background(), profile, 3)
		assert.ErrorIs(t, err, menu.ErrInvalidProfile)
	})

	t.Run("restriction outside the vocabulary", func(t *testing.T) {
		cfg := testConfig(1)
		cfg.RestrictionVocabulary = []string{"nuts", "dairy"}
		strict := newTestOptimizer(t, starterCatalog(), cfg)

		profile := baseProfile(3)
		profile.Restrictions = []string{"gluten"}
		_, err := strict.Optimize(context.Background(), profile, 3)
		assert.ErrorIs(t, err, menu.ErrInvalidProfile)
	})
}

func TestRun_EmptyCatalogFallsBack(t *testing.T) {
	o := newTestOptimizer(t, catalog.NewMemory(nil), testConfig(3))

	res, err := o.Run(context.Background(), baseProfile(3), 3)
	require.NoError(t, err)

	assert.True(t, res.Report.Fallback)
	assert.Contains(t, res.Report.FallbackReason, ErrEmptyCatalog.Error())
	require.Len(t, res.Plan.Days, 3)
	s := res.Plan.Summary
	assert.Zero(t, s.TotalCost)
	assert.False(t, math.IsNaN(s.AverageQuality))
	assert.GreaterOrEqual(t, s.NutritionScore, 0)
	assert.LessOrEqual(t, s.NutritionScore, 100)
}

func TestRun_PanicFallsBack(t *testing.T) {
	o, err := New(starterCatalog(), nil, panicScorer{}, testConfig(5), nil)
	require.NoError(t, err)

	res, err := o.Run(context.Background(), baseProfile(2), 2)
	require.NoError(t, err)

	assert.True(t, res.Report.Fallback)
	assert.Contains(t, res.Report.FallbackReason, "panic")
	require.Len(t, res.Plan.Days, 2)
	for _, d := range res.Plan.Days {
		assert.Len(t, d.Meals, len(menu.Slots(false)))
	}
}

func TestRun_BestHistoryNeverDecreases(t *testing.T) {
	cfg := testConfig(99)
	o := newTestOptimizer(t, starterCatalog(), cfg)

	res, err := o.Run(context.Background(), baseProfile(4), 4)
	require.NoError(t, err)

	h := res.Report.BestHistory
	require.Len(t, h, cfg.Generations+1)
	for i := 1; i < len(h); i++ {
		assert.GreaterOrEqual(t, h[i], h[i-1], "generation %d", i)
	}
	assert.Equal(t, h[len(h)-1], res.Report.BestFitness)
	assert.Equal(t, cfg.Generations, res.Report.Generations)
	assert.Positive(t, res.Report.Annealed)
}

func TestRun_CancelledReturnsBestSoFar(t *testing.T) {
	o := newTestOptimizer(t, starterCatalog(), testConfig(8))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := o.Run(ctx, baseProfile(3), 3)
	require.NoError(t, err)

	assert.True(t, res.Report.Cancelled)
	assert.False(t, res.Report.Fallback)
	assert.Zero(t, res.Report.Generations)
	assert.Len(t, res.Report.BestHistory, 1)
	require.Len(t, res.Plan.Days, 3)
}

func TestRun_SameSeedSamePlan(t *testing.T) {
	run := func(workers int) *Result {
		cfg := testConfig(2024)
		cfg.Workers = workers
		res, err := newTestOptimizer(t, starterCatalog(), cfg).Run(context.Background(), baseProfile(3), 3)
		require.NoError(t, err)
		return res
	}

	first, second := run(1), run(1)
	assert.Equal(t, first.Report.BestHistory, second.Report.BestHistory)
	assert.Equal(t, planFoodIDs(first.Plan), planFoodIDs(second.Plan))
	assert.NotEqual(t, first.Report.RunID, second.Report.RunID)

	parallel := run(4)
	assert.Equal(t, first.Report.BestHistory, parallel.Report.BestHistory)
	assert.Equal(t, planFoodIDs(first.Plan), planFoodIDs(parallel.Plan))
}

func TestRun_PostProcessReported(t *testing.T) {
	o := newTestOptimizer(t, starterCatalog(), testConfig(13))

	res, err := o.Run(context.Background(), baseProfile(3), 3)
	require.NoError(t, err)

	for _, name := range []string{"day_balance", "pairing", "meal_timing", "restrictions"} {
		assert.Contains(t, res.Report.PostProcess, name)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EliteCount = cfg.PopulationSize
	_, err := New(starterCatalog(), nil, nil, cfg, nil)
	assert.Error(t, err)

	_, err = New(nil, nil, nil, DefaultConfig(), nil)
	assert.Error(t, err)
}
