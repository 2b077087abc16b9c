package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/config"
	"menu-optimizer/internal/database"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/metrics"
	"menu-optimizer/internal/nutrient"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	db, err := database.NewDB(filepath.Join(dir, "menu.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		DatabasePath:    filepath.Join(dir, "menu.db"),
		PlanStoragePath: filepath.Join(dir, "plans"),
		OptimizerFast:   true,
		BodyWeightKg:    70,
	}
	a, err := NewApp(cfg, db, nil)
	require.NoError(t, err)
	a.SetOutput(&bytes.Buffer{})
	return a
}

func weekProfile(days int) menu.UserProfile {
	return menu.UserProfile{
		Days:        days,
		Budget:      menu.BudgetMedium,
		CookingTime: menu.CookingMedium,
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

type fixedGrader float64

func (g fixedGrader) GradeFood(context.Context, *catalog.FoodItem) (float64, error) {
	return float64(g), nil
}

func TestApp_SeedAndOptimize(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	n, err := a.SeedCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(catalog.StarterFoods()), n)

	res, err := a.Optimize(ctx, weekProfile(3), metrics.SourceCLI)
	require.NoError(t, err)
	require.Len(t, res.Plan.Days, 3)
	assert.False(t, res.Report.Fallback)

	runs, err := a.Metrics().RecentRuns(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, res.Report.RunID, runs[0].ID)
	assert.Equal(t, metrics.SourceCLI, runs[0].Source)
	assert.Equal(t, 3, runs[0].Days)

	stored, err := a.LoadPlan(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, res.Report.RunID, stored.Report.RunID)
	assert.Equal(t, res.Plan.Summary, stored.Plan.Summary)
	assert.InDelta(t, res.Plan.TotalCost(), stored.Plan.TotalCost(), 1e-9)

	affected, removed, err := a.CleanupMetrics(ctx, 30, 0)
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.Equal(t, 1, removed)

	var out bytes.Buffer
	FormatPlan(&out, res)
	assert.Contains(t, out.String(), "=== MEAL PLAN (3 days) ===")
	assert.Contains(t, out.String(), "Day 1 - Mon 2026-03-02")
	assert.Contains(t, out.String(), "=== SHOPPING LIST ===")
}

func TestApp_OptimizeEmptyCatalogFallsBack(t *testing.T) {
	a := newTestApp(t)

	res, err := a.Optimize(context.Background(), weekProfile(2), metrics.SourceCLI)
	require.NoError(t, err)
	assert.True(t, res.Report.Fallback)

	runs, err := a.Metrics().RecentRuns(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Fallback)
}

func TestApp_OptimizeRejectsBadProfile(t *testing.T) {
	a := newTestApp(t)

	_, err := a.Optimize(context.Background(), weekProfile(0), metrics.SourceCLI)
	assert.ErrorIs(t, err, menu.ErrInvalidDayCount)
}

func TestApp_ImportFoods(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<table>
			<tr><th>Name</th><th>Categories</th><th>Cost</th><th>Protein</th></tr>
			<tr><td>Tempeh</td><td>protein, soy</td><td>1.2</td><td>19</td></tr>
		</table>`))
	}))
	defer ts.Close()

	ctx := context.Background()
	a := newTestApp(t)

	n, err := a.ImportFoods(ctx, ts.URL, fixedGrader(77))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	foods, err := a.foods.List(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "tempeh", foods[0].ID)
	assert.Equal(t, 77.0, foods[0].Quality)
	assert.Equal(t, 19.0, foods[0].Nutrients[nutrient.Protein])
}

func TestOptimizerSettings(t *testing.T) {
	t.Run("fast without preset", func(t *testing.T) {
		cfg, _, err := OptimizerSettings(&config.Config{OptimizerFast: true, RestrictionVocabulary: []string{"nuts"}})
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.PopulationSize)
		assert.Equal(t, []string{"nuts"}, cfg.RestrictionVocabulary)
	})

	t.Run("preset overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "preset.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[optimizer]
population_size = 20
generations = 5

[targets.protein]
min = 70
optimal = 100
max = 160
`), 0o644))

		cfg, targets, err := OptimizerSettings(&config.Config{OptimizerPreset: path})
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.PopulationSize)
		assert.Equal(t, 5, cfg.Generations)
		assert.Equal(t, 5, cfg.EliteCount)

		got := targets.TargetsFor(menu.UserProfile{BodyWeightKg: 70})
		assert.Equal(t, 70.0, got.Ranges[nutrient.Protein].Min)
		assert.True(t, got.Tracked[nutrient.Calories])
	})

	t.Run("broken preset", func(t *testing.T) {
		_, _, err := OptimizerSettings(&config.Config{OptimizerPreset: filepath.Join(t.TempDir(), "missing.toml")})
		assert.Error(t, err)
	})
}

func TestNewGrader_NoProvider(t *testing.T) {
	g, closeFn, err := NewGrader(context.Background(), &config.Config{}, nil)
	require.NoError(t, err)
	assert.Nil(t, g)
	assert.NoError(t, closeFn())
}

func TestNewGrader_Groq(t *testing.T) {
	cfg := &config.Config{GroqAPIKey: "key", GradeCachePath: filepath.Join(t.TempDir(), "grades.json")}
	g, closeFn, err := NewGrader(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, g)
	assert.NoError(t, closeFn())
}
