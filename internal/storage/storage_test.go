package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/shopping"
)

func testDoc(runID string, created time.Time) *PlanDocument {
	oats := &catalog.FoodItem{ID: "oats", Name: "Oats", Cost: 0.5, Categories: []string{"grain"}}
	d := menu.NewDay(0, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	d.Meals[menu.Breakfast] = menu.NewMeal(menu.Breakfast, []*catalog.FoodItem{oats})
	plan := menu.NewCandidate([]*menu.Day{d})
	return &PlanDocument{
		RunID:     runID,
		CreatedAt: created,
		Profile:   menu.UserProfile{Days: 1, Budget: menu.BudgetLow},
		Plan:      plan,
		Shopping:  shopping.Build(plan),
	}
}

func TestPlanStore(t *testing.T) {
	store, err := NewPlanStore(t.TempDir())
	require.NoError(t, err)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing", func(t *testing.T) {
		assert.False(t, store.Exists("run-1"))
		_, err := store.Load("")
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		_, err := store.Save(testDoc("run-1", base))
		require.NoError(t, err)
		_, err = store.Save(testDoc("run-2", base.Add(time.Hour)))
		require.NoError(t, err)

		assert.True(t, store.Exists("run-1"))

		doc, err := store.Load("run-1")
		require.NoError(t, err)
		assert.Equal(t, "run-1", doc.RunID)
		assert.Equal(t, menu.BudgetLow, doc.Profile.Budget)
		require.Len(t, doc.Plan.Days, 1)
		meal := doc.Plan.Days[0].Meals[menu.Breakfast]
		require.NotNil(t, meal)
		assert.Equal(t, "oats", meal.Ingredients[0].FoodID)
		assert.Nil(t, meal.Ingredients[0].Food)
		assert.Len(t, doc.Shopping.Items, 1)
	})

	t.Run("latest", func(t *testing.T) {
		doc, err := store.Load("")
		require.NoError(t, err)
		assert.Equal(t, "run-2", doc.RunID)
	})

	t.Run("prune", func(t *testing.T) {
		removed, err := store.Prune(1)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.False(t, store.Exists("run-1"))
		assert.True(t, store.Exists("run-2"))
	})

	t.Run("run id required", func(t *testing.T) {
		_, err := store.Save(&PlanDocument{})
		assert.Error(t, err)
	})
}
