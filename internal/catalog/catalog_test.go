package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Lookup(t *testing.T) {
	foods := []*FoodItem{
		{ID: "b", Name: "Banana", Categories: []string{"fruit"}},
		{ID: "a", Name: "Apple", Categories: []string{"Fruit", "snack"}},
		{ID: "c", Name: "Cheddar", Categories: []string{"dairy"}},
	}
	m := NewMemory(foods)

	t.Run("single category ignores case", func(t *testing.T) {
		got := m.Lookup("FRUIT")
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})

	t.Run("multiple categories are deduplicated", func(t *testing.T) {
		got := m.Lookup("fruit", "snack", "dairy")
		require.Len(t, got, 3)
		assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	})

	t.Run("no category returns everything", func(t *testing.T) {
		assert.Len(t, m.Lookup(), 3)
		assert.Equal(t, 3, m.Len())
	})

	t.Run("unknown category", func(t *testing.T) {
		assert.Empty(t, m.Lookup("meat"))
	})

	t.Run("result slices are independent", func(t *testing.T) {
		got := m.Lookup("fruit")
		got[0] = nil
		assert.NotNil(t, m.Lookup("fruit")[0])
	})
}

func TestStarterFoods_CoverMealTypes(t *testing.T) {
	m := NewMemory(StarterFoods())

	for _, cats := range [][]string{
		{"grain", "dairy", "fruit", "egg", "breakfast"},
		{"protein", "grain", "vegetable", "legume"},
		{"fruit", "nuts", "dairy", "snack"},
	} {
		assert.GreaterOrEqual(t, len(m.Lookup(cats...)), 4, cats)
	}

	seen := make(map[string]bool)
	for _, f := range StarterFoods() {
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
		assert.NotEmpty(t, f.Categories, f.ID)
		for _, amount := range f.Nutrients {
			assert.GreaterOrEqual(t, amount, 0.0, f.ID)
		}
	}
}

func ids(foods []*FoodItem) []string {
	out := make([]string, len(foods))
	for i, f := range foods {
		out[i] = f.ID
	}
	return out
}
