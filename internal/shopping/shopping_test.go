package shopping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
)

func TestBuild(t *testing.T) {
	oats := &catalog.FoodItem{ID: "oats", Name: "Oats", Cost: 0.5}
	milk := &catalog.FoodItem{ID: "milk", Name: "Milk", Cost: 0.4}
	rice := &catalog.FoodItem{ID: "rice", Name: "Brown rice", Cost: 0.3}

	var days []*menu.Day
	for i := 0; i < 2; i++ {
		d := menu.NewDay(i, time.Time{})
		d.Meals[menu.Breakfast] = menu.NewMeal(menu.Breakfast, []*catalog.FoodItem{oats, milk})
		d.Meals[menu.Lunch] = menu.NewMeal(menu.Lunch, []*catalog.FoodItem{rice})
		days = append(days, d)
	}
	plan := menu.NewCandidate(days)

	list := Build(plan)
	require.Len(t, list.Items, 3)
	assert.Equal(t, plan.ID, list.PlanID)
	assert.Equal(t, []string{"Brown rice", "Milk", "Oats"},
		[]string{list.Items[0].Name, list.Items[1].Name, list.Items[2].Name})

	assert.InDelta(t, 1.6, list.Items[2].Portions, 1e-9)
	assert.InDelta(t, 0.8, list.Items[2].Cost, 1e-9)
	assert.InDelta(t, plan.TotalCost(), list.TotalCost, 1e-9)
	assert.Equal(t, "Oats x1.6", list.Items[2].String())
}
