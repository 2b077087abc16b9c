// Package shopping turns a meal plan into an aggregated shopping list.
package shopping

import (
	"fmt"
	"sort"

	"menu-optimizer/internal/menu"
)

// Item is one food to buy. Portions are in reference portions of the
// catalog entry.
type Item struct {
	FoodID   string  `json:"food_id"`
	Name     string  `json:"name"`
	Portions float64 `json:"portions"`
	Cost     float64 `json:"cost"`
}

func (i Item) String() string {
	return fmt.Sprintf("%s x%.1f", i.Name, i.Portions)
}

// List represents a shopping list for a meal plan.
type List struct {
	PlanID    string  `json:"plan_id"`
	Items     []Item  `json:"items"`
	TotalCost float64 `json:"total_cost"`
}

// Build sums every ingredient of the plan by food, sorted by name.
func Build(plan *menu.Candidate) *List {
	byID := make(map[string]*Item)
	list := &List{PlanID: plan.ID}
	for _, m := range plan.Meals() {
		for _, ing := range m.Ingredients {
			it, ok := byID[ing.FoodID]
			if !ok {
				it = &Item{FoodID: ing.FoodID, Name: ing.Name}
				byID[ing.FoodID] = it
			}
			it.Portions += ing.Portion
			if ing.Food != nil {
				it.Cost += ing.Food.Cost * ing.Portion
			}
		}
	}

	list.Items = make([]Item, 0, len(byID))
	for _, it := range byID {
		list.Items = append(list.Items, *it)
		list.TotalCost += it.Cost
	}
	sort.Slice(list.Items, func(i, j int) bool {
		if list.Items[i].Name != list.Items[j].Name {
			return list.Items[i].Name < list.Items[j].Name
		}
		return list.Items[i].FoodID < list.Items[j].FoodID
	})
	return list
}
