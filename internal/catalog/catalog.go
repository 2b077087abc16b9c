// Package catalog holds the food items the optimizer draws from, their
// SQLite persistence and the HTML nutrition-table importer.
package catalog

import (
	"sort"
	"strings"

	"menu-optimizer/internal/nutrient"
)

// FoodItem is an immutable catalog entry. Nutrients are per reference portion.
type FoodItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Categories  []string        `json:"categories"`
	Nutrients   nutrient.Vector `json:"-"`
	Cost        float64         `json:"cost"`
	Carbon      float64         `json:"carbon"`
	PrepMinutes int             `json:"prep_minutes"`
	// Quality is a 0-100 grade, 0 when the food was never graded.
	Quality float64 `json:"quality"`
}

// HasCategory reports whether the food is tagged with any of the categories.
func (f *FoodItem) HasCategory(categories ...string) bool {
	for _, c := range f.Categories {
		for _, want := range categories {
			if strings.EqualFold(c, want) {
				return true
			}
		}
	}
	return false
}

// Catalog is the read-only food source consumed by the optimizer.
type Catalog interface {
	// Lookup returns the foods tagged with any of the categories, or every
	// food when no category is given. Callers must not mutate the result.
	Lookup(categories ...string) []*FoodItem
	All() []*FoodItem
}

// Memory is an in-memory Catalog snapshot, safe for concurrent readers.
type Memory struct {
	items      []*FoodItem
	byCategory map[string][]*FoodItem
}

// NewMemory indexes the items by category. Items are ordered by ID so
// lookups are deterministic.
func NewMemory(items []*FoodItem) *Memory {
	sorted := make([]*FoodItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	m := &Memory{
		items:      sorted,
		byCategory: make(map[string][]*FoodItem),
	}
	for _, item := range sorted {
		for _, c := range item.Categories {
			key := strings.ToLower(c)
			m.byCategory[key] = append(m.byCategory[key], item)
		}
	}
	return m
}

// Lookup implements Catalog.
func (m *Memory) Lookup(categories ...string) []*FoodItem {
	if len(categories) == 0 {
		return m.All()
	}
	if len(categories) == 1 {
		found := m.byCategory[strings.ToLower(categories[0])]
		out := make([]*FoodItem, len(found))
		copy(out, found)
		return out
	}

	seen := make(map[string]struct{})
	var out []*FoodItem
	for _, c := range categories {
		for _, item := range m.byCategory[strings.ToLower(c)] {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// All implements Catalog.
func (m *Memory) All() []*FoodItem {
	out := make([]*FoodItem, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the number of foods in the snapshot.
func (m *Memory) Len() int {
	return len(m.items)
}
