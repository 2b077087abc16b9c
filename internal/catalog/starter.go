package catalog

import "menu-optimizer/internal/nutrient"

// vec lays out amounts in nutrient index order: kcal, protein, carbs, fat,
// fiber, iron, calcium, zinc, b12, vitamin D, omega-3, vitamin C, magnesium.
func vec(amounts ...float64) nutrient.Vector {
	var v nutrient.Vector
	copy(v[:], amounts)
	return v
}

func food(id, name string, categories []string, cost, carbon float64, prep int, quality float64, n nutrient.Vector) *FoodItem {
	return &FoodItem{
		ID:          id,
		Name:        name,
		Categories:  categories,
		Nutrients:   n,
		Cost:        cost,
		Carbon:      carbon,
		PrepMinutes: prep,
		Quality:     quality,
	}
}

// StarterFoods returns a small general-purpose catalog used to seed a fresh
// database and by tests. Each call returns new items.
func StarterFoods() []*FoodItem {
	return []*FoodItem{
		food("oats", "Rolled oats", []string{"grain", "breakfast"}, 0.3, 0.2, 8, 85, vec(300, 10.5, 54, 5.5, 8, 3.4, 43, 2.5, 0, 0, 0.1, 0, 110)),
		food("wholewheat-bread", "Wholewheat bread", []string{"grain"}, 0.4, 0.3, 2, 70, vec(160, 8, 28, 2, 4, 1.6, 60, 1.2, 0, 0, 0.05, 0, 50)),
		food("brown-rice", "Brown rice", []string{"grain"}, 0.25, 0.6, 25, 75, vec(270, 6, 57, 2, 3, 1.1, 20, 1.5, 0, 0, 0.02, 0, 86)),
		food("wholewheat-pasta", "Wholewheat pasta", []string{"grain"}, 0.35, 0.4, 15, 72, vec(300, 12, 60, 1.5, 7, 3.0, 30, 2.0, 0, 0, 0.03, 0, 120)),
		food("quinoa", "Quinoa", []string{"grain"}, 0.9, 0.3, 18, 88, vec(260, 9.5, 45, 4, 5, 3.2, 33, 2.2, 0, 0, 0.1, 0, 140)),
		food("nut-muesli", "Muesli with nuts", []string{"grain", "nuts", "breakfast"}, 0.6, 0.3, 2, 65, vec(230, 6.5, 38, 6, 5, 2.2, 40, 1.6, 0, 0, 0.3, 1, 70)),
		food("fortified-cereal", "Fortified cereal", []string{"grain", "breakfast"}, 0.4, 0.3, 1, 55, vec(150, 3.5, 33, 1, 3, 8, 120, 3.8, 1.5, 2.0, 0.02, 6, 40)),
		food("granola-bar", "Wholegrain granola bar", []string{"grain", "snack"}, 0.6, 0.4, 0, 55, vec(190, 4, 29, 7, 3, 1.2, 20, 0.8, 0, 0, 0.1, 0, 30)),
		food("rice-cakes", "Rice cakes", []string{"grain", "snack"}, 0.2, 0.2, 0, 55, vec(70, 1.5, 15, 0.6, 0.8, 0.2, 2, 0.4, 0, 0, 0, 0, 24)),

		food("greek-yogurt", "Greek yogurt", []string{"dairy", "snack"}, 1.1, 1.5, 1, 80, vec(170, 17, 6, 5, 0, 0.1, 200, 0.9, 1.3, 0.1, 0, 0, 19)),
		food("milk", "Semi-skimmed milk", []string{"dairy"}, 0.3, 0.8, 1, 70, vec(120, 8, 12, 4.8, 0, 0.1, 300, 1, 1.1, 2.5, 0, 0, 27)),
		food("cheddar", "Cheddar", []string{"dairy"}, 0.6, 1.6, 1, 45, vec(160, 10, 0.5, 13, 0, 0.3, 290, 1.2, 0.4, 0.2, 0.1, 0, 11)),
		food("cottage-cheese", "Cottage cheese", []string{"dairy", "snack"}, 0.8, 1.3, 1, 75, vec(150, 17, 5, 6, 0, 0.1, 125, 0.6, 0.65, 0.1, 0, 0, 12)),
		food("soy-milk", "Fortified soy milk", []string{"soy", "breakfast"}, 0.4, 0.3, 1, 75, vec(100, 7, 8, 4, 1, 1.1, 300, 0.6, 0.9, 2.9, 0.2, 0, 40)),
		food("eggs", "Eggs", []string{"egg", "protein"}, 0.5, 0.9, 10, 75, vec(155, 13, 1, 11, 0, 1.8, 56, 1.3, 1.1, 2.2, 0.1, 0, 12)),

		food("banana", "Banana", []string{"fruit"}, 0.25, 0.1, 1, 85, vec(105, 1.3, 27, 0.4, 3.1, 0.3, 6, 0.2, 0, 0, 0.03, 10, 32)),
		food("apple", "Apple", []string{"fruit", "snack"}, 0.3, 0.1, 1, 90, vec(95, 0.5, 25, 0.3, 4.4, 0.2, 11, 0.1, 0, 0, 0.01, 8.4, 9)),
		food("orange", "Orange", []string{"fruit", "snack"}, 0.35, 0.1, 1, 92, vec(62, 1.2, 15.4, 0.2, 3.1, 0.1, 52, 0.1, 0, 0, 0.01, 70, 13)),
		food("blueberries", "Blueberries", []string{"fruit"}, 1.2, 0.3, 1, 92, vec(57, 0.7, 14, 0.3, 2.4, 0.3, 6, 0.2, 0, 0, 0.06, 9.7, 6)),
		food("strawberries", "Strawberries", []string{"fruit", "snack"}, 1.0, 0.3, 2, 93, vec(48, 1, 11.5, 0.5, 3, 0.6, 24, 0.2, 0, 0, 0.1, 88, 20)),
		food("kiwi", "Kiwi", []string{"fruit", "snack"}, 0.4, 0.2, 1, 92, vec(42, 0.8, 10, 0.4, 2.1, 0.2, 23, 0.1, 0, 0, 0.03, 64, 12)),
		food("avocado", "Avocado", []string{"fruit", "vegetable"}, 0.8, 0.8, 2, 85, vec(160, 2, 8.5, 14.7, 6.7, 0.6, 12, 0.6, 0, 0, 0.1, 10, 29)),

		food("chicken-breast", "Chicken breast", []string{"protein", "poultry", "meat"}, 2.2, 3.0, 20, 80, vec(250, 46, 0, 5.4, 0, 1.0, 15, 1.5, 0.5, 0.2, 0.05, 0, 43)),
		food("turkey-breast", "Turkey breast", []string{"protein", "poultry", "meat"}, 2.4, 2.9, 20, 80, vec(200, 44, 0, 2, 0, 1.4, 15, 2.6, 0.6, 0.3, 0.05, 0, 40)),
		food("salmon", "Salmon fillet", []string{"protein", "fish"}, 4.5, 4.0, 20, 90, vec(310, 34, 0, 18, 0, 0.5, 18, 0.6, 4.8, 16, 3.2, 0, 45)),
		food("sardines", "Sardines", []string{"protein", "fish"}, 1.8, 1.5, 5, 88, vec(210, 25, 0, 11.5, 0, 2.9, 380, 1.4, 8.9, 4.8, 1.5, 0, 39)),
		food("mackerel", "Mackerel", []string{"protein", "fish"}, 2.0, 1.8, 15, 87, vec(260, 24, 0, 18, 0, 1.6, 12, 0.9, 8.7, 16, 2.6, 0.4, 76)),
		food("tuna", "Tuna", []string{"protein", "fish"}, 1.6, 2.2, 3, 78, vec(140, 30, 0, 1, 0, 1.2, 12, 0.8, 2.6, 2.0, 0.3, 0, 35)),
		food("beef-steak", "Beef steak", []string{"protein", "meat"}, 4.0, 27, 15, 60, vec(320, 39, 0, 17, 0, 3.9, 18, 7.5, 3.8, 0.2, 0.1, 0, 30)),
		food("pork-loin", "Pork loin", []string{"protein", "meat", "pork"}, 2.5, 9, 20, 60, vec(290, 40, 0, 13, 0, 1.3, 10, 3.3, 0.9, 0.9, 0.05, 0.5, 41)),
		food("tofu", "Tofu", []string{"protein", "soy", "legume"}, 1.2, 0.5, 15, 85, vec(215, 24, 4, 13, 3, 4.2, 520, 2.3, 0, 0, 0.9, 0, 85)),

		food("lentils", "Lentils", []string{"legume", "protein"}, 0.5, 0.4, 25, 92, vec(230, 18, 40, 0.8, 16, 6.6, 38, 2.5, 0, 0, 0.07, 3, 71)),
		food("chickpeas", "Chickpeas", []string{"legume"}, 0.5, 0.4, 10, 88, vec(270, 14.5, 45, 4.2, 12.5, 4.7, 80, 2.5, 0, 0, 0.07, 2, 79)),
		food("black-beans", "Black beans", []string{"legume"}, 0.45, 0.4, 10, 88, vec(230, 15, 41, 0.9, 15, 3.6, 46, 1.9, 0, 0, 0.18, 0, 120)),
		food("hummus", "Hummus", []string{"legume", "snack"}, 0.5, 0.3, 2, 80, vec(100, 4.7, 8.6, 5.7, 3.6, 1.5, 23, 0.8, 0, 0, 0.05, 0, 43)),

		food("broccoli", "Broccoli", []string{"vegetable"}, 0.6, 0.3, 8, 95, vec(50, 4.2, 10, 0.6, 3.9, 1.1, 70, 0.6, 0, 0, 0.03, 134, 32)),
		food("spinach", "Spinach", []string{"vegetable", "leafy"}, 0.7, 0.2, 5, 95, vec(23, 2.9, 3.6, 0.4, 2.2, 2.7, 99, 0.5, 0, 0, 0.14, 28, 79)),
		food("kale", "Kale", []string{"vegetable", "leafy"}, 0.9, 0.2, 6, 96, vec(49, 4.3, 8.8, 0.9, 3.6, 1.5, 150, 0.4, 0, 0, 0.18, 120, 47)),
		food("carrots", "Carrots", []string{"vegetable", "snack"}, 0.2, 0.1, 5, 92, vec(50, 1.1, 11.5, 0.3, 3.4, 0.4, 40, 0.3, 0, 0, 0, 7, 14)),
		food("bell-pepper", "Bell pepper", []string{"vegetable"}, 0.7, 0.3, 5, 93, vec(40, 1.5, 9, 0.5, 3, 0.6, 10, 0.4, 0, 0, 0.04, 190, 18)),
		food("sweet-potato", "Sweet potato", []string{"vegetable"}, 0.5, 0.3, 30, 90, vec(180, 4, 41, 0.3, 6.6, 1.4, 76, 0.6, 0, 0, 0.01, 39, 54)),
		food("tomato", "Tomato", []string{"vegetable"}, 0.4, 0.5, 2, 93, vec(27, 1.3, 5.8, 0.3, 1.8, 0.4, 15, 0.3, 0, 0, 0.01, 20, 16)),
		food("mushrooms", "UV mushrooms", []string{"vegetable"}, 0.8, 0.3, 8, 88, vec(22, 3.1, 3.3, 0.3, 1, 0.5, 3, 0.5, 0.04, 7, 0, 2, 9)),

		food("almonds", "Almonds", []string{"nuts", "snack"}, 0.5, 0.7, 0, 80, vec(170, 6, 6, 15, 3.5, 1.1, 80, 0.9, 0, 0, 0, 0, 80)),
		food("walnuts", "Walnuts", []string{"nuts", "snack"}, 0.6, 0.5, 0, 82, vec(195, 4.5, 4, 19.5, 2, 0.9, 30, 0.9, 0, 0, 2.7, 0.4, 47)),
		food("peanut-butter", "Peanut butter", []string{"nuts", "snack", "spread"}, 0.2, 0.5, 1, 55, vec(190, 7, 7, 16, 2, 0.6, 15, 0.9, 0, 0, 0.02, 0, 50)),
		food("chia-seeds", "Chia seeds", []string{"seeds", "snack"}, 0.6, 0.3, 5, 85, vec(140, 4.7, 12, 8.6, 9.8, 2.2, 180, 1.3, 0, 0, 5.0, 0.5, 95)),
		food("dark-chocolate", "Dark chocolate", []string{"snack"}, 0.5, 0.5, 0, 50, vec(150, 2, 11, 11, 2.8, 3.0, 18, 0.8, 0, 0, 0.01, 0, 57)),
	}
}
