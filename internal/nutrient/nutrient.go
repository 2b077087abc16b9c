// Package nutrient defines the fixed set of tracked nutrients and the
// vector and target types the optimizer scores against.
package nutrient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Nutrient identifies one tracked nutrient. Values index into Vector.
type Nutrient int

const (
	Calories Nutrient = iota
	Protein
	Carbohydrates
	Fat
	Fiber
	Iron
	Calcium
	Zinc
	VitaminB12
	VitaminD
	Omega3
	VitaminC
	Magnesium

	// Count is the number of tracked nutrients.
	Count int = iota
)

var (
	// ErrUnknownNutrient is returned when a nutrient key is not part of the tracked set.
	ErrUnknownNutrient = errors.New("unknown nutrient")
	// ErrNegativeAmount is returned when a nutrient amount is below zero.
	ErrNegativeAmount = errors.New("negative nutrient amount")
)

var names = [Count]string{
	Calories:      "calories",
	Protein:       "protein",
	Carbohydrates: "carbohydrates",
	Fat:           "fat",
	Fiber:         "fiber",
	Iron:          "iron",
	Calcium:       "calcium",
	Zinc:          "zinc",
	VitaminB12:    "vitamin_b12",
	VitaminD:      "vitamin_d",
	Omega3:        "omega3",
	VitaminC:      "vitamin_c",
	Magnesium:     "magnesium",
}

var units = [Count]string{
	Calories:      "kcal",
	Protein:       "g",
	Carbohydrates: "g",
	Fat:           "g",
	Fiber:         "g",
	Iron:          "mg",
	Calcium:       "mg",
	Zinc:          "mg",
	VitaminB12:    "µg",
	VitaminD:      "µg",
	Omega3:        "g",
	VitaminC:      "mg",
	Magnesium:     "mg",
}

// Unit returns the unit amounts of n are expressed in.
func Unit(n Nutrient) string {
	if n < 0 || int(n) >= Count {
		return ""
	}
	return units[n]
}

// aliases accepts the spellings found in nutrition tables.
var aliases = map[string]Nutrient{
	"kcal":         Calories,
	"energy":       Calories,
	"carbs":        Carbohydrates,
	"carbohydrate": Carbohydrates,
	"b12":          VitaminB12,
	"vitamin b12":  VitaminB12,
	"vitamin d":    VitaminD,
	"omega-3":      Omega3,
	"omega_3":      Omega3,
	"vitamin c":    VitaminC,
	"fibre":        Fiber,
}

// String returns the canonical key of the nutrient.
func (n Nutrient) String() string {
	if n < 0 || int(n) >= Count {
		return fmt.Sprintf("nutrient(%d)", int(n))
	}
	return names[n]
}

// All returns every tracked nutrient in index order.
func All() []Nutrient {
	all := make([]Nutrient, Count)
	for i := range all {
		all[i] = Nutrient(i)
	}
	return all
}

// Parse resolves a nutrient key. Matching ignores case and surrounding space.
func Parse(key string) (Nutrient, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for i, name := range names {
		if name == k {
			return Nutrient(i), nil
		}
	}
	if n, ok := aliases[k]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownNutrient, key)
}

// Vector holds one amount per tracked nutrient. It is a value type, so
// assigning or passing it copies the amounts.
type Vector [Count]float64

// FromMap builds a Vector from loosely keyed data. Unknown keys and negative
// amounts are rejected rather than dropped.
func FromMap(m map[string]float64) (Vector, error) {
	var v Vector
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n, err := Parse(k)
		if err != nil {
			return Vector{}, err
		}
		amount := m[k]
		if amount < 0 {
			return Vector{}, fmt.Errorf("%w: %s=%v", ErrNegativeAmount, k, amount)
		}
		v[n] += amount
	}
	return v, nil
}

// Map returns the non-zero amounts keyed by canonical nutrient name.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64)
	for i, amount := range v {
		if amount != 0 {
			m[names[i]] = amount
		}
	}
	return m
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

// Sub returns v - o, clamping each amount at zero to absorb rounding drift
// from incremental updates.
func (v Vector) Sub(o Vector) Vector {
	for i := range v {
		v[i] -= o[i]
		if v[i] < 0 {
			v[i] = 0
		}
	}
	return v
}

// Scale returns v multiplied by f.
func (v Vector) Scale(f float64) Vector {
	for i := range v {
		v[i] *= f
	}
	return v
}
