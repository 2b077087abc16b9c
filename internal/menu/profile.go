package menu

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidDayCount is returned for a plan length of zero or less.
	ErrInvalidDayCount = errors.New("day count must be positive")
	// ErrInvalidProfile wraps every other profile validation failure.
	ErrInvalidProfile = errors.New("invalid user profile")
)

// Budget is the spending tier a plan is scored against.
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

// DailyTarget is the per-day spend the cost score is centred on.
func (b Budget) DailyTarget() float64 {
	switch b {
	case BudgetLow:
		return 15
	case BudgetHigh:
		return 40
	default:
		return 25
	}
}

// CookingTime is the effort tier a plan is scored against.
type CookingTime string

const (
	CookingQuick  CookingTime = "quick"
	CookingMedium CookingTime = "medium"
	CookingLong   CookingTime = "long"
)

// MealCeiling is the per-meal preparation time tolerated without penalty.
func (c CookingTime) MealCeiling() int {
	switch c {
	case CookingQuick:
		return 20
	case CookingLong:
		return 90
	default:
		return 45
	}
}

// UserProfile carries the preferences a plan is built for.
type UserProfile struct {
	Days          int         `json:"days"`
	Budget        Budget      `json:"budget"`
	CookingTime   CookingTime `json:"cooking_time"`
	Restrictions  []string    `json:"restrictions"`
	Favorites     []string    `json:"favorites"`
	Dislikes      []string    `json:"dislikes"`
	IncludeSnacks bool        `json:"include_snacks"`
	BodyWeightKg  float64     `json:"body_weight_kg"`
	// ActivityDays are zero-based day indexes with planned exercise.
	ActivityDays []int     `json:"activity_days"`
	StartDate    time.Time `json:"start_date"`
}

// Validate checks the profile. vocabulary, when non-empty, is the complete
// set of restriction tags the deployment understands.
func (p UserProfile) Validate(vocabulary []string) error {
	if p.Days <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDayCount, p.Days)
	}
	switch p.Budget {
	case BudgetLow, BudgetMedium, BudgetHigh:
	default:
		return fmt.Errorf("%w: unknown budget %q", ErrInvalidProfile, p.Budget)
	}
	switch p.CookingTime {
	case CookingQuick, CookingMedium, CookingLong:
	default:
		return fmt.Errorf("%w: unknown cooking time %q", ErrInvalidProfile, p.CookingTime)
	}
	if p.BodyWeightKg < 0 || p.BodyWeightKg > 500 {
		return fmt.Errorf("%w: body weight %.1f kg", ErrInvalidProfile, p.BodyWeightKg)
	}
	for _, r := range p.Restrictions {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("%w: empty restriction", ErrInvalidProfile)
		}
		if len(vocabulary) > 0 && !intersects([]string{r}, vocabulary) {
			return fmt.Errorf("%w: unknown restriction %q", ErrInvalidProfile, r)
		}
	}
	for _, d := range p.ActivityDays {
		if d < 0 || d >= p.Days {
			return fmt.Errorf("%w: activity day %d outside plan of %d days", ErrInvalidProfile, d, p.Days)
		}
	}
	return nil
}

// Restricts reports whether any of the categories is restricted.
func (p UserProfile) Restricts(categories []string) bool {
	return intersects(categories, p.Restrictions)
}

// IsActivityDay reports whether exercise is planned on the day index.
func (p UserProfile) IsActivityDay(index int) bool {
	for _, d := range p.ActivityDays {
		if d == index {
			return true
		}
	}
	return false
}

// DateFor returns the calendar date of the day index.
func (p UserProfile) DateFor(index int) time.Time {
	start := p.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	y, m, d := start.Date()
	return time.Date(y, m, d+index, 0, 0, 0, 0, start.Location())
}

// MatchesName reports whether the ingredient name contains any of the
// terms, ignoring case.
func MatchesName(name string, terms []string) bool {
	name = strings.ToLower(name)
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && strings.Contains(name, t) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(strings.TrimSpace(x), strings.TrimSpace(y)) {
				return true
			}
		}
	}
	return false
}
