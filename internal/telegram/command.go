package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"menu-optimizer/internal/menu"
)

const (
	defaultPlanDays = 7
	maxPlanDays     = 14
)

var errEmptyList = errors.New("empty list")

const helpText = `🥗 *Menu Optimizer*

/plan [days] [budget] [options]
• days: 1-14 (default 7)
• budget: low, medium, high
• quick or long: cooking time
• snacks: add snack slots
• no:nuts,dairy: restrictions
• like:salmon and dislike:tofu
• train:1,3,5: exercise days

Example: ` + "`/plan 5 low quick snacks no:nuts`"

// parsePlanCommand reads the arguments of /plan into a profile starting at
// start. Unknown words are rejected so typos do not pass silently.
func parsePlanCommand(args string, start time.Time, weightKg float64) (menu.UserProfile, error) {
	p := menu.UserProfile{
		Days:         defaultPlanDays,
		Budget:       menu.BudgetMedium,
		CookingTime:  menu.CookingMedium,
		BodyWeightKg: weightKg,
		StartDate:    start,
	}
	var trainDays []int

	for _, tok := range strings.Fields(strings.ToLower(args)) {
		key, value, hasValue := strings.Cut(tok, ":")
		if hasValue {
			list := splitArg(value)
			if len(list) == 0 {
				return p, fmt.Errorf("%s: %w", key, errEmptyList)
			}
			switch key {
			case "no":
				p.Restrictions = append(p.Restrictions, list...)
			case "like":
				p.Favorites = append(p.Favorites, list...)
			case "dislike":
				p.Dislikes = append(p.Dislikes, list...)
			case "train":
				for _, s := range list {
					d, err := strconv.Atoi(s)
					if err != nil || d < 1 {
						return p, fmt.Errorf("invalid training day %q", s)
					}
					trainDays = append(trainDays, d)
				}
			default:
				return p, fmt.Errorf("unknown option %q", key)
			}
			continue
		}

		switch tok {
		case "low", "medium", "high":
			p.Budget = menu.Budget(tok)
		case "quick", "long":
			p.CookingTime = menu.CookingTime(tok)
		case "snacks":
			p.IncludeSnacks = true
		default:
			days, err := strconv.Atoi(tok)
			if err != nil {
				return p, fmt.Errorf("unknown word %q", tok)
			}
			if days < 1 || days > maxPlanDays {
				return p, fmt.Errorf("days must be between 1 and %d", maxPlanDays)
			}
			p.Days = days
		}
	}

	for _, d := range trainDays {
		if d > p.Days {
			return p, fmt.Errorf("training day %d is past the %d-day plan", d, p.Days)
		}
		p.ActivityDays = append(p.ActivityDays, d-1)
	}
	return p, nil
}

func splitArg(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// nextMonday returns the date of the upcoming Monday, or a week from today
// when today is Monday.
func nextMonday(now time.Time) time.Time {
	days := (8 - int(now.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, now.Location())
}
