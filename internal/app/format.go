package app

import (
	"fmt"
	"io"
	"strings"

	"menu-optimizer/internal/optimizer"
	"menu-optimizer/internal/shopping"
)

// PrintPlan writes a plain-text rendering of the plan and its shopping list.
func (a *App) PrintPlan(res *optimizer.Result) {
	FormatPlan(a.out, res)
}

// FormatPlan writes the plan, its summary and shopping list to w.
func FormatPlan(w io.Writer, res *optimizer.Result) {
	plan := res.Plan
	fmt.Fprintf(w, "\n=== MEAL PLAN (%d days) ===\n", len(plan.Days))
	if res.Report.Fallback {
		fmt.Fprintln(w, "(fallback plan: optimization failed)")
	}
	for _, d := range plan.Days {
		fmt.Fprintf(w, "\nDay %d - %s\n", d.Index+1, d.Date.Format("Mon 2006-01-02"))
		for _, m := range d.OrderedMeals() {
			names := make([]string, len(m.Ingredients))
			for i, ing := range m.Ingredients {
				names[i] = ing.Name
			}
			fmt.Fprintf(w, "  %-16s %s (%d min, %.2f)\n", m.Type, strings.Join(names, ", "), m.PrepMinutes, m.Cost)
		}
	}

	s := plan.Summary
	fmt.Fprintln(w, "\n=== SUMMARY ===")
	fmt.Fprintf(w, "Fitness:         %.3f\n", plan.Fitness)
	fmt.Fprintf(w, "Nutrition score: %d/100\n", s.NutritionScore)
	fmt.Fprintf(w, "Total cost:      %.2f\n", s.TotalCost)
	fmt.Fprintf(w, "Carbon:          %.2f kg CO2e\n", s.Carbon)
	fmt.Fprintf(w, "Avg quality:     %.1f\n", s.AverageQuality)

	list := shopping.Build(plan)
	fmt.Fprintln(w, "\n=== SHOPPING LIST ===")
	for _, item := range list.Items {
		fmt.Fprintf(w, "- %s\n", item)
	}
}
