package telegram

import (
	"fmt"
	"strings"

	"menu-optimizer/internal/metrics"
	"menu-optimizer/internal/optimizer"
	"menu-optimizer/internal/shopping"
)

var mealIcons = map[string]string{
	"breakfast":       "🍳",
	"morning_snack":   "🍎",
	"lunch":           "🥗",
	"afternoon_snack": "🥜",
	"dinner":          "🍲",
}

// markdownEscaper escapes the characters legacy Telegram Markdown treats
// as entity delimiters.
var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func formatPlanMarkdownParts(res *optimizer.Result) (string, string) {
	plan := res.Plan
	var pb strings.Builder
	fmt.Fprintf(&pb, "📅 *%d-Day Meal Plan*\n", len(plan.Days))
	if res.Report.Fallback {
		pb.WriteString("_Optimization failed, showing a simple fallback plan._\n")
	}
	pb.WriteString("\n")

	for _, d := range plan.Days {
		fmt.Fprintf(&pb, "*%s*\n", d.Date.Format("Monday 02 Jan"))
		for _, m := range d.OrderedMeals() {
			names := make([]string, len(m.Ingredients))
			for i, ing := range m.Ingredients {
				names[i] = markdownEscaper.Replace(ing.Name)
			}
			fmt.Fprintf(&pb, "%s %s (%d min)\n", mealIcons[string(m.Type)], strings.Join(names, ", "), m.PrepMinutes)
		}
		pb.WriteString("\n")
	}

	s := plan.Summary
	fmt.Fprintf(&pb, "🎯 *Nutrition:* %d/100\n", s.NutritionScore)
	fmt.Fprintf(&pb, "💶 *Total Cost:* %.2f\n", s.TotalCost)
	fmt.Fprintf(&pb, "🌍 *Carbon:* %.1f kg CO2e\n", s.Carbon)

	list := shopping.Build(plan)
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, item := range list.Items {
		fmt.Fprintf(&sb, "• %s\n", markdownEscaper.Replace(item.String()))
	}
	return pb.String(), sb.String()
}

func formatMetrics(days []metrics.DailySummary, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Optimizations*\n")
	if len(days) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range days {
		fmt.Fprintf(&sb, "• *%s*: %d runs, fitness %.2f, %.0f ms avg", d.Date, d.Runs, d.AverageFitness, d.AverageMS)
		if d.Fallbacks > 0 {
			fmt.Fprintf(&sb, ", %d fallback", d.Fallbacks)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• RAM: %s (Alloc) / %s (Sys)\n", health.Alloc, health.Sys)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataDiskSize)
	return sb.String()
}
