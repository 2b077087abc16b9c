package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/nutrient"
)

// FoodGrader asks a language model for a 0-100 quality grade in the spirit
// of Nutri-Score, Eco-Score and NOVA. Grades are produced once at import
// time and stored with the food, never during optimization.
type FoodGrader struct {
	gen TextGenerator
}

// NewFoodGrader wraps a text generator.
func NewFoodGrader(gen TextGenerator) *FoodGrader {
	return &FoodGrader{gen: gen}
}

type gradeResponse struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// GradeFood implements catalog.Grader.
func (g *FoodGrader) GradeFood(ctx context.Context, food *catalog.FoodItem) (float64, error) {
	raw, err := g.gen.GenerateContent(ctx, gradePrompt(food))
	if err != nil {
		return 0, fmt.Errorf("grading %s failed: %w", food.ID, err)
	}

	var resp gradeResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return 0, fmt.Errorf("failed to parse grade for %s: %w. Response: %s", food.ID, err, raw)
	}
	if resp.Score < 0 || resp.Score > 100 {
		return 0, fmt.Errorf("grade for %s out of range: %v", food.ID, resp.Score)
	}
	return resp.Score, nil
}

func gradePrompt(food *catalog.FoodItem) string {
	amounts := food.Nutrients.Map()
	keys := make([]string, 0, len(amounts))
	for k := range amounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		n, _ := nutrient.Parse(k)
		fmt.Fprintf(&sb, "- %s: %.2f %s\n", k, amounts[k], nutrient.Unit(n))
	}

	return fmt.Sprintf(`
You are a food-quality grader. Rate the following food on a 0-100 scale combining
nutritional profile (as Nutri-Score does), environmental footprint (as Eco-Score does)
and degree of processing (as NOVA does). 100 is an unprocessed, nutrient-dense,
low-footprint whole food.

Return the result strictly as a JSON object with this structure:
{"score": 0-100, "reason": "one short sentence"}

Food: %s
Categories: %s
Carbon footprint per portion: %.2f kg CO2e
Nutrients per reference portion:
%s`, food.Name, strings.Join(food.Categories, ", "), food.Carbon, sb.String())
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
