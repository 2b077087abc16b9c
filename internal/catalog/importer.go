package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"menu-optimizer/internal/nutrient"
)

// ErrNoFoodTable is returned when a page has no table with a name column.
var ErrNoFoodTable = errors.New("no food table found")

// Grader assigns a 0-100 quality grade to a food.
type Grader interface {
	GradeFood(ctx context.Context, food *FoodItem) (float64, error)
}

// Importer reads foods from an HTML nutrition table. The first row names the
// columns: id, name, categories, cost, carbon, prep_minutes and quality are
// food attributes, every other column is a nutrient key.
type Importer struct {
	client *http.Client
	grader Grader
	logger *zap.Logger
}

// NewImporter creates an importer. grader may be nil, in which case foods
// keep whatever quality the table provides.
func NewImporter(grader Grader, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		client: &http.Client{Timeout: 15 * time.Second},
		grader: grader,
		logger: logger.Named("importer"),
	}
}

// ImportURL fetches the page and parses its first food table.
func (im *Importer) ImportURL(ctx context.Context, url string) ([]*FoodItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}
	return im.Import(ctx, resp.Body)
}

// Import parses foods from an HTML document and grades the ungraded ones.
func (im *Importer) Import(ctx context.Context, r io.Reader) ([]*FoodItem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var foods []*FoodItem
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		header := headerCells(table)
		if indexOf(header, "name") < 0 {
			return true
		}
		found = true
		foods = im.parseRows(table, header)
		return false
	})
	if !found {
		return nil, ErrNoFoodTable
	}

	if im.grader != nil {
		for _, f := range foods {
			if f.Quality > 0 {
				continue
			}
			grade, err := im.grader.GradeFood(ctx, f)
			if err != nil {
				im.logger.Warn("food grading failed", zap.String("food", f.ID), zap.Error(err))
				continue
			}
			f.Quality = clampGrade(grade)
		}
	}

	return foods, nil
}

func headerCells(table *goquery.Selection) []string {
	var header []string
	table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		key := strings.ToLower(strings.TrimSpace(cell.Text()))
		header = append(header, strings.ReplaceAll(key, " ", "_"))
	})
	return header
}

func (im *Importer) parseRows(table *goquery.Selection, header []string) []*FoodItem {
	var foods []*FoodItem
	table.Find("tr").Slice(1, goquery.ToEnd).Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		food, err := parseFood(header, cells)
		if err != nil {
			im.logger.Warn("skipping food row", zap.Int("row", i+1), zap.Error(err))
			return
		}
		foods = append(foods, food)
	})
	return foods
}

func parseFood(header, cells []string) (*FoodItem, error) {
	f := &FoodItem{}
	amounts := make(map[string]float64)

	for i, key := range header {
		if i >= len(cells) || cells[i] == "" {
			continue
		}
		value := cells[i]
		var err error
		switch key {
		case "id":
			f.ID = value
		case "name":
			f.Name = value
		case "categories", "category":
			f.Categories = splitCategories(value)
		case "cost":
			f.Cost, err = parseAmount(value)
		case "carbon":
			f.Carbon, err = parseAmount(value)
		case "prep_minutes", "prep", "prep_time":
			var minutes float64
			minutes, err = parseAmount(value)
			f.PrepMinutes = int(minutes)
		case "quality":
			f.Quality, err = parseAmount(value)
			f.Quality = clampGrade(f.Quality)
		default:
			amounts[key], err = parseAmount(value)
		}
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", key, err)
		}
	}

	if f.Name == "" {
		return nil, errors.New("missing name")
	}
	if f.ID == "" {
		f.ID = slug(f.Name)
	}
	if f.Cost < 0 || f.Carbon < 0 || f.PrepMinutes < 0 {
		return nil, fmt.Errorf("negative attribute for %s", f.ID)
	}

	var err error
	if f.Nutrients, err = nutrient.FromMap(amounts); err != nil {
		return nil, err
	}
	return f, nil
}

var amountPattern = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)

// parseAmount reads the first number of a cell such as "12.5 g" or "3,2".
func parseAmount(s string) (float64, error) {
	m := amountPattern.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("no number in %q", s)
	}
	return strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
}

func splitCategories(s string) []string {
	var out []string
	for _, c := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slug(name string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func clampGrade(g float64) float64 {
	switch {
	case g < 0:
		return 0
	case g > 100:
		return 100
	}
	return g
}

func indexOf(items []string, want string) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return -1
}
