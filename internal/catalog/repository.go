package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"menu-optimizer/internal/nutrient"
)

// Repository persists foods in the SQLite foods table.
type Repository struct {
	db *sql.DB
}

// NewRepository wraps an open connection whose schema is already migrated.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save upserts the foods in a single transaction.
func (r *Repository) Save(ctx context.Context, foods []*FoodItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO foods (id, name, categories, nutrients, cost, carbon, prep_minutes, quality, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			categories = excluded.categories,
			nutrients = excluded.nutrients,
			cost = excluded.cost,
			carbon = excluded.carbon,
			prep_minutes = excluded.prep_minutes,
			quality = excluded.quality,
			updated_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, f := range foods {
		cats, err := json.Marshal(f.Categories)
		if err != nil {
			return fmt.Errorf("failed to marshal categories for %s: %w", f.ID, err)
		}
		nuts, err := json.Marshal(f.Nutrients.Map())
		if err != nil {
			return fmt.Errorf("failed to marshal nutrients for %s: %w", f.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, f.ID, f.Name, string(cats), string(nuts),
			f.Cost, f.Carbon, f.PrepMinutes, f.Quality); err != nil {
			return fmt.Errorf("failed to save food %s: %w", f.ID, err)
		}
	}

	return tx.Commit()
}

// List returns every stored food ordered by ID.
func (r *Repository) List(ctx context.Context) ([]*FoodItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, categories, nutrients, cost, carbon, prep_minutes, quality
		FROM foods ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	var foods []*FoodItem
	for rows.Next() {
		var (
			f          FoodItem
			cats, nuts string
		)
		if err := rows.Scan(&f.ID, &f.Name, &cats, &nuts, &f.Cost, &f.Carbon, &f.PrepMinutes, &f.Quality); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		if err := json.Unmarshal([]byte(cats), &f.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories for %s: %w", f.ID, err)
		}
		var amounts map[string]float64
		if err := json.Unmarshal([]byte(nuts), &amounts); err != nil {
			return nil, fmt.Errorf("failed to decode nutrients for %s: %w", f.ID, err)
		}
		if f.Nutrients, err = nutrient.FromMap(amounts); err != nil {
			return nil, fmt.Errorf("food %s: %w", f.ID, err)
		}
		foods = append(foods, &f)
	}
	return foods, rows.Err()
}

// Count returns the number of stored foods.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return n, nil
}

// Load returns an in-memory snapshot of the stored foods.
func (r *Repository) Load(ctx context.Context) (*Memory, error) {
	foods, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewMemory(foods), nil
}
