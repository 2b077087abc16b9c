// Package metrics records optimization runs and reports process health.
package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run sources.
const (
	SourceCLI      = "cli"
	SourceTelegram = "telegram"
)

// RunMetric records one optimization run.
type RunMetric struct {
	ID          string
	Source      string
	Days        int
	Population  int
	Generations int
	BestFitness float64
	Fallback    bool
	Cancelled   bool
	Duration    time.Duration
	CreatedAt   time.Time
}

// Store handles persistence of run metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric. Missing IDs and timestamps are filled in.
func (s *Store) Record(ctx context.Context, m RunMetric) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO optimization_runs
			(id, source, days, population, generations, best_fitness, fallback, cancelled, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Source, m.Days, m.Population, m.Generations, m.BestFitness,
		m.Fallback, m.Cancelled, m.Duration.Milliseconds(), m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", m.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, days, population, generations, best_fitness, fallback, cancelled, duration_ms, created_at
		FROM optimization_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMetric
	for rows.Next() {
		var (
			m          RunMetric
			durationMS int64
		)
		if err := rows.Scan(&m.ID, &m.Source, &m.Days, &m.Population, &m.Generations,
			&m.BestFitness, &m.Fallback, &m.Cancelled, &durationMS, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		m.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, m)
	}
	return runs, rows.Err()
}

// DailySummary aggregates the runs of a single day.
type DailySummary struct {
	Date           string
	Runs           int
	Fallbacks      int
	AverageFitness float64
	AverageMS      float64
}

// GetDailySummary retrieves per-day aggregates for the last n days.
func (s *Store) GetDailySummary(ctx context.Context, days int) ([]DailySummary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(created_at, 1, 10) AS day,
			COUNT(*),
			COALESCE(SUM(fallback), 0),
			COALESCE(AVG(best_fitness), 0),
			COALESCE(AVG(duration_ms), 0)
		FROM optimization_runs
		WHERE created_at >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily summary: %w", err)
	}
	defer rows.Close()

	var out []DailySummary
	for rows.Next() {
		var (
			d   DailySummary
			day sql.NullString
		)
		if err := rows.Scan(&day, &d.Runs, &d.Fallbacks, &d.AverageFitness, &d.AverageMS); err != nil {
			return nil, fmt.Errorf("failed to scan daily summary: %w", err)
		}
		d.Date = "Unknown"
		if day.Valid {
			d.Date = day.String
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM optimization_runs WHERE created_at < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up runs: %w", err)
	}
	return res.RowsAffected()
}
