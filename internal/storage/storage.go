// Package storage keeps finalized plans as JSON files, one per run.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/shopping"
)

// ErrPlanNotFound is returned when no stored plan matches.
var ErrPlanNotFound = errors.New("plan not found")

// PlanDocument is the stored form of a finalized plan.
type PlanDocument struct {
	RunID     string           `json:"run_id"`
	CreatedAt time.Time        `json:"created_at"`
	Profile   menu.UserProfile `json:"profile"`
	Plan      *menu.Candidate  `json:"plan"`
	Shopping  *shopping.List   `json:"shopping"`
	Fallback  bool             `json:"fallback"`
}

// PlanStore provides a file-based storage for plans.
type PlanStore struct {
	basePath string
}

// NewPlanStore creates a new PlanStore and ensures the base directory exists.
func NewPlanStore(basePath string) (*PlanStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &PlanStore{basePath: basePath}, nil
}

// fileTimestamp formats ts for filenames, without colons.
func fileTimestamp(ts time.Time) string {
	return ts.UTC().Format("20060102T150405.000000000Z")
}

// path names files so lexical order is creation order.
func (s *PlanStore) path(doc *PlanDocument) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s_%s.json", fileTimestamp(doc.CreatedAt), doc.RunID))
}

// Save stores a plan document. A zero CreatedAt is set to now.
func (s *PlanStore) Save(doc *PlanDocument) (string, error) {
	if doc.RunID == "" {
		return "", errors.New("plan document needs a run id")
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan: %w", err)
	}

	filePath := s.path(doc)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write plan file: %w", err)
	}
	return filePath, nil
}

// Load retrieves the plan of a run. An empty runID loads the newest plan.
func (s *PlanStore) Load(runID string) (*PlanDocument, error) {
	files, err := s.files(runID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrPlanNotFound
	}

	data, err := os.ReadFile(files[len(files)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	var doc PlanDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &doc, nil
}

// Exists checks if a plan was stored for the run.
func (s *PlanStore) Exists(runID string) bool {
	files, err := s.files(runID)
	return err == nil && len(files) > 0
}

// Prune removes all but the newest keep plans and returns how many files
// were deleted.
func (s *PlanStore) Prune(keep int) (int, error) {
	files, err := s.files("")
	if err != nil {
		return 0, err
	}
	removed := 0
	for i := 0; i < len(files)-keep; i++ {
		if err := os.Remove(files[i]); err != nil {
			return removed, fmt.Errorf("failed to remove stale file %s: %w", files[i], err)
		}
		removed++
	}
	return removed, nil
}

// files lists plan files oldest first, optionally for a single run.
func (s *PlanStore) files(runID string) ([]string, error) {
	suffix := "*"
	if runID != "" {
		suffix = runID
	}
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*_"+suffix+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob plan files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
