package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"menu-optimizer/internal/catalog"
)

// CachedGrader wraps a catalog.Grader to cache grades in a JSON file keyed
// by food ID, so re-importing a table does not re-query the model.
type CachedGrader struct {
	realGrader    catalog.Grader
	cache         map[string]float64
	cacheFilePath string
	logger        *zap.Logger
	mu            sync.Mutex
}

// NewCachedGrader creates a new CachedGrader, loading the cache file when it exists.
func NewCachedGrader(realGrader catalog.Grader, cacheFilePath string, logger *zap.Logger) (*CachedGrader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &CachedGrader{
		realGrader:    realGrader,
		cache:         make(map[string]float64),
		cacheFilePath: cacheFilePath,
		logger:        logger.Named("grade-cache"),
	}

	cacheDir := filepath.Dir(cacheFilePath)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", cacheDir, err)
	}

	data, err := os.ReadFile(cacheFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Debug("grade cache not found, starting empty", zap.String("path", cacheFilePath))
			return c, nil
		}
		return nil, fmt.Errorf("failed to read cache file %s: %w", cacheFilePath, err)
	}

	if err := json.Unmarshal(data, &c.cache); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data from %s: %w", cacheFilePath, err)
	}

	c.logger.Debug("loaded grades from cache", zap.Int("count", len(c.cache)), zap.String("path", cacheFilePath))
	return c, nil
}

// GradeFood checks the cache first and falls back to the wrapped grader.
func (c *CachedGrader) GradeFood(ctx context.Context, food *catalog.FoodItem) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if grade, ok := c.cache[food.ID]; ok {
		return grade, nil
	}

	grade, err := c.realGrader.GradeFood(ctx, food)
	if err != nil {
		return 0, err
	}

	c.cache[food.ID] = grade
	return grade, nil
}

// SaveCache persists the current in-memory cache to the file system.
func (c *CachedGrader) SaveCache() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(c.cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := os.WriteFile(c.cacheFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", c.cacheFilePath, err)
	}

	c.logger.Debug("saved grades to cache", zap.Int("count", len(c.cache)), zap.String("path", c.cacheFilePath))
	return nil
}
