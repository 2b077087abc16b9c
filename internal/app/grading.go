package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/config"
	"menu-optimizer/internal/llm"
)

// NewGrader builds the food grader configured in cfg: Gemini when a key is
// set, Groq otherwise, behind a file cache. It returns a nil grader when no
// provider is configured. The returned close func persists the cache and
// releases the client.
func NewGrader(ctx context.Context, cfg *config.Config, logger *zap.Logger) (catalog.Grader, func() error, error) {
	var (
		gen    llm.TextGenerator
		closer llm.Closer
	)
	switch {
	case cfg.GeminiAPIKey != "":
		client, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		gen, closer = client, client
	case cfg.GroqAPIKey != "":
		gen = llm.NewGroqClient(cfg)
	default:
		return nil, func() error { return nil }, nil
	}

	cached, err := llm.NewCachedGrader(llm.NewFoodGrader(gen), cfg.GradeCachePath, logger)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, nil, fmt.Errorf("failed to open grade cache: %w", err)
	}
	closeFn := func() error {
		err := cached.SaveCache()
		if closer != nil {
			err = errors.Join(err, closer.Close())
		}
		return err
	}
	return cached, closeFn, nil
}
