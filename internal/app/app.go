// Package app wires the catalog, optimizer and metrics store into the
// use-cases served by the CLI and the Telegram bot.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/config"
	"menu-optimizer/internal/database"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/metrics"
	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/optimizer"
	"menu-optimizer/internal/shopping"
	"menu-optimizer/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	foods        *catalog.Repository
	metricsStore *metrics.Store
	plans        *storage.PlanStore
	settings     optimizer.Config
	targets      optimizer.TargetProvider
	logger       *zap.Logger
	out          io.Writer
}

// NewApp creates and initializes a new App instance. The optimizer preset
// named by the config is loaded here so a bad file fails at startup.
func NewApp(cfg *config.Config, db *database.DB, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings, targets, err := OptimizerSettings(cfg)
	if err != nil {
		return nil, err
	}
	var plans *storage.PlanStore
	if cfg.PlanStoragePath != "" {
		if plans, err = storage.NewPlanStore(cfg.PlanStoragePath); err != nil {
			return nil, err
		}
	}
	return &App{
		cfg:          cfg,
		foods:        catalog.NewRepository(db.SQL),
		metricsStore: metrics.NewStore(db.SQL),
		plans:        plans,
		settings:     settings,
		targets:      targets,
		logger:       logger,
		out:          os.Stdout,
	}, nil
}

// SetOutput redirects printed plans and reports.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// Metrics exposes the run metric store.
func (a *App) Metrics() *metrics.Store {
	return a.metricsStore
}

// Config returns the application config.
func (a *App) Config() *config.Config {
	return a.cfg
}

// OptimizerSettings resolves the optimizer preset and target provider.
func OptimizerSettings(cfg *config.Config) (optimizer.Config, optimizer.TargetProvider, error) {
	base := optimizer.DefaultConfig()
	if cfg.OptimizerFast {
		base = optimizer.FastConfig()
	}
	base.RestrictionVocabulary = cfg.RestrictionVocabulary

	if cfg.OptimizerPreset == "" {
		return base, optimizer.DefaultTargetProvider(), nil
	}
	preset, err := config.LoadPreset(cfg.OptimizerPreset, base)
	if err != nil {
		return optimizer.Config{}, nil, err
	}
	targets := optimizer.TargetProviderFunc(func(p menu.UserProfile) nutrient.Targets {
		return preset.ApplyTargets(nutrient.DefaultTargets(p.BodyWeightKg))
	})
	return preset.Optimizer, targets, nil
}

// Optimize loads the stored catalog, runs the optimizer and records the
// run. source names the caller in the metrics.
func (a *App) Optimize(ctx context.Context, profile menu.UserProfile, source string) (*optimizer.Result, error) {
	cat, err := a.foods.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load food catalog: %w", err)
	}
	if cat.Len() == 0 {
		a.logger.Warn("food catalog is empty, run seed-catalog or import-foods first")
	}
	if profile.BodyWeightKg == 0 {
		profile.BodyWeightKg = a.cfg.BodyWeightKg
	}

	opt, err := optimizer.New(cat, a.targets, nil, a.settings, a.logger)
	if err != nil {
		return nil, err
	}
	res, err := opt.Run(ctx, profile, profile.Days)
	if err != nil {
		return nil, err
	}

	metric := metrics.RunMetric{
		ID:          res.Report.RunID,
		Source:      source,
		Days:        profile.Days,
		Population:  a.settings.PopulationSize,
		Generations: res.Report.Generations,
		BestFitness: res.Plan.Fitness,
		Fallback:    res.Report.Fallback,
		Cancelled:   res.Report.Cancelled,
		Duration:    res.Report.Duration,
	}
	// The run already succeeded; losing its metric is not worth failing it.
	if err := a.metricsStore.Record(context.WithoutCancel(ctx), metric); err != nil {
		a.logger.Warn("failed to record run metric", zap.String("run_id", metric.ID), zap.Error(err))
	}
	if a.plans != nil {
		doc := &storage.PlanDocument{
			RunID:    res.Report.RunID,
			Profile:  profile,
			Plan:     res.Plan,
			Shopping: shopping.Build(res.Plan),
			Fallback: res.Report.Fallback,
		}
		if path, err := a.plans.Save(doc); err != nil {
			a.logger.Warn("failed to store plan", zap.String("run_id", doc.RunID), zap.Error(err))
		} else {
			a.logger.Debug("plan stored", zap.String("path", path))
		}
	}
	return res, nil
}

// LoadPlan reads a stored plan, the newest when runID is empty, and links
// its ingredients back to the current catalog.
func (a *App) LoadPlan(ctx context.Context, runID string) (*optimizer.Result, error) {
	if a.plans == nil {
		return nil, errors.New("plan storage is disabled")
	}
	doc, err := a.plans.Load(runID)
	if err != nil {
		return nil, err
	}
	cat, err := a.foods.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load food catalog: %w", err)
	}
	byID := make(map[string]*catalog.FoodItem, cat.Len())
	for _, f := range cat.All() {
		byID[f.ID] = f
	}
	for _, m := range doc.Plan.Meals() {
		for i := range m.Ingredients {
			m.Ingredients[i].Food = byID[m.Ingredients[i].FoodID]
		}
		m.Recalculate()
	}
	return &optimizer.Result{
		Plan:   doc.Plan,
		Report: optimizer.Report{RunID: doc.RunID, Fallback: doc.Fallback},
	}, nil
}

// SeedCatalog stores the built-in starter foods. Existing rows with the
// same IDs are updated.
func (a *App) SeedCatalog(ctx context.Context) (int, error) {
	foods := catalog.StarterFoods()
	if err := a.foods.Save(ctx, foods); err != nil {
		return 0, err
	}
	a.logger.Info("catalog seeded", zap.Int("foods", len(foods)))
	return len(foods), nil
}

// ImportFoods reads the nutrition table at url, grades foods through
// grader when one is given and stores them.
func (a *App) ImportFoods(ctx context.Context, url string, grader catalog.Grader) (int, error) {
	importer := catalog.NewImporter(grader, a.logger)
	foods, err := importer.ImportURL(ctx, url)
	if err != nil {
		return 0, err
	}
	if len(foods) == 0 {
		return 0, errors.New("no foods found in table")
	}
	if err := a.foods.Save(ctx, foods); err != nil {
		return 0, err
	}
	a.logger.Info("foods imported", zap.String("url", url), zap.Int("foods", len(foods)))
	return len(foods), nil
}

// CleanupMetrics prunes run metrics older than days and keeps only the
// newest keepPlans stored plans.
func (a *App) CleanupMetrics(ctx context.Context, days, keepPlans int) (int64, int, error) {
	affected, err := a.metricsStore.Cleanup(ctx, days)
	if err != nil {
		return 0, 0, err
	}
	if a.plans == nil {
		return affected, 0, nil
	}
	removed, err := a.plans.Prune(keepPlans)
	return affected, removed, err
}
