// Package optimizer searches for multi-day meal plans with a genetic
// algorithm, a periodic simulated-annealing pass and a constraint repairer,
// then post-processes the best plan found.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"menu-optimizer/internal/catalog"
	"menu-optimizer/internal/menu"
	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/quality"
)

const defaultBodyWeightKg = 70

// ErrSearchPanic wraps a panic recovered from the search loop.
var ErrSearchPanic = errors.New("optimizer panic")

// TargetProvider returns the daily nutrient targets for a profile.
type TargetProvider interface {
	TargetsFor(profile menu.UserProfile) nutrient.Targets
}

// TargetProviderFunc adapts a function to TargetProvider.
type TargetProviderFunc func(profile menu.UserProfile) nutrient.Targets

// TargetsFor implements TargetProvider.
func (f TargetProviderFunc) TargetsFor(profile menu.UserProfile) nutrient.Targets {
	return f(profile)
}

// DefaultTargetProvider scales the default adult targets by body weight.
func DefaultTargetProvider() TargetProvider {
	return TargetProviderFunc(func(p menu.UserProfile) nutrient.Targets {
		return nutrient.DefaultTargets(p.BodyWeightKg)
	})
}

// Report describes how a run went.
type Report struct {
	RunID       string
	Generations int
	// BestHistory holds the global best fitness after initialization and
	// after every completed generation.
	BestHistory    []float64
	BestFitness    float64
	Repairs        RepairStats
	Annealed       int
	PostProcess    map[string]int
	Fallback       bool
	FallbackReason string
	Cancelled      bool
	Duration       time.Duration
}

// Result is a finalized plan with its run report.
type Result struct {
	Plan   *menu.Candidate
	Report Report
}

// Optimizer runs searches over a shared read-only catalog. It is safe for
// concurrent use; every run owns its population and generator.
type Optimizer struct {
	catalog catalog.Catalog
	targets TargetProvider
	scorer  quality.Scorer
	cfg     Config
	logger  *zap.Logger
}

// New validates cfg. A nil targets uses DefaultTargetProvider and a nil
// scorer uses cached food grades.
func New(cat catalog.Catalog, targets TargetProvider, scorer quality.Scorer, cfg Config, logger *zap.Logger) (*Optimizer, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid optimizer config: %w", err)
	}
	if targets == nil {
		targets = DefaultTargetProvider()
	}
	if scorer == nil {
		scorer = quality.NewCached(quality.FoodGradeScorer{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Optimizer{
		catalog: cat,
		targets: targets,
		scorer:  scorer,
		cfg:     cfg,
		logger:  logger.Named("optimizer"),
	}, nil
}

// Config returns the optimizer's settings.
func (o *Optimizer) Config() Config {
	return o.cfg
}

// Optimize returns the best plan found for days days.
func (o *Optimizer) Optimize(ctx context.Context, profile menu.UserProfile, days int) (*menu.Candidate, error) {
	res, err := o.Run(ctx, profile, days)
	if err != nil {
		return nil, err
	}
	return res.Plan, nil
}

// Run is Optimize with the run report. It fails only for an invalid day
// count or profile; search failures produce the fallback plan and a
// cancelled context returns the best plan found so far.
func (o *Optimizer) Run(ctx context.Context, profile menu.UserProfile, days int) (*Result, error) {
	start := time.Now()
	if days <= 0 {
		return nil, fmt.Errorf("%w: got %d", menu.ErrInvalidDayCount, days)
	}
	profile.Days = days
	if profile.BodyWeightKg == 0 {
		profile.BodyWeightKg = defaultBodyWeightKg
	}
	if err := profile.Validate(o.cfg.RestrictionVocabulary); err != nil {
		return nil, err
	}

	seed := o.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := o.newRun(profile, seed)
	report := Report{RunID: uuid.NewString(), PostProcess: make(map[string]int)}
	logger := r.logger.With(zap.String("run_id", report.RunID))

	logger.Info("optimization started",
		zap.Int("days", days),
		zap.Int("population", o.cfg.PopulationSize),
		zap.Int("generations", o.cfg.Generations),
		zap.Uint64("seed", seed))

	plan, err := r.execute(ctx, &report)
	if err != nil {
		logger.Error("optimization failed, using fallback plan", zap.Error(err))
		// Fallback meals are scored from stored grades only.
		plan = FallbackPlan(o.catalog, profile, days, quality.FoodGradeScorer{})
		report.Fallback = true
		report.FallbackReason = err.Error()
	}

	plan.Fitness = r.eval.Fitness(plan)
	plan.Summary = r.eval.Summarize(plan)
	report.Duration = time.Since(start)

	logger.Info("optimization finished",
		zap.Float64("best_fitness", report.BestFitness),
		zap.Float64("plan_fitness", plan.Fitness),
		zap.Int("nutrition_score", plan.Summary.NutritionScore),
		zap.Int("generations", report.Generations),
		zap.Bool("fallback", report.Fallback),
		zap.Bool("cancelled", report.Cancelled),
		zap.Duration("duration", report.Duration))

	return &Result{Plan: plan, Report: report}, nil
}

// run is the state of a single optimization.
type run struct {
	cat     catalog.Catalog
	cfg     Config
	profile menu.UserProfile
	targets nutrient.Targets
	rng     *rand.Rand
	eval    *Evaluator
	factory *mealFactory
	repair  *Repairer
	post    []PostProcessor
	slots   []menu.MealType
	logger  *zap.Logger
}

func (o *Optimizer) newRun(profile menu.UserProfile, seed uint64) *run {
	rng := rand.New(rand.NewPCG(seed, seed))
	targets := o.targets.TargetsFor(profile)
	r := &run{
		cat:     o.catalog,
		cfg:     o.cfg,
		profile: profile,
		targets: targets,
		rng:     rng,
		eval:    NewEvaluator(profile, targets),
		factory: newMealFactory(o.catalog, o.scorer),
		repair:  NewRepairer(o.catalog, profile, o.scorer, o.cfg.MaxRepairSteps, rng),
		slots:   menu.Slots(profile.IncludeSnacks),
		logger:  o.logger,
	}
	if o.cfg.DayBalance {
		r.post = append(r.post, NewDayBalancer(targets, o.scorer))
	}
	if o.cfg.Pairing {
		r.post = append(r.post, NewPairer(o.catalog, profile, targets, o.scorer))
	}
	if o.cfg.MealTiming {
		r.post = append(r.post, NewMealTimer(profile, o.scorer))
	}
	return r
}

// execute runs the search and post-processing, converting panics to errors.
func (r *run) execute(ctx context.Context, report *Report) (plan *menu.Candidate, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			plan, err = nil, fmt.Errorf("%w: %v", ErrSearchPanic, rec)
		}
	}()

	best, err := r.search(ctx, report)
	if err != nil {
		return nil, err
	}

	for _, p := range r.post {
		report.PostProcess[p.Name()] = p.Process(best)
	}
	// Post-processing may add foods, so compliance is checked once more.
	final := r.repair.RepairRestrictions(best)
	report.PostProcess["restrictions"] = final.Replacements
	return best, nil
}

// search is the generational loop. It returns a clone of the best
// candidate ever evaluated.
func (r *run) search(ctx context.Context, report *Report) (*menu.Candidate, error) {
	pop, err := newPopulation(r.cat, r.factory, r.profile, r.cfg.PopulationSize, r.rng)
	if err != nil {
		return nil, err
	}
	report.Repairs.add(r.repair.RepairAll(pop))
	r.evaluate(pop)

	best := pop[0].Clone()
	report.BestHistory = append(report.BestHistory, best.Fitness)

	for gen := 0; gen < r.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			report.Cancelled = true
			r.logger.Warn("optimization cancelled", zap.Int("generation", gen), zap.Error(err))
			break
		}

		pop = r.breed(pop)
		if r.cfg.AnnealEvery > 0 && gen%r.cfg.AnnealEvery == 0 {
			report.Annealed += r.anneal(pop, gen)
		}
		report.Repairs.add(r.repair.RepairAll(pop[r.elites(len(pop)):]))
		r.evaluate(pop)

		if pop[0].Fitness > best.Fitness {
			best = pop[0].Clone()
		}
		report.BestHistory = append(report.BestHistory, best.Fitness)
		report.Generations = gen + 1

		if gen%10 == 0 {
			r.logger.Debug("generation evaluated",
				zap.Int("generation", gen),
				zap.Float64("population_best", pop[0].Fitness),
				zap.Float64("global_best", best.Fitness))
		}
	}

	report.BestFitness = best.Fitness
	return best, nil
}

// elites is the number of leading candidates carried into the next
// generation unchanged.
func (r *run) elites(n int) int {
	return min(r.cfg.EliteCount, n)
}

// breed keeps the elites and fills the rest with mutated offspring. Elites
// are exempt from annealing and repair for the generation.
func (r *run) breed(pop []*menu.Candidate) []*menu.Candidate {
	next := make([]*menu.Candidate, 0, r.cfg.PopulationSize)
	for i := 0; i < r.elites(len(pop)); i++ {
		next = append(next, pop[i].Clone())
	}
	for len(next) < r.cfg.PopulationSize {
		a := tournamentSelect(pop, r.rng)
		b := tournamentSelect(pop, r.rng)
		child := crossover(a, b, r.cfg.CrossoverRate, r.slots, r.rng)
		lightMutate(child, r.cfg.MutationRate, r.factory, r.slots, r.rng)
		next = append(next, child)
	}
	return next
}

// evaluate scores every candidate and sorts the population best-first.
func (r *run) evaluate(pop []*menu.Candidate) {
	if r.cfg.Workers > 1 {
		p := pool.New().WithMaxGoroutines(r.cfg.Workers)
		for _, c := range pop {
			p.Go(func() {
				c.Fitness = r.eval.Fitness(c)
			})
		}
		p.Wait()
	} else {
		for _, c := range pop {
			c.Fitness = r.eval.Fitness(c)
		}
	}
	sort.SliceStable(pop, func(i, j int) bool {
		return pop[i].Fitness > pop[j].Fitness
	})
}
