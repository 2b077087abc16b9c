package optimizer

import "fmt"

// Config tunes one optimization run.
type Config struct {
	PopulationSize int     `toml:"population_size"`
	Generations    int     `toml:"generations"`
	MutationRate   float64 `toml:"mutation_rate"`
	CrossoverRate  float64 `toml:"crossover_rate"`
	EliteCount     int     `toml:"elite_count"`
	// AnnealEvery runs the annealing pass on every n-th generation; 0 disables it.
	AnnealEvery int `toml:"anneal_every"`
	// Workers > 1 evaluates fitness concurrently.
	Workers int `toml:"workers"`
	// Seed fixes the random sequence; 0 seeds from the clock.
	Seed uint64 `toml:"seed"`
	// MaxRepairSteps bounds, per plan day, the injections of one floor repair.
	MaxRepairSteps int `toml:"max_repair_steps"`
	// RestrictionVocabulary, when set, is the complete list of restriction tags.
	RestrictionVocabulary []string `toml:"restriction_vocabulary"`

	DayBalance bool `toml:"day_balance"`
	Pairing    bool `toml:"pairing"`
	MealTiming bool `toml:"meal_timing"`
}

// DefaultConfig is the production preset.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		CrossoverRate:  0.8,
		EliteCount:     5,
		AnnealEvery:    10,
		Workers:        1,
		MaxRepairSteps: 3,
		DayBalance:     true,
		Pairing:        true,
		MealTiming:     true,
	}
}

// FastConfig keeps every stage but shrinks the search for tests and CI.
func FastConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 12
	cfg.Generations = 15
	cfg.EliteCount = 2
	return cfg
}

// Validate rejects settings the driver cannot run with.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize < 2:
		return fmt.Errorf("population size must be at least 2, got %d", c.PopulationSize)
	case c.Generations < 1:
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	case c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("mutation rate must be in [0,1], got %v", c.MutationRate)
	case c.CrossoverRate < 0 || c.CrossoverRate > 1:
		return fmt.Errorf("crossover rate must be in [0,1], got %v", c.CrossoverRate)
	case c.EliteCount < 0 || c.EliteCount >= c.PopulationSize:
		return fmt.Errorf("elite count must be in [0,%d), got %d", c.PopulationSize, c.EliteCount)
	case c.AnnealEvery < 0:
		return fmt.Errorf("anneal interval must not be negative, got %d", c.AnnealEvery)
	case c.MaxRepairSteps < 1:
		return fmt.Errorf("max repair steps must be positive, got %d", c.MaxRepairSteps)
	}
	return nil
}
