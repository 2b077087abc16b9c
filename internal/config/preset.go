package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"menu-optimizer/internal/nutrient"
	"menu-optimizer/internal/optimizer"
)

// Preset is an optimizer tuning file. Keys left out keep their base value.
//
//	[optimizer]
//	population_size = 80
//	generations = 200
//
//	[targets.protein]
//	min = 70
//	optimal = 100
//	max = 160
type Preset struct {
	Optimizer optimizer.Config                `toml:"optimizer"`
	Targets   map[string]nutrient.TargetRange `toml:"targets"`
}

// LoadPreset decodes path over base. Target keys must name known nutrients.
func LoadPreset(path string, base optimizer.Config) (*Preset, error) {
	p := &Preset{Optimizer: base}
	md, err := toml.DecodeFile(path, p)
	if err != nil {
		return nil, fmt.Errorf("failed to decode preset %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown preset keys in %s: %v", path, undecoded)
	}
	for key, r := range p.Targets {
		if _, err := nutrient.Parse(key); err != nil {
			return nil, fmt.Errorf("preset %s: %w", path, err)
		}
		if r.Min < 0 || r.Min > r.Optimal || r.Optimal > r.Max {
			return nil, fmt.Errorf("preset %s: target %s must satisfy 0 <= min <= optimal <= max", path, key)
		}
	}
	if err := p.Optimizer.Validate(); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return p, nil
}

// ApplyTargets overrides the ranges named in the preset.
func (p *Preset) ApplyTargets(t nutrient.Targets) nutrient.Targets {
	for key, r := range p.Targets {
		if n, err := nutrient.Parse(key); err == nil {
			t.Set(n, r)
		}
	}
	return t
}
