// Package config loads and saves simulation configuration. All tuning
// constants the embedding application may override live here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultG             = 0.1
	DefaultTheta         = 0.5
	DefaultMaxDepth      = 10
	DefaultMinCellSize   = 0.1
	DefaultEpsilon       = 0.1
	DefaultTrajectoryCap = 500
	DefaultDt            = 0.01
	DefaultDuration      = 60.0
	DefaultTimeScale     = 1.0
	DefaultScene         = "solar"
)

// Tuning holds the force-computation constants.
type Tuning struct {
	G             float64 `yaml:"g"`
	Theta         float64 `yaml:"theta"`
	MaxDepth      int     `yaml:"max_depth"`
	MinCellSize   float64 `yaml:"min_cell_size"`
	Epsilon       float64 `yaml:"epsilon"`
	TrajectoryCap int     `yaml:"trajectory_capacity"`
}

type Config struct {
	Scene     string  `yaml:"scene"`
	Seed      int64   `yaml:"seed"`
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	TimeScale float64 `yaml:"time_scale"`
	Algorithm string  `yaml:"algorithm"` // "barnes-hut" or "direct"
	Tuning    Tuning  `yaml:"tuning"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:     DefaultScene,
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		TimeScale: DefaultTimeScale,
		Algorithm: "barnes-hut",
		Tuning: Tuning{
			G:             DefaultG,
			Theta:         DefaultTheta,
			MaxDepth:      DefaultMaxDepth,
			MinCellSize:   DefaultMinCellSize,
			Epsilon:       DefaultEpsilon,
			TrajectoryCap: DefaultTrajectoryCap,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// UseBarnesHut maps the algorithm name onto the solver toggle.
func (c *Config) UseBarnesHut() bool {
	return c.Algorithm != "direct"
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Tuning.G <= 0 {
		return fmt.Errorf("g must be positive, got %f", c.Tuning.G)
	}
	if c.Tuning.Theta < 0 {
		return fmt.Errorf("theta must be non-negative, got %f", c.Tuning.Theta)
	}
	if c.Tuning.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.Tuning.MaxDepth)
	}
	if c.Tuning.MinCellSize <= 0 {
		return fmt.Errorf("min_cell_size must be positive, got %f", c.Tuning.MinCellSize)
	}
	if c.Algorithm != "barnes-hut" && c.Algorithm != "direct" {
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	return nil
}
