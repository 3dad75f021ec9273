// Package config loads and saves simulation configuration as YAML and
// ships a small set of named presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ringsim/internal/basin"
	"ringsim/internal/ring"
)

const (
	DefaultSize     = 32
	DefaultCoupling = 2.0
	DefaultDt       = 0.02
	DefaultSteps    = 2000
	DefaultSeed     = 42
)

type Config struct {
	Ring  RingConfig  `yaml:"ring"`
	Sim   SimConfig   `yaml:"sim"`
	Basin BasinConfig `yaml:"basin"`
}

type RingConfig struct {
	Size        int     `yaml:"size"`
	Coupling    float64 `yaml:"coupling"`
	Frequencies string  `yaml:"frequencies"`
	Phases      string  `yaml:"phases"`
}

type SimConfig struct {
	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	Seed       int64   `yaml:"seed"`
	Integrator string  `yaml:"integrator"`
}

type BasinConfig struct {
	Trials int `yaml:"trials"`
	Batch  int `yaml:"batch"`
}

func DefaultConfig() *Config {
	return &Config{
		Ring: RingConfig{
			Size:        DefaultSize,
			Coupling:    DefaultCoupling,
			Frequencies: "identical",
			Phases:      "random",
		},
		Sim: SimConfig{
			Dt:         DefaultDt,
			Steps:      DefaultSteps,
			Seed:       DefaultSeed,
			Integrator: "rk4",
		},
		Basin: BasinConfig{
			Trials: 100,
			Batch:  10,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate parses the policy and integrator names, surfacing configuration
// errors before any ring is built.
func (c *Config) Validate() error {
	if c.Ring.Size < 2 {
		return fmt.Errorf("config: %w: size %d", ring.ErrRingTooSmall, c.Ring.Size)
	}
	if _, err := c.FreqPolicy(); err != nil {
		return err
	}
	if _, err := c.PhasePolicy(); err != nil {
		return err
	}
	if _, err := c.Method(); err != nil {
		return err
	}
	if c.Sim.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Sim.Dt)
	}
	if c.Sim.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Sim.Steps)
	}
	return nil
}

func (c *Config) FreqPolicy() (ring.FreqPolicy, error) {
	return ring.ParseFreqPolicy(c.Ring.Frequencies)
}

func (c *Config) PhasePolicy() (ring.PhasePolicy, error) {
	return ring.ParsePhasePolicy(c.Ring.Phases)
}

func (c *Config) Method() (ring.Method, error) {
	return ring.ParseMethod(c.Sim.Integrator)
}

// BasinExperiment maps the config onto experiment parameters.
func (c *Config) BasinExperiment() basin.Config {
	return basin.Config{
		Trials:    c.Basin.Trials,
		RingSize:  c.Ring.Size,
		Coupling:  c.Ring.Coupling,
		Steps:     c.Sim.Steps,
		Dt:        c.Sim.Dt,
		BatchSize: c.Basin.Batch,
		Seed:      c.Sim.Seed,
	}
}
