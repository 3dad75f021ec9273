package config

import "sort"

// Presets are named starting points for the CLI; flags still override
// individual fields.
var Presets = map[string]*Config{
	"sync": {
		Ring: RingConfig{Size: 32, Coupling: 3.0, Frequencies: "identical", Phases: "quasi-sync"},
		Sim:  SimConfig{Dt: 0.02, Steps: 2000, Seed: DefaultSeed, Integrator: "rk4"},
	},
	"twisted": {
		Ring: RingConfig{Size: 32, Coupling: 2.0, Frequencies: "identical", Phases: "twisted-1"},
		Sim:  SimConfig{Dt: 0.02, Steps: 2000, Seed: DefaultSeed, Integrator: "rk4"},
	},
	"double-twist": {
		Ring: RingConfig{Size: 64, Coupling: 2.0, Frequencies: "identical", Phases: "twisted-2"},
		Sim:  SimConfig{Dt: 0.02, Steps: 2000, Seed: DefaultSeed, Integrator: "rk4"},
	},
	"drift": {
		Ring: RingConfig{Size: 32, Coupling: 0.0, Frequencies: "random", Phases: "random"},
		Sim:  SimConfig{Dt: 0.02, Steps: 2000, Seed: DefaultSeed, Integrator: "euler"},
	},
	"critical": {
		Ring: RingConfig{Size: 32, Coupling: 1.0, Frequencies: "random", Phases: "random"},
		Sim:  SimConfig{Dt: 0.02, Steps: 5000, Seed: DefaultSeed, Integrator: "rk4"},
	},
	"two-groups": {
		Ring: RingConfig{Size: 32, Coupling: 2.5, Frequencies: "two-groups", Phases: "random"},
		Sim:  SimConfig{Dt: 0.02, Steps: 3000, Seed: DefaultSeed, Integrator: "rk4"},
	},
}

// GetPreset returns a copy of the named preset, or nil if there is none.
// Unset basin fields fall back to the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Basin.Trials == 0 {
		cfg.Basin = DefaultConfig().Basin
	}
	return &cfg
}

// ListPresets returns the preset names sorted alphabetically.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
