// Package basin estimates basin-of-attraction sizes for the Kuramoto ring
// by Monte Carlo: many independent trials from random initial phases, each
// integrated to its terminal state and classified.
package basin

import (
	"context"
	"fmt"
	"math/rand"

	"ringsim/internal/ring"
)

// Terminal-classification threshold. Deliberately looser than the live
// classifier's 0.9 so slowly-converging trials still count as captured.
const syncThreshold = 0.85

// Config parameterizes one experiment.
type Config struct {
	Trials   int
	RingSize int
	Coupling float64
	Steps    int
	Dt       float64
	// BatchSize is the number of trials between cancellation checks and
	// progress callbacks. Pacing policy, not a correctness knob.
	BatchSize int
	Seed      int64
}

// DefaultConfig returns the experiment parameters used by the CLI when no
// flags are given.
func DefaultConfig() Config {
	return Config{
		Trials:    100,
		RingSize:  16,
		Coupling:  3.0,
		Steps:     2000,
		Dt:        0.02,
		BatchSize: 10,
		Seed:      42,
	}
}

func (c Config) validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("basin: trials must be positive, got %d", c.Trials)
	}
	if c.RingSize < 2 {
		return fmt.Errorf("basin: ring size must be at least 2, got %d", c.RingSize)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("basin: steps must be positive, got %d", c.Steps)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("basin: dt must be positive, got %f", c.Dt)
	}
	return nil
}

// Distribution is the aggregate outcome of an experiment. Counters always
// sum to Total.
type Distribution struct {
	Sync     int
	Twisted1 int
	Twisted2 int
	Other    int
	Total    int
}

// Fraction returns count/Total for a counter value.
func (d Distribution) Fraction(count int) float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(count) / float64(d.Total)
}

func (d Distribution) String() string {
	return fmt.Sprintf("sync=%d twisted1=%d twisted2=%d other=%d (n=%d)",
		d.Sync, d.Twisted1, d.Twisted2, d.Other, d.Total)
}

// ProgressFunc receives completed and total trial counts between batches.
type ProgressFunc func(done, total int)

// Experiment runs repeated ring simulations. Each trial owns a fresh ring,
// so abandoning a run mid-way leaves nothing shared in a corrupt state.
type Experiment struct {
	cfg Config
}

// New validates the configuration and returns an experiment.
func New(cfg Config) (*Experiment, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg}, nil
}

// Run executes all trials sequentially: fresh ring, identical frequencies,
// random phases, Euler integration for the configured step count, then
// terminal classification. Between batches it checks ctx and notifies the
// progress sink so an interactive host stays responsive; progress may be
// nil. On cancellation the partial distribution gathered so far is
// returned along with the context error.
func (e *Experiment) Run(ctx context.Context, progress ProgressFunc) (*Distribution, error) {
	dist := &Distribution{}

	for trial := 0; trial < e.cfg.Trials; trial++ {
		if trial%e.cfg.BatchSize == 0 {
			if err := ctx.Err(); err != nil {
				return dist, err
			}
			if progress != nil {
				progress(trial, e.cfg.Trials)
			}
		}

		r, err := e.runTrial(trial)
		if err != nil {
			return dist, err
		}
		dist.tally(r)
	}

	if progress != nil {
		progress(e.cfg.Trials, e.cfg.Trials)
	}
	return dist, nil
}

// runTrial integrates one independent ring to its terminal state. The trial
// index offsets the base seed, so trial outcomes do not depend on execution
// order.
func (e *Experiment) runTrial(trial int) (*ring.Ring, error) {
	rng := rand.New(rand.NewSource(e.cfg.Seed + int64(trial)))
	r, err := ring.New(e.cfg.RingSize, rng)
	if err != nil {
		return nil, err
	}
	r.SetCoupling(e.cfg.Coupling)

	for i := 0; i < e.cfg.Steps; i++ {
		r.Step(e.cfg.Dt)
	}
	return r, nil
}

// tally classifies one terminal ring state into the distribution.
func (d *Distribution) tally(r *ring.Ring) {
	mag, _ := r.OrderParameter()
	q := r.WindingNumber()
	if q < 0 {
		q = -q
	}

	switch {
	case mag > syncThreshold:
		d.Sync++
	case q == 1:
		d.Twisted1++
	case q == 2:
		d.Twisted2++
	default:
		d.Other++
	}
	d.Total++
}
