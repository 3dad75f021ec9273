package ring

import (
	"fmt"
	"math/rand"
)

// Ring holds the state of N phase oscillators on a periodic lattice.
// Phases are kept in [0, 2π) after every mutating operation.
type Ring struct {
	n        int
	phases   []float64
	freqs    []float64
	coupling float64
	rng      *rand.Rand

	// RK4 scratch, reused across steps
	k1, k2, k3, k4 []float64
	scratch        []float64
}

// New constructs a ring of n oscillators with identical frequencies and
// random phases. The generator is injected so stochastic initialization is
// reproducible under a fixed seed.
func New(n int, rng *rand.Rand) (*Ring, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrRingTooSmall, n)
	}
	r := &Ring{
		n:       n,
		phases:  make([]float64, n),
		freqs:   make([]float64, n),
		rng:     rng,
		k1:      make([]float64, n),
		k2:      make([]float64, n),
		k3:      make([]float64, n),
		k4:      make([]float64, n),
		scratch: make([]float64, n),
	}
	assignFrequencies(FreqIdentical, r.freqs, rng)
	assignPhases(PhaseRandom, r.phases, rng)
	return r, nil
}

// N returns the oscillator count.
func (r *Ring) N() int { return r.n }

// Coupling returns the current coupling strength K.
func (r *Ring) Coupling() float64 { return r.coupling }

// SetCoupling sets K, clamping negative inputs to zero. There is no upper
// bound; that is a caller concern.
func (r *Ring) SetCoupling(k float64) {
	if k < 0 {
		k = 0
	}
	r.coupling = k
}

// SetFrequencies overwrites all natural frequencies per the policy.
func (r *Ring) SetFrequencies(p FreqPolicy) error {
	return assignFrequencies(p, r.freqs, r.rng)
}

// SetInitialPhases overwrites all phases per the policy.
func (r *Ring) SetInitialPhases(p PhasePolicy) error {
	return assignPhases(p, r.phases, r.rng)
}

// Perturb adds independent uniform noise in [-intensity·π, intensity·π) to
// every phase and renormalizes. Intensity is an amplitude factor; values
// much above 1 erase all structure.
func (r *Ring) Perturb(intensity float64) {
	for i := range r.phases {
		r.phases[i] = wrapPhase(r.phases[i] + intensity*twoPi*(r.rng.Float64()-0.5))
	}
}

// Phases returns an independent copy of the phase vector.
func (r *Ring) Phases() []float64 {
	c := make([]float64, r.n)
	copy(c, r.phases)
	return c
}

// Frequencies returns an independent copy of the natural frequencies.
func (r *Ring) Frequencies() []float64 {
	c := make([]float64, r.n)
	copy(c, r.freqs)
	return c
}

// Step advances the ring one explicit Euler step. First-order accurate;
// intended for animation-rate driving where dt stays small.
func (r *Ring) Step(dt float64) {
	derivatives(r.k1, r.phases, r.freqs, r.coupling)
	for i := range r.phases {
		r.phases[i] = wrapPhase(r.phases[i] + dt*r.k1[i])
	}
}

// StepRK4 advances the ring one classic 4th-order Runge-Kutta step. All
// four stage evaluations use the same derivative function as Step.
func (r *Ring) StepRK4(dt float64) {
	derivatives(r.k1, r.phases, r.freqs, r.coupling)

	for i := range r.phases {
		r.scratch[i] = r.phases[i] + 0.5*dt*r.k1[i]
	}
	derivatives(r.k2, r.scratch, r.freqs, r.coupling)

	for i := range r.phases {
		r.scratch[i] = r.phases[i] + 0.5*dt*r.k2[i]
	}
	derivatives(r.k3, r.scratch, r.freqs, r.coupling)

	for i := range r.phases {
		r.scratch[i] = r.phases[i] + dt*r.k3[i]
	}
	derivatives(r.k4, r.scratch, r.freqs, r.coupling)

	dt6 := dt / 6.0
	for i := range r.phases {
		r.phases[i] = wrapPhase(r.phases[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i]))
	}
}
