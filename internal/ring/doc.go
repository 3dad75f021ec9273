// Package ring implements the Kuramoto model on a 1-D periodic lattice.
//
// A [Ring] owns the phase and natural-frequency state of N oscillators
// arranged on a circle, where each oscillator is coupled to its two
// neighbors:
//
//	dθᵢ/dt = ωᵢ + (K/2)·[sin(θᵢ₊₁ − θᵢ) + sin(θᵢ₋₁ − θᵢ)]
//
// The package provides:
//
//   - [Ring]: oscillator state with Euler and RK4 time stepping
//   - [FreqPolicy], [PhasePolicy]: closed sets of initialization policies
//   - [Ring.OrderParameter]: Kuramoto order parameter (r, ψ)
//   - [Ring.WindingNumber]: topological winding of the phase configuration
//   - [Ring.Classify]: collective-state classification from (r, q)
//
// # Example
//
//	rng := rand.New(rand.NewSource(42))
//	r, _ := ring.New(32, rng)
//	r.SetCoupling(2.0)
//	for i := 0; i < 1000; i++ {
//	    r.StepRK4(0.02)
//	}
//	coherence, _ := r.OrderParameter()
//
// # Thread Safety
//
// Ring instances are NOT thread-safe. Each instance is owned by a single
// driving context; independent rings may run on separate goroutines.
package ring
