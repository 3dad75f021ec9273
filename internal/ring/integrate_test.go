package ring

import (
	"math"
	"math/rand"
	"testing"
)

// With K=0 each oscillator drifts independently: θᵢ(t) = θᵢ(0) + ωᵢ·t.
func TestUncoupledMatchesClosedForm(t *testing.T) {
	const (
		dt    = 0.02
		steps = 500
	)

	for _, m := range []Method{MethodEuler, MethodRK4} {
		t.Run(m.String(), func(t *testing.T) {
			r := newTestRing(t, 16, 31)
			r.SetFrequencies(FreqRandom)
			r.SetCoupling(0)

			theta0 := r.Phases()
			freqs := r.Frequencies()

			for i := 0; i < steps; i++ {
				r.Advance(m, dt)
			}

			elapsed := dt * float64(steps)
			for i, th := range r.Phases() {
				want := wrapPhase(theta0[i] + freqs[i]*elapsed)
				diff := math.Abs(wrapDiff(th - want))
				if diff > 1e-9 {
					t.Errorf("phase[%d] = %f, closed form %f (diff %e)", i, th, want, diff)
				}
			}
		})
	}
}

// RK4 must track the coupled dynamics more closely than Euler for the same
// dt and step count. Reference trajectory: RK4 at 100x finer dt.
func TestRK4BeatsEulerOnCoupledRing(t *testing.T) {
	const (
		n     = 12
		k     = 2.5
		dt    = 0.05
		steps = 100
		seed  = 51
	)

	makeRing := func() *Ring {
		r, err := New(n, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}
		r.SetFrequencies(FreqTwoGroups)
		r.SetCoupling(k)
		return r
	}

	ref := makeRing()
	for i := 0; i < steps*100; i++ {
		ref.StepRK4(dt / 100)
	}

	euler := makeRing()
	for i := 0; i < steps; i++ {
		euler.Step(dt)
	}

	rk4 := makeRing()
	for i := 0; i < steps; i++ {
		rk4.StepRK4(dt)
	}

	trajErr := func(r *Ring) float64 {
		var sum float64
		want := ref.Phases()
		for i, th := range r.Phases() {
			d := wrapDiff(th - want[i])
			sum += d * d
		}
		return math.Sqrt(sum)
	}

	eulerErr := trajErr(euler)
	rk4Err := trajErr(rk4)

	if rk4Err >= eulerErr {
		t.Errorf("rk4 error %e not below euler error %e", rk4Err, eulerErr)
	}
	if eulerErr > 0.5 {
		t.Errorf("euler error %e implausibly large for this dt", eulerErr)
	}
}

// Strong coupling from a coherent start must not lose synchrony, and both
// integrators must agree on the terminal classification.
func TestStrongCouplingSynchronizes(t *testing.T) {
	for _, m := range []Method{MethodEuler, MethodRK4} {
		t.Run(m.String(), func(t *testing.T) {
			r := newTestRing(t, 16, 61)
			r.SetInitialPhases(PhaseQuasiSync)
			r.SetCoupling(3.0)

			for i := 0; i < 2000; i++ {
				r.Advance(m, 0.02)
			}

			got := r.Classify()
			if got.Class != StateSynchronized {
				t.Errorf("terminal state = %v (r=%.3f), want synchronized", got, got.R)
			}
		})
	}
}
