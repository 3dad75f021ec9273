package ring

import (
	"math"
	"testing"
)

func TestOrderParameterBounds(t *testing.T) {
	r := newTestRing(t, 32, 17)
	r.SetCoupling(2.0)

	for i := 0; i < 200; i++ {
		r.Step(0.02)
		mag, _ := r.OrderParameter()
		if mag < 0 || mag > 1+1e-12 {
			t.Fatalf("step %d: r = %f outside [0, 1]", i, mag)
		}
	}
}

func TestOrderParameterPerfectSync(t *testing.T) {
	r := newTestRing(t, 12, 1)
	for i := range r.phases {
		r.phases[i] = 1.234
	}

	mag, psi := r.OrderParameter()
	if math.Abs(mag-1.0) > 1e-12 {
		t.Errorf("equal phases: r = %f, want 1", mag)
	}
	if math.Abs(psi-1.234) > 1e-12 {
		t.Errorf("equal phases: psi = %f, want 1.234", psi)
	}
}

func TestOrderParameterExactCancellation(t *testing.T) {
	r := newTestRing(t, 4, 1)
	r.phases = []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}

	mag, _ := r.OrderParameter()
	if mag > 1e-12 {
		t.Errorf("opposing phasors: r = %e, want 0", mag)
	}
}

func TestPhaseVariance(t *testing.T) {
	r := newTestRing(t, 8, 1)

	for i := range r.phases {
		r.phases[i] = 0.5
	}
	if v := r.PhaseVariance(); math.Abs(v) > 1e-12 {
		t.Errorf("perfect sync: variance = %f, want 0", v)
	}

	r.phases = []float64{0, math.Pi, 0, math.Pi, 0, math.Pi, 0, math.Pi}
	if v := r.PhaseVariance(); math.Abs(v-1.0) > 1e-12 {
		t.Errorf("cancelling phases: variance = %f, want 1", v)
	}
}

func TestWindingNumberTwistedInits(t *testing.T) {
	for _, n := range []int{4, 5, 8, 16, 33, 100} {
		r := newTestRing(t, n, 9)

		r.SetInitialPhases(PhaseTwisted1)
		if q := r.WindingNumber(); q != 1 {
			t.Errorf("N=%d twisted-1: q = %d, want 1", n, q)
		}

		r.SetInitialPhases(PhaseTwisted2)
		if q := r.WindingNumber(); q != 2 {
			t.Errorf("N=%d twisted-2: q = %d, want 2", n, q)
		}
	}
}

func TestWindingNumberUntwisted(t *testing.T) {
	r := newTestRing(t, 16, 3)
	r.SetInitialPhases(PhaseQuasiSync)
	if q := r.WindingNumber(); q != 0 {
		t.Errorf("quasi-sync: q = %d, want 0", q)
	}
}

func TestWindingNumberNegativeTwist(t *testing.T) {
	r := newTestRing(t, 16, 3)
	for i := range r.phases {
		r.phases[i] = wrapPhase(-twoPi * float64(i) / 16)
	}
	if q := r.WindingNumber(); q != -1 {
		t.Errorf("reverse twist: q = %d, want -1", q)
	}
}

func TestWindingNumberSurvivesIntegration(t *testing.T) {
	r := newTestRing(t, 32, 8)
	r.SetInitialPhases(PhaseTwisted1)
	r.SetCoupling(2.0)

	// A twisted wave at moderate K is an attractor; the winding must hold
	// through both integrators and renormalization.
	for i := 0; i < 500; i++ {
		r.StepRK4(0.02)
		if q := r.WindingNumber(); q != 1 {
			t.Fatalf("rk4 step %d: q = %d, want 1", i, q)
		}
	}
	for i := 0; i < 500; i++ {
		r.Step(0.02)
		if q := r.WindingNumber(); q != 1 {
			t.Fatalf("euler step %d: q = %d, want 1", i, q)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		phases func(n int) []float64
		n      int
		want   StateClass
	}{
		{
			name: "tight cluster is synchronized",
			n:    10,
			phases: func(n int) []float64 {
				p := make([]float64, n)
				for i := range p {
					p[i] = 0.001 * float64(i)
				}
				return p
			},
			want: StateSynchronized,
		},
		{
			name: "full twist is twisted",
			n:    16,
			phases: func(n int) []float64 {
				p := make([]float64, n)
				for i := range p {
					p[i] = twoPi * float64(i) / float64(n)
				}
				return p
			},
			want: StateTwisted,
		},
		{
			name: "double twist is twisted",
			n:    16,
			phases: func(n int) []float64 {
				p := make([]float64, n)
				for i := range p {
					p[i] = wrapPhase(2 * twoPi * float64(i) / float64(n))
				}
				return p
			},
			want: StateTwisted,
		},
		{
			name: "alternating phases are desynchronized",
			n:    8,
			phases: func(n int) []float64 {
				p := make([]float64, n)
				for i := range p {
					if i%2 == 1 {
						p[i] = math.Pi
					}
				}
				return p
			},
			want: StateDesynchronized,
		},
		{
			name: "two half-clusters are partial",
			n:    4,
			phases: func(n int) []float64 {
				return []float64{0, 0, math.Pi / 2, math.Pi / 2}
			},
			want: StatePartial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRing(t, tt.n, 1)
			r.phases = tt.phases(tt.n)

			got := r.Classify()
			if got.Class != tt.want {
				t.Errorf("Classify() = %v (r=%.3f q=%d), want %v", got.Class, got.R, got.Winding, tt.want)
			}
		})
	}
}

func TestClassifySyncWinsOverWinding(t *testing.T) {
	// Near-coherent phases whose raw neighbor differences still sum to a
	// nonzero pre-rounding total must classify as synchronized.
	r := newTestRing(t, 20, 1)
	for i := range r.phases {
		r.phases[i] = wrapPhase(0.002 * float64(i))
	}

	got := r.Classify()
	if got.Class != StateSynchronized {
		t.Errorf("Classify() = %v, want synchronized whenever r > 0.9", got.Class)
	}
	if got.R <= 0.9 {
		t.Fatalf("test setup broken: r = %f, need > 0.9", got.R)
	}
}

func TestClassifyIsPure(t *testing.T) {
	r := newTestRing(t, 16, 23)
	r.SetInitialPhases(PhaseRandom)

	first := r.Classify()
	for i := 0; i < 10; i++ {
		if got := r.Classify(); got != first {
			t.Fatalf("re-classification on identical state changed: %v -> %v", first, got)
		}
	}
}

func TestDerivativesPure(t *testing.T) {
	phases := []float64{0, 1, 2, 3}
	freqs := []float64{1, 1, 1, 1}

	d1 := Derivatives(phases, freqs, 2.0)
	d2 := Derivatives(phases, freqs, 2.0)

	for i := range d1 {
		if d1[i] != d2[i] {
			t.Fatalf("Derivatives not deterministic at %d: %f vs %f", i, d1[i], d2[i])
		}
	}
	if phases[1] != 1 || freqs[1] != 1 {
		t.Error("Derivatives mutated its inputs")
	}
}

func TestDerivativesCouplingForm(t *testing.T) {
	// Three oscillators, hand-checked against the coupling formula.
	phases := []float64{0, math.Pi / 2, math.Pi}
	freqs := []float64{1.0, 1.1, 1.2}
	k := 2.0

	d := Derivatives(phases, freqs, k)

	for i := 0; i < 3; i++ {
		next := phases[(i+1)%3]
		prev := phases[(i+2)%3]
		want := freqs[i] + (k/2)*(math.Sin(next-phases[i])+math.Sin(prev-phases[i]))
		if math.Abs(d[i]-want) > 1e-15 {
			t.Errorf("d[%d] = %f, want %f", i, d[i], want)
		}
	}
}
