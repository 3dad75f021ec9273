package metrics

import (
	"math"
	"math/rand"
	"testing"

	"ringsim/internal/ring"
)

func syncedRing(t *testing.T) *ring.Ring {
	t.Helper()
	r, err := ring.New(8, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SetInitialPhases(ring.PhaseQuasiSync); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestMeanOrder(t *testing.T) {
	m := NewMeanOrder()
	r := syncedRing(t)

	if m.Value() != 0 {
		t.Errorf("unobserved mean = %f, want 0", m.Value())
	}

	m.Observe(r, 0)
	m.Observe(r, 1)

	mag, _ := r.OrderParameter()
	if math.Abs(m.Value()-mag) > 1e-12 {
		t.Errorf("mean of identical samples = %f, want %f", m.Value(), mag)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("mean after reset = %f, want 0", m.Value())
	}
}

func TestMinOrder(t *testing.T) {
	m := NewMinOrder()
	r := syncedRing(t)

	m.Observe(r, 0)
	high := m.Value()

	r.Perturb(1.0)
	m.Observe(r, 1)
	low, _ := r.OrderParameter()

	if m.Value() > high {
		t.Errorf("min grew after a less coherent sample: %f > %f", m.Value(), high)
	}
	if math.Abs(m.Value()-math.Min(high, low)) > 1e-12 {
		t.Errorf("min = %f, want %f", m.Value(), math.Min(high, low))
	}
}

func TestWindingFlips(t *testing.T) {
	w := NewWindingFlips()
	r := syncedRing(t)

	w.Observe(r, 0)
	w.Observe(r, 1)
	if w.Value() != 0 {
		t.Errorf("flips on stable winding = %f, want 0", w.Value())
	}

	if err := r.SetInitialPhases(ring.PhaseTwisted1); err != nil {
		t.Fatal(err)
	}
	w.Observe(r, 2)
	if w.Value() != 1 {
		t.Errorf("flips after winding change = %f, want 1", w.Value())
	}

	w.Reset()
	if w.Value() != 0 {
		t.Errorf("flips after reset = %f, want 0", w.Value())
	}
}

func TestDefaults(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Defaults() {
		names[m.Name()] = true
	}
	for _, want := range []string{"mean_order", "min_order", "winding_flips"} {
		if !names[want] {
			t.Errorf("default metric set missing %q", want)
		}
	}
}
