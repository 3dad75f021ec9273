// Package metrics provides per-run diagnostics accumulated while driving a
// ring simulation.
package metrics

import "ringsim/internal/ring"

// Metric observes the ring once per sample and reduces to a single value.
type Metric interface {
	Name() string
	Observe(r *ring.Ring, t float64)
	Value() float64
	Reset()
}

// MeanOrder tracks the running mean of the order parameter magnitude.
type MeanOrder struct {
	sum     float64
	samples int
}

func NewMeanOrder() *MeanOrder { return &MeanOrder{} }

func (m *MeanOrder) Name() string { return "mean_order" }

func (m *MeanOrder) Observe(r *ring.Ring, t float64) {
	mag, _ := r.OrderParameter()
	m.sum += mag
	m.samples++
}

func (m *MeanOrder) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanOrder) Reset() {
	m.sum = 0
	m.samples = 0
}

// MinOrder tracks the deepest incoherence excursion seen during a run.
type MinOrder struct {
	min  float64
	seen bool
}

func NewMinOrder() *MinOrder { return &MinOrder{} }

func (m *MinOrder) Name() string { return "min_order" }

func (m *MinOrder) Observe(r *ring.Ring, t float64) {
	mag, _ := r.OrderParameter()
	if !m.seen || mag < m.min {
		m.min = mag
		m.seen = true
	}
}

func (m *MinOrder) Value() float64 {
	if !m.seen {
		return 0
	}
	return m.min
}

func (m *MinOrder) Reset() {
	m.min = 0
	m.seen = false
}

// WindingFlips counts changes in the winding number between samples. A
// nonzero count surfaces the transient off-by-one the winding diagnostic
// can report when a neighbor difference is sampled at a ±π crossing.
type WindingFlips struct {
	last  int
	seen  bool
	flips int
}

func NewWindingFlips() *WindingFlips { return &WindingFlips{} }

func (w *WindingFlips) Name() string { return "winding_flips" }

func (w *WindingFlips) Observe(r *ring.Ring, t float64) {
	q := r.WindingNumber()
	if w.seen && q != w.last {
		w.flips++
	}
	w.last = q
	w.seen = true
}

func (w *WindingFlips) Value() float64 { return float64(w.flips) }

func (w *WindingFlips) Reset() {
	w.last = 0
	w.seen = false
	w.flips = 0
}

// Defaults returns the metric set the run command attaches.
func Defaults() []Metric {
	return []Metric{NewMeanOrder(), NewMinOrder(), NewWindingFlips()}
}
