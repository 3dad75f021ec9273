package ring

import (
	"fmt"
	"math"
)

// StateClass labels the collective state of the ring.
type StateClass int

const (
	// StateSynchronized indicates near-perfect phase coherence.
	StateSynchronized StateClass = iota
	// StateTwisted indicates a stable twisted wave with nonzero winding.
	StateTwisted
	// StateDesynchronized indicates incoherent phases with no net twist.
	StateDesynchronized
	// StatePartial indicates intermediate coherence matching no other rule.
	StatePartial
)

func (c StateClass) String() string {
	switch c {
	case StateSynchronized:
		return "synchronized"
	case StateTwisted:
		return "twisted"
	case StateDesynchronized:
		return "desynchronized"
	case StatePartial:
		return "partial"
	default:
		return fmt.Sprintf("state(%d)", int(c))
	}
}

// Classification is the result of classifying the ring's current state.
// R and Winding record the diagnostics the rule fired on.
type Classification struct {
	Class   StateClass
	R       float64
	Winding int
}

func (c Classification) String() string {
	switch c.Class {
	case StateTwisted:
		return fmt.Sprintf("twisted (q=%d)", c.Winding)
	case StatePartial:
		return fmt.Sprintf("partial (r=%.2f, q=%d)", c.R, c.Winding)
	default:
		return c.Class.String()
	}
}

// OrderParameter computes the Kuramoto order parameter: the magnitude r
// and mean angle ψ of the centroid (1/N)·Σ e^{iθⱼ}. r is 1 only when all
// phases coincide and 0 when the phasors cancel exactly.
func (r *Ring) OrderParameter() (mag, psi float64) {
	var sumCos, sumSin float64
	for _, th := range r.phases {
		sumCos += math.Cos(th)
		sumSin += math.Sin(th)
	}
	meanCos := sumCos / float64(r.n)
	meanSin := sumSin / float64(r.n)
	return math.Sqrt(meanCos*meanCos + meanSin*meanSin), math.Atan2(meanSin, meanCos)
}

// PhaseVariance returns the circular variance 1 − r: 0 at perfect
// synchrony, approaching 1 as dispersion increases.
func (r *Ring) PhaseVariance() float64 {
	mag, _ := r.OrderParameter()
	return 1 - mag
}

// WindingNumber returns the total number of 2π twists accumulated going
// once around the ring: each neighbor difference is wrapped into [-π, π],
// the wrapped differences summed, and the result rounded to the nearest
// integer after dividing by 2π.
//
// The value is a topological invariant of the configuration and is stable
// under integration and renormalization, except at the instant a neighbor
// difference crosses exactly ±π, where sampling can report a transient
// off-by-one. That is a property of the discretization, not masked here.
func (r *Ring) WindingNumber() int {
	var total float64
	for i := 0; i < r.n; i++ {
		total += wrapDiff(r.phases[(i+1)%r.n] - r.phases[i])
	}
	return int(math.Round(total / twoPi))
}

// Live-view classification thresholds.
const (
	syncThreshold     = 0.9
	twisted1Threshold = 0.5
	twisted2Threshold = 0.3
	desyncThreshold   = 0.3
)

// Classify derives a state label from the current (r, q). Rules are
// checked in precedence order; near-perfect coherence wins regardless of
// the measured winding, since r > 0.9 leaves no room for a net twist.
// The function is pure in the current state: identical phases always
// produce the identical label.
func (r *Ring) Classify() Classification {
	mag, _ := r.OrderParameter()
	q := r.WindingNumber()

	switch {
	case mag > syncThreshold:
		return Classification{Class: StateSynchronized, R: mag}
	case absInt(q) == 1 && mag < twisted1Threshold:
		return Classification{Class: StateTwisted, R: mag, Winding: q}
	case absInt(q) == 2 && mag < twisted2Threshold:
		return Classification{Class: StateTwisted, R: mag, Winding: q}
	case mag < desyncThreshold:
		return Classification{Class: StateDesynchronized, R: mag, Winding: q}
	default:
		return Classification{Class: StatePartial, R: mag, Winding: q}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
