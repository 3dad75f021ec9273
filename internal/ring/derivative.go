package ring

import "math"

// Derivatives returns dθ/dt for an arbitrary phase vector under nearest
// neighbor Kuramoto coupling:
//
//	dθᵢ/dt = ωᵢ + (k/2)·[sin(θᵢ₊₁ − θᵢ) + sin(θᵢ₋₁ − θᵢ)]
//
// Neighbor indices wrap around the ring. The function is pure in
// (phases, freqs, k); RK4 stage evaluations rely on this to evaluate the
// field at intermediate states the ring never holds.
func Derivatives(phases, freqs []float64, k float64) []float64 {
	dst := make([]float64, len(phases))
	derivatives(dst, phases, freqs, k)
	return dst
}

// derivatives is the in-place form used by the integrators, writing into a
// caller-owned buffer to keep the step loops allocation-free.
func derivatives(dst, phases, freqs []float64, k float64) {
	n := len(phases)
	half := 0.5 * k
	for i := 0; i < n; i++ {
		next := phases[(i+1)%n]
		prev := phases[(i-1+n)%n]
		dst[i] = freqs[i] + half*(math.Sin(next-phases[i])+math.Sin(prev-phases[i]))
	}
}
