package ring

import (
	"fmt"
	"math"
	"math/rand"
)

// FreqPolicy selects how natural frequencies are assigned.
type FreqPolicy int

const (
	// FreqIdentical sets every ωᵢ = 1.0.
	FreqIdentical FreqPolicy = iota
	// FreqRandom draws each ωᵢ uniformly from [0.8, 1.2].
	FreqRandom
	// FreqTwoGroups gives the first ⌊N/2⌋ oscillators ω = 0.8 and the
	// remainder ω = 1.2.
	FreqTwoGroups
)

func (p FreqPolicy) String() string {
	switch p {
	case FreqIdentical:
		return "identical"
	case FreqRandom:
		return "random"
	case FreqTwoGroups:
		return "two-groups"
	default:
		return fmt.Sprintf("freq(%d)", int(p))
	}
}

// ParseFreqPolicy maps a policy name from the CLI or a config file to its
// enum value.
func ParseFreqPolicy(name string) (FreqPolicy, error) {
	switch name {
	case "identical":
		return FreqIdentical, nil
	case "random":
		return FreqRandom, nil
	case "two-groups", "twogroups":
		return FreqTwoGroups, nil
	default:
		return 0, fmt.Errorf("%w: frequency policy %q", ErrUnknownPolicy, name)
	}
}

// PhasePolicy selects how initial phases are assigned.
type PhasePolicy int

const (
	// PhaseRandom draws each phase uniformly from [0, 2π).
	PhaseRandom PhasePolicy = iota
	// PhaseQuasiSync clusters all phases within ±0.15 rad of one random
	// center angle.
	PhaseQuasiSync
	// PhaseTwisted1 sets phase[i] = 2πi/N, one full winding (q=1).
	PhaseTwisted1
	// PhaseTwisted2 sets phase[i] = 4πi/N, two full windings (q=2).
	PhaseTwisted2
)

func (p PhasePolicy) String() string {
	switch p {
	case PhaseRandom:
		return "random"
	case PhaseQuasiSync:
		return "quasi-sync"
	case PhaseTwisted1:
		return "twisted-1"
	case PhaseTwisted2:
		return "twisted-2"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ParsePhasePolicy maps a policy name from the CLI or a config file to its
// enum value.
func ParsePhasePolicy(name string) (PhasePolicy, error) {
	switch name {
	case "random":
		return PhaseRandom, nil
	case "quasi-sync", "quasisync":
		return PhaseQuasiSync, nil
	case "twisted-1", "twisted1":
		return PhaseTwisted1, nil
	case "twisted-2", "twisted2":
		return PhaseTwisted2, nil
	default:
		return 0, fmt.Errorf("%w: phase policy %q", ErrUnknownPolicy, name)
	}
}

// assignFrequencies fills dst according to the policy. Pure given (policy,
// len(dst), rng).
func assignFrequencies(p FreqPolicy, dst []float64, rng *rand.Rand) error {
	n := len(dst)
	switch p {
	case FreqIdentical:
		for i := range dst {
			dst[i] = 1.0
		}
	case FreqRandom:
		for i := range dst {
			dst[i] = 0.8 + 0.4*rng.Float64()
		}
	case FreqTwoGroups:
		for i := range dst {
			if i < n/2 {
				dst[i] = 0.8
			} else {
				dst[i] = 1.2
			}
		}
	default:
		return fmt.Errorf("%w: frequency policy %d", ErrUnknownPolicy, int(p))
	}
	return nil
}

// assignPhases fills dst according to the policy and normalizes every
// entry into [0, 2π).
func assignPhases(p PhasePolicy, dst []float64, rng *rand.Rand) error {
	n := len(dst)
	switch p {
	case PhaseRandom:
		for i := range dst {
			dst[i] = twoPi * rng.Float64()
		}
	case PhaseQuasiSync:
		center := twoPi * rng.Float64()
		for i := range dst {
			dst[i] = center + 0.3*(rng.Float64()-0.5)
		}
	case PhaseTwisted1:
		for i := range dst {
			dst[i] = twoPi * float64(i) / float64(n)
		}
	case PhaseTwisted2:
		for i := range dst {
			dst[i] = 2 * twoPi * float64(i) / float64(n)
		}
	default:
		return fmt.Errorf("%w: phase policy %d", ErrUnknownPolicy, int(p))
	}
	for i := range dst {
		dst[i] = wrapPhase(dst[i])
	}
	return nil
}

const twoPi = 2 * math.Pi

// wrapPhase maps x into [0, 2π) with a true modulo; negative inputs wrap
// up, not toward zero.
func wrapPhase(x float64) float64 {
	x = math.Mod(x, twoPi)
	if x < 0 {
		x += twoPi
	}
	return x
}

// wrapDiff maps a phase difference into [-π, π].
func wrapDiff(d float64) float64 {
	for d > math.Pi {
		d -= twoPi
	}
	for d < -math.Pi {
		d += twoPi
	}
	return d
}
