package ring

import "errors"

// Domain errors for ring construction and configuration.
var (
	// ErrRingTooSmall indicates a requested ring of fewer than two
	// oscillators. N=1 has no neighbor topology and is rejected.
	ErrRingTooSmall = errors.New("ring: need at least 2 oscillators")

	// ErrUnknownPolicy indicates a frequency or phase policy outside the
	// closed policy set.
	ErrUnknownPolicy = errors.New("ring: unknown policy")

	// ErrUnknownMethod indicates an unrecognized integration method name.
	ErrUnknownMethod = errors.New("ring: unknown integration method")
)
