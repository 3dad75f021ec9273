package ring

import "fmt"

// Method selects the time integration scheme.
type Method int

const (
	// MethodEuler is the first-order explicit Euler step.
	MethodEuler Method = iota
	// MethodRK4 is the classic 4th-order Runge-Kutta step.
	MethodRK4
)

func (m Method) String() string {
	switch m {
	case MethodEuler:
		return "euler"
	case MethodRK4:
		return "rk4"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps an integrator name to its enum value.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "euler":
		return MethodEuler, nil
	case "rk4":
		return MethodRK4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Advance steps the ring once with the selected method. Both methods share
// the same derivative function and renormalization.
func (r *Ring) Advance(m Method, dt float64) {
	if m == MethodRK4 {
		r.StepRK4(dt)
		return
	}
	r.Step(dt)
}
