// Package viz provides the interactive terminal view of a running ring.
//
// The view is a Bubble Tea program: the left pane renders the lattice and
// the phase circle on a Braille canvas, the right pane shows live
// diagnostics with an order-parameter history chart.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Re-randomize phases
//	S     - Quasi-sync initialization
//	1 / 2 - Twisted initialization (q=1 / q=2)
//	P     - Perturb all phases
//	F     - Cycle frequency policy
//	E     - Toggle integrator (Euler / RK4)
//	↑ / ↓ - Coupling strength up/down
//	← / → - Simulation speed down/up
//	Q     - Quit
package viz
