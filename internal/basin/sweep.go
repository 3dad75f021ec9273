package basin

import (
	"context"
	"fmt"
	"log/slog"
)

// SweepConfig scans the coupling strength across a range, running a full
// experiment per value. From/To are inclusive within float tolerance.
type SweepConfig struct {
	Base Config
	From float64
	To   float64
	By   float64
}

// Point is the experiment outcome at one coupling value.
type Point struct {
	Coupling float64
	Dist     Distribution
}

// Sweep runs the basin experiment at each coupling value and returns one
// point per value. The per-experiment trial seed is fixed, so two sweeps
// over the same range are identical run to run.
func Sweep(ctx context.Context, cfg SweepConfig) ([]Point, error) {
	if cfg.By <= 0 {
		return nil, fmt.Errorf("basin: sweep step must be positive, got %f", cfg.By)
	}
	if cfg.To < cfg.From {
		return nil, fmt.Errorf("basin: sweep range inverted: [%f, %f]", cfg.From, cfg.To)
	}

	points := make([]Point, 0, int((cfg.To-cfg.From)/cfg.By)+1)

	for k := cfg.From; k <= cfg.To+1e-9; k += cfg.By {
		expCfg := cfg.Base
		expCfg.Coupling = k

		exp, err := New(expCfg)
		if err != nil {
			return nil, err
		}

		dist, err := exp.Run(ctx, nil)
		if err != nil {
			return points, err
		}

		slog.Debug("sweep point done",
			"coupling", k,
			"sync_fraction", dist.Fraction(dist.Sync))

		points = append(points, Point{Coupling: k, Dist: *dist})
	}

	return points, nil
}
