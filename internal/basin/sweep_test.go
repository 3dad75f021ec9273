package basin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepPointPerCoupling(t *testing.T) {
	base := DefaultConfig()
	base.Trials = 5
	base.Steps = 50
	base.RingSize = 8

	points, err := Sweep(context.Background(), SweepConfig{
		Base: base,
		From: 0.5,
		To:   2.0,
		By:   0.5,
	})
	require.NoError(t, err)

	require.Len(t, points, 4)
	assert.InDelta(t, 0.5, points[0].Coupling, 1e-9)
	assert.InDelta(t, 2.0, points[3].Coupling, 1e-9)
	for _, p := range points {
		assert.Equal(t, 5, p.Dist.Total)
	}
}

func TestSweepValidation(t *testing.T) {
	base := DefaultConfig()

	_, err := Sweep(context.Background(), SweepConfig{Base: base, From: 0, To: 1, By: 0})
	assert.Error(t, err)

	_, err = Sweep(context.Background(), SweepConfig{Base: base, From: 2, To: 1, By: 0.5})
	assert.Error(t, err)
}

func TestSweepCancellation(t *testing.T) {
	base := DefaultConfig()
	base.Trials = 5
	base.Steps = 10

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	points, err := Sweep(ctx, SweepConfig{Base: base, From: 0, To: 10, By: 0.1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, points)
}
