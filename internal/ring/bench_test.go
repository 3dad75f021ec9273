package ring

import (
	"math/rand"
	"testing"
)

func benchRing(b *testing.B, n int) *Ring {
	b.Helper()
	r, err := New(n, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatal(err)
	}
	r.SetCoupling(2.0)
	return r
}

func BenchmarkEulerStep(b *testing.B) {
	r := benchRing(b, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Step(0.02)
	}
}

func BenchmarkRK4Step(b *testing.B) {
	r := benchRing(b, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.StepRK4(0.02)
	}
}

func BenchmarkRK4Step_N1024(b *testing.B) {
	r := benchRing(b, 1024)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.StepRK4(0.02)
	}
}

func BenchmarkOrderParameter(b *testing.B) {
	r := benchRing(b, 256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.OrderParameter()
	}
}

func BenchmarkWindingNumber(b *testing.B) {
	r := benchRing(b, 256)
	r.SetInitialPhases(PhaseTwisted1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.WindingNumber()
	}
}
