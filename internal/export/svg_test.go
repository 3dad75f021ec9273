package export

import (
	"math"
	"strings"
	"testing"
)

func TestSeriesSVGStructure(t *testing.T) {
	values := []float64{0.1, 0.4, 0.8, 0.95}
	svg := SeriesSVG(values, 400, 200, "#00ff00", "order parameter r")

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`width="400"`,
		`height="200"`,
		`<path fill="none" stroke="#00ff00"`,
		"order parameter r",
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Count(svg, " L") != len(values)-1 {
		t.Errorf("expected %d line segments, got %d", len(values)-1, strings.Count(svg, " L"))
	}
}

func TestSeriesSVGTooFewPoints(t *testing.T) {
	if svg := SeriesSVG([]float64{1.0}, 100, 100, "#fff", ""); svg != "" {
		t.Errorf("expected empty output for one point, got %d bytes", len(svg))
	}
}

func TestSeriesSVGFlatLine(t *testing.T) {
	svg := SeriesSVG([]float64{0.5, 0.5, 0.5}, 100, 100, "#fff", "")
	if svg == "" {
		t.Fatal("flat series should still render")
	}
	if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
		t.Error("flat series produced non-finite coordinates")
	}
}

func TestRingSVGDotsAndOrder(t *testing.T) {
	phases := []float64{0, 0, 0, 0}
	svg := RingSVG(phases, 300)

	if got := strings.Count(svg, `r="2" fill="#00ff00"`); got != len(phases) {
		t.Errorf("expected %d oscillator dots, got %d", len(phases), got)
	}
	if !strings.Contains(svg, "r=1.000") {
		t.Errorf("identical phases should report full order, got: %s", svg[len(svg)-80:])
	}
}

func TestRingSVGCancellation(t *testing.T) {
	phases := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	svg := RingSVG(phases, 300)
	if !strings.Contains(svg, "r=0.000") {
		t.Error("balanced phases should report zero order")
	}
}

func TestRingSVGEmpty(t *testing.T) {
	if svg := RingSVG(nil, 100); svg != "" {
		t.Error("expected empty output for no phases")
	}
}
