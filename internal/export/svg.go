// Package export renders run diagnostics as standalone SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"
)

// SeriesSVG renders a time series as a single polyline with y autoscaled to
// the data range.
func SeriesSVG(values []float64, width, height int, stroke, caption string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minV -= span * 0.1
	maxV += span * 0.1
	span = maxV - minV

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke))

	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * float64(width)
		y := float64(height) - (v-minV)/span*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	if caption != "" {
		sb.WriteString(fmt.Sprintf(
			`<text x="8" y="16" fill="#888888" font-family="monospace" font-size="12">%s</text>
`, caption))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// RingSVG renders a terminal ring state: oscillators placed on a circle by
// lattice index, each with a needle pointing in its phase direction, plus a
// central mean-field arrow scaled by the order parameter.
func RingSVG(phases []float64, size int) string {
	if len(phases) == 0 {
		return ""
	}

	n := len(phases)
	cx := float64(size) / 2
	cy := float64(size) / 2
	radius := float64(size) * 0.38
	needle := float64(size) * 0.05

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#333333"/>
`, size, size, size, size, cx, cy, radius))

	var sumCos, sumSin float64
	for i, theta := range phases {
		angle := 2 * math.Pi * float64(i) / float64(n)
		ox := cx + radius*math.Cos(angle)
		oy := cy - radius*math.Sin(angle)
		tipX := ox + needle*math.Cos(theta)
		tipY := oy - needle*math.Sin(theta)

		sb.WriteString(fmt.Sprintf(
			`<circle cx="%.1f" cy="%.1f" r="2" fill="#00ff00"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#00ff00" stroke-width="1"/>
`, ox, oy, ox, oy, tipX, tipY))

		sumCos += math.Cos(theta)
		sumSin += math.Sin(theta)
	}

	mag := math.Hypot(sumCos, sumSin) / float64(n)
	psi := math.Atan2(sumSin, sumCos)
	arrowX := cx + mag*radius*0.8*math.Cos(psi)
	arrowY := cy - mag*radius*0.8*math.Sin(psi)
	sb.WriteString(fmt.Sprintf(
		`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ffcc00" stroke-width="2"/>
<text x="8" y="16" fill="#888888" font-family="monospace" font-size="12">r=%.3f</text>
</svg>`, cx, cy, arrowX, arrowY, mag))
	return sb.String()
}
