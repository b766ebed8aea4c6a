// Package presentation holds the output adapters shared by the CLI and the API.
// Adapters only read snapshot tables; none of them recompute scores.
package presentation

import "fmt"

// RGB is a background colour for a score cell
type RGB struct {
	R, G, B int
}

// White is used for a final score of exactly zero
var White = RGB{255, 255, 255}

var (
	redAtMin   = RGB{243, 35, 35}
	redAtZero  = RGB{233, 172, 172}
	greenAtMin = RGB{193, 238, 191}
	greenAtMax = RGB{64, 176, 61}
)

// CSS renders the colour as an rgb() value
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Gradient colours a score relative to the lowest and highest score of its table.
// Negative scores fade from strong red at min to pale red near zero; positive
// scores deepen from pale green near zero to strong green at max.
func Gradient(val, min, max int) RGB {
	switch {
	case val < 0:
		t := float64(val-min) / float64(0-min)
		return interpolate(redAtMin, redAtZero, t)
	case val > 0:
		t := float64(val) / float64(max)
		return interpolate(greenAtMin, greenAtMax, t)
	default:
		return White
	}
}

// interpolate truncates each channel toward zero
func interpolate(from, to RGB, t float64) RGB {
	mix := func(a, b int) int {
		return int((1-t)*float64(a) + t*float64(b))
	}
	return RGB{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
	}
}
