// Growth field generation using layered simplex noise.
// Optional per-cell variation of the Capital growth rate; the field is sampled
// on a torus so it wraps seamlessly with the grid.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// MinGrowthFactor is the floor for any cell's growth multiplier, keeping
// every Capital's growth strictly positive.
const MinGrowthFactor = 0.05

// GrowthField returns a row-major width×height slice of growth multipliers.
// With variance 0 every multiplier is exactly 1. Otherwise each cell gets
// 1 + variance*(2n-1), n being normalized noise in [0, 1).
func GrowthField(width, height int, seed int64, variance float64) []float64 {
	field := make([]float64, width*height)
	if variance <= 0 {
		for i := range field {
			field[i] = 1
		}
		return field
	}

	noise := opensimplex.NewNormalized(seed)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := torusNoise(noise, x, y, width, height, 3, 0.5)
			m := 1 + variance*(2*n-1)
			if m < MinGrowthFactor {
				m = MinGrowthFactor
			}
			field[y*width+x] = m
		}
	}
	return field
}

// torusNoise samples 4D noise on a torus embedding of (x, y) so opposite
// edges of the grid get continuous values. Octaves are layered the same way
// as fractal terrain noise.
func torusNoise(noise opensimplex.Noise, x, y, width, height, octaves int, persistence float64) float64 {
	a := 2 * math.Pi * float64(x) / float64(width)
	b := 2 * math.Pi * float64(y) / float64(height)

	// Radius scales with grid size so feature size stays roughly constant.
	rx := float64(width) / (2 * math.Pi) * 0.15
	ry := float64(height) / (2 * math.Pi) * 0.15

	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	frequency := 1.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval4(
			rx*math.Cos(a)*frequency, rx*math.Sin(a)*frequency,
			ry*math.Cos(b)*frequency, ry*math.Sin(b)*frequency,
		) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
