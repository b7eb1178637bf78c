package charts

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
)

const violinPoints = 64

// scottBandwidth is Scott's rule of thumb for a Gaussian kernel.
func scottBandwidth(values []float64) float64 {
	if len(values) < 2 {
		return 1
	}
	bw := stat.StdDev(values, nil) * math.Pow(float64(len(values)), -0.2)
	if bw <= 0 || math.IsNaN(bw) {
		return 1
	}
	return bw
}

// gaussianKDE evaluates a Gaussian kernel density estimate of values at each grid point.
func gaussianKDE(values, grid []float64, bw float64) []float64 {
	norm := 1 / (float64(len(values)) * bw * math.Sqrt(2*math.Pi))
	out := make([]float64, len(grid))
	for i, y := range grid {
		var sum float64
		for _, v := range values {
			z := (y - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		out[i] = sum * norm
	}
	return out
}

// violinOutline returns the closed outline of a violin centred on x whose
// widest point spans 2*halfWidth. The density is cut two bandwidths past the data.
func violinOutline(values []float64, x, halfWidth float64) plotter.XYs {
	if len(values) == 0 {
		return nil
	}

	bw := scottBandwidth(values)
	lo := floats.Min(values) - 2*bw
	hi := floats.Max(values) + 2*bw

	grid := make([]float64, violinPoints)
	floats.Span(grid, lo, hi)
	density := gaussianKDE(values, grid, bw)
	peak := floats.Max(density)

	outline := make(plotter.XYs, 0, 2*violinPoints)
	for i, y := range grid {
		outline = append(outline, plotter.XY{X: x - halfWidth*density[i]/peak, Y: y})
	}
	for i := len(grid) - 1; i >= 0; i-- {
		outline = append(outline, plotter.XY{X: x + halfWidth*density[i]/peak, Y: grid[i]})
	}
	return outline
}
