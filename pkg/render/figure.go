package render

import (
	"math"

	"github.com/akeil/xform"
)

// DefaultTitle is shown above every plot.
const DefaultTitle = "2D Matrix Transformations"

// padding is added on each side of the data range.
const padding = 1.0

// targetTicks is the approximate number of grid lines per axis.
const targetTicks = 8

// Figure describes a plot of the original and the transformed shape on a
// shared coordinate system.
//
// Both axes use the same limits so the plot has an equal aspect ratio.
type Figure struct {
	Title string
	// Subtitle is an optional line below the title, e.g. "Rotation by 45°".
	Subtitle    string
	Original    xform.PointSet
	Transformed xform.PointSet
	// Matrix is optional. If set, the PDF output includes it as a table.
	Matrix *xform.Matrix
	// Min and Max are the axis limits, identical for X and Y.
	Min float64
	Max float64
	// Ticks are the positions of the grid lines and axis labels.
	Ticks []float64
}

// PlotShapes sets up a Figure for the given point sets.
//
// Axis limits are computed from the smallest and largest coordinate of
// both sets, padded by one unit.
func PlotShapes(original, transformed xform.PointSet) *Figure {
	min, max := Limits(original, transformed)
	return &Figure{
		Title:       DefaultTitle,
		Original:    original,
		Transformed: transformed,
		Min:         min,
		Max:         max,
		Ticks:       Ticks(min, max, targetTicks),
	}
}

// FromResult creates a Figure for an evaluated transformation,
// including a subtitle and the matrix.
func FromResult(r xform.Result) *Figure {
	f := PlotShapes(r.Original, r.Transformed)
	f.Subtitle = r.Params.Description()
	m := r.Matrix
	f.Matrix = &m
	return f
}

// Limits returns the axis limits for the given point sets:
// the overall minimum and maximum coordinate, padded by one unit.
// Empty sets are ignored.
func Limits(sets ...xform.PointSet) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, s := range sets {
		if len(s) == 0 {
			continue
		}
		lo, hi := s.Bounds()
		min = math.Min(min, lo)
		max = math.Max(max, hi)
	}
	if math.IsInf(min, 1) {
		min, max = 0, 0
	}
	return min - padding, max + padding
}

// Ticks returns evenly spaced positions between min and max (inclusive).
// The spacing is 1, 2, 2.5 or 5 times a power of ten, chosen so that
// there are about n ticks.
//
// There are no ticks if the range cannot be represented, e.g. when
// max-min overflows.
func Ticks(min, max float64, n int) []float64 {
	if n < 2 || !(max > min) || !finite(max-min) {
		return []float64{}
	}
	step := niceStep((max - min) / float64(n-1))
	first := math.Ceil(min/step) * step
	if !finite(step) || step <= 0 || !finite(first) {
		return []float64{}
	}

	ticks := make([]float64, 0, n+2)
	for i := 0; i < n+2; i++ {
		v := first + float64(i)*step
		// snap to the step grid to avoid values like 0.30000000000000004
		v = math.Round(v/step) * step
		if !(v <= max+step*1e-9) {
			break
		}
		// far from zero, the step may be lost to rounding
		if len(ticks) > 0 && v <= ticks[len(ticks)-1] {
			break
		}
		if v == 0 {
			v = 0
		}
		ticks = append(ticks, v)
	}
	return ticks
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	for _, f := range []float64{1, 2, 2.5, 5} {
		if norm <= f {
			return f * mag
		}
	}
	return 10 * mag
}
