package render

import (
	"math"

	"github.com/akeil/xform"
)

// box is a rectangle in device coordinates, Y pointing down.
type box struct {
	X, Y, W, H float64
}

// layout places the square plot area inside a box and maps data
// coordinates to device coordinates.
type layout struct {
	plot    box
	toPixel xform.Matrix
}

// margins around the plot area, in device units, for a reference size of
// 800 units. They are scaled with the actual size.
const (
	marginTop    = 70.0
	marginBottom = 50.0
	marginLeft   = 60.0
	marginRight  = 30.0
	refSize      = 800.0
)

func newLayout(f *Figure, outer box) layout {
	k := math.Min(outer.W, outer.H) / refSize
	top, bottom := marginTop*k, marginBottom*k
	left, right := marginLeft*k, marginRight*k

	availW := outer.W - left - right
	availH := outer.H - top - bottom
	size := math.Max(math.Min(availW, availH), 1)

	// center the square horizontally within the available space
	x := outer.X + left + (availW-size)/2
	y := outer.Y + top
	plot := box{X: x, Y: y, W: size, H: size}

	return layout{
		plot:    plot,
		toPixel: viewport(f.Min, f.Max, plot),
	}
}

// viewport maps the data square [min, max] x [min, max] onto the plot box.
// The Y axis is flipped because device coordinates grow downwards.
func viewport(min, max float64, b box) xform.Matrix {
	// half the span does not overflow for finite limits
	half := max/2 - min/2
	if !(half > 0) || !finite(half) {
		half = 0.5
	}
	k := b.W / 2 / half
	return xform.Compose(
		xform.Translate(-min, -min),
		xform.Scale(k, -k),
		xform.Translate(b.X, b.Y+b.H),
	)
}

// px converts a data point to device coordinates.
func (l layout) px(x, y float64) (float64, float64) {
	return l.toPixel.Transform(x, y)
}

// drawable tells if all points map to finite device coordinates.
// Huge data ranges can overflow.
func (l layout) drawable(pts ...xform.Point) bool {
	for _, p := range pts {
		x, y := l.px(p.X, p.Y)
		if !finite(x) || !finite(y) {
			return false
		}
	}
	return true
}

// contains tells if the data value v is within the axis limits.
func contains(f *Figure, v float64) bool {
	return v >= f.Min && v <= f.Max
}
