package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/akeil/xform"
	"github.com/akeil/xform/internal/imaging"
	"github.com/akeil/xform/internal/logging"
)

var face = basicfont.Face7x13

// PNG paints the figure and writes the PNG data to the given writer.
func (c *Context) PNG(f *Figure, w io.Writer) error {
	img := c.Image(f)
	return png.Encode(w, img)
}

// Image paints the figure onto a new image of the context's size.
func (c *Context) Image(f *Figure) *image.RGBA {
	logging.Debug("Render %vx%v image for %q", c.Width, c.Height, f.Subtitle)
	dst := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	imaging.Fill(dst, c.palette.Background)

	l := newLayout(f, box{0, 0, float64(c.Width), float64(c.Height)})
	gc := draw2dimg.NewGraphicContext(dst)
	gc.SetLineCap(draw2d.RoundCap)
	gc.SetLineJoin(draw2d.RoundJoin)

	c.renderGrid(gc, f, l)
	c.renderOrigin(gc, f, l)
	renderShape(gc, l, f.Original, c.palette.Original)
	renderShape(gc, l, f.Transformed, c.palette.Transformed)

	// frame
	p := l.plot
	gc.SetStrokeColor(c.palette.Frame)
	gc.SetLineWidth(1)
	gc.BeginPath()
	draw2dkit.Rectangle(gc, p.X, p.Y, p.X+p.W, p.Y+p.H)
	gc.Stroke()

	c.renderLegend(gc, dst, l)
	c.renderLabels(dst, f, l)

	return dst
}

// renderGrid draws a line for every tick, in both directions.
func (c *Context) renderGrid(gc draw2d.GraphicContext, f *Figure, l layout) {
	gc.SetStrokeColor(c.palette.Grid)
	gc.SetLineWidth(1)
	for _, t := range f.Ticks {
		line(gc, l, t, f.Min, t, f.Max)
		line(gc, l, f.Min, t, f.Max, t)
	}
}

// renderOrigin draws thin reference lines through the origin.
func (c *Context) renderOrigin(gc draw2d.GraphicContext, f *Figure, l layout) {
	gc.SetStrokeColor(c.palette.Origin)
	gc.SetLineWidth(1)
	if contains(f, 0) {
		line(gc, l, f.Min, 0, f.Max, 0)
		line(gc, l, 0, f.Min, 0, f.Max)
	}
}

func line(gc draw2d.GraphicContext, l layout, x0, y0, x1, y1 float64) {
	if !l.drawable(xform.Point{X: x0, Y: y0}, xform.Point{X: x1, Y: y1}) {
		return
	}
	gc.BeginPath()
	gc.MoveTo(l.px(x0, y0))
	gc.LineTo(l.px(x1, y1))
	gc.Stroke()
}

// renderShape draws the points as connected lines.
func renderShape(gc draw2d.GraphicContext, l layout, pts xform.PointSet, c color.Color) {
	if len(pts) < 2 || !l.drawable(pts...) {
		logging.Debug("Skip shape, %d points", len(pts))
		return
	}
	gc.SetStrokeColor(c)
	gc.SetLineWidth(2.5)
	gc.BeginPath()
	gc.MoveTo(l.px(pts[0].X, pts[0].Y))
	for _, p := range pts[1:] {
		gc.LineTo(l.px(p.X, p.Y))
	}
	gc.Stroke()
}

// renderLegend places a box with the two series names in the
// upper right corner of the plot area.
func (c *Context) renderLegend(gc draw2d.GraphicContext, dst draw.Image, l layout) {
	entries := []struct {
		label string
		color color.Color
	}{
		{"Original", c.palette.Original},
		{"Transformed", c.palette.Transformed},
	}

	lineLen := 24.0
	rowH := 18.0
	textW := float64(measure("Transformed"))
	w := 8 + lineLen + 6 + textW + 8
	h := 6 + rowH*float64(len(entries)) + 2
	x := l.plot.X + l.plot.W - w - 8
	y := l.plot.Y + 8

	gc.SetFillColor(c.palette.Background)
	gc.SetStrokeColor(c.palette.Grid)
	gc.SetLineWidth(1)
	gc.BeginPath()
	draw2dkit.Rectangle(gc, x, y, x+w, y+h)
	gc.FillStroke()

	for i, e := range entries {
		cy := y + 6 + rowH*float64(i) + rowH/2
		gc.SetStrokeColor(e.color)
		gc.SetLineWidth(2.5)
		gc.BeginPath()
		gc.MoveTo(x+8, cy)
		gc.LineTo(x+8+lineLen, cy)
		gc.Stroke()
		text(dst, e.label, x+8+lineLen+6, cy, c.palette.Text, alignLeft)
	}
}

// renderLabels writes the title, tick labels and axis names.
func (c *Context) renderLabels(dst draw.Image, f *Figure, l layout) {
	p := l.plot
	col := c.palette.Text
	center := p.X + p.W/2

	if f.Subtitle != "" {
		text(dst, f.Title, center, p.Y-36, col, alignCenter)
		text(dst, f.Subtitle, center, p.Y-16, col, alignCenter)
	} else {
		text(dst, f.Title, center, p.Y-20, col, alignCenter)
	}

	for _, t := range f.Ticks {
		s := tickLabel(t)
		x, _ := l.px(t, f.Min)
		text(dst, s, x, p.Y+p.H+12, col, alignCenter)
		_, y := l.px(f.Min, t)
		text(dst, s, p.X-6, y, col, alignRight)
	}

	text(dst, "X", center, p.Y+p.H+32, col, alignCenter)
	text(dst, "Y", p.X-44, p.Y+p.H/2, col, alignCenter)
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// text draws s vertically centered on y.
// x is the left edge, center or right edge of the text, depending on a.
func text(dst draw.Image, s string, x, y float64, c color.Color, a align) {
	w := float64(measure(s))
	switch a {
	case alignCenter:
		x -= w / 2
	case alignRight:
		x -= w
	}
	m := face.Metrics()
	baseline := y + float64(m.Ascent.Ceil()-m.Height.Ceil()/2)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(baseline))),
	}
	d.DrawString(s)
}

func measure(s string) int {
	return font.MeasureString(face, s).Ceil()
}

func tickLabel(v float64) string {
	if math.Abs(v) >= 1e15 {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
