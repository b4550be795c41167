package render

import (
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/akeil/xform"
	"github.com/akeil/xform/internal/logging"
)

// PDF renders the figure to a single A4 page and writes the PDF document
// to the given writer.
//
// If the figure has a Matrix, it is printed below the plot.
func (c *Context) PDF(f *Figure, w io.Writer) error {
	logging.Debug("Render PDF for %q", f.Subtitle)
	pdf := setupPDF(f)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	l := newLayout(f, box{0, 20, pageW, pageW})

	c.pdfGrid(pdf, f, l)
	c.pdfShape(pdf, l, f.Original, c.palette.Original)
	c.pdfShape(pdf, l, f.Transformed, c.palette.Transformed)

	p := l.plot
	setDrawColor(pdf, c.palette.Frame)
	pdf.SetLineWidth(0.75)
	pdf.Rect(p.X, p.Y, p.W, p.H, "D")

	c.pdfLegend(pdf, l)
	c.pdfLabels(pdf, f, l)

	if f.Matrix != nil {
		c.pdfMatrix(pdf, *f.Matrix, p.X, p.Y+p.H+70)
	}

	return pdf.Output(w)
}

func setupPDF(f *Figure) *gofpdf.Fpdf {
	orientation := "P" // [P]ortrait or [L]andscape
	sizeUnit := "pt"
	fontDir := ""
	pdf := gofpdf.New(orientation, sizeUnit, "A4", fontDir)

	pdf.SetMargins(0, 8, 0) // left, top, right
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetProducer("xform", true)
	pdf.SetCreator("xform", true)
	pdf.SetTitle(f.Title, true)
	if f.Subtitle != "" {
		pdf.SetSubject(f.Subtitle, true)
	}

	return pdf
}

func (c *Context) pdfGrid(pdf *gofpdf.Fpdf, f *Figure, l layout) {
	setDrawColor(pdf, c.palette.Grid)
	pdf.SetLineWidth(0.5)
	for _, t := range f.Ticks {
		pdfLine(pdf, l, t, f.Min, t, f.Max)
		pdfLine(pdf, l, f.Min, t, f.Max, t)
	}

	if contains(f, 0) {
		setDrawColor(pdf, c.palette.Origin)
		pdf.SetLineWidth(0.5)
		pdfLine(pdf, l, f.Min, 0, f.Max, 0)
		pdfLine(pdf, l, 0, f.Min, 0, f.Max)
	}
}

func pdfLine(pdf *gofpdf.Fpdf, l layout, x0, y0, x1, y1 float64) {
	if !l.drawable(xform.Point{X: x0, Y: y0}, xform.Point{X: x1, Y: y1}) {
		return
	}
	ax, ay := l.px(x0, y0)
	bx, by := l.px(x1, y1)
	pdf.Line(ax, ay, bx, by)
}

func (c *Context) pdfShape(pdf *gofpdf.Fpdf, l layout, pts xform.PointSet, col color.Color) {
	if len(pts) < 2 || !l.drawable(pts...) {
		return
	}
	setDrawColor(pdf, col)
	pdf.SetLineWidth(1.5)
	pdf.SetLineJoinStyle("round")
	pdf.SetLineCapStyle("round")

	x, y := l.px(pts[0].X, pts[0].Y)
	pdf.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = l.px(p.X, p.Y)
		pdf.LineTo(x, y)
	}
	pdf.DrawPath("D")
}

func (c *Context) pdfLegend(pdf *gofpdf.Fpdf, l layout) {
	pdf.SetFont("helvetica", "", 9)
	textW := pdf.GetStringWidth("Transformed")
	lineLen := 18.0
	rowH := 13.0
	w := 6 + lineLen + 4 + textW + 6
	h := 4 + 2*rowH
	x := l.plot.X + l.plot.W - w - 6
	y := l.plot.Y + 6

	setFillColor(pdf, c.palette.Background)
	setDrawColor(pdf, c.palette.Grid)
	pdf.SetLineWidth(0.5)
	pdf.Rect(x, y, w, h, "FD")

	entries := []struct {
		label string
		color color.Color
	}{
		{"Original", c.palette.Original},
		{"Transformed", c.palette.Transformed},
	}
	setTextColor(pdf, c.palette.Text)
	for i, e := range entries {
		cy := y + 2 + rowH*float64(i) + rowH/2
		setDrawColor(pdf, e.color)
		pdf.SetLineWidth(1.5)
		pdf.Line(x+6, cy, x+6+lineLen, cy)
		pdf.Text(x+6+lineLen+4, cy+3, e.label)
	}
}

func (c *Context) pdfLabels(pdf *gofpdf.Fpdf, f *Figure, l layout) {
	p := l.plot
	center := p.X + p.W/2
	setTextColor(pdf, c.palette.Text)

	pdf.SetFont("helvetica", "B", 14)
	title := f.Title
	pdf.Text(center-pdf.GetStringWidth(title)/2, p.Y-30, title)
	if f.Subtitle != "" {
		// core fonts use cp1252, the subtitle may contain "°"
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		sub := tr(f.Subtitle)
		pdf.SetFont("helvetica", "", 10)
		pdf.Text(center-pdf.GetStringWidth(sub)/2, p.Y-14, sub)
	}

	pdf.SetFont("helvetica", "", 8)
	for _, t := range f.Ticks {
		s := tickLabel(t)
		x, _ := l.px(t, f.Min)
		pdf.Text(x-pdf.GetStringWidth(s)/2, p.Y+p.H+11, s)
		_, y := l.px(f.Min, t)
		pdf.Text(p.X-4-pdf.GetStringWidth(s), y+3, s)
	}

	pdf.SetFont("helvetica", "", 10)
	pdf.Text(center-pdf.GetStringWidth("X")/2, p.Y+p.H+26, "X")
	pdf.Text(p.X-34, p.Y+p.H/2+3, "Y")
}

// pdfMatrix prints the matrix as a 3x3 table with the determinant.
func (c *Context) pdfMatrix(pdf *gofpdf.Fpdf, m xform.Matrix, x, y float64) {
	setTextColor(pdf, c.palette.Text)
	pdf.SetFont("helvetica", "B", 11)
	pdf.Text(x, y, "Homogeneous Transformation Matrix (T)")
	pdf.SetFont("helvetica", "", 9)
	pdf.Text(x, y+14, "Points P are row vectors: P' = P T")

	setDrawColor(pdf, c.palette.Grid)
	pdf.SetLineWidth(0.5)
	pdf.SetXY(x, y+22)
	cellW, cellH := 60.0, 18.0
	for _, row := range m.Cells() {
		pdf.SetX(x)
		for _, s := range row {
			pdf.CellFormat(cellW, cellH, s, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(cellH)
	}

	pdf.Ln(6)
	pdf.SetX(x)
	pdf.Cellf(0, 12, "Determinant: %v", tickLabel(m.Determinant()))
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.Color) {
	r, g, b := rgb(c)
	pdf.SetDrawColor(r, g, b)
}

func setFillColor(pdf *gofpdf.Fpdf, c color.Color) {
	r, g, b := rgb(c)
	pdf.SetFillColor(r, g, b)
}

func setTextColor(pdf *gofpdf.Fpdf, c color.Color) {
	r, g, b := rgb(c)
	pdf.SetTextColor(r, g, b)
}
