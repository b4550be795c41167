package render

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"
)

// Palette holds the colors used for a plot.
type Palette struct {
	Background  color.Color
	Original    color.Color
	Transformed color.Color
	Grid        color.Color
	Origin      color.Color
	Frame       color.Color
	Text        color.Color
}

// DefaultPalette draws the original shape in blue and the transformed
// shape in red on a white background.
func DefaultPalette() *Palette {
	return &Palette{
		Background:  color.White,
		Original:    color.RGBA{0, 0, 255, 255},
		Transformed: color.RGBA{255, 0, 0, 255},
		Grid:        color.RGBA{220, 220, 220, 255},
		Origin:      color.RGBA{128, 128, 128, 255},
		Frame:       color.Black,
		Text:        color.Black,
	}
}

// Context holds parameters for rendering operations.
//
// A Context is not modified by rendering and can be shared.
type Context struct {
	// Width and Height are the image size in pixels.
	// They are ignored for PDF output, which always uses an A4 page.
	Width   int
	Height  int
	palette *Palette
}

// NewContext sets up a new rendering context.
// If p is nil, the default palette is used.
func NewContext(width, height int, p *Palette) *Context {
	if p == nil {
		p = DefaultPalette()
	}
	return &Context{
		Width:   width,
		Height:  height,
		palette: p,
	}
}

// DefaultContext renders 800x800 pixel images with the default palette.
func DefaultContext() *Context {
	return NewContext(800, 800, nil)
}

// Palette returns the colors used by this context.
func (c *Context) Palette() *Palette {
	return c.palette
}

// Render writes the figure in the given format.
func (c *Context) Render(f *Figure, format Format, w io.Writer) error {
	switch format {
	case PNG:
		return c.PNG(f, w)
	case PDF:
		return c.PDF(f, w)
	default:
		return fmt.Errorf("unsupported output format %v", format)
	}
}

// Format is an output file format.
type Format int

const (
	PNG Format = iota
	PDF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case PDF:
		return "pdf"
	default:
		return "UNKNOWN"
	}
}

// ContentType is the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case PDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// FormatFromPath determines the output format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return PNG, nil
	case ".pdf":
		return PDF, nil
	}
	return PNG, fmt.Errorf("unsupported file extension %q, choose one of '.png', '.pdf'", ext)
}

// rgb converts a color to 8-bit components.
func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}
