package imaging

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Resize creates a copy of the given image, scaled to the given width.
// The aspect ratio is preserved.
func Resize(i image.Image, width int) *image.RGBA {
	b := i.Bounds()
	if b.Dx() == 0 || width <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	height := int(math.Round(float64(b.Dy()) * float64(width) / float64(b.Dx())))
	size := image.Rect(0, 0, width, height)

	dst := image.NewRGBA(size)
	// plots are mostly thin lines, bilinear keeps them visible when shrinking
	s := draw.BiLinear
	s.Scale(dst, size, i, b, draw.Over, nil)
	return dst
}

// Fill paints the complete destination image with a single color.
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Paste draws src onto dst with its top left corner at p.
func Paste(dst draw.Image, src image.Image, p image.Point) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(p)
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}
