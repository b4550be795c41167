package render

import (
	"image"
	"image/color"

	"github.com/akeil/xform/internal/imaging"
)

// sheetGap is the space between and around thumbnails on a contact sheet.
const sheetGap = 10

// Thumbnail creates a downscaled copy of img with the given width.
func Thumbnail(img image.Image, width int) *image.RGBA {
	return imaging.Resize(img, width)
}

// ContactSheet arranges thumbnails of the given images in a grid.
//
// Each image is scaled to width pixels; rows are as tall as the tallest
// thumbnail. The sheet is filled with bg.
func ContactSheet(images []image.Image, columns, width int, bg color.Color) *image.RGBA {
	if columns < 1 {
		columns = 1
	}
	if len(images) < columns {
		columns = len(images)
	}
	if columns == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	thumbs := make([]*image.RGBA, len(images))
	rowH := 0
	for i, img := range images {
		thumbs[i] = Thumbnail(img, width)
		if h := thumbs[i].Bounds().Dy(); h > rowH {
			rowH = h
		}
	}

	rows := (len(images) + columns - 1) / columns
	w := columns*width + (columns+1)*sheetGap
	h := rows*rowH + (rows+1)*sheetGap
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	imaging.Fill(dst, bg)

	for i, t := range thumbs {
		col := i % columns
		row := i / columns
		p := image.Pt(sheetGap+col*(width+sheetGap), sheetGap+row*(rowH+sheetGap))
		imaging.Paste(dst, t, p)
	}

	return dst
}
