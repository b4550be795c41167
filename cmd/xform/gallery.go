package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/akeil/xform"
	"github.com/akeil/xform/internal/fs"
	"github.com/akeil/xform/pkg/render"
)

// examples show each kind of transformation with visible effect.
func examples() []xform.Params {
	with := func(f func(p *xform.Params)) xform.Params {
		p := xform.DefaultParams()
		f(&p)
		return p
	}
	return []xform.Params{
		with(func(p *xform.Params) { p.Kind = xform.None }),
		with(func(p *xform.Params) { p.Kind = xform.Translation }),
		with(func(p *xform.Params) { p.Kind, p.Sx, p.Sy = xform.Scaling, 1.5, 0.5 }),
		with(func(p *xform.Params) { p.Kind = xform.Rotation }),
		with(func(p *xform.Params) { p.Kind, p.Hx = xform.Shearing, 0.5 }),
		with(func(p *xform.Params) { p.Kind, p.Axis = xform.Reflection, xform.XAxis }),
		with(func(p *xform.Params) { p.Kind, p.Axis = xform.Reflection, xform.YAxis }),
		with(func(p *xform.Params) { p.Kind, p.Axis = xform.Reflection, xform.LineYX }),
	}
}

func doGallery(s settings, outDir string, withPDF bool) error {
	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return err
	}

	rc := render.NewContext(s.width, s.height, nil)
	params := examples()
	images := make([]image.Image, len(params))

	var group errgroup.Group
	for i, p := range params {
		i, p := i, p
		group.Go(func() error {
			img, err := renderExample(rc, p, filepath.Join(outDir, exampleName(i, p)), withPDF)
			if err != nil {
				fmt.Printf("%v Failed to render %v: %v\n", crossmark, p.Description(), err)
				return err
			}
			images[i] = img
			return nil
		})
	}
	err = group.Wait()
	if err != nil {
		return err
	}

	sheet := render.ContactSheet(images, 4, 240, rc.Palette().Background)
	path := filepath.Join(outDir, "gallery.png")
	err = fs.WriteFile(path, func(w io.Writer) error {
		return png.Encode(w, sheet)
	})
	if err != nil {
		return err
	}

	fmt.Printf("%v %d examples, contact sheet saved as %q.\n", checkmark, len(images), path)
	return nil
}

// renderExample writes base.png (and base.pdf) and returns the image.
func renderExample(rc *render.Context, p xform.Params, base string, withPDF bool) (image.Image, error) {
	r, err := xform.Evaluate(p)
	if err != nil {
		return nil, err
	}
	f := render.FromResult(r)

	fmt.Printf("%v render %v\n", ellipsis, p.Description())
	img := rc.Image(f)
	err = fs.WriteFile(base+".png", func(w io.Writer) error {
		return png.Encode(w, img)
	})
	if err != nil {
		return nil, err
	}

	if withPDF {
		err = writePlot(rc, f, render.PDF, base+".pdf", false)
		if err != nil {
			return nil, err
		}
	}

	return img, nil
}

// exampleName gives names like "03-rotation" or "07-reflection-y-axis".
func exampleName(i int, p xform.Params) string {
	name := strings.ToLower(p.Kind.String())
	if p.Kind == xform.Reflection {
		r := strings.NewReplacer(" ", "-", "=", "")
		name += "-" + r.Replace(strings.ToLower(p.Axis.String()))
	}
	return fmt.Sprintf("%02d-%v", i, name)
}
