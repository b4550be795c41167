package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/akeil/xform"
	"github.com/akeil/xform/internal/fs"
	"github.com/akeil/xform/pkg/render"
)

func doPlot(s settings, p xform.Params, path string, check bool) error {
	format, err := render.FormatFromPath(path)
	if err != nil {
		return err
	}

	r, err := xform.Evaluate(p)
	if err != nil {
		return err
	}

	rc := render.NewContext(s.width, s.height, nil)
	err = writePlot(rc, render.FromResult(r), format, path, check)
	if err != nil {
		fmt.Printf("%v Failed to render %q: %v\n", crossmark, path, err)
		return err
	}

	fmt.Printf("%v %v saved as %q.\n", checkmark, p.Description(), path)
	return nil
}

// writePlot renders the figure to path.
// With check set, PDF output is validated before the file is written.
func writePlot(rc *render.Context, f *render.Figure, format render.Format, path string, check bool) error {
	return fs.WriteFile(path, func(w io.Writer) error {
		if !check || format != render.PDF {
			return rc.Render(f, format, w)
		}

		var buf bytes.Buffer
		err := rc.Render(f, format, &buf)
		if err != nil {
			return err
		}
		err = render.ValidatePDF(bytes.NewReader(buf.Bytes()))
		if err != nil {
			return xform.Wrap(err, "invalid PDF")
		}
		_, err = buf.WriteTo(w)
		return err
	})
}
