package main

import (
	"fmt"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/akeil/xform"
)

const (
	checkmark = "✓"
	crossmark = "✗"
	ellipsis  = "…"
)

type settings struct {
	width  int
	height int
}

func main() {
	app := kingpin.New("xform", "2D Matrix Transformations")
	app.HelpFlag.Short('h')
	var (
		logLevel = app.Flag("log-level", "Log level").Default("warning").Envar("XFORM_LOG_LEVEL").Enum("debug", "info", "warning", "error", "none")
		width    = app.Flag("width", "Image width in pixels").Default("800").Envar("XFORM_WIDTH").Int()
		height   = app.Flag("height", "Image height in pixels").Default("800").Envar("XFORM_HEIGHT").Int()
	)

	show := app.Command("show", "Print the matrix and the transformed unit square").Default()
	showParams := paramFlags(show)

	plot := app.Command("plot", "Render the original and transformed shape to a PNG or PDF file")
	var (
		plotParams = paramFlags(plot)
		plotOut    = plot.Flag("output", "Output file, .png or .pdf").Short('o').Default("transform.png").String()
		plotCheck  = plot.Flag("check", "Validate PDF output").Bool()
	)

	gallery := app.Command("gallery", "Render an example for every transformation")
	var (
		galleryOut = gallery.Flag("output", "Output directory").Short('o').Default(".").String()
		galleryPDF = gallery.Flag("pdf", "Also write PDF files").Bool()
	)

	serve := app.Command("serve", "Run the interactive demo in the browser")
	var (
		serveAddr  = serve.Flag("listen", "Address to listen on").Short('l').Default(":8080").Envar("XFORM_LISTEN").String()
		serveStart = serve.Flag("start-page", "Page for new sessions").Default("welcome").Enum("welcome", "demo")
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	xform.SetLogLevel(*logLevel)
	s := settings{
		width:  *width,
		height: *height,
	}

	var err error
	switch command {
	case "show":
		err = withParams(showParams, doShow)
	case "plot":
		err = withParams(plotParams, func(p xform.Params) error {
			return doPlot(s, p, *plotOut, *plotCheck)
		})
	case "gallery":
		err = doGallery(s, *galleryOut, *galleryPDF)
	case "serve":
		err = doServe(s, *serveAddr, *serveStart)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

// paramArgs collects the flags that describe a transformation.
type paramArgs struct {
	kind  *string
	tx    *float64
	ty    *float64
	sx    *float64
	sy    *float64
	angle *float64
	hx    *float64
	hy    *float64
	axis  *string
}

func paramFlags(cmd *kingpin.CmdClause) *paramArgs {
	d := xform.DefaultParams()
	f := func(v float64) string {
		return fmt.Sprint(v)
	}
	return &paramArgs{
		kind:  cmd.Flag("kind", "Transformation: None, Translation, Scaling, Rotation, Shearing, Reflection").Short('k').Default(d.Kind.String()).String(),
		tx:    cmd.Flag("tx", "X shift").Default(f(d.Tx)).Float64(),
		ty:    cmd.Flag("ty", "Y shift").Default(f(d.Ty)).Float64(),
		sx:    cmd.Flag("sx", "X scale factor").Default(f(d.Sx)).Float64(),
		sy:    cmd.Flag("sy", "Y scale factor").Default(f(d.Sy)).Float64(),
		angle: cmd.Flag("angle", "Rotation angle in degrees, counter-clockwise").Default(f(d.Angle)).Float64(),
		hx:    cmd.Flag("hx", "X shear factor").Default(f(d.Hx)).Float64(),
		hy:    cmd.Flag("hy", "Y shear factor").Default(f(d.Hy)).Float64(),
		axis:  cmd.Flag("axis", "Reflection axis: x, y, y=x").Default(d.Axis.String()).String(),
	}
}

// params converts the flag values and validates them.
func (a *paramArgs) params() (xform.Params, error) {
	p := xform.Params{
		Tx:    *a.tx,
		Ty:    *a.ty,
		Sx:    *a.sx,
		Sy:    *a.sy,
		Angle: *a.angle,
		Hx:    *a.hx,
		Hy:    *a.hy,
	}

	var err error
	p.Kind, err = xform.ParseKind(*a.kind)
	if err != nil {
		return p, err
	}
	p.Axis, err = xform.ParseAxis(*a.axis)
	if err != nil {
		return p, err
	}

	return p, p.Validate()
}

func withParams(a *paramArgs, f func(p xform.Params) error) error {
	p, err := a.params()
	if err != nil {
		return err
	}
	return f(p)
}
