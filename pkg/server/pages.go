package server

import (
	"bytes"
	"html/template"
	"io"
	"net/url"

	"github.com/akeil/xform"
)

var pages = template.Must(template.New("pages").Parse(welcomePage + demoPage))

type demoData struct {
	Kind        string
	Params      xform.Params
	Kinds       []xform.Kind
	Axes        []xform.Axis
	MinScale    float64
	Description string
	Cells       [3][3]string
	Determinant string
	PlotURL     string
	PDFURL      string
	Error       string
}

// renderPage writes the HTML for the given page.
//
// For the demo page, q holds the current input values.
func renderPage(w io.Writer, page xform.Page, q url.Values) error {
	var buf bytes.Buffer
	var err error
	switch page {
	case xform.Welcome:
		err = pages.ExecuteTemplate(&buf, "welcome", nil)
	case xform.Demo:
		err = pages.ExecuteTemplate(&buf, "demo", newDemoData(q))
	default:
		return xform.NewNotFound("page %v", page)
	}
	if err != nil {
		return err
	}

	_, err = buf.WriteTo(w)
	return err
}

func newDemoData(q url.Values) demoData {
	p, err := ParseParams(q)
	d := demoData{
		Kind:     p.Kind.String(),
		Params:   p,
		Kinds:    xform.Kinds(),
		Axes:     xform.Axes(),
		MinScale: xform.MinScale,
	}
	if err != nil {
		d.Error = err.Error()
		return d
	}

	r, err := xform.Evaluate(p)
	if err != nil {
		d.Error = err.Error()
		return d
	}

	enc := Query(p).Encode()
	d.Description = p.Description()
	d.Cells = r.Matrix.Cells()
	d.Determinant = xform.FormatValue(r.Determinant)
	d.PlotURL = "/plot.png?" + enc
	d.PDFURL = "/plot.pdf?" + enc
	return d
}

const welcomePage = `{{define "welcome"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Matrix Transformation Demo</title></head>
<body>
<h1>Matrix Transformation Demo</h1>
<p>This interactive app allows you to explore 2D matrix transformations on a geometric shape (a square).</p>
<p>Use the sidebar to select and apply transformations like translation, scaling, rotation, shearing, and reflection.</p>
<p>Click Below To Start</p>
<form method="post" action="/start"><button type="submit">Start Demo</button></form>
</body>
</html>
{{end}}`

const demoPage = `{{define "demo"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>2D Matrix Transformations Demo</title>
<style>
body { display: flex; font-family: sans-serif; }
aside { width: 16em; padding: 1em; background: #f0f2f6; }
main { padding: 1em; }
label { display: block; margin-top: 0.8em; }
table.matrix td { border: 1px solid #ccc; padding: 0.3em 1em; text-align: right; }
.error { color: #b00; }
</style>
</head>
<body>
<aside>
<h2>Select Transformation</h2>
<form id="params" method="get" action="/">
<label>Choose a transformation:
<select name="kind" onchange="this.form.submit()">
{{range .Kinds}}<option{{if eq .String $.Kind}} selected{{end}}>{{.}}</option>
{{end}}</select></label>
{{if eq .Kind "Translation"}}
<label>X Shift (tₓ) <input type="number" name="tx" step="0.1" value="{{.Params.Tx}}"></label>
<label>Y Shift (tᵧ) <input type="number" name="ty" step="0.1" value="{{.Params.Ty}}"></label>
{{else if eq .Kind "Scaling"}}
<label>X Scale Factor (sₓ) <input type="number" name="sx" step="0.1" min="{{.MinScale}}" value="{{.Params.Sx}}"></label>
<label>Y Scale Factor (sᵧ) <input type="number" name="sy" step="0.1" min="{{.MinScale}}" value="{{.Params.Sy}}"></label>
{{else if eq .Kind "Rotation"}}
<label>Angle (degrees) θ <input type="number" name="angle" step="1" value="{{.Params.Angle}}"></label>
{{else if eq .Kind "Shearing"}}
<label>X Shear Factor (hₓ) <input type="number" name="hx" step="0.1" value="{{.Params.Hx}}"></label>
<label>Y Shear Factor (hᵧ) <input type="number" name="hy" step="0.1" value="{{.Params.Hy}}"></label>
{{else if eq .Kind "Reflection"}}
<label>Choose axis:
<select name="axis">
{{range .Axes}}<option{{if eq . $.Params.Axis}} selected{{end}}>{{.}}</option>
{{end}}</select></label>
{{end}}
<noscript><button type="submit">Apply</button></noscript>
</form>
<form method="post" action="/reset"><button type="submit">Back</button></form>
</aside>
<main>
<h1>2D Matrix Transformations Demo</h1>
{{if .Error}}<p class="error" id="error">{{.Error}}</p>{{else}}<p class="error" id="error"></p>{{end}}
{{if .PlotURL}}
<p id="description">{{.Description}}</p>
<img id="plot" src="{{.PlotURL}}" width="600" height="600" alt="plot">
<p><a id="pdf" href="{{.PDFURL}}">Download PDF</a></p>
<h3>Homogeneous Transformation Matrix (T)</h3>
<p>The 3 &times; 3 matrix used for this transformation, where points P are row vectors (P' = P T):</p>
<table class="matrix" id="matrix">
{{range .Cells}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<p>Determinant: <span id="determinant">{{.Determinant}}</span></p>
{{end}}
<script>
(function() {
  var form = document.getElementById("params");
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  function send() {
    var msg = {kind: form.kind.value};
    ["tx", "ty", "sx", "sy", "angle", "hx", "hy"].forEach(function(n) {
      if (form[n] && form[n].value !== "") { msg[n] = parseFloat(form[n].value); }
    });
    if (form.axis) { msg.axis = form.axis.value; }
    ws.send(JSON.stringify(msg));
  }
  form.addEventListener("input", function(e) {
    if (e.target.name !== "kind") { send(); }
  });
  ws.onmessage = function(e) {
    var r = JSON.parse(e.data);
    document.getElementById("error").textContent = r.error || "";
    if (r.error) { return; }
    var plot = document.getElementById("plot");
    if (plot) { plot.src = r.plot; }
    var pdf = document.getElementById("pdf");
    if (pdf) { pdf.href = r.pdf; }
    var desc = document.getElementById("description");
    if (desc) { desc.textContent = r.description; }
    var det = document.getElementById("determinant");
    if (det) { det.textContent = r.cells.determinant; }
    var rows = document.querySelectorAll("#matrix tr");
    r.cells.matrix.forEach(function(row, i) {
      if (!rows[i]) { return; }
      row.forEach(function(v, j) { rows[i].cells[j].textContent = v; });
    });
  };
})();
</script>
</main>
</body>
</html>
{{end}}`
