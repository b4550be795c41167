package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akeil/xform"
)

func doShow(p xform.Params) error {
	r, err := xform.Evaluate(p)
	if err != nil {
		return err
	}
	return printResult(os.Stdout, r)
}

func printResult(w io.Writer, r xform.Result) error {
	var sb strings.Builder

	sb.WriteString(r.Params.Description())
	sb.WriteString("\n\n")
	sb.WriteString("Homogeneous Transformation Matrix (P' = P T)\n")
	for _, line := range strings.Split(r.Matrix.String(), "\n") {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Determinant: %v\n\n", xform.FormatValue(r.Determinant))

	sb.WriteString("Original        -> Transformed\n")
	for i := range r.Original {
		fmt.Fprintf(&sb, "%-16v-> %v\n", point(r.Original[i]), point(r.Transformed[i]))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func point(p xform.Point) string {
	return fmt.Sprintf("(%v, %v)", xform.FormatValue(p.X), xform.FormatValue(p.Y))
}
