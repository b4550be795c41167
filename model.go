package xform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Point is a single position in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointSet is an ordered sequence of points.
// The shapes used here are closed polygons where the last point repeats the
// first one.
type PointSet []Point

var unitSquare = PointSet{
	{0, 0},
	{1, 0},
	{1, 1},
	{0, 1},
	{0, 0},
}

// UnitSquare returns a copy of the unit square template.
// Callers may modify the result without affecting other callers.
func UnitSquare() PointSet {
	return unitSquare.Copy()
}

// Copy creates an independent copy of the point set.
func (p PointSet) Copy() PointSet {
	c := make(PointSet, len(p))
	copy(c, p)
	return c
}

// Closed tells if the first and the last point are identical.
func (p PointSet) Closed() bool {
	if len(p) < 2 {
		return false
	}
	return p[0] == p[len(p)-1]
}

// Bounds returns the smallest and the largest coordinate found in the
// point set, taking both X and Y values into account.
//
// An empty point set has bounds 0, 0.
func (p PointSet) Bounds() (float64, float64) {
	if len(p) == 0 {
		return 0, 0
	}
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, pt := range p {
		min = math.Min(min, math.Min(pt.X, pt.Y))
		max = math.Max(max, math.Max(pt.X, pt.Y))
	}
	return min, max
}

// Validate checks that the point set describes a closed polygon
// with finite coordinates.
func (p PointSet) Validate() error {
	if len(p) < 2 {
		return NewValidationError("a polygon needs at least two points, got %d", len(p))
	}
	for i, pt := range p {
		if !finite(pt.X) || !finite(pt.Y) {
			return NewValidationError("point %d has non-finite coordinates (%v, %v)", i, pt.X, pt.Y)
		}
	}
	if !p.Closed() {
		return NewValidationError("polygon is not closed, %v != %v", p[0], p[len(p)-1])
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Kind is the type of transformation the user selected.
type Kind int

const (
	None Kind = iota
	Translation
	Scaling
	Rotation
	Shearing
	Reflection
)

// Kinds lists all transformation kinds in display order.
func Kinds() []Kind {
	return []Kind{None, Translation, Scaling, Rotation, Shearing, Reflection}
}

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Translation:
		return "Translation"
	case Scaling:
		return "Scaling"
	case Rotation:
		return "Rotation"
	case Shearing:
		return "Shearing"
	case Reflection:
		return "Reflection"
	default:
		return "UNKNOWN"
	}
}

// ParseKind reads a Kind from its display name.
// Matching is case-insensitive and the empty string means None.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return None, nil
	}
	for _, k := range Kinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return None, NewValidationError("invalid transformation %q", s)
}

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if err != nil {
		return err
	}

	x, err := ParseKind(s)
	if err != nil {
		return err
	}

	*k = x
	return nil
}

func (k Kind) MarshalJSON() ([]byte, error) {
	s := k.String()
	if s == "UNKNOWN" {
		return nil, fmt.Errorf("invalid transformation %d", int(k))
	}
	return quote(s), nil
}

// Axis is the mirror line for a reflection.
type Axis int

const (
	XAxis Axis = iota
	YAxis
	LineYX
)

// Axes lists all reflection axes in display order.
func Axes() []Axis {
	return []Axis{XAxis, YAxis, LineYX}
}

func (a Axis) String() string {
	switch a {
	case XAxis:
		return "X-axis"
	case YAxis:
		return "Y-axis"
	case LineYX:
		return "Line y=x"
	default:
		return "UNKNOWN"
	}
}

// ParseAxis reads an Axis from its display name.
// The short forms "x", "y" and "y=x" are accepted as well.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x-axis", "x":
		return XAxis, nil
	case "y-axis", "y":
		return YAxis, nil
	case "line y=x", "y=x":
		return LineYX, nil
	}
	return XAxis, NewValidationError("invalid axis %q", s)
}

func (a *Axis) UnmarshalJSON(b []byte) error {
	var s string
	err := json.Unmarshal(b, &s)
	if err != nil {
		return err
	}

	x, err := ParseAxis(s)
	if err != nil {
		return err
	}

	*a = x
	return nil
}

func (a Axis) MarshalJSON() ([]byte, error) {
	s := a.String()
	if s == "UNKNOWN" {
		return nil, fmt.Errorf("invalid axis %d", int(a))
	}
	return quote(s), nil
}

// Page is the screen a user of the demo currently sees.
type Page int

const (
	Welcome Page = iota
	Demo
)

func (p Page) String() string {
	switch p {
	case Welcome:
		return "welcome"
	case Demo:
		return "demo"
	default:
		return "UNKNOWN"
	}
}

// ParsePage reads a Page from its name.
func ParsePage(s string) (Page, error) {
	switch strings.ToLower(s) {
	case "welcome":
		return Welcome, nil
	case "demo":
		return Demo, nil
	}
	return Welcome, NewValidationError("invalid page %q", s)
}

func quote(s string) []byte {
	buf := bytes.NewBufferString(`"`)
	buf.WriteString(s)
	buf.WriteString(`"`)
	return buf.Bytes()
}
