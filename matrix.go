package xform

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Matrix is a 3x3 matrix in homogeneous form, stored row by row.
//
// Points are row vectors and the matrix is applied from the right:
//
//  (x', y', w) = (x, y, 1) · M
//
// With this convention the translation sits in the bottom row and
// the last column of an affine matrix is (0, 0, 1).
type Matrix [9]float64

// Identity leaves every point where it is.
//
//  1  0  0
//  0  1  0
//  0  0  1
//
func Identity() Matrix {
	return Matrix{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Translate returns a shift by (tx, ty):
//
//  1   0   0
//  0   1   0
//  tx  ty  1
//
func Translate(tx, ty float64) Matrix {
	m := Identity()
	m[6] = tx
	m[7] = ty
	return m
}

// Scale returns a scaling by (sx, sy):
//
//  sx  0   0
//  0   sy  0
//  0   0   1
//
func Scale(sx, sy float64) Matrix {
	m := Identity()
	m[0] = sx
	m[4] = sy
	return m
}

// Rotate returns a counter-clockwise rotation, angle in degrees:
//
//  cos(angle)   sin(angle)   0
//  -sin(angle)  cos(angle)   0
//  0            0            1
//
// A positive angle turns (1, 0) towards (0, 1).
func Rotate(deg float64) Matrix {
	sin, cos := sincos(deg)
	m := Identity()
	m[0] = cos
	m[1] = sin

	m[3] = -sin
	m[4] = cos

	return m
}

// sincos returns sine and cosine for an angle in degrees.
// Multiples of 90 degrees give exact results.
func sincos(deg float64) (float64, float64) {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	switch r {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(deg * math.Pi / 180)
}

// Shear returns a shear with factors hx, hy:
//
//  1   hx  0
//  hy  1   0
//  0   0   1
//
// y moves by hx for every unit of x, x moves by hy for every unit of y.
func Shear(hx, hy float64) Matrix {
	m := Identity()
	m[1] = hx
	m[3] = hy
	return m
}

// Reflect returns the mirror matrix for the given axis.
// An unknown axis yields the identity.
func Reflect(a Axis) Matrix {
	m := Identity()
	switch a {
	case XAxis:
		m[4] = -1
	case YAxis:
		m[0] = -1
	case LineYX:
		m[0], m[1] = 0, 1
		m[3], m[4] = 1, 0
	}
	return m
}

// Mul combines two transforms.
// The result applies m first and then b.
func (m Matrix) Mul(b Matrix) Matrix {
	var r Matrix

	r[0] = m[0]*b[0] + m[1]*b[3] + m[2]*b[6]
	r[1] = m[0]*b[1] + m[1]*b[4] + m[2]*b[7]
	r[2] = m[0]*b[2] + m[1]*b[5] + m[2]*b[8]

	r[3] = m[3]*b[0] + m[4]*b[3] + m[5]*b[6]
	r[4] = m[3]*b[1] + m[4]*b[4] + m[5]*b[7]
	r[5] = m[3]*b[2] + m[4]*b[5] + m[5]*b[8]

	r[6] = m[6]*b[0] + m[7]*b[3] + m[8]*b[6]
	r[7] = m[6]*b[1] + m[7]*b[4] + m[8]*b[7]
	r[8] = m[6]*b[2] + m[7]*b[5] + m[8]*b[8]

	return r
}

// Compose chains the given transforms, the first one is applied first.
// Without arguments, the identity is returned.
func Compose(ms ...Matrix) Matrix {
	r := Identity()
	for _, m := range ms {
		r = r.Mul(m)
	}
	return r
}

// Transform applies the matrix to the point x,y.
// The homogeneous coordinate of the result is dropped.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	tx := x*m[0] + y*m[3] + m[6]
	ty := x*m[1] + y*m[4] + m[7]
	return tx, ty
}

// Apply transforms every point of the given set.
// A new PointSet is returned, the input is not modified.
func Apply(points PointSet, m Matrix) PointSet {
	out := make(PointSet, len(points))
	for i, p := range points {
		out[i].X, out[i].Y = m.Transform(p.X, p.Y)
	}
	return out
}

// IsAffine tells if the last column is (0, 0, 1).
func (m Matrix) IsAffine() bool {
	return m[2] == 0 && m[5] == 0 && m[8] == 1
}

// Determinant is the factor by which the transform scales areas.
// A negative value means the orientation is flipped.
func (m Matrix) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Rows returns the matrix as three rows of three values.
func (m Matrix) Rows() [3][3]float64 {
	return [3][3]float64{
		{m[0], m[1], m[2]},
		{m[3], m[4], m[5]},
		{m[6], m[7], m[8]},
	}
}

// Cells returns the display values for each cell, row by row.
// Values are rounded to four decimal places.
func (m Matrix) Cells() [3][3]string {
	var c [3][3]string
	for i, row := range m.Rows() {
		for j, v := range row {
			c[i][j] = FormatValue(v)
		}
	}
	return c
}

// FormatValue formats a matrix entry for display.
// The value is rounded to four decimal places, trailing zeros are dropped.
// Very large values are printed in exponent form.
func FormatValue(v float64) string {
	if math.Abs(v) >= 1e15 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String formats the matrix as three lines with right-aligned columns.
func (m Matrix) String() string {
	cells := m.Cells()
	var widths [3]int
	for _, row := range cells {
		for j, s := range row {
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}

	var sb strings.Builder
	for i, row := range cells {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, s := range row {
			if j > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(strings.Repeat(" ", widths[j]-len(s)))
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func (m Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Rows())
}

func (m *Matrix) UnmarshalJSON(b []byte) error {
	var rows [3][3]float64
	err := json.Unmarshal(b, &rows)
	if err != nil {
		return err
	}
	for i, row := range rows {
		copy(m[i*3:], row[:])
	}
	return nil
}
