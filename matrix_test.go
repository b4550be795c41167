package xform

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

var approx = cmpopts.EquateApprox(0, tolerance)

func TestIdentity(t *testing.T) {
	shapes := []PointSet{
		UnitSquare(),
		{{-3.5, 2}, {7, 0.25}, {1e6, -1e-6}, {-3.5, 2}},
		{},
	}
	for _, p := range shapes {
		got := Apply(p, Identity())
		if diff := cmp.Diff(p, got); diff != "" {
			t.Errorf("identity changed points (-want +got):\n%s", diff)
		}
	}
}

func TestTranslation(t *testing.T) {
	x, y := Translate(2.5, -1).Transform(0, 0)
	if x != 2.5 || y != -1 {
		t.Errorf("unexpected translation of origin: (%v, %v)", x, y)
	}

	got := Apply(UnitSquare(), Translate(1, 1))
	want := PointSet{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected translated square (-want +got):\n%s", diff)
	}
}

func TestScale(t *testing.T) {
	x, y := Scale(3, 0.5).Transform(1, 1)
	if x != 3 || y != 0.5 {
		t.Errorf("unexpected scaled point: (%v, %v)", x, y)
	}
}

func TestRotation(t *testing.T) {
	x, y := Rotate(90).Transform(1, 0)
	if x != 0 || y != 1 {
		t.Errorf("unexpected value for rotation by 90°: (%v, %v)", x, y)
	}

	x, y = Rotate(-90).Transform(1, 0)
	if x != 0 || y != -1 {
		t.Errorf("unexpected value for rotation by -90°: (%v, %v)", x, y)
	}

	x, y = Rotate(180).Transform(1, 2)
	if x != -1 || y != -2 {
		t.Errorf("unexpected value for rotation by 180°: (%v, %v)", x, y)
	}

	// not a multiple of 90
	x, y = Rotate(45).Transform(1, 0)
	assert.InDelta(t, math.Sqrt2/2, x, tolerance)
	assert.InDelta(t, math.Sqrt2/2, y, tolerance)

	x, y = Rotate(30).Transform(0, 2)
	assert.InDelta(t, -1, x, tolerance)
	assert.InDelta(t, math.Sqrt(3), y, tolerance)

	// a full turn brings us back
	x, y = Rotate(720).Transform(3, 4)
	if x != 3 || y != 4 {
		t.Errorf("unexpected value for rotation by 720°: (%v, %v)", x, y)
	}
}

func TestShear(t *testing.T) {
	x, y := Shear(0.5, 0).Transform(1, 0)
	if x != 1 || y != 0.5 {
		t.Errorf("unexpected value for x shear: (%v, %v)", x, y)
	}

	x, y = Shear(2, 0).Transform(1, 1)
	if x != 1 || y != 3 {
		t.Errorf("unexpected value for x shear: (%v, %v)", x, y)
	}

	x, y = Shear(0, 0.5).Transform(2, 1)
	if x != 2.5 || y != 1 {
		t.Errorf("unexpected value for y shear: (%v, %v)", x, y)
	}

	// hx is in the first row, hy in the second
	m := Shear(0.2, 0.3)
	if m[1] != 0.2 || m[3] != 0.3 {
		t.Errorf("unexpected shear layout:\n%v", m)
	}

	got := Apply(UnitSquare(), Shear(0, 0))
	if diff := cmp.Diff(UnitSquare(), got); diff != "" {
		t.Errorf("zero shear should not change anything (-want +got):\n%s", diff)
	}
}

func TestReflection(t *testing.T) {
	cases := []struct {
		axis Axis
		want func(x, y float64) (float64, float64)
	}{
		{XAxis, func(x, y float64) (float64, float64) { return x, -y }},
		{YAxis, func(x, y float64) (float64, float64) { return -x, y }},
		{LineYX, func(x, y float64) (float64, float64) { return y, x }},
	}

	points := []Point{{0, 0}, {1, 0}, {2, 3}, {-4, 0.5}}
	for _, c := range cases {
		m := Reflect(c.axis)
		for _, p := range points {
			x, y := m.Transform(p.X, p.Y)
			wx, wy := c.want(p.X, p.Y)
			if x != wx || y != wy {
				t.Errorf("reflection across %v: (%v, %v) -> (%v, %v), expected (%v, %v)",
					c.axis, p.X, p.Y, x, y, wx, wy)
			}
		}

		// reflecting twice is the identity
		if m.Mul(m) != Identity() {
			t.Errorf("double reflection across %v is not the identity", c.axis)
		}
	}

	if Reflect(Axis(100)) != Identity() {
		t.Errorf("unknown axis should give the identity")
	}
}

func TestComposeScaling(t *testing.T) {
	a, b, c, d := 1.5, 0.3, 2.2, 7.0
	square := UnitSquare()

	sequential := Apply(Apply(square, Scale(a, b)), Scale(c, d))
	single := Apply(square, Scale(a*c, b*d))
	if diff := cmp.Diff(single, sequential, approx); diff != "" {
		t.Errorf("sequential scaling differs (-want +got):\n%s", diff)
	}

	composed := Apply(square, Compose(Scale(a, b), Scale(c, d)))
	if diff := cmp.Diff(single, composed, approx); diff != "" {
		t.Errorf("composed scaling differs (-want +got):\n%s", diff)
	}
}

func TestComposeOrder(t *testing.T) {
	// translate, then rotate: (0,0) -> (1,0) -> (0,1)
	x, y := Compose(Translate(1, 0), Rotate(90)).Transform(0, 0)
	if x != 0 || y != 1 {
		t.Errorf("unexpected result for translate-then-rotate: (%v, %v)", x, y)
	}

	// rotate, then translate: (0,0) -> (0,0) -> (1,0)
	x, y = Compose(Rotate(90), Translate(1, 0)).Transform(0, 0)
	if x != 1 || y != 0 {
		t.Errorf("unexpected result for rotate-then-translate: (%v, %v)", x, y)
	}

	if Compose() != Identity() {
		t.Errorf("empty composition should be the identity")
	}
}

func TestIsAffine(t *testing.T) {
	ms := []Matrix{
		Identity(),
		Translate(3, 4),
		Scale(2, 0.1),
		Rotate(33),
		Shear(1, 2),
		Reflect(XAxis),
		Reflect(YAxis),
		Reflect(LineYX),
		Compose(Translate(3, 4), Rotate(10), Shear(0.5, 0)),
	}
	for _, m := range ms {
		if !m.IsAffine() {
			t.Errorf("expected affine matrix:\n%v", m)
		}
	}

	m := Identity()
	m[2] = 1
	if m.IsAffine() {
		t.Errorf("projective matrix recognized as affine")
	}
}

func TestDeterminant(t *testing.T) {
	assert.InDelta(t, 1, Identity().Determinant(), tolerance)
	assert.InDelta(t, 1, Translate(5, -2).Determinant(), tolerance)
	assert.InDelta(t, 6, Scale(2, 3).Determinant(), tolerance)
	assert.InDelta(t, 1, Rotate(17).Determinant(), tolerance)
	assert.InDelta(t, -1, Reflect(LineYX).Determinant(), tolerance)
	assert.InDelta(t, 1-2, Shear(1, 2).Determinant(), tolerance)
}

func TestApplyKeepsInput(t *testing.T) {
	p := UnitSquare()
	out := Apply(p, Translate(5, 5))
	if diff := cmp.Diff(UnitSquare(), p); diff != "" {
		t.Errorf("input was modified (-want +got):\n%s", diff)
	}
	if len(out) != len(p) {
		t.Errorf("unexpected number of points: %v != %v", len(out), len(p))
	}
	if !out.Closed() {
		t.Errorf("transformed square should still be closed")
	}
}

func TestMatrixString(t *testing.T) {
	got := Translate(1.5, -2).String()
	want := "  1   0  0\n" +
		"  0   1  0\n" +
		"1.5  -2  1"
	if got != want {
		t.Errorf("unexpected display:\n%s\nexpected:\n%s", got, want)
	}

	// rounding and no negative zero
	cells := Rotate(90).Cells()
	if cells[0][0] != "0" || cells[0][1] != "1" || cells[1][0] != "-1" {
		t.Errorf("unexpected cells: %v", cells)
	}
	cells = Rotate(45).Cells()
	if cells[0][0] != "0.7071" {
		t.Errorf("unexpected rounding: %v", cells[0][0])
	}
}

func TestFormatLargeValues(t *testing.T) {
	assert.Equal(t, "1.7e+308", FormatValue(1.7e308))
	assert.Equal(t, "-1e+20", FormatValue(-1e20))
	assert.Equal(t, "123456.789", FormatValue(123456.789))
}
