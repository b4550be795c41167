package xform

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	err := p.Validate()
	if err != nil {
		t.Error(err)
	}
	if p.Matrix() != Identity() {
		t.Errorf("default params should give the identity")
	}

	// every kind is valid with the default values
	for _, k := range Kinds() {
		p.Kind = k
		err = p.Validate()
		if err != nil {
			t.Errorf("default params invalid for %v: %v", k, err)
		}
	}
}

func TestValidateParams(t *testing.T) {
	p := DefaultParams()
	p.Kind = Scaling

	p.Sx = 0.05
	if !IsValidationError(p.Validate()) {
		t.Errorf("x scale below minimum not detected")
	}
	p.Sx = MinScale
	if p.Validate() != nil {
		t.Errorf("minimum scale should be accepted")
	}

	p.Sy = -1
	if p.Validate() == nil {
		t.Errorf("negative y scale not detected")
	}
	p.Sy = 1

	// scale factors do not matter for other kinds
	p.Kind = Translation
	p.Sx = 0
	if p.Validate() != nil {
		t.Errorf("unused scale factor should be ignored")
	}

	p.Tx = math.Inf(1)
	if p.Validate() == nil {
		t.Errorf("infinite translation not detected")
	}
	p.Tx = 0

	p.Kind = Rotation
	p.Angle = math.NaN()
	if p.Validate() == nil {
		t.Errorf("NaN angle not detected")
	}

	p.Kind = Reflection
	p.Axis = Axis(100)
	if p.Validate() == nil {
		t.Errorf("invalid axis not detected")
	}

	p.Kind = Kind(100)
	if p.Validate() == nil {
		t.Errorf("invalid kind not detected")
	}
}

func TestParamsMatrix(t *testing.T) {
	p := DefaultParams()

	p.Kind = Translation
	p.Tx, p.Ty = 2, 3
	assert.Equal(t, Translate(2, 3), p.Matrix())

	p.Kind = Scaling
	p.Sx, p.Sy = 0.5, 4
	assert.Equal(t, Scale(0.5, 4), p.Matrix())

	p.Kind = Rotation
	p.Angle = 45
	assert.Equal(t, Rotate(45), p.Matrix())

	p.Kind = Shearing
	p.Hx, p.Hy = 0.2, 0.3
	assert.Equal(t, Shear(0.2, 0.3), p.Matrix())
	x, y := p.Matrix().Transform(1, 0)
	assert.InDelta(t, 1, x, tolerance)
	assert.InDelta(t, 0.2, y, tolerance)

	p.Kind = Reflection
	p.Axis = LineYX
	assert.Equal(t, Reflect(LineYX), p.Matrix())
}

func TestParamsJSONDefaults(t *testing.T) {
	var p Params
	err := json.Unmarshal([]byte(`{"kind": "Scaling", "sx": 2}`), &p)
	require.NoError(t, err)

	want := DefaultParams()
	want.Kind = Scaling
	want.Sx = 2
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("unexpected params (-want +got):\n%s", diff)
	}

	err = json.Unmarshal([]byte(`{"kind": "Warp"}`), &p)
	if err == nil {
		t.Errorf("invalid kind not detected")
	}
}

func TestEvaluate(t *testing.T) {
	p := DefaultParams()
	p.Kind = Rotation
	p.Angle = 90

	r, err := Evaluate(p)
	require.NoError(t, err)

	want := PointSet{{0, 0}, {0, 1}, {-1, 1}, {-1, 0}, {0, 0}}
	if diff := cmp.Diff(want, r.Transformed, approx); diff != "" {
		t.Errorf("unexpected transformed square (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(UnitSquare(), r.Original); diff != "" {
		t.Errorf("unexpected original (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 1, r.Determinant, tolerance)

	p.Kind = Scaling
	p.Sx = 0
	_, err = Evaluate(p)
	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDescription(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, "No transformation", p.Description())
	p.Kind = Rotation
	assert.Equal(t, "Rotation by 45°", p.Description())
	p.Kind = Reflection
	p.Axis = YAxis
	assert.Equal(t, "Reflection across Y-axis", p.Description())
}
