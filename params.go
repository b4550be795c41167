package xform

import (
	"encoding/json"
	"fmt"
)

// MinScale is the smallest scale factor accepted as input.
const MinScale = 0.1

// Params are the inputs for one transformation.
// Only the fields that belong to the selected Kind are used.
type Params struct {
	Kind Kind `json:"kind"`
	// Tx, Ty are the offsets for a Translation.
	Tx float64 `json:"tx"`
	Ty float64 `json:"ty"`
	// Sx, Sy are the factors for Scaling.
	Sx float64 `json:"sx"`
	Sy float64 `json:"sy"`
	// Angle for a Rotation in degrees, counter-clockwise.
	Angle float64 `json:"angle"`
	// Hx, Hy are the factors for Shearing.
	Hx float64 `json:"hx"`
	Hy float64 `json:"hy"`
	// Axis is the mirror line for a Reflection.
	Axis Axis `json:"axis"`
}

// DefaultParams returns the initial values for all inputs.
func DefaultParams() Params {
	return Params{
		Kind:  None,
		Tx:    1.0,
		Ty:    1.0,
		Sx:    1.0,
		Sy:    1.0,
		Angle: 45.0,
		Hx:    0.0,
		Hy:    0.0,
		Axis:  XAxis,
	}
}

// UnmarshalJSON fills fields missing from the input with their defaults.
func (p *Params) UnmarshalJSON(b []byte) error {
	type plain Params
	x := plain(DefaultParams())
	err := json.Unmarshal(b, &x)
	if err != nil {
		return err
	}
	*p = Params(x)
	return nil
}

// Validate checks the inputs that are relevant for the selected Kind.
func (p Params) Validate() error {
	switch p.Kind {
	case None:
		// ok
	case Translation:
		if !finite(p.Tx) || !finite(p.Ty) {
			return NewValidationError("invalid translation (%v, %v)", p.Tx, p.Ty)
		}
	case Scaling:
		if !finite(p.Sx) || !finite(p.Sy) {
			return NewValidationError("invalid scale factors (%v, %v)", p.Sx, p.Sy)
		}
		if p.Sx < MinScale {
			return NewValidationError("x scale factor %v is below the minimum of %v", p.Sx, MinScale)
		}
		if p.Sy < MinScale {
			return NewValidationError("y scale factor %v is below the minimum of %v", p.Sy, MinScale)
		}
	case Rotation:
		if !finite(p.Angle) {
			return NewValidationError("invalid angle %v", p.Angle)
		}
	case Shearing:
		if !finite(p.Hx) || !finite(p.Hy) {
			return NewValidationError("invalid shear factors (%v, %v)", p.Hx, p.Hy)
		}
	case Reflection:
		switch p.Axis {
		case XAxis, YAxis, LineYX:
			// ok
		default:
			return NewValidationError("invalid axis %v", int(p.Axis))
		}
	default:
		return NewValidationError("invalid transformation %v", int(p.Kind))
	}

	return nil
}

// Matrix builds the transformation matrix for the selected Kind.
// The Params should be validated first.
func (p Params) Matrix() Matrix {
	switch p.Kind {
	case Translation:
		return Translate(p.Tx, p.Ty)
	case Scaling:
		return Scale(p.Sx, p.Sy)
	case Rotation:
		return Rotate(p.Angle)
	case Shearing:
		return Shear(p.Hx, p.Hy)
	case Reflection:
		return Reflect(p.Axis)
	default:
		return Identity()
	}
}

// Description is a short human readable summary, e.g. "Rotation by 45°".
func (p Params) Description() string {
	switch p.Kind {
	case Translation:
		return fmt.Sprintf("Translation by (%v, %v)", FormatValue(p.Tx), FormatValue(p.Ty))
	case Scaling:
		return fmt.Sprintf("Scaling by (%v, %v)", FormatValue(p.Sx), FormatValue(p.Sy))
	case Rotation:
		return fmt.Sprintf("Rotation by %v°", FormatValue(p.Angle))
	case Shearing:
		return fmt.Sprintf("Shearing by (%v, %v)", FormatValue(p.Hx), FormatValue(p.Hy))
	case Reflection:
		return fmt.Sprintf("Reflection across %v", p.Axis)
	default:
		return "No transformation"
	}
}

// Result holds everything that is displayed for one set of Params.
type Result struct {
	Params      Params   `json:"params"`
	Matrix      Matrix   `json:"matrix"`
	Determinant float64  `json:"determinant"`
	Original    PointSet `json:"original"`
	Transformed PointSet `json:"transformed"`
}

// Evaluate validates the parameters, builds the matrix and applies it to
// the unit square.
func Evaluate(p Params) (Result, error) {
	err := p.Validate()
	if err != nil {
		return Result{}, err
	}

	m := p.Matrix()
	original := UnitSquare()
	return Result{
		Params:      p,
		Matrix:      m,
		Determinant: m.Determinant(),
		Original:    original,
		Transformed: Apply(original, m),
	}, nil
}
