package server

import (
	"net/url"
	"strconv"

	"github.com/akeil/xform"
)

// ParseParams reads transformation parameters from a query string.
// Missing values keep their defaults.
//
// The returned Params are usable for display even if an error is returned.
func ParseParams(q url.Values) (xform.Params, error) {
	p := xform.DefaultParams()

	if s := q.Get("kind"); s != "" {
		k, err := xform.ParseKind(s)
		if err != nil {
			return p, err
		}
		p.Kind = k
	}
	if s := q.Get("axis"); s != "" {
		a, err := xform.ParseAxis(s)
		if err != nil {
			return p, err
		}
		p.Axis = a
	}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"tx", &p.Tx},
		{"ty", &p.Ty},
		{"sx", &p.Sx},
		{"sy", &p.Sy},
		{"angle", &p.Angle},
		{"hx", &p.Hx},
		{"hy", &p.Hy},
	}
	for _, f := range fields {
		s := q.Get(f.name)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, xform.NewValidationError("invalid number for %v: %q", f.name, s)
		}
		*f.dst = v
	}

	return p, p.Validate()
}

// Query encodes the parameters that are relevant for the selected kind.
func Query(p xform.Params) url.Values {
	q := url.Values{}
	q.Set("kind", p.Kind.String())
	f := func(name string, v float64) {
		q.Set(name, strconv.FormatFloat(v, 'g', -1, 64))
	}

	switch p.Kind {
	case xform.Translation:
		f("tx", p.Tx)
		f("ty", p.Ty)
	case xform.Scaling:
		f("sx", p.Sx)
		f("sy", p.Sy)
	case xform.Rotation:
		f("angle", p.Angle)
	case xform.Shearing:
		f("hx", p.Hx)
		f("hy", p.Hy)
	case xform.Reflection:
		q.Set("axis", p.Axis.String())
	}
	return q
}
