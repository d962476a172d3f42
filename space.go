package znap

import (
	"fmt"
	"math"
)

// Space is a coordinate system that varies with time. *Timeline is the
// main implementation; Constant and SpaceFunc cover fixed and ad-hoc ones.
type Space interface {
	TransformAt(t float64) (Affine, error)
}

var (
	_ Space = (*Timeline)(nil)
	_ Space = Constant{}
	_ Space = SpaceFunc(nil)
)

// Constant is a Space whose transform never changes.
type Constant struct {
	M Affine
}

// TransformAt returns c.M for every finite t.
func (c Constant) TransformAt(t float64) (Affine, error) {
	if err := checkTime(t); err != nil {
		return Identity, err
	}
	return c.M, nil
}

// SpaceFunc adapts a plain function of time to a Space.
type SpaceFunc func(t float64) Affine

// TransformAt calls f(t).
func (f SpaceFunc) TransformAt(t float64) (Affine, error) {
	if err := checkTime(t); err != nil {
		return Identity, err
	}
	m := f(t)
	if !m.Finite() {
		return Identity, fmt.Errorf("%w: space function returned %v at t = %g", ErrInvalidArgument, m, t)
	}
	return m, nil
}

// MapPoint maps p through the transform s has at time t.
func MapPoint(s Space, t float64, p Point) (Point, error) {
	m, err := s.TransformAt(t)
	if err != nil {
		return p, err
	}
	return m.ApplyPoint(p), nil
}

func checkTime(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: t = %v", ErrDomain, t)
	}
	return nil
}
