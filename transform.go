package znap

import (
	"fmt"
	"math"
)

// Affine is a 2D affine matrix stored as [a, b, c, d, tx, ty].
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Affine values are immutable; every operation returns a new value.
type Affine [6]float64

// Identity is the neutral transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Compose returns a.Multiply(b): points are mapped through b first, then a.
// This is the canvas convention, where a is the outer (parent) transform and
// b is expressed in a's coordinate space.
func Compose(a, b Affine) Affine {
	return a.Multiply(b)
}

// Multiply returns the matrix product m * n.
func (m Affine) Multiply(n Affine) Affine {
	return Affine{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Then returns the transform that applies m and afterwards n, i.e. n * m.
func (m Affine) Then(n Affine) Affine {
	return n.Multiply(m)
}

// Apply maps the point (x, y) through m.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ApplyPoint maps p through m.
func (m Affine) ApplyPoint(p Point) Point {
	x, y := m.Apply(p.X, p.Y)
	return Point{X: x, Y: y}
}

// ApplyVector maps a direction through the linear part of m, ignoring the
// translation.
func (m Affine) ApplyVector(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y, m[1]*x + m[3]*y
}

// Determinant returns the determinant of the linear part.
func (m Affine) Determinant() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Invert returns the inverse of m. If m is singular (determinant ≈ 0) it
// returns Identity and false.
func (m Affine) Invert() (Affine, bool) {
	det := m.Determinant()
	if det > -1e-12 && det < 1e-12 {
		return Identity, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// Interpolate blends the six coefficients of m and n linearly. It is not a
// decomposition into rotation and scale: a half turn blended halfway passes
// through a degenerate matrix.
//
// frac == 0 returns m and frac == 1 returns n, bit for bit. Values outside
// [0, 1] extrapolate.
func (m Affine) Interpolate(n Affine, frac float64) Affine {
	switch frac {
	case 0:
		return m
	case 1:
		return n
	}
	var out Affine
	for i := range m {
		out[i] = m[i] + (n[i]-m[i])*frac
	}
	return out
}

// Equal reports whether m and n have identical coefficients.
func (m Affine) Equal(n Affine) bool {
	return m == n
}

// Near reports whether every coefficient of m is within eps of n.
func (m Affine) Near(n Affine, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-n[i]) > eps {
			return false
		}
	}
	return true
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m == Identity
}

// Finite reports whether all coefficients are finite numbers.
func (m Affine) Finite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Translation returns the translation components.
func (m Affine) Translation() (tx, ty float64) {
	return m[4], m[5]
}

func (m Affine) String() string {
	return fmt.Sprintf("Affine(%g, %g, %g, %g, %g, %g)", m[0], m[1], m[2], m[3], m[4], m[5])
}

// Bounds returns the axis-aligned bounding box of r after mapping it
// through m.
func Bounds(m Affine, r Rect) Rect {
	corners := [4]Point{
		m.ApplyPoint(Point{r.X, r.Y}),
		m.ApplyPoint(Point{r.X + r.Width, r.Y}),
		m.ApplyPoint(Point{r.X, r.Y + r.Height}),
		m.ApplyPoint(Point{r.X + r.Width, r.Y + r.Height}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
