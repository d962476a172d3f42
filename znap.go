package znap

import (
	"fmt"
	"math"
)

// Point is a 2D position or offset. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Point struct {
	X, Y float64
}

// Origin is the zero point.
var Origin = Point{}

// PointFromPolar returns the point at distance r from the origin in the
// compass direction deg, measured in degrees clockwise from the +Y axis.
func PointFromPolar(r, deg float64) Point {
	sin, cos := sincosDeg(deg)
	return Point{X: r * sin, Y: r * cos}
}

// Add returns p offset by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both coordinates multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Radius returns the distance from the origin.
func (p Point) Radius() float64 {
	return math.Hypot(p.X, p.Y)
}

// AngleRad returns the compass direction of p in radians, in [0, 2π),
// measured clockwise from the +Y axis. The origin has angle 0.
func (p Point) AngleRad() float64 {
	if p.X == 0 && p.Y == 0 {
		return 0
	}
	a := math.Atan2(p.X, p.Y)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Angle is AngleRad in degrees.
func (p Point) Angle() float64 {
	return p.AngleRad() * 180 / math.Pi
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Mode selects how a stop's transform combines with the running product.
type Mode uint8

const (
	ModeMultiply  Mode = iota // compose with the previous effective transform
	ModeOverwrite             // replace the running product outright
)

func (m Mode) String() string {
	switch m {
	case ModeMultiply:
		return "multiply"
	case ModeOverwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode converts "multiply" or "overwrite" to a Mode. The empty string
// is ModeMultiply.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "multiply":
		return ModeMultiply, nil
	case "overwrite":
		return ModeOverwrite, nil
	}
	return 0, fmt.Errorf("%w: unknown composition mode %q", ErrInvalidArgument, s)
}

func (m Mode) valid() bool {
	return m == ModeMultiply || m == ModeOverwrite
}
