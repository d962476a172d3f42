package znap

import (
	"fmt"
	"math"
)

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{1, 0, 0, 1, tx, ty}
}

// TranslateX returns a horizontal translation.
func TranslateX(tx float64) Affine { return Translate(tx, 0) }

// TranslateY returns a vertical translation.
func TranslateY(ty float64) Affine { return Translate(0, ty) }

// Scale returns a scale by sx horizontally and sy vertically.
func Scale(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// ScaleU returns a uniform scale.
func ScaleU(f float64) Affine { return Scale(f, f) }

// ScaleX returns a horizontal scale.
func ScaleX(sx float64) Affine { return Scale(sx, 1) }

// ScaleY returns a vertical scale.
func ScaleY(sy float64) Affine { return Scale(1, sy) }

// FlipX mirrors across the vertical axis.
func FlipX() Affine { return Scale(-1, 1) }

// FlipY mirrors across the horizontal axis.
func FlipY() Affine { return Scale(1, -1) }

// Rotate returns a rotation by angle radians. With Y pointing down this
// turns clockwise on screen.
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return rotation(sin, cos)
}

// RotateDeg returns a rotation by deg degrees. Multiples of 90 produce
// exact coefficients.
func RotateDeg(deg float64) Affine {
	sin, cos := sincosDeg(deg)
	return rotation(sin, cos)
}

// RotateFromVector returns the rotation that turns the +x axis onto the
// direction (x, y).
func RotateFromVector(x, y float64) Affine {
	return Rotate(math.Atan2(y, x))
}

func rotation(sin, cos float64) Affine {
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// Shear returns a shear with horizontal factor sx and vertical factor sy.
func Shear(sx, sy float64) Affine {
	return Affine{1, sy, sx, 1, 0, 0}
}

// ShearX returns a horizontal shear.
func ShearX(sx float64) Affine { return Shear(sx, 0) }

// ShearY returns a vertical shear.
func ShearY(sy float64) Affine { return Shear(0, sy) }

// Skew returns a skew by the angles ax and ay, in radians.
func Skew(ax, ay float64) Affine {
	return Shear(math.Tan(ax), math.Tan(ay))
}

// SkewDeg returns a skew by the angles ax and ay, in degrees.
func SkewDeg(ax, ay float64) Affine {
	return Shear(tanDeg(ax), tanDeg(ay))
}

// SkewX returns a horizontal skew in radians.
func SkewX(ax float64) Affine { return Skew(ax, 0) }

// SkewY returns a vertical skew in radians.
func SkewY(ay float64) Affine { return Skew(0, ay) }

// Reflect mirrors across the line through the origin with direction (x, y).
// A zero direction yields Identity.
func Reflect(x, y float64) Affine {
	n := x*x + y*y
	if n == 0 {
		return Identity
	}
	return Affine{(x*x - y*y) / n, 2 * x * y / n, 2 * x * y / n, (y*y - x*x) / n, 0, 0}
}

// FromParams builds a transform from scale, translation and shear
// parameters in one call.
func FromParams(scaleX, scaleY, translateX, translateY, shearX, shearY float64) Affine {
	return Affine{scaleX, shearY, shearX, scaleY, translateX, translateY}
}

// FromTriangles returns the transform that maps each vertex of src onto the
// matching vertex of dst. It fails with ErrInvalidArgument if src is
// degenerate.
func FromTriangles(src, dst [3]Point) (Affine, error) {
	u1 := src[1].Sub(src[0])
	u2 := src[2].Sub(src[0])
	v1 := dst[1].Sub(dst[0])
	v2 := dst[2].Sub(dst[0])

	det := u1.X*u2.Y - u2.X*u1.Y
	if det > -1e-12 && det < 1e-12 {
		return Identity, fmt.Errorf("%w: source triangle is degenerate", ErrInvalidArgument)
	}

	a := (v1.X*u2.Y - v2.X*u1.Y) / det
	c := (v2.X*u1.X - v1.X*u2.X) / det
	b := (v1.Y*u2.Y - v2.Y*u1.Y) / det
	d := (v2.Y*u1.X - v1.Y*u2.X) / det
	tx := dst[0].X - (a*src[0].X + c*src[0].Y)
	ty := dst[0].Y - (b*src[0].X + d*src[0].Y)
	return Affine{a, b, c, d, tx, ty}, nil
}

// sincosDeg is math.Sincos for degrees, exact on quarter turns.
func sincosDeg(deg float64) (sin, cos float64) {
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

func tanDeg(deg float64) float64 {
	sin, cos := sincosDeg(deg)
	if sin == 0 {
		return 0
	}
	return sin / cos
}
