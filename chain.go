package znap

import (
	"fmt"
	"math"
	"slices"

	"github.com/tanema/gween/ease"
)

// Chain is a persistent, fluent way to author stops. Every method returns a
// new Chain and leaves the receiver untouched, so a chain can branch:
//
//	base := znap.NewChain().ScaleU(1, 2)
//	spin := base.RotateDeg(2, 180).Hold(2)
//	flip := base.FlipX(1).Hold(1)
//
// Each step takes dt, the seconds it takes to reach the new stop from the
// previous one, followed by the transform arguments. The first stop is the
// chain's root (Identity for NewChain) at time 0. The last stop holds for
// whatever Hold sets, 0 by default.
//
// Errors are sticky: after a bad step the chain ignores further steps and
// Stops and Timeline report the first error.
type Chain struct {
	stops []Stop
	err   error
}

// NewChain starts a chain rooted at Identity.
func NewChain() Chain {
	return NewChainFrom(Identity)
}

// NewChainFrom starts a chain rooted at m.
func NewChainFrom(m Affine) Chain {
	return Chain{stops: []Stop{{Transform: m}}}
}

// Then reaches the running product multiplied by m after dt seconds.
func (c Chain) Then(dt float64, m Affine) Chain {
	return c.push(dt, Stop{Transform: m})
}

// Set reaches exactly m after dt seconds, discarding the running product.
func (c Chain) Set(dt float64, m Affine) Chain {
	return c.push(dt, Stop{Transform: m, Mode: ModeOverwrite})
}

// Hold sets how long the last stop lasts before the timeline ends or loops.
func (c Chain) Hold(dt float64) Chain {
	if c.err != nil {
		return c
	}
	if err := checkStep(dt); err != nil {
		c.err = err
		return c
	}
	if len(c.stops) == 0 {
		c = NewChain()
	} else {
		c = c.clone()
	}
	c.stops[len(c.stops)-1].Duration = dt
	return c
}

// Eased applies fn to the transition into the most recent stop.
func (c Chain) Eased(fn ease.TweenFunc) Chain {
	if c.err != nil || len(c.stops) < 2 {
		return c
	}
	c = c.clone()
	c.stops[len(c.stops)-2].Ease = fn
	return c
}

// Label names the most recent stop.
func (c Chain) Label(label string) Chain {
	if c.err != nil || len(c.stops) == 0 {
		return c
	}
	c = c.clone()
	c.stops[len(c.stops)-1].Label = label
	return c
}

// Shorthands for Then with the matching constructor.
func (c Chain) Translate(dt, tx, ty float64) Chain { return c.Then(dt, Translate(tx, ty)) }
func (c Chain) Scale(dt, sx, sy float64) Chain     { return c.Then(dt, Scale(sx, sy)) }
func (c Chain) ScaleU(dt, f float64) Chain         { return c.Then(dt, ScaleU(f)) }
func (c Chain) Rotate(dt, angle float64) Chain     { return c.Then(dt, Rotate(angle)) }
func (c Chain) RotateDeg(dt, deg float64) Chain    { return c.Then(dt, RotateDeg(deg)) }
func (c Chain) Shear(dt, sx, sy float64) Chain     { return c.Then(dt, Shear(sx, sy)) }
func (c Chain) SkewDeg(dt, ax, ay float64) Chain   { return c.Then(dt, SkewDeg(ax, ay)) }
func (c Chain) FlipX(dt float64) Chain             { return c.Then(dt, FlipX()) }
func (c Chain) FlipY(dt float64) Chain             { return c.Then(dt, FlipY()) }

// FromParams steps by the transform FromParams builds.
func (c Chain) FromParams(dt, scaleX, scaleY, translateX, translateY, shearX, shearY float64) Chain {
	return c.Then(dt, FromParams(scaleX, scaleY, translateX, translateY, shearX, shearY))
}

// FromTriangles steps by the transform that maps src onto dst.
func (c Chain) FromTriangles(dt float64, src, dst [3]Point) Chain {
	m, err := FromTriangles(src, dst)
	if err != nil {
		return c.fail(err)
	}
	return c.Then(dt, m)
}

// FromSVG steps by the transform an SVG transform list describes.
func (c Chain) FromSVG(dt float64, list string) Chain {
	m, err := ParseTransformList(list)
	if err != nil {
		return c.fail(err)
	}
	return c.Then(dt, m)
}

// Len returns the number of stops, root included.
func (c Chain) Len() int { return len(c.stops) }

// Err returns the first error the chain met, if any.
func (c Chain) Err() error { return c.err }

// Stops returns a copy of the authored stops.
func (c Chain) Stops() ([]Stop, error) {
	if c.err != nil {
		return nil, c.err
	}
	if len(c.stops) == 0 {
		return NewChain().Stops()
	}
	return slices.Clone(c.stops), nil
}

// Timeline builds the chain's stops with opts.
func (c Chain) Timeline(opts Options) (*Timeline, error) {
	stops, err := c.Stops()
	if err != nil {
		return nil, err
	}
	return Build(stops, opts)
}

// Product returns the transform in force at the last stop, ignoring time.
func (c Chain) Product() Affine {
	if len(c.stops) == 0 {
		return Identity
	}
	m := c.stops[0].Transform
	for _, s := range c.stops[1:] {
		if s.Mode == ModeOverwrite {
			m = s.Transform
		} else {
			m = m.Multiply(s.Transform)
		}
	}
	return m
}

// ApplyToPoint maps p through Product.
func (c Chain) ApplyToPoint(p Point) Point {
	return c.Product().ApplyPoint(p)
}

func (c Chain) push(dt float64, s Stop) Chain {
	if c.err != nil {
		return c
	}
	if err := checkStep(dt); err != nil {
		return c.fail(err)
	}
	if len(c.stops) == 0 {
		c = NewChain()
	}
	stops := make([]Stop, len(c.stops), len(c.stops)+1)
	copy(stops, c.stops)
	stops[len(stops)-1].Duration = dt
	return Chain{stops: append(stops, s)}
}

func (c Chain) clone() Chain {
	return Chain{stops: slices.Clone(c.stops), err: c.err}
}

func (c Chain) fail(err error) Chain {
	if c.err == nil {
		c.err = err
	}
	return c
}

func checkStep(dt float64) error {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return fmt.Errorf("%w: step duration %v", ErrInvalidArgument, dt)
	}
	return nil
}
