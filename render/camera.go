package render

import (
	"math"

	"github.com/phanxgames/znap"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps world space to screen space: position, zoom, rotation and
// viewport. Timeline transforms place things in the world; the camera's
// View goes in front of them.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport znap.Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds znap.Rect

	follow       *znap.Player
	followAnchor znap.Point
	followOffset znap.Point
	followLerp   float64

	scrollTween *scrollAnim
}

// NewCamera creates a Camera with zoom 1 and the given viewport.
func NewCamera(viewport znap.Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
	}
}

// Follow makes the camera track anchor as mapped by p, plus offset.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(p *znap.Player, anchor, offset znap.Point, lerp float64) {
	c.follow = p
	c.followAnchor = anchor
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current player.
func (c *Camera) Unfollow() {
	c.follow = nil
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds znap.Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Update advances follow, scroll and bounds clamping. Call it after the
// followed player's own Update.
func (c *Camera) Update(dt float32) {
	if c.follow != nil {
		target := c.follow.MapPoint(c.followAnchor).Add(c.followOffset)
		c.X += (target.X - c.X) * c.followLerp
		c.Y += (target.Y - c.Y) * c.followLerp
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// Bounds smaller than the visible area center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// View returns the world-to-screen transform:
//
//	Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
//
// where cx, cy is the viewport center.
func (c *Camera) View() znap.Affine {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	return znap.Translate(cx, cy).
		Multiply(znap.ScaleU(c.Zoom)).
		Multiply(znap.Rotate(-c.Rotation)).
		Multiply(znap.Translate(-c.X, -c.Y))
}

// WorldToScreen converts a world point to screen coordinates.
func (c *Camera) WorldToScreen(p znap.Point) znap.Point {
	return c.View().ApplyPoint(p)
}

// ScreenToWorld converts a screen point to world coordinates. A zero zoom
// has no inverse and returns p unchanged.
func (c *Camera) ScreenToWorld(p znap.Point) znap.Point {
	inv, ok := c.View().Invert()
	if !ok {
		return p
	}
	return inv.ApplyPoint(p)
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's
// visible area in world space.
func (c *Camera) VisibleBounds() znap.Rect {
	inv, ok := c.View().Invert()
	if !ok {
		return znap.Rect{}
	}
	return znap.Bounds(inv, c.Viewport)
}
