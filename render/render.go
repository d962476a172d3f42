// Package render draws znap transforms with Ebitengine.
//
// It only converts and submits: timing stays with the caller, who queries a
// Timeline or Player and hands the resulting Affine to DrawImage or Trail.
package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/znap"
)

// GeoM converts m to an ebiten.GeoM.
func GeoM(m znap.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// FromGeoM converts an ebiten.GeoM back to an Affine.
func FromGeoM(g ebiten.GeoM) znap.Affine {
	return znap.Affine{
		g.Element(0, 0),
		g.Element(1, 0),
		g.Element(0, 1),
		g.Element(1, 1),
		g.Element(0, 2),
		g.Element(1, 2),
	}
}

// DrawImage draws src onto dst through m. The GeoM in op, if any, is
// applied to src first, so it can hold a pivot or a local scale.
func DrawImage(dst, src *ebiten.Image, m znap.Affine, op *ebiten.DrawImageOptions) {
	var o ebiten.DrawImageOptions
	if op != nil {
		o = *op
	}
	o.GeoM.Concat(GeoM(m))
	dst.DrawImage(src, &o)
}

// Visible reports whether a w×h image drawn through m can overlap view.
func Visible(m znap.Affine, w, h float64, view znap.Rect) bool {
	return znap.Bounds(m, znap.Rect{Width: w, Height: h}).Intersects(view)
}

// CopiesFor returns how many copies spaced spacing seconds apart it takes to
// cover one full cycle of tl. It returns 1 for a non-positive spacing or an
// empty cycle.
func CopiesFor(tl *znap.Timeline, spacing float64) int {
	d := tl.Duration()
	if spacing <= 0 || d <= 0 {
		return 1
	}
	return int(math.Ceil(d / spacing))
}

// Trail draws an image several times along a space, each copy lagging the
// previous by Spacing seconds. It is the parade effect: one timeline, many
// phase-shifted riders.
type Trail struct {
	Space znap.Space
	Image *ebiten.Image

	// Copies is the number of images drawn. Zero fills one full cycle when
	// Space is a *znap.Timeline, and draws a single copy otherwise.
	Copies int

	// Spacing is the time lag between consecutive copies.
	Spacing float64

	// Fade scales each later copy's alpha down linearly.
	Fade bool

	// View, when non-empty, culls copies that fall entirely outside it.
	View znap.Rect

	// Camera, if set, is applied in front of every copy. An empty View
	// then culls against the camera's viewport.
	Camera *Camera
}

// Draw renders the trail at time t and returns how many copies were
// submitted. op is applied to every copy as in DrawImage.
func (tr *Trail) Draw(dst *ebiten.Image, t float64, op *ebiten.DrawImageOptions) (int, error) {
	n := tr.copies()
	bounds := tr.Image.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())

	view, cull := znap.Identity, tr.View
	if tr.Camera != nil {
		view = tr.Camera.View()
		if cull.Width <= 0 || cull.Height <= 0 {
			cull = tr.Camera.Viewport
		}
	}

	drawn := 0
	for i := 0; i < n; i++ {
		m, err := tr.Space.TransformAt(t - float64(i)*tr.Spacing)
		if err != nil {
			return drawn, err
		}
		m = view.Multiply(m)
		var o ebiten.DrawImageOptions
		if op != nil {
			o = *op
		}
		if cull.Width > 0 && cull.Height > 0 {
			local := FromGeoM(o.GeoM)
			if !Visible(m.Multiply(local), w, h, cull) {
				continue
			}
		}
		if tr.Fade && n > 1 {
			a := float32(1 - float64(i)/float64(n))
			o.ColorScale.Scale(a, a, a, a)
		}
		o.GeoM.Concat(GeoM(m))
		dst.DrawImage(tr.Image, &o)
		drawn++
	}
	return drawn, nil
}

func (tr *Trail) copies() int {
	if tr.Copies > 0 {
		return tr.Copies
	}
	if tl, ok := tr.Space.(*znap.Timeline); ok {
		return CopiesFor(tl, tr.Spacing)
	}
	return 1
}
