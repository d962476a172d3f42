// Package znap drives 2D animations from time-parameterized affine
// transforms.
//
// An animation is authored as an ordered list of [Stop] values, each a
// duration and an [Affine] transform. [Build] folds the list once into an
// immutable [Timeline] of absolute-time [Interval] values, and callers query
// it every frame:
//
//	tl, err := znap.NewTimeline([]znap.Stop{
//		znap.At(1, znap.Identity),
//		znap.At(2, znap.ScaleU(2)),
//		znap.At(2, znap.RotateDeg(180)),
//	})
//	m, err := tl.TransformAt(0.5)             // halfway between identity and 2x
//	p, err := tl.MapPoint(3, znap.Point{X: 1}) // (-2, 0)
//
// # Composition
//
// Transforms accumulate left to right. A [ModeMultiply] stop is expressed in
// the coordinate space of everything before it: its effective transform is
// the previous effective transform multiplied by its own ([Compose]). A
// [ModeOverwrite] stop replaces the running product. An interval's effective
// transform never depends on later stops, even when query time wraps.
//
// # Time
//
// A looping timeline (the default) maps any finite time into [0, Duration)
// with a true modulo, and its last interval blends back towards the first.
// A non-looping timeline clamps time to [0, Duration] and holds the last
// interval. Queries at an interval's start return its effective transform
// exactly; between starts the result is a coefficient-wise linear blend,
// optionally reshaped per stop by a [gween] easing curve.
//
// Zero-duration stops that share an instant resolve to the earliest. When
// looping, time Duration wraps to 0, so a zero-duration stop at the very end
// is never reported exactly; it only shapes the blend of the interval before
// it. A non-looping timeline reports it at Duration.
//
// # Authoring helpers
//
// [Chain] builds stop lists fluently, [ParseTransformList] reads SVG
// transform attributes, and [ParseDocument]/[LoadFile] read stop documents
// in JSON, YAML or TOML.
//
// # Driving frames
//
// [Player] owns a clock for one consumer and advances it with Update(dt);
// the render subpackage turns transforms into [Ebitengine] GeoM values, and
// the ecs module runs players inside a [Donburi] world.
//
// Timelines are read-only after Build and safe for concurrent queries.
//
// [gween]: https://github.com/tanema/gween
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package znap
