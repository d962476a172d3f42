package znap

import (
	"fmt"
	"math"
	"os"
	"slices"

	"github.com/tanema/gween/ease"
)

// Interval is the absolute-time form of a Stop, computed once by Build.
// Timeline hands out copies; changing one has no effect on the timeline.
type Interval struct {
	Index      int
	Start, End float64

	// Transform and Mode are the stop's declared values.
	Transform Affine
	Mode      Mode

	// Effective is the absolute transform in force at Start.
	Effective Affine

	Label string
}

// Duration returns End - Start.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// Options configures Build.
type Options struct {
	// Looping wraps query times past the end back to 0. When false, times
	// are clamped to [0, Duration].
	Looping bool

	// Debug prints the interval table to stderr after building.
	Debug bool
}

// DefaultOptions loops.
var DefaultOptions = Options{Looping: true}

// Timeline maps time to an affine transform. It is immutable after Build and
// safe for concurrent queries from any number of goroutines.
type Timeline struct {
	intervals []Interval
	starts    []float64
	eases     []ease.TweenFunc
	duration  float64
	looping   bool
}

// NewTimeline builds a looping timeline from stops.
func NewTimeline(stops []Stop) (*Timeline, error) {
	return Build(stops, DefaultOptions)
}

// Build folds stops left to right into a Timeline. Each interval's
// effective transform is the running product so far multiplied by the
// stop's transform (ModeMultiply) or the stop's transform alone
// (ModeOverwrite); the first interval's effective transform is its own.
//
// Build fails with ErrInvalidArgument if stops is empty, if a duration is
// negative or not a number, or if a stop carries a non-finite transform or an
// unknown mode.
func Build(stops []Stop, opts Options) (*Timeline, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: empty stop list", ErrInvalidArgument)
	}

	tl := &Timeline{
		intervals: make([]Interval, len(stops)),
		starts:    make([]float64, len(stops)),
		eases:     make([]ease.TweenFunc, len(stops)),
		looping:   opts.Looping,
	}

	var running Affine
	var now float64
	for i, s := range stops {
		if err := s.validate(i); err != nil {
			return nil, err
		}
		switch {
		case i == 0, s.Mode == ModeOverwrite:
			running = s.Transform
		default:
			running = running.Multiply(s.Transform)
		}
		end := now + s.Duration
		if math.IsInf(end, 0) {
			return nil, fmt.Errorf("%w: stop %d: total duration overflows", ErrInvalidArgument, i)
		}
		tl.intervals[i] = Interval{
			Index:     i,
			Start:     now,
			End:       end,
			Transform: s.Transform,
			Mode:      s.Mode,
			Effective: running,
			Label:     s.Label,
		}
		tl.starts[i] = now
		tl.eases[i] = s.Ease
		now = end
	}
	tl.duration = now

	if opts.Debug {
		tl.Dump(os.Stderr)
	}
	return tl, nil
}

// Duration returns the end of the last interval.
func (tl *Timeline) Duration() float64 { return tl.duration }

// Looping reports whether query times wrap around.
func (tl *Timeline) Looping() bool { return tl.looping }

// Len returns the number of intervals.
func (tl *Timeline) Len() int { return len(tl.intervals) }

// Interval returns a copy of interval i.
func (tl *Timeline) Interval(i int) Interval { return tl.intervals[i] }

// Intervals returns a copy of the interval list in time order.
func (tl *Timeline) Intervals() []Interval {
	return slices.Clone(tl.intervals)
}

// Next returns the index of the interval after i, wrapping to 0 when the
// timeline loops. It returns -1 past the end of a non-looping timeline.
func (tl *Timeline) Next(i int) int {
	n := len(tl.intervals)
	if i == n-1 && !tl.looping {
		return -1
	}
	return (i + 1) % n
}

// Prev returns the index of the interval before i, wrapping to the last
// one when the timeline loops. It returns -1 before the start of a
// non-looping timeline.
func (tl *Timeline) Prev(i int) int {
	n := len(tl.intervals)
	if i == 0 && !tl.looping {
		return -1
	}
	return (i - 1 + n) % n
}

// Normalize maps t into the timeline's domain: [0, Duration) when looping,
// [0, Duration] otherwise. It fails with ErrDomain if t is NaN or infinite.
func (tl *Timeline) Normalize(t float64) (float64, error) {
	if err := checkTime(t); err != nil {
		return 0, err
	}
	d := tl.duration
	if tl.looping {
		if d == 0 {
			return 0, nil
		}
		// True modulo. Adding d only for negative remainders keeps t exact
		// when it is already in range.
		r := math.Mod(t, d)
		if r < 0 {
			r += d
			if r >= d {
				r = 0
			}
		}
		return r, nil
	}
	return math.Min(math.Max(t, 0), d), nil
}

// TransformAt returns the transform in force at time t.
//
// At an interval's start instant the interval's effective transform is
// returned exactly. Between instants the result is a linear blend of the
// interval's effective transform and the next interval's. When looping, the
// last interval blends towards the first, modelling the jump back to 0.
// Several zero-duration stops at the same instant resolve to the earliest.
// A looping timeline wraps Duration to 0, so a zero-duration last stop is
// only reached as the blend target of the interval before it.
func (tl *Timeline) TransformAt(t float64) (Affine, error) {
	tm, err := tl.Normalize(t)
	if err != nil {
		return Identity, err
	}
	last := len(tl.intervals) - 1
	if !tl.looping && t > 0 && tm >= tl.duration {
		return tl.intervals[last].Effective, nil
	}

	i, exact := slices.BinarySearch(tl.starts, tm)
	if exact {
		return tl.intervals[i].Effective, nil
	}
	i--

	iv := &tl.intervals[i]
	next := tl.Next(i)
	span := iv.End - iv.Start
	if next < 0 || span <= 0 {
		return iv.Effective, nil
	}

	frac := (tm - iv.Start) / span
	if frac < 0 || frac > 1 {
		return Identity, fmt.Errorf("%w: interpolation fraction %g outside [0, 1]", ErrInvalidArgument, frac)
	}
	frac = easeFrac(tl.eases[i], frac)
	return iv.Effective.Interpolate(tl.intervals[next].Effective, frac), nil
}

// MapPoint returns p mapped through the transform in force at time t.
func (tl *Timeline) MapPoint(t float64, p Point) (Point, error) {
	m, err := tl.TransformAt(t)
	if err != nil {
		return p, err
	}
	return m.ApplyPoint(p), nil
}
