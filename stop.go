package znap

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// Stop is one keyframe of an animation. Its transform is in force at the
// stop's start instant and the timeline interpolates from there towards the
// next stop over Duration seconds.
//
// A zero Duration makes the stop an instantaneous replacement: it is what
// the timeline reports at exactly that instant, and the following stop takes
// over immediately afterwards.
type Stop struct {
	Duration  float64
	Transform Affine
	Mode      Mode

	// Ease remaps the interpolation fraction of this stop's interval.
	// Nil means linear.
	Ease ease.TweenFunc

	// Label is carried through to the interval for diagnostics.
	Label string
}

// At returns a multiply-mode stop.
func At(duration float64, m Affine) Stop {
	return Stop{Duration: duration, Transform: m}
}

// Replace returns an overwrite-mode stop.
func Replace(duration float64, m Affine) Stop {
	return Stop{Duration: duration, Transform: m, Mode: ModeOverwrite}
}

// WithEase returns a copy of s using fn for its interval.
func (s Stop) WithEase(fn ease.TweenFunc) Stop {
	s.Ease = fn
	return s
}

// WithLabel returns a copy of s carrying label.
func (s Stop) WithLabel(label string) Stop {
	s.Label = label
	return s
}

func (s Stop) validate(i int) error {
	if math.IsNaN(s.Duration) || math.IsInf(s.Duration, 0) {
		return fmt.Errorf("%w: stop %d: duration is not a number", ErrInvalidArgument, i)
	}
	if s.Duration < 0 {
		return fmt.Errorf("%w: stop %d: negative duration %g", ErrInvalidArgument, i, s.Duration)
	}
	if !s.Transform.Finite() {
		return fmt.Errorf("%w: stop %d: transform has non-finite coefficients", ErrInvalidArgument, i)
	}
	if !s.Mode.valid() {
		return fmt.Errorf("%w: stop %d: %v", ErrInvalidArgument, i, s.Mode)
	}
	return nil
}
