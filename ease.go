package znap

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// EaseByName returns the gween easing curve registered under name, e.g.
// "inOutQuad". The empty string returns nil (linear interpolation).
func EaseByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return nil, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown ease %q", ErrInvalidArgument, name)
	}
	return fn, nil
}

// EaseNames lists the registered easing names in sorted order.
func EaseNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// easeFrac remaps frac in (0, 1) through fn. The endpoints stay fixed so
// stop exactness never depends on the curve.
func easeFrac(fn ease.TweenFunc, frac float64) float64 {
	if fn == nil || frac == 0 || frac == 1 {
		return frac
	}
	return float64(fn(float32(frac), 0, 1, 1))
}
