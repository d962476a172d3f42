package znap

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tanema/gween/ease"
	"golang.org/x/sync/errgroup"
)

func mustBuild(t testing.TB, stops []Stop, opts Options) *Timeline {
	t.Helper()
	tl, err := Build(stops, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tl
}

func mustTransform(t testing.TB, tl *Timeline, at float64) Affine {
	t.Helper()
	m, err := tl.TransformAt(at)
	if err != nil {
		t.Fatalf("TransformAt(%v): %v", at, err)
	}
	return m
}

// scaleSpin is the identity -> 2x -> half turn loop used throughout.
func scaleSpin() []Stop {
	return []Stop{
		At(1, Identity),
		At(2, ScaleU(2)),
		At(2, RotateDeg(180)),
	}
}

// --- Build ---

func TestBuildRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		stops []Stop
	}{
		{"empty", nil},
		{"negative duration", []Stop{At(1, Identity), At(-0.5, Identity)}},
		{"NaN duration", []Stop{At(math.NaN(), Identity)}},
		{"infinite duration", []Stop{At(math.Inf(1), Identity)}},
		{"NaN transform", []Stop{At(1, Affine{1, 0, 0, 1, math.NaN(), 0})}},
		{"unknown mode", []Stop{{Duration: 1, Transform: Identity, Mode: Mode(7)}}},
		{"duration overflow", []Stop{At(math.MaxFloat64, Identity), At(math.MaxFloat64, Identity)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := Build(tt.stops, DefaultOptions)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
			if tl != nil {
				t.Error("expected nil timeline on error")
			}
		})
	}
}

func TestBuildIntervals(t *testing.T) {
	tl := mustBuild(t, []Stop{
		At(1, Identity).WithLabel("rest"),
		At(2, ScaleU(2)),
		At(2, RotateDeg(180)),
		Replace(1, ScaleY(2)),
	}, DefaultOptions)

	want := []Interval{
		{Index: 0, Start: 0, End: 1, Transform: Identity, Effective: Identity, Label: "rest"},
		{Index: 1, Start: 1, End: 3, Transform: ScaleU(2), Effective: ScaleU(2)},
		{Index: 2, Start: 3, End: 5, Transform: RotateDeg(180), Effective: Affine{-2, 0, 0, -2, 0, 0}},
		{Index: 3, Start: 5, End: 6, Transform: ScaleY(2), Mode: ModeOverwrite, Effective: ScaleY(2)},
	}
	if diff := cmp.Diff(want, tl.Intervals()); diff != "" {
		t.Errorf("intervals mismatch (-want +got):\n%s", diff)
	}
	if tl.Duration() != 6 {
		t.Errorf("Duration() = %v, want 6", tl.Duration())
	}
	if tl.Len() != 4 || !tl.Looping() {
		t.Errorf("Len() = %d, Looping() = %v", tl.Len(), tl.Looping())
	}
	for i := 0; i+1 < tl.Len(); i++ {
		if tl.Interval(i).End != tl.Interval(i+1).Start {
			t.Errorf("interval %d end %v != interval %d start %v", i, tl.Interval(i).End, i+1, tl.Interval(i+1).Start)
		}
	}
}

func TestBuildFirstStopIgnoresMode(t *testing.T) {
	tl := mustBuild(t, []Stop{Replace(1, ScaleU(3)), At(1, ScaleU(2))}, DefaultOptions)
	assertExact(t, "first", tl.Interval(0).Effective, ScaleU(3))
	assertExact(t, "second", tl.Interval(1).Effective, ScaleU(6))
}

func TestEffectiveDependsOnlyOnEarlierStops(t *testing.T) {
	short := mustBuild(t, scaleSpin()[:2], DefaultOptions)
	long := mustBuild(t, append(scaleSpin(), At(3, Translate(4, 4))), DefaultOptions)
	for i := 0; i < short.Len(); i++ {
		assertExact(t, fmt.Sprintf("interval %d", i), long.Interval(i).Effective, short.Interval(i).Effective)
	}
}

func TestIntervalsReturnsCopy(t *testing.T) {
	tl := mustBuild(t, scaleSpin(), DefaultOptions)
	ivs := tl.Intervals()
	ivs[1].Effective = Translate(99, 99)
	ivs[1].Start = 42
	assertExact(t, "after mutation", mustTransform(t, tl, 1), ScaleU(2))
}

func TestNextPrev(t *testing.T) {
	loop := mustBuild(t, scaleSpin(), DefaultOptions)
	if loop.Next(2) != 0 || loop.Prev(0) != 2 || loop.Next(0) != 1 || loop.Prev(2) != 1 {
		t.Error("looping neighbours do not wrap")
	}
	once := mustBuild(t, scaleSpin(), Options{})
	if once.Next(2) != -1 || once.Prev(0) != -1 {
		t.Error("non-looping ends should have no neighbour")
	}
}

// --- TransformAt ---

func TestScaleSpinScenario(t *testing.T) {
	tl := mustBuild(t, scaleSpin(), DefaultOptions)

	if tl.Duration() != 5 {
		t.Fatalf("Duration() = %v, want 5", tl.Duration())
	}
	assertExact(t, "t=0", mustTransform(t, tl, 0), Identity)
	assertExact(t, "t=1", mustTransform(t, tl, 1), ScaleU(2))
	assertExact(t, "t=3", mustTransform(t, tl, 3), Compose(ScaleU(2), RotateDeg(180)))

	var avg Affine
	for i := range avg {
		avg[i] = (Identity[i] + ScaleU(2)[i]) / 2
	}
	assertExact(t, "t=0.5", mustTransform(t, tl, 0.5), avg)
}

func TestStopExactness(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 50; trial++ {
		n := 1 + r.IntN(12)
		stops := make([]Stop, n)
		for i := range stops {
			var m Affine
			for j := range m {
				m[j] = r.Float64()*4 - 2
			}
			stops[i] = Stop{
				Duration:  0.1 + r.Float64()*3,
				Transform: m,
				Mode:      Mode(r.IntN(2)),
			}
		}
		for _, looping := range []bool{true, false} {
			tl := mustBuild(t, stops, Options{Looping: looping})
			for _, iv := range tl.Intervals() {
				got := mustTransform(t, tl, iv.Start)
				if got != iv.Effective {
					t.Fatalf("trial %d looping=%v: TransformAt(%v) = %v, want %v", trial, looping, iv.Start, got, iv.Effective)
				}
			}
		}
	}
}

func TestPeriodicity(t *testing.T) {
	tl := mustBuild(t, scaleSpin(), DefaultOptions)
	for _, at := range []float64{0, 0.5, 1.25, 2.75, 4.5, 4.9375} {
		want := mustTransform(t, tl, at)
		for k := -3; k <= 3; k++ {
			shifted := at + float64(k)*tl.Duration()
			if got := mustTransform(t, tl, shifted); got != want {
				t.Errorf("TransformAt(%v) = %v, want %v (same as t=%v)", shifted, got, want, at)
			}
		}
	}
}

func TestLinearWithinInterval(t *testing.T) {
	tl := mustBuild(t, scaleSpin(), DefaultOptions)
	const h = 1.0 / 64
	iv := tl.Interval(1)

	prev := mustTransform(t, tl, iv.Start)
	cur := mustTransform(t, tl, iv.Start+h)
	var step Affine
	for i := range step {
		step[i] = cur[i] - prev[i]
	}
	for at := iv.Start + 2*h; at < iv.End; at += h {
		next := mustTransform(t, tl, at)
		for i := range next {
			if d := next[i] - cur[i]; math.Abs(d-step[i]) > 1e-12 {
				t.Fatalf("coefficient %d at t=%v changed by %v, want %v", i, at, d, step[i])
			}
		}
		cur = next
	}
}

func TestLoopJoinBlendsTowardsFirst(t *testing.T) {
	tl := mustBuild(t, []Stop{At(2, Identity), At(2, Translate(8, 0))}, DefaultOptions)
	assertMatrix(t, "t=3", mustTransform(t, tl, 3), Translate(4, 0))
	assertMatrix(t, "t=3.75", mustTransform(t, tl, 3.75), Translate(1, 0))
	assertExact(t, "t=4", mustTransform(t, tl, 4), Identity)
}

func TestNegativeTimeWraps(t *testing.T) {
	tl := mustBuild(t, []Stop{At(2, Identity), At(2, Translate(8, 0))}, DefaultOptions)
	assertExact(t, "t=-1", mustTransform(t, tl, -1), mustTransform(t, tl, 3))
	assertExact(t, "t=-4", mustTransform(t, tl, -4), Identity)
}

func TestZeroDurationStop(t *testing.T) {
	a, b, c := Translate(1, 0), ScaleU(3), RotateDeg(90)
	tl := mustBuild(t, []Stop{At(1, a), Replace(0, b), At(2, c)}, DefaultOptions)

	got := mustTransform(t, tl, 1)
	assertExact(t, "t=1", got, b)
	if !got.Finite() {
		t.Fatalf("t=1 produced %v", got)
	}

	// Before the instant, the first interval blends towards b.
	assertMatrix(t, "t=0.5", mustTransform(t, tl, 0.5), a.Interpolate(b, 0.5))

	// Just after, the third interval has taken over.
	after := mustTransform(t, tl, 1+1.0/1024)
	want := b.Multiply(c).Interpolate(a, 1.0/2048)
	assertMatrix(t, "t=1+", after, want)
}

func TestZeroDurationStopsShareInstant(t *testing.T) {
	tl := mustBuild(t, []Stop{
		At(1, Identity),
		Replace(0, ScaleU(2)),
		Replace(0, ScaleU(3)),
		At(1, Translate(1, 1)),
	}, DefaultOptions)
	assertExact(t, "earliest wins", mustTransform(t, tl, 1), ScaleU(2))
}

func TestZeroDurationLastStop(t *testing.T) {
	stops := []Stop{At(1, Translate(1, 0)), Replace(0, ScaleU(3))}

	looping := mustBuild(t, stops, DefaultOptions)
	assertExact(t, "looping t=1 wraps", mustTransform(t, looping, 1), Translate(1, 0))
	assertExact(t, "looping t=0", mustTransform(t, looping, 0), Translate(1, 0))
	assertMatrix(t, "looping t=0.5", mustTransform(t, looping, 0.5), Translate(1, 0).Interpolate(ScaleU(3), 0.5))

	clamped := mustBuild(t, stops, Options{})
	assertExact(t, "clamped t=1", mustTransform(t, clamped, 1), ScaleU(3))
}

func TestAllZeroDurations(t *testing.T) {
	for _, looping := range []bool{true, false} {
		tl := mustBuild(t, []Stop{At(0, ScaleU(2)), Replace(0, ScaleU(5))}, Options{Looping: looping})
		if tl.Duration() != 0 {
			t.Fatalf("Duration() = %v", tl.Duration())
		}
		assertExact(t, "t=0", mustTransform(t, tl, 0), ScaleU(2))
		m := mustTransform(t, tl, 7)
		if !m.Finite() {
			t.Errorf("looping=%v: t=7 produced %v", looping, m)
		}
	}
}

func TestSingleStop(t *testing.T) {
	tl := mustBuild(t, []Stop{At(3, Translate(2, 2))}, DefaultOptions)
	for _, at := range []float64{0, 1, 2.5, 3, 100, -7} {
		assertExact(t, fmt.Sprintf("t=%v", at), mustTransform(t, tl, at), Translate(2, 2))
	}
}

func TestNonLoopingClamps(t *testing.T) {
	tl := mustBuild(t, scaleSpin(), Options{Looping: false})
	last := tl.Interval(tl.Len() - 1).Effective

	assertExact(t, "t=5", mustTransform(t, tl, 5), last)
	assertExact(t, "t=12", mustTransform(t, tl, 12), last)
	assertExact(t, "t=-3", mustTransform(t, tl, -3), Identity)

	// The last interval holds rather than blending back to the start.
	assertExact(t, "t=4", mustTransform(t, tl, 4), last)
}

func TestEasedInterval(t *testing.T) {
	tl := mustBuild(t, []Stop{
		At(1, Identity).WithEase(ease.InQuad),
		At(1, Translate(8, 0)),
	}, Options{})
	assertExact(t, "start", mustTransform(t, tl, 0), Identity)
	assertMatrix(t, "eased midpoint", mustTransform(t, tl, 0.5), Translate(2, 0))
	assertExact(t, "end", mustTransform(t, tl, 1), Translate(8, 0))
}

// The expectations assume multiply-by-default composition with an overwrite
// stop at the end.
func TestMultiplyByDefaultFixture(t *testing.T) {
	tl := mustBuild(t, []Stop{
		At(1, Identity),
		At(2, ScaleU(2)),
		At(2, RotateDeg(180)),
		Replace(1, ScaleY(2)),
	}, DefaultOptions)

	tests := []struct {
		at   float64
		want Affine
	}{
		{0, Affine{1, 0, 0, 1, 0, 0}},
		{0.1, Affine{1.1, 0, 0, 1.1, 0, 0}},
		{0.9, Affine{1.9, 0, 0, 1.9, 0, 0}},
		{1, Affine{2, 0, 0, 2, 0, 0}},
		{3, Affine{-2, 0, 0, -2, 0, 0}},
		{4, Affine{-0.5, 0, 0, 0, 0, 0}},
		{5, Affine{1, 0, 0, 2, 0, 0}},
		{5.5, Affine{1, 0, 0, 1.5, 0, 0}},
	}
	for _, tt := range tests {
		assertMatrix(t, fmt.Sprintf("t=%v", tt.at), mustTransform(t, tl, tt.at), tt.want)
	}
}

func TestDomainErrors(t *testing.T) {
	for _, looping := range []bool{true, false} {
		tl := mustBuild(t, scaleSpin(), Options{Looping: looping})
		for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			if _, err := tl.TransformAt(bad); !errors.Is(err, ErrDomain) {
				t.Errorf("TransformAt(%v) err = %v, want ErrDomain", bad, err)
			}
			if _, err := tl.MapPoint(bad, Origin); !errors.Is(err, ErrDomain) {
				t.Errorf("MapPoint(%v) err = %v, want ErrDomain", bad, err)
			}
		}
		// The timeline is unaffected by failed queries.
		assertExact(t, "after errors", mustTransform(t, tl, 1), ScaleU(2))
	}
}

// --- MapPoint ---

func TestMapPointIdentityTimeline(t *testing.T) {
	tl := mustBuild(t, []Stop{At(1, Identity)}, DefaultOptions)
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 100; i++ {
		at := r.Float64()*200 - 100
		p := Point{X: r.Float64()*1000 - 500, Y: r.Float64()*1000 - 500}
		got, err := tl.MapPoint(at, p)
		if err != nil {
			t.Fatal(err)
		}
		if got != p {
			t.Fatalf("MapPoint(%v, %v) = %v", at, p, got)
		}
	}
}

func TestMapPointAtStarts(t *testing.T) {
	tl := mustBuild(t, append(scaleSpin(), At(1, Translate(3, -4))), DefaultOptions)
	p := Point{X: 1.5, Y: -2.25}
	for _, iv := range tl.Intervals() {
		got, err := tl.MapPoint(iv.Start, p)
		if err != nil {
			t.Fatal(err)
		}
		if want := iv.Effective.ApplyPoint(p); got != want {
			t.Errorf("MapPoint(%v) = %v, want %v", iv.Start, got, want)
		}
	}
}

func TestMapPointScenario(t *testing.T) {
	tl := mustBuild(t, scaleSpin(), DefaultOptions)
	got, err := tl.MapPoint(3, Point{X: 1})
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "x", got.X, -2)
	assertNear(t, "y", got.Y, 0)
}

// --- Concurrency ---

func TestConcurrentQueries(t *testing.T) {
	tl := mustBuild(t, append(scaleSpin(), Replace(0.5, Translate(10, 10))), DefaultOptions)

	times := make([]float64, 512)
	want := make([]Affine, len(times))
	for i := range times {
		times[i] = float64(i)*0.037 - 3
		want[i] = mustTransform(t, tl, times[i])
	}

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i, at := range times {
				got, err := tl.TransformAt(at)
				if err != nil {
					return err
				}
				if got != want[i] {
					return fmt.Errorf("TransformAt(%v) = %v, want %v", at, got, want[i])
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

// --- Normalize ---

func TestNormalize(t *testing.T) {
	loop := mustBuild(t, scaleSpin(), DefaultOptions)
	once := mustBuild(t, scaleSpin(), Options{})
	tests := []struct {
		tl   *Timeline
		in   float64
		want float64
	}{
		{loop, 0, 0},
		{loop, 5, 0},
		{loop, 7.5, 2.5},
		{loop, -1, 4},
		{loop, -10, 0},
		{once, -1, 0},
		{once, 2, 2},
		{once, 9, 5},
	}
	for _, tt := range tests {
		got, err := tt.tl.Normalize(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Normalize(%v) looping=%v = %v, want %v", tt.in, tt.tl.Looping(), got, tt.want)
		}
	}
}
