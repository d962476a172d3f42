package znap

import (
	"errors"
	"math"
	"testing"
)

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"right edge", 110, 40, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"adjacent top", Rect{10, -50, 50, 60}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint above", Rect{10, -100, 50, 50}, false},
		{"zero-size at corner", Rect{110, 110, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

// --- Point ---

func TestPointAngle(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		rad  float64
	}{
		{"origin", Origin, 0},
		{"north", Point{0, 1}, 0},
		{"east", Point{1, 0}, math.Pi / 2},
		{"south", Point{0, -1}, math.Pi},
		{"west", Point{-1, 0}, 3 * math.Pi / 2},
		{"just east of north", Point{0.1, 1}, 0.09966865249116204},
		{"just west of north", Point{-0.1, 1}, 6.183516654688424},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "AngleRad", tt.p.AngleRad(), tt.rad)
			assertNear(t, "Angle", tt.p.Angle(), tt.rad*180/math.Pi)
		})
	}
}

func TestPointFromPolar(t *testing.T) {
	p := PointFromPolar(2, 10)
	assertNear(t, "x", p.X, 0.34729635533386066)
	assertNear(t, "y", p.Y, 1.969615506024416)
	assertNear(t, "radius", p.Radius(), 2)
	assertNear(t, "angle", p.Angle(), 10)

	if got := PointFromPolar(3, 90); got != (Point{3, 0}) {
		t.Errorf("PointFromPolar(3, 90) = %v, want exactly (3, 0)", got)
	}
}

func TestPointArithmetic(t *testing.T) {
	p, q := Point{1, 2}, Point{3, 5}
	if got := p.Add(q); got != (Point{4, 7}) {
		t.Errorf("Add = %v", got)
	}
	if got := q.Sub(p); got != (Point{2, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Scale(-2); got != (Point{-2, -4}) {
		t.Errorf("Scale = %v", got)
	}
	assertNear(t, "radius", Point{3, 4}.Radius(), 5)
	if s := p.String(); s != "Point(1, 2)" {
		t.Errorf("String = %q", s)
	}
}

// --- Mode ---

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"":          ModeMultiply,
		"multiply":  ModeMultiply,
		"overwrite": ModeOverwrite,
	} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("Overwrite"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
	if s := Mode(7).String(); s != "Mode(7)" {
		t.Errorf("String = %q", s)
	}
}

// --- Enum constant values (catch accidental iota drift) ---

func TestEnumValues(t *testing.T) {
	if ModeMultiply != 0 {
		t.Errorf("ModeMultiply = %d, want 0", ModeMultiply)
	}
	if ModeOverwrite != 1 {
		t.Errorf("ModeOverwrite = %d, want 1", ModeOverwrite)
	}
	if FormatJSON != 0 || FormatYAML != 1 || FormatTOML != 2 {
		t.Errorf("Format values drifted: %d %d %d", FormatJSON, FormatYAML, FormatTOML)
	}
}

// --- Benchmarks (verify zero allocations) ---

func BenchmarkRectIntersects(b *testing.B) {
	r := Rect{10, 20, 100, 50}
	other := Rect{50, 40, 80, 60}
	b.ReportAllocs()
	for b.Loop() {
		_ = r.Intersects(other)
	}
}
