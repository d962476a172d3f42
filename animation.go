package znap

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Player drives a Timeline from a frame loop. Call Update(dt) once per frame
// and read Transform or MapPoint. The player writes nothing outside itself;
// one Timeline can back any number of players.
//
// A Player is not safe for concurrent use. Its Timeline is.
type Player struct {
	timeline *Timeline
	elapsed  float64
	current  Affine
	loops    int
	ramp     *gween.Tween

	// Speed scales dt. 1 is real time, 0 freezes, negative plays backwards.
	Speed float64

	// Paused stops time without touching Speed.
	Paused bool

	// Done is set once a non-looping timeline has played to its end.
	Done bool

	// OnLoop, if set, is called each time a looping timeline wraps, with the
	// number of completed cycles.
	OnLoop func(loops int)
}

// NewPlayer returns a player positioned at time 0 with Speed 1.
func NewPlayer(tl *Timeline) *Player {
	p := &Player{timeline: tl, Speed: 1}
	p.refresh()
	return p
}

// Update advances the player by dt seconds scaled by Speed.
func (p *Player) Update(dt float32) {
	if p.Done || p.Paused {
		return
	}
	if p.ramp != nil {
		v, finished := p.ramp.Update(dt)
		p.Speed = float64(v)
		if finished {
			p.ramp = nil
		}
	}

	step := float64(dt) * p.Speed
	if math.IsNaN(step) || math.IsInf(step, 0) || step == 0 {
		return
	}
	p.elapsed += step

	d := p.timeline.Duration()
	if p.timeline.Looping() {
		if d > 0 {
			loops := int(math.Floor(p.elapsed / d))
			if loops != p.loops {
				p.loops = loops
				if p.OnLoop != nil {
					p.OnLoop(loops)
				}
			}
		}
	} else {
		if p.elapsed >= d {
			p.elapsed = d
			p.Done = true
		}
		if p.elapsed < 0 {
			p.elapsed = 0
		}
	}
	p.refresh()
}

// SpeedRamp eases Speed from its current value to target over duration
// seconds of frame time. A nil fn ramps linearly.
func (p *Player) SpeedRamp(target float64, duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	p.ramp = gween.New(float32(p.Speed), float32(target), duration, fn)
}

// Seek jumps to absolute time t. Non-finite times are ignored.
func (p *Player) Seek(t float64) {
	if checkTime(t) != nil {
		return
	}
	p.elapsed = t
	d := p.timeline.Duration()
	if p.timeline.Looping() {
		if d > 0 {
			p.loops = int(math.Floor(t / d))
		}
	} else {
		p.elapsed = math.Min(math.Max(t, 0), d)
	}
	p.Done = !p.timeline.Looping() && t >= d
	p.refresh()
}

// Reset rewinds to time 0 and clears Done and the loop count.
func (p *Player) Reset() {
	p.elapsed = 0
	p.loops = 0
	p.Done = false
	p.ramp = nil
	p.refresh()
}

// Elapsed returns the player's time, including completed loops.
func (p *Player) Elapsed() float64 { return p.elapsed }

// Loops returns how many times a looping timeline has wrapped.
func (p *Player) Loops() int { return p.loops }

// Timeline returns the timeline being played.
func (p *Player) Timeline() *Timeline { return p.timeline }

// Transform returns the transform at the current time.
func (p *Player) Transform() Affine { return p.current }

// MapPoint maps pt through the current transform.
func (p *Player) MapPoint(pt Point) Point {
	return p.current.ApplyPoint(pt)
}

func (p *Player) refresh() {
	// elapsed is always finite here, so the query cannot fail.
	p.current, _ = p.timeline.TransformAt(p.elapsed)
}
