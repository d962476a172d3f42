package ecs

import (
	"github.com/phanxgames/znap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// AnimationData drives one entity.
type AnimationData struct {
	Player *znap.Player

	// Anchor is the local point mapped into Position each frame.
	Anchor znap.Point
}

// LoopEvent is published when an entity's looping timeline wraps.
type LoopEvent struct {
	Entity donburi.Entity
	Loops  int
}

var (
	// Animation holds an entity's player and anchor.
	Animation = donburi.NewComponentType[AnimationData]()

	// Position receives the animated anchor.
	Position = donburi.NewComponentType[znap.Point]()

	// LoopEventType is the Donburi event type for LoopEvent.
	LoopEventType = events.NewEventType[LoopEvent]()
)

var animated = donburi.NewQuery(filter.Contains(Animation, Position))

// Spawn creates an entity playing tl from time 0 with anchor at its origin.
func Spawn(world donburi.World, tl *znap.Timeline, anchor znap.Point) donburi.Entity {
	entity := world.Create(Animation, Position)
	entry := world.Entry(entity)
	player := znap.NewPlayer(tl)
	Animation.SetValue(entry, AnimationData{Player: player, Anchor: anchor})
	Position.SetValue(entry, player.MapPoint(anchor))
	return entity
}

// Update advances every animated entity by dt seconds and writes its
// Position. Loop events are queued; process them with
// LoopEventType.ProcessEvents.
func Update(world donburi.World, dt float32) {
	animated.Each(world, func(entry *donburi.Entry) {
		anim := Animation.Get(entry)
		if anim.Player == nil {
			return
		}
		before := anim.Player.Loops()
		anim.Player.Update(dt)
		if after := anim.Player.Loops(); after != before {
			LoopEventType.Publish(world, LoopEvent{Entity: entry.Entity(), Loops: after})
		}
		Position.SetValue(entry, anim.Player.MapPoint(anim.Anchor))
	})
}
