// Package ecs runs znap players inside a Donburi world.
//
// Attach an [Animation] and a [Position] to an entity with [Spawn], then call
// [Update] once per frame. Each entity's anchor point is mapped through its
// player's current transform and written to [Position]. Looping timelines
// publish a [LoopEvent] every time they wrap:
//
//	world := donburi.NewWorld()
//	ecs.Spawn(world, timeline, znap.Point{X: 40})
//	ecs.LoopEventType.Subscribe(world, onLoop)
//
//	// each frame
//	ecs.Update(world, dt)
//	ecs.LoopEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
