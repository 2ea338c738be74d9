// Package ecs bridges xrinput interaction events into a Donburi world.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	ecs.Subscribe(world, onPress, xrinput.EventPointerDown, xrinput.EventClick)
//
// Events are queued on [InteractionEventType] and delivered when the world
// processes events.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
