package ecs

import (
	"github.com/phanxgames/xrinput"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type carrying stylus, mouse and
// scripted pointer events.
var InteractionEventType = events.NewEventType[xrinput.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore that publishes every interaction
// event to InteractionEventType in world.
func NewDonburiStore(world donburi.World) xrinput.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event xrinput.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// Subscribe registers fn for the given event types, or for every type when
// none are given.
func Subscribe(world donburi.World, fn func(donburi.World, xrinput.InteractionEvent), types ...xrinput.EventType) {
	if len(types) == 0 {
		InteractionEventType.Subscribe(world, fn)
		return
	}
	var want uint32
	for _, t := range types {
		want |= 1 << t
	}
	InteractionEventType.Subscribe(world, func(w donburi.World, e xrinput.InteractionEvent) {
		if want&(1<<e.Type) != 0 {
			fn(w, e)
		}
	})
}
