package ecs

import (
	"github.com/phanxgames/quadra"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for quadra lifecycle events.
// Subscribe to this in your ECS systems to learn when objects are created or
// removed, e.g. to drop components that hold a now-dead ObjectID.
var LifecycleEventType = events.NewEventType[quadra.LifecycleEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) quadra.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event quadra.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}
