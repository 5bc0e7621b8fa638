// Package ecs provides ECS adapters for quadra's object lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges store lifecycle
// events (object created, object removed) into a [Donburi] world as typed
// events. Subscribe to [LifecycleEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	bridge := ecs.NewDonburiStore(world)
//	store.SetEntityStore(bridge)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
