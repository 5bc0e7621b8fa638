package quadra

// EntityStore is the interface for optional ECS integration. When set on a
// Store, object lifecycle events are forwarded to it.
type EntityStore interface {
	EmitEvent(event LifecycleEvent)
}

// LifecycleEventType identifies a kind of lifecycle event.
type LifecycleEventType uint8

const (
	EventCreated LifecycleEventType = iota // fires after Create
	EventRemoved                           // fires after a Remove that freed a slot
)

// LifecycleEvent carries one object lifecycle change for the ECS bridge.
type LifecycleEvent struct {
	Type LifecycleEventType
	ID   ObjectID
	Kind ObjectKind
}
