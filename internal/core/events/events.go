package events

import "github.com/AlexisPollonni/Arch/internal/core/ecs"

// Kind names one of the five lifecycle event channels. Kinds are fully
// independent: the bus keeps one subscriber list per kind and gives no
// ordering guarantee across kinds.
type Kind uint8

const (
	KindEntityCreated Kind = iota
	KindEntityDestroyed
	KindComponentAdded
	KindComponentRemoved
	KindComponentSet

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindEntityCreated:
		return "entity_created"
	case KindEntityDestroyed:
		return "entity_destroyed"
	case KindComponentAdded:
		return "component_added"
	case KindComponentRemoved:
		return "component_removed"
	case KindComponentSet:
		return "component_set"
	default:
		return "unknown"
	}
}

// The five payload types. Payloads are immutable values constructed fresh per
// publish and never retained by the bus.

// EntityCreated is published after a new entity's row is visible in storage.
type EntityCreated struct {
	Entity ecs.Entity
}

// EntityDestroyed is published after the entity's row is gone; the handle is
// already dead inside handlers.
type EntityDestroyed struct {
	Entity ecs.Entity
}

// ComponentAdded is published after a component was attached to the entity.
type ComponentAdded struct {
	Type   ecs.ComponentType
	Entity ecs.Entity
}

// ComponentRemoved is published after a component was detached from the
// entity.
type ComponentRemoved struct {
	Type   ecs.ComponentType
	Entity ecs.Entity
}

// ComponentSet is published after an in-place value update of an existing
// component.
type ComponentSet struct {
	Type   ecs.ComponentType
	Entity ecs.Entity
}

func (EntityCreated) kind() Kind    { return KindEntityCreated }
func (EntityDestroyed) kind() Kind  { return KindEntityDestroyed }
func (ComponentAdded) kind() Kind   { return KindComponentAdded }
func (ComponentRemoved) kind() Kind { return KindComponentRemoved }
func (ComponentSet) kind() Kind     { return KindComponentSet }

// Payload constrains the generic bus entry points to exactly the five
// lifecycle payloads, each statically bound to its Kind. The bus never
// type-erases across kinds: a handler subscribed for E is only ever invoked
// with E.
type Payload interface {
	EntityCreated | EntityDestroyed | ComponentAdded | ComponentRemoved | ComponentSet

	kind() Kind
}

// kindOf maps a payload type to its Kind without reflection.
func kindOf[E Payload]() Kind {
	var zero E
	return zero.kind()
}
