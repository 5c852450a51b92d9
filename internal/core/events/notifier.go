package events

import (
	"reflect"

	"github.com/AlexisPollonni/Arch/internal/core/ecs"
)

// Notifier exposes the notify operations the storage layer calls after each
// mutation. Every operation publishes strictly after the mutation is visible
// in storage: the caller applies first, notifies second, and a handler error
// propagates back without undoing anything.
//
// Each component operation comes in two equivalent shapes: the
// statically-typed free functions resolve the compile-time type through the
// resolver before publishing, the methods take an already-resolved
// descriptor (or a runtime value to look up). Both shapes produce identical
// payloads for equivalent inputs.
type Notifier struct {
	bus   *Bus
	types TypeResolver
}

// NewNotifier binds a notifier to its world's bus and type resolver.
func NewNotifier(bus *Bus, types TypeResolver) *Notifier {
	return &Notifier{bus: bus, types: types}
}

// Bus returns the bus the notifier publishes on.
func (n *Notifier) Bus() *Bus {
	return n.bus
}

// EntityCreated publishes that e's row became visible.
func (n *Notifier) EntityCreated(e ecs.Entity) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, EntityCreated{Entity: e})
}

// EntityDestroyed publishes that e's row was removed.
func (n *Notifier) EntityDestroyed(e ecs.Entity) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, EntityDestroyed{Entity: e})
}

// ComponentAdded publishes an add of the already-resolved type t on e.
func (n *Notifier) ComponentAdded(e ecs.Entity, t ecs.ComponentType) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentAdded{Type: t, Entity: e})
}

// ComponentRemoved publishes a removal of the already-resolved type t on e.
func (n *Notifier) ComponentRemoved(e ecs.Entity, t ecs.ComponentType) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentRemoved{Type: t, Entity: e})
}

// ComponentSet publishes an in-place update of the already-resolved type t
// on e.
func (n *Notifier) ComponentSet(e ecs.Entity, t ecs.ComponentType) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentSet{Type: t, Entity: e})
}

// ComponentAddedValue publishes an add on e, resolving the component type
// from v's dynamic type.
func (n *Notifier) ComponentAddedValue(e ecs.Entity, v any) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentAdded{Type: n.types.ResolveValue(v), Entity: e})
}

// ComponentRemovedValue publishes a removal on e, resolving the component
// type from v's dynamic type.
func (n *Notifier) ComponentRemovedValue(e ecs.Entity, v any) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentRemoved{Type: n.types.ResolveValue(v), Entity: e})
}

// ComponentSetValue publishes an in-place update on e, resolving the
// component type from v's dynamic type.
func (n *Notifier) ComponentSetValue(e ecs.Entity, v any) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentSet{Type: n.types.ResolveValue(v), Entity: e})
}

// NotifyComponentAdded is the statically-typed shape of ComponentAdded: it
// resolves T once through the resolver, then publishes.
func NotifyComponentAdded[T any](n *Notifier, e ecs.Entity) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentAdded{Type: n.types.ResolveType(reflect.TypeOf((*T)(nil)).Elem()), Entity: e})
}

// NotifyComponentRemoved is the statically-typed shape of ComponentRemoved.
func NotifyComponentRemoved[T any](n *Notifier, e ecs.Entity) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentRemoved{Type: n.types.ResolveType(reflect.TypeOf((*T)(nil)).Elem()), Entity: e})
}

// NotifyComponentSet is the statically-typed shape of ComponentSet.
func NotifyComponentSet[T any](n *Notifier, e ecs.Entity) error {
	if !Enabled {
		return nil
	}
	return Publish(n.bus, ComponentSet{Type: n.types.ResolveType(reflect.TypeOf((*T)(nil)).Elem()), Entity: e})
}
