package events

import (
	"reflect"

	"github.com/AlexisPollonni/Arch/internal/core/ecs"
)

// Shared component types for tests across build modes.
type posComp struct{ X, Y float32 }

type velComp struct{ DX, DY float32 }

func testEntity(id uint32) ecs.Entity {
	return ecs.Entity{ID: id, Version: 1}
}

// countingResolver wraps a real registry and counts how often the notifier
// reaches into it.
type countingResolver struct {
	reg        *ecs.Registry
	typeCalls  int
	valueCalls int
}

func (r *countingResolver) ResolveType(rt reflect.Type) ecs.ComponentType {
	r.typeCalls++
	return r.reg.ResolveType(rt)
}

func (r *countingResolver) ResolveValue(v any) ecs.ComponentType {
	r.valueCalls++
	return r.reg.ResolveValue(v)
}
