package ecs

import (
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ComponentID is the dense per-registry identifier of a component type.
// IDs are assigned sequentially at first use and index column arrays, so the
// type space is capped at MaxComponentTypes per registry.
type ComponentID uint8

// MaxComponentTypes is the number of distinct component types one registry
// can hold.
const MaxComponentTypes = 256

// ComponentType is the runtime descriptor of a component shape. One value
// exists per distinct Go type per registry; descriptors are plain comparable
// values, so callers resolve once and pass them around by value.
//
// ID is dense and registration-ordered; Hash is an xxhash of the
// fully-qualified type name and therefore stable across runs and registries,
// which makes it the identity to log or compare out-of-process.
type ComponentType struct {
	ID   ComponentID
	Size uintptr
	Name string
	Hash uint64

	rtype reflect.Type
}

// GoType returns the Go type the descriptor was resolved from.
func (t ComponentType) GoType() reflect.Type {
	return t.rtype
}

// IsZero reports whether t is the zero descriptor (never issued by a registry).
func (t ComponentType) IsZero() bool {
	return t.rtype == nil
}

// Registry is the per-world bridge from Go types to ComponentType
// descriptors. The mapping is injective and lazily populated: the first
// resolution of a type assigns the next free ID, every later resolution
// returns the same descriptor.
//
// Resolution is safe for concurrent use; it sits on the subscribe/setup path,
// not the publish hot path.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]ComponentType
	byID  []ComponentType
}

// NewRegistry returns an empty registry. Each world owns its own instance;
// IDs from different registries are unrelated.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[reflect.Type]ComponentType),
	}
}

// Resolve returns the descriptor for the compile-time component type T,
// registering it on first use.
func Resolve[T any](r *Registry) ComponentType {
	return r.ResolveType(reflect.TypeOf((*T)(nil)).Elem())
}

// ResolveValue returns the descriptor for v's dynamic type, registering it on
// first use.
func (r *Registry) ResolveValue(v any) ComponentType {
	return r.ResolveType(reflect.TypeOf(v))
}

// ResolveType returns the descriptor for rt, registering it on first use.
// It panics when the registry is full; running out of component IDs is a
// programming error, not a runtime condition.
func (r *Registry) ResolveType(rt reflect.Type) ComponentType {
	r.mu.RLock()
	t, ok := r.types[rt]
	r.mu.RUnlock()
	if ok {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok = r.types[rt]; ok {
		return t
	}
	if len(r.byID) >= MaxComponentTypes {
		panic("ecs: component type limit exceeded (" + rt.String() + ")")
	}
	name := typeName(rt)
	t = ComponentType{
		ID:    ComponentID(len(r.byID)),
		Size:  rt.Size(),
		Name:  name,
		Hash:  xxhash.Sum64String(name),
		rtype: rt,
	}
	r.types[rt] = t
	r.byID = append(r.byID, t)
	return t
}

// Lookup is the fallible form of ResolveType: it reports whether rt has been
// seen before and never registers anything.
func (r *Registry) Lookup(rt reflect.Type) (ComponentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[rt]
	return t, ok
}

// TypeByID returns the descriptor previously assigned id.
func (r *Registry) TypeByID(id ComponentID) (ComponentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.byID) {
		return ComponentType{}, ErrTypeNotRegistered
	}
	return r.byID[id], nil
}

// Len returns the number of registered component types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// typeByID is TypeByID for internal callers that hold ids obtained from this
// registry, where a miss is impossible.
func (r *Registry) typeByID(id ComponentID) ComponentType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

func typeName(rt reflect.Type) string {
	if pkg := rt.PkgPath(); pkg != "" {
		return pkg + "." + rt.Name()
	}
	return rt.String()
}
