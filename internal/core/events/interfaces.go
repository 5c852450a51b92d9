// Package events is the lifecycle notification core of the runtime: a
// per-kind synchronous publish/subscribe bus, the notifier that the storage
// layer calls after every mutation, and the bulk path that walks archetype
// chunks after whole-range structural changes.
//
// Key characteristics:
//   - Synchronous delivery: Publish runs every matching handler on the caller
//     goroutine, in subscription order, before returning. Nothing is queued.
//   - Fail-stop per publish: the first handler error aborts the remaining
//     handlers of that call and is returned to the mutating caller. The
//     mutation itself is never rolled back; it was applied before publishing.
//   - Per-world state: every Bus is an independent instance owned by one
//     world. There is no process-global subscriber list.
//   - Read-optimized: subscriber lists are copy-on-write; Publish takes a
//     read lock only long enough to snapshot a slice.
//   - Build-time removal: compiling with the arch_noevents tag turns every
//     notify operation into a constant-folded no-op.
package events

import (
	"reflect"

	"github.com/AlexisPollonni/Arch/internal/core/ecs"
)

// TypeResolver bridges compile-time component types and runtime values to
// ComponentType descriptors. *ecs.Registry satisfies it; tests substitute
// counting fakes.
//
// Resolution failures are the resolver's to surface (fail fast); the
// notifier performs no recovery.
type TypeResolver interface {
	// ResolveType returns the descriptor for a compile-time type.
	ResolveType(rt reflect.Type) ecs.ComponentType
	// ResolveValue returns the descriptor for v's dynamic type.
	ResolveValue(v any) ecs.ComponentType
}

// Observer is notified around deliveries. Observers should return quickly;
// they run on the publishing goroutine. Metrics are accumulated only while
// at least one observer is registered, keeping the unobserved publish path
// free of bookkeeping.
type Observer interface {
	OnPublish(kind Kind)
	OnDelivered(kind Kind, handlers int, err error, durationMicros int64)
}

// Metrics is a snapshot of bus counters. All zero unless an observer was
// registered during the counted activity.
type Metrics struct {
	Published   uint64
	Delivered   uint64
	Faults      uint64
	Subscribers uint64
}
