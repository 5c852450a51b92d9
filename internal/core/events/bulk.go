package events

import (
	"github.com/AlexisPollonni/Arch/internal/core/ecs"
	"github.com/AlexisPollonni/Arch/pkg/generic"
)

// slotScratch recycles the occupied-slot buffers the bulk walk expands
// chunk bitmaps into, keeping the per-chunk walk allocation-free.
var slotScratch = generic.NewPool(func() []int {
	return make([]int, 0, ecs.MaxChunkCapacity)
})

// NotifyComponentAddedBulk publishes one ComponentAdded per entity occupying
// the range, walking storage chunks directly instead of re-entering the
// per-entity lookup path. Chunks are visited in storage order, which
// subscribers must not rely on; slots within a chunk are strictly ascending.
// Externally the result is indistinguishable from issuing the equivalent
// single-entity notifications one by one.
//
// The first handler error stops the remaining entities of the bulk call and
// is returned; notifications already delivered stand, as does the storage
// change that preceded the call.
func NotifyComponentAddedBulk(n *Notifier, r ecs.Range, t ecs.ComponentType) error {
	if !Enabled {
		return nil
	}
	return bulkNotify(r, func(e ecs.Entity) error {
		return Publish(n.bus, ComponentAdded{Type: t, Entity: e})
	})
}

// NotifyComponentRemovedBulk is the removal counterpart of
// NotifyComponentAddedBulk, with the same ordering and fault semantics.
func NotifyComponentRemovedBulk(n *Notifier, r ecs.Range, t ecs.ComponentType) error {
	if !Enabled {
		return nil
	}
	return bulkNotify(r, func(e ecs.Entity) error {
		return Publish(n.bus, ComponentRemoved{Type: t, Entity: e})
	})
}

func bulkNotify(r ecs.Range, emit func(ecs.Entity) error) error {
	slots := slotScratch.Get()
	defer func() { slotScratch.Put(slots[:0]) }()

	it := r.Chunks()
	for it.Next() {
		c := it.Chunk()
		if c.Len() == 0 {
			continue
		}
		slots = c.Slots(slots[:0])
		for _, s := range slots {
			if err := emit(c.EntityAt(s)); err != nil {
				return err
			}
		}
	}
	return nil
}
