package ecs

import (
	"math/bits"
	"reflect"
	"unsafe"
)

const (
	// DefaultChunkCapacity is the slot count of a chunk unless the owning
	// table was configured otherwise.
	DefaultChunkCapacity = 256
	// MaxChunkCapacity bounds configurable capacities; the occupancy bitmap
	// is sized for it.
	MaxChunkCapacity = 256

	occupancyWords = MaxChunkCapacity / 64
)

// Chunk is a fixed-capacity block of rows inside an archetype. Component
// values live in one contiguous column per component type; entity handles
// live in a parallel slice.
//
// Occupancy is tracked per slot: destroying an entity clears its bit and
// leaves a gap, the next insert into the chunk reuses the lowest free slot.
// Column bytes of a slot are meaningful only while its occupancy bit is set.
type Chunk struct {
	entities []Entity
	columns  [MaxComponentTypes]unsafe.Pointer
	occupied [occupancyWords]uint64
	len      int
	cap      int
}

func newChunk(capacity int, types []ComponentType) *Chunk {
	c := &Chunk{
		entities: make([]Entity, capacity),
		cap:      capacity,
	}
	for _, t := range types {
		// One typed backing array per column keeps the GC precise even for
		// pointer-carrying component types.
		c.columns[t.ID] = reflect.New(reflect.ArrayOf(capacity, t.rtype)).UnsafePointer()
	}
	return c
}

// Len reports the number of occupied slots.
func (c *Chunk) Len() int {
	return c.len
}

// Cap reports the slot capacity.
func (c *Chunk) Cap() int {
	return c.cap
}

// EntityAt returns the entity occupying slot. The result is meaningful only
// for occupied slots.
func (c *Chunk) EntityAt(slot int) Entity {
	return c.entities[slot]
}

// Slots appends the occupied slot indices to buf in ascending order and
// returns the extended slice. Callers on hot paths pass a recycled buffer.
func (c *Chunk) Slots(buf []int) []int {
	for w := range c.occupied {
		word := c.occupied[w]
		for word != 0 {
			buf = append(buf, w*64+bits.TrailingZeros64(word))
			word &= word - 1
		}
	}
	return buf
}

func (c *Chunk) full() bool {
	return c.len == c.cap
}

// insert claims the lowest free slot for e and returns it, or -1 when the
// chunk is full.
func (c *Chunk) insert(e Entity) int {
	for w := range c.occupied {
		free := ^c.occupied[w]
		if free == 0 {
			continue
		}
		slot := w*64 + bits.TrailingZeros64(free)
		if slot >= c.cap {
			break
		}
		c.occupied[w] |= 1 << uint(slot&63)
		c.entities[slot] = e
		c.len++
		return slot
	}
	return -1
}

// remove vacates slot. Column bytes are left in place; occupancy governs
// their validity.
func (c *Chunk) remove(slot int) {
	c.occupied[slot>>6] &^= 1 << uint(slot&63)
	c.entities[slot] = Entity{}
	c.len--
}

// valuePtr addresses the component value of type t stored at slot.
func (c *Chunk) valuePtr(t ComponentType, slot int) unsafe.Pointer {
	return unsafe.Add(c.columns[t.ID], uintptr(slot)*t.Size)
}

func memCopy(dst, src unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), size), unsafe.Slice((*byte)(src), size))
}
