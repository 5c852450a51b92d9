package ecs

import "math/bits"

// Mask is a 256-bit component composition bitmask. Bit i is set when the
// component type with ID i is part of the composition. Mask is a plain value
// and is usable as a map key, which is how a Table indexes its archetypes.
type Mask [4]uint64

// Set marks id as part of the composition.
func (m *Mask) Set(id ComponentID) {
	m[id>>6] |= 1 << (id & 63)
}

// Clear removes id from the composition.
func (m *Mask) Clear(id ComponentID) {
	m[id>>6] &^= 1 << (id & 63)
}

// Has reports whether id is part of the composition.
func (m Mask) Has(id ComponentID) bool {
	return m[id>>6]&(1<<(id&63)) != 0
}

// With returns a copy of m with id set.
func (m Mask) With(id ComponentID) Mask {
	m.Set(id)
	return m
}

// Without returns a copy of m with id cleared.
func (m Mask) Without(id ComponentID) Mask {
	m.Clear(id)
	return m
}

// Count returns the number of component types in the composition.
func (m Mask) Count() int {
	return bits.OnesCount64(m[0]) + bits.OnesCount64(m[1]) +
		bits.OnesCount64(m[2]) + bits.OnesCount64(m[3])
}
