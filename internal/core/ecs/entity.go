package ecs

// Entity is an opaque handle to a row tracked by a Table. The zero value
// never refers to a live row.
//
// Handles are stable for the lifetime of the entity: structural changes move
// the row between archetypes without changing the handle. Destroying the
// entity bumps the version, so stale handles held by callers are detectable
// through Table.Alive.
type Entity struct {
	ID      uint32
	Version uint32
}

// IsZero reports whether e is the zero handle.
func (e Entity) IsZero() bool {
	return e == Entity{}
}

// meta tracks where a live entity's row currently resides.
type meta struct {
	arch    *Archetype
	chunk   int
	slot    int
	version uint32
}
