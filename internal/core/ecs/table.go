package ecs

import (
	"reflect"
	"unsafe"
)

// Table is the archetype storage engine: it owns every entity row, keyed by
// composition mask, and performs the structural moves between archetypes.
//
// A Table is purely storage. It publishes nothing and holds no locks; callers
// that mutate concurrently must serialize around it themselves.
type Table struct {
	reg      *Registry
	chunkCap int
	byMask   map[Mask]*Archetype
	empty    *Archetype
	metas    []meta
	free     []uint32
}

// NewTable returns an empty table storing rows in chunks of chunkCapacity
// slots. A non-positive capacity selects DefaultChunkCapacity; capacities
// above MaxChunkCapacity are a programming error.
func NewTable(reg *Registry, chunkCapacity int) *Table {
	if chunkCapacity <= 0 {
		chunkCapacity = DefaultChunkCapacity
	}
	if chunkCapacity > MaxChunkCapacity {
		panic("ecs: chunk capacity exceeds MaxChunkCapacity")
	}
	t := &Table{
		reg:      reg,
		chunkCap: chunkCapacity,
		byMask:   make(map[Mask]*Archetype),
	}
	t.empty = t.archetypeFor(Mask{})
	return t
}

// Create allocates a fresh entity with no components.
func (t *Table) Create() Entity {
	var id uint32
	if n := len(t.free); n > 0 {
		id = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		id = uint32(len(t.metas))
		t.metas = append(t.metas, meta{version: 1})
	}
	m := &t.metas[id]
	e := Entity{ID: id, Version: m.version}
	m.arch = t.empty
	m.chunk, m.slot = t.empty.insert(e)
	return e
}

// CreateN allocates n fresh entities.
func (t *Table) CreateN(n int) []Entity {
	out := make([]Entity, n)
	for i := range out {
		out[i] = t.Create()
	}
	return out
}

// Destroy removes e's row and invalidates the handle. The vacated slot stays
// a gap until a later insert reuses it.
func (t *Table) Destroy(e Entity) error {
	m, err := t.metaOf(e)
	if err != nil {
		return err
	}
	m.arch.remove(m.chunk, m.slot)
	m.arch = nil
	m.version++
	t.free = append(t.free, e.ID)
	return nil
}

// Alive reports whether e refers to a live row.
func (t *Table) Alive(e Entity) bool {
	_, err := t.metaOf(e)
	return err == nil
}

// ArchetypeOf returns the archetype currently holding e's row.
func (t *Table) ArchetypeOf(e Entity) (*Archetype, error) {
	m, err := t.metaOf(e)
	if err != nil {
		return nil, err
	}
	return m.arch, nil
}

// AddValue attaches v to e as a component of v's dynamic type.
func (t *Table) AddValue(e Entity, v any) error {
	ct := t.reg.ResolveValue(v)
	p, err := t.addDest(e, ct)
	if err != nil {
		return err
	}
	reflect.NewAt(ct.rtype, p).Elem().Set(reflect.ValueOf(v))
	return nil
}

// SetValue overwrites e's existing component of v's dynamic type.
func (t *Table) SetValue(e Entity, v any) error {
	ct := t.reg.ResolveValue(v)
	p, err := t.valueDest(e, ct)
	if err != nil {
		return err
	}
	reflect.NewAt(ct.rtype, p).Elem().Set(reflect.ValueOf(v))
	return nil
}

// RemoveType detaches the component described by ct from e.
func (t *Table) RemoveType(e Entity, ct ComponentType) error {
	m, err := t.metaOf(e)
	if err != nil {
		return err
	}
	if !m.arch.mask.Has(ct.ID) {
		return ErrComponentMissing
	}
	t.move(e, m, t.archetypeFor(m.arch.mask.Without(ct.ID)))
	return nil
}

// HasType reports whether e currently carries the component described by ct.
func (t *Table) HasType(e Entity, ct ComponentType) bool {
	m, err := t.metaOf(e)
	return err == nil && m.arch.mask.Has(ct.ID)
}

// ValueOf returns a copy of e's component described by ct, boxed.
func (t *Table) ValueOf(e Entity, ct ComponentType) (any, error) {
	m, err := t.metaOf(e)
	if err != nil {
		return nil, err
	}
	if !m.arch.mask.Has(ct.ID) {
		return nil, ErrComponentMissing
	}
	p := m.arch.chunks[m.chunk].valuePtr(ct, m.slot)
	return reflect.NewAt(ct.rtype, p).Elem().Interface(), nil
}

// MigrateAllAdd moves every row of src into the archetype that additionally
// carries add, in one step. It returns the destination range holding exactly
// the migrated rows; the added column starts zeroed (see FillRange).
func (t *Table) MigrateAllAdd(src *Archetype, add ComponentType) (Range, error) {
	if src.mask.Has(add.ID) {
		return Range{}, ErrComponentPresent
	}
	return t.migrateAll(src, t.archetypeFor(src.mask.With(add.ID))), nil
}

// MigrateAllRemove moves every row of src into the archetype without rem, in
// one step, returning the destination range of the migrated rows.
func (t *Table) MigrateAllRemove(src *Archetype, rem ComponentType) (Range, error) {
	if !src.mask.Has(rem.ID) {
		return Range{}, ErrComponentMissing
	}
	return t.migrateAll(src, t.archetypeFor(src.mask.Without(rem.ID))), nil
}

// AddComponent attaches v to e under the compile-time component type T.
func AddComponent[T any](t *Table, e Entity, v T) error {
	ct := Resolve[T](t.reg)
	p, err := t.addDest(e, ct)
	if err != nil {
		return err
	}
	*(*T)(p) = v
	return nil
}

// SetComponent overwrites e's existing component of type T with v.
func SetComponent[T any](t *Table, e Entity, v T) error {
	ct := Resolve[T](t.reg)
	p, err := t.valueDest(e, ct)
	if err != nil {
		return err
	}
	*(*T)(p) = v
	return nil
}

// RemoveComponent detaches the component of type T from e.
func RemoveComponent[T any](t *Table, e Entity) error {
	return t.RemoveType(e, Resolve[T](t.reg))
}

// GetComponent returns e's component of type T. The second result is false
// when e is dead or does not carry T. Reads never register new types.
func GetComponent[T any](t *Table, e Entity) (T, bool) {
	var zero T
	ct, ok := t.reg.Lookup(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return zero, false
	}
	m, err := t.metaOf(e)
	if err != nil || !m.arch.mask.Has(ct.ID) {
		return zero, false
	}
	return *(*T)(m.arch.chunks[m.chunk].valuePtr(ct, m.slot)), true
}

// HasComponent reports whether e carries a component of type T.
func HasComponent[T any](t *Table, e Entity) bool {
	ct, ok := t.reg.Lookup(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return false
	}
	return t.HasType(e, ct)
}

// FillRange writes v into the t column of every live row in r. The
// descriptor must describe T.
func FillRange[T any](r Range, t ComponentType, v T) {
	if t.rtype != reflect.TypeOf((*T)(nil)).Elem() {
		panic("ecs: FillRange descriptor does not match type parameter")
	}
	var slots []int
	it := r.Chunks()
	for it.Next() {
		c := it.Chunk()
		if c.len == 0 {
			continue
		}
		slots = c.Slots(slots[:0])
		for _, s := range slots {
			*(*T)(c.valuePtr(t, s)) = v
		}
	}
}

func (t *Table) metaOf(e Entity) (*meta, error) {
	if int(e.ID) >= len(t.metas) {
		return nil, ErrDeadEntity
	}
	m := &t.metas[e.ID]
	if m.arch == nil || m.version != e.Version {
		return nil, ErrDeadEntity
	}
	return m, nil
}

// addDest moves e into the archetype that additionally carries ct and
// returns the address of the new, not yet initialized column value. Callers
// must write it before anything else observes the row.
func (t *Table) addDest(e Entity, ct ComponentType) (unsafe.Pointer, error) {
	m, err := t.metaOf(e)
	if err != nil {
		return nil, err
	}
	if m.arch.mask.Has(ct.ID) {
		return nil, ErrComponentPresent
	}
	t.move(e, m, t.archetypeFor(m.arch.mask.With(ct.ID)))
	return m.arch.chunks[m.chunk].valuePtr(ct, m.slot), nil
}

// valueDest returns the address of e's existing ct value.
func (t *Table) valueDest(e Entity, ct ComponentType) (unsafe.Pointer, error) {
	m, err := t.metaOf(e)
	if err != nil {
		return nil, err
	}
	if !m.arch.mask.Has(ct.ID) {
		return nil, ErrComponentMissing
	}
	return m.arch.chunks[m.chunk].valuePtr(ct, m.slot), nil
}

// move relocates e's row to dst, copying the columns both archetypes share.
func (t *Table) move(e Entity, m *meta, dst *Archetype) {
	src := m.arch
	srcChunk := src.chunks[m.chunk]
	ci, slot := dst.insert(e)
	dstChunk := dst.chunks[ci]
	for _, ct := range src.types {
		if !dst.mask.Has(ct.ID) {
			continue
		}
		memCopy(dstChunk.valuePtr(ct, slot), srcChunk.valuePtr(ct, m.slot), ct.Size)
	}
	src.remove(m.chunk, m.slot)
	m.arch, m.chunk, m.slot = dst, ci, slot
}

// migrateAll relocates every row of src into chunks appended to dst, packing
// them densely in chunk order then ascending slot order. The returned range
// covers exactly the appended chunks, so rows already living in dst are
// outside it. The drained source releases its chunks; no meta references
// them once every row has left.
func (t *Table) migrateAll(src, dst *Archetype) Range {
	r := Range{arch: dst, from: len(dst.chunks)}
	if src.live == 0 {
		return r
	}
	var (
		cur    *Chunk
		curIdx int
		slots  []int
	)
	for _, sc := range src.chunks {
		if sc.len == 0 {
			continue
		}
		slots = sc.Slots(slots[:0])
		for _, s := range slots {
			if cur == nil || cur.full() {
				cur = dst.appendChunk()
				curIdx = len(dst.chunks) - 1
			}
			e := sc.entities[s]
			ns := cur.insert(e)
			for _, ct := range src.types {
				if !dst.mask.Has(ct.ID) {
					continue
				}
				memCopy(cur.valuePtr(ct, ns), sc.valuePtr(ct, s), ct.Size)
			}
			m := &t.metas[e.ID]
			m.arch, m.chunk, m.slot = dst, curIdx, ns
		}
	}
	src.chunks = nil
	dst.live += src.live
	src.live = 0
	return r
}

func (t *Table) archetypeFor(mask Mask) *Archetype {
	if a, ok := t.byMask[mask]; ok {
		return a
	}
	var types []ComponentType
	for id := 0; id < MaxComponentTypes; id++ {
		if mask.Has(ComponentID(id)) {
			types = append(types, t.reg.typeByID(ComponentID(id)))
		}
	}
	a := &Archetype{mask: mask, types: types, chunkCap: t.chunkCap}
	t.byMask[mask] = a
	return a
}
