package ecs

// Archetype groups the rows of every entity sharing one component
// composition. Rows are stored in a grown-on-demand list of chunks.
type Archetype struct {
	mask     Mask
	types    []ComponentType
	chunks   []*Chunk
	chunkCap int
	live     int
}

// Mask returns the composition mask.
func (a *Archetype) Mask() Mask {
	return a.mask
}

// Types returns the component types of the composition in column order.
// The returned slice is shared; callers must not mutate it.
func (a *Archetype) Types() []ComponentType {
	return a.types
}

// Len reports the number of live rows across all chunks.
func (a *Archetype) Len() int {
	return a.live
}

// All returns the range covering every chunk of the archetype.
func (a *Archetype) All() Range {
	return Range{arch: a}
}

func (a *Archetype) appendChunk() *Chunk {
	c := newChunk(a.chunkCap, a.types)
	a.chunks = append(a.chunks, c)
	return c
}

// insert claims a slot for e, appending a chunk when every existing one is
// full, and returns the row's position.
func (a *Archetype) insert(e Entity) (chunkIdx, slot int) {
	for i, c := range a.chunks {
		if !c.full() {
			a.live++
			return i, c.insert(e)
		}
	}
	c := a.appendChunk()
	a.live++
	return len(a.chunks) - 1, c.insert(e)
}

func (a *Archetype) remove(chunkIdx, slot int) {
	a.chunks[chunkIdx].remove(slot)
	a.live--
}

// Range is a contiguous span of an archetype's storage: all chunks from a
// start index through the end. A whole archetype is the range starting at
// chunk zero; a bulk migration returns the range of chunks it appended.
type Range struct {
	arch *Archetype
	from int
}

// Len reports the number of live rows inside the range.
func (r Range) Len() int {
	if r.arch == nil {
		return 0
	}
	n := 0
	for _, c := range r.arch.chunks[r.from:] {
		n += c.len
	}
	return n
}

// Chunks returns a restartable iterator over the chunks of the range.
func (r Range) Chunks() *ChunkIter {
	var chunks []*Chunk
	if r.arch != nil {
		chunks = r.arch.chunks[r.from:]
	}
	return &ChunkIter{chunks: chunks, pos: -1}
}

// ChunkIter walks the chunks of a Range in storage order.
//
//	it := rng.Chunks()
//	for it.Next() {
//		c := it.Chunk()
//	}
type ChunkIter struct {
	chunks []*Chunk
	pos    int
}

// Next advances the iterator and reports whether a chunk is available.
func (it *ChunkIter) Next() bool {
	it.pos++
	return it.pos < len(it.chunks)
}

// Chunk returns the current chunk. Valid only after Next reported true.
func (it *ChunkIter) Chunk() *Chunk {
	return it.chunks[it.pos]
}

// Reset rewinds the iterator for another pass.
func (it *ChunkIter) Reset() {
	it.pos = -1
}
