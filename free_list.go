package pool

// unlink removes the free slot at idx from the free list. The slot
// carries its own neighbor links, so no traversal is needed.
func (p *Pool) unlink(idx int) {
	e := p.entries[idx]

	if p.firstFree == idx {
		p.firstFree = e.next
	}
	if e.prev != noIdx {
		p.entries[e.prev].next = e.next
	}
	if e.next != noIdx {
		p.entries[e.next].prev = e.prev
	}
}

// insertFree links the slot at idx back into the free list at its
// sorted position, keeping the list strictly ascending by index.
// The insertion point is found by walking from the head until the
// next link would overshoot idx, so the cost grows with the number
// of free slots before idx.
func (p *Pool) insertFree(idx int) {
	if p.firstFree == noIdx {
		p.entries[idx] = entry{prev: noIdx, next: noIdx}
		p.firstFree = idx
		return
	}

	head := p.firstFree
	if idx < head {
		p.entries[head].prev = idx
		p.entries[idx] = entry{prev: noIdx, next: head}
		p.firstFree = idx
		return
	}

	cur := head
	for p.entries[cur].next != noIdx && p.entries[cur].next < idx {
		cur = p.entries[cur].next
	}

	next := p.entries[cur].next
	p.entries[cur].next = idx
	if next != noIdx {
		p.entries[next].prev = idx
	}
	p.entries[idx] = entry{prev: cur, next: next}
}

// FreeIterator walks the free list of a Pool in ascending index
// order. It reads the pool lazily, so slots filled or released during
// iteration affect the remaining traversal.
type FreeIterator struct {
	pool    *Pool
	current int
}

// FreeIndexes returns an iterator over the indices of all free slots
// in ascending order. Each call starts a fresh traversal from the
// current head of the free list.
func (p *Pool) FreeIndexes() *FreeIterator {
	return &FreeIterator{pool: p, current: p.firstFree}
}

// Next returns the next free index. The second return value is false
// once the traversal is exhausted. A slot whose next link points back
// to itself means the list is corrupted, the iterator treats it as
// the end of the list instead of looping forever.
func (it *FreeIterator) Next() (int, bool) {
	cur := it.current
	if cur < 0 || cur >= len(it.pool.entries) {
		return 0, false
	}

	e := it.pool.entries[cur]
	if e.occupied {
		return 0, false
	}
	if e.next == cur {
		// stuck in a loop
		it.current = noIdx
		return 0, false
	}

	it.current = e.next
	return cur, true
}

// Collect drains the iterator into a slice.
func (it *FreeIterator) Collect() []int {
	var indexes []int
	for idx, ok := it.Next(); ok; idx, ok = it.Next() {
		indexes = append(indexes, idx)
	}
	return indexes
}
