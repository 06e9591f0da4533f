// Package pool implements a fixed-capacity slot allocator.
//
// A Pool preallocates a fixed number of payload slots. Every slot is
// either occupied or free, and all free slots are chained into an
// intrusive doubly-linked list that is embedded in the slot array
// itself and kept sorted by slot index at all times. Filling a slot
// is O(1) because a free slot already knows its neighbors, releasing
// a slot is O(k) where k is the number of free slots before the
// insertion point.
//
// On top of Pool the package provides Store, a size-classed object
// store which picks slots for the caller and addresses objects
// through opaque handles.
package pool

import (
	"fmt"
	"strconv"
	"strings"
)

// Pool is a preallocated array of payload slots with an index-sorted
// free list. The zero value is not usable, use New.
//
// A Pool is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access externally.
type Pool struct {
	entries   []entry
	firstFree int
}

// New creates a Pool with the given number of slots. All slots start
// out free, linked in ascending index order. A size of 0 is valid and
// yields a pool that is permanently full.
func New(size int) *Pool {
	p := &Pool{
		entries:   make([]entry, size),
		firstFree: noIdx,
	}
	for i := range p.entries {
		p.entries[i].prev = i - 1
		p.entries[i].next = i + 1
	}
	if size > 0 {
		p.entries[size-1].next = noIdx
		p.firstFree = 0
	}
	return p
}

// Size returns the fixed number of slots in the pool.
func (p *Pool) Size() int {
	return len(p.entries)
}

// FirstFree returns the index of the lowest free slot.
// The second return value is false when the pool is full.
func (p *Pool) FirstFree() (int, bool) {
	if p.firstFree == noIdx {
		return 0, false
	}
	return p.firstFree, true
}

// Entry returns a read-only view of the slot at idx.
// The second return value is false when idx is out of range.
func (p *Pool) Entry(idx int) (Entry, bool) {
	if idx < 0 || idx >= len(p.entries) {
		return Entry{}, false
	}
	e := p.entries[idx]
	return Entry{data: e.data, prev: e.prev, next: e.next, occupied: e.occupied}, true
}

// Fill writes data into the slot at idx and returns idx. If the slot
// was free it is unlinked from the free list first, if it already held
// data the payload is overwritten in place and the free list is left
// untouched. Out-of-range requests are ignored, the second return
// value is false and nothing is mutated.
func (p *Pool) Fill(idx int, data []byte) (int, bool) {
	if idx < 0 || idx >= len(p.entries) {
		return 0, false
	}

	e := &p.entries[idx]
	if e.occupied {
		e.data = data
		return idx, true
	}

	p.unlink(idx)
	*e = entry{data: data, prev: noIdx, next: noIdx, occupied: true}

	return idx, true
}

// Release marks the slot at idx free, re-inserting it into the free
// list at its sorted position and dropping its payload. Releasing an
// already free slot changes nothing. Out-of-range requests are
// ignored, the second return value is false and nothing is mutated.
func (p *Pool) Release(idx int) (int, bool) {
	if idx < 0 || idx >= len(p.entries) {
		return 0, false
	}

	if p.entries[idx].occupied {
		p.insertFree(idx)
	}

	return idx, true
}

// String creates a multi-line string which illustrates the pool's
// slot states and free-list linkage in a human-readable format.
func (p *Pool) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "-------------------------------\n")
	fmt.Fprintf(&b, "Pool Size: %d\n", len(p.entries))
	fmt.Fprintf(&b, "First Free: %s\n", linkString(p.firstFree))

	for i, e := range p.entries {
		if e.occupied {
			fmt.Fprintf(&b, "% 3d: occupied (%d bytes)\n", i, len(e.data))
			continue
		}
		fmt.Fprintf(&b, "% 3d: free (prev: %s, next: %s)\n", i, linkString(e.prev), linkString(e.next))
	}

	return b.String()
}

func linkString(idx int) string {
	if idx == noIdx {
		return "none"
	}
	return strconv.Itoa(idx)
}
