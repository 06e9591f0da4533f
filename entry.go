package pool

// noIdx marks the absence of a neighbor link in the free list.
const noIdx = -1

// entry is a single slot of a Pool. It is a two-state variant: either
// it holds payload data, or it is free and carries the indices of its
// free-list neighbors. Links are slot indices rather than pointers,
// the pool's slot array is the only memory involved.
type entry struct {
	data     []byte
	prev     int
	next     int
	occupied bool
}

// Entry is a read-only view of a slot, obtained via Pool.Entry.
// It is a snapshot; it does not track later mutations of the pool.
type Entry struct {
	data     []byte
	prev     int
	next     int
	occupied bool
}

// Occupied reports whether the slot holds payload data.
func (e Entry) Occupied() bool {
	return e.occupied
}

// Data returns the payload of an occupied slot, or nil for a free one.
func (e Entry) Data() []byte {
	return e.data
}

// Prev returns the index of the preceding free slot in the free list.
// The second return value is false for occupied slots and for the
// head of the free list.
func (e Entry) Prev() (int, bool) {
	if e.occupied || e.prev == noIdx {
		return 0, false
	}
	return e.prev, true
}

// Next returns the index of the following free slot in the free list.
// The second return value is false for occupied slots and for the
// last free slot.
func (e Entry) Next() (int, bool) {
	if e.occupied || e.next == noIdx {
		return 0, false
	}
	return e.next, true
}
