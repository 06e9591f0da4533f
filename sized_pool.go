package pool

import (
	"bytes"
	"fmt"
	"math"
	"syscall"

	"github.com/willf/bitset"
)

// sizedPool manages all pools holding objects of one size. The pool
// list is append-only: a pool's index never changes, so handles stay
// valid until the store is closed. Payload memory is one anonymous
// mmap arena per pool, sliced into objSize-wide cells.
type sizedPool struct {
	objSize   uint8
	pools     []*Pool
	arenas    [][]byte
	freePools *bitset.BitSet // bit i set = pools[i] has at least one free slot
	cfg       StoreConfig
}

// newSizedPool initializes a sized pool for the given object size and
// returns a pointer to it. No memory is mapped until the first add.
func newSizedPool(objSize uint8, cfg StoreConfig) *sizedPool {
	return &sizedPool{
		objSize:   objSize,
		freePools: bitset.New(0),
		cfg:       cfg,
	}
}

// poolCapacity returns the slot count for the n-th pool. Capacities
// grow geometrically so that heavily used size classes end up with
// bigger pools instead of long pool lists.
func (s *sizedPool) poolCapacity(n int) int {
	capacity := int(float64(s.cfg.BaseSlotsPerPool) * math.Pow(s.cfg.GrowthFactor, float64(n)))
	if capacity < 1 {
		capacity = 1
	}
	return capacity
}

// addPool maps a payload arena for one more pool and appends it.
// On success the first returned value is the index of the new pool.
func (s *sizedPool) addPool() (int, error) {
	capacity := s.poolCapacity(len(s.pools))

	arena, err := syscall.Mmap(-1, 0, capacity*int(s.objSize), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_ANON|syscall.MAP_PRIVATE)
	if err != nil {
		return 0, err
	}

	s.pools = append(s.pools, New(capacity))
	s.arenas = append(s.arenas, arena)

	idx := len(s.pools) - 1
	s.freePools.Set(uint(idx))
	return idx, nil
}

// add copies obj into the lowest free slot of the lowest pool that
// still has room, adding a new pool when all existing ones are full.
func (s *sizedPool) add(obj []byte) (Handle, error) {
	poolIdx, found := s.freePools.NextSet(0)
	if !found {
		added, err := s.addPool()
		if err != nil {
			return Handle{}, err
		}
		poolIdx = uint(added)
	}

	p := s.pools[poolIdx]
	slot, ok := p.FirstFree()
	if !ok {
		return Handle{}, fmt.Errorf("Store: add failed because pool %d was tracked as free but is full", poolIdx)
	}

	offset := slot * int(s.objSize)
	cell := s.arenas[poolIdx][offset : offset+int(s.objSize)]
	copy(cell, obj)
	p.Fill(slot, cell)

	// the pool may just have run full
	if _, ok := p.FirstFree(); !ok {
		s.freePools.Clear(poolIdx)
	}

	return Handle{size: s.objSize, pool: int(poolIdx), slot: slot}, nil
}

// get returns the payload of the object identified by h.
func (s *sizedPool) get(h Handle) ([]byte, error) {
	if h.pool < 0 || h.pool >= len(s.pools) {
		return nil, fmt.Errorf("Store: Get failed because pool %d does not exist for size %d", h.pool, h.size)
	}

	e, ok := s.pools[h.pool].Entry(h.slot)
	if !ok || !e.Occupied() {
		return nil, fmt.Errorf("Store: Get failed because slot %d of pool %d holds no object", h.slot, h.pool)
	}

	return e.Data(), nil
}

// delete releases the slot of the object identified by h.
func (s *sizedPool) delete(h Handle) error {
	if h.pool < 0 || h.pool >= len(s.pools) {
		return fmt.Errorf("Store: Delete failed because pool %d does not exist for size %d", h.pool, h.size)
	}

	if _, ok := s.pools[h.pool].Release(h.slot); !ok {
		return fmt.Errorf("Store: Delete failed because slot %d is out of range for pool %d", h.slot, h.pool)
	}

	s.freePools.Set(uint(h.pool))
	return nil
}

// search scans all pools of this size class for an object equal to
// searching. When found it returns the object's handle and true,
// otherwise the second returned value is false.
func (s *sizedPool) search(searching []byte) (Handle, bool) {
	for poolIdx, p := range s.pools {
		for slot := 0; slot < p.Size(); slot++ {
			e, _ := p.Entry(slot)
			if e.Occupied() && bytes.Equal(e.Data(), searching) {
				return Handle{size: s.objSize, pool: poolIdx, slot: slot}, true
			}
		}
	}
	return Handle{}, false
}

// close unmaps all payload arenas of this size class.
func (s *sizedPool) close() error {
	for _, arena := range s.arenas {
		if err := syscall.Munmap(arena); err != nil {
			return err
		}
	}
	s.arenas = nil
	s.pools = nil
	s.freePools = bitset.New(0)
	return nil
}
