package pool

import "fmt"

// Handle identifies an object stored in a Store. It addresses the
// object by size class, pool index and slot index instead of by raw
// memory address, so it stays valid for as long as the object exists.
type Handle struct {
	size uint8
	pool int
	slot int
}

// Store is a size-classed object store built on top of Pool. It
// contains one sizedPool per object size, created on demand, and it
// picks the slot for every added object itself: the lowest free slot
// of the lowest pool that still has room.
//
// Like Pool, a Store is not safe for concurrent use.
type Store struct {
	sizedPools map[uint8]*sizedPool
	cfg        StoreConfig
}

// NewStore initializes a new store with the given configuration and
// returns it as a value.
func NewStore(cfg StoreConfig) Store {
	return Store{
		sizedPools: make(map[uint8]*sizedPool),
		cfg:        cfg,
	}
}

// Add copies obj into the sized pool of the matching size class,
// growing the store by a whole pool if necessary.
// On success it returns the handle of the added object.
func (o *Store) Add(obj []byte) (Handle, error) {
	// we only deal with objects up to a size of 255
	if len(obj) == 0 || len(obj) > 255 {
		return Handle{}, fmt.Errorf("Store: Add failed because size of object (%d) is outside limits (1-%d)", len(obj), 255)
	}

	size := uint8(len(obj))

	// get correct pool based on size of object
	// if not found, create new pool for that size
	sp, ok := o.sizedPools[size]
	if !ok {
		sp = newSizedPool(size, o.cfg)
		o.sizedPools[size] = sp
	}

	return sp.add(obj)
}

// Get retrieves the object identified by h.
// On failure the second returned value is the error.
func (o *Store) Get(h Handle) ([]byte, error) {
	sp, ok := o.sizedPools[h.size]
	if !ok {
		return nil, fmt.Errorf("Store: Get failed because no pool exists for size %d", h.size)
	}
	return sp.get(h)
}

// Delete releases the slot of the object identified by h so it can be
// reused. On success it returns nil, otherwise it returns an error.
func (o *Store) Delete(h Handle) error {
	sp, ok := o.sizedPools[h.size]
	if !ok {
		return fmt.Errorf("Store: Delete failed because no pool exists for size %d", h.size)
	}
	return sp.delete(h)
}

// Search searches for the given value in the accordingly sized pool.
// On success it returns the object's handle and true.
func (o *Store) Search(searching []byte) (Handle, bool) {
	if len(searching) == 0 || len(searching) > 255 {
		return Handle{}, false
	}

	sp, ok := o.sizedPools[uint8(len(searching))]
	if !ok {
		// there is no pool for the size of the searched object,
		// so we can directly give up
		return Handle{}, false
	}

	return sp.search(searching)
}

// Close unmaps all payload arenas. Handles obtained from the store
// are invalid afterwards, but the store itself can be reused.
func (o *Store) Close() error {
	for _, sp := range o.sizedPools {
		if err := sp.close(); err != nil {
			return err
		}
	}
	o.sizedPools = make(map[uint8]*sizedPool)
	return nil
}
