package hyperlimit

import (
	"bytes"
	"sync"
	"sync/atomic"
)

const minBucketCount = 1024

// maxLinearProbes bounds how many consecutive slots are probed before the
// secondary stride kicks in, matching spec §4.1's "8 collisions" rule.
const maxLinearProbes = 8

// bucketTable is the open-addressed array of entry slots, published as a
// single value behind an atomic pointer so that resize is one atomic
// pointer swap. Readers load the table once per operation and probe
// against that stable snapshot; they never observe a half-resized table.
type bucketTable struct {
	slots []atomic.Pointer[entry]
	mask  uint32
}

func newBucketTable(count int) *bucketTable {
	count = nextPowerOfTwo(count)
	if count < minBucketCount {
		count = minBucketCount
	}
	return &bucketTable{
		slots: make([]atomic.Pointer[entry], count),
		mask:  uint32(count - 1),
	}
}

func nextPowerOfTwo(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// slotInvalid reports whether a loaded slot counts as empty for probing
// purposes: either truly never used (nil) or tombstoned (valid=false).
func slotInvalid(e *entry) bool {
	return e == nil || !e.valid.Load()
}

// find probes tbl for key and returns the live entry, or nil if absent.
// Lock-free: only atomic loads, safe to call concurrently with resize and
// with createOrReplace (which always installs a fully-formed entry before
// publishing its pointer).
func (tbl *bucketTable) find(key []byte) *entry {
	h := hashKey(key)
	idx := h & tbl.mask
	stride := probeStride(h)
	probes := uint32(0)

	for {
		e := tbl.slots[idx].Load()
		if slotInvalid(e) {
			return nil
		}
		if bytes.Equal(e.key, key) {
			return e
		}

		probes++
		if probes > maxLinearProbes {
			idx = (idx + stride) & tbl.mask
		} else {
			idx = (idx + 1) & tbl.mask
		}
		if probes >= uint32(len(tbl.slots)) {
			return nil
		}
	}
}

// registryTable owns the live bucketTable pointer plus the administrative
// machinery (single-writer resize, create/remove serialization) that sits
// above it. The hot path (Registry.TryRequest) only ever calls find, never
// takes createMu.
type registryTable struct {
	ptr      atomic.Pointer[bucketTable]
	createMu sync.Mutex
}

func newRegistryTable(bucketCount int) *registryTable {
	rt := &registryTable{}
	rt.ptr.Store(newBucketTable(bucketCount))
	return rt
}

func (rt *registryTable) load() *bucketTable {
	return rt.ptr.Load()
}

func (rt *registryTable) find(key []byte) *entry {
	return rt.load().find(key)
}

// createOrReplace installs a new entry for key, replacing any existing
// valid entry's policy atomically (the slot's pointer, never its fields,
// changes) or reusing the earliest tombstoned/empty slot it saw while
// probing. Resizes and retries if the whole table was probed without a
// usable slot. Serialized against other writers by createMu; never blocks
// concurrent find/TryRequest callers.
func (rt *registryTable) createOrReplace(e *entry) {
	rt.createMu.Lock()
	defer rt.createMu.Unlock()

	for {
		tbl := rt.load()
		h := hashKey(e.key)
		idx := h & tbl.mask
		stride := probeStride(h)
		probes := uint32(0)
		firstInvalid := int64(-1)

		for probes < uint32(len(tbl.slots)) {
			cur := tbl.slots[idx].Load()
			if slotInvalid(cur) {
				if firstInvalid < 0 {
					firstInvalid = int64(idx)
				}
			} else if bytes.Equal(cur.key, e.key) {
				tbl.slots[idx].Store(e)
				return
			}

			probes++
			if probes > maxLinearProbes {
				idx = (idx + stride) & tbl.mask
			} else {
				idx = (idx + 1) & tbl.mask
			}
		}

		if firstInvalid >= 0 {
			tbl.slots[firstInvalid].Store(e)
			return
		}

		rt.resize()
		// loop and retry against the newly published, larger table
	}
}

// remove tombstones the entry for key, if present. Does not compact; the
// slot's slot stays populated with valid=false so later probes can still
// stop correctly, and createOrReplace can reclaim it.
func (rt *registryTable) remove(key []byte) {
	e := rt.find(key)
	if e != nil {
		e.valid.Store(false)
	}
}

// resize doubles the table and rehashes every valid entry into the new
// array, then publishes it with a single atomic pointer store. Must be
// called with createMu held. Goroutines that loaded the old table before
// the swap keep probing it safely to completion; Go's GC reclaims it once
// they are done, so there is no unsafe free and no epoch/hazard-pointer
// bookkeeping required.
func (rt *registryTable) resize() {
	old := rt.load()
	newTbl := newBucketTable(len(old.slots) * 2)

	for i := range old.slots {
		e := old.slots[i].Load()
		if slotInvalid(e) {
			continue
		}
		h := hashKey(e.key)
		idx := h & newTbl.mask
		stride := probeStride(h)
		probes := uint32(0)
		for !newTbl.slots[idx].CompareAndSwap(nil, e) {
			probes++
			if probes > maxLinearProbes {
				idx = (idx + stride) & newTbl.mask
			} else {
				idx = (idx + 1) & newTbl.mask
			}
		}
	}

	rt.ptr.Store(newTbl)
}
