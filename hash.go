package hyperlimit

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hashSeed is a fixed constant mixed into every key before hashing, matching
// the fixed-seed requirement of the bucket table's mixing function. The
// exact value is arbitrary; only its fixedness across process lifetimes
// matters for the table's probing behavior.
const hashSeed uint64 = 0x12345678_9e3779b9

var hashSeedBytes = func() [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], hashSeed)
	return b
}()

// hashKey mixes key into a 32-bit value used both as the initial table
// index and, after an >>16|1 fold, as the probing stride. xxhash64 is used
// as the underlying mixer for speed; folding the two halves together keeps
// the table index sensitive to all 64 bits rather than only the low 32.
func hashKey(key []byte) uint32 {
	d := xxhash.New()
	d.Write(hashSeedBytes[:])
	d.Write(key)
	h := d.Sum64()
	return uint32(h) ^ uint32(h>>32)
}

// probeStride derives the secondary probing stride from a key's hash, used
// after 8 failed linear probes to break up clustering. Always odd so it is
// coprime with a power-of-two table size and eventually visits every slot.
func probeStride(h uint32) uint32 {
	return (h >> 16) | 1
}
