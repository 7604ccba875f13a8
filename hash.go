package sfdd

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// seed is process-wide and fixed for the process lifetime: hashes only
// ever need to be stable within a single run (they key in-memory unique
// tables and caches), never across runs or processes.
var seed = maphash.MakeSeed()

// hashKey hashes an arbitrary comparable key value. maphash.Comparable
// (Go 1.24) is the only stdlib facility that hashes a generic comparable
// type without the caller supplying a hash function per K.
func hashKey[K comparable](k K) uint64 {
	return maphash.Comparable(seed, k)
}

// combineHash mixes a small, fixed sequence of structural fingerprint
// components (a node's key hash and its take/skip child hashes, or a
// homomorphism's tag and payload hashes) into one deep fingerprint.
// xxhash is used here purely as a fast, well-distributed combiner, not
// as a security property.
func combineHash(parts ...uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(buf[:], p)
		d.Write(buf[:])
	}
	return d.Sum64()
}
