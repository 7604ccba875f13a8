// Package unique implements a weak hash-consing table: a map from a
// structural hash to the single live, canonical instance of a value with
// that structure, held by weak reference so the table itself never keeps
// a dead value alive.
//
// Table is the mechanism behind every "two equal values are the same
// pointer" guarantee in this module (nodes, and independently
// homomorphisms). The table does not know how to compare values of type
// T; callers supply both the structural hash and an equality predicate at
// every Insert, the same way a Go map's bucket chain would, except the
// chain here holds weak.Pointer[T] rather than T itself.
package unique

import (
	"cmp"
	"slices"
	"weak"
)

const minBuckets = 16

// loadFactorNum/Den bounds the overestimate count (see Stats) against the
// bucket count before a rehash is triggered; chained dead weak pointers
// are only reclaimed at that point, never eagerly.
const (
	loadFactorNum = 8
	loadFactorDen = 10
)

type slot[T any] struct {
	hash uint64
	ptr  weak.Pointer[T]
}

// Table is a weak hash-consing table for values of type T. It is not
// safe for concurrent use; callers serialize access the same way a
// Factory serializes access to its own unique table.
type Table[T any] struct {
	buckets      [][]slot[T]
	overestimate int // live entries at the last rehash, plus inserts, minus Removes since then; includes ones since collected
	total        int64
}

// New returns an empty table ready for use.
func New[T any]() *Table[T] {
	return &Table[T]{buckets: make([][]slot[T], minBuckets)}
}

// Insert looks up an entry with the given hash for which eq reports true
// among still-live weak references. If found, it returns that survivor
// and false. Otherwise x is inserted as the new canonical entry for hash
// and (x, true) is returned.
//
// x must not be mutated afterward: every other holder of the same
// logical value now expects to receive this exact pointer back from a
// future Insert with matching hash and eq.
func (t *Table[T]) Insert(hash uint64, x *T, eq func(*T) bool) (canonical *T, inserted bool) {
	idx := t.bucketIndex(hash)
	for _, s := range t.buckets[idx] {
		if s.hash != hash {
			continue
		}
		if v := s.ptr.Value(); v != nil && eq(v) {
			return v, false
		}
	}

	t.buckets[idx] = append(t.buckets[idx], slot[T]{hash: hash, ptr: weak.Make(x)})
	t.overestimate++
	t.total++

	if t.overestimate*loadFactorDen > len(t.buckets)*loadFactorNum {
		t.rehash(len(t.buckets) * 2)
	}
	return x, true
}

// Remove evicts the entry for x, if x is still the live survivor under
// hash. It is not required for correctness (a collected weak pointer is
// simply skipped on the next lookup and reclaimed at the next rehash),
// but lets a caller shrink the table eagerly when it knows x is the last
// strong reference about to go away.
func (t *Table[T]) Remove(hash uint64, x *T) {
	idx := t.bucketIndex(hash)
	bucket := t.buckets[idx]
	for i, s := range bucket {
		if s.hash == hash && s.ptr.Value() == x {
			t.buckets[idx] = slices.Delete(bucket, i, i+1)
			t.overestimate--
			return
		}
	}
}

func (t *Table[T]) bucketIndex(hash uint64) int {
	return int(hash % uint64(len(t.buckets)))
}

func (t *Table[T]) rehash(newSize int) {
	next := make([][]slot[T], newSize)
	live := 0
	for _, bucket := range t.buckets {
		for _, s := range bucket {
			if s.ptr.Value() == nil {
				continue
			}
			idx := int(s.hash % uint64(newSize))
			next[idx] = append(next[idx], s)
			live++
		}
	}
	t.buckets = next
	t.overestimate = live
}

// All iterates every still-live entry in ascending (hash, bucket-index)
// order. The order is deterministic for a given table content (the same
// hashes in the same buckets) but carries no domain significance; it is
// only as stable across runs as the hashes the caller supplies.
func (t *Table[T]) All(yield func(*T) bool) {
	type entry struct {
		hash uint64
		idx  int
		ptr  weak.Pointer[T]
	}
	var entries []entry
	for idx, bucket := range t.buckets {
		for _, s := range bucket {
			entries = append(entries, entry{hash: s.hash, idx: idx, ptr: s.ptr})
		}
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.hash, b.hash); c != 0 {
			return c
		}
		return cmp.Compare(a.idx, b.idx)
	})
	for _, e := range entries {
		if v := e.ptr.Value(); v != nil {
			if !yield(v) {
				return
			}
		}
	}
}

// Stats reports the current bucket count and an overestimate of the
// number of live entries (it adds every insert and subtracts every
// explicit Remove since the last rehash, but still counts entries whose
// referent has since been collected; a rehash recomputes it exactly). Total is the running count of every Insert
// call that minted a new entry, never decremented.
func (t *Table[T]) Stats() (buckets int, overestimate int, total int64) {
	return len(t.buckets), t.overestimate, t.total
}
