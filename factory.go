package sfdd

import (
	"cmp"
	"slices"
	"unsafe"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gaissmai/sfdd/internal/unique"
)

// defaultCacheSize bounds every memoization cache a Factory owns. It is
// a fixed constant rather than a tuning knob exposed on Factory: the
// caches exist to collapse repeated sub-computations within a single
// call tree, not as a general-purpose cache a caller sizes for its
// workload. Capacity, not correctness, is what LRU eviction trades away.
const defaultCacheSize = 4096

// Factory mints and owns every Node and Homomorphism over a given key
// domain K. A Factory's zero and one terminals, its node unique table,
// its homomorphism unique table, and every memoization cache are private
// to that Factory instance; nodes and homomorphisms from two different
// Factory values must never be mixed in the same call.
//
// Factory is not safe for concurrent use.
type Factory[K cmp.Ordered] struct {
	zero *Node[K]
	one  *Node[K]

	nodeTable *unique.Table[Node[K]]
	homTable  *unique.Table[Homomorphism[K]]

	unionCache   *lru.Cache[unorderedPairKey[K], *Node[K]]
	interCache   *lru.Cache[unorderedPairKey[K], *Node[K]]
	symdiffCache *lru.Cache[unorderedPairKey[K], *Node[K]]
	subCache     *lru.Cache[orderedPairKey[K], *Node[K]]
	unionAllCache *lru.Cache[string, *Node[K]]
}

// NewFactory returns a Factory ready to mint nodes and homomorphisms
// over K.
func NewFactory[K cmp.Ordered]() *Factory[K] {
	f := &Factory[K]{
		nodeTable: unique.New[Node[K]](),
		homTable:  unique.New[Homomorphism[K]](),
	}
	f.zero = &Node[K]{f: f, term: zeroTerminal}
	f.one = &Node[K]{f: f, term: oneTerminal, count: 1}

	f.unionCache, _ = lru.New[unorderedPairKey[K], *Node[K]](defaultCacheSize)
	f.interCache, _ = lru.New[unorderedPairKey[K], *Node[K]](defaultCacheSize)
	f.symdiffCache, _ = lru.New[unorderedPairKey[K], *Node[K]](defaultCacheSize)
	f.subCache, _ = lru.New[orderedPairKey[K], *Node[K]](defaultCacheSize)
	f.unionAllCache, _ = lru.New[string, *Node[K]](defaultCacheSize)

	return f
}

// Zero returns the empty family ⊥.
func (f *Factory[K]) Zero() *Node[K] { return f.zero }

// One returns the family containing only the empty set, ⊤.
func (f *Factory[K]) One() *Node[K] { return f.one }

// Stats reports bookkeeping for the node unique table: bucket count, an
// overestimate of live nodes, and the running total of nodes ever
// minted.
func (f *Factory[K]) Stats() (buckets, overestimate int, total int64) {
	return f.nodeTable.Stats()
}

// MakeNode returns the canonical node for ⟨key, take, skip⟩, applying
// the ZDD reduction rule (if take is ⊥, the node is redundant and skip
// is returned directly) and enforcing O1: every key reachable from take
// or skip must be strictly greater than key.
func (f *Factory[K]) MakeNode(key K, take, skip *Node[K]) *Node[K] {
	if take == f.zero {
		return skip
	}
	if !take.IsTerminal() && !(key < take.key) {
		fatalf("sfdd: ordering violation: take key %v must be strictly greater than node key %v", take.key, key)
	}
	if !skip.IsTerminal() && !(key < skip.key) {
		fatalf("sfdd: ordering violation: skip key %v must be strictly greater than node key %v", skip.key, key)
	}

	count := take.count + skip.count
	h := combineHash(hashKey(key), take.hash, skip.hash, count)

	candidate := &Node[K]{f: f, key: key, take: take, skip: skip, count: count, hash: h}
	canonical, _ := f.nodeTable.Insert(h, candidate, func(other *Node[K]) bool {
		return other.term == notTerminal &&
			other.key == key &&
			other.take == take &&
			other.skip == skip
	})
	return canonical
}

// Make builds the family containing exactly the given member sets,
// folding them into a single node via repeated union starting from ⊥.
// Each sequence may be given in any order and with duplicate keys;
// within a sequence it is sorted ascending and deduplicated before the
// node for that set is built bottom-up (lowest key at the root).
func (f *Factory[K]) Make(sequences ...[]K) *Node[K] {
	result := f.zero
	for _, seq := range sequences {
		result = f.union(result, f.makeSet(seq))
	}
	return result
}

func (f *Factory[K]) makeSet(seq []K) *Node[K] {
	if len(seq) == 0 {
		return f.one
	}
	sorted := slices.Clone(seq)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	n := f.one
	for i := len(sorted) - 1; i >= 0; i-- {
		n = f.MakeNode(sorted[i], n, f.zero)
	}
	return n
}

// unorderedPairKey is a memoization key for the commutative binary
// operations (union, intersection, symmetric difference): the pair is
// normalized so the key is the same regardless of argument order.
type unorderedPairKey[K cmp.Ordered] struct{ a, b *Node[K] }

// orderedPairKey is a memoization key for the one non-commutative binary
// operation, subtraction, where argument order is significant.
type orderedPairKey[K cmp.Ordered] struct{ a, b *Node[K] }

// normalizePair returns a, b (or b, a) in a consistent order so that
// unordered operations share a cache entry regardless of call order.
// Nodes are ordered by structural hash first; on a hash collision
// between two genuinely distinct canonical nodes (possible, just very
// unlikely for a 64-bit fingerprint) pointer identity breaks the tie, so
// the ordering stays total and deterministic within a process even then.
func normalizePair[K cmp.Ordered](a, b *Node[K]) (*Node[K], *Node[K]) {
	if a == b {
		return a, b
	}
	if a.hash != b.hash {
		if a.hash < b.hash {
			return a, b
		}
		return b, a
	}
	if uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b)) {
		return a, b
	}
	return b, a
}

func ptrLess[T any](a, b *T) bool {
	return uintptr(unsafe.Pointer(a)) < uintptr(unsafe.Pointer(b))
}
