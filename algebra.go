package sfdd

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Union returns the family denoting the set union of n and other: a set
// is a member of the result iff it is a member of n or of other (or
// both). n and other must come from the same Factory.
func (n *Node[K]) Union(other *Node[K]) *Node[K] { return n.f.union(n, other) }

// Intersection returns the family denoting the set intersection of n and
// other. n and other must come from the same Factory.
func (n *Node[K]) Intersection(other *Node[K]) *Node[K] { return n.f.intersection(n, other) }

// SymmetricDifference returns the family of sets that are members of
// exactly one of n, other. n and other must come from the same Factory.
func (n *Node[K]) SymmetricDifference(other *Node[K]) *Node[K] {
	return n.f.symmetricDifference(n, other)
}

// Subtract returns the family of sets that are members of n but not of
// other. n and other must come from the same Factory.
func (n *Node[K]) Subtract(other *Node[K]) *Node[K] { return n.f.subtract(n, other) }

// Contains reports whether the exact set of keys in set (duplicates
// ignored) is a member of the family n denotes.
func (n *Node[K]) Contains(set []K) bool {
	sorted := slices.Clone(set)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	cur := n
	i := 0
	for !cur.IsTerminal() {
		switch {
		case i < len(sorted) && sorted[i] == cur.key:
			cur = cur.take
			i++
		default:
			// sorted[i] > cur.key, or every requested key is already
			// consumed: either way cur.key is not in the requested set.
			// If sorted[i] < cur.key, no key below cur can match it, so
			// descending skip ends with that key unconsumed (absent).
			cur = cur.skip
		}
	}
	return i == len(sorted) && cur == n.f.one
}

func (f *Factory[K]) union(a, b *Node[K]) *Node[K] {
	if a == b || a == f.zero {
		return b
	}
	if b == f.zero {
		return a
	}

	ka, kb := normalizePair(a, b)
	key := unorderedPairKey[K]{ka, kb}
	if v, ok := f.unionCache.Get(key); ok {
		return v
	}

	var result *Node[K]
	switch {
	case a == f.one:
		result = f.MakeNode(b.key, b.take, f.union(b.skip, a))
	case b == f.one:
		result = f.MakeNode(a.key, a.take, f.union(a.skip, b))
	case a.key < b.key:
		result = f.MakeNode(a.key, a.take, f.union(a.skip, b))
	case a.key == b.key:
		result = f.MakeNode(a.key, f.union(a.take, b.take), f.union(a.skip, b.skip))
	default:
		result = f.MakeNode(b.key, b.take, f.union(b.skip, a))
	}

	f.unionCache.Add(key, result)
	return result
}

func (f *Factory[K]) intersection(a, b *Node[K]) *Node[K] {
	if a == f.zero || b == f.zero {
		return f.zero
	}
	if a == b {
		return a
	}

	ka, kb := normalizePair(a, b)
	key := unorderedPairKey[K]{ka, kb}
	if v, ok := f.interCache.Get(key); ok {
		return v
	}

	var result *Node[K]
	switch {
	case a == f.one:
		result = skipMost(b)
	case b == f.one:
		result = skipMost(a)
	case a.key < b.key:
		result = f.intersection(a.skip, b)
	case a.key == b.key:
		result = f.MakeNode(a.key, f.intersection(a.take, b.take), f.intersection(a.skip, b.skip))
	default:
		result = f.intersection(a, b.skip)
	}

	f.interCache.Add(key, result)
	return result
}

func (f *Factory[K]) symmetricDifference(a, b *Node[K]) *Node[K] {
	if a == f.zero {
		return b
	}
	if b == f.zero {
		return a
	}
	if a == b {
		return f.zero
	}

	ka, kb := normalizePair(a, b)
	key := unorderedPairKey[K]{ka, kb}
	if v, ok := f.symdiffCache.Get(key); ok {
		return v
	}

	var result *Node[K]
	switch {
	case a == f.one:
		result = f.MakeNode(b.key, b.take, f.symmetricDifference(a, b.skip))
	case b == f.one:
		result = f.MakeNode(a.key, a.take, f.symmetricDifference(a.skip, b))
	case a.key < b.key:
		result = f.MakeNode(a.key, a.take, f.symmetricDifference(a.skip, b))
	case a.key == b.key:
		result = f.MakeNode(a.key, f.symmetricDifference(a.take, b.take), f.symmetricDifference(a.skip, b.skip))
	default:
		result = f.MakeNode(b.key, b.take, f.symmetricDifference(a, b.skip))
	}

	f.symdiffCache.Add(key, result)
	return result
}

func (f *Factory[K]) subtract(a, b *Node[K]) *Node[K] {
	if a == f.zero || b == f.zero {
		return a
	}
	if a == b {
		return f.zero
	}

	key := orderedPairKey[K]{a, b}
	if v, ok := f.subCache.Get(key); ok {
		return v
	}

	var result *Node[K]
	switch {
	case a == f.one:
		if skipMost(b) == f.one {
			result = f.zero
		} else {
			result = a
		}
	case b == f.one:
		result = f.MakeNode(a.key, a.take, f.subtract(a.skip, b))
	case a.key < b.key:
		result = f.MakeNode(a.key, a.take, f.subtract(a.skip, b))
	case a.key == b.key:
		result = f.MakeNode(a.key, f.subtract(a.take, b.take), f.subtract(a.skip, b.skip))
	default:
		result = f.subtract(a, b.skip)
	}

	f.subCache.Add(key, result)
	return result
}

// UnionAll returns the family denoting the union of every operand's set
// of member sets. It is the n-ary counterpart to Union: ⊥ operands are
// dropped, duplicate (identical) operands are deduplicated, and operands
// sharing a root key are merged in one step rather than through n
// successive pairwise unions.
func (f *Factory[K]) UnionAll(operands ...*Node[K]) *Node[K] {
	seen := make(map[*Node[K]]bool, len(operands))
	hasOne := false
	ops := make([]*Node[K], 0, len(operands))
	for _, op := range operands {
		if op == f.zero || seen[op] {
			continue
		}
		seen[op] = true
		if op == f.one {
			hasOne = true
			continue
		}
		ops = append(ops, op)
	}

	if len(ops) == 0 {
		if hasOne {
			return f.one
		}
		return f.zero
	}

	cacheKey := identitySetKey(ops, hasOne)
	if v, ok := f.unionAllCache.Get(cacheKey); ok {
		return v
	}

	slices.SortFunc(ops, func(a, b *Node[K]) int { return cmp.Compare(a.key, b.key) })

	var reduced []*Node[K]
	for i := 0; i < len(ops); {
		j := i
		for j < len(ops) && ops[j].key == ops[i].key {
			j++
		}
		group := ops[i:j]
		if len(group) == 1 {
			reduced = append(reduced, group[0])
		} else {
			takes := make([]*Node[K], len(group))
			skips := make([]*Node[K], len(group))
			for k, g := range group {
				takes[k], skips[k] = g.take, g.skip
			}
			reduced = append(reduced, f.MakeNode(group[0].key, f.UnionAll(takes...), f.UnionAll(skips...)))
		}
		i = j
	}

	result := f.zero
	if hasOne {
		result = f.one
	}
	for i := len(reduced) - 1; i >= 0; i-- {
		result = f.union(reduced[i], result)
	}

	f.unionAllCache.Add(cacheKey, result)
	return result
}

// identitySetKey builds an exact (not hash-approximate) cache key from a
// set of node identities: two calls share a cache entry iff they name
// the same operand pointers, regardless of argument order.
func identitySetKey[K cmp.Ordered](ops []*Node[K], hasOne bool) string {
	sorted := slices.Clone(ops)
	slices.SortFunc(sorted, func(a, b *Node[K]) int {
		if ptrLess(a, b) {
			return -1
		}
		if ptrLess(b, a) {
			return 1
		}
		return 0
	})
	var b strings.Builder
	if hasOne {
		b.WriteString("1;")
	}
	for _, n := range sorted {
		fmt.Fprintf(&b, "%p;", n)
	}
	return b.String()
}
