package sfdd

import (
	"slices"
)

// Insert returns the homomorphism that adds every key in keys to each
// member set of its argument, in any order, with duplicates ignored.
func (f *Factory[K]) Insert(keys []K) *Homomorphism[K] {
	return f.keysHom(homInsert, keys)
}

// Remove returns the homomorphism that deletes every key in keys from
// each member set of its argument.
func (f *Factory[K]) Remove(keys []K) *Homomorphism[K] {
	return f.keysHom(homRemove, keys)
}

// Filter returns the homomorphism that keeps only the member sets
// containing every key in keys, discarding the rest.
func (f *Factory[K]) Filter(keys []K) *Homomorphism[K] {
	return f.keysHom(homFilter, keys)
}

func (f *Factory[K]) keysHom(kind homKind, keys []K) *Homomorphism[K] {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]uint64, len(sorted)+1)
	parts[0] = uint64(kind)
	for i, k := range sorted {
		parts[i+1] = hashKey(k)
	}
	hash := combineHash(parts...)
	candidate := &Homomorphism[K]{f: f, kind: kind, keys: sorted, hash: hash}
	return f.internHom(candidate, hash, func(o *Homomorphism[K]) bool {
		return o.kind == kind && slices.Equal(o.keys, sorted)
	})
}

func (h *Homomorphism[K]) applyInsert(y *Node[K]) *Node[K] {
	f := h.f
	if len(h.keys) == 0 {
		return y
	}
	k0 := h.keys[0]
	rest := f.Insert(h.keys[1:])

	switch {
	case y.IsOne():
		return f.MakeNode(k0, rest.Apply(f.one), f.zero)
	case y.IsZero():
		return y
	case y.key < k0:
		return f.MakeNode(y.key, h.Apply(y.take), h.Apply(y.skip))
	case y.key == k0:
		return f.MakeNode(k0, rest.Apply(f.union(y.take, y.skip)), f.zero)
	default: // y.key > k0
		return f.MakeNode(k0, rest.Apply(y), f.zero)
	}
}

func (h *Homomorphism[K]) applyRemove(y *Node[K]) *Node[K] {
	f := h.f
	if y.IsTerminal() || len(h.keys) == 0 {
		return y
	}
	k0 := h.keys[0]
	rest := f.Remove(h.keys[1:])

	switch {
	case y.key < k0:
		return f.MakeNode(y.key, h.Apply(y.take), h.Apply(y.skip))
	case y.key == k0:
		return rest.Apply(f.union(y.skip, y.take))
	default: // y.key > k0
		return rest.Apply(y)
	}
}

func (h *Homomorphism[K]) applyFilter(y *Node[K]) *Node[K] {
	f := h.f
	if len(h.keys) == 0 {
		return y
	}
	if y.IsTerminal() {
		return f.zero
	}
	k0 := h.keys[0]
	rest := f.Filter(h.keys[1:])

	switch {
	case y.key < k0:
		return f.MakeNode(y.key, h.Apply(y.take), h.Apply(y.skip))
	case y.key == k0:
		return f.MakeNode(y.key, rest.Apply(y.take), f.zero)
	default: // y.key > k0
		return f.zero
	}
}

// Dive returns the homomorphism that applies body only at the level
// whose root key equals target, leaving every other level untouched. It
// agrees with body.Apply(y) exactly on families whose member sets all
// contain target at the top level; on a y whose descent passes target
// without ever reaching it (a terminal hit first, or a key strictly
// greater than target encountered first), Dive leaves that branch as-is
// rather than invoking body. That restricted equivalence (P6) is what
// makes Dive useful as a combinator in its own right: callers who already
// know their families share a key schema can scope an otherwise-global
// body to one field cheaply.
//
// This is distinct from the Dive-shaped rewrite the optimizer introduces
// internally when hoisting Insert/Remove/Filter/Composition runs (see
// optimizer.go): that rewrite needs exact semantic equivalence to the
// homomorphism it replaces, including on branches where target is
// absent, so it uses an internal variant that falls through to body
// instead of leaving the branch untouched.
func (f *Factory[K]) Dive(target K, body *Homomorphism[K]) *Homomorphism[K] {
	return f.diveWithKind(homDive, target, body)
}

func (h *Homomorphism[K]) applyDive(y *Node[K], total bool) *Node[K] {
	f := h.f
	body := h.children[0]

	switch {
	case y.IsTerminal():
		if total {
			return body.Apply(y)
		}
		return y
	case y.key < h.target:
		return f.MakeNode(y.key, h.Apply(y.take), h.Apply(y.skip))
	case y.key == h.target:
		return body.Apply(y)
	default: // y.key > h.target
		if total {
			return body.Apply(y)
		}
		return y
	}
}

// inductiveSeq hands out a unique nonce per Inductive call so its hash
// never collides with an earlier instance; Inductive equality is
// reference-only regardless (see Inductive), so the nonce only needs to
// avoid accidental hash collisions with unrelated homomorphisms, not to
// implement equality itself.
var inductiveSeq uint64

// Inductive returns a homomorphism defined by fn: at an internal node y,
// fn(self, y) returns the pair of homomorphisms to apply to y's take and
// skip children respectively (self is the Inductive instance itself,
// letting fn recurse). At ⊥ the result is always ⊥. At ⊤ the result is
// substitute if hasSubstitute, otherwise ⊤ unchanged.
//
// Two Inductive instances are never equal to each other, even built from
// the same fn and substitute: fn is an opaque closure the optimizer
// cannot inspect (§9), so there is no structural equality to check, and
// every call returns a distinct instance with its own apply cache.
func (f *Factory[K]) Inductive(
	fn func(self *Homomorphism[K], y *Node[K]) (take, skip *Homomorphism[K]),
	substitute *Node[K],
	hasSubstitute bool,
) *Homomorphism[K] {
	inductiveSeq++
	return &Homomorphism[K]{
		f:             f,
		kind:          homInductive,
		inductiveFn:   fn,
		substitute:    substitute,
		hasSubstitute: hasSubstitute,
		hash:          combineHash(uint64(homInductive), inductiveSeq),
	}
}

func (h *Homomorphism[K]) applyInductive(y *Node[K]) *Node[K] {
	f := h.f
	switch {
	case y.IsZero():
		return f.zero
	case y.IsOne():
		if h.hasSubstitute {
			return h.substitute
		}
		return f.one
	default:
		take, skip := h.inductiveFn(h, y)
		return f.MakeNode(y.key, take.Apply(y.take), skip.Apply(y.skip))
	}
}
