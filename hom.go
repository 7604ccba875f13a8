package sfdd

import (
	"cmp"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultHomCacheSize bounds each homomorphism instance's own apply
// cache. It is smaller than defaultCacheSize: a homomorphism's cache is
// keyed by the node it was applied to, and most homomorphisms in a
// typical pipeline are applied to a handful of distinct nodes across a
// FixedPoint loop, not thousands.
const defaultHomCacheSize = 256

type homKind uint8

const (
	homIdentity homKind = iota
	homConstant
	homUnion
	homIntersection
	homComposition
	homFixedPoint
	homInsert
	homRemove
	homFilter
	homDive      // public Dive: restricted equivalence, §4.6/P6
	homDiveTotal // optimizer-internal: total equivalence, see optimizer.go
	homInductive
)

// Homomorphism is a function on canonical nodes that respects the DAG's
// structure. Identity, Constant, Union, Intersection, Composition and
// FixedPoint (this file) combine homomorphisms into new ones; Insert,
// Remove, Filter, Dive and Inductive (hom_sfdd.go) are the SFDD-specific
// leaves.
//
// Two instances built from equal parameters by the same Factory are the
// same pointer, with one deliberate exception: Inductive, whose equality
// is by construction reference-only (see its constructor), is never
// interned.
//
// Homomorphism is a single tagged type rather than an interface plus one
// concrete type per kind: Apply dispatches on kind, which keeps the
// per-instance apply cache, the uniquing hash/equality, and the
// optimizer's rewrite rules all working against one shape instead of a
// type switch over many.
type Homomorphism[K cmp.Ordered] struct {
	f    *Factory[K]
	kind homKind

	keys   []K // Insert/Remove/Filter: sorted ascending, deduplicated
	target K   // Dive/DiveTotal: the key the wrapped homomorphism applies at

	children []*Homomorphism[K] // Union/Intersection/Composition operands; Dive/DiveTotal/FixedPoint body (len 1)

	constant *Node[K] // Constant payload

	inductiveFn   func(self *Homomorphism[K], y *Node[K]) (take, skip *Homomorphism[K])
	substitute    *Node[K] // Inductive: optional override at ⊤
	hasSubstitute bool

	hash  uint64
	cache *lru.Cache[*Node[K], *Node[K]] // lazily created on first Apply
}

// Apply evaluates the homomorphism at y, memoizing the result against
// this specific homomorphism instance.
func (h *Homomorphism[K]) Apply(y *Node[K]) *Node[K] {
	if h.cache == nil {
		h.cache, _ = lru.New[*Node[K], *Node[K]](defaultHomCacheSize)
	}
	if v, ok := h.cache.Get(y); ok {
		return v
	}
	result := h.applyUncached(y)
	h.cache.Add(y, result)
	return result
}

func (h *Homomorphism[K]) applyUncached(y *Node[K]) *Node[K] {
	f := h.f
	switch h.kind {
	case homIdentity:
		return y
	case homConstant:
		return h.constant
	case homUnion:
		results := make([]*Node[K], len(h.children))
		for i, c := range h.children {
			results[i] = c.Apply(y)
		}
		return f.UnionAll(results...)
	case homIntersection:
		result := h.children[0].Apply(y)
		for _, c := range h.children[1:] {
			result = f.intersection(result, c.Apply(y))
		}
		return result
	case homComposition:
		result := y
		for _, c := range h.children {
			result = c.Apply(result)
		}
		return result
	case homFixedPoint:
		cur := y
		for {
			next := h.children[0].Apply(cur)
			if next == cur {
				return cur
			}
			cur = next
		}
	case homInsert:
		return h.applyInsert(y)
	case homRemove:
		return h.applyRemove(y)
	case homFilter:
		return h.applyFilter(y)
	case homDive:
		return h.applyDive(y, false)
	case homDiveTotal:
		return h.applyDive(y, true)
	case homInductive:
		return h.applyInductive(y)
	}
	fatalf("sfdd: unreachable homomorphism kind %d", h.kind)
	panic("unreachable")
}

// internHom looks up or inserts the canonical instance for candidate.
func (f *Factory[K]) internHom(candidate *Homomorphism[K], hash uint64, eq func(*Homomorphism[K]) bool) *Homomorphism[K] {
	canonical, _ := f.homTable.Insert(hash, candidate, eq)
	return canonical
}

// Identity returns the homomorphism that maps every node to itself.
func (f *Factory[K]) Identity() *Homomorphism[K] {
	hash := combineHash(uint64(homIdentity))
	candidate := &Homomorphism[K]{f: f, kind: homIdentity, hash: hash}
	return f.internHom(candidate, hash, func(o *Homomorphism[K]) bool {
		return o.kind == homIdentity
	})
}

// Constant returns the homomorphism that maps every node to c, ignoring
// its argument.
func (f *Factory[K]) Constant(c *Node[K]) *Homomorphism[K] {
	hash := combineHash(uint64(homConstant), c.hash)
	candidate := &Homomorphism[K]{f: f, kind: homConstant, constant: c, hash: hash}
	return f.internHom(candidate, hash, func(o *Homomorphism[K]) bool {
		return o.kind == homConstant && o.constant == c
	})
}

// UnionHom returns the homomorphism y ↦ ⋃ᵢ children[i].Apply(y).
func (f *Factory[K]) UnionHom(children ...*Homomorphism[K]) *Homomorphism[K] {
	return f.combinatorHom(homUnion, children)
}

// IntersectionHom returns the homomorphism y ↦ ⋂ᵢ children[i].Apply(y).
// children must be non-empty.
func (f *Factory[K]) IntersectionHom(children ...*Homomorphism[K]) *Homomorphism[K] {
	if len(children) == 0 {
		fatalf("sfdd: IntersectionHom requires at least one operand")
	}
	return f.combinatorHom(homIntersection, children)
}

// CompositionHom returns the homomorphism that applies children in
// order, left to right: children[0] first, its result fed to
// children[1], and so on. (§4.5 leaves the order as a library
// convention to be fixed and documented; this is the fixed convention.)
func (f *Factory[K]) CompositionHom(children ...*Homomorphism[K]) *Homomorphism[K] {
	return f.combinatorHom(homComposition, children)
}

// FixedPointHom returns the homomorphism that repeatedly applies body
// until a value stops changing (by node identity), starting from the
// argument itself.
func (f *Factory[K]) FixedPointHom(body *Homomorphism[K]) *Homomorphism[K] {
	return f.combinatorHom(homFixedPoint, []*Homomorphism[K]{body})
}

func (f *Factory[K]) combinatorHom(kind homKind, children []*Homomorphism[K]) *Homomorphism[K] {
	parts := make([]uint64, len(children)+1)
	parts[0] = uint64(kind)
	for i, c := range children {
		parts[i+1] = c.hash
	}
	hash := combineHash(parts...)
	kids := slices.Clone(children)
	candidate := &Homomorphism[K]{f: f, kind: kind, children: kids, hash: hash}
	return f.internHom(candidate, hash, func(o *Homomorphism[K]) bool {
		return o.kind == kind && slices.Equal(o.children, kids)
	})
}

// diveWithKind is shared by the public Dive constructor (hom_sfdd.go)
// and the optimizer's internal total-equivalence rewrite target.
func (f *Factory[K]) diveWithKind(kind homKind, target K, body *Homomorphism[K]) *Homomorphism[K] {
	hash := combineHash(uint64(kind), hashKey(target), body.hash)
	candidate := &Homomorphism[K]{f: f, kind: kind, target: target, children: []*Homomorphism[K]{body}, hash: hash}
	return f.internHom(candidate, hash, func(o *Homomorphism[K]) bool {
		return o.kind == kind && o.target == target && o.children[0] == body
	})
}
