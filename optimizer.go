package sfdd

import (
	"cmp"
	"slices"
)

// Optimize rewrites h into a semantically equivalent homomorphism that
// is cheaper to apply, following a fixed set of rules:
//
//  1. Union/Intersection: optimize every child, then wrap the result in
//     a Dive at the smallest key any child could possibly touch, when
//     that key is known for every child, so Apply can skip straight past branches below that
//     key instead of visiting every child at every level.
//  2. Composition: flatten nested Compositions, then collapse any
//     maximal run of two or more consecutive Insert/Remove elements into
//     a single Dive-wrapped sub-composition ordered by ascending key.
//  3. FixedPoint: when the body is a Union containing Identity as one of
//     its terms, distribute the fixed point over each remaining term
//     individually and compose the results, since
//     fix(⋃ᵢφᵢ ∪ id) = Composition(fix(φ₁∪id), ..., fix(φₙ∪id)).
//  4. Insert/Remove/Filter over two or more keys: rewrite to a
//     Dive-wrapped Composition of single-key instances, ascending by
//     key, for the same reason as rule 2's collapsed runs.
//
// Optimize is idempotent: optimizing its own output is a no-op (every
// rewritten shape above is already in its own fixed point with respect
// to these four rules). Inductive is never rewritten: its body is an
// opaque closure the optimizer cannot inspect.
//
// The Dive wrapper these rules introduce is not the public Dive
// combinator: see diveTotal below.
func Optimize[K cmp.Ordered](h *Homomorphism[K]) *Homomorphism[K] {
	f := h.f
	switch h.kind {
	case homIdentity, homConstant, homInductive:
		return h

	case homUnion:
		return optimizeDistributable(f, homUnion, h.children)
	case homIntersection:
		return optimizeDistributable(f, homIntersection, h.children)

	case homComposition:
		return optimizeComposition(f, h)

	case homFixedPoint:
		return optimizeFixedPoint(f, h)

	case homInsert, homRemove, homFilter:
		return optimizeKeysHom(f, h)

	case homDive, homDiveTotal:
		optimizedBody := Optimize(h.children[0])
		if optimizedBody.kind == h.kind && optimizedBody.target == h.target {
			// optimizedBody is already a dive at the same target (rule 2
			// or 4 can produce this shape from h's own body): wrapping it
			// again would only nest two dives that agree on every branch
			// a caller could observe, so collapse instead of re-wrapping.
			return optimizedBody
		}
		return f.diveWithKind(h.kind, h.target, optimizedBody)
	}
	fatalf("sfdd: unreachable homomorphism kind %d in Optimize", h.kind)
	panic("unreachable")
}

// diveTotal wraps body in the optimizer's own total-equivalence dive: it
// behaves exactly like body.Apply would off-target (falling through
// rather than leaving the branch untouched), which is what makes rules 1,
// 2 and 4 semantics-preserving rewrites rather than approximations. See
// Dive's doc comment in hom_sfdd.go for the distinction from the public
// combinator.
func diveTotal[K cmp.Ordered](f *Factory[K], target K, body *Homomorphism[K]) *Homomorphism[K] {
	return f.diveWithKind(homDiveTotal, target, body)
}

// minKey returns the smallest key h could possibly act on, if that is
// statically knowable from h's shape, and whether it found one at all
// (a Constant at a terminal, or an Identity, has no such key, and neither
// does a Union/Intersection/Composition with any such child).
func minKey[K cmp.Ordered](h *Homomorphism[K]) (K, bool) {
	var zero K
	switch h.kind {
	case homConstant:
		if h.constant.IsTerminal() {
			return zero, false
		}
		return h.constant.key, true
	case homUnion, homIntersection, homComposition:
		best, found := zero, false
		for _, c := range h.children {
			k, ok := minKey(c)
			if !ok {
				return zero, false
			}
			if !found || k < best {
				best, found = k, true
			}
		}
		return best, found
	case homFixedPoint, homDive, homDiveTotal:
		return minKey(h.children[0])
	case homInsert, homRemove, homFilter:
		if len(h.keys) == 0 {
			return zero, false
		}
		return h.keys[0], true
	default: // homIdentity, homInductive
		return zero, false
	}
}

func optimizeDistributable[K cmp.Ordered](f *Factory[K], kind homKind, children []*Homomorphism[K]) *Homomorphism[K] {
	optimizedChildren := make([]*Homomorphism[K], len(children))
	for i, c := range children {
		optimizedChildren[i] = Optimize(c)
	}

	var rewritten *Homomorphism[K]
	if kind == homUnion {
		rewritten = f.UnionHom(optimizedChildren...)
	} else {
		rewritten = f.IntersectionHom(optimizedChildren...)
	}

	if k, ok := minKey(rewritten); ok {
		return diveTotal(f, k, rewritten)
	}
	return rewritten
}

func isInsertOrRemove[K cmp.Ordered](h *Homomorphism[K]) bool {
	return h.kind == homInsert || h.kind == homRemove
}

// isRunDive reports whether h is the shape this very rewrite produces
// for a contiguous Insert/Remove run: a total-dive wrapping a
// Composition of nothing but Insert/Remove elements. Recognizing that
// shape lets a run spanning two originally-separate Composition operands
// (one ending, the next starting, with such a wrapper already between
// them from a nested Optimize call) still merge into one run.
func isRunDive[K cmp.Ordered](h *Homomorphism[K]) bool {
	if h.kind != homDiveTotal {
		return false
	}
	body := h.children[0]
	if body.kind != homComposition || len(body.children) == 0 {
		return false
	}
	for _, c := range body.children {
		if !isInsertOrRemove(c) {
			return false
		}
	}
	return true
}

func optimizeComposition[K cmp.Ordered](f *Factory[K], h *Homomorphism[K]) *Homomorphism[K] {
	var flat []*Homomorphism[K]
	for _, c := range h.children {
		oc := Optimize(c)
		switch {
		case oc.kind == homComposition:
			flat = append(flat, oc.children...)
		case isRunDive(oc):
			flat = append(flat, oc.children[0].children...)
		default:
			flat = append(flat, oc)
		}
	}

	var result []*Homomorphism[K]
	for i := 0; i < len(flat); {
		j := i
		for j < len(flat) && isInsertOrRemove(flat[j]) {
			j++
		}
		run := flat[i:j]
		if len(run) >= 2 {
			sorted := slices.Clone(run)
			slices.SortFunc(sorted, func(a, b *Homomorphism[K]) int {
				ak, _ := minKey(a)
				bk, _ := minKey(b)
				return cmp.Compare(ak, bk)
			})
			minK, _ := minKey(sorted[0])
			result = append(result, diveTotal(f, minK, f.CompositionHom(sorted...)))
			i = j
		} else {
			result = append(result, flat[i])
			i++
		}
	}

	if len(result) == 1 {
		return result[0]
	}
	return f.CompositionHom(result...)
}

func optimizeFixedPoint[K cmp.Ordered](f *Factory[K], h *Homomorphism[K]) *Homomorphism[K] {
	// The Union+Identity pattern this rule looks for must be checked
	// against the *raw*, not-yet-optimized body: optimizing a Union
	// first (rule 1) can wrap it in a Dive, which would hide the very
	// shape this rule needs to see.
	raw := h.children[0]
	if raw.kind == homUnion {
		var others []*Homomorphism[K]
		hasIdentity := false
		for _, c := range raw.children {
			if c.kind == homIdentity {
				hasIdentity = true
			} else {
				others = append(others, c)
			}
		}
		if hasIdentity && len(others) > 0 {
			parts := make([]*Homomorphism[K], len(others))
			for i, o := range others {
				parts[i] = f.FixedPointHom(Optimize(f.UnionHom(o, f.Identity())))
			}
			if len(parts) == 1 {
				return parts[0]
			}
			return f.CompositionHom(parts...)
		}
	}
	return f.FixedPointHom(Optimize(raw))
}

func optimizeKeysHom[K cmp.Ordered](f *Factory[K], h *Homomorphism[K]) *Homomorphism[K] {
	if len(h.keys) < 2 {
		return h
	}
	parts := make([]*Homomorphism[K], len(h.keys))
	for i, k := range h.keys { // h.keys is already sorted ascending at construction
		parts[i] = f.keysHom(h.kind, []K{k})
	}
	return diveTotal(f, h.keys[0], f.CompositionHom(parts...))
}
