package sfdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeCollapsesAnInsertRunIntoASortedDive(t *testing.T) {
	f := NewFactory[int]()
	h := f.CompositionHom(f.Insert([]int{5}), f.Insert([]int{3}))

	optimized := Optimize(h)

	require.Equal(t, homDiveTotal, optimized.kind)
	assert.Equal(t, 3, optimized.target)
	body := optimized.children[0]
	require.Equal(t, homComposition, body.kind)
	require.Len(t, body.children, 2)
	assert.Equal(t, []int{3}, body.children[0].keys, "the collapsed run must be sorted ascending by key")
	assert.Equal(t, []int{5}, body.children[1].keys)

	start := f.Make([]int{1})
	want := f.Make([]int{1, 3, 5})
	assert.Same(t, want, h.Apply(start), "unoptimized form must still produce the expected result")
	assert.Same(t, want, optimized.Apply(start), "optimization must be semantics-preserving")
}

func TestOptimizeIsIdempotent(t *testing.T) {
	f := NewFactory[int]()
	h := f.CompositionHom(f.Insert([]int{5}), f.Insert([]int{3}))
	once := Optimize(h)
	twice := Optimize(once)
	assert.Same(t, once, twice)
}

func TestOptimizeDistributesFixedPointOverUnionWithIdentity(t *testing.T) {
	f := NewFactory[int]()
	body := f.UnionHom(f.Insert([]int{5}), f.Identity())
	h := f.FixedPointHom(body)

	optimized := Optimize(h)
	require.Equal(t, homFixedPoint, optimized.kind)
	innerBody := optimized.children[0]
	assert.Equal(t, homUnion, innerBody.kind, "Identity has no minimum key, so rule 1 must leave the distributed fixed point's Union body unwrapped")

	start := f.Make([]int{1})
	want := f.Make([]int{1}, []int{1, 5})
	assert.Same(t, want, h.Apply(start))
	assert.Same(t, want, optimized.Apply(start))
}

func TestOptimizeWrapsUnionInADiveAtItsMinimumKey(t *testing.T) {
	f := NewFactory[int]()
	h := f.UnionHom(f.Insert([]int{7}), f.Insert([]int{4}))

	optimized := Optimize(h)
	require.Equal(t, homDiveTotal, optimized.kind)
	assert.Equal(t, 4, optimized.target)

	start := f.Make([]int{1})
	want := f.Make([]int{1, 7}, []int{1, 4})
	assert.Same(t, want, h.Apply(start))
	assert.Same(t, want, optimized.Apply(start))
}

func TestOptimizeLeavesIdentityConstantAndInductiveUnchanged(t *testing.T) {
	f := NewFactory[int]()
	assert.Same(t, f.Identity(), Optimize(f.Identity()))

	c := f.Constant(f.Make([]int{1}))
	assert.Same(t, c, Optimize(c))

	ind := f.Inductive(func(self *Homomorphism[int], y *Node[int]) (*Homomorphism[int], *Homomorphism[int]) {
		return self, self
	}, nil, false)
	assert.Same(t, ind, Optimize(ind))
}

func TestOptimizeSingleKeyInsertIsUnchanged(t *testing.T) {
	f := NewFactory[int]()
	h := f.Insert([]int{3})
	assert.Same(t, h, Optimize(h))
}
