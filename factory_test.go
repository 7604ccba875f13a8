package sfdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeNodeAppliesZDDReductionRule(t *testing.T) {
	f := NewFactory[int]()
	n := f.MakeNode(1, f.zero, f.one)
	assert.Same(t, f.one, n, "a node whose take branch is zero is redundant and must reduce to skip")
}

func TestMakeNodeHashConsesIdenticalTriples(t *testing.T) {
	f := NewFactory[int]()
	a := f.MakeNode(2, f.one, f.zero)
	b := f.MakeNode(2, f.one, f.zero)
	assert.Same(t, a, b, "two nodes built from equal triples must be the same pointer")

	c := f.MakeNode(2, f.one, f.one)
	assert.NotSame(t, a, c)
}

func TestMakeNodePanicsOnOrderingViolation(t *testing.T) {
	f := NewFactory[int]()
	child := f.MakeNode(5, f.one, f.zero)

	assert.Panics(t, func() {
		f.MakeNode(5, child, f.zero)
	}, "take branch key must be strictly greater than the node's own key")

	assert.Panics(t, func() {
		f.MakeNode(7, f.one, child)
	}, "skip branch key must be strictly greater than the node's own key")
}

func TestMakeNodeComputesCount(t *testing.T) {
	f := NewFactory[int]()
	leaf := f.MakeNode(3, f.one, f.zero) // {{3}}
	withEmpty := f.MakeNode(1, leaf, f.one) // {{1,3},{}}
	assert.EqualValues(t, 1, leaf.Count())
	assert.EqualValues(t, 2, withEmpty.Count())
}

func TestMakeBuildsRequestedMemberSets(t *testing.T) {
	f := NewFactory[int]()
	family := f.Make([]int{2, 1}, []int{1}, []int{})

	assert.True(t, family.Contains([]int{1, 2}))
	assert.True(t, family.Contains([]int{1}))
	assert.True(t, family.Contains(nil))
	assert.False(t, family.Contains([]int{2}))
	assert.EqualValues(t, 3, family.Count())
}

func TestMakeDeduplicatesWithinAndAcrossSequences(t *testing.T) {
	f := NewFactory[int]()
	a := f.Make([]int{1, 1, 2})
	b := f.Make([]int{2, 1})
	assert.Same(t, a, b, "duplicate keys within a sequence must not change the resulting set")

	c := f.Make([]int{1, 2}, []int{2, 1})
	assert.Same(t, a, c, "repeating an identical member set must not change the family")
}

func TestZeroAndOneAreDistinctTerminals(t *testing.T) {
	f := NewFactory[int]()
	assert.True(t, f.Zero().IsZero())
	assert.True(t, f.One().IsOne())
	assert.False(t, f.Zero().IsOne())
	assert.False(t, f.One().IsZero())
	assert.NotSame(t, f.Zero(), f.One())
}

func TestIsEmptyAgreesWithIsZero(t *testing.T) {
	f := NewFactory[int]()
	assert.True(t, f.Zero().IsEmpty())
	assert.False(t, f.One().IsEmpty(), "One denotes the single member set {}, so it is not empty")
	assert.False(t, f.Make([]int{1, 2}).IsEmpty())
}
