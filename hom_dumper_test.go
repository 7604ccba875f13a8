package sfdd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomDescriptionRendersKindAndPayload(t *testing.T) {
	f := NewFactory[int]()
	h := f.CompositionHom(f.Insert([]int{5}), f.Insert([]int{3}))

	optimized := Optimize(h)
	assert.Equal(t, "diveTotal(3, Composition(Insert([3]), Insert([5])))", optimized.Description())
}

func TestHomDescriptionOfLeaves(t *testing.T) {
	f := NewFactory[int]()
	assert.Equal(t, "Identity", f.Identity().Description())
	assert.Equal(t, "Insert([1,2])", f.Insert([]int{2, 1}).Description())

	c := f.Constant(f.Make([]int{1}))
	assert.Equal(t, "Constant({{1}})", c.Description())
}

func TestHomStringIsAnAliasForDescription(t *testing.T) {
	f := NewFactory[int]()
	h := f.Insert([]int{1})
	assert.Equal(t, h.Description(), h.String())
}

func TestHomDumpStringRendersEachLevel(t *testing.T) {
	f := NewFactory[int]()
	h := f.FixedPointHom(f.Insert([]int{1}))

	out := h.DumpString()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[FixedPoint]")
	assert.Contains(t, lines[1], "[Insert]")
	assert.Contains(t, lines[1], "[1]")
}

func TestHomDumpMarksSharedChildrenOnSecondVisit(t *testing.T) {
	f := NewFactory[int]()
	ins := f.Insert([]int{1})
	h := f.UnionHom(ins, ins)

	out := h.DumpString()
	assert.Contains(t, out, "(shared)")
}

func TestHomDumpNeverMarksDistinctInductiveInstancesShared(t *testing.T) {
	f := NewFactory[int]()
	fn := func(self *Homomorphism[int], y *Node[int]) (*Homomorphism[int], *Homomorphism[int]) {
		return self, self
	}
	a := f.Inductive(fn, nil, false)
	b := f.Inductive(fn, nil, false)
	h := f.UnionHom(a, b)

	out := h.DumpString()
	assert.NotContains(t, out, "(shared)")
}
