package unique

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	n int
}

func eqProbe(want int) func(*probe) bool {
	return func(p *probe) bool { return p.n == want }
}

func TestInsertReturnsSameSurvivorForEqualHash(t *testing.T) {
	tbl := New[probe]()

	a := &probe{n: 1}
	canonicalA, insertedA := tbl.Insert(1, a, eqProbe(1))
	require.True(t, insertedA)
	assert.Same(t, a, canonicalA)

	b := &probe{n: 1}
	canonicalB, insertedB := tbl.Insert(1, b, eqProbe(1))
	assert.False(t, insertedB)
	assert.Same(t, a, canonicalB, "second insert with an equal value must return the first survivor")
}

func TestInsertDistinguishesHashCollisionsByEquality(t *testing.T) {
	tbl := New[probe]()

	a := &probe{n: 1}
	b := &probe{n: 2}

	ca, _ := tbl.Insert(42, a, eqProbe(1))
	cb, inserted := tbl.Insert(42, b, eqProbe(2))

	assert.True(t, inserted, "a hash collision between unequal values must still insert")
	assert.Same(t, a, ca)
	assert.Same(t, b, cb)
	assert.NotSame(t, ca, cb)
}

func TestRemoveEvictsOnlyTheMatchingEntry(t *testing.T) {
	tbl := New[probe]()

	a := &probe{n: 1}
	b := &probe{n: 2}
	tbl.Insert(42, a, eqProbe(1))
	tbl.Insert(42, b, eqProbe(2))

	tbl.Remove(42, a)

	_, insertedAgain := tbl.Insert(42, &probe{n: 1}, eqProbe(1))
	assert.True(t, insertedAgain, "a removed entry must not be found on a later lookup")

	stillThere, inserted := tbl.Insert(42, &probe{n: 2}, eqProbe(2))
	assert.False(t, inserted)
	assert.Same(t, b, stillThere, "an untouched entry must survive a sibling's removal")
}

func TestAllVisitsEveryLiveEntry(t *testing.T) {
	tbl := New[probe]()
	kept := make([]*probe, 0, 8)
	for i := 0; i < 8; i++ {
		p := &probe{n: i}
		kept = append(kept, p)
		tbl.Insert(uint64(i), p, eqProbe(i))
	}

	seen := make(map[int]bool)
	tbl.All(func(p *probe) bool {
		seen[p.n] = true
		return true
	})

	assert.Len(t, seen, 8)
	for _, p := range kept {
		assert.True(t, seen[p.n])
	}
}

func TestAllStopsOnYieldFalse(t *testing.T) {
	tbl := New[probe]()
	for i := 0; i < 8; i++ {
		tbl.Insert(uint64(i), &probe{n: i}, eqProbe(i))
	}

	count := 0
	tbl.All(func(p *probe) bool {
		count++
		return count < 3
	})
	assert.Equal(t, 3, count)
}

func TestRehashGrowsBucketsAndPreservesEntries(t *testing.T) {
	tbl := New[probe]()
	const n = 200
	for i := 0; i < n; i++ {
		tbl.Insert(uint64(i), &probe{n: i}, eqProbe(i))
	}

	buckets, overestimate, total := tbl.Stats()
	assert.Greater(t, buckets, minBuckets, "inserting well past the load factor must have grown the table")
	assert.EqualValues(t, n, total)
	assert.LessOrEqual(t, overestimate, n)

	seen := 0
	tbl.All(func(*probe) bool { seen++; return true })
	assert.Equal(t, n, seen)
}
