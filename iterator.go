package sfdd

import "iter"

// All returns a restartable iterator over every member set n denotes,
// each produced exactly once as a freshly allocated, ascending-sorted
// slice. It is a depth-first descent: committed keys are pushed when
// entering a take branch and popped again before descending into the
// matching skip branch, so a set's keys are yielded in the ascending
// order O1 already guarantees.
func (n *Node[K]) All() iter.Seq[[]K] {
	return func(yield func([]K) bool) {
		var committed []K
		var walk func(cur *Node[K]) bool
		walk = func(cur *Node[K]) bool {
			switch {
			case cur.IsZero():
				return true
			case cur.IsOne():
				set := make([]K, len(committed))
				copy(set, committed)
				return yield(set)
			default:
				committed = append(committed, cur.key)
				ok := walk(cur.take)
				committed = committed[:len(committed)-1]
				if !ok {
					return false
				}
				return walk(cur.skip)
			}
		}
		walk(n)
	}
}
