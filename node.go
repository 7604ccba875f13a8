package sfdd

import "cmp"

// terminalKind distinguishes the two terminals from an internal
// ⟨key, take, skip⟩ triple. Zero value is "not a terminal" so the zero
// Node (never itself constructed; every Node reachable by a caller comes
// from a Factory) would read as an internal node rather than silently
// aliasing a terminal.
type terminalKind uint8

const (
	notTerminal terminalKind = iota
	zeroTerminal
	oneTerminal
)

// Node is a canonical value in a set-family decision diagram: either of
// the two terminals (Zero, the empty family; One, the family containing
// only the empty set) or an internal node carrying a key and two
// children, take and skip, each denoting a sub-family over the keys
// strictly greater than this node's key.
//
// Two nodes minted by the same Factory denote the same family if and
// only if they are the same pointer; Factory.MakeNode is the only way to
// mint an internal Node and is the sole enforcer of that guarantee.
// Nodes from different Factory instances must never be mixed.
type Node[K cmp.Ordered] struct {
	f     *Factory[K]
	key   K
	take  *Node[K]
	skip  *Node[K]
	count uint64
	hash  uint64
	term  terminalKind
}

// IsZero reports whether n is the empty family ⊥.
func (n *Node[K]) IsZero() bool { return n.term == zeroTerminal }

// IsOne reports whether n is the family containing only the empty set, ⊤.
func (n *Node[K]) IsOne() bool { return n.term == oneTerminal }

// IsTerminal reports whether n is Zero or One.
func (n *Node[K]) IsTerminal() bool { return n.term != notTerminal }

// IsEmpty reports whether n denotes the empty family, i.e. has no member
// sets at all. It is a synonym for IsZero: every non-zero node (including
// One, which has the single member set ∅) denotes at least one member
// set, so "empty family" and "the zero terminal" coincide.
func (n *Node[K]) IsEmpty() bool { return n.IsZero() }

// Count returns the number of distinct member sets n denotes. It is
// memoized at construction (count(take) + count(skip) for an internal
// node, 0 for ⊥, 1 for ⊤) so Count is O(1).
func (n *Node[K]) Count() uint64 { return n.count }

// Hash returns n's structural fingerprint. It is stable for the
// lifetime of the process but carries no meaning across processes.
func (n *Node[K]) Hash() uint64 { return n.hash }

// skipMost follows skip edges until a terminal is reached. It is the
// building block for the empty-set membership check used throughout the
// set-algebra kernel and by Contains.
func skipMost[K cmp.Ordered](n *Node[K]) *Node[K] {
	for !n.IsTerminal() {
		n = n.skip
	}
	return n
}
