package sfdd

import (
	"fmt"
	"strings"
)

// Description renders n as a literal set of sets, e.g. "{{1,2},{1}}",
// in the same order All() enumerates them. It is meant for small
// families in tests and debug output, not as a serialization format: it
// is not parsed back.
func (n *Node[K]) Description() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for set := range n.All() {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteByte('{')
		for i, k := range set {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%v", k)
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}

func (n *Node[K]) String() string { return n.Description() }
