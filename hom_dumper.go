package sfdd

import (
	"fmt"
	"io"
	"strings"
)

// Description renders h as a symbolic expression, e.g.
// "Dive(3, Composition(Insert([3]), Insert([5])))", naming its kind and
// recursing into its children/keys/target/constant payload the way
// Node.Description renders member sets. It is meant for tests and debug
// output, not as a serialization format: it is not parsed back.
func (h *Homomorphism[K]) Description() string {
	var b strings.Builder
	h.describeRec(&b)
	return b.String()
}

func (h *Homomorphism[K]) String() string { return h.Description() }

func (h *Homomorphism[K]) describeRec(b *strings.Builder) {
	switch h.kind {
	case homIdentity:
		b.WriteString("Identity")
	case homConstant:
		fmt.Fprintf(b, "Constant(%s)", h.constant.Description())
	case homUnion:
		b.WriteString("Union(")
		h.describeChildren(b)
		b.WriteByte(')')
	case homIntersection:
		b.WriteString("Intersection(")
		h.describeChildren(b)
		b.WriteByte(')')
	case homComposition:
		b.WriteString("Composition(")
		h.describeChildren(b)
		b.WriteByte(')')
	case homFixedPoint:
		b.WriteString("FixedPoint(")
		h.children[0].describeRec(b)
		b.WriteByte(')')
	case homInsert:
		fmt.Fprintf(b, "Insert(%s)", describeKeys(h.keys))
	case homRemove:
		fmt.Fprintf(b, "Remove(%s)", describeKeys(h.keys))
	case homFilter:
		fmt.Fprintf(b, "Filter(%s)", describeKeys(h.keys))
	case homDive:
		fmt.Fprintf(b, "Dive(%v, ", h.target)
		h.children[0].describeRec(b)
		b.WriteByte(')')
	case homDiveTotal:
		fmt.Fprintf(b, "diveTotal(%v, ", h.target)
		h.children[0].describeRec(b)
		b.WriteByte(')')
	case homInductive:
		fmt.Fprintf(b, "Inductive(%p)", h)
	default:
		fatalf("sfdd: unreachable homomorphism kind %d in Description", h.kind)
	}
}

func (h *Homomorphism[K]) describeChildren(b *strings.Builder) {
	for i, c := range h.children {
		if i > 0 {
			b.WriteString(", ")
		}
		c.describeRec(b)
	}
}

func describeKeys[K comparable](keys []K) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%v", k)
	}
	b.WriteByte(']')
	return b.String()
}

// Dump writes a multi-line, indented rendering of h's tree to w: one line
// per homomorphism, indentation depth tracking descent into children, and
// shared subtrees (the same interned instance reachable by more than one
// path) marked "(shared)" on their second and later visits rather than
// rendered again in full. Inductive instances are never shared (they are
// never interned, see Inductive), so "(shared)" never appears for one.
func (h *Homomorphism[K]) Dump(w io.Writer) error {
	return h.dumpRec(w, 0, make(map[*Homomorphism[K]]bool))
}

// DumpString is Dump rendered to a string, for tests and quick
// inspection. It panics on a write error, which a strings.Builder never
// produces.
func (h *Homomorphism[K]) DumpString() string {
	var b strings.Builder
	if err := h.Dump(&b); err != nil {
		panic(err)
	}
	return b.String()
}

func (h *Homomorphism[K]) dumpRec(w io.Writer, depth int, visited map[*Homomorphism[K]]bool) error {
	indent := strings.Repeat(".", depth)

	if visited[h] {
		_, err := fmt.Fprintf(w, "%s[%s] (shared)\n", indent, kindName(h.kind))
		return err
	}
	visited[h] = true

	line := fmt.Sprintf("%s[%s]", indent, kindName(h.kind))
	if self := h.selfDescription(); self != "" {
		line += " " + self
	}
	if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
		return err
	}
	for _, c := range h.children {
		if err := c.dumpRec(w, depth+1, visited); err != nil {
			return err
		}
	}
	return nil
}

// selfDescription renders the payload specific to h's own node, without
// recursing into children (dumpRec handles recursion by indentation
// instead).
func (h *Homomorphism[K]) selfDescription() string {
	switch h.kind {
	case homConstant:
		return h.constant.Description()
	case homInsert, homRemove, homFilter:
		return describeKeys(h.keys)
	case homDive, homDiveTotal:
		return fmt.Sprintf("target=%v", h.target)
	case homInductive:
		return fmt.Sprintf("fn=%p", h)
	default:
		return ""
	}
}

func kindName(k homKind) string {
	switch k {
	case homIdentity:
		return "Identity"
	case homConstant:
		return "Constant"
	case homUnion:
		return "Union"
	case homIntersection:
		return "Intersection"
	case homComposition:
		return "Composition"
	case homFixedPoint:
		return "FixedPoint"
	case homInsert:
		return "Insert"
	case homRemove:
		return "Remove"
	case homFilter:
		return "Filter"
	case homDive:
		return "Dive"
	case homDiveTotal:
		return "diveTotal"
	case homInductive:
		return "Inductive"
	default:
		return "?"
	}
}
