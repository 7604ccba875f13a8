// Package sfdd implements set-family decision diagrams: a canonical,
// hash-consed DAG representation of a family of finite sets over an
// ordered key domain, plus a recursive set-algebra kernel (union,
// intersection, symmetric difference, subtraction) and a homomorphism
// algebra for expressing bulk transformations (insert, remove, filter,
// dive into a sub-level, and inductively defined rewrites) as values
// that compose and that a small optimizer can rewrite for cheaper
// application.
//
// A Factory mints every Node and Homomorphism over a single key domain
// K; nodes and homomorphisms from two different Factory values must
// never be mixed. Two nodes (or two homomorphisms other than Inductive)
// built from equal parameters by the same Factory are always the same
// pointer, so ==
// is set/homomorphism equality, not just reference equality, and every
// set-algebra and homomorphism-application cache can key on that
// identity directly instead of a deep comparison.
//
//	f := sfdd.NewFactory[int]()
//	a := f.Make([]int{1, 2}, []int{1})
//	b := f.Make([]int{2, 3})
//	fmt.Println(a.Union(b).Description()) // {{1,2},{1},{2,3}}
//
// Contains, Union, Intersection, SymmetricDifference and Subtract are
// the member-level and set-level operations on Node; All iterates every
// member set lazily; Description and Dump render a node for
// inspection. Insert, Remove, Filter, Dive and Inductive build
// homomorphisms; UnionHom/IntersectionHom/CompositionHom/FixedPointHom
// combine them;
// Optimize rewrites a homomorphism into an equivalent, cheaper one.
package sfdd
