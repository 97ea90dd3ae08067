package classset

import (
	"iter"

	"github.com/whirlwind-lang/cha/hierarchy"
)

// ForEachSubtype walks the node's own subclass tree, then each foreign
// subtype root's subclass tree, in registration order. No deduplication set
// is needed: a class reaches a ClassSet as a foreign subtype iff it is not
// also a subclass, so the two domains never overlap (spec.md §4.3), and
// AddSubtype keeps the foreign roots' subtrees disjoint from one another.
func (cs *ClassSet) ForEachSubtype(mask hierarchy.Mask, strict bool, f func(*hierarchy.Node) hierarchy.ControlFlow) {
	if cs.node.ForEachSubclass(mask, strict, f) {
		return
	}
	for _, root := range cs.foreignSubtypes {
		if root.ForEachSubclass(mask, false, f) {
			return
		}
	}
}

// AnySubtype reports whether any node matching mask in the full subtype
// traversal satisfies predicate.
func (cs *ClassSet) AnySubtype(mask hierarchy.Mask, strict bool, predicate func(*hierarchy.Node) bool) bool {
	found := false
	cs.ForEachSubtype(mask, strict, func(n *hierarchy.Node) hierarchy.ControlFlow {
		if predicate(n) {
			found = true
			return hierarchy.Stop
		}
		return hierarchy.Continue
	})
	return found
}

// SubtypesByMask returns a lazy, finite sequence: the node's own subclass
// traversal, then each foreign subtype root's subclass traversal, in order.
// Each range over the returned iter.Seq starts a fresh traversal.
func (cs *ClassSet) SubtypesByMask(mask hierarchy.Mask, strict bool) iter.Seq[*hierarchy.Node] {
	return func(yield func(*hierarchy.Node) bool) {
		cs.ForEachSubtype(mask, strict, func(n *hierarchy.Node) hierarchy.ControlFlow {
			if yield(n) {
				return hierarchy.Continue
			}
			return hierarchy.Stop
		})
	}
}

// GetLubOfInstantiatedSubtypes mirrors hierarchy.Node's LUB (spec.md §4.3),
// extended across foreign subtypes: when every instantiated subtype is a
// plain subclass, the answer is exactly the subclass-tree LUB; once a
// foreign (interface-only) subtype is instantiated too, there is no single
// subclass-tree ancestor that dominates both branches, so the class itself
// -- which is by definition a supertype of every subtype, foreign or not --
// is the answer.
func (cs *ClassSet) GetLubOfInstantiatedSubtypes() *hierarchy.Node {
	if cs.InstantiatedSubtypeCount() == 0 {
		return nil
	}
	if cs.HasOnlyInstantiatedSubclasses() {
		return cs.node.GetLubOfInstantiatedSubclasses()
	}
	return cs.node
}
