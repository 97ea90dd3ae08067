// Package classset implements the subtype DAG of spec.md §4.3: a wrapper
// around a class's own hierarchy.Node plus the ordered list of foreign
// subtype roots -- classes that implement but do not extend it.
package classset

import "github.com/whirlwind-lang/cha/hierarchy"

// ClassSet is the per-class subtype index.
type ClassSet struct {
	node            *hierarchy.Node
	foreignSubtypes []*hierarchy.Node
	foreignSeen     map[*hierarchy.Node]bool
}

// New wraps node in a fresh, empty ClassSet.
func New(node *hierarchy.Node) *ClassSet {
	return &ClassSet{node: node}
}

// Node returns the hierarchy node this set wraps.
func (cs *ClassSet) Node() *hierarchy.Node { return cs.node }

// ForeignSubtypes returns the foreign subtype roots in registration order.
// Callers must not mutate the returned slice.
func (cs *ClassSet) ForeignSubtypes() []*hierarchy.Node { return cs.foreignSubtypes }

// AddSubtype appends node as a foreign subtype root, unless it is already
// reachable through cs's own subclass tree (spec.md §4.3), was already added
// as a foreign root by an earlier call, or lies in the subtree of an existing
// foreign root. Existing foreign roots that lie in node's subtree are dropped,
// so no two roots' subtrees overlap.
func (cs *ClassSet) AddSubtype(node *hierarchy.Node) {
	if cs.reachableViaSubclassTree(node) {
		return
	}
	if cs.foreignSeen == nil {
		cs.foreignSeen = make(map[*hierarchy.Node]bool)
	}
	if cs.foreignSeen[node] {
		return
	}
	for _, f := range cs.foreignSubtypes {
		if f.AnySubclass(0, false, func(n *hierarchy.Node) bool { return n == node }) {
			return
		}
	}
	kept := make([]*hierarchy.Node, 0, len(cs.foreignSubtypes)+1)
	for _, f := range cs.foreignSubtypes {
		if !node.AnySubclass(0, false, func(n *hierarchy.Node) bool { return n == f }) {
			kept = append(kept, f)
		}
	}
	cs.foreignSeen[node] = true
	cs.foreignSubtypes = append(kept, node)
}

func (cs *ClassSet) reachableViaSubclassTree(node *hierarchy.Node) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == cs.node {
			return true
		}
	}
	return false
}

// InstantiatedSubtypeCount is the node's own instantiated-subclass count
// plus the sum over foreign subtypes.
func (cs *ClassSet) InstantiatedSubtypeCount() int {
	total := countInstantiated(cs.node)
	for _, f := range cs.foreignSubtypes {
		total += countInstantiated(f)
	}
	return total
}

func countInstantiated(n *hierarchy.Node) int {
	count := 0
	n.ForEachSubclass(hierarchy.MaskDirectlyInstantiated, false, func(*hierarchy.Node) hierarchy.ControlFlow {
		count++
		return hierarchy.Continue
	})
	return count
}

// HasOnlyInstantiatedSubclasses reports whether no foreign subtype is
// instantiated -- ie. every instantiated subtype of this class is a plain
// subclass.
func (cs *ClassSet) HasOnlyInstantiatedSubclasses() bool {
	for _, f := range cs.foreignSubtypes {
		if f.IsInstantiated() {
			return false
		}
	}
	return true
}
