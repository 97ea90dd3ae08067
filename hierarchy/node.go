// Package hierarchy implements the subclass tree that spec.md §4.2
// describes: one HierarchyNode per registered class, parent-linked,
// insertion-ordered children, with the live/directly/indirectly
// instantiated counters World.Close stamps in.
package hierarchy

import "github.com/whirlwind-lang/cha/chamodel"

// Node is a single class's entry in the subclass tree.
//
// Invariant I1 (spec.md §3): indirectlyInstantiatedCount equals the sum
// over children of (child.directlyInstantiated ? 1 : 0) +
// child.indirectlyInstantiatedCount. MarkDirectlyInstantiated and
// PropagateInstantiation together maintain it: the former flips this
// node's own flag, the latter walks every strict ancestor once and bumps
// each by exactly one.
//
// Invariant I2: a node exists iff its superclass chain up to the root also
// exists, enforced by Table.EnsureNode's recursion.
type Node struct {
	cls    chamodel.Class
	parent *Node
	depth  int

	directlyInstantiated        bool
	indirectlyInstantiatedCount uint32

	// children is insertion order, not a sorted or hashed order -- spec.md
	// §9 and §5 both call this out as part of the observable contract.
	children []*Node
}

// Class returns the declaration handle this node was created for.
func (n *Node) Class() chamodel.Class { return n.cls }

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Depth is 0 at the root, strictly increasing along parent links.
func (n *Node) Depth() int { return n.depth }

// Children returns the node's direct children in insertion (registration)
// order. Callers must not mutate the returned slice.
func (n *Node) Children() []*Node { return n.children }

// DirectlyInstantiated reports whether this exact class was proven
// instantiated by the resolver.
func (n *Node) DirectlyInstantiated() bool { return n.directlyInstantiated }

// IndirectlyInstantiatedCount is the number of strict descendants that are
// directly instantiated.
func (n *Node) IndirectlyInstantiatedCount() uint32 { return n.indirectlyInstantiatedCount }

// IsIndirectlyInstantiated reports whether any strict descendant is
// directly instantiated.
func (n *Node) IsIndirectlyInstantiated() bool { return n.indirectlyInstantiatedCount > 0 }

// IsInstantiated is the derived property spec.md §3 defines:
// directlyInstantiated || indirectlyInstantiatedCount > 0.
func (n *Node) IsInstantiated() bool {
	return n.directlyInstantiated || n.indirectlyInstantiatedCount > 0
}

// MarkDirectlyInstantiated flips the node's own flag. It reports false (and
// changes nothing) if the node was already marked, so callers can use the
// result to decide whether PropagateInstantiation still needs to run --
// this is what makes World.Close's "alreadyPopulated" re-close guard safe.
func (n *Node) MarkDirectlyInstantiated() bool {
	if n.directlyInstantiated {
		return false
	}
	n.directlyInstantiated = true
	return true
}

// PropagateInstantiation increments indirectlyInstantiatedCount on every
// strict ancestor by exactly one. Call it once, right after
// MarkDirectlyInstantiated returns true for this same node.
func (n *Node) PropagateInstantiation() {
	for p := n.parent; p != nil; p = p.parent {
		p.indirectlyInstantiatedCount++
	}
}

// Table owns the full set of Nodes for a world, keyed by declaration.
type Table struct {
	nodes map[chamodel.Class]*Node
}

// NewTable creates an empty node table.
func NewTable() *Table {
	return &Table{nodes: make(map[chamodel.Class]*Node)}
}

// Get looks up the node for cls (canonicalized to its declaration). The
// second result is false for an unregistered class -- spec.md §7 documents
// this as a non-failure: callers are expected to treat it as an empty
// query, not an error.
func (t *Table) Get(cls chamodel.Class) (*Node, bool) {
	n, ok := t.nodes[cls.Declaration()]
	return n, ok
}

// EnsureNode recursively ensures cls and its entire superclass chain have
// nodes, creating them in call order. A node is only ever appended to its
// parent's child list the first time something reaches it, which is what
// keeps child order deterministic and equal to registration order
// (spec.md §4.2, §5, §9).
func (t *Table) EnsureNode(cls chamodel.Class) *Node {
	decl := cls.Declaration()
	if n, ok := t.nodes[decl]; ok {
		return n
	}

	var parent *Node
	if super := decl.Superclass(); super != nil {
		parent = t.EnsureNode(super)
	}

	n := &Node{cls: decl, parent: parent, depth: decl.HierarchyDepth()}
	t.nodes[decl] = n
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// Len returns the number of registered nodes, test-only convenience.
func (t *Table) Len() int { return len(t.nodes) }
