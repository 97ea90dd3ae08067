package hierarchy

// GetLubOfInstantiatedSubclasses returns the most specific ancestor
// (possibly n itself) that dominates every directly-instantiated
// descendant, or nil if none of n's descendants (nor n itself) is
// instantiated. Spec.md §4.2: walk down from n following the unique child
// that contains all instantiated descendants; stop and return as soon as
// either the current node is itself directly instantiated, or more than one
// child carries instantiated descendants (a "split").
func (n *Node) GetLubOfInstantiatedSubclasses() *Node {
	if !n.IsInstantiated() {
		return nil
	}

	cur := n
	for {
		if cur.directlyInstantiated {
			return cur
		}

		var next *Node
		count := 0
		for _, c := range cur.children {
			if c.IsInstantiated() {
				count++
				next = c
			}
		}

		if count != 1 {
			// count == 0 cannot happen here: cur.IsInstantiated() is true
			// and cur is not directly instantiated, so indirectCount > 0
			// means some child must be instantiated. count > 1 is the
			// split case. Either way, cur is the answer.
			return cur
		}
		cur = next
	}
}
