package hierarchy

import "iter"

// Mask selects which nodes a traversal should consider a match. Spec.md
// §4.2 notes that, today, there is exactly one mask value in use; the type
// stays a bitset rather than a bool so a future predicate can be added
// without breaking every call site.
type Mask uint8

const (
	// MaskDirectlyInstantiated matches nodes whose DirectlyInstantiated is
	// true.
	MaskDirectlyInstantiated Mask = 1 << 0
)

// matches reports whether n satisfies mask. A zero Mask matches everything.
func (n *Node) matches(mask Mask) bool {
	if mask == 0 {
		return true
	}
	if mask&MaskDirectlyInstantiated != 0 {
		return n.directlyInstantiated
	}
	return true
}

// ControlFlow is the ternary result a traversal callback returns.
type ControlFlow int

const (
	// Continue proceeds to the next node in traversal order.
	Continue ControlFlow = iota
	// SkipSubclasses prunes the current node's subtree but continues with
	// its siblings (and the rest of the walk beyond them).
	SkipSubclasses
	// Stop aborts the entire walk immediately.
	Stop
)

// ForEachSubclass walks the subclass tree in pre-order. mask filters which
// nodes f is actually invoked on; traversal itself always descends into
// every child regardless of whether that child matched, since SkipSubclasses
// is something only f can request (for a node it was called on) -- the mask
// is a display filter, not a pruning signal. strict excludes n itself from
// being a candidate (its children are still visited).
// The bool result reports whether the walk was aborted early via Stop --
// callers composing several traversals (eg. ClassSet chaining the node's
// own subtree with each foreign subtype root) use it to short-circuit the
// remaining sources.
func (n *Node) ForEachSubclass(mask Mask, strict bool, f func(*Node) ControlFlow) bool {
	var walk func(*Node) ControlFlow
	walk = func(node *Node) ControlFlow {
		cf := Continue
		if node.matches(mask) {
			cf = f(node)
		}

		switch cf {
		case Stop:
			return Stop
		case SkipSubclasses:
			return Continue
		}

		for _, c := range node.children {
			if walk(c) == Stop {
				return Stop
			}
		}
		return Continue
	}

	if strict {
		for _, c := range n.children {
			if walk(c) == Stop {
				return true
			}
		}
		return false
	}
	return walk(n) == Stop
}

// AnySubclass reports whether any node matching mask satisfies predicate,
// short-circuiting the walk as soon as one is found.
func (n *Node) AnySubclass(mask Mask, strict bool, predicate func(*Node) bool) bool {
	found := false
	n.ForEachSubclass(mask, strict, func(node *Node) ControlFlow {
		if predicate(node) {
			found = true
			return Stop
		}
		return Continue
	})
	return found
}

// SubclassesByMask returns a lazy, finite sequence of descendants matching
// mask. Each range over the returned iter.Seq starts a fresh traversal from
// scratch -- there is no cursor to rewind mid-walk: a given traversal only
// moves forward, never seeks backward within it.
func (n *Node) SubclassesByMask(mask Mask, strict bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.ForEachSubclass(mask, strict, func(node *Node) ControlFlow {
			if yield(node) {
				return Continue
			}
			return Stop
		})
	}
}
