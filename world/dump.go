package world

import (
	"fmt"
	"strings"

	"github.com/whirlwind-lang/cha/chamodel"
	"github.com/whirlwind-lang/cha/hierarchy"
)

// Dump renders the closed class world as plain text, grounded on
// logging/display.go's strings.Builder, line-by-line rendering style -- no
// templating engine is used anywhere in this engine's dependency corpus for
// this kind of structural dump.
//
// A nil cls renders the whole hierarchy starting at Object, showing only
// instantiated classes (instantiatedOnly). A non-nil cls renders every class
// related to it -- its ancestors and descendants along the subclass chain
// (withRespectTo) -- regardless of instantiation.
func (w *World) Dump(cls chamodel.Class) (string, error) {
	if err := w.requireClosed(); err != nil {
		return "", err
	}

	var sb strings.Builder
	if cls == nil {
		sb.WriteString("--- class world ---\n")
	} else {
		fmt.Fprintf(&sb, "--- class world (relative to %s) ---\n", cls.Name())
	}

	root := w.coreClasses.Object()
	node, ok := w.hierarchyTable.Get(root)
	if !ok {
		return sb.String(), nil
	}

	w.dumpNode(&sb, node, 0, cls)
	return sb.String(), nil
}

func (w *World) dumpNode(sb *strings.Builder, node *hierarchy.Node, depth int, withRespectTo chamodel.Class) {
	show := true
	if withRespectTo == nil {
		show = node.IsInstantiated()
	} else {
		show = relatesTo(node.Class(), withRespectTo)
	}

	if show {
		sb.WriteString(strings.Repeat(" ", depth))
		sb.WriteString(node.Class().Name())
		if node.DirectlyInstantiated() {
			sb.WriteString(" (instantiated)")
		} else if node.IsIndirectlyInstantiated() {
			sb.WriteString(" (indirectly instantiated)")
		}
		sb.WriteString("\n")
	}

	for _, child := range node.Children() {
		w.dumpNode(sb, child, depth+1, withRespectTo)
	}
}

// relatesTo reports whether candidate is an ancestor or descendant of
// target along the single-inheritance subclass chain.
func relatesTo(candidate, target chamodel.Class) bool {
	return chamodel.IsSubclassOf(candidate, target) || chamodel.IsSubclassOf(target, candidate)
}
