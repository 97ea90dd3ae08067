package world

import (
	"github.com/whirlwind-lang/cha/chamodel"
	"github.com/whirlwind-lang/cha/report"
)

// Close runs the phase transition of spec.md §4.7. It returns
// report.ErrAlreadyClosed if the world has already closed -- spec.md §7
// classifies a double close as IllegalPhase, a caller-bug condition the
// driver can check for with errors.Is rather than a halt-compilation
// InvariantViolation.
func (w *World) Close() error {
	if w.closed {
		return report.ErrAlreadyClosed
	}

	for _, cls := range w.resolverWorld.DirectlyInstantiatedClasses() {
		w.closeOneInstantiation(cls)
	}

	w.wireStructuralFunctionSubtypes()

	w.closed = true
	w.tracer.Trace("world closed (%d classes registered)", len(w.registrationOrder))
	return nil
}

// closeOneInstantiation runs spec.md §4.7 step 1 for a single directly
// instantiated class.
func (w *World) closeOneInstantiation(cls chamodel.Class) {
	decl := cls.Declaration()

	if w.options.Incremental && w.alreadyPopulated[decl] {
		return
	}

	if !decl.IsDeclaration() || !decl.IsResolved() {
		w.reporter.InternalError(decl, "directly instantiated class is not a resolved declaration")
		return
	}

	w.alreadyPopulated[decl] = true
	w.markInstantiated(decl)
}

// markInstantiated stamps directlyInstantiated on cls's hierarchy node,
// propagates the indirect-instantiation count up the superclass chain, and
// unions cls's implemented types into every ancestor's
// typesImplementedBySubclasses entry (spec.md §4.7 steps 1c-1e). It is
// idempotent: a class already marked is left untouched, which is what makes
// RegisterClosureClass (re-invoking this after close) and the incremental
// re-close guard safe to call more than once for the same class.
func (w *World) markInstantiated(cls chamodel.Class) {
	node := w.hierarchyTable.EnsureNode(cls)
	if !node.MarkDirectlyInstantiated() {
		return
	}
	node.PropagateInstantiation()

	decl := node.Class()
	for p := node; p != nil; p = p.Parent() {
		w.unionImplementedTypes(p.Class(), decl)
	}
}

// unionImplementedTypes records that ancestor has an instantiated subclass
// (cls) implementing every one of cls's supertypes, backing
// hasAnySubclassThatImplements.
func (w *World) unionImplementedTypes(ancestor, cls chamodel.Class) {
	set := w.typesImplementedBySubclasses[ancestor]
	if set == nil {
		set = make(map[chamodel.Class]bool)
		w.typesImplementedBySubclasses[ancestor] = set
	}
	set[cls.Declaration()] = true
	for _, st := range cls.Supertypes() {
		set[st.Class.Declaration()] = true
	}
}

// wireStructuralFunctionSubtypes runs spec.md §4.7 step 2: every registered
// class with a non-nil CallType is structurally a Function and must appear
// as a foreign subtype of Function's ClassSet, even though it never
// declared `implements Function`.
func (w *World) wireStructuralFunctionSubtypes() {
	functionCls := w.coreClasses.Function()
	if functionCls == nil {
		return
	}
	functionSet := w.classSetFor(functionCls)

	for _, decl := range w.registrationOrder {
		if decl.CallType() == nil {
			continue
		}
		node, ok := w.hierarchyTable.Get(decl)
		if !ok {
			continue
		}
		functionSet.AddSubtype(node)
	}
}
