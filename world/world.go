// Package world implements the World façade of spec.md §4.1: the engine's
// single entry point, owning the hierarchy table, per-class class sets, the
// mixin index, the function set, and the side-effect registry, and
// orchestrating the open-to-closed phase transition.
package world

import (
	"github.com/whirlwind-lang/cha/chamodel"
	"github.com/whirlwind-lang/cha/classset"
	"github.com/whirlwind-lang/cha/funcset"
	"github.com/whirlwind-lang/cha/hierarchy"
	"github.com/whirlwind-lang/cha/mixin"
	"github.com/whirlwind-lang/cha/report"
	"github.com/whirlwind-lang/cha/sideeffect"
)

// World is the engine façade. It is not safe for concurrent use -- spec.md
// §5 describes a single-threaded cooperative model, matching every example
// in this corpus's compiler front ends, none of which guard their resolver
// state with a mutex.
type World struct {
	coreClasses   CoreClasses
	backend       Backend
	resolverWorld ResolverWorld
	options       Options
	reporter      report.Reporter
	tracer        report.Tracer

	hierarchyTable *hierarchy.Table
	classSets      map[chamodel.Class]*classset.ClassSet
	mixinIndex     *mixin.Index
	functions      *funcset.Set
	sideEffects    *sideeffect.Registry

	// registrationOrder is every class that has a class set, in the order
	// classSetFor created it: classes passed to RegisterClass or
	// RegisterClosureClass, plus the supertypes and the Function class whose
	// sets were created while wiring them -- close() walks it once to wire
	// structural-Function foreign subtypes deterministically (spec.md
	// §4.7 step 2). classSets' map keys cannot serve this role: Go map
	// iteration order is randomized, and spec.md §5 requires identical
	// iteration sequences across runs over identical inputs.
	registrationOrder []chamodel.Class

	typedefs     []chamodel.Element
	typedefSeen  map[chamodel.Element]bool

	closed bool

	// alreadyPopulated backs the incremental re-close guard of spec.md
	// §4.7 step 1a.
	alreadyPopulated map[chamodel.Class]bool

	// typesImplementedBySubclasses[ancestor] is the set of declarations
	// (classes and interfaces) implemented by some instantiated subclass
	// of ancestor, built during close() and consulted by
	// hasAnySubclassThatImplements (spec.md §4.4, §4.7 step 1d).
	typesImplementedBySubclasses map[chamodel.Class]map[chamodel.Class]bool

	// everySubtypeCache memoizes everySubtypeIsSubclassOfOrMixinUseOf,
	// keyed by (x.declaration, y.declaration), entries installed on first
	// query and never evicted (spec.md §4.4).
	everySubtypeCache map[chamodel.Class]map[chamodel.Class]bool

	// mixinUsesOfTraced guards the one trace line emitted for the first
	// MixinUsesOf call. An earlier HasAnySubclassOfMixinUseThatImplements
	// call computes mixinIndex's live-use projection without a trace line.
	mixinUsesOfTraced bool
}

// New creates an open, empty World wired to the given injected capabilities.
// tracer may be the zero report.Tracer (TraceSilent) for a quiet world.
func New(coreClasses CoreClasses, backend Backend, resolverWorld ResolverWorld, options Options, reporter report.Reporter, tracer report.Tracer) *World {
	w := &World{
		coreClasses:                  coreClasses,
		backend:                      backend,
		resolverWorld:                resolverWorld,
		options:                      options,
		reporter:                     reporter,
		tracer:                       tracer,
		hierarchyTable:               hierarchy.NewTable(),
		classSets:                    make(map[chamodel.Class]*classset.ClassSet),
		functions:                    funcset.New(),
		typedefSeen:                  make(map[chamodel.Element]bool),
		alreadyPopulated:             make(map[chamodel.Class]bool),
		typesImplementedBySubclasses: make(map[chamodel.Class]map[chamodel.Class]bool),
		everySubtypeCache:            make(map[chamodel.Class]map[chamodel.Class]bool),
	}
	w.mixinIndex = mixin.New(w)
	w.sideEffects = sideeffect.New(backend, resolverWorld, w, w.functions)
	return w
}

// HasClosedWorldAssumption reports whether the engine may apply the
// closed-world soundness guarantee. It is false under incremental
// compilation (spec.md §1, §9): callers must decline unsafe optimizations
// when this is false, even after Close has run.
func (w *World) HasClosedWorldAssumption() bool {
	return w.closed && !w.options.Incremental
}

// IsClosed reports whether Close has run.
func (w *World) IsClosed() bool { return w.closed }

func (w *World) requireClosed() error {
	if !w.closed {
		return report.ErrWorldNotClosed
	}
	return nil
}

// GetClassHierarchyNode is the test-only accessor spec.md §6 names
// (getClassHierarchyNode). The second result is false for an unregistered
// class.
func (w *World) GetClassHierarchyNode(cls chamodel.Class) (*hierarchy.Node, bool) {
	return w.hierarchyTable.Get(cls)
}

// GetClassSet is the test-only accessor spec.md §6 names (getClassSet).
func (w *World) GetClassSet(cls chamodel.Class) (*classset.ClassSet, bool) {
	cs, ok := w.classSets[cls.Declaration()]
	return cs, ok
}

// AllTypedefs returns every registered typedef in registration order.
func (w *World) AllTypedefs() []chamodel.Element {
	return w.typedefs
}

func (w *World) classSetFor(cls chamodel.Class) *classset.ClassSet {
	decl := cls.Declaration()
	if cs, ok := w.classSets[decl]; ok {
		return cs
	}
	node := w.hierarchyTable.EnsureNode(decl)
	cs := classset.New(node)
	w.classSets[decl] = cs
	w.registrationOrder = append(w.registrationOrder, decl)
	return cs
}
