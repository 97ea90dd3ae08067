package world

import "github.com/whirlwind-lang/cha/chamodel"

// RegisterClass ensures a hierarchy node and class set exist for cls, and
// wires it into the subtype DAG of every supertype it reaches through an
// interface or mixin edge rather than plain subclassing. It does not mark
// cls instantiated (spec.md §4.1).
func (w *World) RegisterClass(cls chamodel.Class) {
	w.classSetFor(cls)
	w.wireForeignSupertypes(cls)
}

// RegisterClosureClass ensures a hierarchy node and class set for cls, wires
// its foreign supertypes, and marks it directly instantiated. Unlike
// RegisterClass, this is callable after Close: closure classes are
// synthesized during IR construction, well after the class world has closed
// (spec.md §4.1, §4.7).
func (w *World) RegisterClosureClass(cls chamodel.Class) {
	w.classSetFor(cls)
	w.wireForeignSupertypes(cls)
	w.markInstantiated(cls)
}

// wireForeignSupertypes adds cls's hierarchy node as a foreign subtype root
// of every supertype cls reaches through an interface or mixin edge --
// anything in cls.Supertypes() that plain subclassing (chamodel.IsSubclassOf)
// doesn't already explain (spec.md §4.3's subtype DAG, §3's "isMixinApplication
// ... mixin class" and interface list both producing subtype edges). A
// supertype reached purely by extending is skipped: the subclass tree
// already makes it discoverable, and AddSubtype's own reachability check
// would have dropped it anyway.
func (w *World) wireForeignSupertypes(cls chamodel.Class) {
	decl := cls.Declaration()
	node, ok := w.hierarchyTable.Get(decl)
	if !ok {
		return
	}
	for _, st := range decl.Supertypes() {
		if chamodel.IsSubclassOf(decl, st.Class) {
			continue
		}
		w.classSetFor(st.Class).AddSubtype(node)
	}
}

// RegisterTypedef adds td to the flat, deduplicated, insertion-ordered
// typedef set.
func (w *World) RegisterTypedef(td chamodel.Element) {
	decl := td.Declaration()
	if w.typedefSeen[decl] {
		return
	}
	w.typedefSeen[decl] = true
	w.typedefs = append(w.typedefs, decl)
}

// RegisterUsedElement adds e to the FunctionSet if it is a live instance
// member: an abstract member has no body to dispatch to, so it is never a
// useful FunctionSet candidate (spec.md §4.1).
func (w *World) RegisterUsedElement(e chamodel.Element) {
	if e.IsInstanceMember() && !e.IsAbstract() {
		w.functions.Register(e)
	}
}

// RegisterMixinUse records that app mixes mixinCls in. mixinCls must be a
// declaration; violating that is an InvariantViolation, reported through the
// injected Reporter rather than returned, since spec.md §4.1 states the
// requirement as a precondition on mixin, not a recoverable caller choice
// (spec.md §7 classifies "a class offered to a query is not a declaration"
// as an InvariantViolation, not an IllegalPhase).
func (w *World) RegisterMixinUse(app, mixinCls chamodel.Class) {
	if err := w.mixinIndex.RegisterMixinUse(app, mixinCls); err != nil {
		w.reporter.InternalError(mixinCls, err.Error())
	}
}
