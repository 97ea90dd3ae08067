package world

import (
	"sort"

	"github.com/whirlwind-lang/cha/chamodel"
	"github.com/whirlwind-lang/cha/hierarchy"
	"github.com/whirlwind-lang/cha/mixin"
)

// dynamicTop is the permissive mask locateSingleElement and
// extendMaskIfReachesAll substitute for a nil mask (spec.md §4.4: "a null
// mask is treated as the top (dynamic) mask"). It can never name a unique
// dispatch target and always needs noSuchMethod handling, since by
// definition it constrains nothing about the receiver.
type dynamicTopMask struct{}

func (dynamicTopMask) LocateSingleElement(chamodel.Selector, chamodel.World) chamodel.Element {
	return nil
}
func (dynamicTopMask) NeedsNoSuchMethodHandling(chamodel.Selector, chamodel.World) bool { return true }
func (dynamicTopMask) Contains(chamodel.Class, chamodel.World) bool                     { return true }

var dynamicTop chamodel.TypeMask = dynamicTopMask{}

// IsSubclassOf is the checked Query entry point; it asserts the world is
// closed and delegates to the pure structural check chamodel.IsSubclassOf
// shares with the mixin package.
func (w *World) IsSubclassOf(x, y chamodel.Class) (bool, error) {
	if err := w.requireClosed(); err != nil {
		return false, err
	}
	return chamodel.IsSubclassOf(x, y), nil
}

// IsSubtypeOf satisfies chamodel.World (so TypeMask implementations can call
// back into it) and is also this package's isSubtypeOf Query entry point.
// Structural-interface callers only ever reach this from within an
// already-closed-world call chain (a TypeMask resolving a selector that a
// checked entry point above already validated), so this method itself does
// not re-check closedness -- the checked wrapper methods are what enforce
// spec.md §4.4's "all assert closed == true" for external callers.
func (w *World) IsSubtypeOf(x, y chamodel.Class) bool {
	xd, yd := x.Declaration(), y.Declaration()

	if chamodel.AsInstanceOf(xd, yd) != nil {
		return true
	}

	if functionCls := w.coreClasses.Function(); functionCls != nil && yd == functionCls.Declaration() && xd.CallType() != nil {
		return true
	}

	return false
}

// FunctionsFor satisfies chamodel.World: the unfiltered FunctionSet lookup a
// TypeMask narrows itself.
func (w *World) FunctionsFor(selector chamodel.Selector) []chamodel.Element {
	return w.functions.All(selector)
}

// SubclassesOf returns cls's strict, directly-instantiated descendants,
// delegating to the hierarchy node (spec.md §4.4, §8 scenario 1). Spec.md
// names both subclassesOf and strictSubclassesOf but every worked example
// -- scenario 2's subtypesOf(I) = [J], never [I, J] -- excludes cls itself,
// so the two names are kept as aliases over the same strict traversal
// rather than inventing a reflexive variant no example exercises.
func (w *World) SubclassesOf(cls chamodel.Class) ([]chamodel.Class, error) {
	if err := w.requireClosed(); err != nil {
		return nil, err
	}
	return w.collectInstantiated(cls), nil
}

// StrictSubclassesOf is an alias of SubclassesOf; see its comment.
func (w *World) StrictSubclassesOf(cls chamodel.Class) ([]chamodel.Class, error) {
	return w.SubclassesOf(cls)
}

func (w *World) collectInstantiated(cls chamodel.Class) []chamodel.Class {
	node, ok := w.hierarchyTable.Get(cls)
	if !ok {
		return nil
	}
	var out []chamodel.Class
	for n := range node.SubclassesByMask(hierarchy.MaskDirectlyInstantiated, true) {
		out = append(out, n.Class())
	}
	return out
}

// SubtypesOf returns every strict subtype of cls -- subclasses plus foreign
// subtype roots and their subclasses -- unfiltered by instantiation. Unlike
// subclassesOf, scenario 4 of spec.md §8 requires an uninstantiated
// structural-Function subtype to still appear here, so no
// DirectlyInstantiated mask is applied; like subclassesOf, strictSubtypesOf
// is kept as an alias rather than a reflexive variant, for the same reason.
func (w *World) SubtypesOf(cls chamodel.Class) ([]chamodel.Class, error) {
	if err := w.requireClosed(); err != nil {
		return nil, err
	}
	return w.collectSubtypes(cls), nil
}

// StrictSubtypesOf is an alias of SubtypesOf; see its comment.
func (w *World) StrictSubtypesOf(cls chamodel.Class) ([]chamodel.Class, error) {
	return w.SubtypesOf(cls)
}

func (w *World) collectSubtypes(cls chamodel.Class) []chamodel.Class {
	cs, ok := w.classSets[cls.Declaration()]
	if !ok {
		return nil
	}
	var out []chamodel.Class
	for n := range cs.SubtypesByMask(0, true) {
		out = append(out, n.Class())
	}
	return out
}

// StrictSubclassCount is len(StrictSubclassesOf(cls)), exposed directly so
// callers don't have to materialize the slice just to count it.
func (w *World) StrictSubclassCount(cls chamodel.Class) (int, error) {
	classes, err := w.StrictSubclassesOf(cls)
	return len(classes), err
}

// InstantiatedSubtypeCount forwards to the class set (spec.md §3): the
// node's own instantiated-subclass count plus the sum over foreign
// subtypes.
func (w *World) InstantiatedSubtypeCount(cls chamodel.Class) (int, error) {
	if err := w.requireClosed(); err != nil {
		return 0, err
	}
	cs, ok := w.classSets[cls.Declaration()]
	if !ok {
		return 0, nil
	}
	return cs.InstantiatedSubtypeCount(), nil
}

// HasAnyStrictSubtype reports whether cls has any subtype at all
// (subclass or foreign), instantiated or not (spec.md §8 scenario 2).
func (w *World) HasAnyStrictSubtype(cls chamodel.Class) (bool, error) {
	if err := w.requireClosed(); err != nil {
		return false, err
	}
	cs, ok := w.classSets[cls.Declaration()]
	if !ok {
		return false, nil
	}
	return cs.AnySubtype(0, true, func(*hierarchy.Node) bool { return true }), nil
}

// HasOnlyInstantiatedSubclasses reports whether every instantiated subtype
// of cls is a plain subclass -- no foreign (interface-only) subtype is
// instantiated (spec.md §8 scenario 1's hasOnlySubclasses).
func (w *World) HasOnlyInstantiatedSubclasses(cls chamodel.Class) (bool, error) {
	if err := w.requireClosed(); err != nil {
		return false, err
	}
	cs, ok := w.classSets[cls.Declaration()]
	if !ok {
		return true, nil
	}
	return cs.HasOnlyInstantiatedSubclasses(), nil
}

// GetLubOfInstantiatedSubclasses returns the most specific ancestor
// (possibly cls itself) dominating every directly-instantiated descendant
// of cls, or nil if none is instantiated (spec.md §4.2).
func (w *World) GetLubOfInstantiatedSubclasses(cls chamodel.Class) (chamodel.Class, error) {
	if err := w.requireClosed(); err != nil {
		return nil, err
	}
	node, ok := w.hierarchyTable.Get(cls)
	if !ok {
		return nil, nil
	}
	lub := node.GetLubOfInstantiatedSubclasses()
	if lub == nil {
		return nil, nil
	}
	return lub.Class(), nil
}

// GetLubOfInstantiatedSubtypes is GetLubOfInstantiatedSubclasses over the
// full subtype traversal rather than just the subclass tree (spec.md
// §4.3).
func (w *World) GetLubOfInstantiatedSubtypes(cls chamodel.Class) (chamodel.Class, error) {
	if err := w.requireClosed(); err != nil {
		return nil, err
	}
	cs, ok := w.classSets[cls.Declaration()]
	if !ok {
		return nil, nil
	}
	lub := cs.GetLubOfInstantiatedSubtypes()
	if lub == nil {
		return nil, nil
	}
	return lub.Class(), nil
}

// HaveAnyCommonSubtypes intersects a and b's full subtype traversals
// (unfiltered by instantiation). One side is materialized into a set and
// the other probed against it; an empty traversal on either side means no
// common subtype can exist.
func (w *World) HaveAnyCommonSubtypes(a, b chamodel.Class) (bool, error) {
	if err := w.requireClosed(); err != nil {
		return false, err
	}
	csA, okA := w.classSets[a.Declaration()]
	csB, okB := w.classSets[b.Declaration()]
	if !okA || !okB {
		return false, nil
	}

	seen := make(map[chamodel.Class]bool)
	empty := true
	for n := range csA.SubtypesByMask(0, false) {
		seen[n.Class()] = true
		empty = false
	}
	if empty {
		return false, nil
	}

	for n := range csB.SubtypesByMask(0, false) {
		if seen[n.Class()] {
			return true, nil
		}
	}
	return false, nil
}

// CommonSupertypesOf implements spec.md §4.4's commonSupertypesOf: the
// ordered list of ancestors shared by every class in classes, walking
// upward from the shallowest input's depth toward Object.
func (w *World) CommonSupertypesOf(classes []chamodel.Class) ([]chamodel.Class, error) {
	if err := w.requireClosed(); err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, nil
	}

	minMaxDepth := classes[0].Declaration().HierarchyDepth()
	for _, c := range classes[1:] {
		if d := c.Declaration().HierarchyDepth(); d < minMaxDepth {
			minMaxDepth = d
		}
	}

	chain := ancestorChainUpTo(classes[0].Declaration(), minMaxDepth)

	var out []chamodel.Class
	for _, candidate := range chain {
		accepted := true
		for _, other := range classes[1:] {
			if chamodel.AsInstanceOf(other.Declaration(), candidate) == nil {
				accepted = false
				break
			}
		}
		if accepted {
			out = append(out, candidate)
		}
	}
	return out, nil
}

// ancestorChainUpTo returns cls (if its own depth is <= maxDepth) followed
// by its supertypes with Depth <= maxDepth, in decreasing-depth order
// (nearest ancestor first, terminating with Object). Supertypes() lists
// interface and mixin supertypes after the whole superclass chain, so the
// chain is stably sorted by depth; entries of equal depth keep their
// Supertypes() order.
func ancestorChainUpTo(cls chamodel.Class, maxDepth int) []chamodel.Class {
	var chain []chamodel.Class
	if cls.HierarchyDepth() <= maxDepth {
		chain = append(chain, cls)
	}
	for _, st := range cls.Supertypes() {
		if st.Depth <= maxDepth {
			chain = append(chain, st.Class)
		}
	}
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].HierarchyDepth() > chain[j].HierarchyDepth()
	})
	return chain
}

// EverySubtypeIsSubclassOfOrMixinUseOf is memoized in a 2-level table keyed
// by (x.declaration, y.declaration); entries are installed on first query
// and never evicted (spec.md §4.4).
func (w *World) EverySubtypeIsSubclassOfOrMixinUseOf(x, y chamodel.Class) (bool, error) {
	if err := w.requireClosed(); err != nil {
		return false, err
	}

	xd, yd := x.Declaration(), y.Declaration()
	inner, ok := w.everySubtypeCache[xd]
	if !ok {
		inner = make(map[chamodel.Class]bool)
		w.everySubtypeCache[xd] = inner
	} else if v, ok := inner[yd]; ok {
		return v, nil
	}

	result := true
	if cs, ok := w.classSets[xd]; ok {
		cs.AnySubtype(0, true, func(n *hierarchy.Node) bool {
			sub := n.Class()
			if chamodel.IsSubclassOf(sub, yd) || mixin.IsSubclassOfMixinUseOf(sub, yd) {
				return false
			}
			result = false
			return true
		})
	}

	inner[yd] = result
	return result, nil
}

// HasAnySubclassThatImplements satisfies mixin.Lookup and is also the
// direct Query entry point of spec.md §4.4: a lookup in the
// typesImplementedBySubclasses table Close built, requiring no further
// assertion beyond Close having run (callers reach this exclusively through
// already-checked paths: the mixin package's post-close-only MixinIndex, or
// a driver that has itself already closed the world).
func (w *World) HasAnySubclassThatImplements(superclass, typ chamodel.Class) bool {
	set, ok := w.typesImplementedBySubclasses[superclass.Declaration()]
	if !ok {
		return false
	}
	return set[typ.Declaration()]
}

// IsInstantiated satisfies mixin.Lookup: direct-or-indirect instantiation
// per hierarchy.Node.IsInstantiated.
func (w *World) IsInstantiated(cls chamodel.Class) bool {
	node, ok := w.hierarchyTable.Get(cls)
	if !ok {
		return false
	}
	return node.IsInstantiated()
}

// AllMixinUsesOf returns every application of mixinCls, including non-live
// ones, in registration order. Unlike MixinUsesOf it needs no closed-world
// state, so it is not gated on Close having run.
func (w *World) AllMixinUsesOf(mixinCls chamodel.Class) []chamodel.Class {
	return w.mixinIndex.AllMixinUsesOf(mixinCls)
}

// MixinUsesOf returns the live projection of AllMixinUsesOf, computed
// lazily on first call after close (spec.md §4.5).
func (w *World) MixinUsesOf(mixinCls chamodel.Class) ([]chamodel.Class, error) {
	if err := w.requireClosed(); err != nil {
		return nil, err
	}
	if !w.mixinUsesOfTraced {
		w.mixinUsesOfTraced = true
		w.tracer.Trace("computing live mixin uses")
	}
	return w.mixinIndex.MixinUsesOf(mixinCls), nil
}

// IsSubclassOfMixinUseOf reports whether cls or any of its superclasses is
// a mixin application whose mixin is mixinCls's declaration (spec.md §4.5).
func (w *World) IsSubclassOfMixinUseOf(cls, mixinCls chamodel.Class) (bool, error) {
	if err := w.requireClosed(); err != nil {
		return false, err
	}
	return mixin.IsSubclassOfMixinUseOf(cls, mixinCls), nil
}

// HasAnySubclassThatMixes delegates to the mixin index.
func (w *World) HasAnySubclassThatMixes(superclass, mixinCls chamodel.Class) (bool, error) {
	if err := w.requireClosed(); err != nil {
		return false, err
	}
	return w.mixinIndex.HasAnySubclassThatMixes(superclass, mixinCls), nil
}

// HasAnySubclassOfMixinUseThatImplements delegates to the mixin index.
func (w *World) HasAnySubclassOfMixinUseThatImplements(mixinCls, typ chamodel.Class) (bool, error) {
	if err := w.requireClosed(); err != nil {
		return false, err
	}
	return w.mixinIndex.HasAnySubclassOfMixinUseThatImplements(mixinCls, typ), nil
}

// LocateSingleElement delegates to mask.LocateSingleElement(selector, w); a
// nil mask is treated as the dynamic top mask (spec.md §4.4).
func (w *World) LocateSingleElement(selector chamodel.Selector, mask chamodel.TypeMask) (chamodel.Element, error) {
	if err := w.requireClosed(); err != nil {
		return nil, err
	}
	if mask == nil {
		mask = dynamicTop
	}
	return mask.LocateSingleElement(selector, w), nil
}

// LocateSingleField is LocateSingleElement filtered to field results.
func (w *World) LocateSingleField(selector chamodel.Selector, mask chamodel.TypeMask) (chamodel.Element, error) {
	e, err := w.LocateSingleElement(selector, mask)
	if err != nil || e == nil || !e.IsField() {
		return nil, err
	}
	return e, nil
}

// ExtendMaskIfReachesAll broadens mask to the dynamic top when invokeOn
// support is enabled and mask can't rule out a noSuchMethod dispatch; a nil
// mask is always broadened (spec.md §4.4).
func (w *World) ExtendMaskIfReachesAll(selector chamodel.Selector, mask chamodel.TypeMask) (chamodel.TypeMask, error) {
	if err := w.requireClosed(); err != nil {
		return nil, err
	}
	if mask == nil {
		return dynamicTop, nil
	}
	if w.options.EnableInvokeOn && mask.NeedsNoSuchMethodHandling(selector, w) {
		return dynamicTop, nil
	}
	return mask, nil
}
