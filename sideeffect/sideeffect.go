// Package sideeffect implements the SideEffectRegistry of spec.md §4.6: an
// element-to-SideEffects map plus the append-only predicate sets
// (cannotThrow, calledInLoop, mightBePassedToApply) that type inference
// refines after the class world closes.
//
// The element-to-SideEffects map stays a plain Go map keyed by declaration,
// since iteration order is never observed for it. The predicate sets use
// github.com/hashicorp/go-set/v3 -- grounded on
// other_examples/715d-unusedfunc__rta.go's use of the same package for
// unordered membership sets in a reachability analysis --
// because, unlike every hierarchy/mixin collection in this engine, these
// sets have no ordering contract to honor.
package sideeffect

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/whirlwind-lang/cha/chamodel"
	"github.com/whirlwind-lang/cha/funcset"
	"github.com/whirlwind-lang/cha/report"
)

// Backend is the minimal injected capability this package needs from
// spec.md §6's Backend: whether an element is backed by native code (native
// fields may alias changing host state, so they can never be proven
// unchanging).
type Backend interface {
	IsNative(e chamodel.Element) bool
}

// ResolverWorld is the minimal injected capability this package needs from
// spec.md §6's ResolverWorld.
type ResolverWorld interface {
	// HasInvokedSetter reports whether any call site invokes a setter for
	// e that the resolver observed.
	HasInvokedSetter(e chamodel.Element, world chamodel.World) bool
	// HasFieldSetter reports whether e has a recorded field-setter
	// (spec.md §4.6's "fieldSetters").
	HasFieldSetter(e chamodel.Element) bool
}

// ClosureCallMethod is an optional capability an Element may implement: a
// synthesized closure call-method knows which expression element it was
// generated from, so might-be-passed-to-apply queries on it forward to that
// originating element (spec.md §4.6).
type ClosureCallMethod interface {
	chamodel.Element
	OriginatingExpression() chamodel.Element
}

// Registry is the side-effect/predicate index.
type Registry struct {
	backend       Backend
	resolverWorld ResolverWorld
	world         chamodel.World
	functions     *funcset.Set

	sideEffects map[chamodel.Element]chamodel.SideEffects
	free        *set.Set[chamodel.Element]

	cannotThrow          *set.Set[chamodel.Element]
	calledInLoop         *set.Set[chamodel.Element]
	mightBePassedToApply *set.Set[chamodel.Element]
}

// New creates an empty registry. world is passed through to ResolverWorld
// capability calls and to TypeMask.Contains when filtering FunctionSet
// candidates; functions is the World's shared FunctionSet.
func New(backend Backend, resolverWorld ResolverWorld, world chamodel.World, functions *funcset.Set) *Registry {
	return &Registry{
		backend:              backend,
		resolverWorld:        resolverWorld,
		world:                world,
		functions:            functions,
		sideEffects:          make(map[chamodel.Element]chamodel.SideEffects),
		free:                 set.New[chamodel.Element](0),
		cannotThrow:          set.New[chamodel.Element](0),
		calledInLoop:         set.New[chamodel.Element](0),
		mightBePassedToApply: set.New[chamodel.Element](0),
	}
}

// RegisterSideEffects stores eff under e's declaration, unless e was
// already proven side-effects-free -- once free, always free.
func (r *Registry) RegisterSideEffects(e chamodel.Element, eff chamodel.SideEffects) {
	decl := e.Declaration()
	if r.free.Contains(decl) {
		return
	}
	r.sideEffects[decl] = eff
}

// RegisterSideEffectsFree pins decl's entry to empty and marks it free, so
// any later RegisterSideEffects call on it becomes a no-op.
func (r *Registry) RegisterSideEffectsFree(e chamodel.Element) {
	decl := e.Declaration()
	r.free.Insert(decl)
	r.sideEffects[decl] = chamodel.SideEffectsEmpty
}

// GetSideEffectsOfElement returns e's stored side effects, installing a
// fresh empty entry if none exists yet so later callers see a consistent
// default. Calling this on a field or a generative constructor body is the
// documented caller-bug condition report.ErrRegistryShape names (spec.md
// §4.6, §7); it is reported through the sentinel-error channel rather than
// the injected Reporter, since -- unlike a class that looked unresolved
// deep inside a closed-world query -- the caller can check for it directly.
func (r *Registry) GetSideEffectsOfElement(e chamodel.Element) (chamodel.SideEffects, error) {
	if e.IsField() || e.IsGenerativeConstructorBody() {
		return chamodel.SideEffectsEmpty, fmt.Errorf("%w: %s", report.ErrRegistryShape, e.Name())
	}

	decl := e.Declaration()
	if eff, ok := r.sideEffects[decl]; ok {
		return eff, nil
	}
	r.sideEffects[decl] = chamodel.SideEffectsEmpty
	return chamodel.SideEffectsEmpty, nil
}

// GetSideEffectsOfSelector unions the side effects of every live candidate
// FunctionSet has for selector, narrowed by mask. closureCall selectors
// always return empty (spec.md §4.6).
func (r *Registry) GetSideEffectsOfSelector(selector chamodel.Selector, mask chamodel.TypeMask) chamodel.SideEffects {
	if selector.Kind == chamodel.CallKindClosureCall {
		return chamodel.SideEffectsEmpty
	}

	result := chamodel.SideEffectsEmpty
	for _, e := range r.functions.Filter(selector, mask, r.world) {
		if e.IsField() {
			switch selector.Kind {
			case chamodel.CallKindGetter:
				if !r.FieldNeverChanges(e) {
					result = result.Union(chamodel.DependsOnInstancePropertyStore)
				}
			case chamodel.CallKindSetter:
				result = result.Union(chamodel.ChangesInstanceProperty)
			default:
				result = result.Union(chamodel.SideEffectsAll)
			}
			continue
		}
		if eff, err := r.GetSideEffectsOfElement(e); err == nil {
			result = result.Union(eff)
		}
	}
	return result
}

// RegisterCannotThrow, GetCannotThrow, AddFunctionCalledInLoop,
// IsCalledInLoop are the plain append-only predicate sets of spec.md §4.6.
func (r *Registry) RegisterCannotThrow(e chamodel.Element) { r.cannotThrow.Insert(e.Declaration()) }
func (r *Registry) GetCannotThrow(e chamodel.Element) bool { return r.cannotThrow.Contains(e.Declaration()) }

func (r *Registry) AddFunctionCalledInLoop(e chamodel.Element) { r.calledInLoop.Insert(e.Declaration()) }
func (r *Registry) IsCalledInLoop(e chamodel.Element) bool     { return r.calledInLoop.Contains(e.Declaration()) }

// RegisterMightBePassedToApply records e (or, for a synthesized closure
// call-method, its originating expression) as possibly reaching
// Function.apply.
func (r *Registry) RegisterMightBePassedToApply(e chamodel.Element) {
	r.mightBePassedToApply.Insert(r.applyTarget(e).Declaration())
}

// GetMightBePassedToApply mirrors RegisterMightBePassedToApply's target
// resolution.
func (r *Registry) GetMightBePassedToApply(e chamodel.Element) bool {
	return r.mightBePassedToApply.Contains(r.applyTarget(e).Declaration())
}

func (r *Registry) applyTarget(e chamodel.Element) chamodel.Element {
	if ccm, ok := e.(ClosureCallMethod); ok {
		return ccm.OriginatingExpression()
	}
	return e
}

// FieldNeverChanges reports whether e is a field that the resolver has
// proven is assigned exactly once (spec.md §4.6). Native fields are never
// considered unchanging since they may alias changing host state.
func (r *Registry) FieldNeverChanges(e chamodel.Element) bool {
	if !e.IsField() {
		return false
	}
	if r.backend.IsNative(e) {
		return false
	}
	if e.IsFinal() || e.IsConst() {
		return true
	}
	if e.IsInstanceMember() {
		return !r.resolverWorld.HasInvokedSetter(e, r.world) && !r.resolverWorld.HasFieldSetter(e)
	}
	return false
}
