// Package funcset implements the FunctionSet of spec.md §4.1/§4.6: the
// engine's index of live instance members, keyed by selector name, filtered
// by receiver mask when a caller (the side-effect registry, or an injected
// TypeMask resolving a call site) needs candidates for a specific selector.
package funcset

import "github.com/whirlwind-lang/cha/chamodel"

// Set is the live-member index. Elements are registered in
// World.RegisterUsedElement and never removed -- the open phase only ever
// grows the candidate set.
type Set struct {
	byName map[string][]chamodel.Element
}

// New creates an empty function set.
func New() *Set {
	return &Set{byName: make(map[string][]chamodel.Element)}
}

// Register adds e as a live candidate under its own name. Callers are
// expected to have already checked IsInstanceMember() && !IsAbstract()
// per spec.md §4.1's registerUsedElement contract; Register itself does
// not re-check, matching the teacher's pattern of pushing validation to the
// call site (eg. common.WhirlPackage.ImportFromNamespace) rather than
// duplicating it in the collection.
func (s *Set) Register(e chamodel.Element) {
	name := e.Declaration().Name()
	s.byName[name] = append(s.byName[name], e.Declaration())
}

// All returns every candidate registered under selector.Name, unfiltered by
// receiver. This is the capability chamodel.World.FunctionsFor exposes to
// an injected TypeMask.
func (s *Set) All(selector chamodel.Selector) []chamodel.Element {
	return s.byName[selector.Name]
}

// Filter returns the candidates under selector.Name whose enclosing class
// overlaps mask. A nil mask (the dynamic top) returns every candidate
// unfiltered.
func (s *Set) Filter(selector chamodel.Selector, mask chamodel.TypeMask, world chamodel.World) []chamodel.Element {
	candidates := s.byName[selector.Name]
	if mask == nil || len(candidates) == 0 {
		return candidates
	}

	out := make([]chamodel.Element, 0, len(candidates))
	for _, e := range candidates {
		owner := e.EnclosingClass()
		if owner == nil || mask.Contains(owner, world) {
			out = append(out, e)
		}
	}
	return out
}
