// Package mixin implements the MixinIndex of spec.md §4.5: which classes
// use a given mixin, and which of those uses are live -- reachable through
// a directly- or indirectly-instantiated class, possibly via a chain of
// named mixin applications.
package mixin

import (
	"fmt"

	"github.com/whirlwind-lang/cha/chamodel"
)

// Lookup is the minimal World capability this package needs. It is
// satisfied structurally by *world.World; kept as its own small interface
// so mixin never imports world (world imports mixin).
type Lookup interface {
	// IsInstantiated reports whether cls is directly or indirectly
	// instantiated in the closed world.
	IsInstantiated(cls chamodel.Class) bool

	// HasAnySubclassThatImplements reports whether any subclass of
	// superclass implements typ, per the table World.Close builds.
	HasAnySubclassThatImplements(superclass, typ chamodel.Class) bool
}

// Index is the per-world mixin-use index.
type Index struct {
	lookup Lookup

	// allUses maps a mixin's declaration to every application that mixes
	// it in, in registration order.
	allUses map[chamodel.Class][]chamodel.Class

	liveComputed bool
	live         map[chamodel.Class][]chamodel.Class
}

// New creates an empty mixin index backed by lookup.
func New(lookup Lookup) *Index {
	return &Index{
		lookup:  lookup,
		allUses: make(map[chamodel.Class][]chamodel.Class),
	}
}

// RegisterMixinUse records that app mixes mixin in. mixin must be a
// declaration (spec.md §4.1).
func (idx *Index) RegisterMixinUse(app, mixin chamodel.Class) error {
	if !mixin.IsDeclaration() {
		return fmt.Errorf("mixin: %s is not a declaration", mixin.Name())
	}
	decl := mixin.Declaration()
	idx.allUses[decl] = append(idx.allUses[decl], app)
	idx.liveComputed = false
	return nil
}

// AllMixinUsesOf returns every application of mixin, including non-live
// ones, in registration order.
func (idx *Index) AllMixinUsesOf(mixin chamodel.Class) []chamodel.Class {
	return idx.allUses[mixin.Declaration()]
}

// MixinUsesOf returns the live projection of AllMixinUsesOf(mixin),
// computed lazily on first call after close and cached in a sidecar map
// thereafter (spec.md §4.5).
func (idx *Index) MixinUsesOf(mixin chamodel.Class) []chamodel.Class {
	idx.ensureLiveComputed()
	return idx.live[mixin.Declaration()]
}

func (idx *Index) ensureLiveComputed() {
	if idx.liveComputed {
		return
	}
	idx.liveComputed = true
	idx.live = make(map[chamodel.Class][]chamodel.Class, len(idx.allUses))
	for mixinDecl := range idx.allUses {
		if uses := idx.liveUsesOf(mixinDecl, make(map[chamodel.Class]bool)); len(uses) > 0 {
			idx.live[mixinDecl] = uses
		}
	}
}

// liveUsesOf finds every live (instantiated) application of mixinDecl,
// following the rule that a named mixin application used as the mixin of
// another application propagates transitively: C = S with M means any class
// that mixes C in is equivalent to mixing M in (spec.md §4.5).
func (idx *Index) liveUsesOf(mixinDecl chamodel.Class, visited map[chamodel.Class]bool) []chamodel.Class {
	if visited[mixinDecl] {
		return nil
	}
	visited[mixinDecl] = true

	var out []chamodel.Class
	for _, app := range idx.allUses[mixinDecl] {
		if idx.lookup.IsInstantiated(app) {
			out = append(out, app)
		}
		out = append(out, idx.liveUsesOf(app.Declaration(), visited)...)
	}
	return out
}

// IsSubclassOfMixinUseOf reports whether cls or any of its superclasses is
// a mixin application whose mixin is mixin's declaration (spec.md §4.5).
func IsSubclassOfMixinUseOf(cls, mixin chamodel.Class) bool {
	mixinDecl := mixin.Declaration()
	for c := cls.Declaration(); c != nil; {
		if c.IsMixinApplication() && c.Mixin().Declaration() == mixinDecl {
			return true
		}
		super := c.Superclass()
		if super == nil {
			break
		}
		c = super.Declaration()
	}
	return false
}

// HasAnySubclassThatMixes tests, for every application of mixin (live or
// not), whether it is a subclass of superclass. spec.md §9 leaves open
// whether superclass itself should be special-cased when instantiated;
// this preserves the literal source behavior of testing every application
// uniformly via IsSubclassOf, without special-casing superclass.
func (idx *Index) HasAnySubclassThatMixes(superclass, mixin chamodel.Class) bool {
	for _, app := range idx.AllMixinUsesOf(mixin) {
		if chamodel.IsSubclassOf(app, superclass) {
			return true
		}
	}
	return false
}

// HasAnySubclassOfMixinUseThatImplements reports whether any live use of
// mixin has a subclass implementing typ.
func (idx *Index) HasAnySubclassOfMixinUseThatImplements(mixin, typ chamodel.Class) bool {
	for _, use := range idx.MixinUsesOf(mixin) {
		if idx.lookup.HasAnySubclassThatImplements(use, typ) {
			return true
		}
	}
	return false
}
