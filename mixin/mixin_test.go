package mixin_test

import (
	"testing"

	"github.com/whirlwind-lang/cha/chamodel"
	"github.com/whirlwind-lang/cha/mixin"
)

// fakeLookup is a minimal mixin.Lookup for tests that don't need a real
// world.World.
type fakeLookup struct {
	instantiated map[chamodel.Class]bool
	implements   map[[2]chamodel.Class]bool
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		instantiated: make(map[chamodel.Class]bool),
		implements:   make(map[[2]chamodel.Class]bool),
	}
}

func (f *fakeLookup) IsInstantiated(cls chamodel.Class) bool { return f.instantiated[cls.Declaration()] }

func (f *fakeLookup) HasAnySubclassThatImplements(superclass, typ chamodel.Class) bool {
	return f.implements[[2]chamodel.Class{superclass.Declaration(), typ.Declaration()}]
}

func TestRegisterMixinUseRejectsNonDeclaration(t *testing.T) {
	object := chamodel.NewClassHandle("Object", nil)
	m := chamodel.NewClassHandle("Comparable", nil)
	app := chamodel.NewClassHandle("A", object)

	patched := &patchedClass{ClassHandle: *m}
	idx := mixin.New(newFakeLookup())
	if err := idx.RegisterMixinUse(app, patched); err == nil {
		t.Fatalf("RegisterMixinUse with a non-declaration mixin = nil error, want error")
	}
}

// patchedClass is a Class whose IsDeclaration() lies, for exercising the
// RegisterMixinUse guard without adding a forwarding variant to chamodel
// itself.
type patchedClass struct {
	chamodel.ClassHandle
}

func (p *patchedClass) IsDeclaration() bool { return false }

func TestMixinUsesOfIsLiveProjectionOfAllUses(t *testing.T) {
	object := chamodel.NewClassHandle("Object", nil)
	comparable := chamodel.NewClassHandle("Comparable", nil)
	a := chamodel.NewClassHandle("A", object)
	b := chamodel.NewClassHandle("B", object)

	lookup := newFakeLookup()
	idx := mixin.New(lookup)

	if err := idx.RegisterMixinUse(a, comparable); err != nil {
		t.Fatalf("RegisterMixinUse(A, Comparable) error = %v", err)
	}
	if err := idx.RegisterMixinUse(b, comparable); err != nil {
		t.Fatalf("RegisterMixinUse(B, Comparable) error = %v", err)
	}

	if got := len(idx.AllMixinUsesOf(comparable)); got != 2 {
		t.Fatalf("AllMixinUsesOf(Comparable) has %d entries, want 2", got)
	}

	lookup.instantiated[a] = true
	live := idx.MixinUsesOf(comparable)
	if len(live) != 1 || live[0] != a {
		t.Fatalf("MixinUsesOf(Comparable) = %v, want [A]", live)
	}
}

func TestMixinUsesOfPropagatesThroughNamedMixinApplicationChain(t *testing.T) {
	// M; A = Object with M; B extends A; instantiate B.
	// mixinUsesOf(M) should contain A, because B's instantiation makes A
	// indirectly instantiated, and A is itself a live use of M.
	object := chamodel.NewClassHandle("Object", nil)
	m := chamodel.NewClassHandle("M", nil)
	a := chamodel.NewMixinApplication("A", object, m)
	b := chamodel.NewClassHandle("B", a)

	lookup := newFakeLookup()
	idx := mixin.New(lookup)

	if err := idx.RegisterMixinUse(a, m); err != nil {
		t.Fatalf("RegisterMixinUse(A, M) error = %v", err)
	}

	// B is directly instantiated; A is only indirectly instantiated, but
	// IsInstantiated is defined as direct-or-indirect, matching
	// hierarchy.Node.IsInstantiated.
	lookup.instantiated[a] = true
	_ = b

	live := idx.MixinUsesOf(m)
	if len(live) != 1 || live[0] != a {
		t.Fatalf("MixinUsesOf(M) = %v, want [A]", live)
	}
}

func TestIsSubclassOfMixinUseOf(t *testing.T) {
	object := chamodel.NewClassHandle("Object", nil)
	m := chamodel.NewClassHandle("M", nil)
	a := chamodel.NewMixinApplication("A", object, m)
	b := chamodel.NewClassHandle("B", a)
	c := chamodel.NewClassHandle("C", object)

	if !mixin.IsSubclassOfMixinUseOf(b, m) {
		t.Errorf("IsSubclassOfMixinUseOf(B, M) = false, want true (B extends A, A mixes in M)")
	}
	if mixin.IsSubclassOfMixinUseOf(c, m) {
		t.Errorf("IsSubclassOfMixinUseOf(C, M) = true, want false")
	}
}

func TestHasAnySubclassThatMixes(t *testing.T) {
	object := chamodel.NewClassHandle("Object", nil)
	m := chamodel.NewClassHandle("M", nil)
	animal := chamodel.NewClassHandle("Animal", object)
	dog := chamodel.NewMixinApplication("Dog", animal, m)

	idx := mixin.New(newFakeLookup())
	if err := idx.RegisterMixinUse(dog, m); err != nil {
		t.Fatalf("RegisterMixinUse error = %v", err)
	}

	if !idx.HasAnySubclassThatMixes(animal, m) {
		t.Errorf("HasAnySubclassThatMixes(Animal, M) = false, want true")
	}

	unrelated := chamodel.NewClassHandle("Unrelated", object)
	if idx.HasAnySubclassThatMixes(unrelated, m) {
		t.Errorf("HasAnySubclassThatMixes(Unrelated, M) = true, want false")
	}
}

func TestHasAnySubclassOfMixinUseThatImplements(t *testing.T) {
	object := chamodel.NewClassHandle("Object", nil)
	m := chamodel.NewClassHandle("M", nil)
	typ := chamodel.NewClassHandle("Typ", nil)
	a := chamodel.NewMixinApplication("A", object, m)

	lookup := newFakeLookup()
	lookup.instantiated[a] = true
	lookup.implements[[2]chamodel.Class{a, typ}] = true

	idx := mixin.New(lookup)
	if err := idx.RegisterMixinUse(a, m); err != nil {
		t.Fatalf("RegisterMixinUse error = %v", err)
	}

	if !idx.HasAnySubclassOfMixinUseThatImplements(m, typ) {
		t.Errorf("HasAnySubclassOfMixinUseThatImplements(M, Typ) = false, want true")
	}
}
