package funcset_test

import (
	"testing"

	"github.com/whirlwind-lang/cha/chamodel"
	"github.com/whirlwind-lang/cha/funcset"
)

// fakeMask matches every class whose name is in allow.
type fakeMask struct{ allow map[string]bool }

func (m fakeMask) LocateSingleElement(chamodel.Selector, chamodel.World) chamodel.Element { return nil }
func (m fakeMask) NeedsNoSuchMethodHandling(chamodel.Selector, chamodel.World) bool        { return false }
func (m fakeMask) Contains(cls chamodel.Class, world chamodel.World) bool {
	return m.allow[cls.Name()]
}

type fakeWorld struct{}

func (fakeWorld) FunctionsFor(chamodel.Selector) []chamodel.Element { return nil }
func (fakeWorld) IsSubtypeOf(x, y chamodel.Class) bool              { return false }

func TestAllReturnsEveryCandidateUnfiltered(t *testing.T) {
	s := funcset.New()
	dog := chamodel.NewClassHandle("Dog", nil)
	cat := chamodel.NewClassHandle("Cat", nil)

	bark := &chamodel.ElementHandle{ElementName: "speak", Instance: true, Owner: dog}
	meow := &chamodel.ElementHandle{ElementName: "speak", Instance: true, Owner: cat}
	s.Register(bark)
	s.Register(meow)

	got := s.All(chamodel.Selector{Name: "speak"})
	if len(got) != 2 {
		t.Fatalf("All() returned %d candidates, want 2", len(got))
	}
}

func TestFilterNarrowsByMask(t *testing.T) {
	s := funcset.New()
	dog := chamodel.NewClassHandle("Dog", nil)
	cat := chamodel.NewClassHandle("Cat", nil)

	bark := &chamodel.ElementHandle{ElementName: "speak", Instance: true, Owner: dog}
	meow := &chamodel.ElementHandle{ElementName: "speak", Instance: true, Owner: cat}
	s.Register(bark)
	s.Register(meow)

	mask := fakeMask{allow: map[string]bool{"Dog": true}}
	got := s.Filter(chamodel.Selector{Name: "speak"}, mask, fakeWorld{})
	if len(got) != 1 || got[0].EnclosingClass().Name() != "Dog" {
		t.Fatalf("Filter() = %v, want only Dog's candidate", got)
	}
}

func TestFilterWithNilMaskReturnsEverything(t *testing.T) {
	s := funcset.New()
	dog := chamodel.NewClassHandle("Dog", nil)
	bark := &chamodel.ElementHandle{ElementName: "speak", Instance: true, Owner: dog}
	s.Register(bark)

	got := s.Filter(chamodel.Selector{Name: "speak"}, nil, fakeWorld{})
	if len(got) != 1 {
		t.Fatalf("Filter() with nil mask returned %d, want 1", len(got))
	}
}
