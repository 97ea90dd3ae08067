package chamodel_test

import (
	"testing"

	"github.com/whirlwind-lang/cha/chamodel"
)

func TestIsSubclassOf(t *testing.T) {
	object := chamodel.NewClassHandle("Object", nil)
	animal := chamodel.NewClassHandle("Animal", object)
	dog := chamodel.NewClassHandle("Dog", animal)
	cat := chamodel.NewClassHandle("Cat", animal)

	tests := []struct {
		name string
		x, y chamodel.Class
		want bool
	}{
		{"self", dog, dog, true},
		{"direct parent", dog, animal, true},
		{"transitive parent", dog, object, true},
		{"sibling", dog, cat, false},
		{"child is not parent of parent", animal, dog, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chamodel.IsSubclassOf(tt.x, tt.y); got != tt.want {
				t.Errorf("IsSubclassOf(%s, %s) = %v, want %v", tt.x.Name(), tt.y.Name(), got, tt.want)
			}
		})
	}
}

func TestAsInstanceOf(t *testing.T) {
	object := chamodel.NewClassHandle("Object", nil)
	comparable := chamodel.NewClassHandle("Comparable", object)
	animal := chamodel.NewClassHandle("Animal", object, comparable)

	if got := chamodel.AsInstanceOf(animal, comparable); got == nil {
		t.Fatalf("AsInstanceOf(Animal, Comparable) = nil, want Comparable")
	}

	unrelated := chamodel.NewClassHandle("Unrelated", object)
	if got := chamodel.AsInstanceOf(animal, unrelated); got != nil {
		t.Fatalf("AsInstanceOf(Animal, Unrelated) = %v, want nil", got)
	}
}

func TestRecomputeSupertypesDeduplicatesDiamond(t *testing.T) {
	object := chamodel.NewClassHandle("Object", nil)
	comparable := chamodel.NewClassHandle("Comparable", object)
	a := chamodel.NewClassHandle("A", object, comparable)
	b := chamodel.NewClassHandle("B", a, comparable)

	count := 0
	for _, st := range b.Supertypes() {
		if st.Class == comparable {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Comparable appears %d times in B's supertypes, want exactly 1", count)
	}
}
