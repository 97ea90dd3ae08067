package classset_test

import (
	"testing"

	"github.com/whirlwind-lang/cha/chamodel"
	"github.com/whirlwind-lang/cha/classset"
	"github.com/whirlwind-lang/cha/hierarchy"
)

// Builds: Object <- Animal <- {Dog, Cat}; Serializable is an interface with
// a foreign subtype edge from Dog (Dog implements Serializable without
// extending it).
func buildInterfaceGraph(t *testing.T) (table *hierarchy.Table, animalSet, serializableSet *classset.ClassSet, dog, cat *hierarchy.Node) {
	t.Helper()
	table = hierarchy.NewTable()

	objectCls := chamodel.NewClassHandle("Object", nil)
	serializableCls := chamodel.NewClassHandle("Serializable", nil)
	animalCls := chamodel.NewClassHandle("Animal", objectCls)
	dogCls := chamodel.NewClassHandle("Dog", animalCls, serializableCls)
	catCls := chamodel.NewClassHandle("Cat", animalCls)

	animal := table.EnsureNode(animalCls)
	serializable := table.EnsureNode(serializableCls)
	dog = table.EnsureNode(dogCls)
	cat = table.EnsureNode(catCls)

	animalSet = classset.New(animal)
	serializableSet = classset.New(serializable)
	serializableSet.AddSubtype(dog)

	return
}

func TestAddSubtypeSkipsAlreadyReachableViaSubclassTree(t *testing.T) {
	table := hierarchy.NewTable()
	objectCls := chamodel.NewClassHandle("Object", nil)
	animalCls := chamodel.NewClassHandle("Animal", objectCls)
	dogCls := chamodel.NewClassHandle("Dog", animalCls)

	animal := table.EnsureNode(animalCls)
	dog := table.EnsureNode(dogCls)

	cs := classset.New(animal)
	cs.AddSubtype(dog)

	if got := cs.ForeignSubtypes(); len(got) != 0 {
		t.Fatalf("ForeignSubtypes() = %v, want empty: Dog is already reachable via the subclass tree", got)
	}
}

func TestAddSubtypeDeduplicates(t *testing.T) {
	_, _, serializableSet, dog, _ := buildInterfaceGraph(t)
	serializableSet.AddSubtype(dog)

	if got := len(serializableSet.ForeignSubtypes()); got != 1 {
		t.Fatalf("ForeignSubtypes() has %d entries after duplicate AddSubtype, want 1", got)
	}
}

func TestInstantiatedSubtypeCountCountsForeignSubtypes(t *testing.T) {
	_, _, serializableSet, dog, _ := buildInterfaceGraph(t)

	if got := serializableSet.InstantiatedSubtypeCount(); got != 0 {
		t.Fatalf("InstantiatedSubtypeCount() = %d before any instantiation, want 0", got)
	}

	dog.MarkDirectlyInstantiated()
	if got := serializableSet.InstantiatedSubtypeCount(); got != 1 {
		t.Fatalf("InstantiatedSubtypeCount() = %d after Dog instantiated, want 1", got)
	}
}

func TestHasOnlyInstantiatedSubclasses(t *testing.T) {
	_, animalSet, serializableSet, dog, cat := buildInterfaceGraph(t)

	cat.MarkDirectlyInstantiated()
	if !serializableSet.HasOnlyInstantiatedSubclasses() {
		t.Errorf("Serializable.HasOnlyInstantiatedSubclasses() = false before Dog is instantiated, want true")
	}
	if !animalSet.HasOnlyInstantiatedSubclasses() {
		t.Errorf("Animal has no foreign subtypes at all, HasOnlyInstantiatedSubclasses() should always be true")
	}

	dog.MarkDirectlyInstantiated()
	if serializableSet.HasOnlyInstantiatedSubclasses() {
		t.Errorf("Serializable.HasOnlyInstantiatedSubclasses() = true once its foreign subtype Dog is instantiated, want false")
	}
}

func TestGetLubOfInstantiatedSubtypesSplitsOnForeignInstantiation(t *testing.T) {
	_, _, serializableSet, dog, _ := buildInterfaceGraph(t)

	if got := serializableSet.GetLubOfInstantiatedSubtypes(); got != nil {
		t.Fatalf("GetLubOfInstantiatedSubtypes() with nothing instantiated = %v, want nil", got)
	}

	dog.MarkDirectlyInstantiated()
	dog.PropagateInstantiation()

	got := serializableSet.GetLubOfInstantiatedSubtypes()
	if got != serializableSet.Node() {
		t.Fatalf("GetLubOfInstantiatedSubtypes() = %v, want Serializable itself (foreign subtype is instantiated)", got)
	}
}

func TestForEachSubtypeVisitsSubclassesThenForeignRoots(t *testing.T) {
	_, _, serializableSet, _, _ := buildInterfaceGraph(t)

	var seen []string
	serializableSet.ForEachSubtype(0, true, func(n *hierarchy.Node) hierarchy.ControlFlow {
		seen = append(seen, n.Class().Name())
		return hierarchy.Continue
	})

	if len(seen) != 1 || seen[0] != "Dog" {
		t.Fatalf("ForEachSubtype() visited %v, want [Dog]", seen)
	}
}
