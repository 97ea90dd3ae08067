package chamodel

// Element is the opaque handle to a named program entity: a class, function,
// field, constructor, or typedef (spec.md §3).
type Element interface {
	Name() string

	// Declaration returns the canonical form of this element.
	Declaration() Element

	IsInstanceMember() bool
	IsAbstract() bool
	IsField() bool
	IsFinal() bool
	IsConst() bool
	IsGetter() bool
	IsSetter() bool
	IsGenerativeConstructorBody() bool

	// EnclosingClass is the class this element is a member of, or nil for
	// top-level elements (typedefs, top-level functions). FunctionSet uses
	// it to narrow selector candidates by receiver mask.
	EnclosingClass() Class
}
