package chamodel

// CallKind distinguishes the four ways a Selector may dispatch.
type CallKind int

const (
	CallKindCall CallKind = iota
	CallKindGetter
	CallKindSetter
	CallKindClosureCall
)

func (k CallKind) String() string {
	switch k {
	case CallKindGetter:
		return "getter"
	case CallKindSetter:
		return "setter"
	case CallKindClosureCall:
		return "closureCall"
	default:
		return "call"
	}
}

// Selector is a call-site descriptor: name, arity, and call-kind
// (spec.md §3). It is a plain value type, comparable, usable as a map key
// component the way the teacher uses small value structs (eg.
// util.TextPosition) rather than pointers for data with no identity beyond
// its fields.
type Selector struct {
	Name  string
	Arity int
	Kind  CallKind
}
