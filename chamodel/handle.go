package chamodel

// ClassHandle is the reference Class implementation. It plays the same dual
// role the teacher's common.Symbol plays: it is a plausible real handle a
// small embedding compiler could use directly, and it is also what this
// package's own tests and the engine's tests construct by hand.
//
// Supertypes is computed once by NewClassHandle (or recomputed by
// RecomputeSupertypes after superclass/interfaces change) rather than on
// every access -- resolvers build class graphs once during the open phase,
// so there is no benefit to recomputing this lazily.
type ClassHandle struct {
	ClassName  string
	superclass Class
	interfaces []Class
	mixin      Class
	callType   CallType
	depth      int
	resolved   bool

	supertypes []Supertype
}

// NewClassHandle creates a declaration-form class handle. super may be nil
// only for the root (Object) class. interfaces lists the classes this class
// implements directly, in declaration order, in addition to extending
// super -- mirroring how a mixin application's foreign-subtype edge and a
// plain `implements` clause both end up here at the ClassSet layer later.
func NewClassHandle(name string, super Class, interfaces ...Class) *ClassHandle {
	c := &ClassHandle{
		ClassName:  name,
		superclass: super,
		interfaces: interfaces,
		resolved:   true,
	}
	if super != nil {
		c.depth = super.HierarchyDepth() + 1
	}
	c.RecomputeSupertypes()
	return c
}

// NewMixinApplication creates a named mixin application class: super with
// mixin mixed in. The mixin's declaration must already be resolved.
func NewMixinApplication(name string, super, mixin Class, interfaces ...Class) *ClassHandle {
	c := NewClassHandle(name, super, interfaces...)
	c.mixin = mixin
	c.RecomputeSupertypes()
	return c
}

// SetCallType marks this class as structurally callable.
func (c *ClassHandle) SetCallType(ct CallType) { c.callType = ct }

// RecomputeSupertypes rebuilds the transitive, deduplicated, depth-annotated
// supertype list from the current superclass chain, mixin, and interfaces.
// Depth here is the supertype's own HierarchyDepth, matching spec.md §3's
// "ordered list of all supertypes... depth-annotated" and §4.4's
// commonSupertypesOf, which groups by that depth.
func (c *ClassHandle) RecomputeSupertypes() {
	seen := map[Class]bool{}
	var out []Supertype

	add := func(cls Class) {
		d := cls.Declaration()
		if seen[d] {
			return
		}
		seen[d] = true
		out = append(out, Supertype{Class: d, Depth: d.HierarchyDepth()})
	}

	var walk func(cls Class)
	walk = func(cls Class) {
		if cls == nil {
			return
		}
		add(cls)
		walk(cls.Superclass())
		for _, st := range cls.Supertypes() {
			add(st.Class)
		}
	}

	if c.superclass != nil {
		walk(c.superclass)
	}
	if c.mixin != nil {
		add(c.mixin)
		walk(c.mixin.Superclass())
	}
	for _, iface := range c.interfaces {
		add(iface)
		walk(iface.Superclass())
		for _, st := range iface.Supertypes() {
			add(st.Class)
		}
	}

	c.supertypes = out
}

func (c *ClassHandle) Name() string        { return c.ClassName }
func (c *ClassHandle) Declaration() Class  { return c }
func (c *ClassHandle) Superclass() Class   { return c.superclass }
func (c *ClassHandle) Supertypes() []Supertype {
	return c.supertypes
}
func (c *ClassHandle) IsMixinApplication() bool { return c.mixin != nil }
func (c *ClassHandle) Mixin() Class             { return c.mixin }
func (c *ClassHandle) CallType() CallType       { return c.callType }
func (c *ClassHandle) HierarchyDepth() int      { return c.depth }
func (c *ClassHandle) IsResolved() bool         { return c.resolved }
func (c *ClassHandle) IsDeclaration() bool      { return true }

// Interfaces returns the classes this class directly implements (beyond its
// superclass chain), in declaration order. The engine does not call it:
// foreign-subtype edges are wired from Supertypes(), which already folds
// these interfaces in.
func (c *ClassHandle) Interfaces() []Class { return c.interfaces }

// ElementHandle is the reference Element implementation.
type ElementHandle struct {
	ElementName string
	Instance    bool
	Abstract    bool
	Field       bool
	Final       bool
	Const       bool
	Getter      bool
	Setter      bool
	CtorBody    bool

	// decl overrides Declaration() for patched/forwarding variants; nil
	// means the handle is its own declaration.
	decl  Element
	Owner Class
}

// NewElement creates a declaration-form element handle.
func NewElement(name string) *ElementHandle {
	return &ElementHandle{ElementName: name}
}

// AsPatchOf returns a non-declaration variant of e that canonicalizes to
// decl -- used to exercise the engine's canonicalize-to-declaration
// contract (spec.md §9) in tests.
func (e *ElementHandle) AsPatchOf(decl Element) *ElementHandle {
	clone := *e
	clone.decl = decl
	return &clone
}

func (e *ElementHandle) Name() string { return e.ElementName }
func (e *ElementHandle) Declaration() Element {
	if e.decl != nil {
		return e.decl
	}
	return e
}
func (e *ElementHandle) IsInstanceMember() bool           { return e.Instance }
func (e *ElementHandle) IsAbstract() bool                 { return e.Abstract }
func (e *ElementHandle) IsField() bool                    { return e.Field }
func (e *ElementHandle) IsFinal() bool                    { return e.Final }
func (e *ElementHandle) IsConst() bool                    { return e.Const }
func (e *ElementHandle) IsGetter() bool                   { return e.Getter }
func (e *ElementHandle) IsSetter() bool                   { return e.Setter }
func (e *ElementHandle) IsGenerativeConstructorBody() bool { return e.CtorBody }
func (e *ElementHandle) EnclosingClass() Class             { return e.Owner }
