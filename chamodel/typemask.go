package chamodel

// World is the read-only query surface a TypeMask implementation may call
// back into while resolving a selector against it (spec.md §4.4:
// "locateSingleElement(selector, mask) delegates to
// mask.locateSingleElement(selector, world)"). chamodel cannot import the
// world package (world imports chamodel for Class/Element/TypeMask), so this
// describes the minimal capability a mask lattice needs; the concrete
// *world.World façade satisfies it structurally, with no explicit
// assertion required on either side.
type World interface {
	// FunctionsFor returns the live instance members FunctionSet has
	// recorded that could respond to selector, unfiltered by receiver.
	FunctionsFor(selector Selector) []Element

	// IsSubtypeOf reports whether x is a subtype of y in the closed world.
	IsSubtypeOf(x, y Class) bool
}

// TypeMask is the abstract domain over the class lattice the engine
// consumes but never allocates or mutates (spec.md §1 Non-goals). A mask
// lattice implementation plugs in all three methods; the engine's own
// World.LocateSingleElement and World.ExtendMaskIfReachesAll just forward
// into whichever mask they were given, passing themselves back as the
// World argument.
type TypeMask interface {
	// LocateSingleElement returns the unique element the mask's receiver
	// set would dispatch selector to, or nil on ambiguity or miss.
	LocateSingleElement(selector Selector, world World) Element

	// NeedsNoSuchMethodHandling reports whether some receiver in the mask
	// might not respond to selector at all, requiring noSuchMethod
	// handling rather than a direct dispatch.
	NeedsNoSuchMethodHandling(selector Selector, world World) bool

	// Contains reports whether cls is a plausible receiver under this
	// mask. Spec.md §3 names only the two methods above, but §4.6's
	// FunctionSet.filter(selector, mask) needs some way to ask the
	// otherwise-opaque mask whether a given candidate's enclosing class
	// overlaps its receiver set; this is that primitive. A nil mask (the
	// dynamic top) is handled by callers before reaching a TypeMask at
	// all -- see World.ExtendMaskIfReachesAll and FunctionSet.Filter.
	Contains(cls Class, world World) bool
}
