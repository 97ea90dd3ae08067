package world

import "github.com/whirlwind-lang/cha/chamodel"

// CoreClasses yields the canonical built-in class handles the engine's own
// query algorithms need by name (spec.md §6): Object anchors isSubclassOf
// and isSubtypeOf's base cases, Function anchors the structural-function
// subtyping rule.
type CoreClasses interface {
	Object() chamodel.Class
	Function() chamodel.Class
}

// Backend supplies the handful of facts only the code-generation backend
// knows (spec.md §6). IsNative feeds sideeffect.FieldNeverChanges; the other
// three are carried for completeness even though nothing in this engine's
// own query set consumes IsJSInterop/IsForeign/HostObjectClass yet -- a host
// compiler's LUB computation for JS-interop receivers is exactly the kind of
// IR-layer concern spec.md §1 places out of scope for the engine itself.
type Backend interface {
	IsNative(e chamodel.Element) bool
	IsJSInterop(cls chamodel.Class) bool
	IsForeign(e chamodel.Element) bool
	HostObjectClass() chamodel.Class
}

// ResolverWorld exposes the resolver-owned facts close() and
// sideeffect.FieldNeverChanges need (spec.md §6).
type ResolverWorld interface {
	// DirectlyInstantiatedClasses returns every class the resolver proved
	// instantiated, in the order close() should process them.
	DirectlyInstantiatedClasses() []chamodel.Class

	// IsImplemented reports whether the resolver considers cls's interface
	// contract satisfied. Nothing in the engine's own query set calls this
	// today -- it is carried for the same completeness reason as the unused
	// Backend facts above -- but it is part of the injected capability
	// spec.md §6 names.
	IsImplemented(cls chamodel.Class) bool

	HasInvokedSetter(e chamodel.Element, world chamodel.World) bool
	HasFieldSetter(e chamodel.Element) bool
}

// Options is the plain configuration struct spec.md §6's CompilerOptions
// capability reduces to here: Incremental mirrors hasIncrementalSupport,
// EnableInvokeOn mirrors enabledInvokeOn. There is no flag parser or config
// file format backing it -- a host driver constructs one directly, the way
// the teacher's CompilerOptions is built directly by cmd rather than loaded
// from a library this package would need to depend on.
type Options struct {
	Incremental    bool
	EnableInvokeOn bool
}
