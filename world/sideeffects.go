package world

import "github.com/whirlwind-lang/cha/chamodel"

// RegisterSideEffects, RegisterSideEffectsFree, GetSideEffectsOfElement,
// GetSideEffectsOfSelector, RegisterCannotThrow, GetCannotThrow,
// AddFunctionCalledInLoop, IsCalledInLoop, RegisterMightBePassedToApply,
// GetMightBePassedToApply, and FieldNeverChanges forward to the registry
// built in New (spec.md §4.6). None of them assert closedness: the registry
// is populated by type inference, which runs after Close but is not itself
// one of the §4.4/§4.5 Queries the closed-world invariant guards.

func (w *World) RegisterSideEffects(e chamodel.Element, eff chamodel.SideEffects) {
	w.sideEffects.RegisterSideEffects(e, eff)
}

func (w *World) RegisterSideEffectsFree(e chamodel.Element) {
	w.sideEffects.RegisterSideEffectsFree(e)
}

func (w *World) GetSideEffectsOfElement(e chamodel.Element) (chamodel.SideEffects, error) {
	return w.sideEffects.GetSideEffectsOfElement(e)
}

func (w *World) GetSideEffectsOfSelector(selector chamodel.Selector, mask chamodel.TypeMask) chamodel.SideEffects {
	return w.sideEffects.GetSideEffectsOfSelector(selector, mask)
}

func (w *World) RegisterCannotThrow(e chamodel.Element) { w.sideEffects.RegisterCannotThrow(e) }
func (w *World) GetCannotThrow(e chamodel.Element) bool { return w.sideEffects.GetCannotThrow(e) }

func (w *World) AddFunctionCalledInLoop(e chamodel.Element) { w.sideEffects.AddFunctionCalledInLoop(e) }
func (w *World) IsCalledInLoop(e chamodel.Element) bool     { return w.sideEffects.IsCalledInLoop(e) }

func (w *World) RegisterMightBePassedToApply(e chamodel.Element) {
	w.sideEffects.RegisterMightBePassedToApply(e)
}

func (w *World) GetMightBePassedToApply(e chamodel.Element) bool {
	return w.sideEffects.GetMightBePassedToApply(e)
}

func (w *World) FieldNeverChanges(e chamodel.Element) bool {
	return w.sideEffects.FieldNeverChanges(e)
}
