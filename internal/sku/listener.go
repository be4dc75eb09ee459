package sku

// Renderer draws the picker. RenderGroups is called once per Bind, before the
// first RenderState; RenderState follows every state change.
type Renderer interface {
	RenderGroups(groups []AttributeGroup)
	RenderState(state []GroupState)
}

// Listener receives the outcome of a selection change. Toggle always fires
// exactly one callback. Bind, SelectVariant and Reset fire OnResolved or
// OnUnresolved only when they leave every slot filled; a partial result is
// published through Renderer.RenderState alone.
type Listener interface {
	OnResolved(v Variant)
	OnUnresolved()
	OnPartialSelect(attr Attribute)
	OnPartialUnselect(attr Attribute)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Resolved        func(Variant)
	Unresolved      func()
	PartialSelect   func(Attribute)
	PartialUnselect func(Attribute)
}

func (f ListenerFuncs) OnResolved(v Variant) {
	if f.Resolved != nil {
		f.Resolved(v)
	}
}

func (f ListenerFuncs) OnUnresolved() {
	if f.Unresolved != nil {
		f.Unresolved()
	}
}

func (f ListenerFuncs) OnPartialSelect(attr Attribute) {
	if f.PartialSelect != nil {
		f.PartialSelect(attr)
	}
}

func (f ListenerFuncs) OnPartialUnselect(attr Attribute) {
	if f.PartialUnselect != nil {
		f.PartialUnselect(attr)
	}
}

// NopRenderer discards all render calls.
type NopRenderer struct{}

func (NopRenderer) RenderGroups([]AttributeGroup) {}
func (NopRenderer) RenderState([]GroupState)      {}

// notify dispatches an outcome to l.
func notify(l Listener, o Outcome) {
	switch o.Kind {
	case OutcomeResolved:
		l.OnResolved(*o.Variant)
	case OutcomeUnresolved:
		l.OnUnresolved()
	case OutcomePartialSelected:
		l.OnPartialSelect(o.Attribute)
	case OutcomePartialUnselected:
		l.OnPartialUnselect(o.Attribute)
	}
}
