package tui

import (
	"fmt"

	"skupick/internal/model"
	"skupick/internal/sku"
)

// Picker is the renderer and listener the selector drives. It is shared by
// pointer between copies of AppModel, so the update loop always sees the
// latest published state.
type Picker struct {
	Groups []sku.AttributeGroup
	State  []sku.GroupState

	// Message describes the last listener notification.
	Message  string
	Resolved *sku.Variant
}

func (p *Picker) RenderGroups(groups []sku.AttributeGroup) {
	p.Groups = groups
	p.Resolved = nil
	p.Message = ""
}

// RenderState runs before every listener callback, so a resolved outcome
// sets Resolved again right after it is cleared here.
func (p *Picker) RenderState(state []sku.GroupState) {
	p.State = state
	p.Resolved = nil
}

func (p *Picker) OnResolved(v sku.Variant) {
	p.Resolved = &v
	p.Message = fmt.Sprintf("%s %s (%d in stock)", model.IconResolved, v.Label(), v.StockQuantity)
}

func (p *Picker) OnUnresolved() {
	p.Resolved = nil
	p.Message = model.IconUnresolved + " No variant matches this combination"
}

func (p *Picker) OnPartialSelect(attr sku.Attribute) {
	p.Resolved = nil
	p.Message = fmt.Sprintf("Selected %s: %s", attr.Name, attr.Value)
}

func (p *Picker) OnPartialUnselect(attr sku.Attribute) {
	p.Resolved = nil
	p.Message = fmt.Sprintf("Cleared %s", attr.Name)
}
