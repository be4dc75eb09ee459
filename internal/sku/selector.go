// Package sku holds the selection state of a product-variant picker: which
// attribute values are selectable, which are selected and which variant the
// selection resolves to.
//
// A Selector is not safe for concurrent use. Hosts serialize calls, which is
// natural when every mutation comes from one event loop.
package sku

import (
	"fmt"
	"slices"
)

// Selector is the picker state machine for one bound catalog.
type Selector struct {
	variants  []Variant
	groups    *groupIndex
	selection []Attribute
	state     []GroupState

	listener Listener
	renderer Renderer
}

// New returns an unbound selector.
func New(opts ...Option) *Selector {
	s := &Selector{
		groups:   newGroupIndex(),
		listener: ListenerFuncs{},
		renderer: NopRenderer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bind replaces the catalog. Groups and selection are rebuilt; a catalog with
// a single variant starts fully selected. On error the selector is unchanged.
func (s *Selector) Bind(variants []Variant) error {
	if err := Validate(variants); err != nil {
		return err
	}

	bound := make([]Variant, len(variants))
	idx := newGroupIndex()
	for i, v := range variants {
		bound[i] = cloneVariant(v)
		for _, a := range v.Attributes {
			idx.add(a)
		}
	}

	s.variants = bound
	s.groups = idx
	s.resetSelection()

	s.recompute()
	s.renderer.RenderGroups(s.Groups())
	s.renderer.RenderState(s.State())
	s.notifyIfComplete()
	return nil
}

// Toggle applies one tap on the value at group position. selected is the new
// state of the tapped value: true turns it on, false clears the slot.
// Exactly one listener callback fires per successful call. Clearing a slot
// that is already empty with value "" still fires OnPartialUnselect, with an
// empty Value, and leaves the selection as it was.
func (s *Selector) Toggle(position int, value string, selected bool) (Outcome, error) {
	if !s.Bound() {
		return Outcome{}, ErrNotBound
	}
	if position < 0 || position >= len(s.selection) {
		return Outcome{}, fmt.Errorf("position %d of %d: %w", position, len(s.selection), ErrPositionOutOfRange)
	}

	name := s.groups.groups[position].Name
	if selected {
		if !s.groups.has(position, value) {
			return Outcome{}, fmt.Errorf("%s=%q: %w", name, value, ErrUnknownValue)
		}
		s.selection[position] = Attribute{Name: name, Value: value}
	} else {
		if value == "" {
			value = s.selection[position].Value
		}
		s.selection[position].Value = ""
	}

	s.recompute()
	s.renderer.RenderState(s.State())

	out, complete := s.resolve()
	if !complete {
		out.Attribute = Attribute{Name: name, Value: value}
		if selected {
			out.Kind = OutcomePartialSelected
		} else {
			out.Kind = OutcomePartialUnselected
		}
	}
	notify(s.listener, out)
	return out, nil
}

// SelectVariant forces the selection to v's attributes, e.g. to restore the
// choice behind an existing cart line. v need not be in the bound list but
// its attributes must line up with the bound groups.
func (s *Selector) SelectVariant(v Variant) error {
	if !s.Bound() {
		return ErrNotBound
	}
	if len(v.Attributes) != len(s.selection) {
		return fmt.Errorf("variant has %d attributes, want %d: %w",
			len(v.Attributes), len(s.selection), ErrAttributeCountMismatch)
	}
	for i, a := range v.Attributes {
		if want := s.groups.groups[i].Name; a.Name != want {
			return fmt.Errorf("position %d: got %q, want %q: %w", i, a.Name, want, ErrAttributeOrderMismatch)
		}
	}

	copy(s.selection, v.Attributes)
	s.recompute()
	s.renderer.RenderState(s.State())
	s.notifyIfComplete()
	return nil
}

// SelectVariantByID selects the bound variant with the given id.
func (s *Selector) SelectVariantByID(id string) error {
	for _, v := range s.variants {
		if v.ID != "" && v.ID == id {
			return s.SelectVariant(v)
		}
	}
	return fmt.Errorf("%q: %w", id, ErrVariantNotFound)
}

// Reset clears every slot, except on single-variant catalogs which go back to
// their pre-selected state.
func (s *Selector) Reset() error {
	if !s.Bound() {
		return ErrNotBound
	}
	s.resetSelection()
	s.recompute()
	s.renderer.RenderState(s.State())
	s.notifyIfComplete()
	return nil
}

// SelectedVariant returns the first bound variant equal to the selection.
// It reports false while any slot is empty or when nothing matches.
func (s *Selector) SelectedVariant() (Variant, bool) {
	if !s.IsComplete() {
		return Variant{}, false
	}
	for _, v := range s.variants {
		if v.Matches(s.selection) {
			return cloneVariant(v), true
		}
	}
	return Variant{}, false
}

// FirstUnselectedGroupName returns the name of the first group without a
// selection, or "" when every group has one.
func (s *Selector) FirstUnselectedGroupName() string {
	for _, a := range s.selection {
		if !a.IsSet() {
			return a.Name
		}
	}
	return ""
}

// IsComplete reports whether every group has a selected value.
func (s *Selector) IsComplete() bool {
	return len(s.selection) > 0 && s.FirstUnselectedGroupName() == ""
}

// Bound reports whether a catalog has been bound.
func (s *Selector) Bound() bool {
	return len(s.variants) > 0
}

// Groups returns a copy of the derived attribute groups.
func (s *Selector) Groups() []AttributeGroup {
	out := make([]AttributeGroup, len(s.groups.groups))
	for i, g := range s.groups.groups {
		out[i] = AttributeGroup{Name: g.Name, Values: slices.Clone(g.Values)}
	}
	return out
}

// Selection returns a copy of the selection slots.
func (s *Selector) Selection() []Attribute {
	return slices.Clone(s.selection)
}

// State returns a copy of the last computed value states.
func (s *Selector) State() []GroupState {
	out := make([]GroupState, len(s.state))
	for i, g := range s.state {
		out[i] = GroupState{Name: g.Name, Values: slices.Clone(g.Values)}
	}
	return out
}

// Variants returns a copy of the bound catalog.
func (s *Selector) Variants() []Variant {
	out := make([]Variant, len(s.variants))
	for i, v := range s.variants {
		out[i] = cloneVariant(v)
	}
	return out
}

func (s *Selector) resetSelection() {
	groups := s.groups.groups
	s.selection = make([]Attribute, len(groups))
	for i, g := range groups {
		s.selection[i] = Attribute{Name: g.Name}
	}
	if len(s.variants) == 1 {
		copy(s.selection, s.variants[0].Attributes)
	}
}

func (s *Selector) recompute() {
	s.state = ComputeState(s.variants, s.groups.groups, s.selection)
}

// resolve classifies a complete selection as resolved or unresolved.
// It reports false when some slot is still empty.
func (s *Selector) resolve() (Outcome, bool) {
	if !s.IsComplete() {
		return Outcome{}, false
	}
	if v, ok := s.SelectedVariant(); ok {
		return Outcome{Kind: OutcomeResolved, Variant: &v}, true
	}
	return Outcome{Kind: OutcomeUnresolved}, true
}

func (s *Selector) notifyIfComplete() {
	if out, complete := s.resolve(); complete {
		notify(s.listener, out)
	}
}

func cloneVariant(v Variant) Variant {
	v.Attributes = slices.Clone(v.Attributes)
	return v
}
