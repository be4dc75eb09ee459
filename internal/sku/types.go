package sku

import (
	"fmt"
	"strings"
)

// Attribute is one named value of a variant, e.g. {Color, Red}.
// An empty Value means "unset" when the attribute sits in a selection slot.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// IsSet reports whether the attribute carries a value.
func (a Attribute) IsSet() bool {
	return a.Value != ""
}

// Variant is one purchasable item: a full tuple of attribute values plus stock.
// Attributes are position-aligned across every variant of a catalog.
type Variant struct {
	ID            string      `json:"id,omitempty"`
	Attributes    []Attribute `json:"attributes"`
	StockQuantity int         `json:"stock"`
}

// InStock reports whether at least one unit is available.
func (v Variant) InStock() bool {
	return v.StockQuantity > 0
}

// Matches reports whether the variant's attributes equal attrs position-wise.
func (v Variant) Matches(attrs []Attribute) bool {
	if len(v.Attributes) != len(attrs) {
		return false
	}
	for i, a := range v.Attributes {
		if a != attrs[i] {
			return false
		}
	}
	return true
}

// Label joins the attribute values, e.g. "Red / M".
func (v Variant) Label() string {
	values := make([]string, len(v.Attributes))
	for i, a := range v.Attributes {
		values[i] = a.Value
	}
	return strings.Join(values, " / ")
}

// AttributeGroup is one axis of variation and its distinct values in
// first-seen order.
type AttributeGroup struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ValueState is the render state of a single value button.
type ValueState struct {
	Value    string `json:"value"`
	Enabled  bool   `json:"enabled"`
	Selected bool   `json:"selected"`
}

// GroupState is the render state of one attribute group.
type GroupState struct {
	Name   string       `json:"name"`
	Values []ValueState `json:"values"`
}

// Enabled returns the values of the group that can currently be tapped.
func (g GroupState) Enabled() []string {
	var out []string
	for _, v := range g.Values {
		if v.Enabled {
			out = append(out, v.Value)
		}
	}
	return out
}

// Selected returns the selected value of the group, or "".
func (g GroupState) Selected() string {
	for _, v := range g.Values {
		if v.Selected {
			return v.Value
		}
	}
	return ""
}

// OutcomeKind classifies the result of a toggle.
type OutcomeKind int

const (
	OutcomePartialSelected OutcomeKind = iota
	OutcomePartialUnselected
	OutcomeResolved
	OutcomeUnresolved
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePartialSelected:
		return "partial_selected"
	case OutcomePartialUnselected:
		return "partial_unselected"
	case OutcomeResolved:
		return "resolved"
	case OutcomeUnresolved:
		return "unresolved"
	}
	return "unknown"
}

// MarshalText lets outcome kinds appear by name in JSON.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for _, kind := range []OutcomeKind{OutcomePartialSelected, OutcomePartialUnselected, OutcomeResolved, OutcomeUnresolved} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}

// Outcome is what a toggle resolved to. Variant is set only for
// OutcomeResolved; Attribute is the tapped attribute for the partial kinds.
type Outcome struct {
	Kind      OutcomeKind `json:"kind"`
	Variant   *Variant    `json:"variant,omitempty"`
	Attribute Attribute   `json:"attribute"`
}
