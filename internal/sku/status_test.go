package sku

import (
	"reflect"
	"testing"
)

func TestComputeStateSingleGroupUsesStockOnly(t *testing.T) {
	variants := []Variant{
		variant("s", 3, "Size", "S"),
		variant("m", 0, "Size", "M"),
		variant("l", 1, "Size", "L"),
	}
	groups := GroupVariants(variants)

	// A selected value does not constrain its own group.
	state := ComputeState(variants, groups, attrs("Size", "S"))
	want := []ValueState{
		{Value: "S", Enabled: true, Selected: true},
		{Value: "M"},
		{Value: "L", Enabled: true},
	}
	if !reflect.DeepEqual(state[0].Values, want) {
		t.Errorf("ComputeState() = %+v, want %+v", state[0].Values, want)
	}
}

func TestComputeStateIsDeterministic(t *testing.T) {
	variants := []Variant{
		variant("1", 1, "Color", "Red", "Size", "M", "Fit", "Slim"),
		variant("2", 0, "Color", "Red", "Size", "L", "Fit", "Slim"),
		variant("3", 2, "Color", "Blue", "Size", "L", "Fit", "Wide"),
		variant("4", 5, "Color", "Blue", "Size", "M", "Fit", "Slim"),
	}
	groups := GroupVariants(variants)
	selections := [][]Attribute{
		attrs("Color", "", "Size", "", "Fit", ""),
		attrs("Color", "Red", "Size", "", "Fit", ""),
		attrs("Color", "", "Size", "L", "Fit", ""),
		attrs("Color", "Blue", "Size", "", "Fit", "Slim"),
		attrs("Color", "Red", "Size", "L", "Fit", "Wide"),
	}
	for i, sel := range selections {
		a := ComputeState(variants, groups, sel)
		b := ComputeState(variants, groups, sel)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("selection %d: ComputeState() differs between runs", i)
		}
	}
}

func TestComputeStateMultiGroup(t *testing.T) {
	variants := []Variant{
		variant("1", 1, "Color", "Red", "Size", "M", "Fit", "Slim"),
		variant("2", 0, "Color", "Red", "Size", "L", "Fit", "Slim"),
		variant("3", 2, "Color", "Blue", "Size", "L", "Fit", "Wide"),
		variant("4", 5, "Color", "Blue", "Size", "M", "Fit", "Slim"),
	}
	groups := GroupVariants(variants)

	tests := []struct {
		name string
		sel  []Attribute
		want map[string][]string
	}{
		{
			name: "nothing selected",
			sel:  attrs("Color", "", "Size", "", "Fit", ""),
			want: map[string][]string{
				"Color": {"Red", "Blue"},
				"Size":  {"M", "L"},
				"Fit":   {"Slim", "Wide"},
			},
		},
		{
			name: "red locks out wide and out-of-stock L",
			sel:  attrs("Color", "Red", "Size", "", "Fit", ""),
			want: map[string][]string{
				"Color": {"Red", "Blue"},
				"Size":  {"M"},
				"Fit":   {"Slim"},
			},
		},
		{
			name: "two constraints",
			sel:  attrs("Color", "Blue", "Size", "", "Fit", "Slim"),
			want: map[string][]string{
				"Color": {"Red", "Blue"},
				"Size":  {"M"},
				"Fit":   {"Slim", "Wide"},
			},
		},
		{
			name: "inconsistent selection",
			sel:  attrs("Color", "Red", "Size", "L", "Fit", "Wide"),
			want: map[string][]string{
				"Color": {"Blue"},
				"Size":  nil,
				"Fit":   nil,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := ComputeState(variants, groups, tt.sel)
			for _, g := range state {
				if got := g.Enabled(); !reflect.DeepEqual(got, tt.want[g.Name]) {
					t.Errorf("%s enabled = %v, want %v", g.Name, got, tt.want[g.Name])
				}
				if got := g.Selected(); got != tt.sel[indexOf(groups, g.Name)].Value {
					t.Errorf("%s selected = %q", g.Name, got)
				}
			}
		})
	}
}

func indexOf(groups []AttributeGroup, name string) int {
	for i, g := range groups {
		if g.Name == name {
			return i
		}
	}
	return -1
}

func TestVariantHelpers(t *testing.T) {
	v := variant("x", 0, "Color", "Red", "Size", "M")
	if v.InStock() {
		t.Error("InStock() = true for zero stock")
	}
	if got := v.Label(); got != "Red / M" {
		t.Errorf("Label() = %q", got)
	}
	if v.Matches(attrs("Color", "Red")) {
		t.Error("Matches() should fail on length mismatch")
	}
	if v.Matches(attrs("Colour", "Red", "Size", "M")) {
		t.Error("Matches() should compare names too")
	}
	if OutcomeUnresolved.String() != "unresolved" {
		t.Errorf("String() = %q", OutcomeUnresolved.String())
	}
}
