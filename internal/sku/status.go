package sku

// ComputeState derives the enabled and selected flags of every value from
// scratch. The result depends only on its arguments.
//
// A value v of group i is enabled when some in-stock variant carries v at
// position i and agrees with every other non-empty selection slot. With a
// single group only the stock condition applies.
func ComputeState(variants []Variant, groups []AttributeGroup, selection []Attribute) []GroupState {
	state := make([]GroupState, len(groups))
	for i, g := range groups {
		state[i] = GroupState{
			Name:   g.Name,
			Values: make([]ValueState, len(g.Values)),
		}
		for j, value := range g.Values {
			state[i].Values[j] = ValueState{Value: value}
		}
	}

	for i := range groups {
		enabled := make(map[string]bool, len(groups[i].Values))
		for _, v := range variants {
			if !v.InStock() || i >= len(v.Attributes) {
				continue
			}
			if len(groups) > 1 && !compatible(v, selection, i) {
				continue
			}
			enabled[v.Attributes[i].Value] = true
		}

		var current string
		if i < len(selection) {
			current = selection[i].Value
		}
		for j := range state[i].Values {
			vs := &state[i].Values[j]
			vs.Enabled = enabled[vs.Value]
			vs.Selected = current != "" && vs.Value == current
		}
	}
	return state
}

// compatible reports whether v agrees with every selected slot except skip.
func compatible(v Variant, selection []Attribute, skip int) bool {
	for k, sel := range selection {
		if k == skip || !sel.IsSet() {
			continue
		}
		if k >= len(v.Attributes) || v.Attributes[k].Value != sel.Value {
			return false
		}
	}
	return true
}
