package sku

import "fmt"

// groupIndex is an insertion-ordered map of attribute name -> group.
// groups and byName are always updated together.
type groupIndex struct {
	groups []AttributeGroup
	byName map[string]int
	// seen[i] dedupes the values of groups[i]
	seen []map[string]struct{}
}

func newGroupIndex() *groupIndex {
	return &groupIndex{byName: make(map[string]int)}
}

func (g *groupIndex) add(attr Attribute) {
	idx, ok := g.byName[attr.Name]
	if !ok {
		idx = len(g.groups)
		g.byName[attr.Name] = idx
		g.groups = append(g.groups, AttributeGroup{Name: attr.Name})
		g.seen = append(g.seen, make(map[string]struct{}))
	}
	if _, dup := g.seen[idx][attr.Value]; dup {
		return
	}
	g.seen[idx][attr.Value] = struct{}{}
	g.groups[idx].Values = append(g.groups[idx].Values, attr.Value)
}

func (g *groupIndex) has(position int, value string) bool {
	if position < 0 || position >= len(g.seen) {
		return false
	}
	_, ok := g.seen[position][value]
	return ok
}

// GroupVariants derives the attribute groups of a catalog: one per distinct
// attribute name, each listing its distinct values, both in first-seen order.
func GroupVariants(variants []Variant) []AttributeGroup {
	idx := newGroupIndex()
	for _, v := range variants {
		for _, a := range v.Attributes {
			idx.add(a)
		}
	}
	return idx.groups
}

// Validate checks that variants form a bindable catalog: non-empty, every
// variant with the same attribute names in the same order, no blank names or
// values and no negative stock.
func Validate(variants []Variant) error {
	if len(variants) == 0 {
		return ErrEmptyCatalog
	}
	first := variants[0].Attributes
	if len(first) == 0 {
		return fmt.Errorf("variant 0: %w", ErrAttributeCountMismatch)
	}
	names := make(map[string]struct{}, len(first))
	for _, a := range first {
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("variant 0: %q: %w", a.Name, ErrDuplicateAttribute)
		}
		names[a.Name] = struct{}{}
	}

	for i, v := range variants {
		if v.StockQuantity < 0 {
			return fmt.Errorf("variant %d: %w", i, ErrNegativeStock)
		}
		if len(v.Attributes) != len(first) {
			return fmt.Errorf("variant %d: has %d attributes, want %d: %w",
				i, len(v.Attributes), len(first), ErrAttributeCountMismatch)
		}
		for pos, a := range v.Attributes {
			if a.Name == "" || a.Value == "" {
				return fmt.Errorf("variant %d position %d: %w", i, pos, ErrEmptyAttribute)
			}
			if a.Name != first[pos].Name {
				return fmt.Errorf("variant %d position %d: got %q, want %q: %w",
					i, pos, a.Name, first[pos].Name, ErrAttributeOrderMismatch)
			}
		}
	}
	return nil
}
