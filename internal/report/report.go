// Package report renders a selector snapshot as a text report or JSON.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"skupick/internal/model"
	"skupick/internal/sku"
)

// Snapshot is the JSON view of a selector.
type Snapshot struct {
	Catalog         string           `json:"catalog,omitempty"`
	Groups          []sku.GroupState `json:"groups"`
	Selection       []sku.Attribute  `json:"selection"`
	Complete        bool             `json:"complete"`
	Resolved        *sku.Variant     `json:"resolved,omitempty"`
	FirstUnselected string           `json:"firstUnselected,omitempty"`
	Variants        []sku.Variant    `json:"variants,omitempty"`
	Version         string           `json:"version"`
}

// Take captures the current state of sel. Variants are included only when
// withVariants is set.
func Take(sel *sku.Selector, catalog string, withVariants bool) Snapshot {
	snap := Snapshot{
		Catalog:         catalog,
		Groups:          sel.State(),
		Selection:       sel.Selection(),
		Complete:        sel.IsComplete(),
		FirstUnselected: sel.FirstUnselectedGroupName(),
		Version:         model.Version,
	}
	if v, ok := sel.SelectedVariant(); ok {
		snap.Resolved = &v
	}
	if withVariants {
		snap.Variants = sel.Variants()
	}
	return snap
}

// ValueIcon picks the marker shown next to a value.
func ValueIcon(v sku.ValueState) string {
	switch {
	case v.Selected && !v.Enabled:
		return model.IconStale
	case v.Selected:
		return model.IconSelected
	case v.Enabled:
		return model.IconEnabled
	default:
		return model.IconDisabled
	}
}

// Generate builds the text report. Verbose adds the full variant table.
func Generate(sel *sku.Selector, catalog string, verbose bool) string {
	var sb strings.Builder

	title := "SKU Selection Report"
	if catalog != "" {
		title += ": " + catalog
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", lipgloss.Width(title)) + "\n\n")

	state := sel.State()
	nameWidth := 0
	for _, g := range state {
		if w := lipgloss.Width(g.Name); w > nameWidth {
			nameWidth = w
		}
	}
	for _, g := range state {
		parts := make([]string, len(g.Values))
		for i, v := range g.Values {
			parts[i] = ValueIcon(v) + " " + v.Value
		}
		fmt.Fprintf(&sb, "%-*s  %s\n", nameWidth, g.Name, strings.Join(parts, "   "))
	}

	sb.WriteString("\n")
	sb.WriteString(Status(sel) + "\n")

	fmt.Fprintf(&sb, "\nLegend: %s selected  %s available  %s unavailable  %s selected but unavailable\n",
		model.IconSelected, model.IconEnabled, model.IconDisabled, model.IconStale)

	if verbose {
		sb.WriteString("\nVariants\n--------\n")
		sb.WriteString(VariantTable(sel) + "\n")
	}
	return sb.String()
}

// Status is the one-line resolution summary.
func Status(sel *sku.Selector) string {
	if name := sel.FirstUnselectedGroupName(); name != "" {
		return "Please select " + name
	}
	if v, ok := sel.SelectedVariant(); ok {
		return fmt.Sprintf("%s Resolved: %s (%s, stock %d)", model.IconResolved, v.Label(), v.ID, v.StockQuantity)
	}
	return model.IconUnresolved + " No variant matches this combination"
}

// VariantTable lists every bound variant, marking the resolved one.
func VariantTable(sel *sku.Selector) string {
	groups := sel.Groups()
	headers := []string{""}
	for _, g := range groups {
		headers = append(headers, g.Name)
	}
	headers = append(headers, "Stock", "ID")

	// Resolution is first-match-wins, so only the first match gets the marker.
	marked := !sel.IsComplete()
	selection := sel.Selection()
	variants := sel.Variants()
	rows := make([][]string, 0, len(variants))
	for _, v := range variants {
		marker := ""
		if !marked && v.Matches(selection) {
			marker = model.IconResolved
			marked = true
		}
		row := []string{marker}
		for _, a := range v.Attributes {
			row = append(row, a.Value)
		}
		row = append(row, strconv.Itoa(v.StockQuantity), v.ID)
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}
