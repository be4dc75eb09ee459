package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skupick/internal/model"
	"skupick/internal/report"
	"skupick/internal/sku"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")) // Pinkish

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	selectedChipStyle = chipStyle.
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				BorderForeground(lipgloss.Color("57"))

	disabledChipStyle = chipStyle.
				Foreground(lipgloss.Color("238")).
				BorderForeground(lipgloss.Color("238")).
				Strikethrough(true)

	cursorColor = lipgloss.Color("208") // Orange

	detailStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))

	resolvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Loading catalog... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to quit.\n", m.Err)
	}

	width := m.WindowSize.Width
	if width < 40 {
		width = 40
	}

	var left strings.Builder
	left.WriteString(titleStyle.Render(m.Catalog.Name))
	left.WriteString("\n\n")
	for i, g := range m.Picker.State {
		left.WriteString(m.renderGroup(i, g))
		left.WriteString("\n")
	}

	leftView := lipgloss.NewStyle().Width(width / 2).Render(left.String())
	rightView := detailStyle.Width(width/2 - 4).Render(m.renderDetails())
	if m.ShowVariants {
		rightView = detailStyle.Width(width/2 - 4).Render(m.VariantViewport.View())
	}

	status := m.Picker.Message
	if status == "" {
		status = report.Status(m.Selector)
	}
	footer := "\n" + adviceStyle.Render(status) + "\n" + m.Help.View(m.Keys)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftView, rightView) + footer
}

// renderGroup draws one attribute group as a row of chips.
func (m AppModel) renderGroup(idx int, g sku.GroupState) string {
	label := g.Name
	if idx == m.GroupIdx {
		label = model.IconCursor + " " + label
	} else {
		label = "  " + label
	}

	chips := make([]string, len(g.Values))
	for j, v := range g.Values {
		var style lipgloss.Style
		switch {
		case v.Selected:
			style = selectedChipStyle
		case v.Enabled:
			style = chipStyle
		default:
			style = disabledChipStyle
		}
		if idx == m.GroupIdx && j == m.ValueIdx[idx] {
			style = style.BorderForeground(cursorColor)
		}
		text := v.Value
		if v.Selected && !v.Enabled {
			text = model.IconStale + " " + text
		}
		chips[j] = style.Render(text)
	}

	return groupStyle.Render(label) + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m AppModel) renderDetails() string {
	var sb strings.Builder
	if v := m.Picker.Resolved; v != nil {
		sb.WriteString(resolvedStyle.Render(model.IconResolved+" "+v.Label()) + "\n\n")
		for _, a := range v.Attributes {
			sb.WriteString(fmt.Sprintf("%s: %s\n", a.Name, a.Value))
		}
		sb.WriteString(fmt.Sprintf("\nStock: %d\n", v.StockQuantity))
		sb.WriteString(dimStyle.Render("ID: " + v.ID))
		return sb.String()
	}

	if name := m.Selector.FirstUnselectedGroupName(); name != "" {
		sb.WriteString("Please select " + groupStyle.Render(name) + "\n\n")
	} else {
		sb.WriteString(model.IconUnresolved + " This combination is not sold\n\n")
	}
	for _, a := range m.Selector.Selection() {
		value := a.Value
		if value == "" {
			value = dimStyle.Render("-")
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", a.Name, value))
	}
	return sb.String()
}

func (m AppModel) Init() tea.Cmd {
	return LoadCatalogCmd(m.Source, m.Restore)
}
