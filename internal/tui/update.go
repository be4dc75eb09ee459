package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"skupick/internal/catalog"
	"skupick/internal/report"
)

// MsgCatalogReady indicates that the catalog has been loaded.
type MsgCatalogReady struct {
	Catalog *catalog.Catalog
}

// MsgError indicates an error occurred.
type MsgError error

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.Help.Width = msg.Width
		m.VariantViewport.Width = msg.Width / 2
		m.VariantViewport.Height = msg.Height - 6 // minus title/footer
		return m, nil

	case MsgCatalogReady:
		m.Loading = false
		m.Catalog = msg.Catalog
		if err := msg.Catalog.Bind(m.Selector); err != nil {
			m.Err = err
			return m, nil
		}
		m.GroupIdx = 0
		m.ValueIdx = make([]int, len(m.Picker.Groups))
		m.syncCursorToSelection()
		m.refreshVariants()
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) {
			return m, tea.Quit
		}
		if m.Loading || m.Err != nil {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.Keys.Help):
			m.ShowHelp = !m.ShowHelp
			m.Help.ShowAll = m.ShowHelp
		case key.Matches(msg, m.Keys.Up):
			if m.GroupIdx > 0 {
				m.GroupIdx--
			}
		case key.Matches(msg, m.Keys.Down):
			if m.GroupIdx < len(m.Picker.Groups)-1 {
				m.GroupIdx++
			}
		case key.Matches(msg, m.Keys.Left):
			if m.ValueIdx[m.GroupIdx] > 0 {
				m.ValueIdx[m.GroupIdx]--
			}
		case key.Matches(msg, m.Keys.Right):
			if m.ValueIdx[m.GroupIdx] < len(m.Picker.Groups[m.GroupIdx].Values)-1 {
				m.ValueIdx[m.GroupIdx]++
			}
		case key.Matches(msg, m.Keys.Toggle):
			m.tapCursor()
			m.refreshVariants()
		case key.Matches(msg, m.Keys.Reset):
			if err := m.Selector.Reset(); err != nil {
				m.Picker.Message = err.Error()
			} else {
				m.Picker.Message = "Selection cleared"
			}
			m.refreshVariants()
		case key.Matches(msg, m.Keys.Variants):
			m.ShowVariants = !m.ShowVariants
		}
	}

	var cmd tea.Cmd
	if m.ShowVariants {
		m.VariantViewport, cmd = m.VariantViewport.Update(msg)
	}
	return m, cmd
}

// tapCursor forwards a tap on the value under the cursor to the selector.
// A selected value is turned off; a disabled one refuses the tap, like a
// disabled button would.
func (m *AppModel) tapCursor() {
	if len(m.Picker.State) == 0 {
		return
	}
	vs := m.Picker.State[m.GroupIdx].Values[m.ValueIdx[m.GroupIdx]]
	if !vs.Selected && !vs.Enabled {
		m.Picker.Message = fmt.Sprintf("%s is not available with the current selection", vs.Value)
		return
	}
	if _, err := m.Selector.Toggle(m.GroupIdx, vs.Value, !vs.Selected); err != nil {
		m.Picker.Message = err.Error()
	}
}

// syncCursorToSelection moves every value cursor onto its selected value,
// so a restored variant opens with the cursor on it.
func (m *AppModel) syncCursorToSelection() {
	for i, g := range m.Picker.State {
		for j, v := range g.Values {
			if v.Selected {
				m.ValueIdx[i] = j
			}
		}
	}
}

func (m *AppModel) refreshVariants() {
	m.VariantViewport.SetContent(report.VariantTable(m.Selector))
}

// LoadCatalogCmd loads the catalog in the background. A non-empty restore
// overrides the variant the catalog file selects.
func LoadCatalogCmd(source, restore string) tea.Cmd {
	return func() tea.Msg {
		c := catalog.Demo()
		if source != "" {
			var err error
			if c, err = catalog.Load(source); err != nil {
				return MsgError(err)
			}
		}
		if restore != "" {
			c.Selected = restore
		}
		return MsgCatalogReady{Catalog: c}
	}
}
