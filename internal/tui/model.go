package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"skupick/internal/catalog"
	"skupick/internal/sku"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Source   string // catalog path, "" for the demo catalog
	Restore  string // variant id to select once loaded
	Catalog  *catalog.Catalog
	Selector *sku.Selector
	Picker   *Picker
	Loading  bool
	Err      error

	// UI State
	GroupIdx     int
	ValueIdx     []int // cursor per group
	WindowSize   tea.WindowSizeMsg
	ShowVariants bool
	ShowHelp     bool

	// Components
	Keys            KeyMap
	Help            help.Model
	VariantViewport viewport.Model
}

// InitialModel returns the initial state. source is the catalog file to
// load; an empty source loads the demo catalog.
func InitialModel(source string) AppModel {
	picker := &Picker{}
	return AppModel{
		Source:   source,
		Picker:   picker,
		Selector: sku.New(sku.WithRenderer(picker), sku.WithListener(picker)),
		Loading:  true,
		Keys:     DefaultKeyMap(),
		Help:     help.New(),

		VariantViewport: viewport.New(0, 0),
	}
}
