package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconSelected   = "●" // Value is part of the current selection
	IconEnabled    = "○" // Value can be tapped
	IconDisabled   = "✗" // No in-stock variant fits the current selection
	IconStale      = "◐" // Selected, but no longer compatible with the rest
	IconResolved   = "✓"
	IconUnresolved = "≠" // Every group filled, no such variant
	IconCursor     = "›"
)
