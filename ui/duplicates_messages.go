package ui

// TUI Message Types for duplicate selection
type ExclusionConfirmedMsg struct {
	Excluded []string
}
