// Package theme defines the color palette used by the status view.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors the status view draws with.
type Theme struct {
	Accent     lipgloss.Color
	AccentDim  lipgloss.Color
	BorderDim  lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SelectedFg lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	Untracked  lipgloss.Color
}

// Default returns the built-in palette.
func Default() *Theme {
	return &Theme{
		Accent:     lipgloss.Color("141"), // soft magenta/purple
		AccentDim:  lipgloss.Color("117"), // soft cyan
		BorderDim:  lipgloss.Color("238"),
		MutedFg:    lipgloss.Color("250"),
		TextFg:     lipgloss.Color("255"),
		SelectedFg: lipgloss.Color("232"),
		SuccessFg:  lipgloss.Color("48"),  // vibrant green
		WarnFg:     lipgloss.Color("214"), // vibrant orange
		ErrorFg:    lipgloss.Color("196"), // vibrant red
		Untracked:  lipgloss.Color("243"),
	}
}
