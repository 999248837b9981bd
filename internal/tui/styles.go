package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorHeader   = lipgloss.Color("39")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("252")
	ColorSubtle   = lipgloss.Color("240")
	ColorInfo     = lipgloss.Color("33")
	ColorWarning  = lipgloss.Color("214")
	ColorCritical = lipgloss.Color("196")
	ColorSelected = lipgloss.Color("57")
	ColorBorder   = lipgloss.Color("238")
)

// Shared styles.
//
//nolint:gochecknoglobals // Lip Gloss styles are package-level by convention.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorValue).MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorLabel)

	ValueStyle = lipgloss.NewStyle().Foreground(ColorValue)

	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	InfoStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// SelectorBoxStyle frames the property selector, loading and error states alike.
	SelectorBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	ErrorBoxStyle = SelectorBoxStyle.
			BorderForeground(ColorCritical).
			Foreground(ColorCritical)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(ColorSelected)
)
