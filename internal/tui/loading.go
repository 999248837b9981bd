package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// loadingText is shown next to the spinner.
const loadingText = "Loading..."

// LoadingState wraps a spinner shown while a fetch is outstanding.
type LoadingState struct {
	spinner spinner.Model
}

// NewLoadingState creates a LoadingState with the dot spinner.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its own tick messages and ignores everything else.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(tick)
	return cmd
}

// RenderLoading renders the spinner and loading text.
func RenderLoading(l *LoadingState) string {
	if l == nil {
		return loadingText
	}
	return l.spinner.View() + " " + loadingText
}
