package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/propfocus/internal/property"
)

const (
	dashboardTitle    = "Property Management Dashboard"
	dashboardHeading  = "Revenue Overview"
	dashboardSubtitle = "Monthly performance insights for your properties"
	selectorLabel     = "Select Property"
	noPropertiesText  = "No properties available."
	dashboardHelp     = "↑/↓ j/k: select property • q: quit"
)

// View renders the dashboard (Bubble Tea interface). The page chrome is always
// rendered; only the selector area and the revenue view depend on load state.
func (m *DashboardModel) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(dashboardTitle))
	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render(dashboardHeading))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(dashboardSubtitle))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render(selectorLabel))
	b.WriteString("\n")
	b.WriteString(m.renderSelector())

	if m.selected != "" {
		b.WriteString("\n")
		b.WriteString(m.revenue.View())
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(dashboardHelp))
	return b.String()
}

func (m *DashboardModel) renderSelector() string {
	width := max(m.width-borderPadding*2, minHeight)
	switch m.state {
	case ViewStateError:
		return ErrorBoxStyle.Width(width).Render(m.errText)
	case ViewStateReady:
		if m.selector == nil || m.selector.ItemCount() == 0 {
			return SelectorBoxStyle.Width(width).Render(SubtleStyle.Render(noPropertiesText))
		}
		return SelectorBoxStyle.Width(width).Render(m.selector.View())
	case ViewStateIdle, ViewStateLoading, ViewStateQuitting:
		return SelectorBoxStyle.Width(width).Render(RenderLoading(m.loading))
	}
	return ""
}

func renderPropertyRow(p property.Property, selected bool) string {
	name := p.Name
	if name == "" {
		name = p.ID
	}
	if selected {
		return SelectedRowStyle.Render("> " + name)
	}
	return "  " + name
}

// RenderSelectorText renders the selector result as unstyled text for
// non-interactive output. The selected property is marked with "*".
func RenderSelectorText(m *DashboardModel) string {
	var b strings.Builder
	b.WriteString(dashboardTitle + "\n")
	b.WriteString(dashboardHeading + "\n")
	b.WriteString(selectorLabel + ":\n")

	switch m.State() {
	case ViewStateError:
		b.WriteString("  " + m.ErrorText() + "\n")
	case ViewStateReady:
		if len(m.Properties()) == 0 {
			b.WriteString("  " + noPropertiesText + "\n")
		}
		for _, p := range m.Properties() {
			marker := " "
			if p.ID == m.Selected() {
				marker = "*"
			}
			fmt.Fprintf(&b, "  %s %s (%s)\n", marker, p.Name, p.ID)
		}
	case ViewStateIdle, ViewStateLoading, ViewStateQuitting:
		b.WriteString("  " + loadingText + "\n")
	}
	return b.String()
}
