package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/propfocus/internal/api"
	"github.com/rshade/propfocus/internal/config"
	"github.com/rshade/propfocus/internal/tui"
)

// NewDashboardCmd creates the dashboard command. On a terminal it runs the
// interactive TUI; otherwise (or with --plain) it loads once and prints the result.
func NewDashboardCmd() *cobra.Command {
	var (
		period  string
		plain   bool
		noColor bool
		ci      bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse properties and their revenue summary",
		Long: `Loads your properties, selects the first one and shows its revenue summary.

Use the arrow keys (or j/k) to switch property and q to quit. When stdout is not a
terminal, or with --plain, the dashboard is rendered once as text.`,
		Example: `  # Interactive dashboard for the current month
  propfocus dashboard

  # Revenue for a specific month
  propfocus dashboard --period 2024-03

  # One-shot text output for scripts
  propfocus dashboard --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			p, err := resolvePeriod(period, cfg)
			if err != nil {
				return err
			}
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}

			switch tui.DetectOutputMode(plain, noColor, ci) {
			case tui.OutputModeInteractive:
				return runInteractiveDashboard(cmd, client, p)
			case tui.OutputModeStyled:
				return renderDashboardOnce(cmd, client, p, true)
			case tui.OutputModePlain:
				return renderDashboardOnce(cmd, client, p, false)
			default:
				return renderDashboardOnce(cmd, client, p, false)
			}
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "revenue period as YYYY-MM (default: config revenue.period, else current month)")
	cmd.Flags().BoolVar(&plain, "plain", false, "render once as plain text instead of the interactive TUI")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable styling (same as NO_COLOR)")
	cmd.Flags().BoolVar(&ci, "ci", false, "render once without interaction (same as CI)")

	return cmd
}

// runInteractiveDashboard runs the Bubble Tea program on the alternate screen.
// Logs that would go to stderr are discarded so they cannot corrupt the screen.
func runInteractiveDashboard(cmd *cobra.Command, client *api.Client, period string) error {
	ctx := cmd.Context()
	if !logsToFile(ctx) {
		ctx = zerolog.New(io.Discard).WithContext(ctx)
	}

	m := tui.NewDashboardModel(ctx, client, client,
		tui.WithRevenuePeriod(period),
		tui.WithSize(tui.TerminalWidth(), 0),
	)
	defer m.Unmount()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}

// renderDashboardOnce runs the same load and select flow without a program and
// prints the selector plus the first property's revenue summary.
func renderDashboardOnce(cmd *cobra.Command, client *api.Client, period string, styled bool) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := tui.NewDashboardModel(ctx, client, client,
		tui.WithRevenuePeriod(period),
		tui.WithSize(tui.TerminalWidth(), 0),
	)
	defer m.Unmount()
	tui.Settle(m, m.Load())

	w := cmd.OutOrStdout()
	if styled {
		fmt.Fprintln(w, m.View())
		return nil
	}

	fmt.Fprint(w, tui.RenderSelectorText(m))
	selected, ok := m.SelectedProperty()
	if !ok {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Revenue Summary: %s\n", selected.Name)
	rev := m.Revenue()
	if rev.State() == tui.ViewStateError {
		fmt.Fprintf(w, "  %s\n", rev.ErrorText())
		return nil
	}
	fmt.Fprint(w, tui.RenderRevenueText(rev.Summary()))
	return nil
}
