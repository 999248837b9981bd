package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/propfocus/internal/api"
	"github.com/rshade/propfocus/internal/config"
	"github.com/rshade/propfocus/internal/tui"
)

// NewRevenueShowCmd creates the `revenue show <property-id>` command.
func NewRevenueShowCmd() *cobra.Command {
	var (
		period string
		output string
	)

	cmd := &cobra.Command{
		Use:   "show <property-id>",
		Short: "Show the revenue summary of one property",
		Args:  cobra.ExactArgs(1),
		Example: `  # Current month
  propfocus revenue show p1

  # A specific month as JSON
  propfocus revenue show p1 --period 2024-03 --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			p, err := resolvePeriod(period, cfg)
			if err != nil {
				return err
			}
			return runRevenueShow(cmd.Context(), cmd.OutOrStdout(), client, args[0], p, config.GetOutputFormat(output))
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "revenue period as YYYY-MM (default: current month)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson")

	return cmd
}

func runRevenueShow(
	ctx context.Context,
	w io.Writer,
	svc tui.RevenueProvider,
	propertyID, period, output string,
) error {
	summary, err := svc.GetRevenueSummary(ctx, propertyID, period)
	if errors.Is(err, api.ErrNotFound) {
		return fmt.Errorf("property %q not found", propertyID)
	}
	if err != nil {
		return fmt.Errorf("fetching revenue summary: %w", err)
	}

	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case outputNDJSON:
		return json.NewEncoder(w).Encode(summary)
	case outputTable:
		fmt.Fprint(w, tui.RenderRevenueText(summary))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}
