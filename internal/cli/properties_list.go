package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/propfocus/internal/cli/pagination"
	"github.com/rshade/propfocus/internal/config"
	"github.com/rshade/propfocus/internal/logging"
	"github.com/rshade/propfocus/internal/property"
	"github.com/rshade/propfocus/internal/tui"
)

const (
	tabPadding         = 2
	defaultConcurrency = 4

	outputTable  = "table"
	outputJSON   = "json"
	outputNDJSON = "ndjson"
)

// propertyService is the subset of the SecureAPI client the list commands use.
type propertyService interface {
	tui.PropertyProvider
	tui.RevenueProvider
}

// propertyRow is one line of `properties list` output.
type propertyRow struct {
	property.Property

	Revenue      *property.RevenueSummary `json:"revenue,omitempty"`
	RevenueError string                   `json:"revenue_error,omitempty"`
}

// propertyListOutput is the JSON document written by `properties list --output json`.
type propertyListOutput struct {
	Properties []propertyRow     `json:"properties"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

type propertiesListParams struct {
	output      string
	withRevenue bool
	period      string
	concurrency int
	page        pagination.Params
}

// NewPropertiesListCmd creates the `properties list` command.
func NewPropertiesListCmd() *cobra.Command {
	var params propertiesListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties in the order the API returns them",
		Example: `  # Table of all properties
  propfocus properties list

  # Include each property's revenue summary, fetched concurrently
  propfocus properties list --with-revenue --period 2024-03

  # Second page of 10, as NDJSON
  propfocus properties list --page 2 --page-size 10 --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			client, err := newAPIClient(cfg)
			if err != nil {
				return err
			}
			if params.period, err = resolvePeriod(params.period, cfg); err != nil {
				return err
			}
			params.output = config.GetOutputFormat(params.output)
			return runPropertiesList(cmd.Context(), cmd.OutOrStdout(), client, params)
		},
	}

	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output format: table, json, ndjson (default: config output.default_format)")
	cmd.Flags().BoolVar(&params.withRevenue, "with-revenue", false, "fetch each property's revenue summary")
	cmd.Flags().StringVar(&params.period, "period", "", "revenue period as YYYY-MM (used with --with-revenue)")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", defaultConcurrency, "maximum concurrent revenue requests")
	cmd.Flags().IntVar(&params.page.Page, "page", 0, "page number (1-based); 0 lists everything")
	cmd.Flags().IntVar(&params.page.PageSize, "page-size", 0,
		fmt.Sprintf("results per page (default %d, requires --page)", pagination.DefaultPageSize))

	return cmd
}

func runPropertiesList(ctx context.Context, w io.Writer, svc propertyService, params propertiesListParams) error {
	if err := params.page.Validate(); err != nil {
		return err
	}
	if params.concurrency < 1 {
		return errors.New("concurrency must be >= 1")
	}
	switch params.output {
	case outputTable, outputJSON, outputNDJSON:
	default:
		return fmt.Errorf("unsupported output format: %s", params.output)
	}

	resp, err := svc.GetProperties(ctx)
	if err != nil {
		return fmt.Errorf("fetching properties: %w", err)
	}
	all := resp.Properties()
	if err = property.ValidateList(all); err != nil {
		return fmt.Errorf("fetching properties: %w", err)
	}

	page := pagination.Apply(all, params.page)
	rows := make([]propertyRow, len(page))
	for i, p := range page {
		rows[i] = propertyRow{Property: p}
	}

	if params.withRevenue {
		if err = fetchRevenueParallel(ctx, svc, rows, params.period, params.concurrency); err != nil {
			return err
		}
	}

	switch params.output {
	case outputJSON:
		out := propertyListOutput{Properties: rows}
		if params.page.Enabled() {
			meta := pagination.NewMeta(params.page, len(all))
			out.Pagination = &meta
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case outputNDJSON:
		enc := json.NewEncoder(w)
		for _, row := range rows {
			if err = enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderPropertyTable(w, rows, params.withRevenue)
	}
}

// fetchRevenueParallel fills in each row's revenue summary concurrently, with at
// most limit requests in flight. A failed summary is recorded on its row and
// does not fail the listing; only cancellation of ctx does.
func fetchRevenueParallel(
	ctx context.Context,
	svc tui.RevenueProvider,
	rows []propertyRow,
	period string,
	limit int,
) error {
	log := logging.FromContext(ctx)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range rows {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			summary, err := svc.GetRevenueSummary(gCtx, rows[i].ID, period)
			if err != nil {
				log.Warn().Ctx(ctx).Err(err).Str("property_id", rows[i].ID).Msg("revenue summary unavailable")
				rows[i].RevenueError = tui.RevenueLoadErrorText
				return nil
			}
			rows[i].Revenue = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetching revenue: %w", err)
	}
	return nil
}

func renderPropertyTable(w io.Writer, rows []propertyRow, withRevenue bool) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No properties found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	if withRevenue {
		fmt.Fprintln(tw, "ID\tName\tTimezone\tRevenue\tOccupancy")
		fmt.Fprintln(tw, "--\t----\t--------\t-------\t---------")
	} else {
		fmt.Fprintln(tw, "ID\tName\tTimezone")
		fmt.Fprintln(tw, "--\t----\t--------")
	}

	for _, row := range rows {
		if !withRevenue {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.ID, row.Name, row.Timezone)
			continue
		}
		revenue, occupancy := "-", "-"
		if row.Revenue != nil {
			revenue = tui.FormatMoney(row.Revenue.TotalRevenue, row.Revenue.Currency)
			occupancy = tui.FormatPercent(row.Revenue.OccupancyRate)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.ID, row.Name, row.Timezone, revenue, occupancy)
	}
	return tw.Flush()
}
