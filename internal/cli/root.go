package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/propfocus/internal/config"
	"github.com/rshade/propfocus/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the propfocus CLI.
// It loads .env and the config file, wires up logging and tracing, and
// registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:           "propfocus",
		Short:         "Property revenue dashboard and CLI",
		Long:          "propfocus: browse your properties and their monthly revenue from the terminal",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				cmd.PrintErrf("Warning: %v\n", err)
			}

			if configPath != "" {
				cfg, err := config.NewFromFile(configPath)
				if err != nil {
					return fmt.Errorf("loading config %s: %w", configPath, err)
				}
				config.SetGlobalConfig(cfg)
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $PROPFOCUS_HOME/config.yaml)")

	cmd.AddCommand(
		NewDashboardCmd(),
		newPropertiesCmd(),
		newRevenueCmd(),
		newConfigCmd(),
		NewDevServerCmd(),
		NewVersionCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Open the interactive dashboard
  propfocus dashboard

  # Show the dashboard for March 2024 as plain text
  propfocus dashboard --period 2024-03 --plain

  # List properties with their revenue as JSON
  propfocus properties list --with-revenue --output json

  # Show one property's revenue summary
  propfocus revenue show p1

  # Serve fixture data locally
  propfocus devserver --fixtures fixtures.yaml

  # Initialize configuration
  propfocus config init`

// newPropertiesCmd creates the properties command group.
func newPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "properties", Short: "Property commands"}
	cmd.AddCommand(NewPropertiesListCmd())
	return cmd
}

// newRevenueCmd creates the revenue command group.
func newRevenueCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "revenue", Short: "Revenue summary commands"}
	cmd.AddCommand(NewRevenueShowCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
