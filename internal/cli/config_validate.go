package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/propfocus/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration (file, .env and environment overrides).

This includes:
- api.base_url is an absolute URL
- api.min_version is a valid semver constraint
- output.default_format is table, json or ndjson
- logging.level and logging.format are known values
- revenue.period is YYYY-MM`,
		Example: `  # Validate current configuration
  propfocus config validate

  # Validate and show detailed information
  propfocus config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  API base URL: %s\n", cfg.API.BaseURL)
	cmd.Printf("  API timeout: %s\n", cfg.API.Timeout)
	cmd.Printf("  API token: %s\n", tokenStatus(cfg.API.Token))
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	if cfg.Revenue.Period != "" {
		cmd.Printf("  Revenue period: %s\n", cfg.Revenue.Period)
	} else {
		cmd.Println("  Revenue period: current month")
	}
}

func tokenStatus(token string) string {
	if token == "" {
		return "not set"
	}
	return "set"
}
