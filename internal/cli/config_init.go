package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/propfocus/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates $PROPFOCUS_HOME/config.yaml (default ~/.propfocus/config.yaml) with
default values. The file is written with 0600 permissions because it may hold an
API token.`,
		Example: `  # Create configuration
  propfocus config init

  # Create configuration, overwriting existing
  propfocus config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func initConfig(cmd *cobra.Command, force bool) error {
	cfg := config.New()

	if !force {
		if _, err := os.Stat(cfg.ConfigPath()); err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", cfg.ConfigPath(), err)
		}
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}

// NewConfigShowCmd creates the config show command. The API token is masked.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cfg.API.Token != "" {
				cfg.API.Token = maskedToken
			}
			out, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			cmd.Print(string(out))
			return nil
		},
	}
}

const maskedToken = "********"
