package cli

import (
	"fmt"

	"github.com/rshade/propfocus/internal/api"
	"github.com/rshade/propfocus/internal/config"
	"github.com/rshade/propfocus/internal/property"
)

// newAPIClient builds a SecureAPI client from the api section of cfg.
func newAPIClient(cfg *config.Config) (*api.Client, error) {
	client, err := api.New(api.Config{
		BaseURL:    cfg.API.BaseURL,
		Token:      cfg.API.Token,
		Timeout:    cfg.API.Timeout,
		MinVersion: cfg.API.MinVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("creating api client: %w", err)
	}
	return client, nil
}

// resolvePeriod validates the --period flag, falling back to the configured default.
func resolvePeriod(flagValue string, cfg *config.Config) (string, error) {
	if flagValue == "" {
		flagValue = cfg.Revenue.Period
	}
	return property.ParsePeriod(flagValue)
}
