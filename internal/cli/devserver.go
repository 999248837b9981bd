package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/propfocus/internal/devserver"
	"github.com/rshade/propfocus/internal/logging"
)

const defaultDevServerAddr = ":8787"

// NewDevServerCmd creates the devserver command, which serves the SecureAPI
// contract from a YAML fixture file.
func NewDevServerCmd() *cobra.Command {
	var (
		addr     string
		fixtures string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Serve fixture data over the SecureAPI contract",
		Long: `Runs a local HTTP server answering GET /api/properties and
GET /api/properties/{id}/revenue from a fixture file.

The fixture's envelope field (data or items) selects the list response shape, and
fail_properties: true makes the list endpoint answer 500.`,
		Example: `  # Serve fixtures on the default address
  propfocus devserver --fixtures fixtures.yaml

  # Require a bearer token
  propfocus devserver --fixtures fixtures.yaml --token secret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := devserver.LoadFixtures(fixtures)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := devserver.New(fx, devserver.Options{
				Addr:   addr,
				Token:  token,
				Logger: *logging.FromContext(ctx),
			})
			cmd.Printf("Serving %d properties on %s\n", len(fx.Properties), addr)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultDevServerAddr, "listen address")
	cmd.Flags().StringVar(&fixtures, "fixtures", "", "fixture YAML file")
	cmd.Flags().StringVar(&token, "token", "", "require this bearer token")
	_ = cmd.MarkFlagRequired("fixtures")

	return cmd
}
