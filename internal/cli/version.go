package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/propfocus/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("propfocus %s\n", version.GetVersion())
			cmd.Printf("commit: %s\n", version.GetGitCommit())
			cmd.Printf("built: %s\n", version.GetBuildDate())
		},
	}
}
