// Package main is the propfocus command.
package main

import (
	"context"
	"os"

	"github.com/rshade/propfocus/internal/cli"
	"github.com/rshade/propfocus/pkg/version"
)

func main() {
	os.Exit(exitCode(run()))
}

func run() error {
	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(context.Background())
}

// exitCode maps the command result to a process exit status.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
