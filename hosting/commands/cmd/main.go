// Command powergit stores per-platform credentials for
// GitHub, GitLab and Bitbucket and uses them to create
// new repositories.
package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	root := newRootCmd(os.Stdout, os.Stderr)

	return root.ExecuteContext(context.Background()) //nolint:wrapcheck // commands add context
}
