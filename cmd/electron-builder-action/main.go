// Package main is the entry point for the electron-builder action binary.
//
// All functionality lives in the internal/cli package, which defines the
// cobra commands. Build-time variables (version, commit, date) are injected
// via ldflags and default to "dev", "none", and "unknown" respectively.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmr-tortoise/electron-builder-action/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// A cancelled job sends SIGINT/SIGTERM; the context stops the running
	// child process and prevents further packaging attempts.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCommand()
	cli.Execute(ctx, rootCmd)
}
