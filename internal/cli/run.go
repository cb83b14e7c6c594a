// Package cli — run.go implements the action itself, the root command's
// default behavior.
//
// Orchestration steps:
//  1. Validate --fallback-manager and --platform
//  2. Resolve inputs from INPUT_* variables against the embedded action.yml
//  3. Report deprecated inputs as workflow warnings
//  4. Pick the real or the dry-run executor
//  5. Prepare the runner (package.json, package manager, args parsing)
//  6. Install, build and package, retrying packaging per max_attempts
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/electron-builder-action/internal/inputs"
	"github.com/mmr-tortoise/electron-builder-action/internal/model"
	"github.com/mmr-tortoise/electron-builder-action/internal/pkgmanager"
	"github.com/mmr-tortoise/electron-builder-action/internal/runner"
)

// hostGOOS is the operating system the target platform is derived from.
var hostGOOS = runtime.GOOS

// runFlags holds the flag values for running the action.
type runFlags struct {
	dryRun   bool   // --dry-run: print commands instead of running them
	fallback string // --fallback-manager: manager used without a lock file
	platform string // --platform: target platform, empty means the host's
}

// registerRunFlags adds the action's own flags to cmd. None of them exist
// in action.yml; they are for running the binary outside a workflow.
func registerRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the commands that would run without running them")
	cmd.Flags().StringVar(&flags.fallback, "fallback-manager", pkgmanager.Yarn.String(),
		"Package manager to use when no lock file is found: npm, yarn, pnpm, none")
	cmd.Flags().StringVar(&flags.platform, "platform", "",
		"Target platform instead of the host's: mac, windows, linux")
}

// runAction resolves the configuration and runs every step of the action.
func runAction(ctx context.Context, stdout, stderr io.Writer, flags *runFlags) error {
	// Step 1: Validate flags
	fallback, err := pkgmanager.ParseManager(flags.fallback)
	if err != nil {
		return model.NewConfigError("invalid --fallback-manager", err)
	}

	var platform model.Platform
	if flags.platform != "" {
		platform, err = model.ParsePlatform(flags.platform)
		if err != nil {
			return model.NewConfigError("invalid --platform", err)
		}
	}

	// Step 2: Resolve inputs against the embedded action.yml
	schema, err := inputs.DefaultSchema()
	if err != nil {
		return model.NewConfigError("failed to load action metadata", err)
	}

	cfg, err := inputs.Resolve(schema, os.LookupEnv)
	if err != nil {
		return model.NewConfigError("invalid action input", err)
	}

	// Step 3: Deprecated inputs become workflow warnings (annotations on
	// the run summary)
	for _, w := range cfg.Warnings {
		fmt.Fprintf(stdout, "::warning::%s\n", w)
	}

	// Step 4: Choose how commands run. Child output goes straight to the
	// job log.
	var executor runner.Executor = &runner.ExecExecutor{Stdin: os.Stdin, Stdout: stdout, Stderr: stderr}
	if flags.dryRun {
		executor = &runner.DryRunExecutor{Out: stdout}
	}

	// Step 5: Everything that can fail without running a process
	r, err := runner.Prepare(runner.Options{
		Config:   cfg,
		GOOS:     hostGOOS,
		Platform: platform,
		Fallback: fallback,
		Executor: executor,
		Logger:   stepLogger(stdout),
	})
	if err != nil {
		return err
	}

	VerboseLog("Platform: %s", r.Platform())
	VerboseLog("Package manager: %s", r.Manager())
	VerboseLog("Package root: %s", cfg.PackageRoot)
	VerboseLog("App root: %s", cfg.AppRoot)
	VerboseLog("Max attempts: %d", cfg.MaxAttempts)

	// Step 6: Install, build, package
	return r.Run(ctx)
}

// stepLogger prints each message preceded by a blank line, so steps stand
// out between the child processes' output.
func stepLogger(w io.Writer) runner.Logger {
	return func(format string, args ...any) {
		fmt.Fprintf(w, "\n"+format+"\n", args...)
	}
}
