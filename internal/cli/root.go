// Package cli implements the cobra-based command line of the
// electron-builder action.
//
// The root command runs the action itself, so the binary can be invoked
// from action.yml without arguments. The inputs subcommand lists the
// declared action inputs. This file defines the root command, global flags
// and error handling.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/electron-builder-action/internal/model"
)

// Global flag variables shared across all subcommands.
var (
	// jsonOutput switches the inputs listing and error output to JSON.
	jsonOutput bool

	// verbose enables [verbose] diagnostics on stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Unlike a typical multi-command CLI, the root command does real work: the
// Actions runner starts the binary without arguments, so running the action
// is the default behavior. The inputs subcommand is a helper for humans.
func NewRootCommand() *cobra.Command {
	// flags is owned by this command instance, so every NewRootCommand
	// call starts from defaults.
	flags := &runFlags{}

	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "electron-builder-action",
		Short: "Build and release Electron apps with electron-builder",
		Long: `electron-builder-action installs the dependencies of an Electron app,
runs its build script and packages it with electron-builder, optionally
publishing the result.

Inputs are read from INPUT_<NAME> environment variables as provided by the
GitHub Actions runner. Run "electron-builder-action inputs" for the list.

Examples:
  INPUT_GITHUB_TOKEN=... electron-builder-action
  INPUT_GITHUB_TOKEN=... INPUT_RELEASE=true electron-builder-action --dry-run`,

		// All configuration comes from INPUT_* variables and flags.
		Args: cobra.NoArgs,

		// Errors are printed by Execute, in text or JSON. Usage text would
		// bury the actual problem in the job log.
		SilenceUsage:  true,
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// RunE receives the signal-aware context from ExecuteContext.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	// Local flags apply to the action run only, not to subcommands.
	registerRunFlags(rootCmd, flags)

	// Register subcommands.
	rootCmd.AddCommand(NewInputsCommand())

	return rootCmd
}

// Execute runs the root command and exits the process with the code
// carried by the returned error.
// This is the main entry point called from main.go.
//
// ctx is cancelled on SIGINT or SIGTERM, which stops the running child
// process. The error is then reported like any other failure.
func Execute(ctx context.Context, rootCmd *cobra.Command) {
	err := rootCmd.ExecuteContext(ctx)
	if code := handleError(os.Stderr, err); code != model.ExitSuccess {
		os.Exit(int(code))
	}
}

// handleError prints err to w and returns the exit code for it.
// CLIError types carry their own exit codes; other errors map to
// ExitFailure.
func handleError(w io.Writer, err error) model.ExitCode {
	if err == nil {
		return model.ExitSuccess
	}

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(w, cliErr.Message, cliErr.Err)
		return cliErr.Code
	}

	printError(w, err.Error(), nil)
	return model.ExitFailure
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
