// Package runner executes the action: dependency install, build script and
// the packaging step with its retry budget.
//
// Prepare performs every check that needs no child process (manifest,
// package manager, argument parsing) so configuration errors surface before
// anything runs. Runner.Run then spawns the child processes one at a time
// through an Executor, blocking on each.
//
// Child processes receive their environment explicitly through Command.Env.
// The process-wide environment is never modified. Credentials (GH_TOKEN and
// the CSC_* signing variables) are only passed to the packaging command,
// which is the one tool that reads them.
package runner
