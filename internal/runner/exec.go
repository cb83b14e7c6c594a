package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Command describes a single child process.
type Command struct {
	// Name is the executable, resolved through PATH.
	Name string

	// Args follow Name. They are passed as-is, no shell is involved.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds variables added on top of the inherited environment.
	Env map[string]string
}

// Argv returns Name followed by Args.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line with POSIX shell quoting. Env values are
// never included.
func (c Command) String() string {
	return shellquote.Join(c.Argv()...)
}

// EnvNames returns the names of the variables in Env, sorted.
func (c Command) EnvNames() []string {
	names := make([]string, 0, len(c.Env))
	for k := range c.Env {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Environ appends Env to base in sorted key order. Later entries win when a
// key repeats, which is how os/exec treats duplicates.
func (c Command) Environ(base []string) []string {
	out := make([]string, 0, len(base)+len(c.Env))
	out = append(out, base...)
	for _, k := range c.EnvNames() {
		out = append(out, k+"="+c.Env[k])
	}
	return out
}

// Executor runs a command to completion.
//
// ExecExecutor runs real processes. DryRunExecutor only prints them. Tests
// use recording fakes.
type Executor interface {
	Run(ctx context.Context, cmd Command) error
}

// CommandError reports a child process that could not be started or
// exited with a non-zero status.
type CommandError struct {
	// Command is the failed command. Its Env values are never rendered.
	Command Command

	// Err is the *exec.ExitError, or the start failure.
	Err error
}

// Error renders the command line and the cause, e.g.
// `command "npm install" failed: exit status 1`.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.Command.String(), e.Err)
}

// Unwrap returns the underlying os/exec error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode returns the child's exit status, or -1 if the process did not
// exit normally (not started, killed by a signal).
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// ExecExecutor runs commands with os/exec, streaming output live.
//
// The child inherits the parent's environment plus Command.Env. Nil
// streams are connected to the null device, as with exec.Cmd.
type ExecExecutor struct {
	// Stdin feeds the child. The action passes os.Stdin.
	Stdin io.Reader

	// Stdout and Stderr receive the child's output as it is written, so
	// long installs show progress in the job log.
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts c and waits for it. The child is killed if ctx is cancelled.
func (e *ExecExecutor) Run(ctx context.Context, c Command) error {
	// #nosec G204 -- the command line is assembled from action inputs on purpose
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	// cmd.Environ includes PWD for cmd.Dir, which a plain os.Environ lacks.
	cmd.Env = c.Environ(cmd.Environ())
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return &CommandError{Command: c, Err: err}
	}
	return nil
}

// DryRunExecutor prints each command instead of running it.
type DryRunExecutor struct {
	Out io.Writer
}

// Run prints c and its working directory, followed by the names of the
// variables it would add to the environment. Values are never printed:
//
//	[dry-run] npm install (in .)
//	[dry-run]   env: ADBLOCK
func (d *DryRunExecutor) Run(_ context.Context, c Command) error {
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	fmt.Fprintf(d.Out, "[dry-run] %s (in %s)\n", c.String(), dir)
	if len(c.Env) > 0 {
		fmt.Fprintf(d.Out, "[dry-run]   env: %s\n", strings.Join(c.EnvNames(), ", "))
	}
	return nil
}
