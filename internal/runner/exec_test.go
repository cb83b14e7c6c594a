package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is not a real test. The ExecExecutor tests re-execute
// the test binary with GO_WANT_HELPER_PROCESS=1 and use this function as a
// small, portable child process.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}
	if len(args) == 0 {
		os.Exit(2)
	}

	switch args[0] {
	case "env":
		fmt.Print(os.Getenv(args[1]))
	case "pwd":
		wd, _ := os.Getwd()
		fmt.Print(wd)
	case "stderr":
		fmt.Fprint(os.Stderr, args[1])
	case "exit":
		code, _ := strconv.Atoi(args[1])
		os.Exit(code)
	}
	os.Exit(0)
}

func helperCommand(t *testing.T, dir string, args ...string) Command {
	t.Helper()
	self, err := os.Executable()
	require.NoError(t, err)
	return Command{
		Name: self,
		Args: append([]string{"-test.run=TestHelperProcess", "--"}, args...),
		Dir:  dir,
		Env:  map[string]string{"GO_WANT_HELPER_PROCESS": "1"},
	}
}

func TestExecExecutor_StreamsOutputAndEnv(t *testing.T) {
	var stdout bytes.Buffer
	e := &ExecExecutor{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	cmd := helperCommand(t, "", "env", "GH_TOKEN")
	cmd.Env["GH_TOKEN"] = "secret-token"

	require.NoError(t, e.Run(context.Background(), cmd))
	assert.Equal(t, "secret-token", stdout.String())
}

func TestExecExecutor_Stderr(t *testing.T) {
	var stderr bytes.Buffer
	e := &ExecExecutor{Stdout: &bytes.Buffer{}, Stderr: &stderr}

	require.NoError(t, e.Run(context.Background(), helperCommand(t, "", "stderr", "warning")))
	assert.Equal(t, "warning", stderr.String())
}

func TestExecExecutor_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer
	e := &ExecExecutor{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	require.NoError(t, e.Run(context.Background(), helperCommand(t, dir, "pwd")))

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(stdout.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecExecutor_SetsPWD(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PWD is not used on Windows")
	}
	dir := t.TempDir()
	var stdout bytes.Buffer
	e := &ExecExecutor{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	require.NoError(t, e.Run(context.Background(), helperCommand(t, dir, "env", "PWD")))
	assert.Equal(t, dir, stdout.String())
}

func TestExecExecutor_NonZeroExit(t *testing.T) {
	e := &ExecExecutor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	err := e.Run(context.Background(), helperCommand(t, "", "exit", "3"))
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode())
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestExecExecutor_MissingBinary(t *testing.T) {
	e := &ExecExecutor{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}

	err := e.Run(context.Background(), Command{Name: "electron-builder-action-no-such-binary"})
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, -1, cmdErr.ExitCode())
}

func TestCommand_String(t *testing.T) {
	c := Command{
		Name: "npx",
		Args: []string{"--no-install", "electron-builder", "-c.productName=My App"},
		Env:  map[string]string{"GH_TOKEN": "secret"},
	}
	assert.NotContains(t, c.String(), "secret")

	// The rendered line must split back into the same argv.
	argv, err := shellquote.Split(c.String())
	require.NoError(t, err)
	assert.Equal(t, c.Argv(), argv)
}

func TestCommand_Environ(t *testing.T) {
	c := Command{Env: map[string]string{"B": "2", "A": "1"}}

	env := c.Environ([]string{"PATH=/bin", "A=0"})
	assert.Equal(t, []string{"PATH=/bin", "A=0", "A=1", "B=2"}, env)
}

func TestDryRunExecutor(t *testing.T) {
	var out bytes.Buffer
	d := &DryRunExecutor{Out: &out}

	err := d.Run(context.Background(), Command{
		Name: "yarn",
		Args: []string{"install"},
		Dir:  "app",
		Env:  map[string]string{"GH_TOKEN": "secret", "ADBLOCK": "true"},
	})
	require.NoError(t, err)

	assert.Equal(t, "[dry-run] yarn install (in app)\n[dry-run]   env: ADBLOCK, GH_TOKEN\n", out.String())
	assert.NotContains(t, out.String(), "secret")
}
