package model

import (
	"fmt"
	"strings"
)

// Platform is the desktop target the packaging tool builds for. It is
// always the platform of the host running the action.
type Platform string

const (
	// PlatformMac is macOS (GOOS "darwin").
	PlatformMac Platform = "mac"

	// PlatformWindows is Windows (GOOS "windows").
	PlatformWindows Platform = "windows"

	// PlatformLinux is Linux and every other GOOS value.
	PlatformLinux Platform = "linux"
)

// PlatformFromGOOS maps a Go operating system identifier (runtime.GOOS) to
// a Platform. Unrecognized identifiers map to PlatformLinux.
func PlatformFromGOOS(goos string) Platform {
	switch goos {
	case "darwin":
		return PlatformMac
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// String returns the string representation of Platform.
func (p Platform) String() string {
	return string(p)
}

// IsValid checks whether the Platform value is one of the predefined
// platforms.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformMac, PlatformWindows, PlatformLinux:
		return true
	default:
		return false
	}
}

// BuilderFlag returns the command-line flag that selects this platform in
// electron-builder, e.g. "--mac".
func (p Platform) BuilderFlag() string {
	return "--" + string(p)
}

// ParsePlatform converts a string to a Platform.
// Returns an error if the string does not match any valid platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(s))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid platform: %q (valid: mac, windows, linux)", s)
	}
	return p, nil
}

// ExitCode is the process exit status reported to the CI runner.
type ExitCode int

const (
	// ExitSuccess indicates the action completed successfully.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates a fatal condition. The action does not
	// distinguish failure causes through the exit status; the diagnostic
	// printed to stderr carries the detail.
	ExitFailure ExitCode = 1
)

// ErrorKind classifies a fatal error.
type ErrorKind string

const (
	// KindConfiguration covers missing or invalid inputs, a missing
	// package.json and an unresolvable package manager. These are always
	// detected before any child process runs.
	KindConfiguration ErrorKind = "configuration"

	// KindExecution covers non-zero exits of child processes.
	KindExecution ErrorKind = "execution"
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Kind tells configuration errors apart from execution errors.
	Kind ErrorKind

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration CLIError. err may be nil.
func NewConfigError(message string, err error) *CLIError {
	return &CLIError{Code: ExitFailure, Kind: KindConfiguration, Message: message, Err: err}
}

// NewExecutionError creates an execution CLIError wrapping the failure of a
// child process.
func NewExecutionError(message string, err error) *CLIError {
	return &CLIError{Code: ExitFailure, Kind: KindExecution, Message: message, Err: err}
}
