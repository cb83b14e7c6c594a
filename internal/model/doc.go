// Package model defines the domain types and value objects for the
// electron-builder action.
//
// This package contains pure data structures with no external dependencies.
// The host platform is computed once at startup and never changes for the
// lifetime of the process.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries an exit code and an error class for proper OS
// process exit handling.
package model
