// Package cli — inputs.go implements the "electron-builder-action inputs"
// command, which lists the inputs declared in the embedded action.yml.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/electron-builder-action/internal/inputs"
	"github.com/mmr-tortoise/electron-builder-action/internal/model"
)

// NewInputsCommand creates the "inputs" cobra command.
func NewInputsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inputs",
		Short: "List the action inputs",
		Long: `List the inputs declared in action.yml with their defaults.

Each input NAME is read from the INPUT_NAME environment variable
(upper-cased).

Examples:
  electron-builder-action inputs
  electron-builder-action inputs --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInputs(cmd.OutOrStdout())
		},
	}
}

// runInputs implements the inputs command.
//
// Steps:
//  1. Parse the action.yml embedded in the binary
//  2. Print the inputs in declaration order, as JSON with --json or as a
//     table otherwise
func runInputs(out io.Writer) error {
	// Step 1: Load the schema
	schema, err := inputs.DefaultSchema()
	if err != nil {
		return model.NewConfigError("failed to load action metadata", err)
	}

	// Step 2: Print
	if IsJSONOutput() {
		return printInputsJSON(out, schema.Inputs())
	}
	printInputsText(out, schema.Inputs())
	return nil
}

// inputJSON adds the environment variable name to InputSpec.
type inputJSON struct {
	inputs.InputSpec

	// EnvVar is the INPUT_* variable the input is read from.
	EnvVar string `json:"envVar"`
}

// printInputsJSON writes the inputs as an indented JSON document:
//
//	{
//	  "inputs": [
//	    {"name": "github_token", "required": true, "envVar": "INPUT_GITHUB_TOKEN", ...}
//	  ]
//	}
//
// The array is never null, so consumers can iterate without a nil check.
func printInputsJSON(out io.Writer, specs []inputs.InputSpec) error {
	result := struct {
		Inputs []inputJSON `json:"inputs"`
	}{
		Inputs: make([]inputJSON, 0, len(specs)),
	}
	for _, s := range specs {
		result.Inputs = append(result.Inputs, inputJSON{InputSpec: s, EnvVar: inputs.EnvName(s.Name)})
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// printInputsText prints a fixed-width table:
//
//	NAME                     REQUIRED  DEFAULT   DESCRIPTION
//	github_token             yes       -         GitHub authentication token...
//	app_root                 no        -         (deprecated) Directory ...
func printInputsText(out io.Writer, specs []inputs.InputSpec) {
	fmt.Fprintf(out, "%-24s %-9s %-9s %s\n", "NAME", "REQUIRED", "DEFAULT", "DESCRIPTION")
	for _, s := range specs {
		fmt.Fprintf(out, "%-24s %-9s %-9s %s\n", s.Name, yesNo(s.Required), formatDefault(s.Default), describe(s))
	}
}

// formatDefault renders a default value for the table. Missing and empty
// defaults both print as "-".
func formatDefault(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

// describe returns the description column, flagging deprecated inputs.
func describe(s inputs.InputSpec) string {
	if s.Deprecated() {
		return "(deprecated) " + s.Description
	}
	return s.Description
}

// yesNo renders a boolean column.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
