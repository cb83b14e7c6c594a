// Package electronbuilderaction carries the GitHub Action metadata for the
// electron-builder action.
//
// action.yml at the repository root is read by the Actions runner and is
// embedded here so the binary resolves inputs against the same schema.
package electronbuilderaction

import (
	_ "embed"
)

// Metadata is the raw content of action.yml.
//
//go:embed action.yml
var Metadata []byte
