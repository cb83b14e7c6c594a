// Package manifest reads the package.json file that sits in the package
// root.
//
// The action only needs two things from it: proof that the package root is
// correct (the file exists) and the "scripts" table, which is consulted
// when the package manager cannot skip a missing script by itself. The
// file is passed through github.com/tidwall/jsonc before decoding, so
// comments and trailing commas left by editors do not break the action.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// FileName is the manifest file name.
const FileName = "package.json"

// ErrNotFound is returned when no package.json exists in the package root.
var ErrNotFound = errors.New("`package.json` file not found")

// Manifest holds the subset of package.json fields the action reads.
// Unknown fields are ignored.
type Manifest struct {
	// Name and Version identify the package. The action does not act on them.
	Name    string `json:"name"`
	Version string `json:"version"`

	// Scripts maps script names to shell commands, e.g. "build": "tsc".
	// Nil when package.json has no scripts.
	Scripts map[string]string `json:"scripts"`
}

// Path returns the manifest path for a package root.
func Path(pkgRoot string) string {
	return filepath.Join(pkgRoot, FileName)
}

// Find returns the manifest path for pkgRoot, or an error wrapping
// ErrNotFound if the file does not exist.
func Find(pkgRoot string) (string, error) {
	path := Path(pkgRoot)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w at path %q", ErrNotFound, path)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w at path %q (found a directory)", ErrNotFound, path)
	}
	return path, nil
}

// Load reads and parses a package.json file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at path %q", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &m, nil
}

// HasScript reports whether the scripts table defines a non-empty command
// for name.
func (m *Manifest) HasScript(name string) bool {
	return m.Scripts[name] != ""
}
