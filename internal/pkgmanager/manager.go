package pkgmanager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manager identifies a package manager.
type Manager string

const (
	// None means no package manager could be determined.
	None Manager = "none"

	// NPM is detected by package-lock.json.
	NPM Manager = "npm"

	// Yarn is detected by yarn.lock. It is also the action's fallback.
	Yarn Manager = "yarn"

	// PNPM is detected by pnpm-lock.yaml.
	PNPM Manager = "pnpm"
)

// ErrNoPackageManager is returned when no lock file exists and no fallback
// is configured.
var ErrNoPackageManager = errors.New("no lock file found and no fallback package manager specified")

// detectionOrder is the lock file priority. The first match wins.
var detectionOrder = []Manager{NPM, Yarn, PNPM}

// String returns the string representation of Manager.
func (m Manager) String() string {
	return string(m)
}

// IsValid checks whether m is one of the predefined values, None included.
func (m Manager) IsValid() bool {
	switch m {
	case None, NPM, Yarn, PNPM:
		return true
	default:
		return false
	}
}

// ParseManager converts a string to a Manager. The empty string parses as
// None.
func ParseManager(s string) (Manager, error) {
	if s == "" {
		return None, nil
	}
	m := Manager(strings.ToLower(s))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid package manager: %q (valid: npm, yarn, pnpm, none)", s)
	}
	return m, nil
}

// LockFile returns the name of the lock file that identifies m, or "" for
// None.
func (m Manager) LockFile() string {
	switch m {
	case NPM:
		return "package-lock.json"
	case Yarn:
		return "yarn.lock"
	case PNPM:
		return "pnpm-lock.yaml"
	case None:
		return ""
	}
	panic(fmt.Sprintf("pkgmanager: unknown manager %q", string(m)))
}

// Binary returns the executable name for m.
func (m Manager) Binary() string {
	switch m {
	case NPM, Yarn, PNPM:
		return string(m)
	case None:
		return ""
	}
	panic(fmt.Sprintf("pkgmanager: unknown manager %q", string(m)))
}

// SupportsIfPresent reports whether "run" accepts --if-present, i.e.
// whether the manager itself skips scripts missing from package.json.
// Yarn has no such flag (yarnpkg/yarn#6894).
func (m Manager) SupportsIfPresent() bool {
	switch m {
	case NPM, PNPM:
		return true
	case Yarn, None:
		return false
	}
	panic(fmt.Sprintf("pkgmanager: unknown manager %q", string(m)))
}

// InstallArgs returns the argv that installs dependencies, e.g.
// ["yarn", "install"]. Lock file handling is left to the manager.
func (m Manager) InstallArgs() []string {
	return []string{m.Binary(), "install"}
}

// RunScriptArgs returns the argv that runs a package.json script. For
// managers that support it, --if-present is included so a missing script is
// not an error.
func (m Manager) RunScriptArgs(script string) []string {
	if m.SupportsIfPresent() {
		return []string{m.Binary(), "run", "--if-present", script}
	}
	return []string{m.Binary(), "run", script}
}

// ExecPrefix returns the argv prefix that runs a binary installed in the
// package's node_modules without installing anything new.
func (m Manager) ExecPrefix() []string {
	switch m {
	case NPM:
		return []string{"npx", "--no-install"}
	case Yarn:
		return []string{"yarn", "run"}
	case PNPM:
		return []string{"pnpx", "--no-install"}
	case None:
		return nil
	}
	panic(fmt.Sprintf("pkgmanager: unknown manager %q", string(m)))
}

// Detect returns the manager whose lock file exists in pkgRoot, checking
// npm, yarn and pnpm in that order. If none exists it returns fallback,
// which may be None. Detect only inspects the filesystem.
func Detect(pkgRoot string, fallback Manager) Manager {
	// A repository may carry several lock files. The priority order makes
	// the result deterministic.
	for _, m := range detectionOrder {
		if fileExists(filepath.Join(pkgRoot, m.LockFile())) {
			return m
		}
	}
	if fallback == "" {
		return None
	}
	return fallback
}

// Resolve is Detect plus the None check: it returns ErrNoPackageManager
// instead of None.
func Resolve(pkgRoot string, fallback Manager) (Manager, error) {
	m := Detect(pkgRoot, fallback)
	if m == None {
		return None, ErrNoPackageManager
	}
	return m, nil
}

// fileExists reports whether path names a regular file. A directory that
// happens to be called yarn.lock does not count.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
