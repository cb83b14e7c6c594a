// Package pkgmanager selects the JavaScript package manager for a package
// root and knows the command forms each one uses.
//
// Selection looks for lock files in a fixed priority order:
// package-lock.json (npm), yarn.lock (yarn), pnpm-lock.yaml (pnpm). When
// none is present, a caller-supplied fallback is used. Manager is a closed
// set; every switch over it lists each variant explicitly.
package pkgmanager
