package runner

import (
	"fmt"

	"github.com/mmr-tortoise/electron-builder-action/internal/inputs"
	"github.com/mmr-tortoise/electron-builder-action/internal/model"
)

// Environment variables read by the child processes.
const (
	// EnvGitHubToken authenticates electron-builder's GitHub publisher.
	EnvGitHubToken = "GH_TOKEN"

	// EnvCertLink and EnvCertPassword hold the code signing certificate
	// and its password for electron-builder.
	EnvCertLink     = "CSC_LINK"
	EnvCertPassword = "CSC_KEY_PASSWORD"

	// EnvAdblock silences install-time advertisements printed by some
	// packages' postinstall scripts.
	EnvAdblock = "ADBLOCK"
)

// InstallEnv returns the variables set for the install and build steps.
func InstallEnv() map[string]string {
	return map[string]string{EnvAdblock: "true"}
}

// PackagingEnv returns the variables set for the packaging step: the
// install variables, the GitHub token, and the signing credentials of the
// given platform. Empty values are left unset.
func PackagingEnv(platform model.Platform, cfg *inputs.Config) map[string]string {
	env := InstallEnv()
	setIfNotEmpty(env, EnvGitHubToken, cfg.GitHubToken)

	link, password := signingCredentials(platform, cfg)
	setIfNotEmpty(env, EnvCertLink, link)
	setIfNotEmpty(env, EnvCertPassword, password)
	return env
}

// signingCredentials picks the certificate inputs for platform. Linux
// builds are not signed.
func signingCredentials(platform model.Platform, cfg *inputs.Config) (link, password string) {
	switch platform {
	case model.PlatformMac:
		return cfg.MacCerts, cfg.MacCertsPassword
	case model.PlatformWindows:
		return cfg.WindowsCerts, cfg.WindowsCertsPassword
	case model.PlatformLinux:
		return "", ""
	}
	panic(fmt.Sprintf("runner: unknown platform %q", string(platform)))
}

// setIfNotEmpty sets key only for a non-empty value, so an unset input
// leaves the variable out of the child environment entirely.
func setIfNotEmpty(env map[string]string, key, value string) {
	if value != "" {
		env[key] = value
	}
}
