package inputs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Input names as declared in action.yml.
const (
	InputGitHubToken          = "github_token"
	InputRelease              = "release"
	InputPackageRoot          = "package_root"
	InputBuildScriptName      = "build_script_name"
	InputSkipBuild            = "skip_build"
	InputSkipInstall          = "skip_install"
	InputUseVueCLI            = "use_vue_cli"
	InputArgs                 = "args"
	InputMaxAttempts          = "max_attempts"
	InputAppRoot              = "app_root"
	InputMacCerts             = "mac_certs"
	InputMacCertsPassword     = "mac_certs_password"
	InputWindowsCerts         = "windows_certs"
	InputWindowsCertsPassword = "windows_certs_password"
)

// Sentinel errors wrapped by InputError. Use errors.Is to test for them.
var (
	ErrMissingInput = errors.New("missing required input")
	ErrInvalidValue = errors.New("invalid input value")
	ErrUnknownInput = errors.New("undeclared input")
)

// InputError describes a problem with a single input.
type InputError struct {
	Name    string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%q %s", e.Name, e.Message)
}

// Unwrap returns the sentinel error describing the failure class.
func (e *InputError) Unwrap() error {
	return e.Err
}

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// EnvName returns the environment variable the Actions runner uses for an
// input: INPUT_ followed by the upper-cased name, spaces replaced by
// underscores.
func EnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// Config is the resolved, read-only configuration of a single action run.
type Config struct {
	// Release appends "--publish always" to the packaging command.
	Release bool

	// PackageRoot holds package.json and the lock file. Install and build
	// run here.
	PackageRoot string

	// BuildScriptName is the package.json script run before packaging.
	BuildScriptName string

	// SkipBuild and SkipInstall turn off the matching step.
	SkipBuild   bool
	SkipInstall bool

	// UseVueCLI packages with "vue-cli-service electron:build".
	UseVueCLI bool

	// Args is appended to the packaging command after shell-style splitting.
	Args string

	// MaxAttempts is the packaging attempt budget, always >= 1.
	MaxAttempts int

	// AppRoot is the packaging working directory. Defaults to PackageRoot.
	AppRoot string

	// GitHubToken is exported to the packaging command as GH_TOKEN.
	GitHubToken string

	// Signing certificates, exported as CSC_LINK and CSC_KEY_PASSWORD on
	// the matching platform only.
	MacCerts             string
	MacCertsPassword     string
	WindowsCerts         string
	WindowsCertsPassword string

	// Warnings holds deprecation notices for inputs that were set explicitly.
	Warnings []string
}

// Resolve reads every input from lookup according to schema. It returns the
// first InputError encountered.
//
// Steps:
//  1. Read each input in action.yml order, typed by its Config field
//  2. Stop at the first error
//  3. Derive app_root from package_root when unset
func Resolve(schema *Schema, lookup LookupFunc) (*Config, error) {
	r := &resolver{schema: schema, lookup: lookup}
	cfg := &Config{}

	// Step 1: Read inputs. The resolver keeps the first error, so the
	// reads below need no individual checks.

	cfg.Release = r.flag(InputRelease)
	cfg.PackageRoot = r.text(InputPackageRoot)
	cfg.BuildScriptName = r.text(InputBuildScriptName)
	cfg.SkipBuild = r.flag(InputSkipBuild)
	cfg.SkipInstall = r.flag(InputSkipInstall)
	cfg.UseVueCLI = r.flag(InputUseVueCLI)
	cfg.Args = r.text(InputArgs)
	cfg.MaxAttempts = r.attempts(InputMaxAttempts)
	cfg.AppRoot = r.text(InputAppRoot)
	cfg.GitHubToken = r.text(InputGitHubToken)
	cfg.MacCerts = r.text(InputMacCerts)
	cfg.MacCertsPassword = r.text(InputMacCertsPassword)
	cfg.WindowsCerts = r.text(InputWindowsCerts)
	cfg.WindowsCertsPassword = r.text(InputWindowsCertsPassword)

	// Step 2: First error wins
	if r.err != nil {
		return nil, r.err
	}

	// Step 3: app_root is deprecated and optional
	if cfg.AppRoot == "" {
		cfg.AppRoot = cfg.PackageRoot
	}
	cfg.Warnings = r.warnings
	return cfg, nil
}

// resolver reads inputs one by one and keeps the first error, so Resolve
// can read every field without checking after each one.
type resolver struct {
	schema *Schema
	lookup LookupFunc

	// err is the first failure. Later reads become no-ops once it is set.
	err error

	// warnings collects deprecation notices in read order.
	warnings []string
}

// value reads one input.
//
// Steps:
//  1. Reject names action.yml does not declare
//  2. Read and trim INPUT_<NAME>
//  3. Record a warning for a deprecated input that is set
//  4. Fail a required input that is set but blank
//  5. Apply the default, then fail a required input that is still empty
func (r *resolver) value(name string) (string, error) {
	spec, ok := r.schema.Lookup(name)
	if !ok {
		return "", &InputError{Name: name, Message: "input is not declared in action.yml", Err: ErrUnknownInput}
	}

	raw, present := r.lookup(EnvName(name))
	value := strings.TrimSpace(raw)

	if value != "" && spec.Deprecated() {
		r.warnings = append(r.warnings,
			fmt.Sprintf("Input %q has been deprecated with message: %s", name, spec.DeprecationMessage))
	}

	// The runner always sets declared inputs, filling in defaults. A
	// required input that is set but blank was blanked by the workflow.
	if value == "" && present && spec.Required {
		return "", &InputError{Name: name, Message: "input variable is not defined", Err: ErrMissingInput}
	}

	// Absent outside a workflow run: apply the default here.
	if value == "" {
		value = spec.Default
	}
	if value == "" && spec.Required {
		return "", &InputError{Name: name, Message: "input variable is not defined", Err: ErrMissingInput}
	}
	return value, nil
}

// text reads a string input, recording the first error.
func (r *resolver) text(name string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.value(name)
	if err != nil {
		r.err = err
	}
	return v
}

// flag accepts the YAML 1.2 core schema spellings used by @actions/core.
// An empty optional input is false.
func (r *resolver) flag(name string) bool {
	v := r.text(name)
	if r.err != nil {
		return false
	}
	switch v {
	case "true", "True", "TRUE":
		return true
	case "", "false", "False", "FALSE":
		return false
	}
	r.err = &InputError{
		Name:    name,
		Message: fmt.Sprintf("input has invalid boolean value %q (valid: true, True, TRUE, false, False, FALSE)", v),
		Err:     ErrInvalidValue,
	}
	return false
}

// attempts parses the attempt budget. Values below 1 are raised to 1.
func (r *resolver) attempts(name string) int {
	v := r.text(name)
	if r.err != nil {
		return 0
	}
	if v == "" {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.err = &InputError{
			Name:    name,
			Message: fmt.Sprintf("input has invalid integer value %q", v),
			Err:     ErrInvalidValue,
		}
		return 0
	}
	if n < 1 {
		return 1
	}
	return n
}
