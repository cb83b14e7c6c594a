package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/mmr-tortoise/electron-builder-action/internal/inputs"
	"github.com/mmr-tortoise/electron-builder-action/internal/manifest"
	"github.com/mmr-tortoise/electron-builder-action/internal/model"
	"github.com/mmr-tortoise/electron-builder-action/internal/pkgmanager"
)

// Logger prints a progress message.
type Logger func(format string, args ...any)

// Options configures Prepare.
type Options struct {
	// Config is the resolved action configuration. Required.
	Config *inputs.Config

	// GOOS selects the target platform. Defaults to runtime.GOOS.
	GOOS string

	// Platform overrides the platform derived from GOOS when set.
	Platform model.Platform

	// Fallback is the package manager used when no lock file exists.
	// pkgmanager.None makes a missing lock file a configuration error.
	Fallback pkgmanager.Manager

	// Executor runs child processes. Required.
	Executor Executor

	// Logger receives progress messages. Optional.
	Logger Logger
}

// Runner runs the install, build and packaging steps of one action run.
type Runner struct {
	cfg      *inputs.Config
	platform model.Platform
	manager  pkgmanager.Manager
	exec     Executor
	log      Logger

	// scripts is the manifest script table. It is only loaded for managers
	// without --if-present, which need it to skip a missing build script.
	scripts *manifest.Manifest

	// extraArgs is the "args" input split for the target platform.
	extraArgs []string
}

// Prepare validates everything that can be checked without running a child
// process and returns a Runner ready to Run. All errors are configuration
// errors (*model.CLIError with KindConfiguration).
//
// Checks, in order:
//  1. Target platform (override, else derived from GOOS)
//  2. package.json exists in the package root
//  3. A package manager is detected or a fallback is configured
//  4. package.json parses, when the build step has to read its scripts
//  5. The "args" input splits cleanly for the target platform
func Prepare(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, model.NewConfigError("runner: no configuration", nil)
	}
	if opts.Executor == nil {
		return nil, model.NewConfigError("runner: no executor", nil)
	}

	cfg := opts.Config

	// Step 1: Target platform
	platform := opts.Platform
	if platform == "" {
		goos := opts.GOOS
		if goos == "" {
			goos = runtime.GOOS
		}
		platform = model.PlatformFromGOOS(goos)
	}
	if !platform.IsValid() {
		return nil, model.NewConfigError(fmt.Sprintf("invalid platform %q", platform), nil)
	}

	// Step 2: package.json
	manifestPath, err := manifest.Find(cfg.PackageRoot)
	if err != nil {
		return nil, model.NewConfigError("invalid package_root", err)
	}

	// Step 3: Package manager from lock files
	manager, err := pkgmanager.Resolve(cfg.PackageRoot, opts.Fallback)
	if err != nil {
		if errors.Is(err, pkgmanager.ErrNoPackageManager) {
			err = fmt.Errorf("%w in %q, please first install your dependencies (i.e. `npm install`)", err, cfg.PackageRoot)
		}
		return nil, model.NewConfigError("cannot determine package manager", err)
	}

	// Step 4: Script table, read up front so a broken package.json is
	// reported before install runs
	var scripts *manifest.Manifest
	if !cfg.SkipBuild && !manager.SupportsIfPresent() {
		scripts, err = manifest.Load(manifestPath)
		if err != nil {
			return nil, model.NewConfigError("failed to read package.json", err)
		}
	}

	// Step 5: Extra packaging arguments
	extraArgs, err := splitArgs(platform, cfg.Args)
	if err != nil {
		return nil, model.NewConfigError(`invalid "args" input`, err)
	}

	log := opts.Logger
	if log == nil {
		log = func(string, ...any) {}
	}

	return &Runner{
		cfg:       cfg,
		platform:  platform,
		manager:   manager,
		exec:      opts.Executor,
		log:       log,
		scripts:   scripts,
		extraArgs: extraArgs,
	}, nil
}

// Platform returns the target platform.
func (r *Runner) Platform() model.Platform {
	return r.platform
}

// Manager returns the selected package manager.
func (r *Runner) Manager() pkgmanager.Manager {
	return r.manager
}

// Run executes the install, build and packaging steps in order. The first
// failing step ends the run.
//
// Steps:
//  1. Install dependencies (skip_install skips)
//  2. Run the build script if the manifest defines it (skip_build skips)
//  3. Package, and publish when releasing, retrying up to max_attempts
func (r *Runner) Run(ctx context.Context) error {
	r.log("Will run %s commands in directory %q", r.manager, r.cfg.PackageRoot)

	// Step 1: Install
	if err := r.install(ctx); err != nil {
		return err
	}

	// Step 2: Build
	if err := r.build(ctx); err != nil {
		return err
	}

	// Step 3: Package
	return r.pack(ctx)
}

func (r *Runner) install(ctx context.Context) error {
	if r.cfg.SkipInstall {
		r.log("Skipping install script because `skip_install` option is set")
		return nil
	}

	r.log("Installing dependencies using %s…", r.manager)
	if err := r.exec.Run(ctx, r.InstallCommand()); err != nil {
		return model.NewExecutionError("dependency installation failed", err)
	}
	return nil
}

func (r *Runner) build(ctx context.Context) error {
	if r.cfg.SkipBuild {
		r.log("Skipping build script because `skip_build` option is set")
		return nil
	}

	r.log("Running the build script…")

	// Managers without --if-present would fail on a missing script, so
	// look it up ourselves and skip quietly.
	if !r.manager.SupportsIfPresent() && !r.scripts.HasScript(r.cfg.BuildScriptName) {
		return nil
	}

	if err := r.exec.Run(ctx, r.BuildCommand()); err != nil {
		return model.NewExecutionError(fmt.Sprintf("build script %q failed", r.cfg.BuildScriptName), err)
	}
	return nil
}

// pack runs the packaging command until it succeeds or the attempt budget
// is spent. Attempts follow each other without delay. The error of the
// last attempt is returned.
func (r *Runner) pack(ctx context.Context) error {
	if r.cfg.Release {
		r.log("Building and releasing the Electron app…")
	} else {
		r.log("Building the Electron app…")
	}

	cmd := r.PackageCommand()
	attempts := max(r.cfg.MaxAttempts, 1)

	for attempt := 1; ; attempt++ {
		err := r.exec.Run(ctx, cmd)
		if err == nil {
			return nil
		}

		// Out of attempts, or the run was cancelled: surface this
		// attempt's error.
		if attempt >= attempts || ctx.Err() != nil {
			return model.NewExecutionError(fmt.Sprintf("packaging failed after %d attempt(s)", attempt), err)
		}
		r.log("Attempt %d failed:", attempt)
		r.log("%v", err)
	}
}

// InstallCommand returns the dependency install command.
func (r *Runner) InstallCommand() Command {
	return r.command(r.cfg.PackageRoot, InstallEnv(), r.manager.InstallArgs())
}

// BuildCommand returns the build script command.
func (r *Runner) BuildCommand() Command {
	return r.command(r.cfg.PackageRoot, InstallEnv(), r.manager.RunScriptArgs(r.cfg.BuildScriptName))
}

// PackageCommand returns the packaging command: the manager's exec prefix,
// the builder, the platform flag, the publish flag when releasing, and the
// user's extra arguments.
func (r *Runner) PackageCommand() Command {
	argv := append([]string{}, r.manager.ExecPrefix()...)
	argv = append(argv, r.builder()...)
	argv = append(argv, r.platform.BuilderFlag())
	if r.cfg.Release {
		argv = append(argv, "--publish", "always")
	}
	argv = append(argv, r.extraArgs...)
	return r.command(r.cfg.AppRoot, PackagingEnv(r.platform, r.cfg), argv)
}

func (r *Runner) builder() []string {
	if r.cfg.UseVueCLI {
		return []string{"vue-cli-service", "electron:build"}
	}
	return []string{"electron-builder"}
}

func (r *Runner) command(dir string, env map[string]string, argv []string) Command {
	return Command{Name: argv[0], Args: argv[1:], Dir: dir, Env: env}
}
