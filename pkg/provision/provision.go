// pkg/provision/provision.go
package provision

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/buildprep/winenv/pkg/core"
	"github.com/buildprep/winenv/pkg/envplan"
	"github.com/buildprep/winenv/pkg/msys2"
	"github.com/buildprep/winenv/pkg/pacman"
	"github.com/buildprep/winenv/pkg/probe"
	"github.com/buildprep/winenv/pkg/run"
	"github.com/buildprep/winenv/pkg/verify"
)

// Prober probes toolchain and library state
type Prober interface {
	Probe(ctx context.Context) (probe.ToolchainState, probe.NativeLibraryState)
	ProbeToolchain(ctx context.Context) probe.ToolchainState
}

// ToolchainInstaller ensures the MSYS2 distribution is on disk
type ToolchainInstaller interface {
	EnsureToolchain(ctx context.Context) error
}

// CompilerInstaller ensures the mingw-w64 gcc package is installed
type CompilerInstaller interface {
	InstallCompiler(ctx context.Context) error
}

// Verifier confirms the compiler runs and reports a version
type Verifier interface {
	Verify(ctx context.Context, compilerPath string) (string, error)
}

// Config configures a Provisioner. Nil collaborators are replaced with the
// real implementations; tests inject fakes.
type Config struct {
	Core      *core.Config
	Prober    Prober
	Toolchain ToolchainInstaller
	Compiler  CompilerInstaller
	Verifier  Verifier
	Runner    run.Runner
	Setenv    func(key, value string) error
	Getenv    func(key string) string
	Output    io.Writer
	Logger    *log.Logger
}

// Result accumulates the findings of a full provisioning run. Every step
// runs and reports; nothing short-circuits, so the operator sees the whole
// picture from a single run.
type Result struct {
	Toolchain probe.ToolchainState
	Library   probe.NativeLibraryState
	Plan      *envplan.Plan
	Version   string

	ToolchainOK bool // Install root present (or successfully installed)
	CompilerOK  bool // Compiler binary present after any install attempts
	VerifyOK    bool // Final version check passed
	LibraryOK   bool // Native library artifact set found
	OK          bool // Cumulative success flag
}

// ExitCode maps the cumulative flag to the process exit status
func (r *Result) ExitCode() int {
	if r.OK {
		return 0
	}
	return 1
}

// Provisioner sequences probing, installation, verification, and
// environment configuration.
type Provisioner struct {
	config    *core.Config
	prober    Prober
	toolchain ToolchainInstaller
	compiler  CompilerInstaller
	verifier  Verifier
	reporter  *Reporter
	setenv    func(key, value string) error
	getenv    func(key string) string
	logger    *log.Logger
}

// NewProvisioner creates a Provisioner, replacing every collaborator not
// supplied in cfg with the real implementation.
func NewProvisioner(cfg *Config) *Provisioner {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Core == nil {
		cfg.Core = core.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Core.Debug {
			logger = log.New(os.Stdout, "[PROVISION] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	runner := cfg.Runner
	if runner == nil {
		runner = run.NewExecRunner()
	}

	prober := cfg.Prober
	if prober == nil {
		prober = probe.NewProber(&probe.Config{
			MSYS2Root:   cfg.Core.MSYS2Root,
			LibraryRoot: cfg.Core.LibraryRoot,
			LibraryName: cfg.Core.LibraryName,
			Debug:       cfg.Core.Debug,
		}, runner)
	}

	toolchain := cfg.Toolchain
	if toolchain == nil {
		toolchain = msys2.NewInstaller(&msys2.Config{
			Root:         cfg.Core.MSYS2Root,
			InstallerURL: cfg.Core.InstallerURL,
			ArchiveURL:   cfg.Core.ArchiveURL,
			Method:       cfg.Core.InstallMethod,
			Timeout:      cfg.Core.Timeout,
			Debug:        cfg.Core.Debug,
			Runner:       runner,
		})
	}

	compiler := cfg.Compiler
	if compiler == nil {
		compiler = pacman.NewInstaller(&pacman.Config{
			Root:       cfg.Core.MSYS2Root,
			SkipUpdate: cfg.Core.SkipUpdate,
			Debug:      cfg.Core.Debug,
			Runner:     runner,
		})
	}

	verifier := cfg.Verifier
	if verifier == nil {
		verifier = verify.NewVerifier(runner, logger)
	}

	setenv := cfg.Setenv
	if setenv == nil {
		setenv = os.Setenv
	}
	getenv := cfg.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	return &Provisioner{
		config:    cfg.Core,
		prober:    prober,
		toolchain: toolchain,
		compiler:  compiler,
		verifier:  verifier,
		reporter:  NewReporter(cfg.Output),
		setenv:    setenv,
		getenv:    getenv,
		logger:    logger,
	}
}

// Run executes the full provisioning sequence. Failures are converted to
// report lines and cumulative flags at each step boundary; no error ever
// unwinds past this method.
func (p *Provisioner) Run(ctx context.Context) *Result {
	r := &Result{}

	p.reporter.Phase("Probing environment")
	tc, lib := p.prober.Probe(ctx)
	r.Toolchain = tc
	r.Library = lib
	p.reportProbe(r)

	if tc.Installed && tc.Verified {
		r.ToolchainOK = true
		r.CompilerOK = true
	} else {
		p.ensureToolchain(ctx, r)
		p.installCompiler(ctx, r, tc)
		// Installation may have changed the toolchain facts
		r.Toolchain = p.prober.ProbeToolchain(ctx)
	}

	p.reporter.Phase("Verifying compiler")
	version, err := p.verifier.Verify(ctx, r.Toolchain.CompilerPath)
	if err != nil {
		p.reporter.Failure("Compiler verification failed: %v", err)
	} else {
		r.VerifyOK = true
		r.Version = version
		p.reporter.Success("%s", version)
	}

	p.reporter.Phase("Configuring build environment")
	r.Plan = envplan.Compute(r.Toolchain, r.Library)
	if err := r.Plan.Apply(p.setenv, p.getenv); err != nil {
		p.reporter.Failure("Applying environment: %v", err)
	} else {
		for _, v := range r.Plan.Vars {
			p.reporter.Info("%s=%s", v.Key, v.Value)
		}
		for _, dir := range r.Plan.PathPrepends {
			p.reporter.Info("PATH += %s", dir)
		}
	}

	r.LibraryOK = r.Library.Found
	r.OK = r.ToolchainOK && r.CompilerOK && r.VerifyOK && r.LibraryOK

	p.reporter.Phase("Summary")
	if r.OK {
		p.reporter.Success("Environment ready (%s linking)", r.Library.LinkMode)
	} else {
		p.reportFailures(r)
	}

	return r
}

// ensureToolchain attempts the base install only when the root is absent.
// An existing root with a broken compiler is repaired by the compiler
// installer, not by re-running the base installer.
func (p *Provisioner) ensureToolchain(ctx context.Context, r *Result) {
	if info, err := os.Stat(p.config.MSYS2Root); err == nil && info.IsDir() {
		r.ToolchainOK = true
		return
	}

	p.reporter.Phase("Installing MSYS2")
	if err := p.toolchain.EnsureToolchain(ctx); err != nil {
		p.reporter.Failure("MSYS2 install failed: %v", err)
		return
	}
	r.ToolchainOK = true
	p.reporter.Success("MSYS2 installed at %s", p.config.MSYS2Root)
}

// installCompiler runs when the compiler binary is absent, and also as a
// repair action when the binary exists but failed verification.
func (p *Provisioner) installCompiler(ctx context.Context, r *Result, tc probe.ToolchainState) {
	needsInstall := !tc.Installed
	needsRepair := tc.Installed && !tc.Verified
	if !needsInstall && !needsRepair {
		r.CompilerOK = true
		return
	}

	if needsRepair {
		p.reporter.Phase("Reinstalling mingw-w64 compiler")
	} else {
		p.reporter.Phase("Installing mingw-w64 compiler")
	}

	if err := p.compiler.InstallCompiler(ctx); err != nil {
		p.reporter.Failure("Compiler install failed: %v", err)
		return
	}
	r.CompilerOK = true
	p.reporter.Success("Compiler package installed")
}

func (p *Provisioner) reportProbe(r *Result) {
	if r.Toolchain.Installed {
		p.reporter.Success("MSYS2 found at %s", p.config.MSYS2Root)
	} else {
		p.reporter.Warn("MSYS2 not found at %s", p.config.MSYS2Root)
	}
	if r.Toolchain.Verified {
		p.reporter.Success("Compiler responds: %s", r.Toolchain.Version)
	} else if r.Toolchain.Installed {
		p.reporter.Warn("Compiler present but not responding")
	}
	if r.Library.Found {
		p.reporter.Success("Native library found (%s linking) at %s", r.Library.LinkMode, r.Library.RootPath)
	} else {
		p.reporter.Failure("Native library not found at %s", r.Library.RootPath)
	}
}

func (p *Provisioner) reportFailures(r *Result) {
	if !r.ToolchainOK {
		p.reporter.Failure("Toolchain installation incomplete")
	}
	if !r.CompilerOK {
		p.reporter.Failure("Compiler installation incomplete")
	}
	if !r.VerifyOK {
		p.reporter.Failure("Compiler verification failed")
	}
	if !r.LibraryOK {
		p.reporter.Failure("Native library missing under %s", r.Library.RootPath)
	}
}
