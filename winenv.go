// winenv.go
package winenv

import (
	"context"

	"github.com/buildprep/winenv/pkg/core"
	"github.com/buildprep/winenv/pkg/envplan"
	"github.com/buildprep/winenv/pkg/probe"
	"github.com/buildprep/winenv/pkg/provision"
)

// Re-export the core types for convenience so embedding tools only need
// this package.
type (
	Config             = core.Config
	Plan               = envplan.Plan
	Var                = envplan.Var
	LinkMode           = probe.LinkMode
	ToolchainState     = probe.ToolchainState
	NativeLibraryState = probe.NativeLibraryState
	Result             = provision.Result
)

// Re-export the link modes
const (
	LinkNone    = probe.LinkNone
	LinkStatic  = probe.LinkStatic
	LinkDynamic = probe.LinkDynamic
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Provisioner runs the full setup sequence
type Provisioner struct {
	inner *provision.Provisioner
}

// New creates a Provisioner from a configuration. A nil config uses the
// defaults (MSYS2 at C:\msys64, duckdb library, installer method).
func New(cfg *Config) *Provisioner {
	return &Provisioner{
		inner: provision.NewProvisioner(&provision.Config{Core: cfg}),
	}
}

// Run executes probing, installation, verification, and environment
// configuration, and returns the accumulated result. It never returns an
// error: failures are reported on the result's flags.
func (p *Provisioner) Run(ctx context.Context) *Result {
	return p.inner.Run(ctx)
}

// Probe derives the current toolchain and library state without side
// effects beyond the compiler version subprocess.
func Probe(ctx context.Context, cfg *Config) (ToolchainState, NativeLibraryState) {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	pr := probe.NewProber(&probe.Config{
		MSYS2Root:   cfg.MSYS2Root,
		LibraryRoot: cfg.LibraryRoot,
		LibraryName: cfg.LibraryName,
		Debug:       cfg.Debug,
	}, nil)
	return pr.Probe(ctx)
}
