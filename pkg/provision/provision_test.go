// pkg/provision/provision_test.go
package provision

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildprep/winenv/pkg/core"
	"github.com/buildprep/winenv/pkg/probe"
)

type fakeProber struct {
	before probe.ToolchainState
	after  probe.ToolchainState
	lib    probe.NativeLibraryState
}

func (f *fakeProber) Probe(ctx context.Context) (probe.ToolchainState, probe.NativeLibraryState) {
	return f.before, f.lib
}

func (f *fakeProber) ProbeToolchain(ctx context.Context) probe.ToolchainState {
	return f.after
}

type fakeToolchain struct {
	err   error
	calls int
}

func (f *fakeToolchain) EnsureToolchain(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeCompiler struct {
	err   error
	calls int
}

func (f *fakeCompiler) InstallCompiler(ctx context.Context) error {
	f.calls++
	return f.err
}

type fakeVerifier struct {
	version string
	err     error
	calls   int
}

func (f *fakeVerifier) Verify(ctx context.Context, compilerPath string) (string, error) {
	f.calls++
	return f.version, f.err
}

type env map[string]string

func (e env) setenv(k, v string) error { e[k] = v; return nil }
func (e env) getenv(k string) string   { return e[k] }

func verifiedToolchain(root string) probe.ToolchainState {
	return probe.ToolchainState{
		Installed:    true,
		Verified:     true,
		Version:      "gcc 13.2.0",
		CompilerPath: filepath.Join(root, "mingw64", "bin", "gcc.exe"),
	}
}

func staticLib() probe.NativeLibraryState {
	return probe.NativeLibraryState{
		Found:      true,
		LinkMode:   probe.LinkStatic,
		Name:       "duckdb",
		RootPath:   `C:\lib\duckdb`,
		IncludeDir: `C:\lib\duckdb\include`,
		LibDir:     `C:\lib\duckdb\lib`,
	}
}

func newProvisioner(t *testing.T, cfg *core.Config, prober *fakeProber, tc *fakeToolchain, cp *fakeCompiler, v *fakeVerifier, e env) *Provisioner {
	t.Helper()
	return NewProvisioner(&Config{
		Core:      cfg,
		Prober:    prober,
		Toolchain: tc,
		Compiler:  cp,
		Verifier:  v,
		Setenv:    e.setenv,
		Getenv:    e.getenv,
		Output:    &bytes.Buffer{},
	})
}

func TestRunAlreadyProvisioned(t *testing.T) {
	root := t.TempDir()
	cfg := core.DefaultConfig()
	cfg.MSYS2Root = root

	prober := &fakeProber{before: verifiedToolchain(root), lib: staticLib()}
	tc := &fakeToolchain{}
	cp := &fakeCompiler{}
	v := &fakeVerifier{version: "gcc 13.2.0"}
	e := env{}

	r := newProvisioner(t, cfg, prober, tc, cp, v, e).Run(context.Background())

	assert.True(t, r.OK)
	assert.Equal(t, 0, r.ExitCode())
	assert.Equal(t, 0, tc.calls, "no base install when already verified")
	assert.Equal(t, 0, cp.calls, "no compiler install when already verified")
	assert.Equal(t, 1, v.calls)
	assert.Equal(t, "1", e["CGO_ENABLED"])
	assert.Contains(t, e["CGO_LDFLAGS"], "-lduckdb")
}

func TestRunFullBootstrap(t *testing.T) {
	// Fresh machine: no MSYS2 root at all. Install succeeds, pacman
	// produces the compiler, the library is staged statically.
	root := filepath.Join(t.TempDir(), "msys64")
	cfg := core.DefaultConfig()
	cfg.MSYS2Root = root

	prober := &fakeProber{
		before: probe.ToolchainState{CompilerPath: filepath.Join(root, "mingw64", "bin", "gcc.exe")},
		after:  verifiedToolchain(root),
		lib:    staticLib(),
	}
	tc := &fakeToolchain{}
	cp := &fakeCompiler{}
	v := &fakeVerifier{version: "gcc 13.2.0"}
	e := env{}

	r := newProvisioner(t, cfg, prober, tc, cp, v, e).Run(context.Background())

	assert.True(t, r.OK)
	assert.Equal(t, 0, r.ExitCode())
	assert.Equal(t, 1, tc.calls)
	assert.Equal(t, 1, cp.calls)
	assert.Equal(t, "gcc 13.2.0", r.Version)
}

func TestRunMissingLibraryFailsOverall(t *testing.T) {
	root := t.TempDir()
	cfg := core.DefaultConfig()
	cfg.MSYS2Root = root

	prober := &fakeProber{
		before: verifiedToolchain(root),
		lib:    probe.NativeLibraryState{RootPath: `C:\lib\duckdb`},
	}
	v := &fakeVerifier{version: "gcc 13.2.0"}
	e := env{}

	r := newProvisioner(t, cfg, prober, &fakeToolchain{}, &fakeCompiler{}, v, e).Run(context.Background())

	assert.False(t, r.OK)
	assert.Equal(t, 1, r.ExitCode())
	// The run still verifies and configures what it can
	assert.Equal(t, 1, v.calls)
	assert.Equal(t, "1", e["CGO_ENABLED"])
	assert.Empty(t, e["CGO_LDFLAGS"], "no library flags for an unconfirmed link mode")
}

func TestRunRepairSkipsBaseInstall(t *testing.T) {
	// Root exists but the compiler fails verification: the base installer
	// must not run again, the pacman session is the repair action.
	root := t.TempDir()
	cfg := core.DefaultConfig()
	cfg.MSYS2Root = root

	broken := verifiedToolchain(root)
	broken.Verified = false
	broken.Version = ""

	prober := &fakeProber{before: broken, after: verifiedToolchain(root), lib: staticLib()}
	tc := &fakeToolchain{}
	cp := &fakeCompiler{}
	v := &fakeVerifier{version: "gcc 13.2.0"}

	r := newProvisioner(t, cfg, prober, tc, cp, v, env{}).Run(context.Background())

	assert.True(t, r.OK)
	assert.Equal(t, 0, tc.calls, "existing root must not be reinstalled")
	assert.Equal(t, 1, cp.calls, "compiler install runs as repair")
}

func TestRunNoShortCircuit(t *testing.T) {
	// Everything fails; every step still runs and the result carries the
	// full picture.
	root := filepath.Join(t.TempDir(), "absent")
	cfg := core.DefaultConfig()
	cfg.MSYS2Root = root

	prober := &fakeProber{
		before: probe.ToolchainState{CompilerPath: filepath.Join(root, "mingw64", "bin", "gcc.exe")},
		after:  probe.ToolchainState{CompilerPath: filepath.Join(root, "mingw64", "bin", "gcc.exe")},
		lib:    probe.NativeLibraryState{},
	}
	tc := &fakeToolchain{err: errors.New("download failed")}
	cp := &fakeCompiler{err: errors.New("no bash shell")}
	v := &fakeVerifier{err: errors.New("compiler not found")}

	r := newProvisioner(t, cfg, prober, tc, cp, v, env{}).Run(context.Background())

	require.Equal(t, 1, tc.calls)
	require.Equal(t, 1, cp.calls)
	require.Equal(t, 1, v.calls)

	assert.False(t, r.ToolchainOK)
	assert.False(t, r.CompilerOK)
	assert.False(t, r.VerifyOK)
	assert.False(t, r.LibraryOK)
	assert.False(t, r.OK)
	assert.Equal(t, 1, r.ExitCode())
}
