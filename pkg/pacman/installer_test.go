// pkg/pacman/installer_test.go
package pacman

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildprep/winenv/pkg/run"
)

type fakeRunner struct {
	result   *run.Result
	err      error
	commands []run.Command

	// onRun lets a test create the compiler binary "during" the session
	onRun func()
}

func (f *fakeRunner) Run(ctx context.Context, cmd run.Command) (*run.Result, error) {
	f.commands = append(f.commands, cmd)
	if f.onRun != nil {
		f.onRun()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newRootWithShell(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "msys64")
	shell := filepath.Join(root, "usr", "bin", "bash.exe")
	require.NoError(t, os.MkdirAll(filepath.Dir(shell), 0755))
	require.NoError(t, os.WriteFile(shell, []byte("x"), 0755))
	return root
}

func placeCompiler(t *testing.T, root string) {
	t.Helper()
	gcc := filepath.Join(root, "mingw64", "bin", "gcc.exe")
	require.NoError(t, os.MkdirAll(filepath.Dir(gcc), 0755))
	require.NoError(t, os.WriteFile(gcc, []byte("x"), 0755))
}

func TestInstallCompilerNoShell(t *testing.T) {
	runner := &fakeRunner{}
	in := NewInstaller(&Config{Root: filepath.Join(t.TempDir(), "absent"), Runner: runner})

	err := in.InstallCompiler(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no bash shell")
	assert.Empty(t, runner.commands, "no session without a shell")
}

func TestInstallCompilerShellFallback(t *testing.T) {
	root := filepath.Join(t.TempDir(), "msys64")
	legacy := filepath.Join(root, "bin", "bash.exe")
	require.NoError(t, os.MkdirAll(filepath.Dir(legacy), 0755))
	require.NoError(t, os.WriteFile(legacy, []byte("x"), 0755))
	placeCompiler(t, root)

	runner := &fakeRunner{result: &run.Result{}}
	in := NewInstaller(&Config{Root: root, Runner: runner})

	require.NoError(t, in.InstallCompiler(context.Background()))
	require.Len(t, runner.commands, 1)
	assert.Equal(t, legacy, runner.commands[0].Path)
}

func TestInstallCompilerSessionEnvironment(t *testing.T) {
	root := newRootWithShell(t)
	placeCompiler(t, root)

	runner := &fakeRunner{result: &run.Result{}}
	in := NewInstaller(&Config{Root: root, Runner: runner})

	require.NoError(t, in.InstallCompiler(context.Background()))
	require.Len(t, runner.commands, 1)

	cmd := runner.commands[0]
	assert.Contains(t, cmd.Env, EnvMsystem)
	assert.Contains(t, cmd.Env, EnvChereInvoking)
	require.Len(t, cmd.Args, 2)
	assert.Equal(t, "-l", cmd.Args[0])

	// Script file is deleted regardless of outcome
	_, err := os.Stat(cmd.Args[1])
	assert.True(t, os.IsNotExist(err))
}

func TestInstallCompilerLenientSuccessOverride(t *testing.T) {
	root := newRootWithShell(t)

	// pacman exits non-zero but the compiler shows up anyway
	runner := &fakeRunner{
		result: &run.Result{ExitCode: 1, Stderr: "warning: directory permissions differ"},
	}
	runner.onRun = func() { placeCompiler(t, root) }

	in := NewInstaller(&Config{Root: root, Runner: runner})
	assert.NoError(t, in.InstallCompiler(context.Background()))
}

func TestInstallCompilerFailureWhenBinaryAbsent(t *testing.T) {
	root := newRootWithShell(t)
	runner := &fakeRunner{result: &run.Result{ExitCode: 1}}
	in := NewInstaller(&Config{Root: root, Runner: runner})

	err := in.InstallCompiler(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 1")
}

func TestInstallCompilerZeroExitButBinaryAbsent(t *testing.T) {
	root := newRootWithShell(t)
	runner := &fakeRunner{result: &run.Result{}}
	in := NewInstaller(&Config{Root: root, Runner: runner})

	err := in.InstallCompiler(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still missing")
}
