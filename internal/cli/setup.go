// internal/cli/setup.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildprep/winenv/pkg/platform"
	"github.com/buildprep/winenv/pkg/provision"
)

var (
	setupSkipUpdate    bool
	setupInstallMethod string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the full toolchain and build environment",
	Long: `Run the full provisioning sequence: probe, install MSYS2 if absent,
install the mingw-w64 compiler, verify it, and export the cgo build
environment.

Examples:
  winenv setup
  winenv setup --skip-update
  winenv setup --install-method=archive --library-root=C:\lib\duckdb`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupSkipUpdate, "skip-update", false, "skip the full pacman system update")
	setupCmd.Flags().StringVar(&setupInstallMethod, "install-method", "", "toolchain install method (installer or archive)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Platform mismatch is fatal before any other work
	plat, err := platform.Detect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
	if config.Debug {
		fmt.Printf("Platform: %s\n", plat)
	}

	if setupSkipUpdate {
		config.SkipUpdate = true
	}
	if setupInstallMethod != "" {
		config.InstallMethod = setupInstallMethod
	}

	p := provision.NewProvisioner(&provision.Config{Core: config})
	result := p.Run(ctx)

	os.Exit(result.ExitCode())
	return nil
}
