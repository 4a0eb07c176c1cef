// internal/cli/status.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildprep/winenv/pkg/probe"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report toolchain and native library state without installing anything",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p := probe.NewProber(&probe.Config{
		MSYS2Root:   config.MSYS2Root,
		LibraryRoot: config.LibraryRoot,
		LibraryName: config.LibraryName,
		Debug:       config.Debug,
	}, nil)

	tc, lib := p.Probe(ctx)

	fmt.Printf("MSYS2 root:      %s\n", config.MSYS2Root)
	fmt.Printf("  installed:     %v\n", tc.Installed)
	fmt.Printf("  verified:      %v\n", tc.Verified)
	if tc.Verified {
		fmt.Printf("  version:       %s\n", tc.Version)
	}
	fmt.Printf("Library root:    %s\n", lib.RootPath)
	fmt.Printf("  found:         %v\n", lib.Found)
	fmt.Printf("  link mode:     %s\n", lib.LinkMode)
	if lib.Found {
		fmt.Printf("  include dir:   %s\n", lib.IncludeDir)
		fmt.Printf("  lib dir:       %s\n", lib.LibDir)
	}

	if !(tc.Installed && tc.Verified && lib.Found) {
		os.Exit(1)
	}
	return nil
}
