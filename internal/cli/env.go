// internal/cli/env.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildprep/winenv/pkg/envplan"
	"github.com/buildprep/winenv/pkg/probe"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the computed build environment without applying it",
	Long: `Probe the current state and print the environment plan as KEY=VALUE
lines in cmd.exe syntax (the PATH line uses ";" and %PATH%). Nothing is
installed and the process environment is not mutated.`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p := probe.NewProber(&probe.Config{
		MSYS2Root:   config.MSYS2Root,
		LibraryRoot: config.LibraryRoot,
		LibraryName: config.LibraryName,
		Debug:       config.Debug,
	}, nil)

	tc, lib := p.Probe(ctx)
	plan := envplan.Compute(tc, lib)

	for _, line := range plan.Environ() {
		fmt.Println(line)
	}
	return nil
}
