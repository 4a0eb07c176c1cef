// pkg/verify/verify.go
package verify

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/buildprep/winenv/pkg/run"
)

// Verifier confirms the compiler actually executes and reports a version
type Verifier struct {
	runner run.Runner
	logger *log.Logger
}

// NewVerifier creates a Verifier
func NewVerifier(runner run.Runner, logger *log.Logger) *Verifier {
	if runner == nil {
		runner = run.NewExecRunner()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Verifier{runner: runner, logger: logger}
}

// Verify checks the binary exists and runs it with a version query. The
// first line of the version output is returned for the operator.
func (v *Verifier) Verify(ctx context.Context, compilerPath string) (string, error) {
	info, err := os.Stat(compilerPath)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("compiler not found at %s", compilerPath)
	}

	res, err := v.runner.Run(ctx, run.Command{
		Path: compilerPath,
		Args: []string{"--version"},
	})
	if err != nil {
		return "", fmt.Errorf("running version check: %w", err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("version check exited with code %d", res.ExitCode)
	}

	version := firstLine(res.Stdout)
	v.logger.Printf("✓ %s", version)
	return version, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, "\r\n"); idx != -1 {
		return s[:idx]
	}
	return s
}
