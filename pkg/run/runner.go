// pkg/run/runner.go
package run

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Command describes a single subprocess invocation: an explicit argument
// list, optional extra environment entries, and an optional working
// directory. No shell is involved.
type Command struct {
	Path string   // Absolute path or name resolvable via PATH
	Args []string // Arguments, not including the program name
	Env  []string // Extra KEY=VALUE entries appended to the inherited environment
	Dir  string   // Working directory (empty = inherit)
}

// Result holds the outcome of a completed subprocess.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands. The process waits for completion; there is no
// timeout beyond what the context provides.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and waits for it to exit. A failure to launch
// returns an error; a clean launch that exits non-zero returns a Result
// carrying the exit code and a nil error, so callers handle exit codes
// explicitly instead of through wrapped *exec.ExitError values.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, fmt.Errorf("launching %s: %w", cmd.Path, err)
	}

	return res, nil
}
