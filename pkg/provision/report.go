// pkg/provision/report.go
package provision

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter prints color-coded status lines for the operator. The output is
// informational only, not machine-parseable.
type Reporter struct {
	out     io.Writer
	phase   *color.Color
	success *color.Color
	failure *color.Color
	warn    *color.Color
}

// NewReporter creates a Reporter writing to out (os.Stdout when nil)
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		out:     out,
		phase:   color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
	}
}

// Phase prints a phase header
func (r *Reporter) Phase(name string) {
	r.phase.Fprintf(r.out, "==> %s\n", name)
}

// Success prints a green check line
func (r *Reporter) Success(format string, args ...interface{}) {
	r.success.Fprintf(r.out, "  ✓ "+format+"\n", args...)
}

// Failure prints a red cross line
func (r *Reporter) Failure(format string, args ...interface{}) {
	r.failure.Fprintf(r.out, "  ✗ "+format+"\n", args...)
}

// Warn prints a yellow notice line
func (r *Reporter) Warn(format string, args ...interface{}) {
	r.warn.Fprintf(r.out, "  ! "+format+"\n", args...)
}

// Info prints a plain line
func (r *Reporter) Info(format string, args ...interface{}) {
	fmt.Fprintf(r.out, "  "+format+"\n", args...)
}
