// pkg/envplan/plan.go
package envplan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/buildprep/winenv/pkg/probe"
)

// Compiler selection for the downstream cgo build
const (
	CompilerName = "x86_64-w64-mingw32-gcc"
)

// staticSysLibs closes the static-link dependency graph on Windows:
// winsock networking, legacy socket compat, restart manager, the C++
// runtime, and libm.
var staticSysLibs = []string{"ws2_32", "wsock32", "rstrtmgr", "stdc++", "m"}

// Var is a single environment assignment
type Var struct {
	Key   string
	Value string
}

// Plan is the full set of environment mutations the downstream build needs.
// It is computed as a value and applied at a single point so the process
// environment never gets touched ad hoc.
type Plan struct {
	Vars         []Var
	PathPrepends []string // Directories to prepend to PATH, in order
}

// Compute builds the plan from the probed states. Pure: no environment
// access. Library flags are only ever emitted for a link mode the probe
// actually confirmed.
func Compute(tc probe.ToolchainState, lib probe.NativeLibraryState) *Plan {
	p := &Plan{}

	p.set("CGO_ENABLED", "1")
	p.set("CC", CompilerName)

	switch lib.LinkMode {
	case probe.LinkStatic:
		libName := baseName(lib)
		p.set("CGO_CFLAGS", fmt.Sprintf("-D%s_STATIC_BUILD -I%s", strings.ToUpper(libName), lib.IncludeDir))
		ldflags := fmt.Sprintf("-L%s -l%s", lib.LibDir, libName)
		for _, sys := range staticSysLibs {
			ldflags += " -l" + sys
		}
		p.set("CGO_LDFLAGS", ldflags)
	case probe.LinkDynamic:
		libName := baseName(lib)
		p.set("CGO_CFLAGS", fmt.Sprintf("-I%s", lib.IncludeDir))
		p.set("CGO_LDFLAGS", fmt.Sprintf("-L%s -l%s", lib.LibDir, libName))
	}
	// LinkNone: no library flags at all; the overall-success check has
	// already failed with its own message.

	if tc.CompilerPath != "" {
		p.PathPrepends = append(p.PathPrepends, filepath.Dir(tc.CompilerPath))
	}
	if lib.Found && lib.LibDir != "" {
		p.PathPrepends = append(p.PathPrepends, lib.LibDir)
	}

	return p
}

func (p *Plan) set(key, value string) {
	p.Vars = append(p.Vars, Var{Key: key, Value: value})
}

// Get returns the value for a key, or "" if the plan does not set it
func (p *Plan) Get(key string) string {
	for _, v := range p.Vars {
		if v.Key == key {
			return v.Value
		}
	}
	return ""
}

// Apply mutates the process environment through the provided setenv and
// getenv functions (pass os.Setenv and os.Getenv outside of tests). PATH
// is updated last, with duplicate-prepend protection.
func (p *Plan) Apply(setenv func(string, string) error, getenv func(string) string) error {
	for _, v := range p.Vars {
		if err := setenv(v.Key, v.Value); err != nil {
			return fmt.Errorf("setting %s: %w", v.Key, err)
		}
	}

	path := getenv("PATH")
	for _, dir := range p.PathPrepends {
		path = PrependPath(path, dir)
	}
	if err := setenv("PATH", path); err != nil {
		return fmt.Errorf("setting PATH: %w", err)
	}
	return nil
}

// Environ renders the plan as KEY=VALUE lines in cmd.exe syntax: the PATH
// line uses ";" and a literal %PATH% reference regardless of the host the
// tool happens to run on, since the plan always targets a Windows build.
func (p *Plan) Environ() []string {
	out := make([]string, 0, len(p.Vars)+1)
	for _, v := range p.Vars {
		out = append(out, v.Key+"="+v.Value)
	}
	if len(p.PathPrepends) > 0 {
		out = append(out, "PATH="+strings.Join(p.PathPrepends, ";")+";%PATH%")
	}
	return out
}

func baseName(lib probe.NativeLibraryState) string {
	if lib.Name != "" {
		return lib.Name
	}
	return "duckdb"
}
