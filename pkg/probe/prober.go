// pkg/probe/prober.go
package probe

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildprep/winenv/pkg/run"
)

// CompilerRelPath is where the mingw-w64 gcc lives under the MSYS2 root.
var CompilerRelPath = filepath.Join("mingw64", "bin", "gcc.exe")

// Prober inspects the filesystem and probes the compiler. Its only side
// effect is the version-query subprocess.
type Prober struct {
	config *Config
	runner run.Runner
	logger *log.Logger
}

// NewProber creates a Prober, filling in defaults for unset fields
func NewProber(cfg *Config, runner run.Runner) *Prober {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.LibraryName == "" {
		cfg.LibraryName = "duckdb"
	}
	if runner == nil {
		runner = run.NewExecRunner()
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[PROBE] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Prober{
		config: cfg,
		runner: runner,
		logger: logger,
	}
}

// Probe derives both states from scratch. Repeated calls without any
// intervening installation yield identical results.
func (p *Prober) Probe(ctx context.Context) (ToolchainState, NativeLibraryState) {
	return p.ProbeToolchain(ctx), p.ProbeLibrary()
}

// ProbeToolchain checks for the installation root and the compiler binary,
// then attempts a version query. Any subprocess failure is treated as
// "not verified" and never propagated.
func (p *Prober) ProbeToolchain(ctx context.Context) ToolchainState {
	st := ToolchainState{
		CompilerPath: filepath.Join(p.config.MSYS2Root, CompilerRelPath),
	}

	if !dirExists(p.config.MSYS2Root) {
		p.logger.Printf("MSYS2 root not found: %s", p.config.MSYS2Root)
		return st
	}
	if !fileExists(st.CompilerPath) {
		p.logger.Printf("Compiler not found: %s", st.CompilerPath)
		return st
	}
	st.Installed = true

	res, err := p.runner.Run(ctx, run.Command{
		Path: st.CompilerPath,
		Args: []string{"--version"},
	})
	if err != nil {
		p.logger.Printf("Version check failed to launch: %v", err)
		return st
	}
	if res.ExitCode != 0 {
		p.logger.Printf("Version check exited with code %d", res.ExitCode)
		return st
	}

	st.Verified = true
	st.Version = firstLine(res.Stdout)
	p.logger.Printf("Compiler verified: %s", st.Version)
	return st
}

// ProbeLibrary checks the two mutually exclusive artifact sets under the
// configured root. The static archive wins when both sets are present.
func (p *Prober) ProbeLibrary() NativeLibraryState {
	st := NativeLibraryState{
		Name:     p.config.LibraryName,
		RootPath: p.config.LibraryRoot,
	}

	if p.config.LibraryRoot == "" || !dirExists(p.config.LibraryRoot) {
		p.logger.Printf("Library root not found: %s", p.config.LibraryRoot)
		return st
	}

	includeDir, ok := p.findHeader()
	if !ok {
		p.logger.Printf("Header %s.h not found under %s", p.config.LibraryName, p.config.LibraryRoot)
		return st
	}
	st.IncludeDir = includeDir

	libDir := filepath.Join(p.config.LibraryRoot, "lib")
	if !dirExists(libDir) {
		libDir = p.config.LibraryRoot
	}

	name := p.config.LibraryName
	staticArchive := filepath.Join(libDir, "lib"+name+".a")
	importLib := filepath.Join(libDir, "lib"+name+".dll.a")
	sharedLib := filepath.Join(libDir, name+".dll")

	switch {
	case fileExists(staticArchive):
		st.Found = true
		st.LinkMode = LinkStatic
		st.LibDir = libDir
		p.logger.Printf("Found static archive: %s", staticArchive)
	case fileExists(importLib) && fileExists(sharedLib):
		st.Found = true
		st.LinkMode = LinkDynamic
		st.LibDir = libDir
		p.logger.Printf("Found dynamic pair: %s, %s", importLib, sharedLib)
	default:
		p.logger.Printf("No complete artifact set under %s", libDir)
	}

	return st
}

// findHeader looks for the header in include/ first, then at the root
func (p *Prober) findHeader() (string, bool) {
	header := p.config.LibraryName + ".h"

	includeDir := filepath.Join(p.config.LibraryRoot, "include")
	if fileExists(filepath.Join(includeDir, header)) {
		return includeDir, true
	}
	if fileExists(filepath.Join(p.config.LibraryRoot, header)) {
		return p.config.LibraryRoot, true
	}
	return "", false
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, "\r\n"); idx != -1 {
		return s[:idx]
	}
	return s
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
