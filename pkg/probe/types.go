// pkg/probe/types.go
package probe

import "log"

// LinkMode describes how the native library will be linked into the
// downstream build.
type LinkMode int

const (
	// LinkNone means no complete artifact set was found
	LinkNone LinkMode = iota
	// LinkStatic means the static archive is present
	LinkStatic
	// LinkDynamic means the import library and DLL pair is present
	LinkDynamic
)

// String returns a human-readable link mode name
func (m LinkMode) String() string {
	switch m {
	case LinkStatic:
		return "static"
	case LinkDynamic:
		return "dynamic"
	default:
		return "none"
	}
}

// ToolchainState is the probed state of the MSYS2/mingw-w64 installation.
// Derived fresh on every probe; never persisted.
type ToolchainState struct {
	Installed    bool   // Installation root and compiler binary both exist
	CompilerPath string // Absolute path to gcc.exe under the root
	Verified     bool   // Compiler ran --version and exited zero
	Version      string // First line of the version output, if verified
}

// NativeLibraryState is the probed state of the pre-built native database
// library the downstream cgo build links against.
type NativeLibraryState struct {
	Found      bool
	LinkMode   LinkMode
	Name       string // Base library name, e.g. "duckdb"
	RootPath   string // Configured library root
	IncludeDir string // Directory containing the header
	LibDir     string // Directory containing the archive or import library
}

// Config configures a Prober
type Config struct {
	MSYS2Root   string // e.g. C:\msys64
	LibraryRoot string // Root of the native library distribution
	LibraryName string // Base library name, e.g. "duckdb"
	Debug       bool
	Logger      *log.Logger
}
