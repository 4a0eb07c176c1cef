// pkg/pacman/constants.go
package pacman

const (
	// CompilerPackage is the mingw-w64 cross-compiler package
	CompilerPackage = "mingw-w64-x86_64-gcc"

	// ToolchainPackage is the base development meta-package pulled in
	// alongside the compiler
	ToolchainPackage = "mingw-w64-x86_64-toolchain"
)

// Environment the MSYS2 shell needs to target the mingw64 sub-environment
const (
	EnvMsystem       = "MSYSTEM=MINGW64"
	EnvChereInvoking = "CHERE_INVOKING=1"
)
