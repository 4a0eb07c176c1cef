// errors.go
package winenv

import (
	"errors"
	"fmt"
)

var (
	// ErrPlatformNotSupported indicates the host is not a Windows x86_64 machine
	ErrPlatformNotSupported = errors.New("platform not supported")

	// ErrDownloadFailed indicates an artifact download failure
	ErrDownloadFailed = errors.New("download failed")

	// ErrInstallerFailed indicates the MSYS2 installer exited non-zero
	ErrInstallerFailed = errors.New("installer failed")

	// ErrShellNotFound indicates no bash shell was found under the MSYS2 root
	ErrShellNotFound = errors.New("shell not found")

	// ErrCompilerNotFound indicates the compiler binary is absent
	ErrCompilerNotFound = errors.New("compiler not found")

	// ErrLibraryNotFound indicates no complete native library artifact set exists
	ErrLibraryNotFound = errors.New("native library not found")

	// ErrTempLocked indicates a stale temp artifact is locked by another process
	ErrTempLocked = errors.New("temp resource locked")
)

// Error wraps an error with additional context
type Error struct {
	Op   string // Operation that failed
	Path string // Path involved, if applicable
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
