// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
)

// Platform represents the detected host platform
type Platform struct {
	OS   string // linux, darwin, windows
	Arch string // amd64, arm64, 386, arm
}

// Detect returns the current platform, or an error when the host cannot be
// provisioned. This tool installs a Windows toolchain in place, so any
// other OS is fatal before any work starts.
func Detect() (*Platform, error) {
	p := &Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if p.OS != "windows" {
		return nil, fmt.Errorf("unsupported operating system: %s (Windows host required)", p.OS)
	}
	if p.Arch != "amd64" {
		return nil, fmt.Errorf("unsupported architecture: %s (x86_64 host required)", p.Arch)
	}

	return p, nil
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}
