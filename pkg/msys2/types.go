// pkg/msys2/types.go
package msys2

import (
	"log"
	"time"

	"github.com/buildprep/winenv/pkg/run"
)

// Config configures the MSYS2 toolchain installer
type Config struct {
	Root         string        // Installation root, e.g. C:\msys64
	InstallerURL string        // Self-extracting installer download URL
	ArchiveURL   string        // Base tarball download URL
	Method       string        // MethodInstaller or MethodArchive
	CachePath    string        // Where downloaded artifacts are staged
	Timeout      time.Duration // Network timeout
	Debug        bool
	Logger       *log.Logger
	Runner       run.Runner
	Remove       func(string) error // File removal, os.Remove when nil
}

// Installer ensures the MSYS2 distribution is present on disk
type Installer struct {
	client *Client
	config *Config
	runner run.Runner
	logger *log.Logger
	remove func(string) error
}
