// pkg/msys2/constants.go
package msys2

const (
	// DefaultRoot is the standard MSYS2 installation root on Windows
	DefaultRoot = `C:\msys64`

	// DefaultInstallerURL is the pinned self-extracting installer release.
	// Pinned rather than "latest" so provisioning is reproducible.
	DefaultInstallerURL = "https://github.com/msys2/msys2-installer/releases/download/2024-01-13/msys2-x86_64-20240113.exe"

	// DefaultArchiveURL is the pinned base distribution tarball, used by the
	// archive install method instead of the graphical installer
	DefaultArchiveURL = "https://github.com/msys2/msys2-installer/releases/download/2024-01-13/msys2-base-x86_64-20240113.tar.xz"

	// InstallerLocale is passed to the silent installer
	InstallerLocale = "en_US"
)

// Install methods
const (
	MethodInstaller = "installer" // Run the self-extracting installer silently
	MethodArchive   = "archive"   // Download and extract the base tarball
)
