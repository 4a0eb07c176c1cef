// pkg/pacman/script.go
package pacman

import (
	"fmt"
	"os"
	"strings"
)

// BuildScript assembles the pacman session: abort on first failure, full
// system update (unless skipped), then the compiler and the toolchain
// meta-package, all non-interactive.
func BuildScript(skipUpdate bool) string {
	var b strings.Builder

	b.WriteString("set -e\n")
	if !skipUpdate {
		b.WriteString("pacman -Syuu --noconfirm\n")
	}
	fmt.Fprintf(&b, "pacman -S --noconfirm --needed %s\n", CompilerPackage)
	fmt.Fprintf(&b, "pacman -S --noconfirm --needed %s\n", ToolchainPackage)

	return b.String()
}

// WriteScript writes the script to a temp file as plain UTF-8. The MSYS2
// bash cannot tolerate a byte-order mark, so none is emitted.
func WriteScript(content string) (string, error) {
	f, err := os.CreateTemp("", "winenv-pacman-*.sh")
	if err != nil {
		return "", fmt.Errorf("creating script file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing script: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing script: %w", err)
	}

	return f.Name(), nil
}
