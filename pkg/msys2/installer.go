// pkg/msys2/installer.go
package msys2

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/go-units"

	"github.com/buildprep/winenv/pkg/run"
)

// NewInstaller creates a new MSYS2 installer
func NewInstaller(cfg *Config) *Installer {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.InstallerURL == "" {
		cfg.InstallerURL = DefaultInstallerURL
	}
	if cfg.ArchiveURL == "" {
		cfg.ArchiveURL = DefaultArchiveURL
	}
	if cfg.Method == "" {
		cfg.Method = MethodInstaller
	}
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(os.TempDir(), "winenv")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Minute
	}

	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[MSYS2] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	runner := cfg.Runner
	if runner == nil {
		runner = run.NewExecRunner()
	}

	remove := cfg.Remove
	if remove == nil {
		remove = os.Remove
	}

	return &Installer{
		client: NewClientWithTimeout(cfg.Timeout),
		config: cfg,
		runner: runner,
		logger: logger,
		remove: remove,
	}
}

// Root returns the configured installation root
func (in *Installer) Root() string {
	return in.config.Root
}

// EnsureToolchain makes sure the MSYS2 distribution exists at the configured
// root. If the root directory already exists this is a no-op: partial or
// corrupt installs are not detected, repair goes through the compiler
// installer instead.
func (in *Installer) EnsureToolchain(ctx context.Context) error {
	if info, err := os.Stat(in.config.Root); err == nil && info.IsDir() {
		in.logger.Printf("MSYS2 already present at %s, skipping install", in.config.Root)
		return nil
	}

	if in.config.Method == MethodArchive {
		return in.installFromArchive(ctx)
	}
	return in.installFromInstaller(ctx)
}

// installFromInstaller downloads the self-extracting installer and runs it
// in silent mode against the target root.
func (in *Installer) installFromInstaller(ctx context.Context) error {
	installerPath := filepath.Join(in.config.CachePath, "downloads", filepath.Base(in.config.InstallerURL))

	// A stale installer locked by a still-running setup process cannot be
	// replaced; bail out with guidance instead of proceeding.
	if _, err := os.Stat(installerPath); err == nil {
		if err := in.remove(installerPath); err != nil {
			return fmt.Errorf("stale installer %s cannot be removed (close any running MSYS2 setup and retry): %w", installerPath, err)
		}
	}
	defer in.remove(installerPath)

	in.logger.Printf("Downloading MSYS2 installer from %s", in.config.InstallerURL)
	if err := in.downloadFile(ctx, in.config.InstallerURL, installerPath); err != nil {
		return fmt.Errorf("downloading installer: %w", err)
	}

	in.logger.Printf("Running silent install into %s", in.config.Root)
	res, err := in.runner.Run(ctx, run.Command{
		Path: installerPath,
		Args: []string{
			"in",
			"--confirm-command",
			"--accept-messages",
			"--root", in.config.Root,
			"--locale", InstallerLocale,
		},
	})
	if err != nil {
		return fmt.Errorf("running installer: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("installer exited with code %d", res.ExitCode)
	}

	in.logger.Printf("✓ MSYS2 installed at %s", in.config.Root)
	return nil
}

func (in *Installer) downloadFile(ctx context.Context, url, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	written, err := in.client.Download(ctx, url, f)
	if err != nil {
		return err
	}

	in.logger.Printf("  Downloaded %s to %s", units.HumanSize(float64(written)), path)
	return nil
}
