// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds winenv configuration
type Config struct {
	MSYS2Root     string        `yaml:"msys2_root"`
	InstallerURL  string        `yaml:"installer_url"`
	ArchiveURL    string        `yaml:"archive_url"`
	InstallMethod string        `yaml:"install_method"` // installer or archive
	LibraryRoot   string        `yaml:"library_root"`
	LibraryName   string        `yaml:"library_name"`
	SkipUpdate    bool          `yaml:"skip_update"`
	Timeout       time.Duration `yaml:"timeout"`
	Debug         bool          `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		MSYS2Root:     `C:\msys64`,
		InstallMethod: "installer",
		LibraryName:   "duckdb",
		Timeout:       10 * time.Minute,
		Debug:         false,
	}
}

// LoadConfig loads configuration from file, layered with environment
// overrides. A .env file in the working directory is applied first so CI
// can steer the tool without touching the config file.
func LoadConfig(path string) (*Config, error) {
	// Best effort: absence of .env is the normal case
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		path = filepath.Join(home, ".config", "winenv", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "winenv", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WINENV_MSYS2_ROOT"); v != "" {
		cfg.MSYS2Root = v
	}
	if v := os.Getenv("WINENV_LIBRARY_ROOT"); v != "" {
		cfg.LibraryRoot = v
	}
	if v := os.Getenv("WINENV_LIBRARY_NAME"); v != "" {
		cfg.LibraryName = v
	}
	if v := os.Getenv("WINENV_INSTALLER_URL"); v != "" {
		cfg.InstallerURL = v
	}
}
