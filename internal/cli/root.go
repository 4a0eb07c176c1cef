// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildprep/winenv/pkg/core"
)

var (
	cfgFile     string
	msys2Root   string
	libraryRoot string
	debug       bool
	config      *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "winenv",
	Short: "Windows cgo toolchain provisioner",
	Long: `winenv - Windows cgo toolchain provisioner

Detects, installs, and configures an MSYS2/mingw-w64 C toolchain and locates
a pre-built native database library, then exports the compiler and linker
environment a downstream cgo build needs.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/winenv/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&msys2Root, "msys2-root", "", "MSYS2 installation root (default C:\\msys64)")
	rootCmd.PersistentFlags().StringVar(&libraryRoot, "library-root", "", "root directory of the pre-built native library")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if msys2Root != "" {
		config.MSYS2Root = msys2Root
	}
	if libraryRoot != "" {
		config.LibraryRoot = libraryRoot
	}
	if debug {
		config.Debug = true
	}
}
