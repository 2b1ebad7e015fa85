// Package config provides the historian config commands.
package config

import (
	"github.com/ariel-frischer/historian/internal/cli/shared"
	"github.com/spf13/cobra"
)

// ConfigCmd groups the configuration subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage historian configuration",
	Long: `Manage historian configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags (--file, --no-lock, --verbose)
  2. Environment variables (HISTORIAN_*, e.g. HISTORIAN_GIT_TAG=true)
  3. Project config (.historian.yml, or legacy .historian.json)
  4. User config (~/.config/historian/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  historian config show

  # Create .historian.yml with commented defaults
  historian config init

  # Print the defaults without writing anything
  historian config init --stdout`,
}

func init() {
	ConfigCmd.GroupID = shared.GroupConfiguration
	ConfigCmd.AddCommand(initCmd, showCmd)
}
