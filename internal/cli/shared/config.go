package shared

import (
	"github.com/ariel-frischer/historian/internal/config"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/spf13/cobra"
)

// Global flag names, registered as persistent flags on the root command.
const (
	FlagConfig  = "config"
	FlagFile    = "file"
	FlagVerbose = "verbose"
	FlagNoLock  = "no-lock"
)

// LoadConfig loads the configuration for cmd, applying the global flags
// that were set on the command line as the highest-priority overrides.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString(FlagConfig)

	overrides := map[string]any{}
	if flags.Changed(FlagFile) {
		file, _ := flags.GetString(FlagFile)
		overrides["file"] = file
	}
	if verbose, _ := flags.GetBool(FlagVerbose); verbose {
		overrides["log_level"] = "debug"
	}
	if noLock, _ := flags.GetBool(FlagNoLock); noLock {
		overrides["lock"] = false
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		Overrides:         overrides,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigParseError(err)
	}
	return cfg, nil
}
