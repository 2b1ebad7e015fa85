package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/historian/internal/config"
	clierrors "github.com/ariel-frischer/historian/internal/errors"
	"github.com/ariel-frischer/historian/internal/output"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with commented defaults",
	Long: `Write a config file containing every setting with its default value.

By default the project config (.historian.yml) is created in the current
directory. Use --user for ~/.config/historian/config.yml. An existing file
is left unchanged unless --force is given.`,
	Example: `  historian config init
  historian config init --user
  historian config init --stdout > .historian.yml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("stdout", false, "Print the config instead of writing a file")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	initCmd.Flags().Bool("user", false, "Create the user-level config instead of the project config")
}

func runInit(cmd *cobra.Command, args []string) error {
	toStdout, _ := cmd.Flags().GetBool("stdout")
	force, _ := cmd.Flags().GetBool("force")
	user, _ := cmd.Flags().GetBool("user")
	out := cmd.OutOrStdout()

	if toStdout {
		if force || user {
			return clierrors.InvalidFlagCombination("--stdout, --force/--user", "--stdout writes no file")
		}
		fmt.Fprint(out, config.GetDefaultConfigTemplate())
		return nil
	}

	path, err := initTargetPath(user)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		output.PrintWarning(out, "Config already exists: "+path, "use --force to overwrite")
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	output.PrintSuccess(out, "Created "+path)
	return nil
}

// initTargetPath returns the config file init writes to.
func initTargetPath(user bool) (string, error) {
	if !user {
		return config.ProjectConfigPath(), nil
	}
	path, err := config.UserConfigPath()
	if err != nil {
		return "", fmt.Errorf("resolving user config path: %w", err)
	}
	return path, nil
}
