// historian - Changelog maintenance for semantically versioned projects
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/historian

// Package config provides hierarchical configuration management for historian using koanf.
// Configuration is loaded with priority: command-line overrides > environment variables
// > project config (.historian.yml) > user config (~/.config/historian/config.yml) > defaults.
// The project config may also be a legacy .historian.json file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "HISTORIAN_"

// Configuration represents the historian CLI configuration
type Configuration struct {
	// File is the changelog path. Relative paths resolve against the working directory.
	File string `koanf:"file" yaml:"file" validate:"required"`

	// UnreleasedMarker is the text written after "== " above pending changes.
	UnreleasedMarker string `koanf:"unreleased_marker" yaml:"unreleased_marker" validate:"required,marker"`

	// Atomic buffers edits in memory and replaces the file through a temp
	// file and rename. When false, the file is rewritten in place.
	Atomic bool `koanf:"atomic" yaml:"atomic"`

	// Lock takes an advisory lock file next to the changelog while writing.
	Lock bool `koanf:"lock" yaml:"lock"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level" validate:"loglevel"`

	Git GitConfig `koanf:"git" yaml:"git"`
}

// GitConfig controls tagging of releases.
type GitConfig struct {
	// Tag creates an annotated tag after every release.
	Tag bool `koanf:"tag" yaml:"tag"`
	// TagPrefix is prepended to the version to form the tag name.
	TagPrefix string `koanf:"tag_prefix" yaml:"tag_prefix" validate:"tagprefix"`
	// Repo is the repository path. Empty means detect from the changelog location.
	Repo string `koanf:"repo" yaml:"repo"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .historian.yml)
	ProjectConfigPath string
	// Overrides are applied last, typically from command-line flags.
	// Keys use koanf dot notation ("git.tag").
	Overrides map[string]any
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
//
// Config paths:
//   - User config: ~/.config/historian/config.yml (XDG compliant)
//   - Project config: .historian.yml
//   - Legacy project config: .historian.json (deprecated, triggers a warning)
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	if err := applyOverrides(k, opts.Overrides); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// applyOverrides sets command-line values over everything loaded before.
func applyOverrides(k *koanf.Koanf, overrides map[string]any) error {
	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("applying override %s: %w", key, err)
		}
	}
	return nil
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Supports custom path override. Falls back to legacy JSON with a warning.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectPath := ProjectConfigPath()
	if customPath != "" {
		projectPath = customPath
	}

	if strings.EqualFold(filepath.Ext(projectPath), ".json") {
		if !fileExists(projectPath) {
			return nil
		}
		if err := loadJSONConfig(k, projectPath, "project"); err != nil {
			return fmt.Errorf("loading project JSON config: %w", err)
		}
		return nil
	}

	legacyPath := LegacyProjectConfigPath()
	projectExists := fileExists(projectPath)
	legacyExists := customPath == "" && fileExists(legacyPath)

	switch {
	case projectExists:
		if err := loadYAMLConfig(k, projectPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if legacyExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n\n", legacyPath, projectPath)
		}
	case legacyExists:
		if err := loadJSONConfig(k, legacyPath, "project"); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Move its settings to %s.\n\n", ProjectConfigPath())
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.File = expandHomePath(cfg.File)
	cfg.Git.Repo = expandHomePath(cfg.Git.Repo)

	return &cfg, nil
}

// TagName returns the git tag for a released version string.
func (c *Configuration) TagName(version string) string {
	return c.Git.TagPrefix + version
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: HISTORIAN_LOG_LEVEL -> log_level, HISTORIAN_GIT_TAG_PREFIX -> git.tag_prefix
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "git_"); ok {
		return "git." + rest
	}
	return key
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
