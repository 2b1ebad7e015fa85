package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# Historian Configuration
# Values here are overridden by HISTORIAN_* environment variables and flags.

file: History.txt                     # Changelog path
unreleased_marker: In Progress        # Header text above pending changes
atomic: true                          # Write through temp file + rename
lock: true                            # Take History.txt.lock while writing
log_level: warn                       # debug | info | warn | error

# Release tagging
git:
  tag: false                          # Create an annotated tag after each release
  tag_prefix: v                       # Tag name is <tag_prefix><version>
  repo: ""                            # Repository path (empty = detect from changelog)
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"file":              "History.txt",
		"unreleased_marker": "In Progress",
		"atomic":            true,
		"lock":              true,
		// log_level: Only warnings and errors by default; --verbose switches to debug.
		"log_level": "warn",
		"git": map[string]interface{}{
			"tag":        false,
			"tag_prefix": "v",
			"repo":       "",
		},
	}
}
