package changelog

import (
	"fmt"
	"strings"
)

// Significance classifies the impact of a change per semantic versioning.
type Significance int

const (
	// Major changes break compatibility and bump the major number.
	Major Significance = iota
	// Minor changes add functionality and bump the minor number.
	Minor
	// Patch changes are bugfixes and bump the patch number.
	Patch
)

// Significances returns the significance levels in rendering order.
func Significances() []Significance {
	return []Significance{Major, Minor, Patch}
}

// String returns the lowercase name used in requests and config.
func (s Significance) String() string {
	switch s {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return fmt.Sprintf("significance(%d)", int(s))
	}
}

// Title returns the section title written after "=== ".
func (s Significance) Title() string {
	switch s {
	case Major:
		return "Major Changes"
	case Minor:
		return "Minor Changes"
	case Patch:
		return "Bugfixes"
	default:
		return ""
	}
}

// Valid reports whether s is one of the three fixed levels.
func (s Significance) Valid() bool {
	return s >= Major && s <= Patch
}

// ParseSignificance converts a request name ("major", "minor", "patch") to
// a Significance. Unknown names are a CallerError.
func ParseSignificance(name string) (Significance, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch", "bugfix":
		return Patch, nil
	}
	return 0, &CallerError{
		Field:   "significance",
		Message: fmt.Sprintf("unknown significance %q (expected: major, minor, patch)", name),
	}
}

// significanceForTitle maps a section title back to its level.
func significanceForTitle(title string) (Significance, bool) {
	for _, s := range Significances() {
		if s.Title() == title {
			return s, true
		}
	}
	return 0, false
}

// ChangeSet holds change messages per significance in insertion order.
// The zero value is an empty set ready to use.
type ChangeSet struct {
	Major []string `yaml:"major,omitempty" json:"major,omitempty"`
	Minor []string `yaml:"minor,omitempty" json:"minor,omitempty"`
	Patch []string `yaml:"patch,omitempty" json:"patch,omitempty"`
}

// Entries returns the messages recorded for s.
func (c ChangeSet) Entries(s Significance) []string {
	switch s {
	case Major:
		return c.Major
	case Minor:
		return c.Minor
	case Patch:
		return c.Patch
	default:
		return nil
	}
}

// Add appends message to the level s.
func (c *ChangeSet) Add(s Significance, message string) {
	switch s {
	case Major:
		c.Major = append(c.Major, message)
	case Minor:
		c.Minor = append(c.Minor, message)
	case Patch:
		c.Patch = append(c.Patch, message)
	}
}

// IsEmpty returns true if no level has any entries.
func (c ChangeSet) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all levels.
func (c ChangeSet) Count() int {
	return len(c.Major) + len(c.Minor) + len(c.Patch)
}

// Clone returns a deep copy so callers cannot mutate engine state.
func (c ChangeSet) Clone() ChangeSet {
	return ChangeSet{
		Major: cloneStrings(c.Major),
		Minor: cloneStrings(c.Minor),
		Patch: cloneStrings(c.Patch),
	}
}

func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}

// Change is a single (significance, message) pair in an update request.
type Change struct {
	Significance Significance
	Message      string
}

// ReleaseAnnotation marks an update as cutting a release.
// The zero value means no release was requested.
type ReleaseAnnotation struct {
	Requested bool
	Name      string
}

// Anonymous requests a release without a name.
func Anonymous() ReleaseAnnotation {
	return ReleaseAnnotation{Requested: true}
}

// Named requests a release annotated with name. An empty name is the same
// as Anonymous.
func Named(name string) ReleaseAnnotation {
	return ReleaseAnnotation{Requested: true, Name: name}
}

// UpdateRequest is the input of Engine.Update.
type UpdateRequest struct {
	// Changes are appended to the pending ChangeSet in order.
	Changes []Change
	// Release, when requested, stamps the pending changes with a version.
	Release ReleaseAnnotation
}

// validate checks the whole request before anything is mutated.
func (r UpdateRequest) validate() error {
	for i, c := range r.Changes {
		field := fmt.Sprintf("changes[%d]", i)
		if !c.Significance.Valid() {
			return &CallerError{
				Field:   field + ".significance",
				Message: fmt.Sprintf("unknown significance %s", c.Significance),
			}
		}
		if strings.TrimSpace(c.Message) == "" {
			return &CallerError{Field: field + ".message", Message: "change message cannot be empty"}
		}
		if strings.ContainsAny(c.Message, "\r\n") {
			return &CallerError{Field: field + ".message", Message: "change message must be a single line"}
		}
	}
	if strings.ContainsAny(r.Release.Name, "\r\n") {
		return &CallerError{Field: "release", Message: "release name must be a single line"}
	}
	return nil
}
