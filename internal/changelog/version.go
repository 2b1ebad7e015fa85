package changelog

import (
	"fmt"
	"regexp"
	"strconv"
)

var versionPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)$`)

// Version is a major.minor.patch release number. The zero value is 0.0.0.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses "X.Y.Z". A leading "v" is accepted and ignored.
// Pre-release tags and build metadata are rejected.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(NormalizeVersion(s))
	if m == nil {
		return Version{}, &CallerError{
			Field:   "version",
			Message: fmt.Sprintf("invalid version %q (expected: X.Y.Z)", s),
		}
	}

	var v Version
	var err error
	if v.Major, err = strconv.Atoi(m[1]); err != nil {
		return Version{}, fmt.Errorf("parsing major number: %w", err)
	}
	if v.Minor, err = strconv.Atoi(m[2]); err != nil {
		return Version{}, fmt.Errorf("parsing minor number: %w", err)
	}
	if v.Patch, err = strconv.Atoi(m[3]); err != nil {
		return Version{}, fmt.Errorf("parsing patch number: %w", err)
	}
	return v, nil
}

// String returns the "X.Y.Z" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MarshalText encodes v as "X.Y.Z" for YAML and JSON output.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes "X.Y.Z".
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Next returns the version that releasing c on top of v produces.
// Only the highest non-empty significance bumps; with no changes at all the
// patch number is incremented.
func (v Version) Next(c ChangeSet) Version {
	switch {
	case len(c.Major) > 0:
		return Version{Major: v.Major + 1}
	case len(c.Minor) > 0:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// NormalizeVersion strips a "v" prefix so both "v0.6.0" and "0.6.0" are
// accepted as input.
func NormalizeVersion(version string) string {
	if len(version) > 0 && (version[0] == 'v' || version[0] == 'V') {
		return version[1:]
	}
	return version
}
