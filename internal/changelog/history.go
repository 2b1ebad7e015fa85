package changelog

import (
	"bytes"
	"fmt"
	"strings"
)

// Release is one released entry of the changelog history.
type Release struct {
	Version Version   `yaml:"version" json:"version"`
	Name    string    `yaml:"name,omitempty" json:"name,omitempty"`
	Date    string    `yaml:"date,omitempty" json:"date,omitempty"`
	Changes ChangeSet `yaml:"changes" json:"changes"`
	// Text is the block as stored, without surrounding blank lines.
	Text string `yaml:"-" json:"-"`
}

// Header formats the release header line.
func (r Release) Header() string {
	header := "== " + r.Version.String()
	if r.Name != "" {
		header += " " + r.Name
	}
	if r.Date != "" {
		header += " - " + r.Date
	}
	return header
}

// Log renders the release in canonical form.
func (r Release) Log() string {
	return Render(r.Header(), r.Changes)
}

// History is the released part of a changelog, newest release first.
type History struct {
	Releases []Release
}

// VersionNotFoundError is returned when a requested release doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// ParseReleases reads released history from raw changelog text. Anything
// above the first release header is skipped. Unlike Parse it is lenient:
// hand-edited history may contain lines outside the grammar, and those are
// kept in Text but otherwise ignored.
func ParseReleases(raw []byte) *History {
	h := &History{}

	var (
		current *Release
		block   []string
		section Significance
		known   bool
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.TrimSpace(strings.Join(block, "\n"))
		h.Releases = append(h.Releases, *current)
	}

	for _, b := range bytes.Split(raw, []byte("\n")) {
		text := strings.TrimRight(string(b), "\r")
		l := classify(text)

		if l.kind == kindReleaseHeader {
			flush()
			current = &Release{
				Version: l.header.version,
				Name:    l.header.name,
				Date:    l.header.date,
			}
			block = nil
			known = false
		}
		if current == nil {
			continue
		}
		block = append(block, text)

		switch l.kind {
		case kindSection:
			section, known = significanceForTitle(l.value)
		case kindBullet:
			if known {
				current.Changes.Add(section, l.value)
			}
		}
	}
	flush()

	return h
}

// Get retrieves a release by version. Accepts both "v0.6.0" and "0.6.0".
// Returns VersionNotFoundError if the version doesn't exist.
func (h *History) Get(version string) (*Release, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return nil, err
	}

	for i := range h.Releases {
		if h.Releases[i].Version == v {
			return &h.Releases[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: h.List(),
	}
}

// List returns the version numbers in the order they appear (newest first).
func (h *History) List() []string {
	versions := make([]string, len(h.Releases))
	for i, r := range h.Releases {
		versions[i] = r.Version.String()
	}
	return versions
}

// Latest returns the most recent release, or nil if nothing was released.
func (h *History) Latest() *Release {
	if len(h.Releases) == 0 {
		return nil
	}
	return &h.Releases[0]
}

// EntryCount returns the total number of entries across all releases.
func (h *History) EntryCount() int {
	count := 0
	for _, r := range h.Releases {
		count += r.Changes.Count()
	}
	return count
}

// History returns the released history below the pending region.
func (e *Engine) History() (*History, error) {
	if err := e.ensureParsed(); err != nil {
		return nil, err
	}
	return ParseReleases(e.state.Trailing), nil
}

// LatestReleaseLog returns the stored text of the most recent release, and
// false if nothing was released yet.
func (e *Engine) LatestReleaseLog() (string, bool, error) {
	h, err := e.History()
	if err != nil {
		return "", false, err
	}
	latest := h.Latest()
	if latest == nil {
		return "", false, nil
	}
	return latest.Text, true, nil
}
