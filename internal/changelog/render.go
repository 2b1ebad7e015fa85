package changelog

import (
	"strings"
	"time"
)

// DateLayout is the layout of the date stamped on release headers.
const DateLayout = "2006/01/02"

// DefaultUnreleasedMarker is the header text written above pending changes.
const DefaultUnreleasedMarker = "In Progress"

// UnreleasedHeader returns the header line for pending changes.
func UnreleasedHeader(marker string) string {
	if marker == "" {
		marker = DefaultUnreleasedMarker
	}
	return "== " + marker
}

// ReleaseHeader formats "== <version>[ <name>] - <date>".
func ReleaseHeader(v Version, name string, date time.Time) string {
	var b strings.Builder
	b.WriteString("== ")
	b.WriteString(v.String())
	if name != "" {
		b.WriteString(" ")
		b.WriteString(name)
	}
	b.WriteString(" - ")
	b.WriteString(date.Format(DateLayout))
	return b.String()
}

// Render formats a changelog block: the header line followed by one
// section per non-empty significance in major, minor, patch order. Each
// section is preceded by a blank line. The result has no trailing newline.
//
// Render is deterministic: the same input always produces the same text.
func Render(header string, c ChangeSet) string {
	var b strings.Builder
	b.WriteString(header)

	for _, s := range Significances() {
		entries := c.Entries(s)
		if len(entries) == 0 {
			continue
		}
		b.WriteString("\n\n=== ")
		b.WriteString(s.Title())
		for _, entry := range entries {
			b.WriteString("\n* ")
			b.WriteString(entry)
		}
	}

	return b.String()
}

// RenderPending renders the unreleased block, or "" when c is empty.
func RenderPending(marker string, c ChangeSet) string {
	if c.IsEmpty() {
		return ""
	}
	return Render(UnreleasedHeader(marker), c)
}

// RenderRelease renders the block for a release of c on top of current.
// The header is always produced, even when c is empty.
func RenderRelease(current Version, release ReleaseAnnotation, c ChangeSet, now time.Time) string {
	return Render(ReleaseHeader(current.Next(c), release.Name, now), c)
}
