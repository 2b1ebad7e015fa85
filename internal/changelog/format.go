package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SignificanceStyle defines the color and icon for a significance section.
type SignificanceStyle struct {
	Color *color.Color
	Icon  string
}

var significanceStyles = map[Significance]SignificanceStyle{
	Major: {Color: color.New(color.FgRed, color.Bold), Icon: "‼"},
	Minor: {Color: color.New(color.FgGreen), Icon: "+"},
	Patch: {Color: color.New(color.FgYellow), Icon: "⚡"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatPending writes pending changes under the given heading with
// terminal styling. Nothing is written for an empty set.
func FormatPending(heading string, c ChangeSet, w io.Writer, opts FormatOptions) error {
	if c.IsEmpty() {
		return nil
	}
	if err := writeHeading(heading, w, opts); err != nil {
		return fmt.Errorf("writing heading: %w", err)
	}
	return formatChanges(c, w, opts, resolveWidth(opts.MaxWidth))
}

// FormatRelease writes a single release with terminal styling.
func FormatRelease(r *Release, w io.Writer, opts FormatOptions) error {
	if err := writeHeading(releaseHeading(r), w, opts); err != nil {
		return fmt.Errorf("writing heading: %w", err)
	}
	return formatChanges(r.Changes, w, opts, resolveWidth(opts.MaxWidth))
}

// FormatHistory writes up to limit releases, newest first. A limit of zero
// or less writes all of them.
func FormatHistory(h *History, limit int, w io.Writer, opts FormatOptions) error {
	releases := h.Releases
	if limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}

	for i := range releases {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := FormatRelease(&releases[i], w, opts); err != nil {
			return fmt.Errorf("formatting version %s: %w", releases[i].Version, err)
		}
	}
	return nil
}

// releaseHeading builds "v1.2.3 Name (2010/12/12)".
func releaseHeading(r *Release) string {
	heading := "v" + r.Version.String()
	if r.Name != "" {
		heading += " " + r.Name
	}
	if r.Date != "" {
		heading += " (" + r.Date + ")"
	}
	return heading
}

func writeHeading(heading string, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", heading)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(heading))
	return err
}

// formatChanges writes all non-empty sections in major, minor, patch order.
func formatChanges(c ChangeSet, w io.Writer, opts FormatOptions, width int) error {
	for _, s := range Significances() {
		entries := c.Entries(s)
		if len(entries) == 0 {
			continue
		}
		if err := writeSection(s, entries, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeSection writes a single significance section with its entries.
func writeSection(s Significance, entries []string, w io.Writer, opts FormatOptions, width int) error {
	style := significanceStyles[s]

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", s.Title()); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(s.Title())); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a single change entry with optional wrapping.
func writeEntry(entry string, style SignificanceStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, entry)
		return err
	}

	wrapped := wrapText(entry, width-len(prefix), "    ")
	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Break at the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
