package changelog

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	// releaseHeaderPattern matches "== X.Y.Z" optionally followed by a space
	// and the name/date remainder.
	releaseHeaderPattern = regexp.MustCompile(`^== ((?:0|[1-9][0-9]*)\.(?:0|[1-9][0-9]*)\.(?:0|[1-9][0-9]*))(?: (.*))?$`)
	// releaseDatePattern splits the remainder into an optional name and a date.
	releaseDatePattern = regexp.MustCompile(`^(?:(.*) )?- ([0-9]{4}/[0-9]{2}/[0-9]{2})$`)
)

// ParsedState is the result of scanning stored changelog text.
type ParsedState struct {
	// Current is the version of the most recent release header, or 0.0.0.
	Current Version
	// ReleaseName is the name on the most recent release header, if any.
	ReleaseName string
	// ReleaseDate is the YYYY/MM/DD date on the most recent release header, if any.
	ReleaseDate string
	// Pending holds the entries found above the first release header.
	Pending ChangeSet
	// Trailing is the verbatim text from the first release header to the end.
	Trailing []byte
}

type lineKind int

const (
	kindBlank lineKind = iota
	kindReleaseHeader
	kindMarker
	kindSection
	kindBullet
	kindOther
)

// line is one classified input line.
type line struct {
	number int
	text   string
	kind   lineKind
	// value is the section title for kindSection and the message for kindBullet.
	value  string
	header releaseHeader
}

type releaseHeader struct {
	version Version
	name    string
	date    string
}

// classify determines the grammar role of a single line.
func classify(text string) line {
	l := line{text: text, kind: kindOther}

	if strings.TrimSpace(text) == "" {
		l.kind = kindBlank
		return l
	}

	if h, ok := parseReleaseHeader(text); ok {
		l.kind = kindReleaseHeader
		l.header = h
		return l
	}

	switch {
	case strings.HasPrefix(text, "=== "):
		l.kind = kindSection
		l.value = strings.TrimSpace(text[len("=== "):])
	case strings.HasPrefix(text, "== ") && isMarkerText(text[len("== "):]):
		l.kind = kindMarker
	case strings.HasPrefix(text, "* ") && strings.TrimSpace(text[len("* "):]) != "":
		l.kind = kindBullet
		l.value = text[len("* "):]
	}
	return l
}

// isMarkerText reports whether the text after "== " names an unreleased
// marker rather than a (possibly malformed) version.
func isMarkerText(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && (s[0] < '0' || s[0] > '9')
}

// parseReleaseHeader extracts the version, name and date of a release
// header line.
func parseReleaseHeader(text string) (releaseHeader, bool) {
	m := releaseHeaderPattern.FindStringSubmatch(text)
	if m == nil {
		return releaseHeader{}, false
	}

	v, err := ParseVersion(m[1])
	if err != nil {
		return releaseHeader{}, false
	}

	h := releaseHeader{version: v}
	rest := strings.TrimSpace(m[2])
	if dm := releaseDatePattern.FindStringSubmatch(rest); dm != nil {
		h.name = strings.TrimSpace(dm[1])
		h.date = dm[2]
	} else {
		h.name = rest
	}
	return h, true
}

type parseState int

const (
	inPending parseState = iota
	inSection
	done
)

// parser walks the lines of the pending region. Once a release header is
// seen it stops and everything from that line on becomes the trailing
// buffer.
type parser struct {
	state   parseState
	section Significance
	result  *ParsedState
}

type transition func(p *parser, l line) error

// transitions is keyed by current state and line kind. Done has no entries:
// the scan loop stops before consulting it.
var transitions = map[parseState]map[lineKind]transition{
	inPending: {
		kindBlank:         stay,
		kindMarker:        stay,
		kindSection:       enterSection,
		kindBullet:        reject(ErrMissingSignificance),
		kindReleaseHeader: finish,
		kindOther:         reject(ErrUnrecognizedContent),
	},
	inSection: {
		kindBlank:         stay,
		kindMarker:        reject(ErrUnrecognizedContent),
		kindSection:       enterSection,
		kindBullet:        addEntry,
		kindReleaseHeader: finish,
		kindOther:         reject(ErrUnrecognizedContent),
	},
}

func stay(*parser, line) error { return nil }

func enterSection(p *parser, l line) error {
	s, ok := significanceForTitle(l.value)
	if !ok {
		return &ParseError{Line: l.number, Text: l.text, Err: ErrUnknownSignificance}
	}
	p.state = inSection
	p.section = s
	return nil
}

func addEntry(p *parser, l line) error {
	p.result.Pending.Add(p.section, l.value)
	return nil
}

func finish(p *parser, l line) error {
	p.result.Current = l.header.version
	p.result.ReleaseName = l.header.name
	p.result.ReleaseDate = l.header.date
	p.state = done
	return nil
}

func reject(cause error) transition {
	return func(_ *parser, l line) error {
		return &ParseError{Line: l.number, Text: l.text, Err: cause}
	}
}

// Parse scans raw changelog text. Empty input yields version 0.0.0 with no
// pending changes. Parse never modifies raw; Trailing is a copy.
func Parse(raw []byte) (*ParsedState, error) {
	p := &parser{state: inPending, result: &ParsedState{}}

	offset := 0
	for number := 1; offset < len(raw); number++ {
		next := len(raw)
		if i := bytes.IndexByte(raw[offset:], '\n'); i >= 0 {
			next = offset + i + 1
		}

		l := classify(strings.TrimRight(string(raw[offset:next]), "\r\n"))
		l.number = number

		if err := transitions[p.state][l.kind](p, l); err != nil {
			return nil, err
		}
		if p.state == done {
			p.result.Trailing = append([]byte(nil), raw[offset:]...)
			break
		}
		offset = next
	}

	return p.result, nil
}
