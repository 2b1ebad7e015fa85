package changelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPending_Plain(t *testing.T) {
	var buf bytes.Buffer
	changes := ChangeSet{
		Major: []string{"break"},
		Patch: []string{"fix one", "fix two"},
	}

	err := FormatPending("Unreleased (next: 1.0.0)", changes, &buf, FormatOptions{Plain: true})
	require.NoError(t, err)

	want := "## Unreleased (next: 1.0.0)\n" +
		"\n### Major Changes\n  - break\n" +
		"\n### Bugfixes\n  - fix one\n  - fix two\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatPending_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatPending("Unreleased", ChangeSet{}, &buf, FormatOptions{Plain: true}))
	assert.Empty(t, buf.String())
}

func TestFormatHistory_Plain(t *testing.T) {
	h := ParseReleases(fixture(t, "normal"))

	tests := map[string]struct {
		limit int
		want  string
	}{
		"latest only": {
			limit: 1,
			want: "## v11.22.33 Bodacious Badger (2010/11/11)\n" +
				"\n### Minor Changes\n  - minor #0\n" +
				"\n### Bugfixes\n  - bugfix #0\n",
		},
		"all": {
			limit: 0,
			want: "## v11.22.33 Bodacious Badger (2010/11/11)\n" +
				"\n### Minor Changes\n  - minor #0\n" +
				"\n### Bugfixes\n  - bugfix #0\n" +
				"\n## v11.22.32 (2010/10/10)\n" +
				"\n### Bugfixes\n  - old fix\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, FormatHistory(h, tt.limit, &buf, FormatOptions{Plain: true}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatRelease_Styled(t *testing.T) {
	h := ParseReleases(fixture(t, "all_types_history"))

	var buf bytes.Buffer
	require.NoError(t, FormatRelease(h.Latest(), &buf, FormatOptions{MaxWidth: 80}))

	out := buf.String()
	assert.Contains(t, out, "v1.0.0")
	assert.Contains(t, out, "Major Changes")
	assert.Contains(t, out, "initial release")
	assert.NotContains(t, out, "###")
}

func TestWrapText(t *testing.T) {
	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"fits": {
			text:     "short",
			maxWidth: 10,
			want:     "short",
		},
		"no limit": {
			text:     "anything at all",
			maxWidth: 0,
			want:     "anything at all",
		},
		"breaks at space": {
			text:     "aaaa bbbb cccc",
			maxWidth: 10,
			want:     "aaaa bbbb\n    cccc",
		},
		"hard break without spaces": {
			text:     "abcdefghij",
			maxWidth: 4,
			want:     "abcd\n    efgh\n    ij",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "    "))
		})
	}
}
